package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/shashi997/spacey-mission/models"
	"github.com/shashi997/spacey-mission/services"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"
	groqModel   = "llama-3.3-70b-versatile"
)

// Service runs the four tutor agents. Each agent is one prompt template and
// one completion call; no state is kept between requests.
type Service struct {
	llm llms.Model
}

func NewService(apiKey string) (*Service, error) {
	llm, err := openai.New(
		openai.WithModel(groqModel),
		openai.WithToken(apiKey),
		openai.WithBaseURL(groqBaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &Service{llm: llm}, nil
}

// NewServiceWithModel wires an existing model, used by tests.
func NewServiceWithModel(llm llms.Model) *Service {
	return &Service{llm: llm}
}

func (s *Service) Summarizer(ctx context.Context, req *models.AgentRequest) (string, error) {
	return s.generate(ctx, "summarizer", SUMMARIZER_PROMPT, req)
}

func (s *Service) Analysis(ctx context.Context, req *models.AgentRequest) (string, error) {
	return s.generate(ctx, "analysis", ANALYSIS_PROMPT, req)
}

func (s *Service) Socratic(ctx context.Context, req *models.AgentRequest) (string, error) {
	return s.generate(ctx, "socratic", SOCRATIC_PROMPT, req)
}

func (s *Service) Feedback(ctx context.Context, req *models.AgentRequest) (string, error) {
	return s.generate(ctx, "feedback", FEEDBACK_PROMPT, req)
}

func (s *Service) generate(ctx context.Context, agentName, template string, req *models.AgentRequest) (string, error) {
	log.Printf("[INFO] Starting %s agent call", agentName)

	if req == nil || strings.TrimSpace(req.Message) == "" {
		log.Printf("[ERROR] %s agent validation failed: missing message", agentName)
		return "", fmt.Errorf("%w: message is required", services.ErrValidation)
	}

	prompt := fmt.Sprintf(template, req.Message, req.LessonContent, req.KnowledgeLevel, req.CurrentUnderstanding)

	completion, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt, llms.WithTemperature(0.7))
	if err != nil {
		log.Printf("[ERROR] %s agent LLM call failed: %v", agentName, err)
		return "", fmt.Errorf("failed to generate %s response: %w", agentName, err)
	}

	log.Printf("[INFO] Successfully completed %s agent call", agentName)
	return strings.TrimSpace(completion), nil
}
