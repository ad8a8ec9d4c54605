package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"

	"github.com/shashi997/spacey-mission/models"
	"github.com/shashi997/spacey-mission/services"
)

// fakeLLM records the last prompt and replies with a canned completion.
type fakeLLM struct {
	lastPrompt string
	response   string
	err        error
}

func (f *fakeLLM) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, part := range messages[len(messages)-1].Parts {
		if text, ok := part.(llms.TextContent); ok {
			f.lastPrompt = text.Text
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeLLM) Call(_ context.Context, prompt string, _ ...llms.CallOption) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func testRequest() *models.AgentRequest {
	return &models.AgentRequest{
		Message:              "The moon causes the tides",
		LessonContent:        "Tides are caused by the gravitational pull of the moon and sun.",
		KnowledgeLevel:       "beginner",
		CurrentUnderstanding: "knows the moon is involved",
	}
}

func TestAgentsInterpolateInputs(t *testing.T) {
	tests := []struct {
		name string
		call func(s *Service, req *models.AgentRequest) (string, error)
	}{
		{name: "summarizer", call: func(s *Service, req *models.AgentRequest) (string, error) { return s.Summarizer(context.Background(), req) }},
		{name: "analysis", call: func(s *Service, req *models.AgentRequest) (string, error) { return s.Analysis(context.Background(), req) }},
		{name: "socratic", call: func(s *Service, req *models.AgentRequest) (string, error) { return s.Socratic(context.Background(), req) }},
		{name: "feedback", call: func(s *Service, req *models.AgentRequest) (string, error) { return s.Feedback(context.Background(), req) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &fakeLLM{response: "Mission Report: well done, Commander."}
			service := NewServiceWithModel(llm)
			req := testRequest()

			result, err := tt.call(service, req)
			if err != nil {
				t.Fatalf("%s failed: %v", tt.name, err)
			}
			if result != "Mission Report: well done, Commander." {
				t.Errorf("unexpected result: %q", result)
			}

			for _, input := range []string{req.Message, req.LessonContent, req.KnowledgeLevel, req.CurrentUnderstanding} {
				if !strings.Contains(llm.lastPrompt, input) {
					t.Errorf("expected prompt to contain %q", input)
				}
			}
			if strings.Contains(llm.lastPrompt, "%s") {
				t.Errorf("prompt contains unfilled placeholder: %s", llm.lastPrompt)
			}
		})
	}
}

func TestAgentTrimsCompletion(t *testing.T) {
	llm := &fakeLLM{response: "\n  Scans complete.  \n"}
	service := NewServiceWithModel(llm)

	result, err := service.Summarizer(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Summarizer failed: %v", err)
	}
	if result != "Scans complete." {
		t.Errorf("expected trimmed completion, got %q", result)
	}
}

func TestAgentRequiresMessage(t *testing.T) {
	service := NewServiceWithModel(&fakeLLM{response: "unused"})

	_, err := service.Analysis(context.Background(), &models.AgentRequest{Message: "   "})
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("expected ErrValidation for empty message, got %v", err)
	}

	_, err = service.Analysis(context.Background(), nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("expected ErrValidation for nil request, got %v", err)
	}
}

func TestAgentPropagatesLLMError(t *testing.T) {
	llm := &fakeLLM{err: fmt.Errorf("model overloaded")}
	service := NewServiceWithModel(llm)

	_, err := service.Feedback(context.Background(), testRequest())
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("expected wrapped LLM error, got %v", err)
	}
	if errors.Is(err, services.ErrValidation) {
		t.Errorf("LLM failure must not read as a validation error: %v", err)
	}
}
