package models

// AgentRequest is the shared input for every tutor agent call.
type AgentRequest struct {
	Message              string `json:"message"`
	LessonContent        string `json:"lesson_content"`
	KnowledgeLevel       string `json:"knowledge_level"`
	CurrentUnderstanding string `json:"current_understanding"`
}

type AgentResponse struct {
	Result string `json:"result"`
}
