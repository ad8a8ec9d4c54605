package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shashi997/spacey-mission/models"
	"github.com/shashi997/spacey-mission/services"
	"github.com/shashi997/spacey-mission/services/agent"
)

type AgentHandler struct {
	service *agent.Service
}

func NewAgentHandler(service *agent.Service) *AgentHandler {
	return &AgentHandler{service: service}
}

func (h *AgentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/summarizer", h.handle("summarizer", h.service.Summarizer)).Methods("POST")
	router.HandleFunc("/analysis", h.handle("analysis", h.service.Analysis)).Methods("POST")
	router.HandleFunc("/socratic", h.handle("socratic", h.service.Socratic)).Methods("POST")
	router.HandleFunc("/feedback", h.handle("feedback", h.service.Feedback)).Methods("POST")
}

type agentFunc func(ctx context.Context, req *models.AgentRequest) (string, error)

func (h *AgentHandler) handle(name string, run agentFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[INFO] Received %s agent request", name)

		var req models.AgentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("[ERROR] Failed to decode %s request: %v", name, err)
			h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		result, err := run(r.Context(), &req)
		if err != nil {
			if errors.Is(err, services.ErrValidation) {
				h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Printf("[ERROR] %s agent call failed: %v", name, err)
			h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}

		h.writeJSONResponse(w, http.StatusOK, models.AgentResponse{Result: result})
	}
}

func (h *AgentHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *AgentHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
