package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/shashi997/spacey-mission/models"
	"github.com/shashi997/spacey-mission/services"
)

type ProgressHandler struct {
	service *services.ProgressService
}

func NewProgressHandler(service *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

func (h *ProgressHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/progress/saveChoice", h.SaveChoice).Methods("POST")
	router.HandleFunc("/progress/saveFinalSummary", h.SaveFinalSummary).Methods("POST")
	router.HandleFunc("/progress/awardTraits", h.AwardTraits).Methods("POST")
	router.HandleFunc("/progress/{userId}/traits", h.GetTraits).Methods("GET")
	router.HandleFunc("/progress/{userId}/missions", h.GetMissionHistory).Methods("GET")
}

func (h *ProgressHandler) SaveChoice(w http.ResponseWriter, r *http.Request) {
	var req models.SaveChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode save choice request: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.service.SaveChoice(r.Context(), &req); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]any{"success": true})
}

func (h *ProgressHandler) SaveFinalSummary(w http.ResponseWriter, r *http.Request) {
	var req models.SaveFinalSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode save final summary request: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	completedAt, err := h.service.SaveFinalSummary(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]any{
		"success":      true,
		"completed_at": completedAt,
	})
}

func (h *ProgressHandler) AwardTraits(w http.ResponseWriter, r *http.Request) {
	var req models.AwardTraitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode award traits request: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.service.AwardTraits(r.Context(), &req); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]any{"success": true})
}

func (h *ProgressHandler) GetTraits(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	traits, err := h.service.GetUserTraits(r.Context(), vars["userId"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"traits":  traits,
	})
}

func (h *ProgressHandler) GetMissionHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	searchTerms := strings.Fields(r.URL.Query().Get("search"))

	missions, err := h.service.GetMissionHistory(r.Context(), vars["userId"], searchTerms)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]any{
		"success":            true,
		"missions_completed": missions,
	})
}

func (h *ProgressHandler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrValidation) {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
}

func (h *ProgressHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *ProgressHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
