/**
 * @description
 * This file contains the HTTP handler functions for the billing service.
 * Handlers parse incoming requests, call the business logic in the service
 * layer, and write the HTTP response.
 */
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yagomat/supra-client-nexus-sub001/internal/app"
	"github.com/yagomat/supra-client-nexus-sub001/internal/domain"
)

// BillingService defines the operations the handlers expose.
type BillingService interface {
	ScheduleReminders(ctx context.Context, userID string) (*app.ScheduleResult, error)
	RecomputeClientStatus(ctx context.Context, clientID string) (*domain.Client, error)
	MatchIncomingMessage(ctx context.Context, messageText string) (*domain.AutoResponseRule, error)
}

// Handler holds the application service that handlers will interact with.
type Handler struct {
	service BillingService
}

// NewHandler creates a new Handler with the given service.
func NewHandler(service BillingService) *Handler {
	return &Handler{service: service}
}

// handleScheduleReminders runs the reminder scheduler for one user.
func (h *Handler) handleScheduleReminders(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "missing user ID", http.StatusBadRequest)
		return
	}

	result, err := h.service.ScheduleReminders(r.Context(), userID)
	if err != nil {
		if app.IsConfigurationError(err) {
			respondWithJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// handleRecomputeStatus re-derives and persists a client's status.
func (h *Handler) handleRecomputeStatus(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	if clientID == "" {
		http.Error(w, "missing client ID", http.StatusBadRequest)
		return
	}

	client, err := h.service.RecomputeClientStatus(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondWithJSON(w, http.StatusOK, client)
}

// handleMatchMessage matches an inbound message against the active
// auto-response rules. Responds 204 when no rule matches.
func (h *Handler) handleMatchMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rule, err := h.service.MatchIncomingMessage(r.Context(), req.Text)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rule == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondWithJSON(w, http.StatusOK, rule)
}

// respondWithJSON is a helper function to write JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
