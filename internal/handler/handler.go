// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/elizabeth-johnson8888/petsitting-backend/internal/model"
	"github.com/elizabeth-johnson8888/petsitting-backend/internal/repository"
	"github.com/elizabeth-johnson8888/petsitting-backend/internal/service"
)

// Handler holds all HTTP handlers for the pet-sitting API.
type Handler struct {
	availability *service.AvailabilityService
	reviews      *service.ReviewService
}

// New constructs a Handler.
func New(availability *service.AvailabilityService, reviews *service.ReviewService) *Handler {
	return &Handler{availability: availability, reviews: reviews}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// BusyDates handles GET /busy-dates
// Returns the upcoming days judged unavailable, as a JSON array of date
// strings. Upstream failures surface as a plain-text 500.
func (h *Handler) BusyDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.availability.BusyDates(r.Context())
	if err != nil {
		slog.Error("fetch busy dates failed", slog.Any("err", err))
		http.Error(w, "Failed to fetch busy dates", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, dates)
}

// ListReviews handles GET /reviews
// Returns a JSON array of {name, review} objects in store order.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListReviews(r.Context())
	if err != nil {
		slog.Error("fetch reviews failed", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to fetch reviews"})
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if reviews == nil {
		reviews = []model.Review{}
	}

	writeJSON(w, http.StatusOK, reviews)
}

// SubmitReview handles POST /submit-review
// Validates the one-time access code, consumes it, and records the review.
// A bad code is an expected outcome and answers 400; all upstream failures
// answer an opaque 500.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.SubmitReviewResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	if err := h.reviews.SubmitReview(r.Context(), req); err != nil {
		if errors.Is(err, repository.ErrInvalidCode) {
			writeJSON(w, http.StatusBadRequest, model.SubmitReviewResponse{
				Success: false,
				Message: "Invalid or already used code",
			})
			return
		}
		slog.Error("submit review failed", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, model.SubmitReviewResponse{
			Success: false,
			Message: "Failed to submit review",
		})
		return
	}

	writeJSON(w, http.StatusOK, model.SubmitReviewResponse{Success: true})
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
