package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/GoArmGo/SnapShowdown/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AdminHandler serves the moderation endpoints.
type AdminHandler struct {
	moderation usecase.ModerationUseCase
	queries    usecase.QueryUseCase
	logger     *slog.Logger
}

func NewAdminHandler(moderation usecase.ModerationUseCase, queries usecase.QueryUseCase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		moderation: moderation,
		queries:    queries,
		logger:     logger,
	}
}

// Approve moves a photo to approved.
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.moderation.Approve)
}

// Reject moves a photo to rejected.
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.moderation.Reject)
}

// Revert moves a photo back to pending.
func (h *AdminHandler) Revert(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.moderation.Revert)
}

func (h *AdminHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, adminID, photoID uuid.UUID) (*domain.Photo, error),
) {
	photoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid photo id", h.logger)
		return
	}

	user := UserFromContext(r.Context())
	photo, err := apply(r.Context(), user.ID, photoID)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, photo, h.logger)
}

// ListByStatus returns all photos in the requested moderation status.
func (h *AdminHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.PhotoStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.PhotoStatusPending
	}

	photos, err := h.queries.ListByStatus(r.Context(), UserFromContext(r.Context()), status)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, photos, h.logger)
}
