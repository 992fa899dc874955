package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/SnapShowdown/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// NotificationHandler serves the user's notification outbox.
type NotificationHandler struct {
	notifications usecase.NotificationUseCase
	logger        *slog.Logger
}

func NewNotificationHandler(notifications usecase.NotificationUseCase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

// ListUnread returns the viewer's unread notifications newest-first.
func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	list, err := h.notifications.ListUnread(r.Context(), user.ID)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, list, h.logger)
}

// MarkRead marks one of the viewer's notifications as read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid notification id", h.logger)
		return
	}

	user := UserFromContext(r.Context())
	if err := h.notifications.MarkRead(r.Context(), user.ID, notificationID); err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "read"}, h.logger)
}

// MarkAllRead marks all of the viewer's notifications as read.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := h.notifications.MarkAllRead(r.Context(), user.ID); err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "read"}, h.logger)
}
