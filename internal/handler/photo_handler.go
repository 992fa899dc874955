package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoArmGo/SnapShowdown/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PhotoHandler serves photo submission, browsing, voting and commenting.
type PhotoHandler struct {
	moderation     usecase.ModerationUseCase
	votes          usecase.VoteUseCase
	comments       usecase.CommentUseCase
	queries        usecase.QueryUseCase
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewPhotoHandler(
	moderation usecase.ModerationUseCase,
	votes usecase.VoteUseCase,
	comments usecase.CommentUseCase,
	queries usecase.QueryUseCase,
	maxUploadBytes int64,
	logger *slog.Logger,
) *PhotoHandler {
	return &PhotoHandler{
		moderation:     moderation,
		votes:          votes,
		comments:       comments,
		queries:        queries,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Submit accepts a multipart photo upload and creates a pending entry.
func (h *PhotoHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart form or file too large", h.logger)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "photo file is required", h.logger)
		return
	}
	defer file.Close()

	photo, err := h.moderation.SubmitPhoto(
		r.Context(),
		user.ID,
		r.FormValue("title"),
		r.FormValue("description"),
		file,
		header.Filename,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, photo, h.logger)
}

// Gallery lists approved photos ordered by votes, paginated.
func (h *PhotoHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	photos, err := h.queries.Gallery(r.Context(), page, pageSize)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, photos, h.logger)
}

// Leaderboard lists the top approved photos by vote count.
func (h *PhotoHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	photos, err := h.queries.Leaderboard(r.Context(), limit)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, photos, h.logger)
}

// Winners lists the top three photos.
func (h *PhotoHandler) Winners(w http.ResponseWriter, r *http.Request) {
	photos, err := h.queries.PreviousWinners(r.Context())
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, photos, h.logger)
}

// Detail returns the photo detail view with the viewer's permission flags.
func (h *PhotoHandler) Detail(w http.ResponseWriter, r *http.Request) {
	photoID, ok := h.photoID(w, r)
	if !ok {
		return
	}

	detail, err := h.queries.PhotoDetail(r.Context(), UserFromContext(r.Context()), photoID)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, detail, h.logger)
}

type updatePhotoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Update edits a pending photo's title and description.
func (h *PhotoHandler) Update(w http.ResponseWriter, r *http.Request) {
	photoID, ok := h.photoID(w, r)
	if !ok {
		return
	}

	var req updatePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	user := UserFromContext(r.Context())
	photo, err := h.moderation.UpdatePhoto(r.Context(), user.ID, photoID, req.Title, req.Description)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, photo, h.logger)
}

// Vote casts the viewer's vote on the photo.
func (h *PhotoHandler) Vote(w http.ResponseWriter, r *http.Request) {
	photoID, ok := h.photoID(w, r)
	if !ok {
		return
	}

	user := UserFromContext(r.Context())
	count, err := h.votes.CastVote(r.Context(), user.ID, photoID)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"votes_count": count}, h.logger)
}

type postCommentRequest struct {
	Content string `json:"content"`
}

// PostComment appends a comment to the photo.
func (h *PhotoHandler) PostComment(w http.ResponseWriter, r *http.Request) {
	photoID, ok := h.photoID(w, r)
	if !ok {
		return
	}

	var req postCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	user := UserFromContext(r.Context())
	comment, err := h.comments.PostComment(r.Context(), user.ID, photoID, req.Content)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, comment, h.logger)
}

// ListComments returns the photo's active comments.
func (h *PhotoHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	photoID, ok := h.photoID(w, r)
	if !ok {
		return
	}

	comments, err := h.comments.ListComments(r.Context(), UserFromContext(r.Context()), photoID)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, comments, h.logger)
}

func (h *PhotoHandler) photoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid photo id", h.logger)
		return uuid.Nil, false
	}
	return id, true
}
