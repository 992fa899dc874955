package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/GoArmGo/SnapShowdown/internal/usecase"
)

// ProfileHandler serves the viewer's own profile and entries.
type ProfileHandler struct {
	identity       usecase.IdentityUseCase
	queries        usecase.QueryUseCase
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewProfileHandler(identity usecase.IdentityUseCase, queries usecase.QueryUseCase, maxUploadBytes int64, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		identity:       identity,
		queries:        queries,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

type profileResponse struct {
	User   *domain.User        `json:"user"`
	Photos *usecase.UserPhotos `json:"photos"`
}

// Get returns the viewer's profile with their entries and tallies.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	photos, err := h.queries.ListUserPhotos(r.Context(), user.ID)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, profileResponse{User: user, Photos: photos}, h.logger)
}

type updateProfileRequest struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

// Update changes the viewer's username and bio.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	user := UserFromContext(r.Context())
	updated, err := h.identity.UpdateProfile(r.Context(), user.ID, req.Username, req.Bio)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, updated, h.logger)
}

// UploadPicture replaces the viewer's profile picture.
func (h *ProfileHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart form or file too large", h.logger)
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "picture file is required", h.logger)
		return
	}
	defer file.Close()

	updated, err := h.identity.UpdateProfilePicture(r.Context(), user.ID, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, updated, h.logger)
}
