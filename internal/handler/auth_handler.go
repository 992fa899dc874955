package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/SnapShowdown/internal/domain"
	"github.com/GoArmGo/SnapShowdown/internal/usecase"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	identity usecase.IdentityUseCase
	auth     *Authenticator
	tokenTTL time.Duration
	logger   *slog.Logger
}

func NewAuthHandler(identity usecase.IdentityUseCase, auth *Authenticator, tokenTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		auth:     auth,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register creates an account and returns a session token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	user, err := h.identity.Register(r.Context(), req.Email, req.Username, req.Password, domain.Role(req.Role))
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	token, err := h.auth.IssueToken(user, h.tokenTTL)
	if err != nil {
		h.logger.Error("failed to issue token", "user_id", user.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error", h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, authResponse{Token: token, User: user}, h.logger)
}

// Login checks credentials and returns a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	user, err := h.identity.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithDomainError(w, err, h.logger)
		return
	}

	token, err := h.auth.IssueToken(user, h.tokenTTL)
	if err != nil {
		h.logger.Error("failed to issue token", "user_id", user.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal server error", h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, authResponse{Token: token, User: user}, h.logger)
}
