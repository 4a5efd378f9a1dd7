package handlers

import (
	"net/http"

	"github.com/isdelr/chroniclex-be/internal/auth"
	"github.com/isdelr/chroniclex-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for signup, login and logout.
type AuthHandler struct {
	service services.UserServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupPayload defines the structure for registration requests.
type SignupPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles new user registration.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		WriteError(w, r, err)
		return
	}

	user, err := h.service.Signup(r.Context(), services.SignupInput{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// Login handles credential verification and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		WriteError(w, r, err)
		return
	}

	result, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed authentication attempt")
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// Logout revokes the caller's token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if err := h.service.Logout(r.Context(), actor); err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"detail": "Successfully logged out."})
}
