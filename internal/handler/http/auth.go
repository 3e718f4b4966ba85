package http

import (
	"net/http"

	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/models"
)

const (
	msgRegistered      = "User registered successfully"
	msgLoggedIn        = "Login successful"
	msgTokensGenerated = "New tokens generated"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := utils.ReadJSON(r, &request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	user, err := h.services.AuthService.Register(ctx, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("username", user.Username).Msg("user registered")
	utils.WriteJSON(w, models.RegisterResponse{
		Message: msgRegistered,
		User:    user,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := utils.ReadJSON(r, &request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	result, err := h.services.AuthService.Login(ctx, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("username", result.User.Username).Msg("user successfully logged in")
	utils.WriteJSON(w, models.LoginResponse{
		Message:      msgLoggedIn,
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}, http.StatusOK)
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RefreshRequest
	if err := utils.ReadJSON(r, &request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	tokens, err := h.services.AuthService.Refresh(ctx, request.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.RefreshResponse{
		Message: msgTokensGenerated,
		Tokens:  tokens,
	}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	var request models.RefreshRequest
	if err := utils.ReadJSON(r, &request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	message, err := h.services.AuthService.Logout(ctx, identity, request.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: message}, http.StatusOK)
}

func (h *Handler) logoutAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	message, err := h.services.AuthService.LogoutAll(ctx, identity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: message}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	var request models.ChangePasswordRequest
	if err := utils.ReadJSON(r, &request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	message, err := h.services.AuthService.ChangePassword(ctx, identity, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", identity.UserID).Msg("password changed")
	utils.WriteJSON(w, models.MessageResponse{Message: message}, http.StatusOK)
}
