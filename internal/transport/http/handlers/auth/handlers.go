package authhandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/directory"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Auth      *auth.Service
	Directory *directory.Service
}

func NewHandler(authSvc *auth.Service, directorySvc *directory.Service) *Handler {
	return &Handler{Auth: authSvc, Directory: directorySvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.Post("/register", h.handleRegister)
		r.Post("/request-reset", h.handleRequestReset)
		r.Post("/reset", h.handleReset)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", h.handleMe)
			r.Post("/mfa/setup", h.handleMFASetup)
			r.Post("/mfa/enable", h.handleMFAEnable)
			r.Post("/mfa/disable", h.handleMFADisable)
		})
	})
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	MFACode  string `json:"mfaCode"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload loginPayload
	issues, err := shared.Decode(r, &payload)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if len(issues) > 0 {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_failed", "validation failed", issues, requestID)
		return
	}

	session, err := h.Auth.SignIn(r.Context(), payload.Email, payload.Password, payload.MFACode)
	switch {
	case errors.Is(err, auth.ErrMFARequired):
		api.Fail(w, http.StatusUnauthorized, "mfa_required", "mfa code required", requestID)
	case errors.Is(err, auth.ErrInvalidMFACode):
		api.Fail(w, http.StatusUnauthorized, "invalid_mfa_code", "invalid mfa code", requestID)
	case errors.Is(err, auth.ErrAccountDeleted):
		api.Fail(w, http.StatusForbidden, "account_deleted", "this account has been removed", requestID)
	case err != nil:
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
	default:
		api.Success(w, session, requestID)
	}
}

type registerPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload registerPayload
	issues, err := shared.Decode(r, &payload)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if len(issues) > 0 {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_failed", "validation failed", issues, requestID)
		return
	}

	identity, err := h.Directory.Register(r.Context(), payload.Email, payload.Password, payload.Name)
	if errors.Is(err, directory.ErrEmailTaken) {
		api.Fail(w, http.StatusConflict, "email_taken", "an account with this email already exists", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to create account", requestID)
		return
	}
	api.Created(w, identity, requestID)
}

type requestResetPayload struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *Handler) handleRequestReset(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload requestResetPayload
	issues, err := shared.Decode(r, &payload)
	if err != nil || len(issues) > 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "a valid email is required", requestID)
		return
	}

	// Always report success so the endpoint cannot be used to probe for
	// registered addresses.
	if err := h.Auth.RequestReset(r.Context(), payload.Email); err != nil {
		api.Fail(w, http.StatusInternalServerError, "reset_request_failed", "failed to process reset request", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "ok"}, requestID)
}

type resetPayload struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload resetPayload
	issues, err := shared.Decode(r, &payload)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if len(issues) > 0 {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_failed", "validation failed", issues, requestID)
		return
	}

	err = h.Auth.ResetPassword(r.Context(), payload.Token, payload.NewPassword)
	if errors.Is(err, auth.ErrInvalidResetToken) {
		api.Fail(w, http.StatusBadRequest, "invalid_reset_token", "invalid or expired reset token", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "reset_failed", "failed to reset password", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "ok"}, requestID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	identity, err := h.Directory.Get(r.Context(), actor.UserID)
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "profile not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "profile_failed", "failed to load profile", requestID)
		return
	}
	api.Success(w, identity, requestID)
}

func (h *Handler) handleMFASetup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	identity, err := h.Directory.Get(r.Context(), actor.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_setup_failed", "failed to start mfa setup", requestID)
		return
	}
	setup, err := h.Auth.SetupMFA(r.Context(), actor.UserID, identity.Email)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_setup_failed", "failed to start mfa setup", requestID)
		return
	}
	api.Success(w, setup, requestID)
}

type mfaEnablePayload struct {
	Code string `json:"code" validate:"required"`
}

func (h *Handler) handleMFAEnable(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload mfaEnablePayload
	issues, err := shared.Decode(r, &payload)
	if err != nil || len(issues) > 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "a verification code is required", requestID)
		return
	}

	err = h.Auth.EnableMFA(r.Context(), actor.UserID, payload.Code)
	if errors.Is(err, auth.ErrInvalidMFACode) {
		api.Fail(w, http.StatusBadRequest, "invalid_mfa_code", "invalid verification code", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_enable_failed", "failed to enable mfa", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "enabled"}, requestID)
}

func (h *Handler) handleMFADisable(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	if err := h.Auth.DisableMFA(r.Context(), actor.UserID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_disable_failed", "failed to disable mfa", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "disabled"}, requestID)
}
