package companyhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/company"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
)

type Handler struct {
	Service *company.Service
}

func NewHandler(service *company.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/company", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleGet)
		r.Put("/", h.handleUpdate)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	profile, err := h.Service.Get(r.Context())
	if errors.Is(err, company.ErrNotConfigured) {
		api.Fail(w, http.StatusNotFound, "not_configured", "company profile has not been set up", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "company_failed", "failed to load company profile", requestID)
		return
	}
	api.Success(w, profile, requestID)
}

// handleUpdate surfaces an explicit 403 for non-managing roles; company
// profile editing is one of the few places denial is shown rather than
// redirected away.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var profile company.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	updated, err := h.Service.Update(r.Context(), actor, profile)
	if errors.Is(err, company.ErrPermission) {
		api.Fail(w, http.StatusForbidden, "forbidden", "you do not have permission to edit the company profile", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "company_update_failed", "failed to update company profile", requestID)
		return
	}
	api.Success(w, updated, requestID)
}
