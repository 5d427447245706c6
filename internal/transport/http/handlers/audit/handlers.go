package audithandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/audit"
	"hrportal/internal/domain/auth"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.Use(middleware.RequireCapability(auth.CanManageUsers))
		r.Get("/events", h.handleList)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	filter := audit.Filter{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entityType"),
		ActorID:    r.URL.Query().Get("actorId"),
	}
	page := shared.ParsePagination(r, 50, 200)
	includeDetails := r.URL.Query().Get("details") == "true"

	events, err := h.Service.List(r.Context(), filter, includeDetails, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_failed", "failed to list audit events", requestID)
		return
	}
	total, err := h.Service.Count(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_failed", "failed to count audit events", requestID)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	api.Success(w, map[string]any{"events": events, "total": total}, requestID)
}
