package navhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/nav"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/nav", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/resolve", h.handleResolve)
		r.Get("/pages", h.handlePages)
	})
}

// handleResolve answers "where does this navigation land" for the caller's
// role. The client asks on every page change, deep links included.
func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	requested := nav.Page(r.URL.Query().Get("page"))
	if !nav.Known(requested) {
		api.Fail(w, http.StatusBadRequest, "unknown_page", "unknown page", requestID)
		return
	}

	resolved := nav.ResolvePage(requested, actor.Role)
	api.Success(w, map[string]any{
		"requested":  requested,
		"resolved":   resolved,
		"redirected": requested != resolved,
	}, requestID)
}

func (h *Handler) handlePages(w http.ResponseWriter, r *http.Request) {
	api.Success(w, nav.Pages(), middleware.GetRequestID(r.Context()))
}
