package notificationhandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/notifications"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
)

type Handler struct {
	Service *notifications.Service
}

func NewHandler(service *notifications.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Post("/{notificationID}/read", h.handleMarkRead)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.Service.List(r.Context(), actor.UserID, limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "notifications_failed", "failed to list notifications", requestID)
		return
	}
	if items == nil {
		items = []notifications.Notification{}
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	if err := h.Service.MarkRead(r.Context(), actor.UserID, chi.URLParam(r, "notificationID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "mark_read_failed", "failed to mark notification read", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "ok"}, requestID)
}
