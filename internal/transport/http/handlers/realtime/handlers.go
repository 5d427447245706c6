package realtimehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/realtime"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
)

// topics the frontend may subscribe to.
var allowedTopics = map[string]bool{
	"leaves":       true,
	"overtimes":    true,
	"holidaySwaps": true,
	"holidays":     true,
	"users":        true,
	"payslips":     true,
}

type Handler struct {
	Hub *realtime.Hub
}

func NewHandler(hub *realtime.Hub) *Handler {
	return &Handler{Hub: hub}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/ws", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireCapability(auth.Activated))
		r.Get("/{topic}", h.handleSubscribe)
	})
}

func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	if !allowedTopics[topic] {
		api.Fail(w, http.StatusNotFound, "unknown_topic", "unknown topic", middleware.GetRequestID(r.Context()))
		return
	}
	h.Hub.ServeWS(w, r, topic)
}
