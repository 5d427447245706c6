package approvalhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/approvals"
	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/request"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
)

type Handler struct {
	Service  *approvals.Service
	Requests *request.Service
}

func NewHandler(service *approvals.Service, requests *request.Service) *Handler {
	return &Handler{Service: service, Requests: requests}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/approvals", func(r chi.Router) {
		r.Use(middleware.RequireCapability(auth.CanApprove))
		r.Get("/pending", h.handleListPending)
		r.Get("/counts", h.handleCounts)
		r.Post("/{requestID}/approve", h.handleApprove)
		r.Post("/{requestID}/reject", h.handleReject)
		r.Post("/bulk", h.handleBulk)
	})
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	items, err := h.Service.ListPending(r.Context(), actor, r.URL.Query().Get("department"))
	if errors.Is(err, request.ErrPermission) {
		api.Fail(w, http.StatusForbidden, "forbidden", "approver role required", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "approvals_failed", "failed to list pending requests", requestID)
		return
	}
	if items == nil {
		items = []request.Request{}
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleCounts(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	counts, err := h.Service.CachedPendingCounts(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "counts_failed", "failed to load pending counts", requestID)
		return
	}
	api.Success(w, counts, requestID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, request.StatusApproved)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, request.StatusRejected)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, status request.Status) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	req, err := h.Requests.Transition(r.Context(), actor, chi.URLParam(r, "requestID"), status)
	switch {
	case errors.Is(err, request.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "request not found", requestID)
	case errors.Is(err, request.ErrAlreadyReviewed):
		api.Fail(w, http.StatusConflict, "already_reviewed", "request was already reviewed", requestID)
	case errors.Is(err, request.ErrPermission):
		api.Fail(w, http.StatusForbidden, "forbidden", "approver role required", requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "decision_failed", "failed to record decision", requestID)
	default:
		api.Success(w, req, requestID)
	}
}

type bulkPayload struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

func (h *Handler) handleBulk(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload bulkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if len(payload.IDs) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "ids must not be empty", requestID)
		return
	}
	status := request.Status(payload.Status)
	if status != request.StatusApproved && status != request.StatusRejected {
		api.Fail(w, http.StatusBadRequest, "invalid_status", "status must be approved or rejected", requestID)
		return
	}

	outcome, err := h.Service.BulkTransition(r.Context(), actor, payload.IDs, status)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bulk_failed", "failed to process bulk decision", requestID)
		return
	}
	api.Success(w, outcome, requestID)
}
