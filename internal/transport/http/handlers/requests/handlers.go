package requesthandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/request"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *request.Service
}

func NewHandler(service *request.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/requests", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireCapability(auth.Activated))
		r.Post("/", h.handleSubmit)
		r.Get("/", h.handleListOwn)
		r.Get("/{requestID}", h.handleGet)
		r.Delete("/{requestID}", h.handleCancel)
	})
}

type submitPayload struct {
	Kind         string `json:"kind"`
	Subtype      string `json:"subtype"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	StartClock   string `json:"startClock"`
	EndClock     string `json:"endClock"`
	OriginalDate string `json:"originalDate"`
	TargetDate   string `json:"targetDate"`
	Reason       string `json:"reason"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload submitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	input, issues := payload.toInput()
	if len(issues) > 0 {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_failed", "validation failed", issues, requestID)
		return
	}

	created, err := h.Service.Submit(r.Context(), actor, input)
	var verr *request.ValidationError
	if errors.As(err, &verr) {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_failed", "validation failed", verr.Issues, requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "submit_failed", "failed to submit request", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (p submitPayload) toInput() (request.SubmitInput, []shared.FieldIssue) {
	var issues []shared.FieldIssue
	parse := func(field, raw string) *time.Time {
		if raw == "" {
			return nil
		}
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			issues = append(issues, shared.FieldIssue{Field: field, Reason: "must be a date (YYYY-MM-DD)"})
			return nil
		}
		return &parsed
	}

	input := request.SubmitInput{
		Kind:         request.Kind(p.Kind),
		Subtype:      p.Subtype,
		StartDate:    parse("startDate", p.StartDate),
		EndDate:      parse("endDate", p.EndDate),
		StartClock:   p.StartClock,
		EndClock:     p.EndClock,
		OriginalDate: parse("originalDate", p.OriginalDate),
		TargetDate:   parse("targetDate", p.TargetDate),
		Reason:       p.Reason,
	}
	return input, issues
}

func (h *Handler) handleListOwn(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	kind := request.Kind(r.URL.Query().Get("kind"))
	if !kind.Valid() {
		api.Fail(w, http.StatusBadRequest, "invalid_kind", "kind must be leave, overtime or holiday_swap", requestID)
		return
	}

	items, err := h.Service.ListByUser(r.Context(), actor, kind)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list requests", requestID)
		return
	}
	if items == nil {
		items = []request.Request{}
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	req, err := h.Service.Get(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "request not found", requestID)
		return
	}
	if req.UserID != actor.UserID && !auth.CanApprove(actor.Role) {
		api.Fail(w, http.StatusNotFound, "not_found", "request not found", requestID)
		return
	}
	api.Success(w, req, requestID)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	err := h.Service.Cancel(r.Context(), actor, chi.URLParam(r, "requestID"))
	switch {
	case errors.Is(err, request.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "request not found", requestID)
	case errors.Is(err, request.ErrPermission):
		api.Fail(w, http.StatusForbidden, "forbidden", "only the creator may cancel a request", requestID)
	case errors.Is(err, request.ErrNotCancellable):
		api.Fail(w, http.StatusConflict, "not_cancellable", "only pending requests can be cancelled", requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "cancel_failed", "failed to cancel request", requestID)
	default:
		api.Success(w, map[string]string{"status": "cancelled"}, requestID)
	}
}
