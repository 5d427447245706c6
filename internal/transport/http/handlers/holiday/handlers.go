package holidayhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/holiday"
	"hrportal/internal/domain/request"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

type Handler struct {
	Service *holiday.Service
}

func NewHandler(service *holiday.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/holidays", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireCapability(auth.Activated))
		r.Get("/", h.handleMonth)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCapability(auth.CanManageHolidays))
			r.Post("/", h.handleAssign)
			r.Delete("/", h.handleUnassign)
			r.Get("/history", h.handleHistory)
		})
	})
}

func yearMonth(r *http.Request) (int, int, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

func (h *Handler) handleMonth(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	year, month, ok := yearMonth(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "year and month query parameters are required", requestID)
		return
	}

	assignments, err := h.Service.Month(r.Context(), year, month, r.URL.Query().Get("department"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "holidays_failed", "failed to list holiday assignments", requestID)
		return
	}
	if assignments == nil {
		assignments = []holiday.Assignment{}
	}
	api.Success(w, assignments, requestID)
}

type assignPayload struct {
	Department  string `json:"department"`
	Date        string `json:"date"`
	EmployeeUID string `json:"employeeUid"`
	Type        string `json:"type"`
	Reason      string `json:"reason"`
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload assignPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	var date time.Time
	if payload.Date != "" {
		parsed, err := shared.ParseDate(payload.Date)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", requestID)
			return
		}
		date = parsed
	}

	assignment, err := h.Service.Assign(r.Context(), actor, holiday.AssignInput{
		Department:  payload.Department,
		Date:        date,
		EmployeeUID: payload.EmployeeUID,
		Type:        payload.Type,
		Reason:      payload.Reason,
	})
	var verr *request.ValidationError
	if errors.As(err, &verr) {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_failed", "validation failed", verr.Issues, requestID)
		return
	}
	if errors.Is(err, holiday.ErrPermission) {
		api.Fail(w, http.StatusForbidden, "forbidden", "holiday management role required", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assign_failed", "failed to create assignment", requestID)
		return
	}
	api.Created(w, assignment, requestID)
}

func (h *Handler) handleUnassign(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	department := r.URL.Query().Get("department")
	employeeUID := r.URL.Query().Get("employeeUid")
	date, err := shared.ParseDate(r.URL.Query().Get("date"))
	if department == "" || employeeUID == "" || err != nil || date.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "department, date and employeeUid are required", requestID)
		return
	}

	err = h.Service.Unassign(r.Context(), actor, department, date, employeeUID)
	switch {
	case errors.Is(err, holiday.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "assignment not found", requestID)
	case errors.Is(err, holiday.ErrPermission):
		api.Fail(w, http.StatusForbidden, "forbidden", "holiday management role required", requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "unassign_failed", "failed to remove assignment", requestID)
	default:
		api.Success(w, map[string]string{"status": "removed"}, requestID)
	}
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	year, month, ok := yearMonth(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "year and month query parameters are required", requestID)
		return
	}

	entries, err := h.Service.History(r.Context(), actor, year, month)
	if errors.Is(err, holiday.ErrPermission) {
		api.Fail(w, http.StatusForbidden, "forbidden", "holiday management role required", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "history_failed", "failed to load history", requestID)
		return
	}
	if entries == nil {
		entries = []holiday.HistoryEntry{}
	}
	api.Success(w, entries, requestID)
}
