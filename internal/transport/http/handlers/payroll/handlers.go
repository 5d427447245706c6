package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/company"
	"hrportal/internal/domain/payroll"
	"hrportal/internal/domain/request"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
)

type Handler struct {
	Service *payroll.Service
	Company *company.Service
}

func NewHandler(service *payroll.Service, companySvc *company.Service) *Handler {
	return &Handler{Service: service, Company: companySvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payslips", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireCapability(auth.Activated))
		r.Get("/", h.handleListOwn)
		r.Get("/{payslipID}", h.handleGet)
		r.Get("/{payslipID}/pdf", h.handlePDF)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCapability(auth.CanManagePayslips))
			r.Post("/", h.handleCreate)
			r.Put("/{payslipID}", h.handleEdit)
			r.Get("/month", h.handleListMonth)
		})
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var input payroll.SlipInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	slip, err := h.Service.Create(r.Context(), actor, input)
	var verr *request.ValidationError
	switch {
	case errors.As(err, &verr):
		api.FailWithDetails(w, http.StatusBadRequest, "validation_failed", "validation failed", verr.Issues, requestID)
	case errors.Is(err, payroll.ErrDuplicate):
		api.Fail(w, http.StatusConflict, "payslip_exists", "a payslip for this user and month already exists", requestID)
	case errors.Is(err, payroll.ErrPermission):
		api.Fail(w, http.StatusForbidden, "forbidden", "payslip management role required", requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "payslip_create_failed", "failed to create payslip", requestID)
	default:
		api.Created(w, slip, requestID)
	}
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var input payroll.SlipInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	slip, err := h.Service.Edit(r.Context(), actor, chi.URLParam(r, "payslipID"), input)
	var verr *request.ValidationError
	switch {
	case errors.As(err, &verr):
		api.FailWithDetails(w, http.StatusBadRequest, "validation_failed", "validation failed", verr.Issues, requestID)
	case errors.Is(err, payroll.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "payslip_edit_failed", "failed to update payslip", requestID)
	default:
		api.Success(w, slip, requestID)
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	slip, err := h.Service.Get(r.Context(), actor, chi.URLParam(r, "payslipID"))
	switch {
	case errors.Is(err, payroll.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", requestID)
	case errors.Is(err, payroll.ErrPermission):
		api.Fail(w, http.StatusForbidden, "forbidden", "you may only view your own payslips", requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to load payslip", requestID)
	default:
		api.Success(w, slip, requestID)
	}
}

func (h *Handler) handleListOwn(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	slips, err := h.Service.ListOwn(r.Context(), actor)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslips_failed", "failed to list payslips", requestID)
		return
	}
	if slips == nil {
		slips = []payroll.Payslip{}
	}
	api.Success(w, slips, requestID)
}

func (h *Handler) handleListMonth(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	if year == 0 || month < 1 || month > 12 {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "year and month query parameters are required", requestID)
		return
	}

	slips, err := h.Service.ListMonth(r.Context(), actor, year, month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslips_failed", "failed to list payslips", requestID)
		return
	}
	if slips == nil {
		slips = []payroll.Payslip{}
	}
	api.Success(w, slips, requestID)
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	slip, err := h.Service.Get(r.Context(), actor, chi.URLParam(r, "payslipID"))
	switch {
	case errors.Is(err, payroll.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "payslip not found", requestID)
		return
	case errors.Is(err, payroll.ErrPermission):
		api.Fail(w, http.StatusForbidden, "forbidden", "you may only view your own payslips", requestID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to load payslip", requestID)
		return
	}

	profile, err := h.Company.Get(r.Context())
	if err != nil && !errors.Is(err, company.ErrNotConfigured) {
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to render payslip", requestID)
		return
	}

	pdf, err := payroll.RenderPDF(slip, profile)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to render payslip", requestID)
		return
	}

	filename := fmt.Sprintf("payslip-%d-%02d.pdf", slip.Year, slip.Month)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	_, _ = w.Write(pdf)
}
