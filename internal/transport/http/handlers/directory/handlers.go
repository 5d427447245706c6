package directoryhandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/directory"
	"hrportal/internal/transport/http/api"
	"hrportal/internal/transport/http/middleware"
	"hrportal/internal/transport/http/shared"
)

// Blob stores uploaded profile images.
type Blob interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type Handler struct {
	Service *directory.Service
	Blob    Blob
}

const maxImageBytes = 2 * 1024 * 1024

func NewHandler(service *directory.Service, blob Blob) *Handler {
	return &Handler{Service: service, Blob: blob}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCapability(auth.Activated))
			r.Get("/", h.handleList)
			r.Get("/{userID}", h.handleGet)
		})
		r.Put("/me/profile", h.handleEditOwnProfile)
		r.Post("/me/profile-image", h.handleUploadImage)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCapability(auth.CanManageUsers))
			r.Put("/{userID}/role", h.handleChangeRole)
			r.Put("/{userID}/department", h.handleChangeDepartment)
			r.Delete("/{userID}", h.handleDelete)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	identities, err := h.Service.List(r.Context(), actor)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list employees", requestID)
		return
	}
	if identities == nil {
		identities = []directory.Identity{}
	}
	api.Success(w, identities, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	identity, err := h.Service.Get(r.Context(), chi.URLParam(r, "userID"))
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load employee", requestID)
		return
	}
	api.Success(w, identity, requestID)
}

func (h *Handler) handleEditOwnProfile(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var edit directory.ProfileEdit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	identity, err := h.Service.EditOwnProfile(r.Context(), actor, edit)
	if errors.Is(err, directory.ErrProfileLocked) {
		api.Fail(w, http.StatusConflict, "profile_locked", "profile can only be edited once; contact HR for further changes", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "edit_failed", "failed to update profile", requestID)
		return
	}
	api.Success(w, identity, requestID)
}

func (h *Handler) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	if h.Blob == nil {
		api.Fail(w, http.StatusServiceUnavailable, "storage_unavailable", "image storage is not configured", requestID)
		return
	}

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "expected a multipart image upload", requestID)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "image field is required", requestID)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil || int64(len(data)) > maxImageBytes {
		api.Fail(w, http.StatusBadRequest, "image_too_large", "image must be at most 2 MiB", requestID)
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		api.Fail(w, http.StatusBadRequest, "invalid_image_type", "image must be jpeg or png", requestID)
		return
	}

	key := "profile-images/" + actor.UserID + "/" + uuid.NewString()
	url, err := h.Blob.Put(r.Context(), key, contentType, data)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to store image", requestID)
		return
	}
	if err := h.Service.SetProfileImage(r.Context(), actor, actor.UserID, url); err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to save image url", requestID)
		return
	}
	api.Success(w, map[string]string{"profileImageUrl": url}, requestID)
}

type changeRolePayload struct {
	Role string `json:"role" validate:"required"`
}

func (h *Handler) handleChangeRole(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload changeRolePayload
	issues, err := shared.Decode(r, &payload)
	if err != nil || len(issues) > 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "a role is required", requestID)
		return
	}

	err = h.Service.ChangeRole(r.Context(), actor, chi.URLParam(r, "userID"), auth.ParseRole(payload.Role))
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "role_change_failed", "failed to change role", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "ok"}, requestID)
}

type changeDepartmentPayload struct {
	Department string `json:"department" validate:"required"`
}

func (h *Handler) handleChangeDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	var payload changeDepartmentPayload
	issues, err := shared.Decode(r, &payload)
	if err != nil || len(issues) > 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "a department is required", requestID)
		return
	}

	err = h.Service.ChangeDepartment(r.Context(), actor, chi.URLParam(r, "userID"), payload.Department)
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_change_failed", "failed to change department", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "ok"}, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, _ := middleware.GetActor(r.Context())

	err := h.Service.Delete(r.Context(), actor, chi.URLParam(r, "userID"))
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to remove employee", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestID)
}
