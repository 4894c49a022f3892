package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/service"
	"github.com/skyriting/skyriting/internal/transport/http/middleware"
)

type AdminHandler struct {
	adminService *service.AdminService
	log          *logrus.Logger
}

func NewAdminHandler(adminService *service.AdminService, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{adminService: adminService, log: log}
}

func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	analytics, err := h.adminService.Analytics(r.Context(), principal)
	if err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		} else {
			writeInternal(w, h.log, err, "analytics")
		}
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

func (h *AdminHandler) VerifyInfluencer(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	user, err := h.adminService.VerifyInfluencer(r.Context(), principal, userID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrForbidden):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			writeInternal(w, h.log, err, "verify influencer")
		}
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) BanUser(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	user, err := h.adminService.BanUser(r.Context(), principal, userID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrForbidden):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			writeInternal(w, h.log, err, "ban user")
		}
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	users, err := h.adminService.ListUsers(r.Context(), principal)
	if err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		} else {
			writeInternal(w, h.log, err, "list users")
		}
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, users)
}
