package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/service"
	"github.com/skyriting/skyriting/internal/transport/http/middleware"
)

type UserHandler struct {
	userService *service.UserService
	log         *logrus.Logger
}

func NewUserHandler(userService *service.UserService, log *logrus.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			writeInternal(w, h.log, err, "get profile")
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), principal.UserID, input)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			writeInternal(w, h.log, err, "update profile")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := auth.RequireNotBanned(principal); err != nil {
		writeError(w, http.StatusForbidden, "BANNED", "Account is banned")
		return
	}

	if err := h.userService.Follow(r.Context(), principal.UserID, targetID); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			writeError(w, http.StatusBadRequest, "SELF_FOLLOW", "Cannot follow yourself")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			writeInternal(w, h.log, err, "follow")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User followed successfully"})
}

func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.userService.Unfollow(r.Context(), principal.UserID, targetID); err != nil {
		writeInternal(w, h.log, err, "unfollow")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User unfollowed successfully"})
}
