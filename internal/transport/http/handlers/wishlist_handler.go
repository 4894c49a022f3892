package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/service"
	"github.com/skyriting/skyriting/internal/transport/http/middleware"
)

type WishlistHandler struct {
	wishlistService *service.WishlistService
	log             *logrus.Logger
}

func NewWishlistHandler(wishlistService *service.WishlistService, log *logrus.Logger) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService, log: log}
}

func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	products, err := h.wishlistService.Get(r.Context(), principal.UserID)
	if err != nil {
		writeInternal(w, h.log, err, "get wishlist")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Product{"products": products})
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	if err := h.wishlistService.Add(r.Context(), principal.UserID, productID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Product not found")
		} else {
			writeInternal(w, h.log, err, "add to wishlist")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product added to wishlist"})
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	if err := h.wishlistService.Remove(r.Context(), principal.UserID, productID); err != nil {
		writeInternal(w, h.log, err, "remove from wishlist")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product removed from wishlist"})
}
