package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/service"
	"github.com/skyriting/skyriting/internal/transport/http/middleware"
)

type OrderHandler struct {
	orderService *service.OrderService
	log          *logrus.Logger
}

func NewOrderHandler(orderService *service.OrderService, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, log: log}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	if err := auth.RequireNotBanned(principal); err != nil {
		writeError(w, http.StatusForbidden, "BANNED", "Account is banned")
		return
	}

	var input service.PlaceOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	// The payment reference may also arrive out of band as a query param,
	// e.g. on the redirect back from an external checkout.
	if ref := r.URL.Query().Get("payment_ref"); ref != "" && input.PaymentRef == "" {
		input.PaymentRef = ref
	}

	order, err := h.orderService.Place(r.Context(), principal.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder):
			writeError(w, http.StatusBadRequest, "EMPTY_ORDER", "Order must contain at least one item")
		case errors.Is(err, service.ErrBadQuantity):
			writeError(w, http.StatusBadRequest, "BAD_QUANTITY", "Item quantities must be positive")
		case errors.Is(err, service.ErrTotalMismatch):
			writeError(w, http.StatusBadRequest, "TOTAL_MISMATCH", "Total amount does not match items")
		default:
			writeInternal(w, h.log, err, "place order")
		}
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	orders, err := h.orderService.ListMine(r.Context(), principal.UserID)
	if err != nil {
		writeInternal(w, h.log, err, "list my orders")
		return
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	order, err := h.orderService.Get(r.Context(), principal, orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
		case errors.Is(err, auth.ErrForbidden):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Access denied")
		default:
			writeInternal(w, h.log, err, "get order")
		}
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	orders, err := h.orderService.ListAll(r.Context(), principal)
	if err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		} else {
			writeInternal(w, h.log, err, "list orders")
		}
		return
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	order, err := h.orderService.Transition(r.Context(), principal, orderID, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrForbidden):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		case errors.Is(err, service.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Order not found")
		case errors.Is(err, service.ErrUnknownStatus):
			writeError(w, http.StatusBadRequest, "UNKNOWN_STATUS", "Unknown order status")
		case errors.Is(err, service.ErrInvalidTransition):
			writeError(w, http.StatusBadRequest, "INVALID_TRANSITION", "Status transition not allowed")
		default:
			writeInternal(w, h.log, err, "order transition")
		}
		return
	}

	writeJSON(w, http.StatusOK, order)
}
