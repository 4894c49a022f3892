package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/domain"
	"github.com/skyriting/skyriting/internal/service"
	"github.com/skyriting/skyriting/internal/transport/http/middleware"
	"github.com/skyriting/skyriting/pkg/validator"
)

type ProductHandler struct {
	catalogService *service.CatalogService
	log            *logrus.Logger
}

func NewProductHandler(catalogService *service.CatalogService, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{catalogService: catalogService, log: log}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.ProductFilter{
		Category: q.Get("category"),
		Gender:   q.Get("gender"),
	}
	if raw := q.Get("brand_id"); raw != "" {
		brandID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid brand ID")
			return
		}
		filter.BrandID = &brandID
	}
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("skip"))

	products, err := h.catalogService.ListProducts(r.Context(), filter)
	if err != nil {
		writeInternal(w, h.log, err, "list products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Trending(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.TrendingProducts(r.Context())
	if err != nil {
		writeInternal(w, h.log, err, "trending products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) NewArrivals(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.NewArrivals(r.Context())
	if err != nil {
		writeInternal(w, h.log, err, "new arrivals")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Product not found")
		} else {
			writeInternal(w, h.log, err, "get product")
		}
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	var input service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateProduct(input.Name, input.Price, input.Stock); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), principal, input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrForbidden):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		case errors.Is(err, service.ErrBrandNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Brand not found")
		default:
			writeInternal(w, h.log, err, "create product")
		}
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	var input service.ProductUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), principal, productID, input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrForbidden):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		case errors.Is(err, service.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Product not found")
		default:
			writeInternal(w, h.log, err, "update product")
		}
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), principal, productID); err != nil {
		switch {
		case errors.Is(err, auth.ErrForbidden):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		case errors.Is(err, service.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Product not found")
		default:
			writeInternal(w, h.log, err, "delete product")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}
