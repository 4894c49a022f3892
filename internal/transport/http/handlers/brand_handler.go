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
	"github.com/skyriting/skyriting/pkg/validator"
)

type BrandHandler struct {
	catalogService *service.CatalogService
	log            *logrus.Logger
}

func NewBrandHandler(catalogService *service.CatalogService, log *logrus.Logger) *BrandHandler {
	return &BrandHandler{catalogService: catalogService, log: log}
}

func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalogService.ListBrands(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownBrandState) {
			writeError(w, http.StatusBadRequest, "UNKNOWN_STATUS", "Unknown brand status")
		} else {
			writeInternal(w, h.log, err, "list brands")
		}
		return
	}
	writeJSON(w, http.StatusOK, brands)
}

func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	brandID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid brand ID")
		return
	}

	brand, err := h.catalogService.GetBrand(r.Context(), brandID)
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Brand not found")
		} else {
			writeInternal(w, h.log, err, "get brand")
		}
		return
	}
	writeJSON(w, http.StatusOK, brand)
}

func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	var input service.BrandInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateBrand(input.Name, input.Description, input.Category); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	brand, err := h.catalogService.CreateBrand(r.Context(), principal, input)
	if err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		} else {
			writeInternal(w, h.log, err, "create brand")
		}
		return
	}
	writeJSON(w, http.StatusCreated, brand)
}

func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	brandID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid brand ID")
		return
	}

	var input service.BrandUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	brand, err := h.catalogService.UpdateBrand(r.Context(), principal, brandID, input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrForbidden):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		case errors.Is(err, service.ErrBrandNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Brand not found")
		case errors.Is(err, service.ErrUnknownBrandState):
			writeError(w, http.StatusBadRequest, "UNKNOWN_STATUS", "Unknown brand status")
		default:
			writeInternal(w, h.log, err, "update brand")
		}
		return
	}
	writeJSON(w, http.StatusOK, brand)
}

func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	brandID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid brand ID")
		return
	}

	if err := h.catalogService.DeleteBrand(r.Context(), principal, brandID); err != nil {
		switch {
		case errors.Is(err, auth.ErrForbidden):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		case errors.Is(err, service.ErrBrandNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Brand not found")
		default:
			writeInternal(w, h.log, err, "delete brand")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Brand deleted successfully"})
}
