package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/dto/request"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/usecase"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/utils"
)

type MotorcycleHandler struct {
	service usecase.MotorcycleService
	log     *zap.Logger
}

func NewMotorcycleHandler(service usecase.MotorcycleService, log *zap.Logger) *MotorcycleHandler {
	return &MotorcycleHandler{
		service: service,
		log:     log.With(zap.String("handler", "motorcycle")),
	}
}

// ListMotorcycles handles GET /api/motorcycles (public)
func (h *MotorcycleHandler) ListMotorcycles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 20),
	}

	motorcycles, err := h.service.ListMotorcycles(r.Context(), page)
	if err != nil {
		handleServiceError(h.log, w, err, "list motorcycles")
		return
	}

	utils.ResponseSuccess(w, "success", motorcycles)
}

// GetMotorcycle handles GET /api/motorcycles/{id} (public)
func (h *MotorcycleHandler) GetMotorcycle(w http.ResponseWriter, r *http.Request) {
	motorcycle, err := h.service.GetMotorcycle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get motorcycle")
		return
	}

	utils.ResponseSuccess(w, "success", motorcycle)
}

// CreateMotorcycle handles POST /api/admin/motorcycles
func (h *MotorcycleHandler) CreateMotorcycle(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMotorcycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	motorcycle, err := h.service.CreateMotorcycle(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create motorcycle")
		return
	}

	utils.ResponseCreated(w, "success", motorcycle)
}

// UpdateMotorcycle handles PUT /api/admin/motorcycles/{id}
func (h *MotorcycleHandler) UpdateMotorcycle(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateMotorcycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	motorcycle, err := h.service.UpdateMotorcycle(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update motorcycle")
		return
	}

	utils.ResponseSuccess(w, "success", motorcycle)
}

// DeleteMotorcycle handles DELETE /api/admin/motorcycles/{id}
func (h *MotorcycleHandler) DeleteMotorcycle(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMotorcycle(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete motorcycle")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListUnits handles GET /api/admin/motorcycles/{id}/units
func (h *MotorcycleHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.service.ListUnits(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "list units")
		return
	}

	utils.ResponseSuccess(w, "success", units)
}

// CreateUnit handles POST /api/admin/units
func (h *MotorcycleHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	unit, err := h.service.CreateUnit(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create unit")
		return
	}

	utils.ResponseCreated(w, "success", unit)
}

// UpdateUnit handles PUT /api/admin/units/{id}
func (h *MotorcycleHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	unit, err := h.service.UpdateUnit(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update unit")
		return
	}

	utils.ResponseSuccess(w, "success", unit)
}

// DeleteUnit handles DELETE /api/admin/units/{id}
func (h *MotorcycleHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUnit(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete unit")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
