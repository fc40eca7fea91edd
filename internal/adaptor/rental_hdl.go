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

type RentalHandler struct {
	service usecase.RentalService
	log     *zap.Logger
}

func NewRentalHandler(service usecase.RentalService, log *zap.Logger) *RentalHandler {
	return &RentalHandler{
		service: service,
		log:     log.With(zap.String("handler", "rental")),
	}
}

// SubmitOrder handles POST /api/booking (public)
func (h *RentalHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	order, err := h.service.SubmitOrder(r.Context(), utils.ClientIP(r), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "submit order")
		return
	}

	utils.ResponseCreated(w, "success", order)
}

// ListRentals handles GET /api/admin/rentals
func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	rentals, err := h.service.ListRentals(r.Context(), query.Get("status"), page)
	if err != nil {
		handleServiceError(h.log, w, err, "list rentals")
		return
	}

	utils.ResponseSuccess(w, "success", rentals)
}

// GetRental handles GET /api/admin/rentals/{id}
func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	rental, err := h.service.GetRental(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get rental")
		return
	}

	utils.ResponseSuccess(w, "success", rental)
}

// UpdateStatus handles PUT /api/admin/rentals/{id}/status
func (h *RentalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateRentalStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rental, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update rental status")
		return
	}

	utils.ResponseSuccess(w, "success", rental)
}

// AssignMotorcycles handles POST /api/admin/rentals/{id}/assign
func (h *RentalHandler) AssignMotorcycles(w http.ResponseWriter, r *http.Request) {
	var req request.AssignMotorcyclesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rental, err := h.service.AssignMotorcycles(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "assign motorcycles")
		return
	}

	utils.ResponseSuccess(w, "success", rental)
}

// CalculatePayment handles POST /api/admin/rentals/{id}/calculate
func (h *RentalHandler) CalculatePayment(w http.ResponseWriter, r *http.Request) {
	var req request.CalculatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	charge, err := h.service.CalculatePayment(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "calculate payment")
		return
	}

	utils.ResponseSuccess(w, "success", charge)
}

// Settle handles POST /api/admin/rentals/{id}/settle
func (h *RentalHandler) Settle(w http.ResponseWriter, r *http.Request) {
	var req request.SettleRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	rental, err := h.service.Settle(r.Context(), chi.URLParam(r, "id"), utils.ClientIP(r), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "settle rental")
		return
	}

	utils.ResponseSuccess(w, "success", rental)
}

// DeleteRental handles DELETE /api/admin/rentals/{id}
func (h *RentalHandler) DeleteRental(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRental(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete rental")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
