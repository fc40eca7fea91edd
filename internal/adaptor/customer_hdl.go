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

type CustomerHandler struct {
	service usecase.CustomerService
	log     *zap.Logger
}

func NewCustomerHandler(service usecase.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log.With(zap.String("handler", "customer")),
	}
}

// ListCustomers handles GET /api/admin/customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	customers, err := h.service.ListCustomers(r.Context(), query.Get("search"), page)
	if err != nil {
		handleServiceError(h.log, w, err, "list customers")
		return
	}

	utils.ResponseSuccess(w, "success", customers)
}

// GetCustomer handles GET /api/admin/customers/{id}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.service.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get customer")
		return
	}

	utils.ResponseSuccess(w, "success", customer)
}

// UpdateCustomer handles PUT /api/admin/customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	customer, err := h.service.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update customer")
		return
	}

	utils.ResponseSuccess(w, "success", customer)
}
