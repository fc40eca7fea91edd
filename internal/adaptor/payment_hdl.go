package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/dto/request"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/usecase"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/utils"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreatePayment handles POST /api/vnpay/create_payment
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.CreatePaymentURL(r.Context(), utils.ClientIP(r), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create payment")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// Callback handles GET /api/vnpay/payment_callback (gateway IPN). The
// gateway expects its own ack format and resends until it gets one, so
// every outcome answers 200 with an RspCode it understands.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)

	result, err := h.service.Reconcile(r.Context(), params)
	if err != nil {
		h.log.Warn("Callback rejected", zap.Error(err), zap.String("txn_ref", params["vnp_TxnRef"]))
		switch {
		case errors.Is(err, usecase.ErrInvalidSignature):
			writeIPN(w, "97", "Invalid signature")
		case errors.Is(err, usecase.ErrNotFound):
			writeIPN(w, "01", "Order not found")
		case errors.Is(err, usecase.ErrValidation) && strings.Contains(err.Error(), "amount"):
			writeIPN(w, "04", "Invalid amount")
		default:
			writeIPN(w, "99", "Unknown error")
		}
		return
	}

	if result.AlreadyProcessed {
		writeIPN(w, "02", "Order already confirmed")
		return
	}
	writeIPN(w, "00", "Confirm success")
}

// Return handles GET /payment/vnpay_return (customer redirect). Same
// reconciliation path as the IPN; the response is for a human.
func (h *PaymentHandler) Return(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Reconcile(r.Context(), queryParams(r))
	if err != nil {
		handleServiceError(h.log, w, err, "payment return")
		return
	}

	utils.ResponseSuccess(w, result.Message, result)
}

// GetPayment handles GET /api/admin/payments/{code}
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.service.GetPayment(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		handleServiceError(h.log, w, err, "get payment")
		return
	}

	utils.ResponseSuccess(w, "success", payment)
}

// ListPayments handles GET /api/admin/payments
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	payments, err := h.service.ListPayments(r.Context(), query.Get("status"), query.Get("method"), page)
	if err != nil {
		handleServiceError(h.log, w, err, "list payments")
		return
	}

	utils.ResponseSuccess(w, "success", payments)
}

func queryParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

func writeIPN(w http.ResponseWriter, rspCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"RspCode": rspCode,
		"Message": message,
	})
}
