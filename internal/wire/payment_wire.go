package wire

import (
	"github.com/go-chi/chi/v5"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/adaptor"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	// ==================== GATEWAY ROUTES ====================
	// POST /api/vnpay/create_payment - Build a signed redirect URL
	r.Post("/api/vnpay/create_payment", paymentHandler.CreatePayment)

	// GET /api/vnpay/payment_callback - Server-to-server IPN from the gateway
	r.Get("/api/vnpay/payment_callback", paymentHandler.Callback)

	// GET /payment/vnpay_return - Customer redirected back from the gateway
	r.Get("/payment/vnpay_return", paymentHandler.Return)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/payments", func(r chi.Router) {
		// GET /api/admin/payments - Payment ledger, filterable by status and method
		r.Get("/", paymentHandler.ListPayments)

		// GET /api/admin/payments/{code} - Look up one payment by its code
		r.Get("/{code}", paymentHandler.GetPayment)
	})
}
