package wire

import (
	"github.com/go-chi/chi/v5"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/adaptor"
)

func wireCustomer(r chi.Router, customerHandler *adaptor.CustomerHandler) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/customers", func(r chi.Router) {
		// GET /api/admin/customers - Search renters by name, phone or citizen ID
		r.Get("/", customerHandler.ListCustomers)

		r.Get("/{id}", customerHandler.GetCustomer)
		r.Put("/{id}", customerHandler.UpdateCustomer)
	})
}
