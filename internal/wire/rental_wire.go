package wire

import (
	"github.com/go-chi/chi/v5"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/adaptor"
)

func wireRental(r chi.Router, rentalHandler *adaptor.RentalHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/booking - Submit a rental order from the storefront
	r.Post("/api/booking", rentalHandler.SubmitOrder)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/rentals", func(r chi.Router) {
		// GET /api/admin/rentals - List rentals, filterable by status
		r.Get("/", rentalHandler.ListRentals)

		// GET /api/admin/rentals/{id} - Rental detail with items and payments
		r.Get("/{id}", rentalHandler.GetRental)

		// PUT /api/admin/rentals/{id}/status - Move the rental through its lifecycle
		r.Put("/{id}/status", rentalHandler.UpdateStatus)

		// POST /api/admin/rentals/{id}/assign - Bind physical vehicles to items
		r.Post("/{id}/assign", rentalHandler.AssignMotorcycles)

		// POST /api/admin/rentals/{id}/calculate - Preview the settlement charge
		r.Post("/{id}/calculate", rentalHandler.CalculatePayment)

		// POST /api/admin/rentals/{id}/settle - Record the return and final payment
		r.Post("/{id}/settle", rentalHandler.Settle)

		// DELETE /api/admin/rentals/{id}
		r.Delete("/{id}", rentalHandler.DeleteRental)
	})
}
