package wire

import (
	"github.com/go-chi/chi/v5"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/adaptor"
)

func wireMotorcycle(r chi.Router, motorcycleHandler *adaptor.MotorcycleHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/motorcycles - Catalog for the storefront
	r.Get("/api/motorcycles", motorcycleHandler.ListMotorcycles)

	// GET /api/motorcycles/{id} - Catalog detail with availability
	r.Get("/api/motorcycles/{id}", motorcycleHandler.GetMotorcycle)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/motorcycles", func(r chi.Router) {
		r.Post("/", motorcycleHandler.CreateMotorcycle)
		r.Put("/{id}", motorcycleHandler.UpdateMotorcycle)
		r.Delete("/{id}", motorcycleHandler.DeleteMotorcycle)

		// GET /api/admin/motorcycles/{id}/units - Physical vehicles of a model
		r.Get("/{id}/units", motorcycleHandler.ListUnits)
	})

	r.Route("/api/admin/units", func(r chi.Router) {
		r.Post("/", motorcycleHandler.CreateUnit)
		r.Put("/{id}", motorcycleHandler.UpdateUnit)
		r.Delete("/{id}", motorcycleHandler.DeleteUnit)
	})
}
