package wire

import (
	"github.com/go-chi/chi/v5"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/adaptor"
)

func wireStoreInfo(r chi.Router, storeInfoHandler *adaptor.StoreInfoHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/store-info - Storefront contact details and page content
	r.Get("/api/store-info", storeInfoHandler.GetStoreInfo)

	// ==================== ADMIN ROUTES ====================
	// PUT /api/admin/store-info - Upsert the singleton
	r.Put("/api/admin/store-info", storeInfoHandler.UpdateStoreInfo)
}
