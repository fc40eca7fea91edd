package adaptor

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/dto/request"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/usecase"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/utils"
)

type StoreInfoHandler struct {
	service usecase.StoreInfoService
	log     *zap.Logger
}

func NewStoreInfoHandler(service usecase.StoreInfoService, log *zap.Logger) *StoreInfoHandler {
	return &StoreInfoHandler{
		service: service,
		log:     log.With(zap.String("handler", "store_info")),
	}
}

// GetStoreInfo handles GET /api/store-info (public)
func (h *StoreInfoHandler) GetStoreInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.GetStoreInfo(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get store info")
		return
	}

	utils.ResponseSuccess(w, "success", info)
}

// UpdateStoreInfo handles PUT /api/admin/store-info
func (h *StoreInfoHandler) UpdateStoreInfo(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateStoreInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	info, err := h.service.UpdateStoreInfo(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update store info")
		return
	}

	utils.ResponseSuccess(w, "success", info)
}
