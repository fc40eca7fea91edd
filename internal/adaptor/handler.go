package adaptor

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/usecase"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/utils"
)

type Handler struct {
	Rental     *RentalHandler
	Payment    *PaymentHandler
	Motorcycle *MotorcycleHandler
	Customer   *CustomerHandler
	Article    *ArticleHandler
	StoreInfo  *StoreInfoHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Rental:     NewRentalHandler(service.Rental, log),
		Payment:    NewPaymentHandler(service.Payment, log),
		Motorcycle: NewMotorcycleHandler(service.Motorcycle, log),
		Customer:   NewCustomerHandler(service.Customer, log),
		Article:    NewArticleHandler(service.Article, log),
		StoreInfo:  NewStoreInfoHandler(service.StoreInfo, log),
	}
}

// handleServiceError maps service sentinels onto HTTP responses.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" failed - validation", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidSignature):
		log.Warn(operation+" failed - bad signature", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
