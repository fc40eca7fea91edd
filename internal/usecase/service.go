package usecase

import (
	"go.uber.org/zap"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/repository"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/database"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/utils"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/vnpay"
)

type Service struct {
	Rental     RentalService
	Payment    PaymentService
	Motorcycle MotorcycleService
	Customer   CustomerService
	Article    ArticleService
	StoreInfo  StoreInfoService
}

func NewService(db database.PgxIface, repo *repository.Repository, vnpayClient *vnpay.Client, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Rental:     NewRentalService(db, repo, vnpayClient, config.Rental, log),
		Payment:    NewPaymentService(db, repo, vnpayClient, log),
		Motorcycle: NewMotorcycleService(db, repo, log),
		Customer:   NewCustomerService(db, repo, log),
		Article:    NewArticleService(db, repo, log),
		StoreInfo:  NewStoreInfoService(db, repo, log),
	}
}
