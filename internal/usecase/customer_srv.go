package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/repository"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/dto/request"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/dto/response"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/database"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/utils"
)

type CustomerService interface {
	GetCustomer(ctx context.Context, customerID string) (*response.CustomerResponse, error)
	ListCustomers(ctx context.Context, search string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error)
	UpdateCustomer(ctx context.Context, customerID string, req *request.UpdateCustomerRequest) (*response.CustomerResponse, error)
}

type customerService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewCustomerService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) CustomerService {
	return &customerService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "customer")),
	}
}

func (s *customerService) GetCustomer(ctx context.Context, customerID string) (*response.CustomerResponse, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid customer ID %s", ErrValidation, customerID)
	}

	customer, err := s.repo.Customer.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, customerID)
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) ListCustomers(ctx context.Context, search string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error) {
	customers, err := s.repo.Customer.FindAll(ctx, s.db, search, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	total, err := s.repo.Customer.Count(ctx, s.db, search)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	data := make([]response.CustomerResponse, len(customers))
	for i, customer := range customers {
		data[i] = response.CustomerToResponse(customer)
	}
	return response.NewPaginatedResponse(data, page.Page, page.Limit(), total), nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req *request.UpdateCustomerRequest) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid customer ID %s", ErrValidation, customerID)
	}

	customer, err := s.repo.Customer.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, customerID)
	}

	if req.FullName != nil {
		customer.FullName = *req.FullName
	}
	if req.Phone != nil {
		customer.Phone = req.Phone
	}
	if req.Email != nil {
		customer.Email = req.Email
	}
	if req.Hometown != nil {
		customer.Hometown = req.Hometown
	}
	if req.Address != nil {
		customer.Address = req.Address
	}
	if req.CitizenID != nil {
		customer.CitizenID = req.CitizenID
	}
	if req.CitizenIDFrontImage != nil {
		customer.CitizenIDFrontImage = req.CitizenIDFrontImage
	}
	if req.CitizenIDBackImage != nil {
		customer.CitizenIDBackImage = req.CitizenIDBackImage
	}
	if req.DriverLicenseNumber != nil {
		customer.DriverLicenseNumber = req.DriverLicenseNumber
	}
	if req.DriverLicenseImage != nil {
		customer.DriverLicenseImage = req.DriverLicenseImage
	}

	customer.UpdatedAt = time.Now()
	if err := s.repo.Customer.Update(ctx, s.db, customer); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}
