package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/repository"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/dto/request"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/dto/response"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/database"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/utils"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/vnpay"
)

type RentalService interface {
	// Public storefront
	SubmitOrder(ctx context.Context, clientIP string, req *request.SubmitOrderRequest) (*response.SubmitOrderResponse, error)

	// Admin
	GetRental(ctx context.Context, rentalID string) (*response.RentalDetailResponse, error)
	ListRentals(ctx context.Context, status string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.RentalResponse], error)
	UpdateStatus(ctx context.Context, rentalID string, req *request.UpdateRentalStatusRequest) (*response.RentalResponse, error)
	AssignMotorcycles(ctx context.Context, rentalID string, req *request.AssignMotorcyclesRequest) (*response.RentalDetailResponse, error)
	CalculatePayment(ctx context.Context, rentalID string, req *request.CalculatePaymentRequest) (*response.ChargeResponse, error)
	Settle(ctx context.Context, rentalID, clientIP string, req *request.SettleRentalRequest) (*response.RentalDetailResponse, error)
	DeleteRental(ctx context.Context, rentalID string) error
}

type rentalService struct {
	db    database.PgxIface
	repo  *repository.Repository
	vnpay *vnpay.Client
	cfg   utils.RentalConfig
	log   *zap.Logger

	now func() time.Time
}

func NewRentalService(db database.PgxIface, repo *repository.Repository, vnpayClient *vnpay.Client, cfg utils.RentalConfig, log *zap.Logger) RentalService {
	return &rentalService{
		db:    db,
		repo:  repo,
		vnpay: vnpayClient,
		cfg:   cfg,
		log:   log.With(zap.String("service", "rental")),
		now:   time.Now,
	}
}

func (s *rentalService) SubmitOrder(ctx context.Context, clientIP string, req *request.SubmitOrderRequest) (*response.SubmitOrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit order validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	motorcycleID, err := uuid.Parse(req.MotorcycleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid motorcycle ID %s", ErrValidation, req.MotorcycleID)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %s", ErrValidation, req.StartDate)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date %s", ErrValidation, req.EndDate)
	}

	days, err := BillableDays(startDate, endDate)
	if err != nil {
		return nil, err
	}

	motorcycle, err := s.repo.Motorcycle.FindByID(ctx, s.db, motorcycleID)
	if err != nil {
		return nil, fmt.Errorf("find motorcycle: %w", err)
	}
	if motorcycle == nil {
		return nil, fmt.Errorf("%w: motorcycle %s", ErrNotFound, req.MotorcycleID)
	}

	available, err := s.repo.MotorcycleUnit.FindAvailableByMotorcycleID(ctx, s.db, motorcycleID)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if len(available) < req.Quantity {
		return nil, fmt.Errorf("%w: only %d of %s available", ErrConflict, len(available), motorcycle.Name)
	}

	perUnit := motorcycle.PricePerDay.Mul(decimal.NewFromInt(int64(days)))
	total := perUnit.Mul(decimal.NewFromInt(int64(req.Quantity)))

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := s.now()
	customer, err := s.findOrCreateCustomer(ctx, tx, req, now)
	if err != nil {
		return nil, err
	}

	rental := &entity.Rental{
		Base:          entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		CustomerID:    &customer.ID,
		StartDate:     startDate,
		EndDate:       endDate,
		RentalDays:    days,
		TotalAmount:   total,
		DepositAmount: total,
		PaidAmount:    decimal.Zero,
		Status:        entity.RentalStatusPending,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: entity.RentalPaymentPending,
	}

	isCash := req.PaymentMethod == string(entity.PaymentMethodCash)
	code := utils.GeneratePaymentCode()
	if isCash {
		code = "CASH-" + code
	} else {
		// Gateway callbacks may arrive before the payment row is
		// readable; mirror the order reference on the rental.
		rental.VNPayTransactionID = &code
	}

	if err := s.repo.Rental.Create(ctx, tx, rental); err != nil {
		return nil, fmt.Errorf("create rental: %w", err)
	}

	items := make([]*entity.RentalItem, req.Quantity)
	for i := range items {
		items[i] = &entity.RentalItem{
			BaseSimple:  entity.BaseSimple{ID: utils.GenerateUUID(), CreatedAt: now},
			RentalID:    rental.ID,
			Quantity:    1,
			PricePerDay: motorcycle.PricePerDay,
			SubTotal:    perUnit,
		}
	}
	if err := s.repo.RentalItem.CreateBatch(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("create rental items: %w", err)
	}

	payment := &entity.Payment{
		Base:          entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		RentalID:      &rental.ID,
		PaymentCode:   code,
		Amount:        total,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		PaymentStatus: entity.PaymentStatusPending,
	}
	if isCash {
		// A cash deposit is collected on the spot; the order is
		// confirmed in the same breath.
		payment.PaymentStatus = entity.PaymentStatusPaid
		payment.PaymentDate = &now
	}
	if err := s.createPaymentRetry(ctx, tx, rental, payment); err != nil {
		return nil, err
	}

	if isCash {
		rental.PaidAmount = total
		rental.Status = entity.RentalStatusConfirmed
		rental.PaymentStatus = entity.RentalPaymentPaid
		rental.UpdatedAt = now
		if err := s.repo.Rental.Update(ctx, tx, rental); err != nil {
			return nil, fmt.Errorf("update rental: %w", err)
		}
	}

	resp := &response.SubmitOrderResponse{
		RentalID:    rental.ID.String(),
		PaymentCode: payment.PaymentCode,
		TotalAmount: total.String(),
	}

	if rental.PaymentMethod == string(entity.PaymentMethodVNPay) {
		paymentURL, err := s.vnpay.CreatePaymentURL(vnpay.PaymentRequest{
			OrderID:   payment.PaymentCode,
			Amount:    total,
			OrderInfo: fmt.Sprintf("Thue xe %s (%d chiec)", motorcycle.Name, req.Quantity),
			IPAddr:    clientIP,
			BankCode:  req.BankCode,
		})
		if err != nil {
			return nil, fmt.Errorf("create payment URL: %w", err)
		}
		resp.PaymentURL = paymentURL
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit order", zap.Error(err))
		return nil, fmt.Errorf("commit order: %w", err)
	}

	s.log.Info("Order submitted",
		zap.String("rental_id", resp.RentalID),
		zap.String("payment_code", resp.PaymentCode),
		zap.String("method", rental.PaymentMethod))
	return resp, nil
}

// createPaymentRetry inserts the payment, regenerating the code once if
// it collides with an existing one.
func (s *rentalService) createPaymentRetry(ctx context.Context, tx database.Tx, rental *entity.Rental, payment *entity.Payment) error {
	err := s.repo.Payment.Create(ctx, tx, payment)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("create payment: %w", err)
	}

	s.log.Warn("Payment code collision, regenerating", zap.String("code", payment.PaymentCode))
	code := utils.GeneratePaymentCode()
	if payment.PaymentMethod == entity.PaymentMethodCash {
		code = "CASH-" + code
	} else {
		rental.VNPayTransactionID = &code
		rental.UpdatedAt = s.now()
		if err := s.repo.Rental.Update(ctx, tx, rental); err != nil {
			return fmt.Errorf("update rental reference: %w", err)
		}
	}
	payment.PaymentCode = code
	if err := s.repo.Payment.Create(ctx, tx, payment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("%w: payment code %s already in use", ErrConflict, payment.PaymentCode)
		}
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (s *rentalService) findOrCreateCustomer(ctx context.Context, tx database.Tx, req *request.SubmitOrderRequest, now time.Time) (*entity.Customer, error) {
	customer, err := s.repo.Customer.FindByCitizenID(ctx, tx, req.CitizenID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}

	phone := req.Phone
	citizenID := req.CitizenID
	if customer != nil {
		customer.FullName = req.FullName
		customer.Phone = &phone
		if req.Email != nil {
			customer.Email = req.Email
		}
		if req.CitizenIDFrontImage != nil {
			customer.CitizenIDFrontImage = req.CitizenIDFrontImage
		}
		if req.CitizenIDBackImage != nil {
			customer.CitizenIDBackImage = req.CitizenIDBackImage
		}
		customer.UpdatedAt = now
		if err := s.repo.Customer.Update(ctx, tx, customer); err != nil {
			return nil, fmt.Errorf("update customer: %w", err)
		}
		return customer, nil
	}

	customer = &entity.Customer{
		Base:                entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		FullName:            req.FullName,
		Phone:               &phone,
		Email:               req.Email,
		CitizenID:           &citizenID,
		CitizenIDFrontImage: req.CitizenIDFrontImage,
		CitizenIDBackImage:  req.CitizenIDBackImage,
	}
	if err := s.repo.Customer.Create(ctx, tx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID string) (*response.RentalDetailResponse, error) {
	id, err := uuid.Parse(rentalID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid rental ID %s", ErrValidation, rentalID)
	}

	rental, err := s.repo.Rental.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("find rental: %w", err)
	}
	if rental == nil {
		return nil, fmt.Errorf("%w: rental %s", ErrNotFound, rentalID)
	}

	return s.buildRentalDetail(ctx, s.db, rental)
}

func (s *rentalService) ListRentals(ctx context.Context, status string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.RentalResponse], error) {
	rentals, err := s.repo.Rental.FindAll(ctx, s.db, status, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	total, err := s.repo.Rental.Count(ctx, s.db, status)
	if err != nil {
		return nil, fmt.Errorf("count rentals: %w", err)
	}

	data := make([]response.RentalResponse, len(rentals))
	for i, rental := range rentals {
		data[i] = response.RentalToResponse(rental)
		if rental.CustomerID != nil {
			customer, err := s.repo.Customer.FindByID(ctx, s.db, *rental.CustomerID)
			if err == nil && customer != nil {
				data[i].CustomerName = customer.FullName
			}
		}
	}

	return response.NewPaginatedResponse(data, page.Page, page.Limit(), total), nil
}

func (s *rentalService) UpdateStatus(ctx context.Context, rentalID string, req *request.UpdateRentalStatusRequest) (*response.RentalResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	id, err := uuid.Parse(rentalID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid rental ID %s", ErrValidation, rentalID)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rental, err := s.repo.Rental.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("find rental: %w", err)
	}
	if rental == nil {
		return nil, fmt.Errorf("%w: rental %s", ErrNotFound, rentalID)
	}

	next := entity.RentalStatus(req.Status)
	if rental.Status == next {
		resp := response.RentalToResponse(rental)
		return &resp, nil
	}

	switch next {
	case entity.RentalStatusConfirmed, entity.RentalStatusRented:
		if err := s.setAssignedUnits(ctx, tx, rental.ID, entity.UnitStatusRented); err != nil {
			return nil, err
		}
	case entity.RentalStatusReturned, entity.RentalStatusCancelled:
		if err := s.setAssignedUnits(ctx, tx, rental.ID, entity.UnitStatusReady); err != nil {
			return nil, err
		}
	}

	rental.Status = next
	rental.UpdatedAt = s.now()
	if err := s.repo.Rental.Update(ctx, tx, rental); err != nil {
		return nil, fmt.Errorf("update rental: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit status update: %w", err)
	}

	s.log.Info("Rental status updated",
		zap.String("rental_id", rentalID),
		zap.String("status", req.Status))
	resp := response.RentalToResponse(rental)
	return &resp, nil
}

func (s *rentalService) AssignMotorcycles(ctx context.Context, rentalID string, req *request.AssignMotorcyclesRequest) (*response.RentalDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	id, err := uuid.Parse(rentalID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid rental ID %s", ErrValidation, rentalID)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rental, err := s.repo.Rental.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("find rental: %w", err)
	}
	if rental == nil {
		return nil, fmt.Errorf("%w: rental %s", ErrNotFound, rentalID)
	}
	if rental.Status == entity.RentalStatusReturned || rental.Status == entity.RentalStatusCancelled {
		return nil, fmt.Errorf("%w: rental %s is %s", ErrConflict, rentalID, rental.Status)
	}

	for _, assignment := range req.Assignments {
		if err := s.applyAssignment(ctx, tx, rental, assignment); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit assignments: %w", err)
	}

	return s.buildRentalDetail(ctx, s.db, rental)
}

func (s *rentalService) applyAssignment(ctx context.Context, tx database.Tx, rental *entity.Rental, assignment request.ItemAssignment) error {
	itemID, err := uuid.Parse(assignment.RentalItemID)
	if err != nil {
		return fmt.Errorf("%w: invalid rental item ID %s", ErrValidation, assignment.RentalItemID)
	}

	item, err := s.repo.RentalItem.FindByID(ctx, tx, itemID)
	if err != nil {
		return fmt.Errorf("find rental item: %w", err)
	}
	if item == nil || item.RentalID != rental.ID {
		return fmt.Errorf("%w: rental item %s", ErrNotFound, assignment.RentalItemID)
	}

	// A vehicle only counts as reserved once the rental is confirmed or
	// picked up; releasing a reservation from an active rental is
	// configurable (the old vehicle may still serve another item).
	reserved := rental.Status == entity.RentalStatusConfirmed || rental.Status == entity.RentalStatusRented
	releaseOld := !reserved || s.cfg.ReleaseOnUnassign

	if assignment.UnitID == "" {
		if item.MotorcycleUnitID != nil && releaseOld {
			if err := s.repo.MotorcycleUnit.UpdateStatus(ctx, tx, *item.MotorcycleUnitID, entity.UnitStatusReady); err != nil {
				return fmt.Errorf("release unit: %w", err)
			}
		}
		item.MotorcycleUnitID = nil
		if err := s.repo.RentalItem.Update(ctx, tx, item); err != nil {
			return fmt.Errorf("update rental item: %w", err)
		}
		return nil
	}

	unitID, err := uuid.Parse(assignment.UnitID)
	if err != nil {
		return fmt.Errorf("%w: invalid unit ID %s", ErrValidation, assignment.UnitID)
	}
	if item.MotorcycleUnitID != nil && *item.MotorcycleUnitID == unitID {
		return nil
	}

	unit, err := s.repo.MotorcycleUnit.FindByID(ctx, tx, unitID)
	if err != nil {
		return fmt.Errorf("find unit: %w", err)
	}
	if unit == nil {
		return fmt.Errorf("%w: motorcycle unit %s", ErrNotFound, assignment.UnitID)
	}
	if unit.Status != entity.UnitStatusReady {
		return fmt.Errorf("%w: unit %s is %s", ErrConflict, unit.LicensePlate, unit.Status)
	}

	if item.MotorcycleUnitID != nil && releaseOld {
		if err := s.repo.MotorcycleUnit.UpdateStatus(ctx, tx, *item.MotorcycleUnitID, entity.UnitStatusReady); err != nil {
			return fmt.Errorf("release unit: %w", err)
		}
	}

	item.MotorcycleUnitID = &unit.ID
	if err := s.repo.RentalItem.Update(ctx, tx, item); err != nil {
		return fmt.Errorf("update rental item: %w", err)
	}
	if reserved {
		if err := s.repo.MotorcycleUnit.UpdateStatus(ctx, tx, unit.ID, entity.UnitStatusRented); err != nil {
			return fmt.Errorf("mark unit rented: %w", err)
		}
	}
	return nil
}

func (s *rentalService) CalculatePayment(ctx context.Context, rentalID string, req *request.CalculatePaymentRequest) (*response.ChargeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	id, err := uuid.Parse(rentalID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid rental ID %s", ErrValidation, rentalID)
	}
	returnDate, err := time.Parse("2006-01-02", req.ActualReturnDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid return date %s", ErrValidation, req.ActualReturnDate)
	}

	rental, err := s.repo.Rental.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("find rental: %w", err)
	}
	if rental == nil {
		return nil, fmt.Errorf("%w: rental %s", ErrNotFound, rentalID)
	}

	items, err := s.repo.RentalItem.FindAssignedByRentalID(ctx, s.db, rental.ID)
	if err != nil {
		return nil, fmt.Errorf("find rental items: %w", err)
	}

	days, total, err := ComputeCharge(rental.StartDate, returnDate, items)
	if err != nil {
		return nil, err
	}

	return &response.ChargeResponse{
		RentalID:     rental.ID.String(),
		ReturnDate:   returnDate.Format("2006-01-02"),
		BillableDays: days,
		TotalAmount:  total.String(),
		PaidAmount:   rental.PaidAmount.String(),
		Outstanding:  total.Sub(rental.PaidAmount).String(),
	}, nil
}

func (s *rentalService) Settle(ctx context.Context, rentalID, clientIP string, req *request.SettleRentalRequest) (*response.RentalDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	id, err := uuid.Parse(rentalID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid rental ID %s", ErrValidation, rentalID)
	}
	returnDate, err := time.Parse("2006-01-02", req.ActualReturnDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid return date %s", ErrValidation, req.ActualReturnDate)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("%w: invalid amount %s", ErrValidation, req.Amount)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rental, err := s.repo.Rental.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("find rental: %w", err)
	}
	if rental == nil {
		return nil, fmt.Errorf("%w: rental %s", ErrNotFound, rentalID)
	}
	// A returned rental with an outstanding balance can still collect it.
	settled := rental.Status == entity.RentalStatusReturned && rental.PaymentStatus == entity.RentalPaymentPaid
	if settled || rental.Status == entity.RentalStatusCancelled {
		return nil, fmt.Errorf("%w: rental %s is already %s", ErrConflict, rentalID, rental.Status)
	}

	items, err := s.repo.RentalItem.FindAssignedByRentalID(ctx, tx, rental.ID)
	if err != nil {
		return nil, fmt.Errorf("find rental items: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: rental %s has no assigned motorcycles to settle", ErrValidation, rentalID)
	}

	days, total, err := ComputeCharge(rental.StartDate, returnDate, items)
	if err != nil {
		return nil, err
	}

	// Freeze the final per-item charges alongside the rental totals.
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		item.SubTotal = item.PricePerDay.Mul(decimal.NewFromInt(int64(days * qty)))
		if err := s.repo.RentalItem.Update(ctx, tx, item); err != nil {
			return nil, fmt.Errorf("update rental item: %w", err)
		}
	}

	rental.ActualReturnDate = &returnDate
	rental.RentalDays = days
	rental.TotalAmount = total

	if req.PaymentMethod == string(entity.PaymentMethodVNPay) {
		return s.settleViaGateway(ctx, tx, rental, amount, clientIP)
	}

	paidAt := s.now()
	payment := &entity.Payment{
		Base:          entity.Base{ID: utils.GenerateUUID(), CreatedAt: paidAt, UpdatedAt: paidAt},
		RentalID:      &rental.ID,
		PaymentCode:   "CASH-" + utils.GeneratePaymentCode(),
		Amount:        amount,
		PaymentMethod: entity.PaymentMethodCash,
		PaymentStatus: entity.PaymentStatusPaid,
		PaymentDate:   &paidAt,
	}
	if err := s.createPaymentRetry(ctx, tx, rental, payment); err != nil {
		return nil, err
	}

	rental.PaymentMethod = string(entity.PaymentMethodCash)
	rental.PaidAmount = rental.PaidAmount.Add(amount)

	if rental.PaidAmount.GreaterThanOrEqual(total) {
		rental.Status = entity.RentalStatusReturned
		rental.PaymentStatus = entity.RentalPaymentPaid
		for _, item := range items {
			if err := s.repo.MotorcycleUnit.UpdateStatus(ctx, tx, *item.MotorcycleUnitID, entity.UnitStatusReady); err != nil {
				return nil, fmt.Errorf("release unit: %w", err)
			}
		}
	} else {
		rental.PaymentStatus = entity.RentalPaymentPartial
	}

	rental.UpdatedAt = s.now()
	if err := s.repo.Rental.Update(ctx, tx, rental); err != nil {
		return nil, fmt.Errorf("update rental: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit settlement: %w", err)
	}

	s.log.Info("Rental settled",
		zap.String("rental_id", rentalID),
		zap.Int("billable_days", days),
		zap.String("total", total.String()),
		zap.String("paid", rental.PaidAmount.String()),
		zap.String("payment_status", string(rental.PaymentStatus)))
	return s.buildRentalDetail(ctx, s.db, rental)
}

// settleViaGateway records a pending settlement payment and hands back a
// redirect URL. The paid amount and the return transition are applied by
// callback reconciliation, not here.
func (s *rentalService) settleViaGateway(ctx context.Context, tx database.Tx, rental *entity.Rental, amount decimal.Decimal, clientIP string) (*response.RentalDetailResponse, error) {
	now := s.now()
	code := utils.GeneratePaymentCode()
	rental.VNPayTransactionID = &code

	payment := &entity.Payment{
		Base:          entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		RentalID:      &rental.ID,
		PaymentCode:   code,
		Amount:        amount,
		PaymentMethod: entity.PaymentMethodVNPay,
		PaymentStatus: entity.PaymentStatusPending,
	}
	if err := s.createPaymentRetry(ctx, tx, rental, payment); err != nil {
		return nil, err
	}

	paymentURL, err := s.vnpay.CreatePaymentURL(vnpay.PaymentRequest{
		OrderID:   payment.PaymentCode,
		Amount:    amount,
		OrderInfo: fmt.Sprintf("Thanh toan tra xe %s", rental.ID),
		IPAddr:    clientIP,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment URL: %w", err)
	}

	rental.UpdatedAt = now
	if err := s.repo.Rental.Update(ctx, tx, rental); err != nil {
		return nil, fmt.Errorf("update rental: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit settlement: %w", err)
	}

	s.log.Info("Gateway settlement initiated",
		zap.String("rental_id", rental.ID.String()),
		zap.String("payment_code", payment.PaymentCode),
		zap.String("amount", amount.String()))

	detail, err := s.buildRentalDetail(ctx, s.db, rental)
	if err != nil {
		return nil, err
	}
	detail.PaymentURL = paymentURL
	return detail, nil
}

func (s *rentalService) DeleteRental(ctx context.Context, rentalID string) error {
	id, err := uuid.Parse(rentalID)
	if err != nil {
		return fmt.Errorf("%w: invalid rental ID %s", ErrValidation, rentalID)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rental, err := s.repo.Rental.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("find rental: %w", err)
	}
	if rental == nil {
		return fmt.Errorf("%w: rental %s", ErrNotFound, rentalID)
	}

	// Never strand vehicles in rented when their rental disappears.
	if err := s.setAssignedUnits(ctx, tx, rental.ID, entity.UnitStatusReady); err != nil {
		return err
	}
	if err := s.repo.Rental.Delete(ctx, tx, id); err != nil {
		return fmt.Errorf("delete rental: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *rentalService) setAssignedUnits(ctx context.Context, tx database.Tx, rentalID uuid.UUID, status entity.UnitStatus) error {
	items, err := s.repo.RentalItem.FindAssignedByRentalID(ctx, tx, rentalID)
	if err != nil {
		return fmt.Errorf("find rental items: %w", err)
	}
	for _, item := range items {
		if err := s.repo.MotorcycleUnit.UpdateStatus(ctx, tx, *item.MotorcycleUnitID, status); err != nil {
			return fmt.Errorf("update unit status: %w", err)
		}
	}
	return nil
}

func (s *rentalService) buildRentalDetail(ctx context.Context, qx database.Querier, rental *entity.Rental) (*response.RentalDetailResponse, error) {
	detail := &response.RentalDetailResponse{
		RentalResponse: response.RentalToResponse(rental),
	}

	if rental.CustomerID != nil {
		customer, err := s.repo.Customer.FindByID(ctx, qx, *rental.CustomerID)
		if err == nil && customer != nil {
			detail.CustomerName = customer.FullName
		}
	}

	items, err := s.repo.RentalItem.FindByRentalID(ctx, qx, rental.ID)
	if err != nil {
		return nil, fmt.Errorf("find rental items: %w", err)
	}
	detail.Items = make([]response.RentalItemResponse, len(items))
	for i, item := range items {
		detail.Items[i] = response.RentalItemToResponse(item)
		if item.MotorcycleUnitID == nil {
			continue
		}
		unit, err := s.repo.MotorcycleUnit.FindByID(ctx, qx, *item.MotorcycleUnitID)
		if err != nil || unit == nil {
			continue
		}
		detail.Items[i].LicensePlate = unit.LicensePlate
		motorcycle, err := s.repo.Motorcycle.FindByID(ctx, qx, unit.MotorcycleID)
		if err == nil && motorcycle != nil {
			detail.Items[i].MotorcycleName = motorcycle.Name
		}
	}

	payments, err := s.repo.Payment.FindByRentalID(ctx, qx, rental.ID)
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}
	detail.Payments = make([]response.PaymentResponse, len(payments))
	for i, payment := range payments {
		detail.Payments[i] = response.PaymentToResponse(payment)
	}

	return detail, nil
}
