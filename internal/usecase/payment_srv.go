package usecase

import (
	"context"
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

type PaymentService interface {
	CreatePaymentURL(ctx context.Context, clientIP string, req *request.CreatePaymentRequest) (*response.PaymentURLResponse, error)
	Reconcile(ctx context.Context, params map[string]string) (*response.CallbackResponse, error)
	GetPayment(ctx context.Context, code string) (*response.PaymentResponse, error)
	ListPayments(ctx context.Context, status, method string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error)
}

type paymentService struct {
	db    database.PgxIface
	repo  *repository.Repository
	vnpay *vnpay.Client
	log   *zap.Logger

	now func() time.Time
}

func NewPaymentService(db database.PgxIface, repo *repository.Repository, vnpayClient *vnpay.Client, log *zap.Logger) PaymentService {
	return &paymentService{
		db:    db,
		repo:  repo,
		vnpay: vnpayClient,
		log:   log.With(zap.String("service", "payment")),
		now:   time.Now,
	}
}

func (s *paymentService) CreatePaymentURL(ctx context.Context, clientIP string, req *request.CreatePaymentRequest) (*response.PaymentURLResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("%w: invalid amount %s", ErrValidation, req.Amount)
	}

	payment, err := s.repo.Payment.FindByCode(ctx, s.db, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment != nil && payment.Terminal() {
		return nil, fmt.Errorf("%w: payment %s is already %s", ErrConflict, req.OrderID, payment.PaymentStatus)
	}

	orderInfo := req.OrderDesc
	if orderInfo == "" {
		orderInfo = "Thanh toan don hang " + req.OrderID
	}

	paymentURL, err := s.vnpay.CreatePaymentURL(vnpay.PaymentRequest{
		OrderID:   req.OrderID,
		Amount:    amount,
		OrderInfo: orderInfo,
		IPAddr:    clientIP,
		BankCode:  req.BankCode,
		Locale:    req.Language,
		ReturnURL: req.ReturnURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment URL: %w", err)
	}

	return &response.PaymentURLResponse{
		PaymentCode: req.OrderID,
		PaymentURL:  paymentURL,
	}, nil
}

// Reconcile applies one gateway callback. The signature is checked
// before anything is read or written; a payment already in a terminal
// state is never touched again, so redelivered callbacks are no-ops.
func (s *paymentService) Reconcile(ctx context.Context, params map[string]string) (*response.CallbackResponse, error) {
	if !s.vnpay.ValidateCallback(params) {
		s.log.Warn("Callback signature rejected", zap.String("txn_ref", params["vnp_TxnRef"]))
		return nil, fmt.Errorf("%w: callback signature mismatch", ErrInvalidSignature)
	}

	code := params["vnp_TxnRef"]
	if code == "" {
		return nil, fmt.Errorf("%w: missing vnp_TxnRef", ErrValidation)
	}
	respCode := params["vnp_ResponseCode"]

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	payment, err := s.repo.Payment.FindByCodeForUpdate(ctx, tx, code)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment == nil {
		// Legacy orders carried the gateway reference only on the
		// rental row; synthesize the missing payment and reconcile it
		// through the normal path.
		payment, err = s.recoverLegacyPayment(ctx, tx, code, params)
		if err != nil {
			return nil, err
		}
	}

	if payment.Terminal() {
		s.log.Info("Callback redelivered for settled payment",
			zap.String("payment_code", code),
			zap.String("status", string(payment.PaymentStatus)))
		resp := response.PaymentToResponse(payment)
		return &response.CallbackResponse{
			ResponseCode:     respCode,
			Message:          "payment already processed",
			Payment:          &resp,
			AlreadyProcessed: true,
		}, nil
	}

	if vnpay.IsPending(respCode) {
		// The gateway has not finished; leave the payment pending and
		// wait for the next delivery.
		resp := response.PaymentToResponse(payment)
		return &response.CallbackResponse{
			ResponseCode: respCode,
			Message:      vnpay.ResponseMessage(respCode),
			Payment:      &resp,
		}, nil
	}

	if err := s.verifyCallbackAmount(payment, params); err != nil {
		return nil, err
	}

	if vnpay.IsSuccess(respCode, params["vnp_TransactionStatus"]) {
		err = s.applySuccess(ctx, tx, payment, params)
	} else {
		err = s.applyFailure(ctx, tx, payment, params)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reconciliation: %w", err)
	}

	s.log.Info("Callback reconciled",
		zap.String("payment_code", code),
		zap.String("response_code", respCode),
		zap.String("status", string(payment.PaymentStatus)))
	resp := response.PaymentToResponse(payment)
	return &response.CallbackResponse{
		ResponseCode: respCode,
		Message:      vnpay.ResponseMessage(respCode),
		Payment:      &resp,
	}, nil
}

func (s *paymentService) recoverLegacyPayment(ctx context.Context, tx database.Tx, code string, params map[string]string) (*entity.Payment, error) {
	rental, err := s.repo.Rental.FindByTransactionID(ctx, tx, code)
	if err != nil {
		return nil, fmt.Errorf("find rental by reference: %w", err)
	}
	if rental == nil {
		return nil, fmt.Errorf("%w: no payment or rental for reference %s", ErrNotFound, code)
	}

	// The rental may already carry a payment under an older code;
	// reconcile that row instead of doubling it up.
	latest, err := s.repo.Payment.FindLatestByRentalID(ctx, tx, rental.ID)
	if err != nil {
		return nil, fmt.Errorf("find latest payment: %w", err)
	}
	if latest != nil {
		s.log.Warn("Reconciling legacy reference against latest rental payment",
			zap.String("txn_ref", code),
			zap.String("payment_code", latest.PaymentCode))
		return latest, nil
	}

	amount := rental.DepositAmount
	if minor, err := decimal.NewFromString(params["vnp_Amount"]); err == nil {
		amount = minor.Div(decimal.NewFromInt(100))
	}

	now := s.now()
	payment := &entity.Payment{
		Base:          entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		RentalID:      &rental.ID,
		PaymentCode:   code,
		Amount:        amount,
		PaymentMethod: entity.PaymentMethodVNPay,
		PaymentStatus: entity.PaymentStatusPending,
	}
	if err := s.repo.Payment.Create(ctx, tx, payment); err != nil {
		return nil, fmt.Errorf("recover payment: %w", err)
	}
	s.log.Warn("Recovered payment row from rental reference",
		zap.String("payment_code", code),
		zap.String("rental_id", rental.ID.String()))
	return payment, nil
}

// verifyCallbackAmount rejects callbacks whose amount does not match
// the payment being reconciled. The signature only proves the message
// came from the gateway, not that it belongs to this order.
func (s *paymentService) verifyCallbackAmount(payment *entity.Payment, params map[string]string) error {
	raw, ok := params["vnp_Amount"]
	if !ok {
		return fmt.Errorf("%w: missing vnp_Amount", ErrValidation)
	}
	minor, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("%w: invalid vnp_Amount %s", ErrValidation, raw)
	}
	expected := payment.Amount.Mul(decimal.NewFromInt(100)).Truncate(0)
	if !minor.Equal(expected) {
		return fmt.Errorf("%w: amount mismatch for %s: got %s, want %s",
			ErrValidation, payment.PaymentCode, raw, expected.String())
	}
	return nil
}

func (s *paymentService) applySuccess(ctx context.Context, tx database.Tx, payment *entity.Payment, params map[string]string) error {
	now := s.now()
	payment.PaymentStatus = entity.PaymentStatusPaid
	payment.PaymentDate = &now
	payment.UpdatedAt = now
	if txnNo := params["vnp_TransactionNo"]; txnNo != "" {
		payment.VNPayTransactionID = &txnNo
	}
	if bankCode := params["vnp_BankCode"]; bankCode != "" {
		payment.VNPayBankCode = &bankCode
	}
	if payDate, err := time.ParseInLocation("20060102150405", params["vnp_PayDate"], time.Local); err == nil {
		payment.VNPayPayDate = &payDate
	}
	if err := s.repo.Payment.Update(ctx, tx, payment); err != nil {
		return fmt.Errorf("update payment: %w", err)
	}

	if payment.RentalID == nil {
		return nil
	}
	rental, err := s.repo.Rental.FindByIDForUpdate(ctx, tx, *payment.RentalID)
	if err != nil {
		return fmt.Errorf("find rental: %w", err)
	}
	if rental == nil {
		return nil
	}

	rental.PaidAmount = rental.PaidAmount.Add(payment.Amount)
	rental.VNPayTransactionID = payment.VNPayTransactionID
	rental.VNPayBankCode = payment.VNPayBankCode

	if rental.ActualReturnDate == nil {
		// Deposit on a fresh order: confirm it and reserve any vehicles
		// staff assigned ahead of payment.
		if rental.Status == entity.RentalStatusPending {
			rental.Status = entity.RentalStatusConfirmed
		}
		rental.PaymentStatus = entity.RentalPaymentPaid
		if err := s.setAssignedUnits(ctx, tx, rental.ID, entity.UnitStatusRented); err != nil {
			return err
		}
	} else {
		// Settlement callback: recompute the bill over the actual return
		// date and close out the rental once fully covered.
		items, err := s.repo.RentalItem.FindAssignedByRentalID(ctx, tx, rental.ID)
		if err != nil {
			return fmt.Errorf("find rental items: %w", err)
		}
		if len(items) > 0 {
			days, total, err := ComputeCharge(rental.StartDate, *rental.ActualReturnDate, items)
			if err != nil {
				return err
			}
			rental.RentalDays = days
			rental.TotalAmount = total
		}
		if rental.PaidAmount.GreaterThanOrEqual(rental.TotalAmount) {
			rental.Status = entity.RentalStatusReturned
			rental.PaymentStatus = entity.RentalPaymentPaid
			if err := s.setAssignedUnits(ctx, tx, rental.ID, entity.UnitStatusReady); err != nil {
				return err
			}
		} else {
			rental.PaymentStatus = entity.RentalPaymentPartial
		}
	}

	rental.UpdatedAt = now
	if err := s.repo.Rental.Update(ctx, tx, rental); err != nil {
		return fmt.Errorf("update rental: %w", err)
	}
	return nil
}

func (s *paymentService) setAssignedUnits(ctx context.Context, tx database.Tx, rentalID uuid.UUID, status entity.UnitStatus) error {
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

func (s *paymentService) applyFailure(ctx context.Context, tx database.Tx, payment *entity.Payment, params map[string]string) error {
	now := s.now()
	payment.PaymentStatus = entity.PaymentStatusFailed
	payment.UpdatedAt = now
	if txnNo := params["vnp_TransactionNo"]; txnNo != "" {
		payment.VNPayTransactionID = &txnNo
	}
	if err := s.repo.Payment.Update(ctx, tx, payment); err != nil {
		return fmt.Errorf("update payment: %w", err)
	}

	if payment.RentalID == nil {
		return nil
	}
	rental, err := s.repo.Rental.FindByIDForUpdate(ctx, tx, *payment.RentalID)
	if err != nil {
		return fmt.Errorf("find rental: %w", err)
	}
	if rental == nil {
		return nil
	}

	// A declined deposit kills the fresh order. Anything paid later in
	// the lifecycle fails only the payment itself.
	if rental.Status == entity.RentalStatusPending {
		rental.Status = entity.RentalStatusCancelled
		rental.PaymentStatus = entity.RentalPaymentFailed
		rental.UpdatedAt = now
		if err := s.repo.Rental.Update(ctx, tx, rental); err != nil {
			return fmt.Errorf("update rental: %w", err)
		}
	}
	return nil
}

func (s *paymentService) GetPayment(ctx context.Context, code string) (*response.PaymentResponse, error) {
	payment, err := s.repo.Payment.FindByCode(ctx, s.db, code)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: payment %s", ErrNotFound, code)
	}
	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) ListPayments(ctx context.Context, status, method string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	payments, err := s.repo.Payment.FindAll(ctx, s.db, status, method, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	total, err := s.repo.Payment.Count(ctx, s.db, status, method)
	if err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}

	data := make([]response.PaymentResponse, len(payments))
	for i, payment := range payments {
		data[i] = response.PaymentToResponse(payment)
	}
	return response.NewPaginatedResponse(data, page.Page, page.Limit(), total), nil
}
