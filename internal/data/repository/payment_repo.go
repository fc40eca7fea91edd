package repository

import (
	"context"
	"fmt"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	// Create inserts a payment. A payment_code collision surfaces as
	// ErrDuplicate so the caller can regenerate and retry.
	Create(ctx context.Context, qx database.Querier, payment *entity.Payment) error
	FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Payment, error)
	FindByCode(ctx context.Context, qx database.Querier, code string) (*entity.Payment, error)
	// FindByCodeForUpdate locks the payment row; reconciliation uses it
	// so a redelivered callback cannot race the first delivery.
	FindByCodeForUpdate(ctx context.Context, qx database.Querier, code string) (*entity.Payment, error)
	FindLatestByRentalID(ctx context.Context, qx database.Querier, rentalID uuid.UUID) (*entity.Payment, error)
	FindByRentalID(ctx context.Context, qx database.Querier, rentalID uuid.UUID) ([]*entity.Payment, error)
	FindAll(ctx context.Context, qx database.Querier, status, method string, limit, offset int) ([]*entity.Payment, error)
	Count(ctx context.Context, qx database.Querier, status, method string) (int64, error)
	Update(ctx context.Context, qx database.Querier, payment *entity.Payment) error
}

type paymentRepository struct {
	log *zap.Logger
}

func NewPaymentRepository(log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, rental_id, payment_code, amount, payment_method, payment_status,
		vnpay_transaction_id, vnpay_bank_code, vnpay_pay_date, payment_date, created_at, updated_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.RentalID,
		&payment.PaymentCode,
		&payment.Amount,
		&payment.PaymentMethod,
		&payment.PaymentStatus,
		&payment.VNPayTransactionID,
		&payment.VNPayBankCode,
		&payment.VNPayPayDate,
		&payment.PaymentDate,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, qx database.Querier, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, rental_id, payment_code, amount, payment_method, payment_status,
			vnpay_transaction_id, vnpay_bank_code, vnpay_pay_date, payment_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := qx.Exec(ctx, query,
		payment.ID,
		payment.RentalID,
		payment.PaymentCode,
		payment.Amount,
		payment.PaymentMethod,
		payment.PaymentStatus,
		payment.VNPayTransactionID,
		payment.VNPayBankCode,
		payment.VNPayPayDate,
		payment.PaymentDate,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			r.log.Warn("Payment code collision",
				zap.String("payment_code", payment.PaymentCode),
			)
			return fmt.Errorf("create payment with code %s: %w", payment.PaymentCode, ErrDuplicate)
		}
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("payment_code", payment.PaymentCode),
		)
		return fmt.Errorf("create payment %s: %w", payment.PaymentCode, err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(qx.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByCode(ctx context.Context, qx database.Querier, code string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_code = $1`

	payment, err := scanPayment(qx.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by code",
			zap.Error(err),
			zap.String("payment_code", code),
		)
		return nil, fmt.Errorf("find payment by code %s: %w", code, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByCodeForUpdate(ctx context.Context, qx database.Querier, code string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_code = $1 FOR UPDATE`

	payment, err := scanPayment(qx.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock payment by code",
			zap.Error(err),
			zap.String("payment_code", code),
		)
		return nil, fmt.Errorf("lock payment by code %s: %w", code, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindLatestByRentalID(ctx context.Context, qx database.Querier, rentalID uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE rental_id = $1 ORDER BY created_at DESC LIMIT 1 FOR UPDATE`

	payment, err := scanPayment(qx.QueryRow(ctx, query, rentalID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find latest payment",
			zap.Error(err),
			zap.String("rental_id", rentalID.String()),
		)
		return nil, fmt.Errorf("find latest payment for rental %s: %w", rentalID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByRentalID(ctx context.Context, qx database.Querier, rentalID uuid.UUID) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE rental_id = $1 ORDER BY created_at DESC`

	rows, err := qx.Query(ctx, query, rentalID)
	if err != nil {
		r.log.Error("Failed to list payments for rental",
			zap.Error(err),
			zap.String("rental_id", rentalID.String()),
		)
		return nil, fmt.Errorf("list payments for rental %s: %w", rentalID.String(), err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

func (r *paymentRepository) FindAll(ctx context.Context, qx database.Querier, status, method string, limit, offset int) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` AND payment_status = $%d`, len(args))
	}
	if method != "" {
		args = append(args, method)
		query += fmt.Sprintf(` AND payment_method = $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := qx.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list payments", zap.Error(err))
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

func (r *paymentRepository) Count(ctx context.Context, qx database.Querier, status, method string) (int64, error) {
	query := `SELECT COUNT(*) FROM payments WHERE 1=1`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` AND payment_status = $%d`, len(args))
	}
	if method != "" {
		args = append(args, method)
		query += fmt.Sprintf(` AND payment_method = $%d`, len(args))
	}

	var total int64
	if err := qx.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count payments", zap.Error(err))
		return 0, fmt.Errorf("count payments: %w", err)
	}

	return total, nil
}

func (r *paymentRepository) Update(ctx context.Context, qx database.Querier, payment *entity.Payment) error {
	query := `
		UPDATE payments
		SET rental_id = $2, amount = $3, payment_method = $4, payment_status = $5,
		    vnpay_transaction_id = $6, vnpay_bank_code = $7, vnpay_pay_date = $8,
		    payment_date = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := qx.Exec(ctx, query,
		payment.ID,
		payment.RentalID,
		payment.Amount,
		payment.PaymentMethod,
		payment.PaymentStatus,
		payment.VNPayTransactionID,
		payment.VNPayBankCode,
		payment.VNPayPayDate,
		payment.PaymentDate,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update payment",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()),
		)
		return fmt.Errorf("update payment %s: %w", payment.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", payment.ID.String())
	}

	return nil
}

func collectPayments(rows pgx.Rows) ([]*entity.Payment, error) {
	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
