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

type RentalRepository interface {
	Create(ctx context.Context, qx database.Querier, rental *entity.Rental) error
	FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Rental, error)
	// FindByIDForUpdate locks the rental row for the duration of the
	// caller's transaction. Settlement and reconciliation must use it.
	FindByIDForUpdate(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Rental, error)
	// FindByTransactionID is the legacy callback lookup path: matches
	// the gateway order reference mirrored on the rental itself.
	FindByTransactionID(ctx context.Context, qx database.Querier, txnRef string) (*entity.Rental, error)
	FindAll(ctx context.Context, qx database.Querier, status string, limit, offset int) ([]*entity.Rental, error)
	Count(ctx context.Context, qx database.Querier, status string) (int64, error)
	Update(ctx context.Context, qx database.Querier, rental *entity.Rental) error
	UpdateStatus(ctx context.Context, qx database.Querier, id uuid.UUID, status entity.RentalStatus) error
	Delete(ctx context.Context, qx database.Querier, id uuid.UUID) error
}

type rentalRepository struct {
	log *zap.Logger
}

func NewRentalRepository(log *zap.Logger) RentalRepository {
	return &rentalRepository{
		log: log.With(zap.String("repository", "rental")),
	}
}

const rentalColumns = `id, customer_id, start_date, end_date, actual_return_date, rental_days,
		total_amount, deposit_amount, paid_amount, status, payment_method, payment_status,
		vnpay_transaction_id, vnpay_bank_code, notes, created_at, updated_at`

func scanRental(row pgx.Row) (*entity.Rental, error) {
	var rental entity.Rental
	err := row.Scan(
		&rental.ID,
		&rental.CustomerID,
		&rental.StartDate,
		&rental.EndDate,
		&rental.ActualReturnDate,
		&rental.RentalDays,
		&rental.TotalAmount,
		&rental.DepositAmount,
		&rental.PaidAmount,
		&rental.Status,
		&rental.PaymentMethod,
		&rental.PaymentStatus,
		&rental.VNPayTransactionID,
		&rental.VNPayBankCode,
		&rental.Notes,
		&rental.CreatedAt,
		&rental.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *rentalRepository) Create(ctx context.Context, qx database.Querier, rental *entity.Rental) error {
	query := `
		INSERT INTO rentals (id, customer_id, start_date, end_date, actual_return_date, rental_days,
			total_amount, deposit_amount, paid_amount, status, payment_method, payment_status,
			vnpay_transaction_id, vnpay_bank_code, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := qx.Exec(ctx, query,
		rental.ID,
		rental.CustomerID,
		rental.StartDate,
		rental.EndDate,
		rental.ActualReturnDate,
		rental.RentalDays,
		rental.TotalAmount,
		rental.DepositAmount,
		rental.PaidAmount,
		rental.Status,
		rental.PaymentMethod,
		rental.PaymentStatus,
		rental.VNPayTransactionID,
		rental.VNPayBankCode,
		rental.Notes,
		rental.CreatedAt,
		rental.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create rental",
			zap.Error(err),
			zap.String("rental_id", rental.ID.String()),
		)
		return fmt.Errorf("create rental %s: %w", rental.ID.String(), err)
	}

	return nil
}

func (r *rentalRepository) FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`

	rental, err := scanRental(qx.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rental by ID",
			zap.Error(err),
			zap.String("rental_id", id.String()),
		)
		return nil, fmt.Errorf("find rental by ID %s: %w", id.String(), err)
	}

	return rental, nil
}

func (r *rentalRepository) FindByIDForUpdate(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1 FOR UPDATE`

	rental, err := scanRental(qx.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock rental",
			zap.Error(err),
			zap.String("rental_id", id.String()),
		)
		return nil, fmt.Errorf("lock rental %s: %w", id.String(), err)
	}

	return rental, nil
}

func (r *rentalRepository) FindByTransactionID(ctx context.Context, qx database.Querier, txnRef string) (*entity.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE vnpay_transaction_id = $1 ORDER BY updated_at DESC LIMIT 1`

	rental, err := scanRental(qx.QueryRow(ctx, query, txnRef))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rental by transaction ID",
			zap.Error(err),
			zap.String("txn_ref", txnRef),
		)
		return nil, fmt.Errorf("find rental by transaction ID %s: %w", txnRef, err)
	}

	return rental, nil
}

func (r *rentalRepository) FindAll(ctx context.Context, qx database.Querier, status string, limit, offset int) ([]*entity.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := qx.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list rentals", zap.Error(err), zap.String("status", status))
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	defer rows.Close()

	var rentals []*entity.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rental: %w", err)
		}
		rentals = append(rentals, rental)
	}

	return rentals, rows.Err()
}

func (r *rentalRepository) Count(ctx context.Context, qx database.Querier, status string) (int64, error) {
	query := `SELECT COUNT(*) FROM rentals`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}

	var total int64
	if err := qx.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count rentals", zap.Error(err))
		return 0, fmt.Errorf("count rentals: %w", err)
	}

	return total, nil
}

func (r *rentalRepository) Update(ctx context.Context, qx database.Querier, rental *entity.Rental) error {
	query := `
		UPDATE rentals
		SET customer_id = $2, start_date = $3, end_date = $4, actual_return_date = $5,
		    rental_days = $6, total_amount = $7, deposit_amount = $8, paid_amount = $9,
		    status = $10, payment_method = $11, payment_status = $12,
		    vnpay_transaction_id = $13, vnpay_bank_code = $14, notes = $15, updated_at = $16
		WHERE id = $1
	`

	result, err := qx.Exec(ctx, query,
		rental.ID,
		rental.CustomerID,
		rental.StartDate,
		rental.EndDate,
		rental.ActualReturnDate,
		rental.RentalDays,
		rental.TotalAmount,
		rental.DepositAmount,
		rental.PaidAmount,
		rental.Status,
		rental.PaymentMethod,
		rental.PaymentStatus,
		rental.VNPayTransactionID,
		rental.VNPayBankCode,
		rental.Notes,
		rental.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update rental",
			zap.Error(err),
			zap.String("rental_id", rental.ID.String()),
		)
		return fmt.Errorf("update rental %s: %w", rental.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("rental %s not found", rental.ID.String())
	}

	return nil
}

func (r *rentalRepository) UpdateStatus(ctx context.Context, qx database.Querier, id uuid.UUID, status entity.RentalStatus) error {
	query := `UPDATE rentals SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := qx.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update rental status",
			zap.Error(err),
			zap.String("rental_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update rental %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("rental %s not found", id.String())
	}

	return nil
}

func (r *rentalRepository) Delete(ctx context.Context, qx database.Querier, id uuid.UUID) error {
	// rental_items and payments cascade via FK
	query := `DELETE FROM rentals WHERE id = $1`

	result, err := qx.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete rental",
			zap.Error(err),
			zap.String("rental_id", id.String()),
		)
		return fmt.Errorf("delete rental %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("rental %s not found", id.String())
	}

	r.log.Info("Rental deleted", zap.String("rental_id", id.String()))
	return nil
}
