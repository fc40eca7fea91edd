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

type MotorcycleRepository interface {
	Create(ctx context.Context, qx database.Querier, motorcycle *entity.Motorcycle) error
	FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Motorcycle, error)
	FindAll(ctx context.Context, qx database.Querier, limit, offset int) ([]*entity.Motorcycle, error)
	Count(ctx context.Context, qx database.Querier) (int64, error)
	Update(ctx context.Context, qx database.Querier, motorcycle *entity.Motorcycle) error
	Delete(ctx context.Context, qx database.Querier, id uuid.UUID) error
}

type motorcycleRepository struct {
	log *zap.Logger
}

func NewMotorcycleRepository(log *zap.Logger) MotorcycleRepository {
	return &motorcycleRepository{
		log: log.With(zap.String("repository", "motorcycle")),
	}
}

const motorcycleColumns = `id, name, brand, engine_capacity, price_per_day, price_per_week, price_per_month, image, created_at, updated_at`

func scanMotorcycle(row pgx.Row) (*entity.Motorcycle, error) {
	var m entity.Motorcycle
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Brand,
		&m.EngineCapacity,
		&m.PricePerDay,
		&m.PricePerWeek,
		&m.PricePerMonth,
		&m.Image,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *motorcycleRepository) Create(ctx context.Context, qx database.Querier, motorcycle *entity.Motorcycle) error {
	query := `
		INSERT INTO motorcycles (id, name, brand, engine_capacity, price_per_day, price_per_week, price_per_month, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := qx.Exec(ctx, query,
		motorcycle.ID,
		motorcycle.Name,
		motorcycle.Brand,
		motorcycle.EngineCapacity,
		motorcycle.PricePerDay,
		motorcycle.PricePerWeek,
		motorcycle.PricePerMonth,
		motorcycle.Image,
		motorcycle.CreatedAt,
		motorcycle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create motorcycle",
			zap.Error(err),
			zap.String("name", motorcycle.Name),
		)
		return fmt.Errorf("create motorcycle %s: %w", motorcycle.Name, err)
	}

	return nil
}

func (r *motorcycleRepository) FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.Motorcycle, error) {
	query := `SELECT ` + motorcycleColumns + ` FROM motorcycles WHERE id = $1`

	motorcycle, err := scanMotorcycle(qx.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find motorcycle by ID",
			zap.Error(err),
			zap.String("motorcycle_id", id.String()),
		)
		return nil, fmt.Errorf("find motorcycle by ID %s: %w", id.String(), err)
	}

	return motorcycle, nil
}

func (r *motorcycleRepository) FindAll(ctx context.Context, qx database.Querier, limit, offset int) ([]*entity.Motorcycle, error) {
	query := `SELECT ` + motorcycleColumns + fmt.Sprintf(` FROM motorcycles ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := qx.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list motorcycles", zap.Error(err))
		return nil, fmt.Errorf("list motorcycles: %w", err)
	}
	defer rows.Close()

	var motorcycles []*entity.Motorcycle
	for rows.Next() {
		m, err := scanMotorcycle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan motorcycle: %w", err)
		}
		motorcycles = append(motorcycles, m)
	}

	return motorcycles, rows.Err()
}

func (r *motorcycleRepository) Count(ctx context.Context, qx database.Querier) (int64, error) {
	var total int64
	if err := qx.QueryRow(ctx, `SELECT COUNT(*) FROM motorcycles`).Scan(&total); err != nil {
		r.log.Error("Failed to count motorcycles", zap.Error(err))
		return 0, fmt.Errorf("count motorcycles: %w", err)
	}

	return total, nil
}

func (r *motorcycleRepository) Update(ctx context.Context, qx database.Querier, motorcycle *entity.Motorcycle) error {
	query := `
		UPDATE motorcycles
		SET name = $2, brand = $3, engine_capacity = $4, price_per_day = $5,
		    price_per_week = $6, price_per_month = $7, image = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := qx.Exec(ctx, query,
		motorcycle.ID,
		motorcycle.Name,
		motorcycle.Brand,
		motorcycle.EngineCapacity,
		motorcycle.PricePerDay,
		motorcycle.PricePerWeek,
		motorcycle.PricePerMonth,
		motorcycle.Image,
		motorcycle.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update motorcycle",
			zap.Error(err),
			zap.String("motorcycle_id", motorcycle.ID.String()),
		)
		return fmt.Errorf("update motorcycle %s: %w", motorcycle.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("motorcycle %s not found", motorcycle.ID.String())
	}

	return nil
}

func (r *motorcycleRepository) Delete(ctx context.Context, qx database.Querier, id uuid.UUID) error {
	// physical units cascade via FK
	query := `DELETE FROM motorcycles WHERE id = $1`

	result, err := qx.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete motorcycle",
			zap.Error(err),
			zap.String("motorcycle_id", id.String()),
		)
		return fmt.Errorf("delete motorcycle %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("motorcycle %s not found", id.String())
	}

	r.log.Info("Motorcycle deleted", zap.String("motorcycle_id", id.String()))
	return nil
}
