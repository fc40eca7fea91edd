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

type MotorcycleUnitRepository interface {
	Create(ctx context.Context, qx database.Querier, unit *entity.MotorcycleUnit) error
	FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.MotorcycleUnit, error)
	FindByMotorcycleID(ctx context.Context, qx database.Querier, motorcycleID uuid.UUID) ([]*entity.MotorcycleUnit, error)
	FindAvailableByMotorcycleID(ctx context.Context, qx database.Querier, motorcycleID uuid.UUID) ([]*entity.MotorcycleUnit, error)
	Update(ctx context.Context, qx database.Querier, unit *entity.MotorcycleUnit) error
	UpdateStatus(ctx context.Context, qx database.Querier, id uuid.UUID, status entity.UnitStatus) error
	Delete(ctx context.Context, qx database.Querier, id uuid.UUID) error
}

type motorcycleUnitRepository struct {
	log *zap.Logger
}

func NewMotorcycleUnitRepository(log *zap.Logger) MotorcycleUnitRepository {
	return &motorcycleUnitRepository{
		log: log.With(zap.String("repository", "motorcycle_unit")),
	}
}

const unitColumns = `id, motorcycle_id, license_plate, model_year, description, status, created_at, updated_at`

func scanUnit(row pgx.Row) (*entity.MotorcycleUnit, error) {
	var unit entity.MotorcycleUnit
	err := row.Scan(
		&unit.ID,
		&unit.MotorcycleID,
		&unit.LicensePlate,
		&unit.ModelYear,
		&unit.Description,
		&unit.Status,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *motorcycleUnitRepository) Create(ctx context.Context, qx database.Querier, unit *entity.MotorcycleUnit) error {
	query := `
		INSERT INTO motorcycle_units (id, motorcycle_id, license_plate, model_year, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := qx.Exec(ctx, query,
		unit.ID,
		unit.MotorcycleID,
		unit.LicensePlate,
		unit.ModelYear,
		unit.Description,
		unit.Status,
		unit.CreatedAt,
		unit.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create unit with plate %s: %w", unit.LicensePlate, ErrDuplicate)
		}
		r.log.Error("Failed to create motorcycle unit",
			zap.Error(err),
			zap.String("license_plate", unit.LicensePlate),
		)
		return fmt.Errorf("create motorcycle unit %s: %w", unit.LicensePlate, err)
	}

	return nil
}

func (r *motorcycleUnitRepository) FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.MotorcycleUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM motorcycle_units WHERE id = $1`

	unit, err := scanUnit(qx.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find motorcycle unit by ID",
			zap.Error(err),
			zap.String("unit_id", id.String()),
		)
		return nil, fmt.Errorf("find motorcycle unit by ID %s: %w", id.String(), err)
	}

	return unit, nil
}

func (r *motorcycleUnitRepository) FindByMotorcycleID(ctx context.Context, qx database.Querier, motorcycleID uuid.UUID) ([]*entity.MotorcycleUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM motorcycle_units WHERE motorcycle_id = $1 ORDER BY license_plate`

	return r.queryUnits(ctx, qx, query, motorcycleID)
}

func (r *motorcycleUnitRepository) FindAvailableByMotorcycleID(ctx context.Context, qx database.Querier, motorcycleID uuid.UUID) ([]*entity.MotorcycleUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM motorcycle_units WHERE motorcycle_id = $1 AND status = 'ready' ORDER BY license_plate`

	return r.queryUnits(ctx, qx, query, motorcycleID)
}

func (r *motorcycleUnitRepository) queryUnits(ctx context.Context, qx database.Querier, query string, motorcycleID uuid.UUID) ([]*entity.MotorcycleUnit, error) {
	rows, err := qx.Query(ctx, query, motorcycleID)
	if err != nil {
		r.log.Error("Failed to list motorcycle units",
			zap.Error(err),
			zap.String("motorcycle_id", motorcycleID.String()),
		)
		return nil, fmt.Errorf("list motorcycle units for %s: %w", motorcycleID.String(), err)
	}
	defer rows.Close()

	var units []*entity.MotorcycleUnit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan motorcycle unit: %w", err)
		}
		units = append(units, unit)
	}

	return units, rows.Err()
}

func (r *motorcycleUnitRepository) Update(ctx context.Context, qx database.Querier, unit *entity.MotorcycleUnit) error {
	query := `
		UPDATE motorcycle_units
		SET motorcycle_id = $2, license_plate = $3, model_year = $4, description = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := qx.Exec(ctx, query,
		unit.ID,
		unit.MotorcycleID,
		unit.LicensePlate,
		unit.ModelYear,
		unit.Description,
		unit.Status,
		unit.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update motorcycle unit",
			zap.Error(err),
			zap.String("unit_id", unit.ID.String()),
		)
		return fmt.Errorf("update motorcycle unit %s: %w", unit.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("motorcycle unit %s not found", unit.ID.String())
	}

	return nil
}

func (r *motorcycleUnitRepository) UpdateStatus(ctx context.Context, qx database.Querier, id uuid.UUID, status entity.UnitStatus) error {
	query := `UPDATE motorcycle_units SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := qx.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update motorcycle unit status",
			zap.Error(err),
			zap.String("unit_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update motorcycle unit %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("motorcycle unit %s not found", id.String())
	}

	return nil
}

func (r *motorcycleUnitRepository) Delete(ctx context.Context, qx database.Querier, id uuid.UUID) error {
	query := `DELETE FROM motorcycle_units WHERE id = $1`

	result, err := qx.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete motorcycle unit",
			zap.Error(err),
			zap.String("unit_id", id.String()),
		)
		return fmt.Errorf("delete motorcycle unit %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("motorcycle unit %s not found", id.String())
	}

	return nil
}
