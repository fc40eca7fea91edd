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

type RentalItemRepository interface {
	Create(ctx context.Context, qx database.Querier, item *entity.RentalItem) error
	CreateBatch(ctx context.Context, qx database.Querier, items []*entity.RentalItem) error
	FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.RentalItem, error)
	FindByRentalID(ctx context.Context, qx database.Querier, rentalID uuid.UUID) ([]*entity.RentalItem, error)
	// FindAssignedByRentalID returns only items bound to a physical
	// vehicle; these are the items that accrue charges.
	FindAssignedByRentalID(ctx context.Context, qx database.Querier, rentalID uuid.UUID) ([]*entity.RentalItem, error)
	Update(ctx context.Context, qx database.Querier, item *entity.RentalItem) error
}

type rentalItemRepository struct {
	log *zap.Logger
}

func NewRentalItemRepository(log *zap.Logger) RentalItemRepository {
	return &rentalItemRepository{
		log: log.With(zap.String("repository", "rental_item")),
	}
}

const rentalItemColumns = `id, rental_id, motorcycle_unit_id, quantity, price_per_day, sub_total, created_at`

func scanRentalItem(row pgx.Row) (*entity.RentalItem, error) {
	var item entity.RentalItem
	err := row.Scan(
		&item.ID,
		&item.RentalID,
		&item.MotorcycleUnitID,
		&item.Quantity,
		&item.PricePerDay,
		&item.SubTotal,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *rentalItemRepository) Create(ctx context.Context, qx database.Querier, item *entity.RentalItem) error {
	query := `
		INSERT INTO rental_items (id, rental_id, motorcycle_unit_id, quantity, price_per_day, sub_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := qx.Exec(ctx, query,
		item.ID,
		item.RentalID,
		item.MotorcycleUnitID,
		item.Quantity,
		item.PricePerDay,
		item.SubTotal,
		item.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create rental item",
			zap.Error(err),
			zap.String("rental_id", item.RentalID.String()),
		)
		return fmt.Errorf("create rental item for rental %s: %w", item.RentalID.String(), err)
	}

	return nil
}

func (r *rentalItemRepository) CreateBatch(ctx context.Context, qx database.Querier, items []*entity.RentalItem) error {
	for _, item := range items {
		if err := r.Create(ctx, qx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *rentalItemRepository) FindByID(ctx context.Context, qx database.Querier, id uuid.UUID) (*entity.RentalItem, error) {
	query := `SELECT ` + rentalItemColumns + ` FROM rental_items WHERE id = $1`

	item, err := scanRentalItem(qx.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rental item by ID",
			zap.Error(err),
			zap.String("item_id", id.String()),
		)
		return nil, fmt.Errorf("find rental item by ID %s: %w", id.String(), err)
	}

	return item, nil
}

func (r *rentalItemRepository) FindByRentalID(ctx context.Context, qx database.Querier, rentalID uuid.UUID) ([]*entity.RentalItem, error) {
	query := `SELECT ` + rentalItemColumns + ` FROM rental_items WHERE rental_id = $1 ORDER BY created_at`

	return r.queryItems(ctx, qx, query, rentalID)
}

func (r *rentalItemRepository) FindAssignedByRentalID(ctx context.Context, qx database.Querier, rentalID uuid.UUID) ([]*entity.RentalItem, error) {
	query := `SELECT ` + rentalItemColumns + ` FROM rental_items WHERE rental_id = $1 AND motorcycle_unit_id IS NOT NULL ORDER BY created_at`

	return r.queryItems(ctx, qx, query, rentalID)
}

func (r *rentalItemRepository) queryItems(ctx context.Context, qx database.Querier, query string, rentalID uuid.UUID) ([]*entity.RentalItem, error) {
	rows, err := qx.Query(ctx, query, rentalID)
	if err != nil {
		r.log.Error("Failed to list rental items",
			zap.Error(err),
			zap.String("rental_id", rentalID.String()),
		)
		return nil, fmt.Errorf("list rental items for rental %s: %w", rentalID.String(), err)
	}
	defer rows.Close()

	var items []*entity.RentalItem
	for rows.Next() {
		item, err := scanRentalItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rental item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *rentalItemRepository) Update(ctx context.Context, qx database.Querier, item *entity.RentalItem) error {
	query := `
		UPDATE rental_items
		SET motorcycle_unit_id = $2, quantity = $3, price_per_day = $4, sub_total = $5
		WHERE id = $1
	`

	result, err := qx.Exec(ctx, query,
		item.ID,
		item.MotorcycleUnitID,
		item.Quantity,
		item.PricePerDay,
		item.SubTotal,
	)

	if err != nil {
		r.log.Error("Failed to update rental item",
			zap.Error(err),
			zap.String("item_id", item.ID.String()),
		)
		return fmt.Errorf("update rental item %s: %w", item.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("rental item %s not found", item.ID.String())
	}

	return nil
}
