package repository

import (
	"context"
	"fmt"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type StoreInfoRepository interface {
	// Get returns the singleton row, or nil when the store has not been
	// configured yet.
	Get(ctx context.Context, qx database.Querier) (*entity.StoreInfo, error)
	Upsert(ctx context.Context, qx database.Querier, info *entity.StoreInfo) error
}

type storeInfoRepository struct {
	log *zap.Logger
}

func NewStoreInfoRepository(log *zap.Logger) StoreInfoRepository {
	return &storeInfoRepository{
		log: log.With(zap.String("repository", "store_info")),
	}
}

func (r *storeInfoRepository) Get(ctx context.Context, qx database.Querier) (*entity.StoreInfo, error) {
	query := `
		SELECT id, store_name, owner_name, address, phone, email, business_hours,
		       google_map_url, slide_url, description, created_at, updated_at
		FROM store_info
		ORDER BY created_at
		LIMIT 1
	`

	var info entity.StoreInfo
	err := qx.QueryRow(ctx, query).Scan(
		&info.ID,
		&info.StoreName,
		&info.OwnerName,
		&info.Address,
		&info.Phone,
		&info.Email,
		&info.BusinessHours,
		&info.GoogleMapURL,
		&info.SlideURL,
		&info.Description,
		&info.CreatedAt,
		&info.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to get store info", zap.Error(err))
		return nil, fmt.Errorf("get store info: %w", err)
	}

	return &info, nil
}

func (r *storeInfoRepository) Upsert(ctx context.Context, qx database.Querier, info *entity.StoreInfo) error {
	query := `
		INSERT INTO store_info (id, store_name, owner_name, address, phone, email, business_hours,
			google_map_url, slide_url, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE
		SET store_name = EXCLUDED.store_name,
		    owner_name = EXCLUDED.owner_name,
		    address = EXCLUDED.address,
		    phone = EXCLUDED.phone,
		    email = EXCLUDED.email,
		    business_hours = EXCLUDED.business_hours,
		    google_map_url = EXCLUDED.google_map_url,
		    slide_url = EXCLUDED.slide_url,
		    description = EXCLUDED.description,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := qx.Exec(ctx, query,
		info.ID,
		info.StoreName,
		info.OwnerName,
		info.Address,
		info.Phone,
		info.Email,
		info.BusinessHours,
		info.GoogleMapURL,
		info.SlideURL,
		info.Description,
		info.CreatedAt,
		info.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert store info", zap.Error(err))
		return fmt.Errorf("upsert store info: %w", err)
	}

	return nil
}
