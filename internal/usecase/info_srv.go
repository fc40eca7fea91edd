package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/repository"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/dto/request"
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/dto/response"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/database"
	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/utils"
)

type StoreInfoService interface {
	GetStoreInfo(ctx context.Context) (*response.StoreInfoResponse, error)
	UpdateStoreInfo(ctx context.Context, req *request.UpdateStoreInfoRequest) (*response.StoreInfoResponse, error)
}

type storeInfoService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewStoreInfoService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) StoreInfoService {
	return &storeInfoService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "store_info")),
	}
}

func (s *storeInfoService) GetStoreInfo(ctx context.Context) (*response.StoreInfoResponse, error) {
	info, err := s.repo.StoreInfo.Get(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("get store info: %w", err)
	}
	if info == nil {
		return nil, fmt.Errorf("%w: store info is not configured", ErrNotFound)
	}

	resp := response.StoreInfoToResponse(info)
	return &resp, nil
}

func (s *storeInfoService) UpdateStoreInfo(ctx context.Context, req *request.UpdateStoreInfoRequest) (*response.StoreInfoResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	info, err := s.repo.StoreInfo.Get(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("get store info: %w", err)
	}
	if info == nil {
		info = &entity.StoreInfo{
			Base: entity.Base{ID: utils.GenerateUUID(), CreatedAt: now},
		}
	}

	info.StoreName = req.StoreName
	info.OwnerName = req.OwnerName
	info.Address = req.Address
	info.Phone = req.Phone
	info.Email = req.Email
	info.BusinessHours = req.BusinessHours
	info.GoogleMapURL = req.GoogleMapURL
	info.SlideURL = req.SlideURL
	info.Description = req.Description
	info.UpdatedAt = now

	if err := s.repo.StoreInfo.Upsert(ctx, s.db, info); err != nil {
		return nil, fmt.Errorf("save store info: %w", err)
	}

	s.log.Info("Store info updated", zap.String("store_name", info.StoreName))
	resp := response.StoreInfoToResponse(info)
	return &resp, nil
}
