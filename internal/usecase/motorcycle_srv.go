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
)

type MotorcycleService interface {
	CreateMotorcycle(ctx context.Context, req *request.CreateMotorcycleRequest) (*response.MotorcycleResponse, error)
	GetMotorcycle(ctx context.Context, motorcycleID string) (*response.MotorcycleResponse, error)
	ListMotorcycles(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.MotorcycleResponse], error)
	UpdateMotorcycle(ctx context.Context, motorcycleID string, req *request.UpdateMotorcycleRequest) (*response.MotorcycleResponse, error)
	DeleteMotorcycle(ctx context.Context, motorcycleID string) error

	CreateUnit(ctx context.Context, req *request.CreateUnitRequest) (*response.MotorcycleUnitResponse, error)
	ListUnits(ctx context.Context, motorcycleID string) ([]response.MotorcycleUnitResponse, error)
	UpdateUnit(ctx context.Context, unitID string, req *request.UpdateUnitRequest) (*response.MotorcycleUnitResponse, error)
	DeleteUnit(ctx context.Context, unitID string) error
}

type motorcycleService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewMotorcycleService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) MotorcycleService {
	return &motorcycleService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "motorcycle")),
	}
}

func (s *motorcycleService) CreateMotorcycle(ctx context.Context, req *request.CreateMotorcycleRequest) (*response.MotorcycleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	pricePerDay, err := decimal.NewFromString(req.PricePerDay)
	if err != nil || !pricePerDay.IsPositive() {
		return nil, fmt.Errorf("%w: invalid price per day %s", ErrValidation, req.PricePerDay)
	}

	now := time.Now()
	motorcycle := &entity.Motorcycle{
		Base:           entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		Name:           req.Name,
		Brand:          req.Brand,
		EngineCapacity: req.EngineCapacity,
		PricePerDay:    pricePerDay,
		Image:          req.Image,
	}
	if motorcycle.PricePerWeek, err = parseOptionalPrice(req.PricePerWeek); err != nil {
		return nil, err
	}
	if motorcycle.PricePerMonth, err = parseOptionalPrice(req.PricePerMonth); err != nil {
		return nil, err
	}

	if err := s.repo.Motorcycle.Create(ctx, s.db, motorcycle); err != nil {
		return nil, fmt.Errorf("create motorcycle: %w", err)
	}

	s.log.Info("Motorcycle created", zap.String("motorcycle_id", motorcycle.ID.String()), zap.String("name", motorcycle.Name))
	resp := response.MotorcycleToResponse(motorcycle, 0)
	return &resp, nil
}

func (s *motorcycleService) GetMotorcycle(ctx context.Context, motorcycleID string) (*response.MotorcycleResponse, error) {
	id, err := uuid.Parse(motorcycleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid motorcycle ID %s", ErrValidation, motorcycleID)
	}

	motorcycle, err := s.repo.Motorcycle.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("find motorcycle: %w", err)
	}
	if motorcycle == nil {
		return nil, fmt.Errorf("%w: motorcycle %s", ErrNotFound, motorcycleID)
	}

	available, err := s.repo.MotorcycleUnit.FindAvailableByMotorcycleID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("count available units: %w", err)
	}

	resp := response.MotorcycleToResponse(motorcycle, len(available))
	return &resp, nil
}

func (s *motorcycleService) ListMotorcycles(ctx context.Context, page *request.PaginatedRequest) (*response.PaginatedResponse[response.MotorcycleResponse], error) {
	motorcycles, err := s.repo.Motorcycle.FindAll(ctx, s.db, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list motorcycles: %w", err)
	}
	total, err := s.repo.Motorcycle.Count(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("count motorcycles: %w", err)
	}

	data := make([]response.MotorcycleResponse, len(motorcycles))
	for i, motorcycle := range motorcycles {
		available, err := s.repo.MotorcycleUnit.FindAvailableByMotorcycleID(ctx, s.db, motorcycle.ID)
		if err != nil {
			return nil, fmt.Errorf("count available units: %w", err)
		}
		data[i] = response.MotorcycleToResponse(motorcycle, len(available))
	}
	return response.NewPaginatedResponse(data, page.Page, page.Limit(), total), nil
}

func (s *motorcycleService) UpdateMotorcycle(ctx context.Context, motorcycleID string, req *request.UpdateMotorcycleRequest) (*response.MotorcycleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	id, err := uuid.Parse(motorcycleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid motorcycle ID %s", ErrValidation, motorcycleID)
	}

	motorcycle, err := s.repo.Motorcycle.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("find motorcycle: %w", err)
	}
	if motorcycle == nil {
		return nil, fmt.Errorf("%w: motorcycle %s", ErrNotFound, motorcycleID)
	}

	if req.Name != nil {
		motorcycle.Name = *req.Name
	}
	if req.Brand != nil {
		motorcycle.Brand = req.Brand
	}
	if req.EngineCapacity != nil {
		motorcycle.EngineCapacity = req.EngineCapacity
	}
	if req.Image != nil {
		motorcycle.Image = req.Image
	}
	if req.PricePerDay != nil {
		pricePerDay, err := decimal.NewFromString(*req.PricePerDay)
		if err != nil || !pricePerDay.IsPositive() {
			return nil, fmt.Errorf("%w: invalid price per day %s", ErrValidation, *req.PricePerDay)
		}
		motorcycle.PricePerDay = pricePerDay
	}
	if req.PricePerWeek != nil {
		if motorcycle.PricePerWeek, err = parseOptionalPrice(req.PricePerWeek); err != nil {
			return nil, err
		}
	}
	if req.PricePerMonth != nil {
		if motorcycle.PricePerMonth, err = parseOptionalPrice(req.PricePerMonth); err != nil {
			return nil, err
		}
	}

	motorcycle.UpdatedAt = time.Now()
	if err := s.repo.Motorcycle.Update(ctx, s.db, motorcycle); err != nil {
		return nil, fmt.Errorf("update motorcycle: %w", err)
	}

	available, err := s.repo.MotorcycleUnit.FindAvailableByMotorcycleID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("count available units: %w", err)
	}
	resp := response.MotorcycleToResponse(motorcycle, len(available))
	return &resp, nil
}

func (s *motorcycleService) DeleteMotorcycle(ctx context.Context, motorcycleID string) error {
	id, err := uuid.Parse(motorcycleID)
	if err != nil {
		return fmt.Errorf("%w: invalid motorcycle ID %s", ErrValidation, motorcycleID)
	}

	units, err := s.repo.MotorcycleUnit.FindByMotorcycleID(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("find units: %w", err)
	}
	for _, unit := range units {
		if unit.Status == entity.UnitStatusRented {
			return fmt.Errorf("%w: unit %s is currently rented", ErrConflict, unit.LicensePlate)
		}
	}

	if err := s.repo.Motorcycle.Delete(ctx, s.db, id); err != nil {
		return fmt.Errorf("delete motorcycle: %w", err)
	}
	return nil
}

func (s *motorcycleService) CreateUnit(ctx context.Context, req *request.CreateUnitRequest) (*response.MotorcycleUnitResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	motorcycleID, err := uuid.Parse(req.MotorcycleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid motorcycle ID %s", ErrValidation, req.MotorcycleID)
	}

	motorcycle, err := s.repo.Motorcycle.FindByID(ctx, s.db, motorcycleID)
	if err != nil {
		return nil, fmt.Errorf("find motorcycle: %w", err)
	}
	if motorcycle == nil {
		return nil, fmt.Errorf("%w: motorcycle %s", ErrNotFound, req.MotorcycleID)
	}

	now := time.Now()
	unit := &entity.MotorcycleUnit{
		Base:         entity.Base{ID: utils.GenerateUUID(), CreatedAt: now, UpdatedAt: now},
		MotorcycleID: motorcycleID,
		LicensePlate: req.LicensePlate,
		ModelYear:    req.ModelYear,
		Description:  req.Description,
		Status:       entity.UnitStatusReady,
	}
	if err := s.repo.MotorcycleUnit.Create(ctx, s.db, unit); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: license plate %s already registered", ErrConflict, req.LicensePlate)
		}
		return nil, fmt.Errorf("create unit: %w", err)
	}

	s.log.Info("Unit registered", zap.String("unit_id", unit.ID.String()), zap.String("license_plate", unit.LicensePlate))
	resp := response.MotorcycleUnitToResponse(unit)
	return &resp, nil
}

func (s *motorcycleService) ListUnits(ctx context.Context, motorcycleID string) ([]response.MotorcycleUnitResponse, error) {
	id, err := uuid.Parse(motorcycleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid motorcycle ID %s", ErrValidation, motorcycleID)
	}

	units, err := s.repo.MotorcycleUnit.FindByMotorcycleID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}

	data := make([]response.MotorcycleUnitResponse, len(units))
	for i, unit := range units {
		data[i] = response.MotorcycleUnitToResponse(unit)
	}
	return data, nil
}

func (s *motorcycleService) UpdateUnit(ctx context.Context, unitID string, req *request.UpdateUnitRequest) (*response.MotorcycleUnitResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	id, err := uuid.Parse(unitID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid unit ID %s", ErrValidation, unitID)
	}

	unit, err := s.repo.MotorcycleUnit.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("find unit: %w", err)
	}
	if unit == nil {
		return nil, fmt.Errorf("%w: motorcycle unit %s", ErrNotFound, unitID)
	}

	if req.LicensePlate != nil {
		unit.LicensePlate = *req.LicensePlate
	}
	if req.ModelYear != nil {
		unit.ModelYear = req.ModelYear
	}
	if req.Description != nil {
		unit.Description = req.Description
	}
	if req.Status != nil {
		unit.Status = entity.UnitStatus(*req.Status)
	}

	unit.UpdatedAt = time.Now()
	if err := s.repo.MotorcycleUnit.Update(ctx, s.db, unit); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: license plate %s already registered", ErrConflict, unit.LicensePlate)
		}
		return nil, fmt.Errorf("update unit: %w", err)
	}

	resp := response.MotorcycleUnitToResponse(unit)
	return &resp, nil
}

func (s *motorcycleService) DeleteUnit(ctx context.Context, unitID string) error {
	id, err := uuid.Parse(unitID)
	if err != nil {
		return fmt.Errorf("%w: invalid unit ID %s", ErrValidation, unitID)
	}

	unit, err := s.repo.MotorcycleUnit.FindByID(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("find unit: %w", err)
	}
	if unit == nil {
		return fmt.Errorf("%w: motorcycle unit %s", ErrNotFound, unitID)
	}
	if unit.Status == entity.UnitStatusRented {
		return fmt.Errorf("%w: unit %s is currently rented", ErrConflict, unit.LicensePlate)
	}

	if err := s.repo.MotorcycleUnit.Delete(ctx, s.db, id); err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	return nil
}

func parseOptionalPrice(raw *string) (*decimal.Decimal, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	price, err := decimal.NewFromString(*raw)
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("%w: invalid price %s", ErrValidation, *raw)
	}
	return &price, nil
}
