package response

import (
	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
)

type MotorcycleResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Brand          *string `json:"brand,omitempty"`
	EngineCapacity *string `json:"engine_capacity,omitempty"`
	PricePerDay    string  `json:"price_per_day"`
	PricePerWeek   *string `json:"price_per_week,omitempty"`
	PricePerMonth  *string `json:"price_per_month,omitempty"`
	Image          *string `json:"image,omitempty"`
	AvailableUnits int     `json:"available_units"`
}

type MotorcycleUnitResponse struct {
	ID           string            `json:"id"`
	MotorcycleID string            `json:"motorcycle_id"`
	LicensePlate string            `json:"license_plate"`
	ModelYear    *int              `json:"model_year,omitempty"`
	Description  *string           `json:"description,omitempty"`
	Status       entity.UnitStatus `json:"status"`
}

func MotorcycleToResponse(m *entity.Motorcycle, availableUnits int) MotorcycleResponse {
	resp := MotorcycleResponse{
		ID:             m.ID.String(),
		Name:           m.Name,
		Brand:          m.Brand,
		EngineCapacity: m.EngineCapacity,
		PricePerDay:    m.PricePerDay.String(),
		Image:          m.Image,
		AvailableUnits: availableUnits,
	}
	if m.PricePerWeek != nil {
		weekly := m.PricePerWeek.String()
		resp.PricePerWeek = &weekly
	}
	if m.PricePerMonth != nil {
		monthly := m.PricePerMonth.String()
		resp.PricePerMonth = &monthly
	}
	return resp
}

func MotorcycleUnitToResponse(u *entity.MotorcycleUnit) MotorcycleUnitResponse {
	return MotorcycleUnitResponse{
		ID:           u.ID.String(),
		MotorcycleID: u.MotorcycleID.String(),
		LicensePlate: u.LicensePlate,
		ModelYear:    u.ModelYear,
		Description:  u.Description,
		Status:       u.Status,
	}
}
