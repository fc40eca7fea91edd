package request

type CreateMotorcycleRequest struct {
	Name           string  `json:"name" validate:"required,min=2,max=255"`
	Brand          *string `json:"brand,omitempty"`
	EngineCapacity *string `json:"engine_capacity,omitempty"`
	PricePerDay    string  `json:"price_per_day" validate:"required"`
	PricePerWeek   *string `json:"price_per_week,omitempty"`
	PricePerMonth  *string `json:"price_per_month,omitempty"`
	Image          *string `json:"image,omitempty"`
}

type UpdateMotorcycleRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Brand          *string `json:"brand,omitempty"`
	EngineCapacity *string `json:"engine_capacity,omitempty"`
	PricePerDay    *string `json:"price_per_day,omitempty"`
	PricePerWeek   *string `json:"price_per_week,omitempty"`
	PricePerMonth  *string `json:"price_per_month,omitempty"`
	Image          *string `json:"image,omitempty"`
}

type CreateUnitRequest struct {
	MotorcycleID string  `json:"motorcycle_id" validate:"required,uuid4"`
	LicensePlate string  `json:"license_plate" validate:"required,min=4,max=20"`
	ModelYear    *int    `json:"model_year,omitempty"`
	Description  *string `json:"description,omitempty"`
}

type UpdateUnitRequest struct {
	LicensePlate *string `json:"license_plate,omitempty" validate:"omitempty,min=4,max=20"`
	ModelYear    *int    `json:"model_year,omitempty"`
	Description  *string `json:"description,omitempty"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=ready rented maintenance"`
}
