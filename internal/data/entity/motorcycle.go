package entity

import (
	"github.com/shopspring/decimal"
)

// Motorcycle is a catalog model (the thing customers pick on the
// storefront), not a physical vehicle. Physical units live in
// MotorcycleUnit.
type Motorcycle struct {
	Base
	Name           string           `db:"name"`
	Brand          *string          `db:"brand"`
	EngineCapacity *string          `db:"engine_capacity"`
	PricePerDay    decimal.Decimal  `db:"price_per_day"`
	PricePerWeek   *decimal.Decimal `db:"price_per_week"`
	PricePerMonth  *decimal.Decimal `db:"price_per_month"`
	Image          *string          `db:"image"`
}
