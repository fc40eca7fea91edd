package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentalItem is one motorcycle slot within a rental. MotorcycleUnitID
// stays nil until staff assigns a physical vehicle; unassigned items do
// not accrue charges.
type RentalItem struct {
	BaseSimple
	RentalID         uuid.UUID       `db:"rental_id"`
	MotorcycleUnitID *uuid.UUID      `db:"motorcycle_unit_id"`
	Quantity         int             `db:"quantity"`
	PricePerDay      decimal.Decimal `db:"price_per_day"`
	SubTotal         decimal.Decimal `db:"sub_total"`
}

// Assigned reports whether a physical vehicle is bound to this slot.
func (i *RentalItem) Assigned() bool {
	return i.MotorcycleUnitID != nil
}
