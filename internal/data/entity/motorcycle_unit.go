package entity

import (
	"github.com/google/uuid"
)

type UnitStatus string

const (
	UnitStatusReady       UnitStatus = "ready"
	UnitStatusRented      UnitStatus = "rented"
	UnitStatusMaintenance UnitStatus = "maintenance"
)

// MotorcycleUnit is one physical vehicle. It is referenced, never
// owned, by rental items: many rentals over its lifetime, at most one
// active assignment at a time.
type MotorcycleUnit struct {
	Base
	MotorcycleID uuid.UUID  `db:"motorcycle_id"`
	LicensePlate string     `db:"license_plate"`
	ModelYear    *int       `db:"model_year"`
	Description  *string    `db:"description"`
	Status       UnitStatus `db:"status"`
}
