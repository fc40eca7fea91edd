package entity

import "time"

// Customer holds renter identity. Document image fields store URLs
// produced by the upload collaborator, never file contents.
type Customer struct {
	Base
	FullName             string     `db:"full_name"`
	Phone                *string    `db:"phone"`
	Email                *string    `db:"email"`
	DateOfBirth          *time.Time `db:"date_of_birth"`
	Hometown             *string    `db:"hometown"`
	Address              *string    `db:"address"`
	CitizenID            *string    `db:"citizen_id"`
	CitizenIDFrontImage  *string    `db:"citizen_id_front_image"`
	CitizenIDBackImage   *string    `db:"citizen_id_back_image"`
	DriverLicenseNumber  *string    `db:"driver_license_number"`
	DriverLicenseImage   *string    `db:"driver_license_image"`
}
