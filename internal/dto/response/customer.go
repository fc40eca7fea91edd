package response

import (
	"time"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
)

type CustomerResponse struct {
	ID                  string    `json:"id"`
	FullName            string    `json:"full_name"`
	Phone               *string   `json:"phone,omitempty"`
	Email               *string   `json:"email,omitempty"`
	DateOfBirth         *string   `json:"date_of_birth,omitempty"`
	Hometown            *string   `json:"hometown,omitempty"`
	Address             *string   `json:"address,omitempty"`
	CitizenID           *string   `json:"citizen_id,omitempty"`
	CitizenIDFrontImage *string   `json:"citizen_id_front_image,omitempty"`
	CitizenIDBackImage  *string   `json:"citizen_id_back_image,omitempty"`
	DriverLicenseNumber *string   `json:"driver_license_number,omitempty"`
	DriverLicenseImage  *string   `json:"driver_license_image,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

func CustomerToResponse(c *entity.Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:                  c.ID.String(),
		FullName:            c.FullName,
		Phone:               c.Phone,
		Email:               c.Email,
		Hometown:            c.Hometown,
		Address:             c.Address,
		CitizenID:           c.CitizenID,
		CitizenIDFrontImage: c.CitizenIDFrontImage,
		CitizenIDBackImage:  c.CitizenIDBackImage,
		DriverLicenseNumber: c.DriverLicenseNumber,
		DriverLicenseImage:  c.DriverLicenseImage,
		CreatedAt:           c.CreatedAt,
	}
	if c.DateOfBirth != nil {
		dob := c.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	return resp
}
