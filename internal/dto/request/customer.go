package request

type UpdateCustomerRequest struct {
	FullName            *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=255"`
	Phone               *string `json:"phone,omitempty"`
	Email               *string `json:"email,omitempty" validate:"omitempty,email"`
	Hometown            *string `json:"hometown,omitempty"`
	Address             *string `json:"address,omitempty"`
	CitizenID           *string `json:"citizen_id,omitempty"`
	CitizenIDFrontImage *string `json:"citizen_id_front_image,omitempty"`
	CitizenIDBackImage  *string `json:"citizen_id_back_image,omitempty"`
	DriverLicenseNumber *string `json:"driver_license_number,omitempty"`
	DriverLicenseImage  *string `json:"driver_license_image,omitempty"`
}
