package request

// SubmitOrderRequest is the public booking form: renter identity plus
// the requested catalog model and date range. Document images arrive as
// URLs produced by the upload collaborator.
type SubmitOrderRequest struct {
	FullName            string  `json:"full_name" validate:"required,min=2,max=255"`
	Phone               string  `json:"phone" validate:"required,min=8,max=20"`
	Email               *string `json:"email,omitempty" validate:"omitempty,email"`
	CitizenID           string  `json:"citizen_id" validate:"required,min=9,max=20"`
	CitizenIDFrontImage *string `json:"citizen_id_front_image,omitempty"`
	CitizenIDBackImage  *string `json:"citizen_id_back_image,omitempty"`

	MotorcycleID  string `json:"motorcycle_id" validate:"required,uuid4"`
	Quantity      int    `json:"quantity" validate:"required,min=1,max=10"`
	StartDate     string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date" validate:"required,datetime=2006-01-02"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash vnpay"`
	BankCode      string `json:"bank_code,omitempty"`
}

// SettleRentalRequest is the admin return/checkout action.
type SettleRentalRequest struct {
	ActualReturnDate string `json:"actual_return_date" validate:"required"`
	PaymentMethod    string `json:"payment_method" validate:"required,oneof=cash vnpay"`
	Amount           string `json:"amount" validate:"required"`
}

// CalculatePaymentRequest previews the balance for a return date
// without mutating anything.
type CalculatePaymentRequest struct {
	ActualReturnDate string `json:"actual_return_date" validate:"required"`
}

type UpdateRentalStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed rented returned cancelled"`
}

// AssignMotorcyclesRequest binds physical vehicles to rental items. An
// assignment with an empty UnitID unassigns the item.
type AssignMotorcyclesRequest struct {
	Assignments []ItemAssignment `json:"assignments" validate:"required,min=1,dive"`
}

type ItemAssignment struct {
	RentalItemID string `json:"rental_item_id" validate:"required,uuid4"`
	UnitID       string `json:"unit_id,omitempty" validate:"omitempty,uuid4"`
}
