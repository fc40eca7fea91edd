package response

import (
	"time"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
)

type RentalItemResponse struct {
	ID               string  `json:"id"`
	MotorcycleUnitID *string `json:"motorcycle_unit_id,omitempty"`
	MotorcycleName   string  `json:"motorcycle_name,omitempty"`
	LicensePlate     string  `json:"license_plate,omitempty"`
	Quantity         int     `json:"quantity"`
	PricePerDay      string  `json:"price_per_day"`
	SubTotal         string  `json:"sub_total"`
}

type RentalResponse struct {
	ID               string                     `json:"id"`
	CustomerID       *string                    `json:"customer_id,omitempty"`
	CustomerName     string                     `json:"customer_name,omitempty"`
	StartDate        string                     `json:"start_date"`
	EndDate          string                     `json:"end_date"`
	ActualReturnDate *string                    `json:"actual_return_date,omitempty"`
	RentalDays       int                        `json:"rental_days"`
	TotalAmount      string                     `json:"total_amount"`
	DepositAmount    string                     `json:"deposit_amount"`
	PaidAmount       string                     `json:"paid_amount"`
	Status           entity.RentalStatus        `json:"status"`
	PaymentMethod    string                     `json:"payment_method"`
	PaymentStatus    entity.RentalPaymentStatus `json:"payment_status"`
	Notes            *string                    `json:"notes,omitempty"`
	CreatedAt        time.Time                  `json:"created_at"`
}

type RentalDetailResponse struct {
	RentalResponse
	Items    []RentalItemResponse `json:"items"`
	Payments []PaymentResponse    `json:"payments"`

	// PaymentURL is set when an action produced a gateway redirect that
	// still has to be completed (gateway-method settlement).
	PaymentURL string `json:"payment_url,omitempty"`
}

// ChargeResponse is the settlement preview: what a rental would cost if
// returned on a given date.
type ChargeResponse struct {
	RentalID     string `json:"rental_id"`
	ReturnDate   string `json:"return_date"`
	BillableDays int    `json:"billable_days"`
	TotalAmount  string `json:"total_amount"`
	PaidAmount   string `json:"paid_amount"`
	Outstanding  string `json:"outstanding"`
}

// SubmitOrderResponse is returned by the public booking endpoint. For
// gateway payments PaymentURL carries the signed redirect target.
type SubmitOrderResponse struct {
	RentalID    string `json:"rental_id"`
	PaymentCode string `json:"payment_code"`
	TotalAmount string `json:"total_amount"`
	PaymentURL  string `json:"payment_url,omitempty"`
}

func RentalItemToResponse(item *entity.RentalItem) RentalItemResponse {
	resp := RentalItemResponse{
		ID:          item.ID.String(),
		Quantity:    item.Quantity,
		PricePerDay: item.PricePerDay.String(),
		SubTotal:    item.SubTotal.String(),
	}
	if item.MotorcycleUnitID != nil {
		unitID := item.MotorcycleUnitID.String()
		resp.MotorcycleUnitID = &unitID
	}
	return resp
}

func RentalToResponse(rental *entity.Rental) RentalResponse {
	resp := RentalResponse{
		ID:            rental.ID.String(),
		StartDate:     rental.StartDate.Format("2006-01-02"),
		EndDate:       rental.EndDate.Format("2006-01-02"),
		RentalDays:    rental.RentalDays,
		TotalAmount:   rental.TotalAmount.String(),
		DepositAmount: rental.DepositAmount.String(),
		PaidAmount:    rental.PaidAmount.String(),
		Status:        rental.Status,
		PaymentMethod: rental.PaymentMethod,
		PaymentStatus: rental.PaymentStatus,
		Notes:         rental.Notes,
		CreatedAt:     rental.CreatedAt,
	}
	if rental.CustomerID != nil {
		customerID := rental.CustomerID.String()
		resp.CustomerID = &customerID
	}
	if rental.ActualReturnDate != nil {
		returned := rental.ActualReturnDate.Format("2006-01-02")
		resp.ActualReturnDate = &returned
	}
	return resp
}
