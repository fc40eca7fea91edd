package response

import (
	"time"

	"github.com/cnv1902/KhacQuanMotorbikeRental/internal/data/entity"
)

type PaymentResponse struct {
	ID                 string               `json:"id"`
	RentalID           *string              `json:"rental_id,omitempty"`
	PaymentCode        string               `json:"payment_code"`
	Amount             string               `json:"amount"`
	PaymentMethod      entity.PaymentMethod `json:"payment_method"`
	PaymentStatus      entity.PaymentStatus `json:"payment_status"`
	VNPayTransactionID *string              `json:"vnpay_transaction_id,omitempty"`
	VNPayBankCode      *string              `json:"vnpay_bank_code,omitempty"`
	PaymentDate        *time.Time           `json:"payment_date,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
}

// PaymentURLResponse carries the signed gateway redirect target.
type PaymentURLResponse struct {
	PaymentCode string `json:"payment_code"`
	PaymentURL  string `json:"payment_url"`
}

// CallbackResponse is what the gateway return endpoints report back:
// the gateway's own result code plus the reconciled payment, if any.
type CallbackResponse struct {
	ResponseCode string           `json:"response_code"`
	Message      string           `json:"message"`
	Payment      *PaymentResponse `json:"payment,omitempty"`

	// AlreadyProcessed marks a redelivered callback for a payment that
	// already reached a terminal state. The IPN endpoint acknowledges
	// these with a distinct gateway code.
	AlreadyProcessed bool `json:"-"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:                 payment.ID.String(),
		PaymentCode:        payment.PaymentCode,
		Amount:             payment.Amount.String(),
		PaymentMethod:      payment.PaymentMethod,
		PaymentStatus:      payment.PaymentStatus,
		VNPayTransactionID: payment.VNPayTransactionID,
		VNPayBankCode:      payment.VNPayBankCode,
		PaymentDate:        payment.PaymentDate,
		CreatedAt:          payment.CreatedAt,
	}
	if payment.RentalID != nil {
		rentalID := payment.RentalID.String()
		resp.RentalID = &rentalID
	}
	return resp
}
