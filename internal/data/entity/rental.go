package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusConfirmed RentalStatus = "confirmed"
	RentalStatusRented    RentalStatus = "rented"
	RentalStatusReturned  RentalStatus = "returned"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// ValidRentalStatus reports whether s is a known lifecycle state.
func ValidRentalStatus(s RentalStatus) bool {
	switch s {
	case RentalStatusPending, RentalStatusConfirmed, RentalStatusRented,
		RentalStatusReturned, RentalStatusCancelled:
		return true
	}
	return false
}

type RentalPaymentStatus string

const (
	RentalPaymentPending RentalPaymentStatus = "pending"
	RentalPaymentPartial RentalPaymentStatus = "partial"
	RentalPaymentPaid    RentalPaymentStatus = "paid"
	RentalPaymentFailed  RentalPaymentStatus = "failed"
)

// Rental is one customer order for one or more motorcycles over a date
// range. TotalAmount holds the planned estimate until ActualReturnDate
// is set; settlement recomputes it from the assigned items.
type Rental struct {
	Base
	CustomerID       *uuid.UUID          `db:"customer_id"`
	StartDate        time.Time           `db:"start_date"`
	EndDate          time.Time           `db:"end_date"`
	ActualReturnDate *time.Time          `db:"actual_return_date"`
	RentalDays       int                 `db:"rental_days"`
	TotalAmount      decimal.Decimal     `db:"total_amount"`
	DepositAmount    decimal.Decimal     `db:"deposit_amount"`
	PaidAmount       decimal.Decimal     `db:"paid_amount"`
	Status           RentalStatus        `db:"status"`
	PaymentMethod    string              `db:"payment_method"`
	PaymentStatus    RentalPaymentStatus `db:"payment_status"`
	// Legacy reconciliation fields: the last gateway order reference is
	// mirrored here so callbacks can still be matched when the payment
	// row itself cannot be found by code.
	VNPayTransactionID *string `db:"vnpay_transaction_id"`
	VNPayBankCode      *string `db:"vnpay_bank_code"`
	Notes              *string `db:"notes"`
}
