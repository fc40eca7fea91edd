package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodVNPay PaymentMethod = "vnpay"
)

// Payment is one payment attempt, cash or gateway. PaymentCode is the
// unique external-facing order id and the reconciliation key for
// gateway callbacks.
type Payment struct {
	Base
	RentalID           *uuid.UUID      `db:"rental_id"`
	PaymentCode        string          `db:"payment_code"`
	Amount             decimal.Decimal `db:"amount"`
	PaymentMethod      PaymentMethod   `db:"payment_method"`
	PaymentStatus      PaymentStatus   `db:"payment_status"`
	VNPayTransactionID *string         `db:"vnpay_transaction_id"`
	VNPayBankCode      *string         `db:"vnpay_bank_code"`
	VNPayPayDate       *time.Time      `db:"vnpay_pay_date"`
	PaymentDate        *time.Time      `db:"payment_date"`
}

// Terminal reports whether the payment reached a final state. Terminal
// payments are never mutated again; redelivered callbacks become no-ops.
func (p *Payment) Terminal() bool {
	return p.PaymentStatus == PaymentStatusPaid || p.PaymentStatus == PaymentStatusFailed
}
