package request

// CreatePaymentRequest builds a gateway redirect URL for an arbitrary
// pending order reference.
type CreatePaymentRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	Amount    string `json:"amount" validate:"required"`
	OrderDesc string `json:"order_desc,omitempty"`
	BankCode  string `json:"bank_code,omitempty"`
	Language  string `json:"language,omitempty"`
	ReturnURL string `json:"return_url,omitempty"`
}
