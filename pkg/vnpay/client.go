package vnpay

import (
	"fmt"
	"time"

	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Client builds signed redirect URLs for the VNPay payment endpoint and
// validates inbound callback payloads.
type Client struct {
	tmnCode    string
	hashSecret string
	paymentURL string
	returnURL  string
	orderType  string
	locale     string
	log        *zap.Logger

	now func() time.Time
}

// PaymentRequest carries everything needed for one redirect URL.
type PaymentRequest struct {
	OrderID   string
	Amount    decimal.Decimal
	OrderInfo string
	IPAddr    string
	BankCode  string
	Locale    string
	ReturnURL string
}

// NewClient fails fast on missing credentials: an unsigned payment URL
// must never be produced.
func NewClient(config utils.VNPayConfig, log *zap.Logger) (*Client, error) {
	if config.TmnCode == "" {
		return nil, fmt.Errorf("vnpay: merchant code (VNPAY_TMN_CODE) is not configured")
	}
	if config.HashSecret == "" {
		return nil, fmt.Errorf("vnpay: hash secret (VNPAY_HASH_SECRET) is not configured")
	}

	orderType := config.OrderType
	if orderType == "" {
		orderType = "other"
	}
	locale := config.Locale
	if locale == "" {
		locale = "vn"
	}

	return &Client{
		tmnCode:    config.TmnCode,
		hashSecret: config.HashSecret,
		paymentURL: config.PaymentURL,
		returnURL:  config.ReturnURL,
		orderType:  orderType,
		locale:     locale,
		log:        log.With(zap.String("component", "vnpay")),
		now:        time.Now,
	}, nil
}

// CreatePaymentURL builds the fully-formed redirect URL. The amount is
// converted to the gateway's minor units (x100, truncated); it must be
// a clean decimal of at most two fractional digits.
func (c *Client) CreatePaymentURL(req PaymentRequest) (string, error) {
	if req.OrderID == "" {
		return "", fmt.Errorf("vnpay: order id is required")
	}
	if !req.Amount.IsPositive() {
		return "", fmt.Errorf("vnpay: amount must be positive, got %s", req.Amount.String())
	}

	minorUnits := req.Amount.Mul(decimal.NewFromInt(100)).IntPart()

	locale := req.Locale
	if locale == "" {
		locale = c.locale
	}
	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = c.returnURL
	}

	params := map[string]string{
		"vnp_Version":    "2.1.0",
		"vnp_Command":    "pay",
		"vnp_TmnCode":    c.tmnCode,
		"vnp_Amount":     fmt.Sprintf("%d", minorUnits),
		"vnp_CurrCode":   "VND",
		"vnp_TxnRef":     req.OrderID,
		"vnp_OrderInfo":  req.OrderInfo,
		"vnp_OrderType":  c.orderType,
		"vnp_Locale":     locale,
		"vnp_CreateDate": c.now().Format("20060102150405"),
		"vnp_IpAddr":     req.IPAddr,
		"vnp_ReturnUrl":  returnURL,
	}
	if req.BankCode != "" {
		params["vnp_BankCode"] = req.BankCode
	}

	query := HashData(params)
	signature := Sign(c.hashSecret, query)

	c.log.Debug("Payment URL created",
		zap.String("order_id", req.OrderID),
		zap.Int64("amount_minor", minorUnits),
		zap.String("bank_code", req.BankCode),
	)

	return c.paymentURL + "?" + query + "&" + paramSecureHash + "=" + signature, nil
}

// ValidateCallback verifies the callback signature over the gateway
// namespace params. It never mutates anything and fails closed.
func (c *Client) ValidateCallback(params map[string]string) bool {
	return Verify(c.hashSecret, params)
}
