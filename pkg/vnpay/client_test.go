package vnpay

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cnv1902/KhacQuanMotorbikeRental/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() utils.VNPayConfig {
	return utils.VNPayConfig{
		TmnCode:    "08XB68MP",
		HashSecret: testSecret,
		PaymentURL: "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "http://localhost:8080/payment/vnpay_return",
		OrderType:  "other",
		Locale:     "vn",
	}
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(testConfig(), zap.NewNop())
	require.NoError(t, err)

	client.now = func() time.Time {
		return time.Date(2024, 1, 3, 15, 44, 59, 0, time.Local)
	}
	return client
}

func TestNewClientFailsFastOnMissingCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.TmnCode = ""
	_, err := NewClient(cfg, zap.NewNop())
	assert.Error(t, err)

	cfg = testConfig()
	cfg.HashSecret = ""
	_, err = NewClient(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestCreatePaymentURL(t *testing.T) {
	client := newTestClient(t)

	redirect, err := client.CreatePaymentURL(PaymentRequest{
		OrderID:   "202401031544591234",
		Amount:    decimal.NewFromInt(300000),
		OrderInfo: "Thanh toan don thue #12",
		IPAddr:    "203.0.113.7",
		BankCode:  "NCB",
	})
	require.NoError(t, err)

	parsed, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.Equal(t, "sandbox.vnpayment.vn", parsed.Host)

	q := parsed.Query()
	assert.Equal(t, "2.1.0", q.Get("vnp_Version"))
	assert.Equal(t, "pay", q.Get("vnp_Command"))
	assert.Equal(t, "08XB68MP", q.Get("vnp_TmnCode"))
	assert.Equal(t, "30000000", q.Get("vnp_Amount")) // minor units
	assert.Equal(t, "VND", q.Get("vnp_CurrCode"))
	assert.Equal(t, "202401031544591234", q.Get("vnp_TxnRef"))
	assert.Equal(t, "NCB", q.Get("vnp_BankCode"))
	assert.Equal(t, "vn", q.Get("vnp_Locale"))
	assert.Equal(t, "20240103154459", q.Get("vnp_CreateDate"))
	assert.Equal(t, "203.0.113.7", q.Get("vnp_IpAddr"))
	assert.Equal(t, "http://localhost:8080/payment/vnpay_return", q.Get("vnp_ReturnUrl"))

	// the appended signature must verify over the emitted params
	params := map[string]string{}
	for k := range q {
		params[k] = q.Get(k)
	}
	assert.True(t, Verify(testSecret, params))
	assert.True(t, strings.Contains(redirect, "&vnp_SecureHash="))
}

func TestCreatePaymentURLAmountTruncation(t *testing.T) {
	client := newTestClient(t)

	// 1500.50 VND -> 150050 minor units, integer truncation only
	redirect, err := client.CreatePaymentURL(PaymentRequest{
		OrderID: "x1",
		Amount:  decimal.RequireFromString("1500.50"),
		IPAddr:  "127.0.0.1",
	})
	require.NoError(t, err)

	parsed, _ := url.Parse(redirect)
	assert.Equal(t, "150050", parsed.Query().Get("vnp_Amount"))
}

func TestCreatePaymentURLOmitsEmptyBankCode(t *testing.T) {
	client := newTestClient(t)

	redirect, err := client.CreatePaymentURL(PaymentRequest{
		OrderID: "x2",
		Amount:  decimal.NewFromInt(100000),
		IPAddr:  "127.0.0.1",
	})
	require.NoError(t, err)

	parsed, _ := url.Parse(redirect)
	_, present := parsed.Query()["vnp_BankCode"]
	assert.False(t, present)
}

func TestCreatePaymentURLRejectsBadInput(t *testing.T) {
	client := newTestClient(t)

	_, err := client.CreatePaymentURL(PaymentRequest{
		OrderID: "",
		Amount:  decimal.NewFromInt(1000),
	})
	assert.Error(t, err)

	_, err = client.CreatePaymentURL(PaymentRequest{
		OrderID: "x3",
		Amount:  decimal.Zero,
	})
	assert.Error(t, err)

	_, err = client.CreatePaymentURL(PaymentRequest{
		OrderID: "x4",
		Amount:  decimal.NewFromInt(-5),
	})
	assert.Error(t, err)
}

func TestValidateCallback(t *testing.T) {
	client := newTestClient(t)

	params := callbackParams()
	params["vnp_SecureHash"] = Sign(testSecret, HashData(params))
	assert.True(t, client.ValidateCallback(params))

	params["vnp_Amount"] = "30000001"
	assert.False(t, client.ValidateCallback(params))
}
