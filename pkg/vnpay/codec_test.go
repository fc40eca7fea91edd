package vnpay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "J387G5VO8FUMTRBMPSANSJXOSMCNLKBK"

func callbackParams() map[string]string {
	return map[string]string{
		"vnp_Amount":            "30000000",
		"vnp_BankCode":          "NCB",
		"vnp_OrderInfo":         "Thanh toan don thue #12",
		"vnp_PayDate":           "20240103154500",
		"vnp_ResponseCode":      "00",
		"vnp_TmnCode":           "08XB68MP",
		"vnp_TransactionNo":     "14226112",
		"vnp_TransactionStatus": "00",
		"vnp_TxnRef":            "202401031544591234",
	}
}

func TestHashDataSortsAndEscapes(t *testing.T) {
	params := map[string]string{
		"vnp_TxnRef":    "123",
		"vnp_Amount":    "5000",
		"vnp_OrderInfo": "don thue xe may",
	}

	got := HashData(params)

	// byte-wise ascending key order, quote_plus style value encoding
	assert.Equal(t, "vnp_Amount=5000&vnp_OrderInfo=don+thue+xe+may&vnp_TxnRef=123", got)
}

func TestHashDataExcludesSignatureAndForeignKeys(t *testing.T) {
	params := map[string]string{
		"vnp_Amount":          "5000",
		"vnp_SecureHash":      "deadbeef",
		"vnp_SecureHashType":  "HMACSHA512",
		"admin":               "1",
		"rental_id":           "7",
		"unprefixed_Whatever": "x",
	}

	assert.Equal(t, "vnp_Amount=5000", HashData(params))
}

func TestHashDataEmpty(t *testing.T) {
	assert.Equal(t, "", HashData(nil))
	assert.Equal(t, "", HashData(map[string]string{}))
}

func TestSignDeterministicAndOrderIndependent(t *testing.T) {
	a := callbackParams()
	b := map[string]string{}
	// rebuild in a different insertion order
	for _, k := range []string{"vnp_TxnRef", "vnp_TransactionStatus", "vnp_TransactionNo", "vnp_TmnCode", "vnp_ResponseCode", "vnp_PayDate", "vnp_OrderInfo", "vnp_BankCode", "vnp_Amount"} {
		b[k] = a[k]
	}

	sigA := Sign(testSecret, HashData(a))
	sigB := Sign(testSecret, HashData(b))

	require.Equal(t, sigA, sigB)
	assert.Len(t, sigA, 128) // hex SHA-512
	assert.Equal(t, sigA, Sign(testSecret, HashData(a)))
}

func TestVerifyRoundTrip(t *testing.T) {
	params := callbackParams()
	params["vnp_SecureHash"] = Sign(testSecret, HashData(params))

	assert.True(t, Verify(testSecret, params))
}

func TestVerifyFailsClosedWithoutSignature(t *testing.T) {
	assert.False(t, Verify(testSecret, callbackParams()))
	assert.False(t, Verify(testSecret, map[string]string{}))
	assert.False(t, Verify(testSecret, nil))
}

func TestVerifyRejectsTamperedValues(t *testing.T) {
	base := callbackParams()
	base["vnp_SecureHash"] = Sign(testSecret, HashData(base))

	for key := range callbackParams() {
		params := callbackParams()
		params["vnp_SecureHash"] = base["vnp_SecureHash"]

		// flip one character of this parameter value
		v := []byte(params[key])
		v[0] ^= 0x01
		params[key] = string(v)

		assert.False(t, Verify(testSecret, params), "tampered %s must fail verification", key)
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	params := callbackParams()
	sig := []byte(Sign(testSecret, HashData(params)))
	if sig[0] == 'a' {
		sig[0] = 'b'
	} else {
		sig[0] = 'a'
	}
	params["vnp_SecureHash"] = string(sig)

	assert.False(t, Verify(testSecret, params))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	params := callbackParams()
	params["vnp_SecureHash"] = Sign(testSecret, HashData(params))

	assert.False(t, Verify("some-other-secret", params))
}
