package vnpay

const (
	// CodeSuccess is returned in vnp_ResponseCode/vnp_TransactionStatus
	// when the transaction settled at the gateway.
	CodeSuccess = "00"

	// CodePending marks an in-flight transaction the gateway has not
	// concluded yet. It is neither a success nor a failure.
	CodePending = "02"
)

// responseMessages maps gateway response codes to operator-readable text.
var responseMessages = map[string]string{
	"00": "Transaction successful",
	"02": "Transaction is being processed",
	"07": "Amount deducted, transaction suspected of fraud",
	"09": "Card not registered for online banking",
	"10": "Card authentication failed more than 3 times",
	"11": "Payment window expired",
	"12": "Card or account is locked",
	"13": "Wrong one-time password",
	"24": "Transaction cancelled by customer",
	"51": "Insufficient account balance",
	"65": "Daily transaction limit exceeded",
	"75": "Bank under maintenance",
	"79": "Wrong payment password entered too many times",
	"99": "Unknown error",
}

// ResponseMessage returns the human-readable text for a gateway code.
func ResponseMessage(code string) string {
	if msg, ok := responseMessages[code]; ok {
		return msg
	}
	return "Unknown response code " + code
}

// IsSuccess reports whether a callback denotes a settled transaction.
// vnp_ResponseCode wins when present; vnp_TransactionStatus is the
// fallback the gateway uses on some flows.
func IsSuccess(responseCode, transactionStatus string) bool {
	if responseCode != "" {
		return responseCode == CodeSuccess
	}
	return transactionStatus == CodeSuccess
}

// IsPending reports the ambiguous in-flight state.
func IsPending(responseCode string) bool {
	return responseCode == CodePending
}
