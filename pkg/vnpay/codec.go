package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

const (
	// ParamPrefix is the gateway namespace. Only keys carrying this
	// prefix participate in signing; everything else is ignored.
	ParamPrefix = "vnp_"

	paramSecureHash     = "vnp_SecureHash"
	paramSecureHashType = "vnp_SecureHashType"
)

// HashData canonicalizes params into the string the gateway signs:
// keys sorted bytewise ascending, values query-escaped, joined as
// key=value with '&'. The signature fields and keys outside the
// gateway namespace are excluded. Empty params yield "".
func HashData(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == paramSecureHash || k == paramSecureHashType {
			continue
		}
		if !strings.HasPrefix(k, ParamPrefix) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}

	return b.String()
}

// Sign computes the lowercase hex HMAC-SHA512 of data under secret.
func Sign(secret, data string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the signature over params and compares it with the
// vnp_SecureHash field in constant time. A missing or empty signature
// fails closed.
func Verify(secret string, params map[string]string) bool {
	provided := params[paramSecureHash]
	if provided == "" {
		return false
	}

	expected := Sign(secret, HashData(params))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(provided)))
}
