package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== PAYMENT CODE ====================

// GeneratePaymentCode creates an external-facing order reference:
// second-granularity timestamp plus a 4-digit random suffix. Uniqueness
// is probabilistic; the payments table carries a unique constraint and
// callers regenerate on conflict.
func GeneratePaymentCode() string {
	// Format: YYYYMMDDHHMMSS + RANDOM
	timePart := time.Now().Format("20060102150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return timePart + randomPart
}
