package utils

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

func GenerateUUIDString() string {
	return uuid.New().String()
}

// GenerateBookingNumber creates the reference shown on the confirmation
// screen. Format: BK-YYYYMMDD-NNNN
func GenerateBookingNumber(now time.Time) string {
	return fmt.Sprintf("BK-%s-%04d", now.Format("20060102"), rand.IntN(10000))
}
