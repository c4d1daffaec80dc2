package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// BookingReference builds a human-facing reference like BK-20260828-0417:
// date prefix plus a 4-digit random suffix. Uniqueness is the caller's
// problem (bounded retry against the unique key).
func BookingReference(t time.Time) string {
	return fmt.Sprintf("BK-%s-%04d", t.Format("20060102"), rand.Intn(10000))
}
