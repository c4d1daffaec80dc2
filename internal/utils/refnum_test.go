package utils

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestBookingReferenceFormat(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^BK-20260828-\d{4}$`)
	for i := 0; i < 20; i++ {
		ref := BookingReference(at)
		if !pattern.MatchString(ref) {
			t.Fatalf("reference %q does not match expected format", ref)
		}
	}
}

func TestBookingReferenceUsesDatePrefix(t *testing.T) {
	at := time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC)
	if ref := BookingReference(at); !strings.HasPrefix(ref, "BK-20270102-") {
		t.Fatalf("unexpected prefix in %q", ref)
	}
}
