package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMinorUnits renders a minor-unit amount with its currency code,
// e.g. (50000000, "IDR") -> "IDR 500.000,00". Thousand separator follows
// the Indonesian convention used on printed documents.
func FormatMinorUnits(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	major := amount / 100
	minor := amount % 100
	code := strings.TrimSpace(strings.ToUpper(currency))
	if code == "" {
		code = "IDR"
	}
	return fmt.Sprintf("%s%s %s,%02d", sign, code, formatThousand(major), minor)
}

// ParseAmountToMinor parses "500.000" or "Rp 500,000.50" style input into
// minor units. A single trailing decimal group of 1-2 digits is treated as
// the minor part; everything else is separators.
func ParseAmountToMinor(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToLower(s), "rp")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}

	minor := int64(0)
	for _, sep := range []string{",", "."} {
		if i := strings.LastIndex(s, sep); i >= 0 && len(s)-i-1 <= 2 {
			frac := s[i+1:]
			n, err := strconv.ParseInt(frac, 10, 64)
			if err != nil {
				break
			}
			if len(frac) == 1 {
				n *= 10
			}
			minor = n
			s = s[:i]
			break
		}
	}

	replacer := strings.NewReplacer(".", "", ",", "", " ", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}
	major, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return major*100 + minor, nil
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
