package models

// Payment method values accepted from staff input.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodCard     = "CARD"
	PaymentMethodOther    = "OTHER"
)

// Payment is one transaction against a booking. Amount is in minor units
// and immutable after creation; corrections are delete + re-add.
type Payment struct {
	ID              int64  `json:"id"`
	BookingID       int64  `json:"booking_id"`
	Amount          int64  `json:"amount"`
	CurrencyCode    string `json:"currency_code"`
	PaymentMethod   string `json:"payment_method"`
	PaymentDate     string `json:"payment_date"`
	ReferenceNumber string `json:"reference_number"`
	Notes           string `json:"notes"`
	RecordedBy      int64  `json:"recorded_by"`
	CreatedAt       string `json:"created_at"`
}

// PaymentInput carries staff input for recording a payment.
type PaymentInput struct {
	Amount          int64  `json:"amount"`
	CurrencyCode    string `json:"currency_code"`
	PaymentMethod   string `json:"payment_method"`
	PaymentDate     string `json:"payment_date"`
	ReferenceNumber string `json:"reference_number"`
	Notes           string `json:"notes"`
}
