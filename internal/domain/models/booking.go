package models

// Booking status values. CANCELLED is terminal: once a booking is
// cancelled it never transitions out.
const (
	BookingStatusEOI       = "EOI"
	BookingStatusBooked    = "BOOKED"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// Payment status values derived by reconciliation. REFUNDED is only ever
// set by staff edits, never derived.
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPartial  = "PARTIAL"
	PaymentStatusPaid     = "PAID"
	PaymentStatusRefunded = "REFUNDED"
)

func IsBookingStatus(s string) bool {
	switch s {
	case BookingStatusEOI, BookingStatusBooked, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking is a pilgrim's claim on a trip package. AmountPaid is derived
// from payments by reconciliation and is never set directly by clients.
// Currency is copied from the package on save.
type Booking struct {
	ID              int64  `json:"id"`
	ReferenceNumber string `json:"reference_number"`
	PilgrimID       int64  `json:"pilgrim_id"`
	PackageID       int64  `json:"package_id"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"payment_status"`
	AmountPaid      int64  `json:"amount_paid"`
	CurrencyCode    string `json:"currency_code"`
	TicketNumber    string `json:"ticket_number"`
	RoomAssignment  string `json:"room_assignment"`
	Notes           string `json:"notes"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// BookingUpdate supports PATCH-style updates via key presence. Status and
// money fields go through the lifecycle/reconciliation paths, not here.
type BookingUpdate struct {
	TicketNumber   *string
	RoomAssignment *string
	Notes          *string
	PaymentStatus  *string
}

// StatusChange is one append-only audit row for a booking transition.
type StatusChange struct {
	ID         int64  `json:"id"`
	BookingID  int64  `json:"booking_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	Actor      string `json:"actor"`
	CreatedAt  string `json:"created_at"`
}

// BulkStatusFailure reports one rejected item of a bulk transition.
type BulkStatusFailure struct {
	BookingID int64  `json:"booking_id"`
	Reason    string `json:"reason"`
}

// BulkStatusResult carries both how many succeeded and why each failure
// occurred.
type BulkStatusResult struct {
	Updated  int                 `json:"updated"`
	Failures []BulkStatusFailure `json:"failures"`
}
