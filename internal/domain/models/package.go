package models

// TripPackage is the catalog record a booking claims a seat on. Capacity
// nil means unbounded. Price is in minor units; CurrencyCode is the source
// of truth for the currency inheritance chain (package -> booking ->
// payment).
type TripPackage struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	Capacity      *int   `json:"capacity"`
	CurrencyCode  string `json:"currency_code"`
	TripStartDate string `json:"trip_start_date"`
	TripEndDate   string `json:"trip_end_date"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// TripPackageUpdate supports PATCH-style updates via key presence.
type TripPackageUpdate struct {
	Name          *string
	Description   *string
	Price         *int64
	Capacity      *int
	CapacitySet   bool // distinguishes "clear capacity" from "not sent"
	CurrencyCode  *string
	TripStartDate *string
	TripEndDate   *string
}
