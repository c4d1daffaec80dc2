package models

// Pilgrim is the profile record bookings belong to.
type Pilgrim struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Nationality string `json:"nationality"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Passport holds the validity window used by the booking gate.
type Passport struct {
	ID         int64  `json:"id"`
	PilgrimID  int64  `json:"pilgrim_id"`
	PassportNo string `json:"passport_no"`
	IssuedDate string `json:"issued_date"`
	ExpiryDate string `json:"expiry_date"`
	CreatedAt  string `json:"created_at"`
}
