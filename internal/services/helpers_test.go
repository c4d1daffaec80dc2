package services

import (
	"database/sql/driver"

	"github.com/DATA-DOG/go-sqlmock"
)

func bookingRows(id int64, ref string, pilgrimID, packageID int64, status, paymentStatus string, amountPaid int64, currency string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "reference_number", "pilgrim_id", "package_id", "status", "payment_status",
		"amount_paid", "currency_code", "ticket_number", "room_assignment", "notes", "created_at", "updated_at",
	}).AddRow(id, ref, pilgrimID, packageID, status, paymentStatus, amountPaid, currency, "", "", "", "", "")
}

func packageRows(id int64, name string, price int64, capacity any, currency, tripEnd string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "price", "capacity", "currency_code",
		"trip_start_date", "trip_end_date", "created_at", "updated_at",
	}).AddRow(id, name, "", price, capacity, currency, "", tripEnd, "", "")
}

func passportRows(rows ...[]any) *sqlmock.Rows {
	out := sqlmock.NewRows([]string{"id", "pilgrim_id", "passport_no", "issued_date", "expiry_date", "created_at"})
	for _, r := range rows {
		vals := make([]driver.Value, len(r))
		for i, v := range r {
			vals[i] = v
		}
		out.AddRow(vals...)
	}
	return out
}
