package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

const bookingColumns = `
	id,
	reference_number,
	pilgrim_id,
	package_id,
	status,
	payment_status,
	amount_paid,
	currency_code,
	COALESCE(ticket_number, ''),
	COALESCE(room_assignment, ''),
	COALESCE(notes, ''),
	COALESCE(created_at, ''),
	COALESCE(updated_at, '')`

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanBooking(row *sql.Row) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.ReferenceNumber,
		&b.PilgrimID,
		&b.PackageID,
		&b.Status,
		&b.PaymentStatus,
		&b.AmountPaid,
		&b.CurrencyCode,
		&b.TicketNumber,
		&b.RoomAssignment,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	return r.Get(r.db(), id)
}

// Get fetches a booking through q so callers inside a transaction see
// their own writes.
func (r BookingRepository) Get(q intdb.Queryer, id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}
	b, err := scanBooking(q.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

// GetForUpdate row-locks the booking for the handover between the gate
// check and the status write.
func (r BookingRepository) GetForUpdate(q intdb.Queryer, id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}
	b, err := scanBooking(q.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

// List returns bookings newest-first, optionally filtered.
func (r BookingRepository) List(pilgrimID, packageID int64, status string) ([]models.Booking, error) {
	where := []string{"1=1"}
	args := []any{}
	if pilgrimID > 0 {
		where = append(where, "pilgrim_id=?")
		args = append(args, pilgrimID)
	}
	if packageID > 0 {
		where = append(where, "package_id=?")
		args = append(args, packageID)
	}
	if s := strings.TrimSpace(status); s != "" {
		where = append(where, "status=?")
		args = append(args, strings.ToUpper(s))
	}

	rows, err := r.db().Query(`SELECT `+bookingColumns+` FROM bookings WHERE `+strings.Join(where, " AND ")+` ORDER BY id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID,
			&b.ReferenceNumber,
			&b.PilgrimID,
			&b.PackageID,
			&b.Status,
			&b.PaymentStatus,
			&b.AmountPaid,
			&b.CurrencyCode,
			&b.TicketNumber,
			&b.RoomAssignment,
			&b.Notes,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Insert persists a new booking and fills in the generated ID. The unique
// keys on reference_number and (pilgrim_id, package_id, active) surface as
// ConflictError so the service can retry or report.
func (r BookingRepository) Insert(b *models.Booking) error {
	active := any(1)
	if b.Status == models.BookingStatusCancelled {
		active = nil
	}
	res, err := r.db().Exec(`
		INSERT INTO bookings
			(reference_number, pilgrim_id, package_id, status, payment_status, amount_paid, currency_code, ticket_number, room_assignment, notes, active)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.ReferenceNumber,
		b.PilgrimID,
		b.PackageID,
		b.Status,
		b.PaymentStatus,
		b.AmountPaid,
		b.CurrencyCode,
		b.TicketNumber,
		b.RoomAssignment,
		intdb.NullIfEmpty(b.Notes),
		active,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			if strings.Contains(me.Message, "uniq_booking_ref") {
				return domain.ConflictError{Resource: "booking", Msg: "nomor referensi bentrok"}
			}
			return domain.ConflictError{Resource: "booking", Msg: "pilgrim sudah punya booking aktif untuk paket ini"}
		}
		return err
	}
	b.ID, _ = res.LastInsertId()
	return nil
}

// HasActiveBooking reports whether a non-cancelled booking already exists
// for the pair. The unique key remains the real enforcement.
func (r BookingRepository) HasActiveBooking(pilgrimID, packageID int64) (bool, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM bookings
		WHERE pilgrim_id=? AND package_id=? AND status <> ?`,
		pilgrimID, packageID, models.BookingStatusCancelled,
	).Scan(&n)
	return n > 0, err
}

// ReferenceExists backs the bounded retry loop for reference generation.
func (r BookingRepository) ReferenceExists(ref string) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings WHERE reference_number=?`, ref).Scan(&n)
	return n > 0, err
}

// CountBooked counts BOOKED bookings on a package, excluding the booking
// under evaluation. Runs through q so the capacity gate shares the
// caller's transaction.
func (r BookingRepository) CountBooked(q intdb.Queryer, packageID, excludeBookingID int64) (int, error) {
	var n int
	err := q.QueryRow(`
		SELECT COUNT(*) FROM bookings
		WHERE package_id=? AND status=? AND id <> ?`,
		packageID, models.BookingStatusBooked, excludeBookingID,
	).Scan(&n)
	return n, err
}

// SetStatus writes the status through q. Cancelling clears the active
// marker so the (pilgrim, package, active) unique key frees the slot.
func (r BookingRepository) SetStatus(q intdb.Queryer, id int64, status string) error {
	active := any(1)
	if status == models.BookingStatusCancelled {
		active = nil
	}
	_, err := q.Exec(`UPDATE bookings SET status=?, active=?, updated_at=NOW() WHERE id=?`, status, active, id)
	return err
}

// SetPaymentTotals writes reconciliation output through q.
func (r BookingRepository) SetPaymentTotals(q intdb.Queryer, id int64, amountPaid int64, paymentStatus string) error {
	_, err := q.Exec(`UPDATE bookings SET amount_paid=?, payment_status=?, updated_at=NOW() WHERE id=?`, amountPaid, paymentStatus, id)
	return err
}

// Update performs PATCH-style updates based on key presence.
func (r BookingRepository) Update(id int64, upd models.BookingUpdate) error {
	if id <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}
	sets := []string{}
	args := []any{}

	if upd.TicketNumber != nil {
		sets = append(sets, "ticket_number=?")
		args = append(args, strings.TrimSpace(*upd.TicketNumber))
	}
	if upd.RoomAssignment != nil {
		sets = append(sets, "room_assignment=?")
		args = append(args, strings.TrimSpace(*upd.RoomAssignment))
	}
	if upd.Notes != nil {
		sets = append(sets, "notes=?")
		args = append(args, intdb.NullIfEmpty(strings.TrimSpace(*upd.Notes)))
	}
	if upd.PaymentStatus != nil {
		sets = append(sets, "payment_status=?")
		args = append(args, strings.ToUpper(strings.TrimSpace(*upd.PaymentStatus)))
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE bookings SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return err
}

// Delete removes the booking row. History rows are kept on purpose.
func (r BookingRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}
	res, err := r.db().Exec(`DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}
