package repositories

import (
	"database/sql"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

// StatusHistoryRepository owns the append-only audit trail of booking
// transitions. Rows are never updated or pruned.
type StatusHistoryRepository struct {
	DB *sql.DB
}

func (r StatusHistoryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r StatusHistoryRepository) Insert(q intdb.Queryer, ch models.StatusChange) error {
	_, err := q.Exec(`
		INSERT INTO booking_status_history (booking_id, from_status, to_status, actor)
		VALUES (?,?,?,?)`,
		ch.BookingID, ch.FromStatus, ch.ToStatus, ch.Actor)
	return err
}

func (r StatusHistoryRepository) ListByBooking(bookingID int64) ([]models.StatusChange, error) {
	if bookingID <= 0 {
		return nil, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}
	rows, err := r.db().Query(`
		SELECT id, booking_id, COALESCE(from_status,''), to_status, COALESCE(actor,''), COALESCE(created_at,'')
		FROM booking_status_history WHERE booking_id=? ORDER BY id ASC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.StatusChange{}
	for rows.Next() {
		var ch models.StatusChange
		if err := rows.Scan(&ch.ID, &ch.BookingID, &ch.FromStatus, &ch.ToStatus, &ch.Actor, &ch.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, rows.Err()
}
