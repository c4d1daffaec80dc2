package repositories

import (
	"database/sql"
	"errors"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

const paymentColumns = `
	id,
	booking_id,
	amount,
	COALESCE(currency_code, ''),
	COALESCE(payment_method, ''),
	COALESCE(payment_date, ''),
	COALESCE(reference_number, ''),
	COALESCE(notes, ''),
	COALESCE(recorded_by, 0),
	COALESCE(created_at, '')`

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "payment_id", Msg: "id tidak valid"}
	}
	var p models.Payment
	err := r.db().QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id=? LIMIT 1`, id).Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.CurrencyCode,
		&p.PaymentMethod,
		&p.PaymentDate,
		&p.ReferenceNumber,
		&p.Notes,
		&p.RecordedBy,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, domain.NotFoundError{Resource: "payment"}
	}
	if err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

func (r PaymentRepository) ListByBooking(bookingID int64) ([]models.Payment, error) {
	if bookingID <= 0 {
		return nil, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}
	rows, err := r.db().Query(`SELECT `+paymentColumns+` FROM payments WHERE booking_id=? ORDER BY id ASC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID,
			&p.BookingID,
			&p.Amount,
			&p.CurrencyCode,
			&p.PaymentMethod,
			&p.PaymentDate,
			&p.ReferenceNumber,
			&p.Notes,
			&p.RecordedBy,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Insert writes a payment through q so the write and the following
// reconciliation share one transaction.
func (r PaymentRepository) Insert(q intdb.Queryer, p *models.Payment) error {
	res, err := q.Exec(`
		INSERT INTO payments
			(booking_id, amount, currency_code, payment_method, payment_date, reference_number, notes, recorded_by)
		VALUES (?,?,?,?,?,?,?,?)`,
		p.BookingID,
		p.Amount,
		p.CurrencyCode,
		p.PaymentMethod,
		intdb.NullIfEmpty(p.PaymentDate),
		p.ReferenceNumber,
		intdb.NullIfEmpty(p.Notes),
		p.RecordedBy,
	)
	if err != nil {
		return err
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

// Delete removes a payment through q.
func (r PaymentRepository) Delete(q intdb.Queryer, id int64) error {
	res, err := q.Exec(`DELETE FROM payments WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "payment"}
	}
	return nil
}

// SumByBooking recomputes the running total from the rows themselves.
func (r PaymentRepository) SumByBooking(q intdb.Queryer, bookingID int64) (int64, error) {
	var total int64
	err := q.QueryRow(`SELECT COALESCE(SUM(amount),0) FROM payments WHERE booking_id=?`, bookingID).Scan(&total)
	return total, err
}
