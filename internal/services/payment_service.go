package services

import (
	"database/sql"
	"fmt"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"
)

// PaymentService records payments and keeps the owning booking's derived
// totals consistent. Every write runs the payment mutation and the
// reconciliation in one transaction.
type PaymentService struct {
	PaymentRepo repositories.PaymentRepository
	BookingRepo repositories.BookingRepository
	PackageRepo repositories.PackageRepository
	HistoryRepo repositories.StatusHistoryRepository
	DB          *sql.DB
	RequestID   string
}

func (s PaymentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// AddPayment validates input, inherits the booking currency when none is
// supplied, persists the payment and reconciles the booking.
func (s PaymentService) AddPayment(bookingID int64, in models.PaymentInput, recordedBy int64) (models.Payment, error) {
	if bookingID <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "booking_id", Msg: "id tidak valid"}
	}
	if in.Amount <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "amount", Msg: "jumlah harus lebih dari nol"}
	}
	method := utils.NormalizeCode(in.PaymentMethod)
	if method == "" {
		return models.Payment{}, domain.ValidationError{Field: "payment_method", Msg: "metode pembayaran wajib diisi"}
	}
	date := utils.TrimOrEmpty(in.PaymentDate)
	if date == "" {
		date = utils.FormatDate(utils.NowUTC())
	} else if _, err := utils.ParseDate(date); err != nil {
		return models.Payment{}, domain.ValidationError{Field: "payment_date", Msg: "format tanggal harus YYYY-MM-DD"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	b, err := s.BookingRepo.GetForUpdate(tx, bookingID)
	if err != nil {
		return models.Payment{}, err
	}

	currency := utils.NormalizeCode(in.CurrencyCode)
	if currency == "" {
		currency = b.CurrencyCode
	}

	p := models.Payment{
		BookingID:       b.ID,
		Amount:          in.Amount,
		CurrencyCode:    currency,
		PaymentMethod:   method,
		PaymentDate:     date,
		ReferenceNumber: utils.TrimOrEmpty(in.ReferenceNumber),
		Notes:           utils.TrimOrEmpty(in.Notes),
		RecordedBy:      recordedBy,
	}
	if err := s.PaymentRepo.Insert(tx, &p); err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}

	if err := s.reconcile(tx, b); err != nil {
		return models.Payment{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "payment", "add", fmt.Sprintf("booking_id=%d payment_id=%d amount=%d", b.ID, p.ID, p.Amount))
	return p, nil
}

// RemovePayment deletes the record and reconciles the now-smaller total on
// the parent booking.
func (s PaymentService) RemovePayment(paymentID int64) error {
	p, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return err
	}

	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	b, err := s.BookingRepo.GetForUpdate(tx, p.BookingID)
	if err != nil {
		return err
	}
	if err := s.PaymentRepo.Delete(tx, paymentID); err != nil {
		return err
	}
	if err := s.reconcile(tx, b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "payment", "remove", fmt.Sprintf("booking_id=%d payment_id=%d", b.ID, paymentID))
	return nil
}

// Reconcile recomputes one booking's totals on demand, e.g. after manual
// row surgery in the database.
func (s PaymentService) Reconcile(bookingID int64) (models.Booking, error) {
	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	b, err := s.BookingRepo.GetForUpdate(tx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if err := s.reconcile(tx, b); err != nil {
		return models.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return s.BookingRepo.GetByID(bookingID)
}

// reconcile recomputes amount_paid from the payment rows and derives
// payment_status against the package price. A first payment on an EOI
// booking promotes it to BOOKED without consulting the gate; the source
// system behaves this way and staff rely on it, so the asymmetry stays
// (the audit row's actor is "system" so these promotions are traceable).
func (s PaymentService) reconcile(q intdb.Queryer, b models.Booking) error {
	total, err := s.PaymentRepo.SumByBooking(q, b.ID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	pkg, err := s.PackageRepo.Get(q, b.PackageID)
	if err != nil {
		return err
	}

	status := derivePaymentStatus(total, pkg.Price)
	if err := s.BookingRepo.SetPaymentTotals(q, b.ID, total, status); err != nil {
		return domain.InternalError{Err: err}
	}

	if b.Status == models.BookingStatusEOI && total > 0 {
		if err := applyTransition(q, s.BookingRepo, s.HistoryRepo, b, models.BookingStatusBooked, "system"); err != nil {
			return domain.InternalError{Err: err}
		}
	}
	return nil
}

// derivePaymentStatus clamps overpayment to PAID; there is no separate
// overpaid status.
func derivePaymentStatus(total, price int64) string {
	switch {
	case total <= 0:
		return models.PaymentStatusPending
	case total >= price:
		return models.PaymentStatusPaid
	default:
		return models.PaymentStatusPartial
	}
}
