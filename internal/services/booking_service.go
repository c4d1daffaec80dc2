package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"
)

const refRetryLimit = 5

// BookingService owns the booking state machine and reference numbers.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	PackageRepo repositories.PackageRepository
	PilgrimRepo repositories.PilgrimRepository
	HistoryRepo repositories.StatusHistoryRepository
	Gate        BookingGate
	DB          *sql.DB
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// applyTransition writes a status change and its audit row through q.
// Both the staff path and payment-driven promotion end up here so history
// is never skipped; gate checks stay at the call sites.
func applyTransition(q intdb.Queryer, bookings repositories.BookingRepository, history repositories.StatusHistoryRepository, b models.Booking, newStatus, actor string) error {
	if err := bookings.SetStatus(q, b.ID, newStatus); err != nil {
		return err
	}
	return history.Insert(q, models.StatusChange{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   newStatus,
		Actor:      actor,
	})
}

// Create registers a new booking in a provisional state. EOI skips the
// gate entirely; creating straight into BOOKED is an explicit activation
// and goes through it.
func (s BookingService) Create(pilgrimID, packageID int64, initialStatus, actor string) (models.Booking, error) {
	if pilgrimID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "pilgrim_id", Msg: "id tidak valid"}
	}
	if packageID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "package_id", Msg: "id tidak valid"}
	}

	status := utils.NormalizeCode(initialStatus)
	if status == "" {
		status = models.BookingStatusEOI
	}
	if status != models.BookingStatusEOI && status != models.BookingStatusBooked {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "status awal harus EOI atau BOOKED"}
	}

	if _, err := s.PilgrimRepo.GetByID(pilgrimID); err != nil {
		return models.Booking{}, err
	}
	pkg, err := s.PackageRepo.GetByID(packageID)
	if err != nil {
		return models.Booking{}, err
	}

	exists, err := s.BookingRepo.HasActiveBooking(pilgrimID, packageID)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if exists {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "pilgrim sudah punya booking aktif untuk paket ini"}
	}

	ref, err := s.newReference()
	if err != nil {
		return models.Booking{}, err
	}

	b := models.Booking{
		ReferenceNumber: ref,
		PilgrimID:       pilgrimID,
		PackageID:       packageID,
		Status:          status,
		PaymentStatus:   models.PaymentStatusPending,
		AmountPaid:      0,
		CurrencyCode:    pkg.CurrencyCode,
	}

	if status == models.BookingStatusBooked {
		if err := s.Gate.Check(s.db(), b, pkg); err != nil {
			return models.Booking{}, err
		}
	}

	if err := s.BookingRepo.Insert(&b); err != nil {
		return models.Booking{}, err
	}
	if err := s.HistoryRepo.Insert(s.db(), models.StatusChange{
		BookingID: b.ID,
		ToStatus:  status,
		Actor:     actor,
	}); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("id=%d ref=%s status=%s", b.ID, b.ReferenceNumber, b.Status))
	return b, nil
}

// newReference retries the random suffix on collision; the unique key on
// reference_number is the backstop for the race this leaves open.
func (s BookingService) newReference() (string, error) {
	for i := 0; i < refRetryLimit; i++ {
		ref := utils.BookingReference(utils.NowUTC())
		taken, err := s.BookingRepo.ReferenceExists(ref)
		if err != nil {
			return "", domain.InternalError{Err: err}
		}
		if !taken {
			return ref, nil
		}
	}
	return "", domain.InternalError{Msg: "gagal membuat nomor referensi unik"}
}

// SetStatus moves one booking through the state machine. BOOKED passes the
// gate first; a gate failure aborts with nothing written. CANCELLED is
// terminal.
func (s BookingService) SetStatus(id int64, newStatus, actor string) (models.Booking, error) {
	status := utils.NormalizeCode(newStatus)
	if !models.IsBookingStatus(status) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenal: " + newStatus}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	b, err := s.BookingRepo.GetForUpdate(tx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status == status {
		return b, nil
	}
	if b.Status == models.BookingStatusCancelled {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "booking sudah dibatalkan"}
	}

	if status == models.BookingStatusBooked {
		pkg, err := s.PackageRepo.Get(tx, b.PackageID)
		if err != nil {
			return models.Booking{}, err
		}
		if err := s.Gate.Check(tx, b, pkg); err != nil {
			return models.Booking{}, err
		}
	}

	if err := applyTransition(tx, s.BookingRepo, s.HistoryRepo, b, status, actor); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "set_status", fmt.Sprintf("id=%d %s->%s actor=%s", b.ID, b.Status, status, actor))
	b.Status = status
	return b, nil
}

// BulkSetStatus applies one transition to many bookings. Unlike SetStatus
// it fails soft: each item is validated on its own, failures are collected
// and the rest commit.
func (s BookingService) BulkSetStatus(ids []int64, newStatus, actor string) (models.BulkStatusResult, error) {
	status := utils.NormalizeCode(newStatus)
	if !models.IsBookingStatus(status) {
		return models.BulkStatusResult{}, domain.ValidationError{Field: "status", Msg: "status tidak dikenal: " + newStatus}
	}
	if len(ids) == 0 {
		return models.BulkStatusResult{}, domain.ValidationError{Field: "ids", Msg: "daftar id kosong"}
	}

	result := models.BulkStatusResult{Failures: []models.BulkStatusFailure{}}
	for _, id := range ids {
		if _, err := s.SetStatus(id, status, actor); err != nil {
			result.Failures = append(result.Failures, models.BulkStatusFailure{
				BookingID: id,
				Reason:    err.Error(),
			})
			continue
		}
		result.Updated++
	}

	utils.LogEvent(s.RequestID, "booking", "bulk_status", fmt.Sprintf("status=%s updated=%d failed=%d", status, result.Updated, len(result.Failures)))
	return result, nil
}

func (s BookingService) GetByID(id int64) (models.Booking, error) {
	return s.BookingRepo.GetByID(id)
}

func (s BookingService) List(pilgrimID, packageID int64, status string) ([]models.Booking, error) {
	return s.BookingRepo.List(pilgrimID, packageID, status)
}

func (s BookingService) History(bookingID int64) ([]models.StatusChange, error) {
	return s.HistoryRepo.ListByBooking(bookingID)
}

// Update applies staff edits to operational fields. Derived money fields
// are not editable here; payment_status may be set to REFUNDED manually.
func (s BookingService) Update(id int64, upd models.BookingUpdate) (models.Booking, error) {
	if upd.PaymentStatus != nil {
		ps := utils.NormalizeCode(*upd.PaymentStatus)
		switch ps {
		case models.PaymentStatusPending, models.PaymentStatusPartial, models.PaymentStatusPaid, models.PaymentStatusRefunded:
			upd.PaymentStatus = &ps
		default:
			return models.Booking{}, domain.ValidationError{Field: "payment_status", Msg: "status pembayaran tidak dikenal"}
		}
	}
	if _, err := s.BookingRepo.GetByID(id); err != nil {
		return models.Booking{}, err
	}
	if err := s.BookingRepo.Update(id, upd); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return s.BookingRepo.GetByID(id)
}

func (s BookingService) Delete(id int64) error {
	if err := s.BookingRepo.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "delete", fmt.Sprintf("id=%d", id))
	return nil
}

// ParseIDList tolerates both []int64 and comma separated string payloads
// coming from older admin screens.
func ParseIDList(raw []int64, csv string) []int64 {
	out := append([]int64{}, raw...)
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var id int64
		if _, err := fmt.Sscanf(part, "%d", &id); err == nil && id > 0 {
			out = append(out, id)
		}
	}
	return out
}
