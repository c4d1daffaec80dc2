package services

import (
	"regexp"
	"testing"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)
	svc := BookingService{DB: db}
	return svc, mock, func() { db.Close() }
}

func expectPilgrimExists(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery("FROM pilgrims WHERE id=").WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "full_name", "phone", "nationality", "created_at", "updated_at",
		}).AddRow(id, "Siti Rahma", "0812", "ID", "", ""))
}

var refPattern = regexp.MustCompile(`^BK-\d{8}-\d{4}$`)

func TestCreateBookingEOI(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	expectPilgrimExists(mock, 3)
	mock.ExpectQuery("FROM trip_packages WHERE id=").WithArgs(int64(7)).
		WillReturnRows(packageRows(7, "Umrah Reguler", 500000, nil, "SAR", "2026-12-01"))
	mock.ExpectQuery("AND status <>").WithArgs(int64(3), int64(7), models.BookingStatusCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery("FROM bookings WHERE reference_number=").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(55, 1))
	mock.ExpectExec("INSERT INTO booking_status_history").
		WithArgs(int64(55), "", models.BookingStatusEOI, "ani").
		WillReturnResult(sqlmock.NewResult(1, 1))

	b, err := svc.Create(3, 7, "", "ani")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if b.ID != 55 {
		t.Fatalf("id not filled from insert, got %d", b.ID)
	}
	if b.Status != models.BookingStatusEOI || b.PaymentStatus != models.PaymentStatusPending {
		t.Fatalf("unexpected initial statuses: %s/%s", b.Status, b.PaymentStatus)
	}
	if b.CurrencyCode != "SAR" {
		t.Fatalf("currency not copied from package, got %q", b.CurrencyCode)
	}
	if !refPattern.MatchString(b.ReferenceNumber) {
		t.Fatalf("reference format wrong: %q", b.ReferenceNumber)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRetriesReferenceOnCollision(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	expectPilgrimExists(mock, 3)
	mock.ExpectQuery("FROM trip_packages WHERE id=").WithArgs(int64(7)).
		WillReturnRows(packageRows(7, "Umrah Reguler", 500000, nil, "SAR", "2026-12-01"))
	mock.ExpectQuery("AND status <>").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	// first candidate taken, second free
	mock.ExpectQuery("FROM bookings WHERE reference_number=").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery("FROM bookings WHERE reference_number=").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(56, 1))
	mock.ExpectExec("INSERT INTO booking_status_history").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if _, err := svc.Create(3, 7, "EOI", "ani"); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingDuplicateActiveConflicts(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	expectPilgrimExists(mock, 3)
	mock.ExpectQuery("FROM trip_packages WHERE id=").WithArgs(int64(7)).
		WillReturnRows(packageRows(7, "Umrah Reguler", 500000, nil, "SAR", "2026-12-01"))
	mock.ExpectQuery("AND status <>").WithArgs(int64(3), int64(7), models.BookingStatusCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	_, err := svc.Create(3, 7, "EOI", "ani")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate active booking, got %v", err)
	}
}

func TestSetStatusBookedFailsWithoutPassport(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings WHERE id=(.+) FOR UPDATE").WithArgs(int64(20)).
		WillReturnRows(bookingRows(20, "BK-20260801-0001", 3, 7, models.BookingStatusEOI, models.PaymentStatusPending, 0, "SAR"))
	mock.ExpectQuery("FROM trip_packages WHERE id=").WithArgs(int64(7)).
		WillReturnRows(packageRows(7, "Umrah Reguler", 500000, 40, "SAR", "2026-12-01"))
	mock.ExpectQuery("FROM passports WHERE pilgrim_id=").WithArgs(int64(3)).
		WillReturnRows(passportRows())
	mock.ExpectRollback()

	_, err := svc.SetStatus(20, "BOOKED", "ani")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "passport: passport required" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestSetStatusBookedFailsOnExpiredPassport(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings WHERE id=(.+) FOR UPDATE").WithArgs(int64(20)).
		WillReturnRows(bookingRows(20, "BK-20260801-0001", 3, 7, models.BookingStatusEOI, models.PaymentStatusPending, 0, "SAR"))
	mock.ExpectQuery("FROM trip_packages WHERE id=").WithArgs(int64(7)).
		WillReturnRows(packageRows(7, "Umrah Reguler", 500000, 40, "SAR", "2026-12-01"))
	mock.ExpectQuery("FROM passports WHERE pilgrim_id=").WithArgs(int64(3)).
		WillReturnRows(passportRows([]any{1, 3, "C1234567", "2016-11-15", "2026-11-15", ""}))
	mock.ExpectRollback()

	_, err := svc.SetStatus(20, "BOOKED", "ani")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "passport: passport expires before trip ends" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestSetStatusBookedFailsWhenCapacityReached(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings WHERE id=(.+) FOR UPDATE").WithArgs(int64(20)).
		WillReturnRows(bookingRows(20, "BK-20260801-0001", 3, 7, models.BookingStatusEOI, models.PaymentStatusPending, 0, "SAR"))
	mock.ExpectQuery("FROM trip_packages WHERE id=").WithArgs(int64(7)).
		WillReturnRows(packageRows(7, "Umrah Reguler", 500000, 2, "SAR", "2027-12-01"))
	mock.ExpectQuery("FROM passports WHERE pilgrim_id=").WithArgs(int64(3)).
		WillReturnRows(passportRows([]any{1, 3, "C1234567", "2020-01-01", "2030-01-01", ""}))
	mock.ExpectQuery("AND id <>").WithArgs(int64(7), models.BookingStatusBooked, int64(20)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))
	mock.ExpectRollback()

	_, err := svc.SetStatus(20, "BOOKED", "ani")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "capacity: capacity reached" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestSetStatusBookedPassesGateAndCommits(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings WHERE id=(.+) FOR UPDATE").WithArgs(int64(20)).
		WillReturnRows(bookingRows(20, "BK-20260801-0001", 3, 7, models.BookingStatusEOI, models.PaymentStatusPending, 0, "SAR"))
	mock.ExpectQuery("FROM trip_packages WHERE id=").WithArgs(int64(7)).
		WillReturnRows(packageRows(7, "Umrah Reguler", 500000, 40, "SAR", "2027-12-01"))
	mock.ExpectQuery("FROM passports WHERE pilgrim_id=").WithArgs(int64(3)).
		WillReturnRows(passportRows([]any{1, 3, "C1234567", "2020-01-01", "2030-01-01", ""}))
	mock.ExpectQuery("AND id <>").WithArgs(int64(7), models.BookingStatusBooked, int64(20)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(5))
	mock.ExpectExec("UPDATE bookings SET status=").
		WithArgs(models.BookingStatusBooked, 1, int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_status_history").
		WithArgs(int64(20), models.BookingStatusEOI, models.BookingStatusBooked, "ani").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	b, err := svc.SetStatus(20, "booked", "ani")
	if err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}
	if b.Status != models.BookingStatusBooked {
		t.Fatalf("status not updated, got %s", b.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// Cancelling never consults the gate: no package, passport or capacity
// queries happen. The active marker is cleared so the unique key frees the
// (pilgrim, package) slot for a future booking.
func TestSetStatusCancelledSkipsGate(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings WHERE id=(.+) FOR UPDATE").WithArgs(int64(20)).
		WillReturnRows(bookingRows(20, "BK-20260801-0001", 3, 7, models.BookingStatusBooked, models.PaymentStatusPartial, 100000, "SAR"))
	mock.ExpectExec("UPDATE bookings SET status=").
		WithArgs(models.BookingStatusCancelled, nil, int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_status_history").
		WithArgs(int64(20), models.BookingStatusBooked, models.BookingStatusCancelled, "ani").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if _, err := svc.SetStatus(20, "CANCELLED", "ani"); err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetStatusCancelledIsTerminal(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings WHERE id=(.+) FOR UPDATE").WithArgs(int64(21)).
		WillReturnRows(bookingRows(21, "BK-20260801-0002", 3, 7, models.BookingStatusCancelled, models.PaymentStatusPending, 0, "SAR"))
	mock.ExpectRollback()

	_, err := svc.SetStatus(21, "BOOKED", "ani")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict on cancelled booking, got %v", err)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, done := newBookingService(t)
	defer done()

	_, err := svc.SetStatus(20, "ARCHIVED", "ani")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

// Bulk conversion fails soft: the valid booking commits, the invalid one
// keeps its prior status and shows up once in the failure list.
func TestBulkSetStatusIsolatesFailures(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	// booking 30: gate passes
	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings WHERE id=(.+) FOR UPDATE").WithArgs(int64(30)).
		WillReturnRows(bookingRows(30, "BK-20260805-0030", 8, 7, models.BookingStatusEOI, models.PaymentStatusPending, 0, "SAR"))
	mock.ExpectQuery("FROM trip_packages WHERE id=").WithArgs(int64(7)).
		WillReturnRows(packageRows(7, "Umrah Reguler", 500000, 40, "SAR", "2027-12-01"))
	mock.ExpectQuery("FROM passports WHERE pilgrim_id=").WithArgs(int64(8)).
		WillReturnRows(passportRows([]any{2, 8, "D7654321", "2021-06-01", "2031-06-01", ""}))
	mock.ExpectQuery("AND id <>").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("UPDATE bookings SET status=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO booking_status_history").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// booking 31: no passport on file
	mock.ExpectBegin()
	mock.ExpectQuery("FROM bookings WHERE id=(.+) FOR UPDATE").WithArgs(int64(31)).
		WillReturnRows(bookingRows(31, "BK-20260805-0031", 9, 7, models.BookingStatusEOI, models.PaymentStatusPending, 0, "SAR"))
	mock.ExpectQuery("FROM trip_packages WHERE id=").WithArgs(int64(7)).
		WillReturnRows(packageRows(7, "Umrah Reguler", 500000, 40, "SAR", "2027-12-01"))
	mock.ExpectQuery("FROM passports WHERE pilgrim_id=").WithArgs(int64(9)).
		WillReturnRows(passportRows())
	mock.ExpectRollback()

	result, err := svc.BulkSetStatus([]int64{30, 31}, "BOOKED", "ani")
	if err != nil {
		t.Fatalf("BulkSetStatus error: %v", err)
	}
	if result.Updated != 1 {
		t.Fatalf("expected 1 success, got %d", result.Updated)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(result.Failures))
	}
	if result.Failures[0].BookingID != 31 {
		t.Fatalf("failure should reference booking 31, got %d", result.Failures[0].BookingID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestParseIDList(t *testing.T) {
	ids := ParseIDList([]int64{1, 2}, "3, 4,abc, ,5")
	want := []int64{1, 2, 3, 4, 5}
	if len(ids) != len(want) {
		t.Fatalf("got %v want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v want %v", ids, want)
		}
	}
}
