package repositories

import (
	"testing"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newBookingRepo(t *testing.T) (BookingRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	intconfig.DB = db
	return BookingRepository{DB: db}, mock, func() { db.Close() }
}

func TestBookingGetByIDNotFound(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	mock.ExpectQuery("FROM bookings WHERE id=").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBookingGetByIDRejectsInvalidID(t *testing.T) {
	repo, _, done := newBookingRepo(t)
	defer done()

	_, err := repo.GetByID(0)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookingInsertDuplicateReferenceConflicts(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'BK-20260801-0001' for key 'uniq_booking_ref'"})

	b := models.Booking{ReferenceNumber: "BK-20260801-0001", PilgrimID: 1, PackageID: 2, Status: models.BookingStatusEOI}
	err := repo.Insert(&b)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestBookingInsertDuplicateActivePairConflicts(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-2-1' for key 'uniq_active_booking'"})

	b := models.Booking{ReferenceNumber: "BK-20260801-0002", PilgrimID: 1, PackageID: 2, Status: models.BookingStatusBooked}
	err := repo.Insert(&b)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestBookingInsertFillsID(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))

	b := models.Booking{ReferenceNumber: "BK-20260801-0003", PilgrimID: 1, PackageID: 2, Status: models.BookingStatusEOI}
	if err := repo.Insert(&b); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if b.ID != 42 {
		t.Fatalf("expected id 42, got %d", b.ID)
	}
}

func TestCountBookedExcludesSelf(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	mock.ExpectQuery("AND id <>").
		WithArgs(int64(7), models.BookingStatusBooked, int64(20)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))

	n, err := repo.CountBooked(intconfig.DB, 7, 20)
	if err != nil {
		t.Fatalf("CountBooked error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingDeleteNotFound(t *testing.T) {
	repo, mock, done := newBookingRepo(t)
	defer done()

	mock.ExpectExec("DELETE FROM bookings").WithArgs(int64(77)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(77); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
