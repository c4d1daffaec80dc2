package services

import (
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"
)

// BookingGate decides whether a booking may hold BOOKED status. Checks run
// in a fixed order and the first failure wins:
//
//  1. the pilgrim has at least one passport on file
//  2. the first passport outlives the package's trip end date
//  3. the package still has capacity (nil capacity is unbounded)
//
// The gate runs only on explicit status changes. Payment-driven
// auto-promotion skips it; see PaymentService.reconcile.
type BookingGate struct {
	PilgrimRepo repositories.PilgrimRepository
	BookingRepo repositories.BookingRepository
}

// Check runs through q so a SetStatus transaction sees a consistent
// passport list and BOOKED count.
func (g BookingGate) Check(q intdb.Queryer, b models.Booking, pkg models.TripPackage) error {
	passports, err := g.PilgrimRepo.ListPassports(q, b.PilgrimID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if len(passports) == 0 {
		return domain.ValidationError{Field: "passport", Msg: "passport required"}
	}

	if end := utils.TrimOrEmpty(pkg.TripEndDate); end != "" {
		tripEnd, err := utils.ParseDate(end)
		if err != nil {
			return domain.InternalError{Msg: "tanggal akhir trip tidak valid", Err: err}
		}
		expiry, err := utils.ParseDate(passports[0].ExpiryDate)
		if err != nil || expiry.Before(tripEnd) {
			return domain.ValidationError{Field: "passport", Msg: "passport expires before trip ends"}
		}
	}

	if pkg.Capacity != nil {
		booked, err := g.BookingRepo.CountBooked(q, pkg.ID, b.ID)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		if booked >= *pkg.Capacity {
			return domain.ValidationError{Field: "capacity", Msg: "capacity reached"}
		}
	}

	return nil
}
