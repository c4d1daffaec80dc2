package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

const packageColumns = `
	id,
	name,
	COALESCE(description, ''),
	price,
	capacity,
	currency_code,
	COALESCE(trip_start_date, ''),
	COALESCE(trip_end_date, ''),
	COALESCE(created_at, ''),
	COALESCE(updated_at, '')`

type PackageRepository struct {
	DB *sql.DB
}

func (r PackageRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r PackageRepository) GetByID(id int64) (models.TripPackage, error) {
	return r.Get(r.db(), id)
}

// Get fetches a package through q; the booking gate reads package price,
// capacity and trip end inside the caller's transaction.
func (r PackageRepository) Get(q intdb.Queryer, id int64) (models.TripPackage, error) {
	if id <= 0 {
		return models.TripPackage{}, domain.ValidationError{Field: "package_id", Msg: "id tidak valid"}
	}
	var p models.TripPackage
	var capacity sql.NullInt64
	err := q.QueryRow(`SELECT `+packageColumns+` FROM trip_packages WHERE id=? LIMIT 1`, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&capacity,
		&p.CurrencyCode,
		&p.TripStartDate,
		&p.TripEndDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TripPackage{}, domain.NotFoundError{Resource: "package"}
	}
	if err != nil {
		return models.TripPackage{}, err
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		p.Capacity = &c
	}
	return p, nil
}

func (r PackageRepository) List() ([]models.TripPackage, error) {
	rows, err := r.db().Query(`SELECT ` + packageColumns + ` FROM trip_packages ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TripPackage{}
	for rows.Next() {
		var p models.TripPackage
		var capacity sql.NullInt64
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&capacity,
			&p.CurrencyCode,
			&p.TripStartDate,
			&p.TripEndDate,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if capacity.Valid {
			c := int(capacity.Int64)
			p.Capacity = &c
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PackageRepository) Insert(p *models.TripPackage) error {
	res, err := r.db().Exec(`
		INSERT INTO trip_packages
			(name, description, price, capacity, currency_code, trip_start_date, trip_end_date)
		VALUES (?,?,?,?,?,?,?)`,
		strings.TrimSpace(p.Name),
		intdb.NullIfEmpty(p.Description),
		p.Price,
		intdb.NullableInt(p.Capacity),
		strings.ToUpper(strings.TrimSpace(p.CurrencyCode)),
		intdb.NullIfEmpty(p.TripStartDate),
		intdb.NullIfEmpty(p.TripEndDate),
	)
	if err != nil {
		return err
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

func (r PackageRepository) Update(id int64, upd models.TripPackageUpdate) error {
	if id <= 0 {
		return domain.ValidationError{Field: "package_id", Msg: "id tidak valid"}
	}
	sets := []string{}
	args := []any{}

	if upd.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, strings.TrimSpace(*upd.Name))
	}
	if upd.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, intdb.NullIfEmpty(strings.TrimSpace(*upd.Description)))
	}
	if upd.Price != nil {
		sets = append(sets, "price=?")
		args = append(args, *upd.Price)
	}
	if upd.CapacitySet {
		sets = append(sets, "capacity=?")
		args = append(args, intdb.NullableInt(upd.Capacity))
	}
	if upd.CurrencyCode != nil {
		sets = append(sets, "currency_code=?")
		args = append(args, strings.ToUpper(strings.TrimSpace(*upd.CurrencyCode)))
	}
	if upd.TripStartDate != nil {
		sets = append(sets, "trip_start_date=?")
		args = append(args, intdb.NullIfEmpty(strings.TrimSpace(*upd.TripStartDate)))
	}
	if upd.TripEndDate != nil {
		sets = append(sets, "trip_end_date=?")
		args = append(args, intdb.NullIfEmpty(strings.TrimSpace(*upd.TripEndDate)))
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)
	_, err := r.db().Exec(`UPDATE trip_packages SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return err
}

func (r PackageRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "package_id", Msg: "id tidak valid"}
	}
	res, err := r.db().Exec(`DELETE FROM trip_packages WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "package"}
	}
	return nil
}
