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

type PilgrimRepository struct {
	DB *sql.DB
}

func (r PilgrimRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r PilgrimRepository) GetByID(id int64) (models.Pilgrim, error) {
	if id <= 0 {
		return models.Pilgrim{}, domain.ValidationError{Field: "pilgrim_id", Msg: "id tidak valid"}
	}
	var p models.Pilgrim
	err := r.db().QueryRow(`
		SELECT id, full_name, COALESCE(phone,''), COALESCE(nationality,''), COALESCE(created_at,''), COALESCE(updated_at,'')
		FROM pilgrims WHERE id=? LIMIT 1`, id).Scan(
		&p.ID,
		&p.FullName,
		&p.Phone,
		&p.Nationality,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Pilgrim{}, domain.NotFoundError{Resource: "pilgrim"}
	}
	if err != nil {
		return models.Pilgrim{}, err
	}
	return p, nil
}

func (r PilgrimRepository) List() ([]models.Pilgrim, error) {
	rows, err := r.db().Query(`
		SELECT id, full_name, COALESCE(phone,''), COALESCE(nationality,''), COALESCE(created_at,''), COALESCE(updated_at,'')
		FROM pilgrims ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Pilgrim{}
	for rows.Next() {
		var p models.Pilgrim
		if err := rows.Scan(&p.ID, &p.FullName, &p.Phone, &p.Nationality, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PilgrimRepository) Insert(p *models.Pilgrim) error {
	name := strings.TrimSpace(p.FullName)
	if name == "" {
		return domain.ValidationError{Field: "full_name", Msg: "nama wajib diisi"}
	}
	res, err := r.db().Exec(`INSERT INTO pilgrims (full_name, phone, nationality) VALUES (?,?,?)`,
		name, strings.TrimSpace(p.Phone), strings.TrimSpace(p.Nationality))
	if err != nil {
		return err
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

// ListPassports runs through q because the booking gate reads passports
// inside the status transaction. Ordered by id so "the first passport on
// file" is stable.
func (r PilgrimRepository) ListPassports(q intdb.Queryer, pilgrimID int64) ([]models.Passport, error) {
	if pilgrimID <= 0 {
		return nil, domain.ValidationError{Field: "pilgrim_id", Msg: "id tidak valid"}
	}
	rows, err := q.Query(`
		SELECT id, pilgrim_id, passport_no, COALESCE(issued_date,''), COALESCE(expiry_date,''), COALESCE(created_at,'')
		FROM passports WHERE pilgrim_id=? ORDER BY id ASC`, pilgrimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passport{}
	for rows.Next() {
		var p models.Passport
		if err := rows.Scan(&p.ID, &p.PilgrimID, &p.PassportNo, &p.IssuedDate, &p.ExpiryDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PilgrimRepository) InsertPassport(p *models.Passport) error {
	if p.PilgrimID <= 0 {
		return domain.ValidationError{Field: "pilgrim_id", Msg: "id tidak valid"}
	}
	if strings.TrimSpace(p.PassportNo) == "" {
		return domain.ValidationError{Field: "passport_no", Msg: "nomor paspor wajib diisi"}
	}
	if strings.TrimSpace(p.ExpiryDate) == "" {
		return domain.ValidationError{Field: "expiry_date", Msg: "tanggal kadaluarsa wajib diisi"}
	}
	res, err := r.db().Exec(`INSERT INTO passports (pilgrim_id, passport_no, issued_date, expiry_date) VALUES (?,?,?,?)`,
		p.PilgrimID,
		strings.TrimSpace(p.PassportNo),
		intdb.NullIfEmpty(strings.TrimSpace(p.IssuedDate)),
		strings.TrimSpace(p.ExpiryDate),
	)
	if err != nil {
		return err
	}
	p.ID, _ = res.LastInsertId()
	return nil
}
