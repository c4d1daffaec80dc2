package db

import "database/sql"

// EnsureSchema creates missing tables on startup. Statements use IF NOT
// EXISTS so repeated boots are harmless.
//
// bookings.active is 1 while the booking is not cancelled and NULL once it
// is; the unique key (pilgrim_id, package_id, active) therefore only bites
// for active rows, which is how MySQL expresses "at most one non-cancelled
// booking per pilgrim per package". reference_number carries its own unique
// key so the retry loop in BookingService has a hard backstop.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	username VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(100) NOT NULL DEFAULT '',
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(50) NOT NULL DEFAULT 'staff',
	status VARCHAR(50) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_users_email (email),
	UNIQUE KEY uniq_users_username (username)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS pilgrims (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	full_name VARCHAR(255) NOT NULL,
	phone VARCHAR(100) NOT NULL DEFAULT '',
	nationality VARCHAR(100) NOT NULL DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS passports (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	pilgrim_id BIGINT NOT NULL,
	passport_no VARCHAR(100) NOT NULL,
	issued_date DATE NULL,
	expiry_date DATE NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_passports_pilgrim (pilgrim_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS trip_packages (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	description TEXT NULL,
	price BIGINT NOT NULL DEFAULT 0,
	capacity INT NULL,
	currency_code VARCHAR(8) NOT NULL DEFAULT 'IDR',
	trip_start_date DATE NULL,
	trip_end_date DATE NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	reference_number VARCHAR(32) NOT NULL,
	pilgrim_id BIGINT NOT NULL,
	package_id BIGINT NOT NULL,
	status VARCHAR(16) NOT NULL DEFAULT 'EOI',
	payment_status VARCHAR(16) NOT NULL DEFAULT 'PENDING',
	amount_paid BIGINT NOT NULL DEFAULT 0,
	currency_code VARCHAR(8) NOT NULL DEFAULT 'IDR',
	ticket_number VARCHAR(100) NOT NULL DEFAULT '',
	room_assignment VARCHAR(100) NOT NULL DEFAULT '',
	notes TEXT NULL,
	active TINYINT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_booking_ref (reference_number),
	UNIQUE KEY uniq_active_booking (pilgrim_id, package_id, active),
	KEY idx_bookings_package (package_id),
	KEY idx_bookings_pilgrim (pilgrim_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS payments (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	amount BIGINT NOT NULL,
	currency_code VARCHAR(8) NOT NULL DEFAULT '',
	payment_method VARCHAR(50) NOT NULL DEFAULT '',
	payment_date DATE NULL,
	reference_number VARCHAR(100) NOT NULL DEFAULT '',
	notes TEXT NULL,
	recorded_by BIGINT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	KEY idx_payments_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS booking_status_history (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	from_status VARCHAR(16) NOT NULL DEFAULT '',
	to_status VARCHAR(16) NOT NULL,
	actor VARCHAR(100) NOT NULL DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_history_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
