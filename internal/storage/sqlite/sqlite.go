// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded — we never call anything from it directly.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aanand-mishra/student-registration/internal/config"
	"github.com/aanand-mishra/student-registration/internal/storage"
	"github.com/aanand-mishra/student-registration/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// registrationColumns is the column list shared by every SELECT, in the
// order scanRegistration expects them.
const registrationColumns = `id, created_at,
	first_name, last_name, date_of_birth, gender,
	email, phone, address, city, zip_code,
	previous_school, grade_applying_for,
	guardian_name, guardian_relation, guardian_phone, guardian_email,
	emergency_contact_name, emergency_contact_phone, medical_conditions`

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at cfg.StoragePath, creates the
// registrations table if it does not already exist, and returns a
// ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.StoragePath)
}

// Open is New for callers that only have a path, such as tests.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup. Optional form fields are stored as empty strings, never NULL.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS registrations (
			id                      INTEGER  PRIMARY KEY AUTOINCREMENT,
			created_at              DATETIME NOT NULL,
			first_name              TEXT     NOT NULL,
			last_name               TEXT     NOT NULL,
			date_of_birth           TEXT     NOT NULL,
			gender                  TEXT     NOT NULL,
			email                   TEXT     NOT NULL DEFAULT '',
			phone                   TEXT     NOT NULL DEFAULT '',
			address                 TEXT     NOT NULL,
			city                    TEXT     NOT NULL,
			zip_code                TEXT     NOT NULL,
			previous_school         TEXT     NOT NULL DEFAULT '',
			grade_applying_for      TEXT     NOT NULL,
			guardian_name           TEXT     NOT NULL,
			guardian_relation       TEXT     NOT NULL,
			guardian_phone          TEXT     NOT NULL,
			guardian_email          TEXT     NOT NULL,
			emergency_contact_name  TEXT     NOT NULL DEFAULT '',
			emergency_contact_phone TEXT     NOT NULL DEFAULT '',
			medical_conditions      TEXT     NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// CreateRegistration inserts a new row into the registrations table.
// Values are bound through ? placeholders, never concatenated into SQL.
func (s *SQLite) CreateRegistration(reg types.Registration) (int64, error) {
	stmt, err := s.Db.Prepare(`
		INSERT INTO registrations (
			created_at,
			first_name, last_name, date_of_birth, gender,
			email, phone, address, city, zip_code,
			previous_school, grade_applying_for,
			guardian_name, guardian_relation, guardian_phone, guardian_email,
			emergency_contact_name, emergency_contact_phone, medical_conditions
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("CreateRegistration: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(
		time.Now().UTC(),
		reg.FirstName, reg.LastName, reg.DateOfBirth, reg.Gender,
		reg.Email, reg.Phone, reg.Address, reg.City, reg.ZipCode,
		reg.PreviousSchool, reg.GradeApplyingFor,
		reg.GuardianName, reg.GuardianRelation, reg.GuardianPhone, reg.GuardianEmail,
		reg.EmergencyContactName, reg.EmergencyContactPhone, reg.MedicalConditions,
	)
	if err != nil {
		return 0, fmt.Errorf("CreateRegistration: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateRegistration: last insert id: %w", err)
	}

	return lastID, nil
}

// GetRegistrationByID fetches exactly one registration by primary key.
func (s *SQLite) GetRegistrationByID(id int64) (types.StoredRegistration, error) {
	stmt, err := s.Db.Prepare(
		"SELECT " + registrationColumns + " FROM registrations WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.StoredRegistration{}, fmt.Errorf("GetRegistrationByID: prepare: %w", err)
	}
	defer stmt.Close()

	reg, err := scanRegistration(stmt.QueryRow(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.StoredRegistration{}, fmt.Errorf("no registration found with id %d: %w", id, storage.ErrNotFound)
		}
		return types.StoredRegistration{}, fmt.Errorf("GetRegistrationByID: scan: %w", err)
	}

	return reg, nil
}

// GetRegistrations returns all registration rows, oldest first.
func (s *SQLite) GetRegistrations() ([]types.StoredRegistration, error) {
	stmt, err := s.Db.Prepare(
		"SELECT " + registrationColumns + " FROM registrations ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetRegistrations: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetRegistrations: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so the JSON encoding is [] rather than null.
	regs := make([]types.StoredRegistration, 0)

	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("GetRegistrations: scan row: %w", err)
		}
		regs = append(regs, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetRegistrations: rows iteration: %w", err)
	}

	return regs, nil
}

// DeleteRegistrationByID removes a registration row by primary key.
func (s *SQLite) DeleteRegistrationByID(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM registrations WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteRegistrationByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteRegistrationByID: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteRegistrationByID: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no registration found with id %d: %w", id, storage.ErrNotFound)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row scanner) (types.StoredRegistration, error) {
	var reg types.StoredRegistration
	err := row.Scan(
		&reg.ID, &reg.CreatedAt,
		&reg.FirstName, &reg.LastName, &reg.DateOfBirth, &reg.Gender,
		&reg.Email, &reg.Phone, &reg.Address, &reg.City, &reg.ZipCode,
		&reg.PreviousSchool, &reg.GradeApplyingFor,
		&reg.GuardianName, &reg.GuardianRelation, &reg.GuardianPhone, &reg.GuardianEmail,
		&reg.EmergencyContactName, &reg.EmergencyContactPhone, &reg.MedicalConditions,
	)
	return reg, err
}
