package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/romado33/JobApplicationTracker/internal/models"
)

// Store persists application records across runs in a local SQLite
// database, so rejections and interview requests survive mail leaving the
// scan window.
type Store struct {
	db *sqlx.DB
}

// Open opens (or creates) the database at path, enables WAL mode, and runs
// any pending schema migrations.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening history database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("error enabling WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating history schema: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		if err := s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// applicationRow mirrors the applications table.
type applicationRow struct {
	ID           string    `db:"id"`
	AppKey       string    `db:"app_key"`
	Company      string    `db:"company"`
	JobTitle     string    `db:"job_title"`
	DateApplied  time.Time `db:"date_applied"`
	Status       string    `db:"status"`
	LastUpdate   time.Time `db:"last_update"`
	EmailSubject string    `db:"email_subject"`
}

// Merge folds one scan's records into the stored history under the same
// semantics as the in-memory aggregation: DateApplied keeps the earliest
// date, LastUpdate and EmailSubject follow the newest email, and a stored
// rejection or interview request is never downgraded to Sent. Merging the
// same records twice leaves the history unchanged.
func (s *Store) Merge(records []models.ApplicationRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("beginning history transaction: %w", err)
	}
	defer tx.Rollback()

	for _, record := range records {
		var existing applicationRow
		err := tx.Get(&existing, "SELECT * FROM applications WHERE app_key = ?", record.Key())
		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.Exec(`
				INSERT INTO applications (
					id, app_key, company, job_title,
					date_applied, status, last_update, email_subject
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				uuid.New().String(), record.Key(), record.Company, record.JobTitle,
				record.DateApplied.UTC(), string(record.Status),
				record.LastUpdate.UTC(), record.EmailSubject,
			)
			if err != nil {
				return fmt.Errorf("inserting history for %q: %w", record.Company, err)
			}
		case err != nil:
			return fmt.Errorf("reading history for %q: %w", record.Company, err)
		default:
			merged := mergeRecord(existing, record)
			_, err = tx.Exec(`
				UPDATE applications SET
					date_applied = ?, status = ?, last_update = ?, email_subject = ?
				WHERE app_key = ?`,
				merged.DateApplied.UTC(), string(merged.Status),
				merged.LastUpdate.UTC(), merged.EmailSubject,
				record.Key(),
			)
			if err != nil {
				return fmt.Errorf("updating history for %q: %w", record.Company, err)
			}
		}
	}

	return tx.Commit()
}

// mergeRecord combines a stored row with an incoming record for the same
// application identity.
func mergeRecord(existing applicationRow, incoming models.ApplicationRecord) models.ApplicationRecord {
	merged := models.ApplicationRecord{
		Company:      existing.Company,
		JobTitle:     existing.JobTitle,
		DateApplied:  existing.DateApplied,
		Status:       models.Status(existing.Status),
		LastUpdate:   existing.LastUpdate,
		EmailSubject: existing.EmailSubject,
	}

	if incoming.DateApplied.Before(merged.DateApplied) {
		merged.DateApplied = incoming.DateApplied
	}
	if !incoming.LastUpdate.Before(merged.LastUpdate) {
		merged.LastUpdate = incoming.LastUpdate
		merged.EmailSubject = incoming.EmailSubject
	}
	// Same chronology rule as the in-memory fold: between two decisions
	// the newer email wins, while a decision beats a stored
	// acknowledgement regardless of dates.
	if incoming.Status.Overrides(merged.Status) &&
		(merged.Status == models.StatusSent || !incoming.LastUpdate.Before(existing.LastUpdate)) {
		merged.Status = incoming.Status
	}

	return merged
}

// List returns the full stored history, most recent update first, ties
// broken by company name.
func (s *Store) List() ([]models.ApplicationRecord, error) {
	var rows []applicationRow
	err := s.db.Select(&rows,
		"SELECT * FROM applications ORDER BY last_update DESC, company ASC")
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	records := make([]models.ApplicationRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.ApplicationRecord{
			Company:      row.Company,
			JobTitle:     row.JobTitle,
			DateApplied:  row.DateApplied,
			Status:       models.Status(row.Status),
			LastUpdate:   row.LastUpdate,
			EmailSubject: row.EmailSubject,
		})
	}
	return records, nil
}
