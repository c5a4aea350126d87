// Package sqlite provides the relational storage adapter backing the
// clinical record store and the webhook subscriber registry.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// clinical record and subscriber store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.hopequre/data/clinical.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".hopequre", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "clinical.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Foreign keys stay off: sessions and risk logs may reference
	// patients that were recorded elsewhere and imported later.
	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ClinicalStore returns a ClinicalStore interface backed by this store.
func (s *Store) ClinicalStore() driven.ClinicalStore {
	return &clinicalStore{store: s}
}

// SubscriberStore returns a SubscriberStore interface backed by this store.
func (s *Store) SubscriberStore() driven.SubscriberStore {
	return &subscriberStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Clinical Store ====================

// clinicalStore implements driven.ClinicalStore.
type clinicalStore struct {
	store *Store
}

var _ driven.ClinicalStore = (*clinicalStore)(nil)

// Sessions enumerates all clinical sessions, summaries still encrypted.
func (s *clinicalStore) Sessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT session_id, patient_id, short_summary, COALESCE(ai_json, ''), created_at
		FROM clinical_sessions ORDER BY session_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var sess domain.Session
		var patientID sql.NullInt64
		var createdAt sql.NullTime
		if err := rows.Scan(&sess.ID, &patientID, &sess.Summary, &sess.AIResult, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sess.PatientID = patientID.Int64
		if createdAt.Valid {
			sess.CreatedAt = createdAt.Time
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Patients enumerates all patient records.
func (s *clinicalStore) Patients(ctx context.Context) ([]domain.Patient, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT patient_id, name, email, COALESCE(assigned_doctor, 0)
		FROM patients ORDER BY patient_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying patients: %w", err)
	}
	defer rows.Close()

	var patients []domain.Patient
	for rows.Next() {
		var p domain.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.DoctorID); err != nil {
			return nil, fmt.Errorf("scanning patient: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

// Doctors enumerates all doctor records.
func (s *clinicalStore) Doctors(ctx context.Context) ([]domain.Doctor, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT doctor_id, name, email FROM doctors ORDER BY doctor_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying doctors: %w", err)
	}
	defer rows.Close()

	var doctors []domain.Doctor
	for rows.Next() {
		var d domain.Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Email); err != nil {
			return nil, fmt.Errorf("scanning doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}

// RiskLogs enumerates all risk-score rows.
func (s *clinicalStore) RiskLogs(ctx context.Context) ([]domain.RiskLog, error) {
	return s.queryRiskLogs(ctx, `
		SELECT log_id, COALESCE(patient_id, 0), COALESCE(session_id, 0),
		       COALESCE(email_body, ''), COALESCE(recipient_type, ''),
		       COALESCE(anxiety, 0), COALESCE(burnout_risk, 0),
		       COALESCE(depression_risk, 0), COALESCE(self_harm_risk, 0),
		       created_at
		FROM email_logs ORDER BY log_id
	`)
}

// RecentRiskLogs returns the n most recent risk-score rows, newest first.
func (s *clinicalStore) RecentRiskLogs(ctx context.Context, n int) ([]domain.RiskLog, error) {
	return s.queryRiskLogs(ctx, `
		SELECT log_id, COALESCE(patient_id, 0), COALESCE(session_id, 0),
		       COALESCE(email_body, ''), COALESCE(recipient_type, ''),
		       COALESCE(anxiety, 0), COALESCE(burnout_risk, 0),
		       COALESCE(depression_risk, 0), COALESCE(self_harm_risk, 0),
		       created_at
		FROM email_logs ORDER BY created_at DESC, log_id DESC LIMIT ?
	`, n)
}

func (s *clinicalStore) queryRiskLogs(ctx context.Context, query string, args ...any) ([]domain.RiskLog, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying risk logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.RiskLog
	for rows.Next() {
		var r domain.RiskLog
		var createdAt sql.NullTime
		if err := rows.Scan(&r.ID, &r.PatientID, &r.SessionID, &r.EmailBody,
			&r.RecipientType, &r.Anxiety, &r.Burnout, &r.Depression,
			&r.SelfHarm, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning risk log: %w", err)
		}
		if createdAt.Valid {
			r.CreatedAt = createdAt.Time
		}
		logs = append(logs, r)
	}
	return logs, rows.Err()
}

// SaveDoctor persists a doctor and returns its assigned ID.
func (s *clinicalStore) SaveDoctor(ctx context.Context, d domain.Doctor) (int64, error) {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO doctors (name, email) VALUES (?, ?)
	`, d.Name, d.Email)
	if err != nil {
		return 0, fmt.Errorf("saving doctor: %w", err)
	}
	return res.LastInsertId()
}

// SavePatient persists a patient and returns its assigned ID.
func (s *clinicalStore) SavePatient(ctx context.Context, p domain.Patient) (int64, error) {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO patients (name, email, assigned_doctor) VALUES (?, ?, ?)
	`, p.Name, p.Email, nullInt64(p.DoctorID))
	if err != nil {
		return 0, fmt.Errorf("saving patient: %w", err)
	}
	return res.LastInsertId()
}

// SaveSession persists a session. The summary must already be encrypted.
func (s *clinicalStore) SaveSession(ctx context.Context, sess domain.Session) (int64, error) {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO clinical_sessions (patient_id, short_summary, ai_json)
		VALUES (?, ?, ?)
	`, nullInt64(sess.PatientID), sess.Summary, sess.AIResult)
	if err != nil {
		return 0, fmt.Errorf("saving session: %w", err)
	}
	return res.LastInsertId()
}

// SaveRiskLog persists a risk-score row and returns its assigned ID.
func (s *clinicalStore) SaveRiskLog(ctx context.Context, r domain.RiskLog) (int64, error) {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO email_logs
		(patient_id, session_id, email_body, recipient_type,
		 anxiety, burnout_risk, depression_risk, self_harm_risk)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, nullInt64(r.PatientID), nullInt64(r.SessionID), r.EmailBody, r.RecipientType,
		r.Anxiety, r.Burnout, r.Depression, r.SelfHarm)
	if err != nil {
		return 0, fmt.Errorf("saving risk log: %w", err)
	}
	return res.LastInsertId()
}

// ==================== Subscriber Store ====================

// subscriberStore implements driven.SubscriberStore.
type subscriberStore struct {
	store *Store
}

var _ driven.SubscriberStore = (*subscriberStore)(nil)

// ActiveSubscribers returns the active subscribers for an event type.
func (s *subscriberStore) ActiveSubscribers(ctx context.Context, eventType string) ([]domain.Subscriber, error) {
	return s.query(ctx, `
		SELECT id, event_type, target_url, secret, active, created_at
		FROM webhook_subscribers
		WHERE event_type = ? AND active = 1
		ORDER BY created_at
	`, eventType)
}

// Save persists a subscriber registration.
func (s *subscriberStore) Save(ctx context.Context, sub domain.Subscriber) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO webhook_subscribers (id, event_type, target_url, secret, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			event_type = excluded.event_type,
			target_url = excluded.target_url,
			secret = excluded.secret,
			active = excluded.active
	`, sub.ID, sub.EventType, sub.TargetURL, sub.Secret, boolToInt(sub.Active), sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving subscriber: %w", err)
	}
	return nil
}

// List returns all subscriber registrations.
func (s *subscriberStore) List(ctx context.Context) ([]domain.Subscriber, error) {
	return s.query(ctx, `
		SELECT id, event_type, target_url, secret, active, created_at
		FROM webhook_subscribers ORDER BY created_at
	`)
}

func (s *subscriberStore) query(ctx context.Context, query string, args ...any) ([]domain.Subscriber, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying subscribers: %w", err)
	}
	defer rows.Close()

	var subs []domain.Subscriber
	for rows.Next() {
		var sub domain.Subscriber
		var active int
		var createdAt sql.NullTime
		if err := rows.Scan(&sub.ID, &sub.EventType, &sub.TargetURL,
			&sub.Secret, &active, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning subscriber: %w", err)
		}
		sub.Active = active != 0
		if createdAt.Valid {
			sub.CreatedAt = createdAt.Time
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// ==================== Helpers ====================

func nullInt64(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
