package driven

import (
	"context"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
)

// ClinicalStore provides access to relational clinical records.
//
// The retrieval core reads whole tables when building the document
// snapshot and a small recency-bounded slice when answering queries.
// Session summaries come back encrypted; callers decrypt them through
// the TextCipher port before rendering documents.
type ClinicalStore interface {
	// Sessions enumerates all clinical sessions. Summary fields are
	// encrypted as stored.
	Sessions(ctx context.Context) ([]domain.Session, error)

	// Patients enumerates all patient records.
	Patients(ctx context.Context) ([]domain.Patient, error)

	// Doctors enumerates all doctor records.
	Doctors(ctx context.Context) ([]domain.Doctor, error)

	// RiskLogs enumerates all risk-score rows.
	RiskLogs(ctx context.Context) ([]domain.RiskLog, error)

	// RecentRiskLogs returns the n most recent risk-score rows ordered
	// by recency, newest first.
	RecentRiskLogs(ctx context.Context, n int) ([]domain.RiskLog, error)

	// SaveDoctor persists a doctor and returns its assigned ID.
	SaveDoctor(ctx context.Context, d domain.Doctor) (int64, error)

	// SavePatient persists a patient and returns its assigned ID.
	SavePatient(ctx context.Context, p domain.Patient) (int64, error)

	// SaveSession persists a session (summary already encrypted) and
	// returns its assigned ID.
	SaveSession(ctx context.Context, s domain.Session) (int64, error)

	// SaveRiskLog persists a risk-score row and returns its assigned ID.
	SaveRiskLog(ctx context.Context, r domain.RiskLog) (int64, error)
}
