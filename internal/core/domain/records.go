package domain

import (
	"fmt"
	"time"
)

// Doctor is a clinician record.
type Doctor struct {
	ID    int64
	Name  string
	Email string
}

// Patient is a patient record with an assigned doctor.
type Patient struct {
	ID       int64
	Name     string
	Email    string
	DoctorID int64
}

// Session is a persisted clinical session. Summary is stored encrypted
// and must be decrypted through the TextCipher port before it can be
// rendered into a retrieval document.
type Session struct {
	ID        int64
	PatientID int64
	// Summary is the AES-encrypted short summary as stored.
	Summary string
	// AIResult is the raw JSON produced by the analysis collaborator.
	AIResult  string
	CreatedAt time.Time
}

// RiskLog is a structured risk-score row recorded alongside a
// follow-up email.
type RiskLog struct {
	ID            int64
	PatientID     int64
	SessionID     int64
	EmailBody     string
	RecipientType string
	Anxiety       int
	Burnout       int
	Depression    int
	SelfHarm      int
	CreatedAt     time.Time
}

// SnapshotLine renders the patient for the live database snapshot
// appended to retrieval context. The snapshot format intentionally
// differs from the indexed document format.
func (p Patient) SnapshotLine() string {
	return fmt.Sprintf("Patient: %s Email: %s", p.Name, p.Email)
}

// SnapshotLine renders the doctor for the live database snapshot.
func (d Doctor) SnapshotLine() string {
	return fmt.Sprintf("Doctor: %s Email: %s", d.Name, d.Email)
}

// SnapshotLine renders the risk log for the live database snapshot.
func (r RiskLog) SnapshotLine() string {
	return fmt.Sprintf("Risk Log: Anxiety %d Burnout %d Depression %d Self Harm %d",
		r.Anxiety, r.Burnout, r.Depression, r.SelfHarm)
}
