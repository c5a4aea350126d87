package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionDocument(t *testing.T) {
	doc := SessionDocument("patient reports insomnia and elevated anxiety")

	assert.Equal(t, TagClinicalSession, doc.Tag)
	assert.Equal(t, "CLINICAL_SESSION: patient reports insomnia and elevated anxiety", doc.Text)
}

func TestPatientDocument(t *testing.T) {
	doc := PatientDocument(Patient{Name: "Asha Rao", Email: "asha@example.com"})

	assert.Equal(t, TagPatient, doc.Tag)
	assert.Equal(t, "PATIENT: Asha Rao | asha@example.com", doc.Text)
}

func TestDoctorDocument(t *testing.T) {
	doc := DoctorDocument(Doctor{Name: "Dr Mehta", Email: "mehta@example.com"})

	assert.Equal(t, TagDoctor, doc.Tag)
	assert.Equal(t, "DOCTOR: Dr Mehta | mehta@example.com", doc.Text)
}

func TestRiskLogDocument(t *testing.T) {
	doc := RiskLogDocument(RiskLog{Anxiety: 7, Burnout: 4, Depression: 2, SelfHarm: 0})

	assert.Equal(t, TagRiskLog, doc.Tag)
	assert.Equal(t, "RISK_LOG: Anxiety=7 Burnout=4 Depression=2 SelfHarm=0", doc.Text)
}

func TestSnapshotLines(t *testing.T) {
	assert.Equal(t, "Patient: Asha Rao Email: asha@example.com",
		Patient{Name: "Asha Rao", Email: "asha@example.com"}.SnapshotLine())
	assert.Equal(t, "Doctor: Dr Mehta Email: mehta@example.com",
		Doctor{Name: "Dr Mehta", Email: "mehta@example.com"}.SnapshotLine())
	assert.Equal(t, "Risk Log: Anxiety 7 Burnout 4 Depression 2 Self Harm 0",
		RiskLog{Anxiety: 7, Burnout: 4, Depression: 2, SelfHarm: 0}.SnapshotLine())
}
