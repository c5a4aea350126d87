package domain

import "fmt"

// DocTag identifies the record type a retrieval document was rendered from.
// The tag is embedded in the document text itself so the generative
// collaborator can tell record types apart inside the assembled context.
type DocTag string

// Known document tags.
const (
	TagClinicalSession DocTag = "CLINICAL_SESSION"
	TagPatient         DocTag = "PATIENT"
	TagDoctor          DocTag = "DOCTOR"
	TagRiskLog         DocTag = "RISK_LOG"
)

// Document is a tagged text unit indexed for retrieval.
//
// Documents are created in bulk during a full index rebuild and never
// mutated. A document's position in the generation is its identity: the
// vector at position i belongs to the document at position i. The whole
// generation is discarded and replaced on the next rebuild.
type Document struct {
	// Tag is the record type this document was rendered from.
	Tag DocTag

	// Text is the rendered string that is actually embedded,
	// e.g. "CLINICAL_SESSION: patient reports insomnia".
	Text string
}

// SessionDocument renders a decrypted session summary into its
// indexable form.
func SessionDocument(summary string) Document {
	return Document{
		Tag:  TagClinicalSession,
		Text: string(TagClinicalSession) + ": " + summary,
	}
}

// PatientDocument renders a patient record into its indexable form.
func PatientDocument(p Patient) Document {
	return Document{
		Tag:  TagPatient,
		Text: fmt.Sprintf("%s: %s | %s", TagPatient, p.Name, p.Email),
	}
}

// DoctorDocument renders a doctor record into its indexable form.
func DoctorDocument(d Doctor) Document {
	return Document{
		Tag:  TagDoctor,
		Text: fmt.Sprintf("%s: %s | %s", TagDoctor, d.Name, d.Email),
	}
}

// RiskLogDocument renders a risk-score row into its indexable form.
func RiskLogDocument(r RiskLog) Document {
	return Document{
		Tag: TagRiskLog,
		Text: fmt.Sprintf("%s: Anxiety=%d Burnout=%d Depression=%d SelfHarm=%d",
			TagRiskLog, r.Anxiety, r.Burnout, r.Depression, r.SelfHarm),
	}
}
