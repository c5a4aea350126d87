package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
)

// resetFlagChanged clears the Changed state cobra records on flags,
// so required-flag validation behaves the same across Execute calls.
func resetFlagChanged(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if f := cmd.Flags().Lookup(name); f != nil {
			f.Changed = false
		}
	}
}

// --- Stub services for command tests ---

type stubIndexService struct {
	result domain.RebuildResult
	err    error
	calls  int
}

func (s *stubIndexService) Rebuild(_ context.Context) (domain.RebuildResult, error) {
	s.calls++
	return s.result, s.err
}

type stubQueryService struct {
	answer       domain.Answer
	lastQuestion string
}

func (s *stubQueryService) Answer(_ context.Context, question string) domain.Answer {
	s.lastQuestion = question
	return s.answer
}

type dispatchedEvent struct {
	eventType string
	payload   map[string]any
}

type stubDispatcher struct {
	events []dispatchedEvent
}

func (s *stubDispatcher) Dispatch(_ context.Context, eventType string, payload map[string]any) {
	s.events = append(s.events, dispatchedEvent{eventType: eventType, payload: payload})
}

type stubClinicalStore struct {
	sessions []domain.Session
	patients []domain.Patient
	doctors  []domain.Doctor
	riskLogs []domain.RiskLog
}

func (s *stubClinicalStore) Sessions(_ context.Context) ([]domain.Session, error) {
	return s.sessions, nil
}

func (s *stubClinicalStore) Patients(_ context.Context) ([]domain.Patient, error) {
	return s.patients, nil
}

func (s *stubClinicalStore) Doctors(_ context.Context) ([]domain.Doctor, error) {
	return s.doctors, nil
}

func (s *stubClinicalStore) RiskLogs(_ context.Context) ([]domain.RiskLog, error) {
	return s.riskLogs, nil
}

func (s *stubClinicalStore) RecentRiskLogs(_ context.Context, _ int) ([]domain.RiskLog, error) {
	return s.riskLogs, nil
}

func (s *stubClinicalStore) SaveDoctor(_ context.Context, d domain.Doctor) (int64, error) {
	s.doctors = append(s.doctors, d)
	return int64(len(s.doctors)), nil
}

func (s *stubClinicalStore) SavePatient(_ context.Context, p domain.Patient) (int64, error) {
	s.patients = append(s.patients, p)
	return int64(len(s.patients)), nil
}

func (s *stubClinicalStore) SaveSession(_ context.Context, sess domain.Session) (int64, error) {
	s.sessions = append(s.sessions, sess)
	return int64(len(s.sessions)), nil
}

func (s *stubClinicalStore) SaveRiskLog(_ context.Context, r domain.RiskLog) (int64, error) {
	s.riskLogs = append(s.riskLogs, r)
	return int64(len(s.riskLogs)), nil
}

type stubSubscriberStore struct {
	subs []domain.Subscriber
}

func (s *stubSubscriberStore) ActiveSubscribers(_ context.Context, eventType string) ([]domain.Subscriber, error) {
	var matched []domain.Subscriber
	for _, sub := range s.subs {
		if sub.Active && sub.EventType == eventType {
			matched = append(matched, sub)
		}
	}
	return matched, nil
}

func (s *stubSubscriberStore) Save(_ context.Context, sub domain.Subscriber) error {
	s.subs = append(s.subs, sub)
	return nil
}

func (s *stubSubscriberStore) List(_ context.Context) ([]domain.Subscriber, error) {
	return s.subs, nil
}

type stubCipher struct{}

func (stubCipher) Encrypt(plaintext string) (string, error) {
	return "enc:" + plaintext, nil
}

func (stubCipher) Decrypt(ciphertext string) (string, error) {
	if !strings.HasPrefix(ciphertext, "enc:") {
		return "", domain.ErrDecryptFailed
	}
	return strings.TrimPrefix(ciphertext, "enc:"), nil
}

// testServices bundles the stubs wired by setupTestServices.
type testServices struct {
	index      *stubIndexService
	query      *stubQueryService
	dispatcher *stubDispatcher
	store      *stubClinicalStore
	subs       *stubSubscriberStore
}

// setupTestServices swaps the package-level services for stubs.
// The returned cleanup restores the previous wiring.
func setupTestServices() (*testServices, func()) {
	prevIndex := indexService
	prevQuery := queryService
	prevDispatcher := eventDispatcher
	prevClinical := clinicalStore
	prevSubs := subscriberStore
	prevCipher := textCipher

	ts := &testServices{
		index:      &stubIndexService{result: domain.RebuildResult{Indexed: 3}},
		query:      &stubQueryService{answer: domain.Answered("stub answer")},
		dispatcher: &stubDispatcher{},
		store:      &stubClinicalStore{},
		subs:       &stubSubscriberStore{},
	}

	indexService = ts.index
	queryService = ts.query
	eventDispatcher = ts.dispatcher
	clinicalStore = ts.store
	subscriberStore = ts.subs
	textCipher = stubCipher{}

	return ts, func() {
		indexService = prevIndex
		queryService = prevQuery
		eventDispatcher = prevDispatcher
		clinicalStore = prevClinical
		subscriberStore = prevSubs
		textCipher = prevCipher
	}
}
