package services

import (
	"context"
	"strings"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

// mockClinicalStore implements driven.ClinicalStore for testing.
type mockClinicalStore struct {
	sessions []domain.Session
	patients []domain.Patient
	doctors  []domain.Doctor
	riskLogs []domain.RiskLog

	sessionsErr error
	patientsErr error
	doctorsErr  error
	riskLogsErr error
}

func (m *mockClinicalStore) Sessions(_ context.Context) ([]domain.Session, error) {
	return m.sessions, m.sessionsErr
}

func (m *mockClinicalStore) Patients(_ context.Context) ([]domain.Patient, error) {
	return m.patients, m.patientsErr
}

func (m *mockClinicalStore) Doctors(_ context.Context) ([]domain.Doctor, error) {
	return m.doctors, m.doctorsErr
}

func (m *mockClinicalStore) RiskLogs(_ context.Context) ([]domain.RiskLog, error) {
	return m.riskLogs, m.riskLogsErr
}

func (m *mockClinicalStore) RecentRiskLogs(_ context.Context, n int) ([]domain.RiskLog, error) {
	if m.riskLogsErr != nil {
		return nil, m.riskLogsErr
	}
	if n > len(m.riskLogs) {
		return m.riskLogs, nil
	}
	return m.riskLogs[:n], nil
}

func (m *mockClinicalStore) SaveDoctor(_ context.Context, d domain.Doctor) (int64, error) {
	m.doctors = append(m.doctors, d)
	return int64(len(m.doctors)), nil
}

func (m *mockClinicalStore) SavePatient(_ context.Context, p domain.Patient) (int64, error) {
	m.patients = append(m.patients, p)
	return int64(len(m.patients)), nil
}

func (m *mockClinicalStore) SaveSession(_ context.Context, s domain.Session) (int64, error) {
	m.sessions = append(m.sessions, s)
	return int64(len(m.sessions)), nil
}

func (m *mockClinicalStore) SaveRiskLog(_ context.Context, r domain.RiskLog) (int64, error) {
	m.riskLogs = append(m.riskLogs, r)
	return int64(len(m.riskLogs)), nil
}

// mockCipher implements driven.TextCipher for testing.
// Encrypt prefixes "enc:"; Decrypt strips it, failing on anything else.
type mockCipher struct{}

func (mockCipher) Encrypt(plaintext string) (string, error) {
	return "enc:" + plaintext, nil
}

func (mockCipher) Decrypt(ciphertext string) (string, error) {
	if !strings.HasPrefix(ciphertext, "enc:") {
		return "", domain.ErrDecryptFailed
	}
	return strings.TrimPrefix(ciphertext, "enc:"), nil
}

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	embedding []float32
	embedErr  error
	dims      int

	batchTexts []string
}

func (m *mockEmbeddingService) Embed(_ context.Context, _ string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.batchTexts = texts
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = m.embedding
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return 384
}

func (m *mockEmbeddingService) ModelName() string {
	return "mock-embed"
}

func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbeddingService) Close() error {
	return nil
}

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	hits      []driven.VectorHit
	searchErr error
	length    int
	dims      int

	searchedK int
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	m.searchedK = k
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) Len() int {
	return m.length
}

func (m *mockVectorIndex) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return 3
}

// mockIndexStore implements driven.IndexStore for testing.
type mockIndexStore struct {
	index driven.VectorIndex
	docs  []domain.Document

	loadErr error
	saveErr error

	savedVectors [][]float32
	savedDocs    []domain.Document
	saveCalls    int
}

func (m *mockIndexStore) Save(_ context.Context, vectors [][]float32, docs []domain.Document) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saveCalls++
	m.savedVectors = vectors
	m.savedDocs = docs
	return nil
}

func (m *mockIndexStore) Load(_ context.Context) (driven.VectorIndex, []domain.Document, error) {
	if m.loadErr != nil {
		return nil, nil, m.loadErr
	}
	return m.index, m.docs, nil
}

// mockGenerativeService implements driven.GenerativeService for testing.
type mockGenerativeService struct {
	text string
	err  error

	lastPrompt string
	calls      int
}

func (m *mockGenerativeService) Answer(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func (m *mockGenerativeService) ModelName() string {
	return "mock-generative"
}

func (m *mockGenerativeService) Close() error {
	return nil
}

// mockSubscriberStore implements driven.SubscriberStore for testing.
type mockSubscriberStore struct {
	subs    []domain.Subscriber
	listErr error
}

func (m *mockSubscriberStore) ActiveSubscribers(_ context.Context, eventType string) ([]domain.Subscriber, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var matched []domain.Subscriber
	for _, sub := range m.subs {
		if sub.Active && sub.EventType == eventType {
			matched = append(matched, sub)
		}
	}
	return matched, nil
}

func (m *mockSubscriberStore) Save(_ context.Context, sub domain.Subscriber) error {
	m.subs = append(m.subs, sub)
	return nil
}

func (m *mockSubscriberStore) List(_ context.Context) ([]domain.Subscriber, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.subs, nil
}

// recordedDelivery captures one Deliver call.
type recordedDelivery struct {
	sub domain.Subscriber
	env domain.Envelope
}

// mockWebhookSender implements driven.WebhookSender for testing.
type mockWebhookSender struct {
	deliveries []recordedDelivery
	failFor    map[string]error // keyed by target URL
}

func (m *mockWebhookSender) Deliver(_ context.Context, sub domain.Subscriber, env domain.Envelope) error {
	m.deliveries = append(m.deliveries, recordedDelivery{sub: sub, env: env})
	if err, ok := m.failFor[sub.TargetURL]; ok {
		return err
	}
	return nil
}
