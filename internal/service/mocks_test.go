package service

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"letter-extractor/internal/domain"
)

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) record(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, line)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.record("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.record("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.record("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.record("WARN: " + msg)
}

// MockProvider records the staged path and whether it existed during the call.
type MockProvider struct {
	mu          sync.Mutex
	data        json.RawMessage
	err         error
	block       chan struct{}
	calls       int
	lastPath    string
	lastContent []byte
	lastSchema  domain.ExtractionSchema
	lastConfig  domain.ExtractionConfig
}

func (m *MockProvider) Extract(ctx context.Context, schema domain.ExtractionSchema, config domain.ExtractionConfig, filePath string) (json.RawMessage, error) {
	content, _ := os.ReadFile(filePath)

	m.mu.Lock()
	m.calls++
	m.lastPath = filePath
	m.lastContent = content
	m.lastSchema = schema
	m.lastConfig = config
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

const validLetter = `{
	"senderService": "Direction des Ressources Humaines",
	"receiverService": "Service Informatique",
	"date": "2024-01-10",
	"letterNumber": "REF-042",
	"subject": "Renouvellement du parc",
	"importance": "Urgent",
	"body": "Nous vous prions de bien vouloir..."
}`
