package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"archivedb/internal/common"
)

// InMemory is a Store backed by process memory. It supports toggling
// availability and injecting failures, which makes it the fixture of choice
// for repository tests exercising the degraded-mirror paths.
type InMemory struct {
	mu      sync.Mutex
	up      bool
	failing bool

	records map[string]map[string]map[string]any // collection -> id -> record
	blobs   map[string][]byte

	// Calls counts invocations per method name, including ones rejected
	// while unavailable.
	Calls map[string]int
}

func NewInMemory() *InMemory {
	return &InMemory{
		up:      true,
		records: make(map[string]map[string]map[string]any),
		blobs:   make(map[string][]byte),
		Calls:   make(map[string]int),
	}
}

// SetAvailable controls what Ready reports after the next Probe.
func (m *InMemory) SetAvailable(up bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.up = up
}

// SetFailing makes every data call return an error while Ready stays true,
// simulating a mirror that answers probes but rejects writes.
func (m *InMemory) SetFailing(failing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing = failing
}

func (m *InMemory) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.up
}

func (m *InMemory) Probe(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["Probe"]++
	if !m.up {
		return common.ErrRemoteUnavailable
	}
	return nil
}

func (m *InMemory) guard(method string) error {
	m.Calls[method]++
	if !m.up {
		return common.ErrRemoteUnavailable
	}
	if m.failing {
		return fmt.Errorf("injected %s failure", method)
	}
	return nil
}

func (m *InMemory) GetAll(_ context.Context, collection string) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard("GetAll"); err != nil {
		return nil, err
	}

	var out []json.RawMessage
	for _, rec := range m.records[collection] {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}

func (m *InMemory) Set(_ context.Context, collection, id string, record any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard("Set"); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	if m.records[collection] == nil {
		m.records[collection] = make(map[string]map[string]any)
	}
	m.records[collection][id] = rec
	return nil
}

func (m *InMemory) Update(_ context.Context, collection, id string, partial map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard("Update"); err != nil {
		return err
	}

	rec, ok := m.records[collection][id]
	if !ok {
		return nil
	}
	// round-trip through JSON so stored values match what a real document
	// database would hold
	data, err := json.Marshal(partial)
	if err != nil {
		return err
	}
	var patch map[string]any
	if err := json.Unmarshal(data, &patch); err != nil {
		return err
	}
	for k, v := range patch {
		rec[k] = v
	}
	return nil
}

func (m *InMemory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard("Delete"); err != nil {
		return err
	}
	delete(m.records[collection], id)
	return nil
}

func (m *InMemory) DeleteByDossier(_ context.Context, collection, dossierID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard("DeleteByDossier"); err != nil {
		return err
	}
	for id, rec := range m.records[collection] {
		if v, _ := rec["dossierId"].(string); v == dossierID {
			delete(m.records[collection], id)
		}
	}
	return nil
}

func (m *InMemory) UploadBlob(_ context.Context, path string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.guard("UploadBlob"); err != nil {
		return "", err
	}
	m.blobs[path] = append([]byte(nil), data...)
	return "https://blobs.example/" + path, nil
}

// Record returns a stored record, or nil when absent.
func (m *InMemory) Record(collection, id string) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[collection][id]
}

// Count returns the number of records in a collection.
func (m *InMemory) Count(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records[collection])
}

// Blob returns an uploaded payload, or nil when absent.
func (m *InMemory) Blob(path string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blobs[path]
}
