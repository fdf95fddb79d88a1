package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/rushhour/game/service"
)

var (
	ErrRunNotFound      = service.ErrRunNotFound
	ErrRunAlreadyExists = service.ErrRunAlreadyExists
	ErrInvalidRunID     = errors.New("invalid run ID")
)

// Manager keeps finished runs in memory, optionally backed by persistence
type Manager struct {
	runs        map[string]*service.Run
	persistence RunPersistence
	log         logrus.FieldLogger
	mu          sync.RWMutex
}

// NewManager creates a new in-memory run store
func NewManager() *Manager {
	return &Manager{
		runs: make(map[string]*service.Run),
		log:  logrus.StandardLogger(),
	}
}

// NewManagerWithPersistence creates a new run store that saves every run
func NewManagerWithPersistence(persistence RunPersistence) *Manager {
	m := NewManager()
	m.persistence = persistence
	return m
}

// SetLogger replaces the logger used for persistence warnings
func (m *Manager) SetLogger(logger logrus.FieldLogger) {
	if logger != nil {
		m.log = logger
	}
}

// Create stores run, assigning a fresh ID when it has none
func (m *Manager) Create(run *service.Run) (*service.Run, error) {
	if run == nil {
		return nil, fmt.Errorf("run cannot be nil")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if validateID(run.ID) != nil {
		return nil, ErrInvalidRunID
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	if run.LastAccessedAt.IsZero() {
		run.LastAccessedAt = run.CreatedAt
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(run.ID)
	if _, exists := m.runs[key]; exists {
		return nil, ErrRunAlreadyExists
	}
	stored := *run
	m.runs[key] = &stored

	if m.persistence != nil {
		if err := m.persistence.Save(run); err != nil {
			// the run stays available in memory
			m.log.WithError(err).WithField("run", run.ID).Warn("failed to persist run")
		}
	}

	return run, nil
}

// Get retrieves a copy of a run by ID (case-insensitive), falling back to
// persistence
func (m *Manager) Get(id string) (*service.Run, error) {
	key := strings.ToLower(id)

	m.mu.Lock()
	if run, exists := m.runs[key]; exists {
		run.LastAccessedAt = time.Now()
		cp := *run
		m.mu.Unlock()
		return &cp, nil
	}
	m.mu.Unlock()

	if m.persistence != nil && m.persistence.Exists(key) {
		run, err := m.persistence.Load(key)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted run: %w", err)
		}
		run.LastAccessedAt = time.Now()
		cp := *run

		m.mu.Lock()
		m.runs[key] = run
		m.mu.Unlock()

		return &cp, nil
	}

	return nil, ErrRunNotFound
}

// List returns copies of all runs held in memory
func (m *Manager) List() []*service.Run {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Run, 0, len(m.runs))
	for _, run := range m.runs {
		cp := *run
		result = append(result, &cp)
	}

	return result
}

// Delete removes a run from memory and from persistence
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	_, inMemory := m.runs[key]
	delete(m.runs, key)

	if m.persistence != nil && m.persistence.Exists(key) {
		if err := m.persistence.Delete(key); err != nil {
			return fmt.Errorf("failed to delete persisted run: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrRunNotFound
	}
	return nil
}

// DeleteFromMemory removes a run from memory only
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	if _, exists := m.runs[key]; !exists {
		return ErrRunNotFound
	}
	delete(m.runs, key)
	return nil
}

// Save writes one run to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	run, exists := m.runs[strings.ToLower(id)]
	var cp service.Run
	if exists {
		cp = *run
	}
	m.mu.RUnlock()
	if !exists {
		return ErrRunNotFound
	}

	return m.persistence.Save(&cp)
}

// CleanupExpiredRuns drops runs from memory that haven't been accessed
// within maxAge. Persisted copies are kept.
func (m *Manager) CleanupExpiredRuns(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for key, run := range m.runs {
		if run.LastAccessedAt.Before(cutoff) {
			delete(m.runs, key)
			removed++
		}
	}

	return removed
}

// Count returns the number of runs in memory
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

// LoadPersistedRuns loads every persisted run into memory
func (m *Manager) LoadPersistedRuns() error {
	if m.persistence == nil {
		return nil
	}

	ids, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted runs: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, id := range ids {
		key := strings.ToLower(id)
		if _, exists := m.runs[key]; exists {
			continue
		}

		run, err := m.persistence.Load(id)
		if err != nil {
			m.log.WithError(err).WithField("run", id).Warn("failed to load persisted run")
			continue
		}

		m.runs[key] = run
		loaded++
	}

	if loaded > 0 {
		m.log.WithField("count", loaded).Info("loaded persisted runs")
	}

	return nil
}

// SaveAllRuns writes every in-memory run to persistence
func (m *Manager) SaveAllRuns() error {
	if m.persistence == nil {
		return nil
	}

	runs := m.List()

	failed := 0
	for _, run := range runs {
		if err := m.persistence.Save(run); err != nil {
			m.log.WithError(err).WithField("run", run.ID).Warn("failed to save run")
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to save %d runs", failed)
	}

	return nil
}
