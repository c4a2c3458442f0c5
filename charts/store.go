package charts

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// ChartStore manages saved-chart persistence and retrieval.
type ChartStore interface {
	// Save stores a new chart.
	Save(chart *SavedChart) error

	// Get retrieves a chart by ID.
	Get(id string) (*SavedChart, error)

	// ListRecent returns the most recently created charts, newest first.
	ListRecent(limit int) ([]*SavedChart, error)

	// Delete removes a chart.
	Delete(id string) error
}

// InMemoryChartStore implements ChartStore with an in-memory map. It backs
// the server when no database is configured, and the tests.
type InMemoryChartStore struct {
	chartsByID map[string]*SavedChart
	mu         sync.RWMutex
}

// NewInMemoryChartStore creates an empty in-memory chart store.
func NewInMemoryChartStore() *InMemoryChartStore {
	return &InMemoryChartStore{
		chartsByID: make(map[string]*SavedChart),
	}
}

// Save stores a new chart and stamps its timestamps.
func (s *InMemoryChartStore) Save(chart *SavedChart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.chartsByID[chart.ID]; exists {
		return fmt.Errorf("chart with ID %s already exists", chart.ID)
	}

	now := time.Now()
	chart.CreatedAt = now
	chart.UpdatedAt = now
	s.chartsByID[chart.ID] = chart
	return nil
}

// Get retrieves a chart by ID.
func (s *InMemoryChartStore) Get(id string) (*SavedChart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chart, exists := s.chartsByID[id]
	if !exists {
		return nil, fmt.Errorf("chart with ID %s not found", id)
	}
	return chart, nil
}

// ListRecent returns up to limit charts, newest first.
func (s *InMemoryChartStore) ListRecent(limit int) ([]*SavedChart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recent := make([]*SavedChart, 0, len(s.chartsByID))
	for _, chart := range s.chartsByID {
		recent = append(recent, chart)
	}
	sort.Slice(recent, func(i, j int) bool {
		if recent[i].CreatedAt.Equal(recent[j].CreatedAt) {
			return recent[i].ID < recent[j].ID
		}
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})

	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}

// Delete removes a chart from the store.
func (s *InMemoryChartStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.chartsByID[id]; !exists {
		return fmt.Errorf("chart with ID %s not found", id)
	}

	delete(s.chartsByID, id)
	return nil
}
