package store

import (
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/jusunglee/mta-board/internal/models"
)

// Store holds the most recent board snapshot in memory
type Store struct {
	mu         sync.RWMutex
	snapshot   *models.Snapshot
	alerts     []models.Alert
	lastUpdate time.Time
}

// NewStore creates a new store instance
func NewStore() *Store {
	return &Store{
		alerts: []models.Alert{},
	}
}

// UpdateSnapshot replaces the current snapshot
func (s *Store) UpdateSnapshot(snap models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = &snap
	s.lastUpdate = snap.FetchedAt
}

// UpdateAlerts updates the service alerts
func (s *Store) UpdateAlerts(alerts []models.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = alerts
}

// Snapshot returns a copy of the current snapshot. It fails until the
// first successful update.
func (s *Store) Snapshot() (models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return models.Snapshot{}, fmt.Errorf("no snapshot available yet")
	}
	return cloneSnapshot(*s.snapshot), nil
}

// GetServiceAlerts returns all active service alerts
func (s *Store) GetServiceAlerts() []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Alert, len(s.alerts))
	copy(result, s.alerts)
	return result
}

// GetLastUpdate returns the last update time
func (s *Store) GetLastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

func cloneSnapshot(snap models.Snapshot) models.Snapshot {
	out := models.Snapshot{
		Arrivals:  make(models.Arrivals, len(snap.Arrivals)),
		Alerts:    maps.Clone(snap.Alerts),
		FetchedAt: snap.FetchedAt,
	}
	for dir, byRoute := range snap.Arrivals {
		routes := make(map[string][]int64, len(byRoute))
		for route, series := range byRoute {
			routes[route] = append([]int64(nil), series...)
		}
		out.Arrivals[dir] = routes
	}
	return out
}
