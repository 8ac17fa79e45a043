package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/open-meteo-tools/internal/weather"
)

var (
	// ErrNotFound is returned when no watch run has been recorded for a location.
	ErrNotFound = errors.New("no watch results for location")
)

// WatchRecord is the outcome of one alert evaluation for a watched location.
type WatchRecord struct {
	Location  weather.Location `json:"location"`
	CheckedAt time.Time        `json:"checked_at"`
	Alerts    []weather.Alert  `json:"alerts"`
}

// MemoryStore is a concurrency-safe in-memory history of watch results.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key, value: records ordered by CheckedAt
	data map[string][]WatchRecord

	maxHistory int           // max number of records per location
	maxAge     time.Duration // optional max age for records
	clock      clockwork.Clock
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration, clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string][]WatchRecord),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		clock:      clock,
	}
}

// Save appends a record for its location and enforces retention.
func (s *MemoryStore) Save(rec WatchRecord) {
	key := rec.Location.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.data[key], rec)

	if s.maxHistory > 0 && len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}

	// The newest record is always kept, however old.
	if s.maxAge > 0 {
		cutoff := s.clock.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history)-1; i++ {
			if !history[i].CheckedAt.Before(cutoff) {
				break
			}
		}
		history = history[i:]
	}

	s.data[key] = history
}

// Latest returns the most recent record for a location key.
func (s *MemoryStore) Latest(key string) (WatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[key]
	if len(history) == 0 {
		return WatchRecord{}, ErrNotFound
	}
	return history[len(history)-1], nil
}

// Range returns the records for a location key checked between from and to (inclusive).
func (s *MemoryStore) Range(key string, from, to time.Time) ([]WatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []WatchRecord
	for _, rec := range s.data[key] {
		if !rec.CheckedAt.Before(from) && !rec.CheckedAt.After(to) {
			result = append(result, rec)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}

// LatestAll returns the newest record of every location, ordered by key.
func (s *MemoryStore) LatestAll() []WatchRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]WatchRecord, 0, len(s.data))
	for _, history := range s.data {
		out = append(out, history[len(history)-1])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location.Key() < out[j].Location.Key() })
	return out
}
