// Package cache memoizes derived views. Entries expire after a TTL and the
// least recently used entry is evicted when a cache is full.
package cache

import (
	"time"

	"findash/internal/log"
)

// Cache defines a generic cache interface
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Clear()
	Size() int
}

// Cleaner is implemented by caches that can drop expired entries
type Cleaner interface {
	CleanExpired() int
}

// StatsReporter is implemented by caches that count hits and misses
type StatsReporter interface {
	Stats() Stats
}

// Manager periodically sweeps registered caches
type Manager struct {
	caches      []Cleaner
	logger      *log.Logger
	stopCleanup chan struct{}
	cleanupDone chan struct{}
	started     bool
}

func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Discard()
	}
	return &Manager{
		logger:      logger.WithComponent(log.ComponentCache),
		stopCleanup: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
}

// Register adds a cache to the sweep. Call before StartCleanup.
func (m *Manager) Register(cache Cleaner) {
	m.caches = append(m.caches, cache)
}

// StartCleanup begins periodic cleanup of all registered caches
func (m *Manager) StartCleanup(interval time.Duration) {
	m.started = true
	go m.cleanup(interval)
}

func (m *Manager) cleanup(interval time.Duration) {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				st := m.Stats()
				m.logger.Debug("Expired cache entries removed", log.FieldCount, n,
					"size", st.Size, "hits", st.Hits, "misses", st.Misses)
			}
		case <-m.stopCleanup:
			return
		}
	}
}

// Sweep cleans every registered cache once and returns the number of
// removed entries.
func (m *Manager) Sweep() int {
	total := 0
	for _, c := range m.caches {
		total += c.CleanExpired()
	}
	return total
}

// Stats sums the counters of every registered cache that reports them.
func (m *Manager) Stats() Stats {
	var total Stats
	for _, c := range m.caches {
		if r, ok := c.(StatsReporter); ok {
			st := r.Stats()
			total.Size += st.Size
			total.Hits += st.Hits
			total.Misses += st.Misses
		}
	}
	return total
}

// Stop ends the cleanup goroutine and waits for it to exit
func (m *Manager) Stop() {
	if !m.started {
		return
	}
	m.started = false
	close(m.stopCleanup)
	<-m.cleanupDone
}
