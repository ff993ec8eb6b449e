package location

import (
	"sync"
	"time"
)

// Sample is one GPS fix as consumed by the walk tracker.
type Sample struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	TimestampMillis int64   `json:"timestamp"`
}

func sampleFromPosition(p Position) Sample {
	return Sample{
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
		TimestampMillis: p.Timestamp.UnixMilli(),
	}
}

// Sampler wraps a continuous provider subscription and forwards each
// fired position as a Sample. The provider decides when to fire based
// on the registered thresholds; a silent subscription is not restarted.
type Sampler struct {
	provider Provider

	mu  sync.Mutex
	sub Subscription
}

func NewSampler(provider Provider) *Sampler {
	return &Sampler{provider: provider}
}

// DefaultWatchConfig mirrors the thresholds the app registers: a new
// sample every 10 meters or every 5 seconds.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{MinDistanceM: 10, MinInterval: 5 * time.Second}
}

// Start begins the subscription. Starting an already-started sampler
// replaces the previous subscription.
func (s *Sampler) Start(cfg WatchConfig, onSample func(Sample)) error {
	sub, err := s.provider.Watch(cfg, func(p Position) {
		onSample(sampleFromPosition(p))
	})
	if err != nil {
		return ErrUnavailable
	}

	s.mu.Lock()
	old := s.sub
	s.sub = sub
	s.mu.Unlock()

	if old != nil {
		old.Remove()
	}
	return nil
}

// Stop cancels the subscription. Safe to call when not started, and
// safe to call more than once.
func (s *Sampler) Stop() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	if sub != nil {
		sub.Remove()
	}
}
