package walk

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/LittlJoey/pet-tracker-app/internal/location"
	"github.com/LittlJoey/pet-tracker-app/internal/shared/geo"
)

// Tracker owns one walk's in-progress state. The sampler callback, the
// one-second tick loop and user actions all enter through OnSample,
// OnTick, Stop and Discard; each re-checks the state under the mutex
// before mutating, so callbacks that slip in after stop or discard are
// dropped rather than applied.
type Tracker struct {
	id     string
	petID  string
	userID string

	negotiator *location.Negotiator
	sampler    *location.Sampler
	watchCfg   location.WatchConfig
	onUpdate   func(LiveStats)

	// Overridden in tests to drive ticks manually.
	tickInterval time.Duration

	mu         sync.Mutex
	state      State
	generation uint64
	startedAt  time.Time
	points     []location.Sample
	distanceM  float64
	elapsedSec int
	tickStop   chan struct{}
	snapshot   Session
}

func NewTracker(id, petID, userID string, negotiator *location.Negotiator, sampler *location.Sampler, watchCfg location.WatchConfig, onUpdate func(LiveStats)) *Tracker {
	return &Tracker{
		id:           id,
		petID:        petID,
		userID:       userID,
		negotiator:   negotiator,
		sampler:      sampler,
		watchCfg:     watchCfg,
		onUpdate:     onUpdate,
		tickInterval: time.Second,
		state:        StateIdle,
	}
}

// Start negotiates a usable permission tier, resets the session state
// and begins sampling and ticking. Only valid from Idle.
func (t *Tracker) Start(ctx context.Context) (location.Tier, error) {
	t.mu.Lock()
	if t.state != StateIdle {
		state := t.state
		t.mu.Unlock()
		return location.TierNone, &StateError{Op: "start", State: state}
	}
	t.mu.Unlock()

	tier, _, err := t.negotiator.Ensure(ctx)
	if err != nil {
		return tier, err
	}
	if !tier.Usable() {
		return tier, location.ErrPermissionDenied
	}

	t.mu.Lock()
	t.state = StateTracking
	t.generation++
	gen := t.generation
	t.startedAt = time.Now()
	t.points = nil
	t.distanceM = 0
	t.elapsedSec = 0
	t.tickStop = make(chan struct{})
	tickStop := t.tickStop
	t.mu.Unlock()

	if err := t.sampler.Start(t.watchCfg, func(s location.Sample) {
		t.onSample(gen, s)
	}); err != nil {
		t.mu.Lock()
		t.state = StateIdle
		close(t.tickStop)
		t.tickStop = nil
		t.mu.Unlock()
		return tier, err
	}

	go t.tickLoop(gen, tickStop)
	return tier, nil
}

// OnSample feeds a device-reported sample into the current session.
func (t *Tracker) OnSample(s location.Sample) {
	t.mu.Lock()
	gen := t.generation
	t.mu.Unlock()
	t.onSample(gen, s)
}

func (t *Tracker) onSample(gen uint64, s location.Sample) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateTracking || gen != t.generation {
		log.Printf("walk %s: dropping stale sample", t.id)
		return
	}

	if n := len(t.points); n > 0 {
		prev := t.points[n-1]
		// Raw point-to-point accumulation; GPS jitter is not filtered.
		t.distanceM += geo.HaversineMeters(prev.Latitude, prev.Longitude, s.Latitude, s.Longitude)
	}
	t.points = append(t.points, s)
	t.notifyLocked()
}

// OnTick advances elapsed time by one second while tracking.
func (t *Tracker) OnTick() {
	t.mu.Lock()
	gen := t.generation
	t.mu.Unlock()
	t.onTick(gen)
}

func (t *Tracker) onTick(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateTracking || gen != t.generation {
		log.Printf("walk %s: dropping stale tick", t.id)
		return
	}
	t.elapsedSec++
	t.notifyLocked()
}

func (t *Tracker) tickLoop(gen uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(t.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.onTick(gen)
		}
	}
}

// Stop freezes the session and returns its snapshot. The sampler and
// tick loop are cancelled before Stop returns, so no further samples
// or ticks are applied. A second Stop returns the same snapshot.
func (t *Tracker) Stop() Session {
	t.sampler.Stop()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateStopped {
		return t.snapshot
	}
	if t.state != StateTracking {
		return Session{}
	}

	t.state = StateStopped
	if t.tickStop != nil {
		close(t.tickStop)
		t.tickStop = nil
	}
	t.snapshot = t.sessionLocked()
	return t.snapshot
}

// Discard clears the session and returns the tracker to Idle. Valid
// from Tracking or Stopped; a no-op from Idle.
func (t *Tracker) Discard() {
	t.sampler.Stop()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.tickStop != nil {
		close(t.tickStop)
		t.tickStop = nil
	}
	t.state = StateIdle
	t.generation++
	t.points = nil
	t.distanceM = 0
	t.elapsedSec = 0
	t.snapshot = Session{}
}

// Session returns a snapshot of the current state without changing it.
func (t *Tracker) Session() Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateStopped {
		return t.snapshot
	}
	return t.sessionLocked()
}

// Live returns the display-binding view of the walk.
func (t *Tracker) Live() LiveStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.liveLocked()
}

func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Tracker) sessionLocked() Session {
	points := make([]location.Sample, len(t.points))
	copy(points, t.points)
	return Session{
		ID:             t.id,
		PetID:          t.petID,
		UserID:         t.userID,
		StartedAt:      t.startedAt,
		Points:         points,
		DistanceMeters: t.distanceM,
		ElapsedSeconds: t.elapsedSec,
	}
}

func (t *Tracker) liveLocked() LiveStats {
	return LiveStats{
		WalkID:         t.id,
		State:          t.state,
		DistanceMeters: t.distanceM,
		ElapsedSeconds: t.elapsedSec,
		PointCount:     len(t.points),
	}
}

func (t *Tracker) notifyLocked() {
	if t.onUpdate != nil {
		t.onUpdate(t.liveLocked())
	}
}

// StateError reports an operation attempted from the wrong state.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return "walk: cannot " + e.Op + " from state " + string(e.State)
}
