package walk

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/LittlJoey/pet-tracker-app/internal/location"
	"github.com/LittlJoey/pet-tracker-app/internal/pet"

	"github.com/google/uuid"
)

var ErrWalkNotFound = errors.New("walk not found")

type PetGetter interface {
	Get(ctx context.Context, id string) (pet.Pet, error)
}

// Broadcaster fans live walk updates out to connected viewers.
type Broadcaster interface {
	Broadcast(walkID string, payload []byte)
}

// Manager owns the active trackers, one per in-progress walk. Each
// walk gets its own device gateway: the owning device reports grant
// state and positions through the API, and the tracker consumes them
// through the negotiator/sampler pair as if they came from the OS.
type Manager struct {
	pets      PetGetter
	persister *Persister
	watchCfg  location.WatchConfig
	hub       Broadcaster

	mu    sync.Mutex
	walks map[string]*walkEntry
}

type walkEntry struct {
	tracker    *Tracker
	gateway    *location.DeviceGateway
	negotiator *location.Negotiator
}

func NewManager(pets PetGetter, persister *Persister, watchCfg location.WatchConfig, hub Broadcaster) *Manager {
	return &Manager{
		pets:      pets,
		persister: persister,
		watchCfg:  watchCfg,
		hub:       hub,
		walks:     map[string]*walkEntry{},
	}
}

// StartRequest carries the device's reported grant state and, when
// available, its current fix.
type StartRequest struct {
	PetID      string               `json:"pet_id"`
	UserID     string               `json:"-"`
	Foreground location.GrantStatus `json:"foreground"`
	Background location.GrantStatus `json:"background"`
	Initial    *location.Position   `json:"initial,omitempty"`
}

func (m *Manager) StartWalk(ctx context.Context, req StartRequest) (string, location.Tier, error) {
	if _, err := m.pets.Get(ctx, req.PetID); err != nil {
		return "", location.TierNone, err
	}

	gateway := location.NewDeviceGateway()
	gateway.SetPermissions(req.Foreground, req.Background)
	if req.Initial != nil {
		gateway.Report(*req.Initial)
	}

	id := uuid.NewString()
	negotiator := location.NewNegotiator(gateway)
	tracker := NewTracker(id, req.PetID, req.UserID, negotiator, location.NewSampler(gateway), m.watchCfg, m.broadcastLive)

	tier, err := tracker.Start(ctx)
	if err != nil {
		return "", tier, err
	}

	m.mu.Lock()
	m.walks[id] = &walkEntry{tracker: tracker, gateway: gateway, negotiator: negotiator}
	m.mu.Unlock()
	return id, tier, nil
}

// ReportPosition feeds a device fix into the walk's gateway; the
// gateway applies the sampling thresholds and the tracker accumulates
// whatever fires through.
func (m *Manager) ReportPosition(walkID string, p location.Position) error {
	entry, err := m.entry(walkID)
	if err != nil {
		return err
	}
	entry.gateway.Report(p)
	return nil
}

// UpgradeBackground forwards the optional background-permission offer.
func (m *Manager) UpgradeBackground(ctx context.Context, walkID string, granted bool) (location.Tier, error) {
	entry, err := m.entry(walkID)
	if err != nil {
		return location.TierNone, err
	}
	status := location.StatusDenied
	if granted {
		status = location.StatusGranted
	}
	fg, _ := entry.gateway.ForegroundStatus(ctx)
	entry.gateway.SetPermissions(fg, status)
	return entry.negotiator.OfferBackgroundUpgrade(ctx), nil
}

func (m *Manager) Live(walkID string) (LiveStats, error) {
	entry, err := m.entry(walkID)
	if err != nil {
		return LiveStats{}, err
	}
	return entry.tracker.Live(), nil
}

// StopWalk freezes the session; the tracker is retained so the stopped
// snapshot can still be finished, shared or discarded.
func (m *Manager) StopWalk(walkID string) (Session, error) {
	entry, err := m.entry(walkID)
	if err != nil {
		return Session{}, err
	}
	return entry.tracker.Stop(), nil
}

// DiscardWalk drops the walk without persisting anything.
func (m *Manager) DiscardWalk(walkID string) error {
	m.mu.Lock()
	entry, ok := m.walks[walkID]
	if ok {
		delete(m.walks, walkID)
	}
	m.mu.Unlock()
	if !ok {
		return ErrWalkNotFound
	}
	entry.tracker.Discard()
	return nil
}

// FinishWalk stops the walk if needed and runs the dual write. On
// failure the tracker (and its frozen snapshot) is retained so the
// user can retry without re-walking; on success it is released.
func (m *Manager) FinishWalk(ctx context.Context, walkID string) (SaveResult, error) {
	entry, err := m.entry(walkID)
	if err != nil {
		return SaveResult{}, err
	}

	session := entry.tracker.Stop()
	owner, err := m.pets.Get(ctx, session.PetID)
	if err != nil {
		return SaveResult{}, err
	}

	result, err := m.persister.Save(ctx, session, owner, owner.LatestWeightKg())
	if err != nil {
		return SaveResult{}, err
	}

	m.mu.Lock()
	delete(m.walks, walkID)
	m.mu.Unlock()
	return result, nil
}

// Snapshot returns the walk's current session without changing state.
func (m *Manager) Snapshot(walkID string) (Session, error) {
	entry, err := m.entry(walkID)
	if err != nil {
		return Session{}, err
	}
	return entry.tracker.Session(), nil
}

func (m *Manager) entry(walkID string) (*walkEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.walks[walkID]
	if !ok {
		return nil, ErrWalkNotFound
	}
	return entry, nil
}

func (m *Manager) broadcastLive(stats LiveStats) {
	if m.hub == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	m.hub.Broadcast(stats.WalkID, payload)
}
