package location

import (
	"context"
	"sync"

	"github.com/LittlJoey/pet-tracker-app/internal/shared/geo"
)

// DeviceGateway adapts a remote device to the Provider interface. The
// device reports its grant state and positions over the API; the
// gateway answers permission queries from that reported state and
// plays the platform's role of deciding when a watched subscription
// fires, honoring the registered distance/time thresholds.
type DeviceGateway struct {
	mu         sync.Mutex
	foreground GrantStatus
	background GrantStatus
	last       Position
	hasFix     bool
	watchers   map[int]*gatewayWatcher
	nextID     int
}

type gatewayWatcher struct {
	cfg   WatchConfig
	fn    func(Position)
	fired bool
	at    Position
}

func NewDeviceGateway() *DeviceGateway {
	return &DeviceGateway{
		foreground: StatusUndetermined,
		background: StatusUndetermined,
		watchers:   map[int]*gatewayWatcher{},
	}
}

// SetPermissions records the grant state the device reported.
func (g *DeviceGateway) SetPermissions(foreground, background GrantStatus) {
	g.mu.Lock()
	g.foreground = foreground
	g.background = background
	g.mu.Unlock()
}

// Report stores the latest fix and fires any watcher whose thresholds
// are met: the first report always fires, after that a watcher fires
// when the position moved at least MinDistanceM or MinInterval elapsed
// since it last fired, whichever comes first.
func (g *DeviceGateway) Report(p Position) {
	g.mu.Lock()
	g.last = p
	g.hasFix = true

	var fire []func(Position)
	for _, w := range g.watchers {
		if w.shouldFire(p) {
			w.fired = true
			w.at = p
			fire = append(fire, w.fn)
		}
	}
	g.mu.Unlock()

	for _, fn := range fire {
		fn(p)
	}
}

func (w *gatewayWatcher) shouldFire(p Position) bool {
	if !w.fired {
		return true
	}
	if distanceMeters(w.at, p) >= w.cfg.MinDistanceM {
		return true
	}
	return p.Timestamp.Sub(w.at.Timestamp) >= w.cfg.MinInterval
}

func (g *DeviceGateway) ForegroundStatus(context.Context) (GrantStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.foreground, nil
}

func (g *DeviceGateway) BackgroundStatus(context.Context) (GrantStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.background, nil
}

// RequestForeground answers with the device-reported grant; the actual
// prompt happens on the device before the state is reported here.
func (g *DeviceGateway) RequestForeground(context.Context) (GrantStatus, error) {
	return g.ForegroundStatus(context.Background())
}

func (g *DeviceGateway) RequestBackground(context.Context) (GrantStatus, error) {
	return g.BackgroundStatus(context.Background())
}

func (g *DeviceGateway) CurrentPosition(context.Context) (Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.hasFix {
		return Position{}, ErrUnavailable
	}
	return g.last, nil
}

func (g *DeviceGateway) Watch(cfg WatchConfig, fn func(Position)) (Subscription, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	id := g.nextID
	g.watchers[id] = &gatewayWatcher{cfg: cfg, fn: fn}
	return &gatewaySub{gateway: g, id: id}, nil
}

func distanceMeters(a, b Position) float64 {
	return geo.HaversineMeters(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

type gatewaySub struct {
	gateway *DeviceGateway
	id      int
}

func (s *gatewaySub) Remove() {
	s.gateway.mu.Lock()
	delete(s.gateway.watchers, s.id)
	s.gateway.mu.Unlock()
}
