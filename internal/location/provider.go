package location

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrPermissionDenied means the user refused location access. The
	// client can recover by granting access in system settings.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrUnavailable means permission is granted but no fix could be
	// obtained. Retryable.
	ErrUnavailable = errors.New("location unavailable")
)

// GrantStatus is the OS-level answer to a permission query or request.
type GrantStatus string

const (
	StatusGranted      GrantStatus = "granted"
	StatusDenied       GrantStatus = "denied"
	StatusUndetermined GrantStatus = "undetermined"
)

type Position struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// WatchConfig holds the thresholds registered with a continuous
// subscription. The provider fires when a position is at least
// MinDistanceM away from the last one or MinInterval has elapsed,
// whichever comes first.
type WatchConfig struct {
	MinDistanceM float64
	MinInterval  time.Duration
}

// Subscription is a live position stream that can be cancelled.
type Subscription interface {
	Remove()
}

// Provider abstracts the device location service: permission queries
// and requests for the foreground and background tiers, a one-shot
// fix, and a continuous subscription.
type Provider interface {
	ForegroundStatus(ctx context.Context) (GrantStatus, error)
	BackgroundStatus(ctx context.Context) (GrantStatus, error)
	RequestForeground(ctx context.Context) (GrantStatus, error)
	RequestBackground(ctx context.Context) (GrantStatus, error)
	CurrentPosition(ctx context.Context) (Position, error)
	Watch(cfg WatchConfig, fn func(Position)) (Subscription, error)
}
