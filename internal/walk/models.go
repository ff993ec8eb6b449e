package walk

import (
	"time"

	"github.com/LittlJoey/pet-tracker-app/internal/location"
)

// State of an in-progress walk. Idle is both the initial state and the
// state re-entered after a discard.
type State string

const (
	StateIdle     State = "idle"
	StateTracking State = "tracking"
	StateStopped  State = "stopped"
)

// Session is the frozen snapshot of a walk handed to the persister at
// stop time. Points are copied so late callbacks cannot mutate it.
type Session struct {
	ID             string            `json:"id"`
	PetID          string            `json:"pet_id"`
	UserID         string            `json:"user_id"`
	StartedAt      time.Time         `json:"started_at"`
	Points         []location.Sample `json:"points"`
	DistanceMeters float64           `json:"distance_meters"`
	ElapsedSeconds int               `json:"elapsed_seconds"`
}

// LiveStats is the read-only view bound to the tracking display.
type LiveStats struct {
	WalkID         string  `json:"walk_id"`
	State          State   `json:"state"`
	DistanceMeters float64 `json:"distance_meters"`
	ElapsedSeconds int     `json:"elapsed_seconds"`
	PointCount     int     `json:"point_count"`
}
