package track

import "time"

// Point is one vertex of a saved route polyline.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Track is the persisted raw-route record of a completed walk. Created
// once per saved session and never updated.
type Track struct {
	ID              string    `json:"id"`
	PetID           string    `json:"pet_id"`
	UserID          string    `json:"user_id"`
	TrackDate       time.Time `json:"track_date"`
	Points          []Point   `json:"location"`
	DurationSeconds int       `json:"duration"`
	DistanceMeters  float64   `json:"distance"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}
