package activity

import (
	"time"

	"github.com/LittlJoey/pet-tracker-app/internal/location"
)

const (
	TypeWalk       = "walk"
	TypeMeal       = "meal"
	TypeMedication = "medication"
	TypeVetVisit   = "vet-visit"
	TypeGrooming   = "grooming"
	TypePlay       = "play"
)

// Metadata carries activity-specific data. Walk activities embed the
// route and a reference to the detailed track record so the activity
// list can render without a join.
type Metadata struct {
	TrackID         string            `json:"track_id,omitempty"`
	RoutePoints     []location.Sample `json:"route_points,omitempty"`
	StartTime       time.Time         `json:"start_time,omitempty"`
	EndTime         time.Time         `json:"end_time,omitempty"`
	PacePerKm       string            `json:"pace_per_km,omitempty"`
	DistanceMeters  int               `json:"distance_meters,omitempty"`
	DurationSeconds int               `json:"duration_seconds,omitempty"`
	Location        string            `json:"location,omitempty"`
	MedicationName  string            `json:"medication_name,omitempty"`
	VetName         string            `json:"vet_name,omitempty"`
	FoodType        string            `json:"food_type,omitempty"`
	ToyType         string            `json:"toy_type,omitempty"`
	Notes           string            `json:"notes,omitempty"`
}

type Activity struct {
	ID              string    `json:"id"`
	PetID           string    `json:"pet_id"`
	UserID          string    `json:"user_id"`
	Type            string    `json:"type"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration,omitempty"`
	DistanceKm      float64   `json:"distance,omitempty"`
	Calories        int       `json:"calories,omitempty"`
	ActivityDate    time.Time `json:"activity_date"`
	Metadata        *Metadata `json:"metadata,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// Stats aggregates a day's activities for the dashboard.
type Stats struct {
	TotalWalks      int     `json:"totalWalks"`
	TotalDistanceKm float64 `json:"totalDistance"`
	TotalMeals      int     `json:"totalMeals"`
	TotalActivities int     `json:"totalActivities"`
}
