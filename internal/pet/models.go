package pet

import "time"

type WeightEntry struct {
	Date     time.Time `json:"date"`
	WeightKg float64   `json:"weight"`
}

type Pet struct {
	ID            string        `json:"id"`
	OwnerID       string        `json:"owner_id"`
	Name          string        `json:"name"`
	Species       string        `json:"species"`
	Breed         string        `json:"breed,omitempty"`
	BirthDate     time.Time     `json:"birth_date,omitempty"`
	AvatarURL     string        `json:"avatar_url,omitempty"`
	WeightHistory []WeightEntry `json:"weight_history,omitempty"`
	CreatedAt     time.Time     `json:"created_at,omitempty"`
	UpdatedAt     time.Time     `json:"updated_at,omitempty"`
}

// defaultWeightKg is assumed when a pet has no recorded weight yet.
const defaultWeightKg = 25

// LatestWeightKg returns the most recent weight entry, falling back to
// a default when the history is empty.
func (p Pet) LatestWeightKg() float64 {
	if len(p.WeightHistory) == 0 {
		return defaultWeightKg
	}
	return p.WeightHistory[len(p.WeightHistory)-1].WeightKg
}
