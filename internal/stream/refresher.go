package stream

import "encoding/json"

// SavedEvent tells viewers that a walk was durably written, so the
// activity list, stats and track views it feeds should reload.
type SavedEvent struct {
	Type       string `json:"type"`
	WalkID     string `json:"walk_id"`
	PetID      string `json:"pet_id"`
	TrackID    string `json:"track_id"`
	ActivityID string `json:"activity_id"`
}

// Refresher publishes walk-saved events through the hub.
type Refresher struct {
	hub *Hub
}

func NewRefresher(hub *Hub) *Refresher {
	return &Refresher{hub: hub}
}

func (r *Refresher) WalkSaved(walkID, petID, trackID, activityID string) {
	payload, err := json.Marshal(SavedEvent{
		Type:       "walk.saved",
		WalkID:     walkID,
		PetID:      petID,
		TrackID:    trackID,
		ActivityID: activityID,
	})
	if err != nil {
		return
	}
	r.hub.Broadcast(walkID, payload)
}
