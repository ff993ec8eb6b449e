package walk

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/LittlJoey/pet-tracker-app/internal/activity"
	"github.com/LittlJoey/pet-tracker-app/internal/pet"
	"github.com/LittlJoey/pet-tracker-app/internal/shared/geo"
	"github.com/LittlJoey/pet-tracker-app/internal/track"

	"github.com/google/uuid"
)

// ErrNoData means stop was requested with zero samples; nothing is
// written and no network call is made.
var ErrNoData = errors.New("walk: no data to save")

// caloriesPerMeterKg estimates calories burned per meter walked per
// kilogram of pet weight.
const caloriesPerMeterKg = 0.05

type TrackCreator interface {
	Create(ctx context.Context, t track.Track) (track.Track, error)
}

type ActivityCreator interface {
	Create(ctx context.Context, a activity.Activity) (activity.Activity, error)
}

// Refresher is told about a durably saved walk so dependent read
// caches (today's activities, stats, track list) can reload.
type Refresher interface {
	WalkSaved(walkID, petID, trackID, activityID string)
}

// SaveResult carries the ids of the two records written for one walk.
type SaveResult struct {
	TrackID    string `json:"track_id"`
	ActivityID string `json:"activity_id"`
}

// SaveError reports which side of the dual write failed. The write
// that succeeded is not rolled back; the caller keeps the session
// snapshot and retries.
type SaveError struct {
	TrackErr    error
	ActivityErr error
}

func (e *SaveError) Error() string {
	track, activity := "ok", "ok"
	if e.TrackErr != nil {
		track = e.TrackErr.Error()
	}
	if e.ActivityErr != nil {
		activity = e.ActivityErr.Error()
	}
	return fmt.Sprintf("walk save failed - track: %s, activity: %s", track, activity)
}

// Persister turns a stopped session into a track record and a walk
// activity, written concurrently to the record store.
type Persister struct {
	tracks     TrackCreator
	activities ActivityCreator
	refresher  Refresher
}

func NewPersister(tracks TrackCreator, activities ActivityCreator, refresher Refresher) *Persister {
	return &Persister{tracks: tracks, activities: activities, refresher: refresher}
}

// Save derives both records from the session and issues the two
// inserts in parallel. Success requires both writes to land; a partial
// failure is reported as a SaveError naming the failed side and the
// surviving record is left in place.
func (p *Persister) Save(ctx context.Context, s Session, owner pet.Pet, weightKg float64) (SaveResult, error) {
	if len(s.Points) == 0 {
		return SaveResult{}, ErrNoData
	}

	trackRecord, activityRecord := buildRecords(s, owner, weightKg)

	var wg sync.WaitGroup
	var trackErr, activityErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, trackErr = p.tracks.Create(ctx, trackRecord)
	}()
	go func() {
		defer wg.Done()
		_, activityErr = p.activities.Create(ctx, activityRecord)
	}()
	wg.Wait()

	if trackErr != nil || activityErr != nil {
		return SaveResult{}, &SaveError{TrackErr: trackErr, ActivityErr: activityErr}
	}

	if p.refresher != nil {
		p.refresher.WalkSaved(s.ID, s.PetID, trackRecord.ID, activityRecord.ID)
	}
	return SaveResult{TrackID: trackRecord.ID, ActivityID: activityRecord.ID}, nil
}

func buildRecords(s Session, owner pet.Pet, weightKg float64) (track.Track, activity.Activity) {
	trackID := uuid.NewString()
	activityID := uuid.NewString()

	startTime := time.UnixMilli(s.Points[0].TimestampMillis)
	endTime := time.UnixMilli(s.Points[len(s.Points)-1].TimestampMillis)

	points := make([]track.Point, len(s.Points))
	for i, sample := range s.Points {
		points[i] = track.Point{Latitude: sample.Latitude, Longitude: sample.Longitude}
	}

	trackRecord := track.Track{
		ID:              trackID,
		PetID:           s.PetID,
		UserID:          s.UserID,
		TrackDate:       startTime,
		Points:          points,
		DurationSeconds: s.ElapsedSeconds,
		DistanceMeters:  s.DistanceMeters,
	}

	distanceKm, _ := strconv.ParseFloat(geo.FormatDistanceKm(s.DistanceMeters), 64)
	activityRecord := activity.Activity{
		ID:    activityID,
		PetID: s.PetID,
		Type:  activity.TypeWalk,
		Title: "Walk with " + owner.Name,
		Description: fmt.Sprintf("Tracked walk covering %skm in %s",
			geo.FormatDistanceKm(s.DistanceMeters), geo.FormatDuration(s.ElapsedSeconds)),
		DurationMinutes: int(math.Round(float64(s.ElapsedSeconds) / 60)),
		DistanceKm:      distanceKm,
		Calories:        int(math.Round(s.DistanceMeters * caloriesPerMeterKg * weightKg)),
		ActivityDate:    startTime,
		Metadata: &activity.Metadata{
			TrackID:         trackID,
			RoutePoints:     s.Points,
			StartTime:       startTime,
			EndTime:         endTime,
			PacePerKm:       geo.FormatPace(s.DistanceMeters, s.ElapsedSeconds),
			DistanceMeters:  int(math.Round(s.DistanceMeters)),
			DurationSeconds: s.ElapsedSeconds,
			Location:        "GPS tracked",
			Notes:           "Automatically recorded from tracking session",
		},
	}
	activityRecord.UserID = s.UserID

	return trackRecord, activityRecord
}
