package share

import (
	"fmt"

	"github.com/LittlJoey/pet-tracker-app/internal/shared/geo"
	"github.com/LittlJoey/pet-tracker-app/internal/walk"
)

// Caption composes the share text for a finished walk.
func Caption(petName string, s walk.Session) string {
	return fmt.Sprintf(
		"🐾 %s just had a wonderful walk! 🦮\n🏃‍♂️ Distance: %skm\n⏱ Time: %s\n⚡️ Pace: %s min/km\n\n🐕 Proud pet parent moment! 🎉",
		petName,
		geo.FormatDistanceKm(s.DistanceMeters),
		geo.FormatDuration(s.ElapsedSeconds),
		geo.FormatPace(s.DistanceMeters, s.ElapsedSeconds),
	)
}
