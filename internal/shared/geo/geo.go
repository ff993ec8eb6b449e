package geo

import (
	"fmt"
	"math"
)

// Mean earth radius in meters.
const earthRadiusM = 6371000

// HaversineMeters returns the great-circle distance between two
// coordinates. Coincident points yield 0.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// HaversineKm is HaversineMeters in kilometers.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	return HaversineMeters(lat1, lng1, lat2, lng2) / 1000
}

// FormatPace renders minutes:seconds per kilometer. Zero distance or
// zero elapsed time renders "0:00" rather than dividing by zero.
func FormatPace(distanceMeters float64, elapsedSeconds int) string {
	if distanceMeters == 0 || elapsedSeconds == 0 {
		return "0:00"
	}
	paceSeconds := float64(elapsedSeconds) / (distanceMeters / 1000)
	mins := int(paceSeconds) / 60
	secs := int(paceSeconds) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// FormatDuration renders elapsed seconds as "M:SS".
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatDistanceKm renders meters as kilometers with two decimals.
func FormatDistanceKm(meters float64) string {
	return fmt.Sprintf("%.2f", meters/1000)
}
