package services

import (
	"math"

	"vitalitygo/models"
)

const earthRadiusM = 6371000

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HaversineDistance returns the great-circle distance in meters
// between two coordinates.
func HaversineDistance(a, b LatLng) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	phi1 := toRad(a.Lat)
	phi2 := toRad(b.Lat)
	dPhi := toRad(b.Lat - a.Lat)
	dLambda := toRad(b.Lng - a.Lng)

	s := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))
	return earthRadiusM * c
}

// GeofenceResult describes the outcome of a geofence check.
type GeofenceResult struct {
	DistanceM    float64
	Completed    bool   // a mission flipped to completed on this check
	MissionTitle string // set when Completed
}

// CheckGeofence evaluates the special-tier geofence mission against the
// user's current position. Arriving within radiusM of the target marks
// the mission completed and manually completed in one step: the state
// is terminal, so a later check is a no-op and the one-time completion
// notification fires exactly once.
func CheckGeofence(group *models.MissionGroup, current, target LatLng, radiusM float64) GeofenceResult {
	result := GeofenceResult{DistanceM: HaversineDistance(current, target)}
	if result.DistanceM >= radiusM {
		return result
	}
	for i := range group.SpecialMissions {
		m := &group.SpecialMissions[i]
		if m.Goal.Kind != models.GoalGeofence || m.ManuallyCompleted {
			continue
		}
		m.Completed = true
		m.ManuallyCompleted = true
		result.Completed = true
		result.MissionTitle = m.Title
	}
	return result
}
