package services

import (
	"testing"

	"vitalitygo/bmi"

	"github.com/stretchr/testify/assert"
)

func TestHaversineZeroDistance(t *testing.T) {
	p := LatLng{Lat: 0, Lng: 0}
	assert.Equal(t, 0.0, HaversineDistance(p, p))
}

func TestHaversineKnownDistance(t *testing.T) {
	// One degree of latitude is roughly 111.2 km
	a := LatLng{Lat: 0, Lng: 0}
	b := LatLng{Lat: 1, Lng: 0}
	assert.InDelta(t, 111195, HaversineDistance(a, b), 100)
}

func TestGeofenceCompletesWithinRadius(t *testing.T) {
	group := DefaultMissions(bmi.Normal)
	// 0.0003 degrees in both axes is a few tens of meters near the equator
	current := LatLng{Lat: 0.0003, Lng: 0.0003}
	target := LatLng{Lat: 0, Lng: 0}

	result := CheckGeofence(&group, current, target, 50)

	assert.Less(t, result.DistanceM, 50.0)
	assert.True(t, result.Completed)
	assert.Equal(t, group.SpecialMissions[2].Title, result.MissionTitle)
	assert.True(t, group.SpecialMissions[2].Completed)
	assert.True(t, group.SpecialMissions[2].ManuallyCompleted)
}

func TestGeofenceCompletionIsTerminal(t *testing.T) {
	group := DefaultMissions(bmi.Normal)
	current := LatLng{Lat: 0.00005, Lng: 0.00005}
	target := LatLng{Lat: 0, Lng: 0}

	first := CheckGeofence(&group, current, target, 30)
	assert.True(t, first.Completed)

	// Second check inside the fence is a no-op
	second := CheckGeofence(&group, current, target, 30)
	assert.False(t, second.Completed)
	assert.True(t, group.SpecialMissions[2].Completed)
}

func TestGeofenceOutsideRadius(t *testing.T) {
	group := DefaultMissions(bmi.Normal)
	current := LatLng{Lat: 0.01, Lng: 0.01}
	target := LatLng{Lat: 0, Lng: 0}

	result := CheckGeofence(&group, current, target, 30)
	assert.False(t, result.Completed)
	assert.False(t, group.SpecialMissions[2].Completed)
	assert.Greater(t, result.DistanceM, 30.0)
}
