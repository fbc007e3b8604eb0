package services

import (
	"regexp"
	"strconv"
	"strings"

	"vitalitygo/models"
)

var (
	numberPattern    = regexp.MustCompile(`(\d+(\.\d+)?)`)
	distancePattern  = regexp.MustCompile(`(?i)\d+(\.\d+)?\s*km`)
	hydrationPattern = regexp.MustCompile(`(?i)\d+(\.\d+)?\s*l`)
)

// extractNumber pulls the first decimal number out of a mission title.
// No match degrades to 0, never an error.
func extractNumber(title string) float64 {
	m := numberPattern.FindString(title)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// deriveGoal reconstructs a structured goal from a mission title, for
// documents written before goals were stored explicitly. A title that
// matches nothing becomes a manual goal so its stored flag is kept.
func deriveGoal(title string) models.Goal {
	switch {
	case distancePattern.MatchString(title):
		return models.Goal{Kind: models.GoalDistance, Threshold: extractNumber(title), Unit: "km"}
	case hydrationPattern.MatchString(title):
		return models.Goal{Kind: models.GoalHydration, Threshold: extractNumber(title), Unit: "l"}
	case strings.Contains(strings.ToLower(title), "complete all"):
		return models.Goal{Kind: models.GoalComposite}
	default:
		return models.Goal{Kind: models.GoalManual}
	}
}

// NormalizeGoals fills in goals on missions loaded from legacy
// documents that only stored titles.
func NormalizeGoals(group *models.MissionGroup) {
	for _, tier := range group.Tiers() {
		for i := range tier {
			if tier[i].Goal.Kind == "" {
				tier[i].Goal = deriveGoal(tier[i].Title)
			}
		}
	}
}

// dailyAutoMissionsDone reports whether every auto-evaluated daily
// mission (the distance and hydration slots) is completed.
func dailyAutoMissionsDone(group *models.MissionGroup) bool {
	done := false
	for _, m := range group.DailyMissions {
		switch m.Goal.Kind {
		case models.GoalDistance, models.GoalHydration:
			if !m.Completed {
				return false
			}
			done = true
		}
	}
	return done
}

// EvaluateMissions reconciles every mission's completion flag against
// the current metrics, mutating the group in place. Returns true when
// any flag flipped, in which case the caller persists the group.
//
// Distance and hydration missions are re-evaluated in both directions.
// Composite missions honor the manual-completion lock. Geofence and
// manual missions are never touched here: geofence flips only through
// CheckGeofence and manual only through a user toggle.
func EvaluateMissions(group *models.MissionGroup, metrics models.UserMetrics) bool {
	NormalizeGoals(group)

	changed := false
	for _, tier := range group.Tiers() {
		for i := range tier {
			m := &tier[i]
			should := m.Completed
			switch m.Goal.Kind {
			case models.GoalDistance:
				// 1 step counts as roughly 1 meter
				should = float64(metrics.Steps) >= m.Goal.Threshold*1000
			case models.GoalHydration:
				should = metrics.WaterIntakeLiters >= m.Goal.Threshold
			case models.GoalComposite:
				if !m.ManuallyCompleted {
					should = dailyAutoMissionsDone(group)
				}
			}
			if m.ManuallyCompleted && m.Goal.Kind != models.GoalDistance && m.Goal.Kind != models.GoalHydration {
				// terminal state, evaluation never clears it
				should = true
			}
			if should != m.Completed {
				m.Completed = should
				changed = true
			}
		}
	}
	return changed
}

// PreserveManualCompletion carries manually completed flags from a
// previous group into a freshly seeded one, so regenerating missions
// for a category never loses what the user locked in.
func PreserveManualCompletion(fresh *models.MissionGroup, previous *models.MissionGroup) {
	if previous == nil {
		return
	}
	freshTiers := fresh.Tiers()
	prevTiers := previous.Tiers()
	for t := range freshTiers {
		for i := range freshTiers[t] {
			if i < len(prevTiers[t]) && prevTiers[t][i].ManuallyCompleted {
				freshTiers[t][i].ManuallyCompleted = true
				freshTiers[t][i].Completed = true
			}
		}
	}
}

// ToggleMission applies a user toggle to the mission at the given tier
// and index. Toggling records the manual state so automatic evaluation
// leaves the slot alone afterwards. Returns false for an invalid slot.
func ToggleMission(group *models.MissionGroup, tier string, index int) bool {
	var missions []models.Mission
	switch tier {
	case "daily":
		missions = group.DailyMissions
	case "weekly":
		missions = group.WeeklyMissions
	case "special":
		missions = group.SpecialMissions
	default:
		return false
	}
	if index < 0 || index >= len(missions) {
		return false
	}
	m := &missions[index]
	m.Completed = !m.Completed
	m.ManuallyCompleted = m.Completed
	return true
}
