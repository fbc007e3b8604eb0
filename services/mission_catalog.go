package services

import (
	"vitalitygo/bmi"
	"vitalitygo/models"
)

func distanceMission(title string, km float64) models.Mission {
	return models.Mission{
		Title: title,
		Goal:  models.Goal{Kind: models.GoalDistance, Threshold: km, Unit: "km"},
	}
}

func hydrationMission(title string, liters float64) models.Mission {
	return models.Mission{
		Title: title,
		Goal:  models.Goal{Kind: models.GoalHydration, Threshold: liters, Unit: "l"},
	}
}

func manualMission(title string) models.Mission {
	return models.Mission{Title: title, Goal: models.Goal{Kind: models.GoalManual}}
}

func compositeMission(title string) models.Mission {
	return models.Mission{Title: title, Goal: models.Goal{Kind: models.GoalComposite}}
}

func geofenceMission(title string) models.Mission {
	return models.Mission{Title: title, Goal: models.Goal{Kind: models.GoalGeofence}}
}

// DefaultMissions returns the mission template for a BMI category. Each
// tier carries exactly three slots: a distance goal, a hydration goal,
// and a third slot that is manual (daily), composite (weekly) or
// geofenced (special). Thresholds scale with category severity.
func DefaultMissions(category bmi.Category) models.MissionGroup {
	switch category {
	case bmi.Underweight:
		return models.MissionGroup{
			DailyMissions: []models.Mission{
				distanceMission("Walk 1 km", 1),
				hydrationMission("Drink 1 L of water", 1),
				manualMission("Do light exercises"),
			},
			WeeklyMissions: []models.Mission{
				distanceMission("Walk 3 km", 3),
				hydrationMission("Drink 5 L of water", 5),
				compositeMission("Complete all daily missions"),
			},
			SpecialMissions: []models.Mission{
				distanceMission("Walk 10 km", 10),
				hydrationMission("Drink 10 L of water", 10),
				geofenceMission("Take on a light challenge"),
			},
		}
	case bmi.Overweight:
		return models.MissionGroup{
			DailyMissions: []models.Mission{
				distanceMission("Run 2 km", 2),
				hydrationMission("Drink 2 L of water", 2),
				manualMission("Do strength exercises"),
			},
			WeeklyMissions: []models.Mission{
				distanceMission("Run 10 km", 10),
				hydrationMission("Drink 10 L of water", 10),
				compositeMission("Complete all daily missions"),
			},
			SpecialMissions: []models.Mission{
				distanceMission("Run 50 km", 50),
				hydrationMission("Drink 20 L of water", 20),
				geofenceMission("Move from point A to point B"),
			},
		}
	case bmi.Obese:
		return models.MissionGroup{
			DailyMissions: []models.Mission{
				distanceMission("Run 3 km", 3),
				hydrationMission("Drink 3 L of water", 3),
				manualMission("Do high intensity training"),
			},
			WeeklyMissions: []models.Mission{
				distanceMission("Run 15 km", 15),
				hydrationMission("Drink 15 L of water", 15),
				compositeMission("Complete all daily missions"),
			},
			SpecialMissions: []models.Mission{
				distanceMission("Run 60 km", 60),
				hydrationMission("Drink 25 L of water", 25),
				geofenceMission("Complete a high intensity challenge"),
			},
		}
	default: // bmi.Normal
		return models.MissionGroup{
			DailyMissions: []models.Mission{
				distanceMission("Walk 2 km", 2),
				hydrationMission("Drink 1.5 L of water", 1.5),
				manualMission("Do a stretching session"),
			},
			WeeklyMissions: []models.Mission{
				distanceMission("Walk 5 km", 5),
				hydrationMission("Drink 7 L of water", 7),
				compositeMission("Complete all daily missions"),
			},
			SpecialMissions: []models.Mission{
				distanceMission("Walk 20 km", 20),
				hydrationMission("Drink 15 L of water", 15),
				geofenceMission("Complete a 30 minute mobility route"),
			},
		}
	}
}
