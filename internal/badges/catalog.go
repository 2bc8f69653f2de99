package badges

import (
	"github.com/julianstephens/habitual/internal/models"
)

// State is the aggregate view a badge condition is evaluated against.
type State struct {
	Habits []models.Habit
	Today  string
}

// Rule pairs a badge template with the condition that unlocks it.
type Rule struct {
	Badge     models.Badge
	Condition func(State) bool
}

// Catalog is the fixed set of unlockable badges in notification order.
var Catalog = []Rule{
	{
		Badge: models.Badge{
			ID:          "first-habit",
			Name:        "Getting Started",
			Description: "Created your first habit",
			Icon:        "🌱",
			Rarity:      models.RarityCommon,
		},
		Condition: func(s State) bool { return len(s.Habits) >= 1 },
	},
	{
		Badge: models.Badge{
			ID:          "week-streak",
			Name:        "Week Warrior",
			Description: "Maintained a 7-day streak",
			Icon:        "🔥",
			Rarity:      models.RarityCommon,
		},
		Condition: anyStreakAtLeast(7),
	},
	{
		Badge: models.Badge{
			ID:          "month-streak",
			Name:        "Monthly Master",
			Description: "Maintained a 30-day streak",
			Icon:        "💪",
			Rarity:      models.RarityRare,
		},
		Condition: anyStreakAtLeast(30),
	},
	{
		Badge: models.Badge{
			ID:          "habit-master",
			Name:        "Habit Master",
			Description: "Tracking 10 or more habits",
			Icon:        "🏆",
			Rarity:      models.RarityRare,
		},
		Condition: func(s State) bool { return len(s.Habits) >= 10 },
	},
	{
		Badge: models.Badge{
			ID:          "consistency",
			Name:        "Consistency King",
			Description: "Completed every habit today with at least 3 habits",
			Icon:        "👑",
			Rarity:      models.RarityEpic,
		},
		Condition: allDoneToday(3),
	},
}

func anyStreakAtLeast(n int) func(State) bool {
	return func(s State) bool {
		for _, h := range s.Habits {
			if h.Streak >= n {
				return true
			}
		}
		return false
	}
}

func allDoneToday(minHabits int) func(State) bool {
	return func(s State) bool {
		if len(s.Habits) < minHabits {
			return false
		}
		for _, h := range s.Habits {
			if !h.CompletedOn(s.Today) {
				return false
			}
		}
		return true
	}
}
