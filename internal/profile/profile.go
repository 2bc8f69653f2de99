// Package profile derives the aggregate user profile from the habit
// collection.
package profile

import (
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// New returns a fresh profile with default identity and no progress.
func New(id, name, email, joinDate string) models.UserProfile {
	if name == "" {
		name = constants.DefaultProfileName
	}
	return models.UserProfile{
		ID:       id,
		Name:     name,
		Email:    email,
		JoinDate: joinDate,
		Timezone: constants.DefaultTimezone,
		Badges:   []models.Badge{},
		Level:    1,
	}
}

// Aggregate recomputes the numeric fields of p from habits. Identity fields
// and badges are carried over untouched. The result depends only on its
// inputs, so aggregating twice yields the same profile.
func Aggregate(p models.UserProfile, habits []models.Habit, today string) models.UserProfile {
	out := p.Clone()
	out.TotalHabits = len(habits)
	out.CompletedToday = 0
	out.LongestStreak = 0
	out.XP = 0
	for _, h := range habits {
		if h.CompletedOn(today) {
			out.CompletedToday++
		}
		out.LongestStreak = max(out.LongestStreak, h.BestStreak)
		out.XP += h.TotalCompletions * constants.XPPerCompletion
	}
	out.Level = LevelFor(out.XP)
	return out
}

// LevelFor maps experience points to a level, starting at 1.
func LevelFor(xp int) int {
	return max(0, xp)/constants.XPPerLevel + 1
}

// LevelProgress returns the XP earned inside the current level and the XP
// a level spans.
func LevelProgress(xp int) (int, int) {
	return max(0, xp) % constants.XPPerLevel, constants.XPPerLevel
}
