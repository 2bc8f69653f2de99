package habits

import (
	"slices"

	"github.com/julianstephens/habitual/internal/models"
)

// Toggle applies the per-day completion transition to h.
//
// Pending -> Done inserts today's key, bumps streak and totalCompletions and
// raises bestStreak to the new streak if needed. Done -> Pending removes the
// key and lowers streak and totalCompletions, never below zero. bestStreak is
// a high-water mark and is never lowered. Only today's key is ever touched and
// streak does not decay on missed days.
func Toggle(h models.Habit, today string) models.Habit {
	h = h.Clone()
	i := slices.Index(h.CompletedDates, today)

	if i >= 0 {
		h.CompletedDates = slices.Delete(h.CompletedDates, i, i+1)
		h.Streak = max(0, h.Streak-1)
		h.TotalCompletions = max(0, h.TotalCompletions-1)
		h.Completed = false
		return h
	}

	h.CompletedDates = append(h.CompletedDates, today)
	slices.Sort(h.CompletedDates)
	h.Streak++
	h.BestStreak = max(h.BestStreak, h.Streak)
	h.TotalCompletions++
	h.Completed = true
	return h
}
