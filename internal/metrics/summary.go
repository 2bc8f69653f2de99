package metrics

import (
	"github.com/julianstephens/habitual/internal/models"
)

type CategoryStats struct {
	Category      models.Category `json:"category"`
	Habits        int             `json:"habits"`
	AverageStreak int             `json:"averageStreak"`
	Completions   int             `json:"completions"`
	DoneToday     int             `json:"doneToday"`
}

// Stats is the analytics summary shown on the stats view.
type Stats struct {
	Today            Progress        `json:"today"`
	CompletionRate   int             `json:"completionRate"` // % of habits completed at least once
	AverageStreak    int             `json:"averageStreak"`
	TotalCompletions int             `json:"totalCompletions"`
	BestStreak       int             `json:"bestStreak"`
	Consistency      int             `json:"consistency"`
	WeeklyGrowth     int             `json:"weeklyGrowth"`
	Overall          int             `json:"overall"`
	Categories       []CategoryStats `json:"categories"`
}

// Summarize builds the full analytics summary. Categories are reported in
// fixed order, including empty ones.
func Summarize(habits []models.Habit, joinDate, today string) Stats {
	s := Stats{
		Today:        DayProgress(habits, today),
		Consistency:  ConsistencyScore(habits, joinDate, today),
		WeeklyGrowth: WeeklyGrowth(habits, today),
		Overall:      OverallProgress(habits, today),
	}

	started, streakSum := 0, 0
	byCategory := make(map[models.Category]*CategoryStats)
	streaks := make(map[models.Category]int)
	for _, c := range models.Categories() {
		byCategory[c] = &CategoryStats{Category: c}
	}

	for _, h := range habits {
		if h.TotalCompletions > 0 {
			started++
		}
		streakSum += h.Streak
		s.TotalCompletions += h.TotalCompletions
		s.BestStreak = max(s.BestStreak, h.BestStreak)

		cs, ok := byCategory[h.Category]
		if !ok {
			continue
		}
		cs.Habits++
		cs.Completions += h.TotalCompletions
		streaks[h.Category] += h.Streak
		if h.CompletedOn(today) {
			cs.DoneToday++
		}
	}

	s.CompletionRate = percent(started, len(habits))
	s.AverageStreak = average(streakSum, len(habits))

	for _, c := range models.Categories() {
		cs := byCategory[c]
		cs.AverageStreak = average(streaks[c], cs.Habits)
		s.Categories = append(s.Categories, *cs)
	}
	return s
}

// average is the mean of sum over n, rounded half up.
func average(sum, n int) int {
	if n <= 0 {
		return 0
	}
	return (2*sum + n) / (2 * n)
}
