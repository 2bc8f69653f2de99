package tracker

import (
	"slices"

	"github.com/julianstephens/habitual/internal/metrics"
	"github.com/julianstephens/habitual/internal/models"
)

// Habits lists the habits in category, or all of them when category is empty.
func (t *Tracker) Habits(category models.Category) []models.Habit {
	return t.store.List(category)
}

// Habit returns one habit by id.
func (t *Tracker) Habit(id string) (models.Habit, error) {
	return t.store.Get(id)
}

func (t *Tracker) Profile() models.UserProfile { return t.profile.Clone() }

func (t *Tracker) Assessment() models.Assessment { return t.assessment.Clone() }

// Recommendations returns the list generated from the last assessment.
func (t *Tracker) Recommendations() []models.Recommendation {
	out := slices.Clone(t.recs)
	for i := range out {
		out[i].Benefits = slices.Clone(out[i].Benefits)
		out[i].Tips = slices.Clone(out[i].Tips)
	}
	return out
}

func (t *Tracker) DayProgress() metrics.Progress {
	return metrics.DayProgress(t.store.Habits(), t.Today())
}

func (t *Tracker) WeekProgress() []metrics.DayStatus {
	return metrics.WeekProgress(t.store.Habits(), t.Today())
}

func (t *Tracker) Stats() metrics.Stats {
	return metrics.Summarize(t.store.Habits(), t.profile.JoinDate, t.Today())
}
