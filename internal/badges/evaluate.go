// Package badges decides which achievements a profile has newly earned.
package badges

import (
	"github.com/julianstephens/habitual/internal/models"
)

// Result holds the badges that became earned in one evaluation. Primary is
// the first of them in catalog order, or nil when none were earned.
type Result struct {
	Earned  []models.Badge
	Primary *models.Badge
}

// Evaluate runs the catalog against the current habits. A rule yields a badge
// only when its condition holds and the profile does not already have it.
// Returned badges are stamped with today.
func Evaluate(habits []models.Habit, profile models.UserProfile, today string) Result {
	return EvaluateRules(Catalog, habits, profile, today)
}

// EvaluateRules is Evaluate over an arbitrary rule table.
func EvaluateRules(rules []Rule, habits []models.Habit, profile models.UserProfile, today string) Result {
	state := State{Habits: habits, Today: today}
	var res Result
	for _, r := range rules {
		if profile.HasBadge(r.Badge.ID) || !r.Condition(state) {
			continue
		}
		b := r.Badge
		b.EarnedAt = today
		res.Earned = append(res.Earned, b)
	}
	if len(res.Earned) > 0 {
		res.Primary = &res.Earned[0]
	}
	return res
}

// Award appends the earned badges to a copy of profile. Existing badges are
// never removed or restamped.
func Award(profile models.UserProfile, res Result) models.UserProfile {
	out := profile.Clone()
	for _, b := range res.Earned {
		if out.HasBadge(b.ID) {
			continue
		}
		out.Badges = append(out.Badges, b)
	}
	return out
}
