package recommend

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/habitual/internal/models"
)

// Matcher inspects an assessment. It returns a reason that names the answer
// it matched on, and false when the relevant answer is absent or different.
type Matcher func(a models.Assessment) (string, bool)

func goal(g string) Matcher {
	return func(a models.Assessment) (string, bool) {
		if !a.HasGoal(g) {
			return "", false
		}
		return fmt.Sprintf("You chose %q as a goal", g), true
	}
}

func profession(names ...string) Matcher {
	return func(a models.Assessment) (string, bool) {
		for _, n := range names {
			if strings.EqualFold(strings.TrimSpace(a.Profession), n) {
				return fmt.Sprintf("As a %s, planning ahead keeps decision fatigue down", n), true
			}
		}
		return "", false
	}
}

func stressAtLeast(n int) Matcher {
	return func(a models.Assessment) (string, bool) {
		level, ok := a.Stress()
		if !ok || level < n {
			return "", false
		}
		return fmt.Sprintf("You rated your stress level %d out of 10", level), true
	}
}

// single matches a single-select answer against any of values.
func single(field string, get func(models.Assessment) string, values ...string) Matcher {
	return func(a models.Assessment) (string, bool) {
		v := strings.TrimSpace(get(a))
		if v == "" || !slices.ContainsFunc(values, func(s string) bool { return strings.EqualFold(s, v) }) {
			return "", false
		}
		return fmt.Sprintf("Your %s is %q", field, v), true
	}
}

func sleepSchedule(values ...string) Matcher {
	return single("sleep schedule", func(a models.Assessment) string { return a.SleepSchedule }, values...)
}

func workSchedule(values ...string) Matcher {
	return single("work schedule", func(a models.Assessment) string { return a.WorkSchedule }, values...)
}

func activityLevel(values ...string) Matcher {
	return single("activity level", func(a models.Assessment) string { return a.ActivityLevel }, values...)
}

func challenge(c string) Matcher {
	return func(a models.Assessment) (string, bool) {
		if !a.HasChallenge(c) {
			return "", false
		}
		return fmt.Sprintf("You listed %q as a challenge", c), true
	}
}

func badHabit(b string) Matcher {
	return func(a models.Assessment) (string, bool) {
		if !a.HasBadHabit(b) {
			return "", false
		}
		return fmt.Sprintf("You want to break the habit of %q", b), true
	}
}

// anyOf matches when at least one matcher does, joining every matching
// reason so the user sees all the answers that led to the suggestion.
func anyOf(ms ...Matcher) Matcher {
	return func(a models.Assessment) (string, bool) {
		var reasons []string
		for _, m := range ms {
			if r, ok := m(a); ok {
				reasons = append(reasons, r)
			}
		}
		if len(reasons) == 0 {
			return "", false
		}
		return strings.Join(reasons, "; "), true
	}
}
