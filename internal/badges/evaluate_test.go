package badges

import (
	"fmt"
	"slices"
	"testing"

	"github.com/julianstephens/habitual/internal/models"
)

const today = "2026-10-17"

func habitsWith(n int, mutate func(i int, h *models.Habit)) []models.Habit {
	out := make([]models.Habit, n)
	for i := range out {
		out[i] = models.Habit{ID: fmt.Sprintf("h%d", i), Title: "habit", CompletedDates: []string{}}
		if mutate != nil {
			mutate(i, &out[i])
		}
	}
	return out
}

func ids(badges []models.Badge) []string {
	out := make([]string, len(badges))
	for i, b := range badges {
		out[i] = b.ID
	}
	return out
}

func TestEvaluateRules(t *testing.T) {
	tests := []struct {
		name   string
		habits []models.Habit
		want   []string
	}{
		{"no habits", nil, nil},
		{"first habit", habitsWith(1, nil), []string{"first-habit"}},
		{
			name:   "week streak",
			habits: habitsWith(1, func(_ int, h *models.Habit) { h.Streak = 7 }),
			want:   []string{"first-habit", "week-streak"},
		},
		{
			name:   "six is not a week",
			habits: habitsWith(2, func(_ int, h *models.Habit) { h.Streak = 6 }),
			want:   []string{"first-habit"},
		},
		{
			name:   "month streak",
			habits: habitsWith(1, func(_ int, h *models.Habit) { h.Streak = 30 }),
			want:   []string{"first-habit", "week-streak", "month-streak"},
		},
		{"habit master", habitsWith(10, nil), []string{"first-habit", "habit-master"}},
		{
			name: "all done with three habits",
			habits: habitsWith(3, func(_ int, h *models.Habit) {
				h.CompletedDates = []string{today}
			}),
			want: []string{"first-habit", "consistency"},
		},
		{
			name: "all done with two habits",
			habits: habitsWith(2, func(_ int, h *models.Habit) {
				h.CompletedDates = []string{today}
			}),
			want: []string{"first-habit"},
		},
		{
			name: "one of three pending",
			habits: habitsWith(3, func(i int, h *models.Habit) {
				if i > 0 {
					h.CompletedDates = []string{today}
				}
			}),
			want: []string{"first-habit"},
		},
		{
			name: "done yesterday only",
			habits: habitsWith(3, func(_ int, h *models.Habit) {
				h.CompletedDates = []string{"2026-10-16"}
			}),
			want: []string{"first-habit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(tt.habits, models.UserProfile{}, today)
			got := ids(res.Earned)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Evaluate() earned %v, want %v", got, tt.want)
			}
			if len(tt.want) == 0 {
				if res.Primary != nil {
					t.Errorf("expected no primary badge, got %v", res.Primary.ID)
				}
				return
			}
			if res.Primary == nil || res.Primary.ID != tt.want[0] {
				t.Errorf("expected primary %s, got %+v", tt.want[0], res.Primary)
			}
			for _, b := range res.Earned {
				if b.EarnedAt != today {
					t.Errorf("badge %s stamped %q, want %s", b.ID, b.EarnedAt, today)
				}
			}
		})
	}
}

func TestFirstHabitOnlyOnce(t *testing.T) {
	profile := models.UserProfile{}

	first := Evaluate(habitsWith(1, nil), profile, today)
	if got := ids(first.Earned); len(got) != 1 || got[0] != "first-habit" {
		t.Fatalf("expected exactly first-habit, got %v", got)
	}
	profile = Award(profile, first)

	second := Evaluate(habitsWith(2, nil), profile, "2026-10-18")
	if len(second.Earned) != 0 {
		t.Errorf("second habit earned %v, want nothing", ids(second.Earned))
	}
}

func TestBadgesAreNeverRevoked(t *testing.T) {
	profile := models.UserProfile{}
	streaky := habitsWith(3, func(_ int, h *models.Habit) {
		h.Streak = 7
		h.CompletedDates = []string{today}
	})
	profile = Award(profile, Evaluate(streaky, profile, today))
	if len(profile.Badges) != 3 {
		t.Fatalf("expected 3 badges, got %v", ids(profile.Badges))
	}

	// Conditions no longer hold: streaks reset and habits deleted
	res := Evaluate(nil, profile, "2026-10-20")
	profile = Award(profile, res)

	for _, id := range []string{"first-habit", "week-streak", "consistency"} {
		if !profile.HasBadge(id) {
			t.Errorf("badge %s was revoked", id)
		}
	}
	for _, b := range profile.Badges {
		if b.EarnedAt != today {
			t.Errorf("badge %s restamped to %s", b.ID, b.EarnedAt)
		}
	}
}

func TestAwardDoesNotDuplicate(t *testing.T) {
	res := Evaluate(habitsWith(1, nil), models.UserProfile{}, today)
	profile := Award(Award(models.UserProfile{}, res), res)
	if len(profile.Badges) != 1 {
		t.Errorf("expected 1 badge, got %v", ids(profile.Badges))
	}
}

func TestAwardCopiesProfile(t *testing.T) {
	orig := models.UserProfile{Badges: []models.Badge{{ID: "first-habit"}}}
	res := Result{Earned: []models.Badge{{ID: "week-streak"}}}
	_ = Award(orig, res)
	if len(orig.Badges) != 1 {
		t.Errorf("Award mutated its input: %v", ids(orig.Badges))
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range Catalog {
		if seen[r.Badge.ID] {
			t.Errorf("duplicate badge id %s", r.Badge.ID)
		}
		seen[r.Badge.ID] = true
		if r.Condition == nil {
			t.Errorf("badge %s has no condition", r.Badge.ID)
		}
	}
}
