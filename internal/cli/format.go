package cli

import (
	"fmt"
	"strings"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tracker"
)

// ResolveHabit finds a habit by exact id, unique id prefix or
// case-insensitive title.
func ResolveHabit(t *tracker.Tracker, ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	if h, err := t.Habit(ref); err == nil {
		return h, nil
	}

	var matches []models.Habit
	for _, h := range t.Habits("") {
		if strings.EqualFold(h.Title, ref) {
			return h, nil
		}
		if ref != "" && strings.HasPrefix(h.ID, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Habit{}, apperrors.NotFound("habit", ref)
	}
	return models.Habit{}, apperrors.Invalid("habit", "%q matches %d habits, use a longer id", ref, len(matches))
}

// ShortID returns the first 8 characters of an id.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// FormatHabit renders one habit as a single status line.
func FormatHabit(h models.Habit, today string) string {
	mark := "○"
	if h.CompletedOn(today) {
		mark = "✓"
	}
	return fmt.Sprintf("%s %-8s %-28s %-12s %-6s 🔥 %d (best %d)  %d min",
		mark, ShortID(h.ID), h.Title, h.Category, h.Difficulty, h.Streak, h.BestStreak, h.Goal)
}

// Bar renders a percentage as a fixed-width text bar.
func Bar(percent, width int) string {
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
