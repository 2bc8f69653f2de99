package models

import (
	"slices"
	"strings"

	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
)

type Category string

const (
	CategoryHealth       Category = "Health"
	CategoryProductivity Category = "Productivity"
	CategoryLearning     Category = "Learning"
	CategoryMindfulness  Category = "Mindfulness"
	CategoryCareer       Category = "Career"
)

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryHealth,
		CategoryProductivity,
		CategoryLearning,
		CategoryMindfulness,
		CategoryCareer,
	}
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Habit is a tracked recurring activity. Tracking fields are only ever
// changed by the habit store's toggle transition.
type Habit struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	Goal        int        `json:"goal"`      // minutes per day
	CreatedAt   string     `json:"createdAt"` // day key

	Completed        bool     `json:"completed"`
	CompletedDates   []string `json:"completedDates"` // day keys, unique, ascending
	Streak           int      `json:"streak"`
	BestStreak       int      `json:"bestStreak"`
	TotalCompletions int      `json:"totalCompletions"`
}

// CompletedOn reports whether the habit has a completion recorded for day.
func (h Habit) CompletedOn(day string) bool {
	return slices.Contains(h.CompletedDates, day)
}

// Clone returns a copy that shares no memory with h.
func (h Habit) Clone() Habit {
	c := h
	c.CompletedDates = slices.Clone(h.CompletedDates)
	if c.CompletedDates == nil {
		c.CompletedDates = []string{}
	}
	return c
}

// HabitInput carries the descriptive fields accepted by create and update.
type HabitInput struct {
	Title       string
	Description string
	Category    Category
	Difficulty  Difficulty
	Goal        int
}

// Normalize trims text and fills an unset category or difficulty with its
// default. Goal has no default here; callers supply one.
func (in HabitInput) Normalize() HabitInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Category == "" {
		in.Category = CategoryHealth
	} else if c, ok := ParseCategory(string(in.Category)); ok {
		in.Category = c
	}
	if in.Difficulty == "" {
		in.Difficulty = DifficultyMedium
	}
	in.Difficulty = Difficulty(strings.ToLower(string(in.Difficulty)))
	return in
}

// Validate checks a normalized input.
func (in HabitInput) Validate() error {
	if in.Title == "" {
		return apperrors.Invalid("title", "must not be empty")
	}
	if _, ok := ParseCategory(string(in.Category)); !ok {
		return apperrors.Invalid("category", "%q is not one of %v", in.Category, Categories())
	}
	if !in.Difficulty.Valid() {
		return apperrors.Invalid("difficulty", "%q must be easy, medium or hard", in.Difficulty)
	}
	if in.Goal < constants.MinGoalMinutes || in.Goal > constants.MaxGoalMinutes {
		return apperrors.Invalid("goal", "%d must be between %d and %d minutes",
			in.Goal, constants.MinGoalMinutes, constants.MaxGoalMinutes)
	}
	return nil
}

// Apply copies the descriptive fields onto h, leaving tracking state alone.
func (in HabitInput) Apply(h *Habit) {
	h.Title = in.Title
	h.Description = in.Description
	h.Category = in.Category
	h.Difficulty = in.Difficulty
	h.Goal = in.Goal
}

// InputOf extracts the descriptive fields of h.
func InputOf(h Habit) HabitInput {
	return HabitInput{
		Title:       h.Title,
		Description: h.Description,
		Category:    h.Category,
		Difficulty:  h.Difficulty,
		Goal:        h.Goal,
	}
}
