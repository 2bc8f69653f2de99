package models

import (
	"strconv"
	"strings"

	"github.com/julianstephens/habitual/internal/constants"
)

// Recommendation is a generated suggestion. It is never persisted; it is
// regenerated whenever the assessment changes.
type Recommendation struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Reason        string     `json:"reason"`
	Category      Category   `json:"category"`
	Difficulty    Difficulty `json:"difficulty"`
	EstimatedTime string     `json:"estimatedTime"`
	Benefits      []string   `json:"benefits"`
	Tips          []string   `json:"tips"`
	Priority      int        `json:"priority"`
}

// GoalMinutes reads the leading integer of EstimatedTime ("90 minutes" -> 90),
// falling back to the default goal when there is none or it is out of range.
func (r Recommendation) GoalMinutes() int {
	fields := strings.Fields(r.EstimatedTime)
	if len(fields) == 0 {
		return constants.DefaultGoalMinutes
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < constants.MinGoalMinutes || n > constants.MaxGoalMinutes {
		return constants.DefaultGoalMinutes
	}
	return n
}

// HabitInput converts the recommendation into a new habit's descriptive fields.
func (r Recommendation) HabitInput() HabitInput {
	return HabitInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Difficulty:  r.Difficulty,
		Goal:        r.GoalMinutes(),
	}
}
