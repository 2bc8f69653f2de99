// Package transfer encodes and decodes full-state snapshots for export and
// import, and renders the spreadsheet progress report.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Document is a full-state snapshot. On import a nil section means the key
// was absent and the corresponding state is left alone.
type Document struct {
	Habits      *[]models.Habit     `json:"habits,omitempty"`
	UserProfile *models.UserProfile `json:"userProfile,omitempty"`
	Assessment  *models.Assessment  `json:"assessment,omitempty"`
	ExportDate  string              `json:"exportDate,omitempty"`
}

// Empty reports whether the document carries none of the three sections.
func (d Document) Empty() bool {
	return d.Habits == nil && d.UserProfile == nil && d.Assessment == nil
}

// Marshal encodes d as indented JSON.
func Marshal(d Document) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return append(data, '\n'), nil
}

func importErr(reason string, err error) error {
	return &apperrors.ImportError{Reason: reason, Err: err}
}

// Parse decodes and checks an export document. Every failure is an
// *errors.ImportError; nothing is returned partially.
func Parse(data []byte) (Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Document{}, importErr("document is empty", nil)
	}
	if data[0] != '{' {
		return Document{}, importErr("document is not a JSON object", nil)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, importErr("document is not valid JSON", err)
	}
	if doc.Empty() {
		return Document{}, importErr("document has none of habits, userProfile or assessment", nil)
	}
	if doc.Habits != nil {
		if err := checkHabits(*doc.Habits); err != nil {
			return Document{}, importErr("habits are inconsistent", err)
		}
	}
	if doc.UserProfile != nil {
		if err := checkProfile(*doc.UserProfile); err != nil {
			return Document{}, importErr("userProfile is inconsistent", err)
		}
	}
	return doc, nil
}

func checkHabits(habits []models.Habit) error {
	seen := make(map[string]bool, len(habits))
	for i, h := range habits {
		if h.ID == "" {
			return fmt.Errorf("habit %d has no id", i)
		}
		if seen[h.ID] {
			return fmt.Errorf("duplicate habit id %q", h.ID)
		}
		seen[h.ID] = true
		if h.Title == "" {
			return fmt.Errorf("habit %q has no title", h.ID)
		}
		if h.Streak < 0 || h.BestStreak < 0 || h.TotalCompletions < 0 {
			return fmt.Errorf("habit %q has negative counters", h.ID)
		}
		if h.BestStreak < h.Streak {
			return fmt.Errorf("habit %q has bestStreak %d below streak %d", h.ID, h.BestStreak, h.Streak)
		}
		if c, ok := models.ParseCategory(string(h.Category)); !ok || c != h.Category {
			return fmt.Errorf("habit %q has unknown category %q", h.ID, h.Category)
		}
		if !h.Difficulty.Valid() {
			return fmt.Errorf("habit %q has unknown difficulty %q", h.ID, h.Difficulty)
		}
		if h.Goal < constants.MinGoalMinutes || h.Goal > constants.MaxGoalMinutes {
			return fmt.Errorf("habit %q has goal %d outside %d-%d", h.ID, h.Goal, constants.MinGoalMinutes, constants.MaxGoalMinutes)
		}
		if !utils.ValidDay(h.CreatedAt) {
			return fmt.Errorf("habit %q has invalid createdAt %q", h.ID, h.CreatedAt)
		}
		for _, d := range h.CompletedDates {
			if !utils.ValidDay(d) {
				return fmt.Errorf("habit %q has invalid completion date %q", h.ID, d)
			}
		}
	}
	return nil
}

func checkProfile(p models.UserProfile) error {
	seen := make(map[string]bool, len(p.Badges))
	for _, b := range p.Badges {
		if b.ID == "" {
			return fmt.Errorf("badge without id")
		}
		if seen[b.ID] {
			return fmt.Errorf("badge %q earned twice", b.ID)
		}
		seen[b.ID] = true
	}
	return nil
}
