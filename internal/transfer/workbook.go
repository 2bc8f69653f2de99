package transfer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/habitual/internal/metrics"
	"github.com/julianstephens/habitual/internal/models"
)

const (
	SheetSummary     = "Summary"
	SheetHabits      = "Habits"
	SheetCompletions = "Completions"
	SheetBadges      = "Badges"
)

// Report is everything rendered into the spreadsheet.
type Report struct {
	Habits  []models.Habit
	Profile models.UserProfile
	Stats   metrics.Stats
	Date    string
}

// WriteWorkbook renders r as an .xlsx document with one sheet per section.
func WriteWorkbook(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("failed to name %s sheet: %w", SheetSummary, err)
	}
	for _, name := range []string{SheetHabits, SheetCompletions, SheetBadges} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create %s sheet: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	summary := [][]interface{}{
		{"Field", "Value"},
		{"Report date", r.Date},
		{"Name", r.Profile.Name},
		{"Joined", r.Profile.JoinDate},
		{"Level", r.Profile.Level},
		{"XP", r.Profile.XP},
		{"Habits", r.Profile.TotalHabits},
		{"Completed today", r.Profile.CompletedToday},
		{"Longest streak", r.Profile.LongestStreak},
		{"Completion rate %", r.Stats.CompletionRate},
		{"Consistency %", r.Stats.Consistency},
		{"Weekly growth %", r.Stats.WeeklyGrowth},
		{"Overall progress %", r.Stats.Overall},
	}
	for _, c := range r.Stats.Categories {
		summary = append(summary, []interface{}{string(c.Category) + " habits", c.Habits})
	}

	habits := [][]interface{}{{
		"ID", "Title", "Category", "Difficulty", "Goal (min)", "Created",
		"Streak", "Best streak", "Completions", "Done today",
	}}
	var completions [][]interface{}
	completions = append(completions, []interface{}{"Habit ID", "Habit", "Date"})
	for _, h := range r.Habits {
		habits = append(habits, []interface{}{
			h.ID, h.Title, string(h.Category), string(h.Difficulty), h.Goal, h.CreatedAt,
			h.Streak, h.BestStreak, h.TotalCompletions, h.CompletedOn(r.Date),
		})
		for _, d := range h.CompletedDates {
			completions = append(completions, []interface{}{h.ID, h.Title, d})
		}
	}

	badges := [][]interface{}{{"Badge", "Rarity", "Earned", "Description"}}
	for _, b := range r.Profile.Badges {
		badges = append(badges, []interface{}{
			strings.TrimSpace(b.Icon + " " + b.Name), string(b.Rarity), b.EarnedAt, b.Description,
		})
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetSummary, summary},
		{SheetHabits, habits},
		{SheetCompletions, completions},
		{SheetBadges, badges},
	}
	for _, s := range sheets {
		if err := writeRows(f, s.name, s.rows, header); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, header int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", end, header); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return nil
}
