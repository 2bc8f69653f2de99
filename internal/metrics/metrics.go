// Package metrics derives progress figures from a habit collection. Every
// function is pure: it reads a snapshot and a reference day key and never
// consults the wall clock.
package metrics

import (
	"math"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// Progress is the completion tally for one day.
type Progress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type DayStatus struct {
	Day        string `json:"day"`  // short weekday name
	Date       string `json:"date"` // day key
	Completed  bool   `json:"completed"`
	Percentage int    `json:"percentage"`
}

// percent returns round(num/den*100), or 0 when den is not positive.
func percent(num, den int) int {
	if den <= 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den) * 100))
}

// DayProgress counts the habits done on today.
func DayProgress(habits []models.Habit, today string) Progress {
	done := 0
	for _, h := range habits {
		if h.CompletedOn(today) {
			done++
		}
	}
	return Progress{
		Completed:  done,
		Total:      len(habits),
		Percentage: percent(done, len(habits)),
	}
}

// existedOn reports whether h had been created on or before day. Habits
// with a malformed creation key are treated as always existing.
func existedOn(h models.Habit, day string) bool {
	if !utils.ValidDay(h.CreatedAt) {
		return true
	}
	return h.CreatedAt <= day
}

// WeekProgress returns the seven days of the Monday-first week containing today.
// A day counts as completed only when every habit that existed on it has a
// completion recorded for it, and at least one habit existed.
func WeekProgress(habits []models.Habit, today string) []DayStatus {
	monday := utils.WeekStart(today)
	week := make([]DayStatus, 0, 7)
	for i := 0; i < 7; i++ {
		date := utils.AddDays(monday, i)
		existing, done := 0, 0
		for _, h := range habits {
			if !existedOn(h, date) {
				continue
			}
			existing++
			if h.CompletedOn(date) {
				done++
			}
		}
		week = append(week, DayStatus{
			Day:        utils.Weekday(date),
			Date:       date,
			Completed:  existing > 0 && done == existing,
			Percentage: percent(done, existing),
		})
	}
	return week
}

// ConsistencyScore is the percentage of days, over a trailing window ending
// today, on which at least one habit was completed. The window is the
// number of days since joinDate, clamped to [1, 30].
func ConsistencyScore(habits []models.Habit, joinDate, today string) int {
	window := utils.DaysBetween(joinDate, today)
	window = max(1, min(window, constants.ConsistencyWindowDays))
	start := utils.AddDays(today, -(window - 1))

	active := make(map[string]struct{})
	for _, h := range habits {
		for _, d := range h.CompletedDates {
			if d >= start && d <= today {
				active[d] = struct{}{}
			}
		}
	}
	return min(100, percent(len(active), window))
}

// completionsBetween counts completion events with from <= day <= to.
func completionsBetween(habits []models.Habit, from, to string) int {
	n := 0
	for _, h := range habits {
		for _, d := range h.CompletedDates {
			if d >= from && d <= to {
				n++
			}
		}
	}
	return n
}

// WeeklyGrowth compares completions in the seven days ending today with
// the seven days before that, as a rounded percentage change.
func WeeklyGrowth(habits []models.Habit, today string) int {
	span := constants.GrowthWindowDays
	current := completionsBetween(habits, utils.AddDays(today, -(span-1)), today)
	prior := completionsBetween(habits, utils.AddDays(today, -(2*span-1)), utils.AddDays(today, -span))

	switch {
	case prior == 0 && current > 0:
		return 100
	case prior == 0:
		return 0
	}
	return percent(current-prior, prior)
}

// OverallProgress is the lifetime adherence rate: recorded completion days divided
// by the days each habit has existed, counting its creation day and today.
func OverallProgress(habits []models.Habit, today string) int {
	actual, possible := 0, 0
	for _, h := range habits {
		actual += len(h.CompletedDates)
		days := 1
		if utils.ValidDay(h.CreatedAt) {
			days = max(1, utils.DaysBetween(h.CreatedAt, today)+1)
		}
		possible += days
	}
	return min(100, percent(actual, possible))
}
