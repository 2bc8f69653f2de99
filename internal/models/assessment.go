package models

import (
	"slices"
	"strings"
)

// Assessment is a partial set of questionnaire answers. Any field may be
// unset; nothing here is ever validated for completeness.
type Assessment struct {
	Goals         []string `json:"goals,omitempty"`
	Strengths     []string `json:"strengths,omitempty"`
	Weaknesses    []string `json:"weaknesses,omitempty"`
	BadHabits     []string `json:"badHabits,omitempty"`
	Challenges    []string `json:"challenges,omitempty"`
	Lifestyle     string   `json:"lifestyle,omitempty"`
	Profession    string   `json:"profession,omitempty"`
	TimeAvailable string   `json:"timeAvailable,omitempty"`
	WorkSchedule  string   `json:"workSchedule,omitempty"`
	SleepSchedule string   `json:"sleepSchedule,omitempty"`
	ActivityLevel string   `json:"activityLevel,omitempty"`
	Motivation    string   `json:"motivation,omitempty"`
	StressLevel   *int     `json:"stressLevel,omitempty"` // 1..10
}

// Questionnaire options offered by the assessment form.
var (
	GoalOptions = []string{
		"Improve productivity", "Better health habits", "Learn new skills",
		"Reduce stress", "Career advancement", "Better relationships",
	}
	LifestyleOptions = []string{
		"Very busy, limited time", "Moderate schedule, some flexibility", "Flexible schedule, plenty of time",
	}
	ProfessionOptions = []string{
		"Student", "Software Developer", "Manager/Executive", "Healthcare Professional",
		"Teacher/Educator", "Entrepreneur", "Other",
	}
	TimeAvailableOptions = []string{"15-30 minutes", "30-60 minutes", "1-2 hours", "2+ hours"}
	BadHabitOptions      = []string{
		"Procrastination", "Excessive social media", "Poor sleep schedule",
		"Unhealthy eating", "Lack of exercise", "Negative self-talk",
	}
	WorkScheduleOptions  = []string{"Standard 9-to-5", "Shift work", "Remote/flexible", "Irregular hours"}
	SleepScheduleOptions = []string{"Early bird", "Night owl", "Irregular", "Less than 6 hours"}
	ActivityOptions      = []string{"Sedentary", "Lightly active", "Moderately active", "Very active"}
	ChallengeOptions     = []string{
		"Procrastination", "Lack of focus", "Low energy", "Poor sleep",
		"Too much screen time", "Staying consistent",
	}
)

func containsFold(list []string, want string) bool {
	return slices.ContainsFunc(list, func(s string) bool {
		return strings.EqualFold(strings.TrimSpace(s), want)
	})
}

func (a Assessment) HasGoal(g string) bool      { return containsFold(a.Goals, g) }
func (a Assessment) HasChallenge(c string) bool { return containsFold(a.Challenges, c) }
func (a Assessment) HasBadHabit(b string) bool  { return containsFold(a.BadHabits, b) }

// Stress returns the stress scale value when it is set and in range.
func (a Assessment) Stress() (int, bool) {
	if a.StressLevel == nil || *a.StressLevel < 1 || *a.StressLevel > 10 {
		return 0, false
	}
	return *a.StressLevel, true
}

// IsZero reports whether no answer has been given at all.
func (a Assessment) IsZero() bool {
	return len(a.Goals) == 0 && len(a.Strengths) == 0 && len(a.Weaknesses) == 0 &&
		len(a.BadHabits) == 0 && len(a.Challenges) == 0 && a.Lifestyle == "" &&
		a.Profession == "" && a.TimeAvailable == "" && a.WorkSchedule == "" &&
		a.SleepSchedule == "" && a.ActivityLevel == "" && a.Motivation == "" &&
		a.StressLevel == nil
}

// Clone returns a copy that shares no memory with a.
func (a Assessment) Clone() Assessment {
	c := a
	c.Goals = slices.Clone(a.Goals)
	c.Strengths = slices.Clone(a.Strengths)
	c.Weaknesses = slices.Clone(a.Weaknesses)
	c.BadHabits = slices.Clone(a.BadHabits)
	c.Challenges = slices.Clone(a.Challenges)
	if a.StressLevel != nil {
		v := *a.StressLevel
		c.StressLevel = &v
	}
	return c
}
