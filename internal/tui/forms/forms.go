package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// HabitFormModel backs the add and edit habit forms.
type HabitFormModel struct {
	Title       string
	Description string
	Category    models.Category
	Difficulty  models.Difficulty
	Goal        string
}

func HabitFormFrom(in models.HabitInput) *HabitFormModel {
	in = in.Normalize()
	if in.Goal == 0 {
		in.Goal = constants.DefaultGoalMinutes
	}
	return &HabitFormModel{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Difficulty:  in.Difficulty,
		Goal:        strconv.Itoa(in.Goal),
	}
}

func (fm *HabitFormModel) Input() (models.HabitInput, error) {
	goal, err := strconv.Atoi(strings.TrimSpace(fm.Goal))
	if err != nil {
		return models.HabitInput{}, fmt.Errorf("goal must be a whole number of minutes: %w", err)
	}
	in := models.HabitInput{
		Title:       fm.Title,
		Description: fm.Description,
		Category:    fm.Category,
		Difficulty:  fm.Difficulty,
		Goal:        goal,
	}.Normalize()
	return in, in.Validate()
}

func validateGoal(s string) error {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if i < constants.MinGoalMinutes || i > constants.MaxGoalMinutes {
		return fmt.Errorf("goal must be between %d and %d minutes", constants.MinGoalMinutes, constants.MaxGoalMinutes)
	}
	return nil
}

// NewHabitForm creates the form for adding or editing a habit
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	categories := make([]huh.Option[models.Category], 0, len(models.Categories()))
	for _, c := range models.Categories() {
		categories = append(categories, huh.NewOption(string(c), c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categories...).
				Value(&fm.Category),
			huh.NewSelect[models.Difficulty]().
				Title("Difficulty").
				Options(
					huh.NewOption("Easy", models.DifficultyEasy),
					huh.NewOption("Medium", models.DifficultyMedium),
					huh.NewOption("Hard", models.DifficultyHard),
				).
				Value(&fm.Difficulty),
			huh.NewInput().
				Title("Daily goal (min)").
				Value(&fm.Goal).
				Validate(validateGoal),
		),
	).WithShowHelp(true)
}

// AssessmentFormModel backs the questionnaire. Free-text list answers are
// comma separated.
type AssessmentFormModel struct {
	Goals         []string
	Lifestyle     string
	Profession    string
	TimeAvailable string
	BadHabits     []string
	WorkSchedule  string
	SleepSchedule string
	ActivityLevel string
	Challenges    []string
	Stress        string
	Strengths     string
	Weaknesses    string
	Motivation    string
}

func AssessmentFormFrom(a models.Assessment) *AssessmentFormModel {
	fm := &AssessmentFormModel{
		Goals:         a.Goals,
		Lifestyle:     a.Lifestyle,
		Profession:    a.Profession,
		TimeAvailable: a.TimeAvailable,
		BadHabits:     a.BadHabits,
		WorkSchedule:  a.WorkSchedule,
		SleepSchedule: a.SleepSchedule,
		ActivityLevel: a.ActivityLevel,
		Challenges:    a.Challenges,
		Strengths:     strings.Join(a.Strengths, ", "),
		Weaknesses:    strings.Join(a.Weaknesses, ", "),
		Motivation:    a.Motivation,
	}
	if s, ok := a.Stress(); ok {
		fm.Stress = strconv.Itoa(s)
	}
	return fm
}

// SplitList turns "a, b,,c" into [a b c].
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validateStress(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if i < 1 || i > 10 {
		return fmt.Errorf("stress level must be between 1 and 10")
	}
	return nil
}

// Assessment converts the answers. Unanswered questions stay unset.
func (fm *AssessmentFormModel) Assessment() models.Assessment {
	a := models.Assessment{
		Goals:         fm.Goals,
		Strengths:     SplitList(fm.Strengths),
		Weaknesses:    SplitList(fm.Weaknesses),
		BadHabits:     fm.BadHabits,
		Challenges:    fm.Challenges,
		Lifestyle:     fm.Lifestyle,
		Profession:    fm.Profession,
		TimeAvailable: fm.TimeAvailable,
		WorkSchedule:  fm.WorkSchedule,
		SleepSchedule: fm.SleepSchedule,
		ActivityLevel: fm.ActivityLevel,
		Motivation:    strings.TrimSpace(fm.Motivation),
	}
	if validateStress(fm.Stress) == nil && strings.TrimSpace(fm.Stress) != "" {
		v, _ := strconv.Atoi(strings.TrimSpace(fm.Stress))
		a.StressLevel = &v
	}
	return a.Clone()
}

func pick(title string, options []string, value *string) *huh.Select[string] {
	opts := append([]huh.Option[string]{huh.NewOption("Skip", "")}, huh.NewOptions(options...)...)
	return huh.NewSelect[string]().Title(title).Options(opts...).Value(value)
}

func pickMany(title string, options []string, value *[]string) *huh.MultiSelect[string] {
	return huh.NewMultiSelect[string]().Title(title).Options(huh.NewOptions(options...)...).Value(value)
}

// NewAssessmentForm creates the multi-page questionnaire. Every question may
// be skipped.
func NewAssessmentForm(fm *AssessmentFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			pickMany("What are your goals?", models.GoalOptions, &fm.Goals),
			pick("How would you describe your lifestyle?", models.LifestyleOptions, &fm.Lifestyle),
			pick("What is your profession?", models.ProfessionOptions, &fm.Profession),
			pick("How much time can you give each day?", models.TimeAvailableOptions, &fm.TimeAvailable),
		).Title("Goals"),
		huh.NewGroup(
			pickMany("Which habits would you like to break?", models.BadHabitOptions, &fm.BadHabits),
			pickMany("What gets in your way?", models.ChallengeOptions, &fm.Challenges),
			huh.NewInput().
				Title("Stress level (1-10)").
				Value(&fm.Stress).
				Validate(validateStress),
		).Title("Challenges"),
		huh.NewGroup(
			pick("Work schedule", models.WorkScheduleOptions, &fm.WorkSchedule),
			pick("Sleep schedule", models.SleepScheduleOptions, &fm.SleepSchedule),
			pick("Activity level", models.ActivityOptions, &fm.ActivityLevel),
		).Title("Routine"),
		huh.NewGroup(
			huh.NewInput().Title("Strengths").Description("Comma separated").Value(&fm.Strengths),
			huh.NewInput().Title("Weaknesses").Description("Comma separated").Value(&fm.Weaknesses),
			huh.NewText().Title("What motivates you?").Value(&fm.Motivation),
		).Title("About you"),
	).WithShowHelp(true)
}
