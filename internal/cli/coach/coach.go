package coach

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tui/forms"
)

type AssessCmd struct {
	Goal          []string `help:"Goal (repeatable)." name:"goal"`
	Strength      []string `help:"Strength (repeatable)." name:"strength"`
	Weakness      []string `help:"Weakness (repeatable)." name:"weakness"`
	BadHabit      []string `help:"Habit to break (repeatable)." name:"bad-habit"`
	Challenge     []string `help:"Challenge (repeatable)." name:"challenge"`
	Lifestyle     string   `help:"Lifestyle description."`
	Profession    string   `help:"Profession."`
	TimeAvailable string   `help:"Time available per day." name:"time"`
	WorkSchedule  string   `help:"Work schedule." name:"work"`
	SleepSchedule string   `help:"Sleep schedule." name:"sleep"`
	ActivityLevel string   `help:"Activity level." name:"activity"`
	Motivation    string   `help:"What motivates you."`
	Stress        int      `help:"Stress level 1-10 (0 = unset)."`
	Merge         bool     `help:"Keep previous answers for questions not given."`
	Interactive   bool     `help:"Answer the questionnaire interactively." short:"i"`
}

func (c *AssessCmd) flagged() bool {
	return len(c.Goal)+len(c.Strength)+len(c.Weakness)+len(c.BadHabit)+len(c.Challenge) > 0 ||
		c.Lifestyle != "" || c.Profession != "" || c.TimeAvailable != "" || c.WorkSchedule != "" ||
		c.SleepSchedule != "" || c.ActivityLevel != "" || c.Motivation != "" || c.Stress != 0
}

// fromFlags builds an assessment from the flags, optionally on top of base.
func (c *AssessCmd) fromFlags(base models.Assessment) (models.Assessment, error) {
	if c.Stress < 0 || c.Stress > 10 {
		return models.Assessment{}, fmt.Errorf("stress level must be between 1 and 10")
	}
	a := models.Assessment{}
	if c.Merge {
		a = base.Clone()
	}
	setList := func(dst *[]string, v []string) {
		if len(v) > 0 {
			*dst = v
		}
	}
	setStr := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	setList(&a.Goals, c.Goal)
	setList(&a.Strengths, c.Strength)
	setList(&a.Weaknesses, c.Weakness)
	setList(&a.BadHabits, c.BadHabit)
	setList(&a.Challenges, c.Challenge)
	setStr(&a.Lifestyle, c.Lifestyle)
	setStr(&a.Profession, c.Profession)
	setStr(&a.TimeAvailable, c.TimeAvailable)
	setStr(&a.WorkSchedule, c.WorkSchedule)
	setStr(&a.SleepSchedule, c.SleepSchedule)
	setStr(&a.ActivityLevel, c.ActivityLevel)
	setStr(&a.Motivation, c.Motivation)
	if c.Stress > 0 {
		s := c.Stress
		a.StressLevel = &s
	}
	return a, nil
}

func (c *AssessCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	var a models.Assessment
	if c.Interactive || !c.flagged() {
		fm := forms.AssessmentFormFrom(t.Assessment())
		if err := forms.NewAssessmentForm(fm).Run(); err != nil {
			return fmt.Errorf("assessment cancelled: %w", err)
		}
		a = fm.Assessment()
	} else if a, err = c.fromFlags(t.Assessment()); err != nil {
		return err
	}

	out := t.SubmitAssessment(a)
	recs := t.Recommendations()
	fmt.Printf("Assessment saved. %d recommendation(s) generated.\n", len(recs))
	if len(recs) > 0 {
		fmt.Println("Run 'habitual recommend' to review them.")
	}
	ctx.Report(out)
	return nil
}

type RecommendCmd struct {
	Verbose bool `help:"Show benefits and tips." short:"v"`
}

func (c *RecommendCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	recs := t.Recommendations()
	if len(recs) == 0 {
		if t.Assessment().IsZero() {
			fmt.Println("No assessment yet. Run 'habitual assess' to get recommendations.")
		} else {
			fmt.Println("No recommendations match your assessment.")
		}
		return nil
	}

	for i, r := range recs {
		fmt.Printf("%d. %s [%s] (%s, %s, %s)\n", i+1, r.Title, r.ID, r.Category, r.Difficulty, r.EstimatedTime)
		fmt.Printf("   %s\n", r.Description)
		fmt.Printf("   Why: %s\n", r.Reason)
		if c.Verbose {
			for _, b := range r.Benefits {
				fmt.Printf("   + %s\n", b)
			}
			for _, tip := range r.Tips {
				fmt.Printf("   > %s\n", tip)
			}
		}
	}
	fmt.Println("\nAdopt one with 'habitual adopt <id>'.")
	return nil
}

type AdoptCmd struct {
	ID string `arg:"" help:"Recommendation id."`
}

func (c *AdoptCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	out, err := t.AdoptRecommendation(c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Now tracking %q (%s, %d min).\n", out.Habit.Title, out.Habit.Category, out.Habit.Goal)
	ctx.Report(out)
	return nil
}
