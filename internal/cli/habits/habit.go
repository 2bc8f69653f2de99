package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit's title, description, category, difficulty or goal."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	Toggle HabitToggleCmd `cmd:"" help:"Mark a habit done for today, or undo today's mark."`
	List   HabitListCmd   `cmd:"" help:"List habits." default:"1"`
	Log    HabitLogCmd    `cmd:"" help:"Show a habit's completion history."`
}

type HabitAddCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Description string `help:"Free-text description." short:"d"`
	Category    string `help:"Health, Productivity, Learning, Mindfulness or Career." short:"c" default:"Health"`
	Difficulty  string `help:"easy, medium or hard." default:"medium"`
	Goal        int    `help:"Daily goal in minutes (1-480)." default:"30"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	in := models.HabitInput{
		Title:       c.Title,
		Description: c.Description,
		Difficulty:  models.Difficulty(c.Difficulty),
		Goal:        c.Goal,
	}
	if cat, ok := models.ParseCategory(c.Category); ok {
		in.Category = cat
	} else {
		in.Category = models.Category(c.Category)
	}

	out, err := t.CreateHabit(in)
	if err != nil {
		return err
	}
	fmt.Printf("Added habit: %s (%s)\n", out.Habit.Title, cli.ShortID(out.Habit.ID))
	ctx.Report(out)
	return nil
}

type HabitEditCmd struct {
	Habit       string  `arg:"" help:"Habit id, id prefix or title."`
	Title       *string `help:"New title."`
	Description *string `help:"New description."`
	Category    *string `help:"New category."`
	Difficulty  *string `help:"New difficulty."`
	Goal        *int    `help:"New daily goal in minutes."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.ResolveHabit(t, c.Habit)
	if err != nil {
		return err
	}

	in := models.InputOf(h)
	if c.Title != nil {
		in.Title = *c.Title
	}
	if c.Description != nil {
		in.Description = *c.Description
	}
	if c.Category != nil {
		if cat, ok := models.ParseCategory(*c.Category); ok {
			in.Category = cat
		} else {
			in.Category = models.Category(*c.Category)
		}
	}
	if c.Difficulty != nil {
		in.Difficulty = models.Difficulty(*c.Difficulty)
	}
	if c.Goal != nil {
		in.Goal = *c.Goal
	}

	out, err := t.UpdateHabit(h.ID, in)
	if err != nil {
		return err
	}
	fmt.Printf("Updated habit: %s\n", out.Habit.Title)
	ctx.Report(out)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix or title."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.ResolveHabit(t, c.Habit)
	if err != nil {
		return err
	}
	out, err := t.DeleteHabit(h.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", h.Title)
	ctx.Report(out)
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix or title."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.ResolveHabit(t, c.Habit)
	if err != nil {
		return err
	}
	out, err := t.ToggleHabit(h.ID)
	if err != nil {
		return err
	}

	if out.Habit.Completed {
		fmt.Printf("✓ %s done for %s (streak %d)\n", out.Habit.Title, t.Today(), out.Habit.Streak)
	} else {
		fmt.Printf("○ %s unmarked for %s (streak %d)\n", out.Habit.Title, t.Today(), out.Habit.Streak)
	}
	ctx.Report(out)
	return nil
}

type HabitListCmd struct {
	Category string `help:"Only show habits in this category." short:"c"`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	var category models.Category
	if c.Category != "" {
		cat, ok := models.ParseCategory(c.Category)
		if !ok {
			return fmt.Errorf("unknown category %q", c.Category)
		}
		category = cat
	}

	habits := t.Habits(category)
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	today := t.Today()
	for _, h := range habits {
		fmt.Println(cli.FormatHabit(h, today))
	}
	return nil
}

type HabitLogCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix or title."`
	Days  int    `help:"Number of days to show." default:"28"`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	h, err := cli.ResolveHabit(t, c.Habit)
	if err != nil {
		return err
	}
	if c.Days < 1 {
		return fmt.Errorf("days must be positive")
	}

	today := t.Today()
	start := utils.AddDays(today, -(c.Days - 1))
	fmt.Printf("%s: %s to %s\n\n", h.Title, start, today)

	var line strings.Builder
	for day := start; day <= today; day = utils.AddDays(day, 1) {
		if h.CompletedOn(day) {
			line.WriteString("■")
		} else {
			line.WriteString("□")
		}
		if utils.Weekday(day) == "Sun" {
			fmt.Println(line.String())
			line.Reset()
		}
	}
	if line.Len() > 0 {
		fmt.Println(line.String())
	}

	fmt.Printf("\nStreak: %d  Best: %d  Total: %d\n", h.Streak, h.BestStreak, h.TotalCompletions)
	return nil
}
