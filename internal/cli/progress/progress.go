package progress

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/profile"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	today := t.Today()
	p := t.DayProgress()
	fmt.Printf("%s  %s %d/%d (%d%%)\n\n", today, cli.Bar(p.Percentage, 20), p.Completed, p.Total, p.Percentage)

	habits := t.Habits("")
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'habitual habit add <title>'.")
		return nil
	}
	for _, h := range habits {
		fmt.Println(cli.FormatHabit(h, today))
	}
	return nil
}

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	today := t.Today()
	for _, d := range t.WeekProgress() {
		mark := "  "
		if d.Completed {
			mark = "✓ "
		}
		if d.Date == today {
			mark = mark[:len(mark)-1] + "<"
		}
		fmt.Printf("%s %s %s %3d%% %s\n", d.Day, d.Date, cli.Bar(d.Percentage, 10), d.Percentage, mark)
	}
	return nil
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	s := t.Stats()
	fmt.Printf("Today:             %d/%d (%d%%)\n", s.Today.Completed, s.Today.Total, s.Today.Percentage)
	fmt.Printf("Completion rate:   %d%%\n", s.CompletionRate)
	fmt.Printf("Consistency (30d): %d%%\n", s.Consistency)
	fmt.Printf("Weekly growth:     %+d%%\n", s.WeeklyGrowth)
	fmt.Printf("Overall progress:  %d%%\n", s.Overall)
	fmt.Printf("Average streak:    %d\n", s.AverageStreak)
	fmt.Printf("Best streak:       %d\n", s.BestStreak)
	fmt.Printf("Total completions: %d\n", s.TotalCompletions)

	fmt.Println("\nBy category:")
	for _, cs := range s.Categories {
		fmt.Printf("  %-13s %2d habits  avg streak %2d  %3d completions  %d done today\n",
			cs.Category, cs.Habits, cs.AverageStreak, cs.Completions, cs.DoneToday)
	}
	return nil
}

type ProfileCmd struct {
	Show ProfileShowCmd `cmd:"" help:"Show level, XP and badges." default:"1"`
	Set  ProfileSetCmd  `cmd:"" help:"Change name, email or timezone."`
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	p := t.Profile()
	into, span := profile.LevelProgress(p.XP)
	fmt.Printf("%s", p.Name)
	if p.Email != "" {
		fmt.Printf(" <%s>", p.Email)
	}
	fmt.Printf("\nJoined %s (%s)\n\n", p.JoinDate, p.Timezone)
	fmt.Printf("Level %d  %s %d/%d XP (total %d)\n", p.Level, cli.Bar(into*100/span, 20), into, span, p.XP)
	fmt.Printf("Habits: %d  Done today: %d  Longest streak: %d\n", p.TotalHabits, p.CompletedToday, p.LongestStreak)

	fmt.Printf("\nBadges (%d):\n", len(p.Badges))
	if len(p.Badges) == 0 {
		fmt.Println("  none yet")
	}
	for _, b := range p.Badges {
		fmt.Printf("  %s %-18s %-9s %s  %s\n", b.Icon, b.Name, b.Rarity, b.EarnedAt, b.Description)
	}
	return nil
}

type ProfileSetCmd struct {
	Name     string `help:"Display name."`
	Email    string `help:"Email address."`
	Timezone string `help:"IANA timezone or Local."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	if c.Name == "" && c.Email == "" && c.Timezone == "" {
		return fmt.Errorf("nothing to change: pass --name, --email or --timezone")
	}
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	out, err := t.UpdateIdentity(c.Name, c.Email, c.Timezone)
	if err != nil {
		return err
	}
	fmt.Println("Profile updated.")
	ctx.Report(out)
	return nil
}
