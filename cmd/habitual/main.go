package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/cli/backups"
	"github.com/julianstephens/habitual/internal/cli/coach"
	"github.com/julianstephens/habitual/internal/cli/data"
	"github.com/julianstephens/habitual/internal/cli/habits"
	"github.com/julianstephens/habitual/internal/cli/progress"
	"github.com/julianstephens/habitual/internal/cli/settings"
	"github.com/julianstephens/habitual/internal/cli/system"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/utils"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"Config file path." type:"path" default:"~/.config/habitual/config.yaml"`
	Storage   string `help:"SQLite path, *.json path, or 'postgres' for the keyring connection. Overrides the config file. PostgreSQL credentials must NOT be embedded in the connection string." env:"HABITUAL_DB"`
	Timezone  string `help:"IANA timezone used to decide what 'today' is." env:"HABITUAL_TIMEZONE"`
	Ephemeral bool   `help:"Keep everything in memory for this run."`
	Debug     bool   `help:"Mirror logs to stderr."`

	Init      system.InitCmd      `cmd:"" help:"Initialize habitual storage."`
	Doctor    system.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Tui       system.TuiCmd       `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Remind    system.RemindCmd    `cmd:"" help:"Run the reminder daemon."`
	Habit     habits.HabitCmd     `cmd:"" help:"Manage habits and mark completions."`
	Today     progress.TodayCmd   `cmd:"" help:"Show today's habits and progress."`
	Week      progress.WeekCmd    `cmd:"" help:"Show this week's completion."`
	Stats     progress.StatsCmd   `cmd:"" help:"Show analytics across all habits."`
	Profile   progress.ProfileCmd `cmd:"" help:"Show or change your profile."`
	Assess    coach.AssessCmd     `cmd:"" help:"Take the self-assessment."`
	Recommend coach.RecommendCmd  `cmd:"" help:"List recommended habits."`
	Adopt     coach.AdoptCmd      `cmd:"" help:"Start tracking a recommended habit."`
	Export    data.ExportCmd      `cmd:"" help:"Export all data as JSON or an XLSX report."`
	Import    data.ImportCmd      `cmd:"" help:"Replace data from a JSON export."`
	Reset     data.ResetCmd       `cmd:"" help:"Delete all habits, badges and assessment answers."`
	Backup    backups.BackupCmd   `cmd:"" help:"Manage store backups."`
	Settings  settings.ConfigCmd  `cmd:"" name:"config" help:"Manage configuration and secrets."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, XP, badges and personalised recommendations"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := config.LoadEnvFile(".env"); err != nil {
		apperrors.Fatal(err)
	}
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	cfg.ApplyEnv()
	if CLI.Storage != "" {
		cfg.Storage = CLI.Storage
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Config:     cfg,
		ConfigPath: CLI.Config,
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: appCtx.ConfigDir(), Command: ctx.Command()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logger.Close()

	if appCtx.Clock, err = utils.NewClock(cfg.Timezone); err != nil {
		apperrors.Fatal(err)
	}
	if appCtx.Store, err = cli.ResolveStorage(cfg.Storage, CLI.Ephemeral); err != nil {
		apperrors.Fatal(err)
	}
	defer appCtx.Store.Close()
	appCtx.Notifier = notifier.New(cli.WebhookURL(cfg))

	logger.Debug("starting", "storage", appCtx.Store.GetConfigPath())
	if err := ctx.Run(appCtx); err != nil {
		appCtx.Store.Close()
		apperrors.Fatal(err)
	}
}
