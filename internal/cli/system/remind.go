package system

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/scheduler"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
)

type RemindCmd struct {
	At   string `help:"Reminder time HH:MM (defaults to reminders.time)."`
	Once bool   `help:"Send the reminder now and exit."`
}

// liveTracker reloads the saved state before each job so that changes made
// by other habitual processes are picked up.
type liveTracker struct {
	*tracker.Tracker
	store storage.Provider
}

func (l liveTracker) refresh() {
	if err := l.store.Load(); err != nil {
		logger.Warn("failed to reopen storage", "error", err)
		return
	}
	if err := l.Tracker.Load(); err != nil {
		logger.Warn("failed to reload state", "error", err)
	}
}

func (l liveTracker) Habits(c models.Category) []models.Habit {
	l.refresh()
	return l.Tracker.Habits(c)
}

func (l liveTracker) Rollover() tracker.Outcome {
	l.refresh()
	return l.Tracker.Rollover()
}

// printNotifier writes reminders to the terminal when no webhook is set.
type printNotifier struct {
	w io.Writer
}

func (p printNotifier) Notify(_ context.Context, text string) error {
	_, err := fmt.Fprintf(p.w, "🔔 %s\n", text)
	return err
}

func (c *RemindCmd) notifier(ctx *cli.Context) scheduler.Notifier {
	if ctx.Notifier.Enabled() {
		return ctx.Notifier
	}
	return printNotifier{w: os.Stdout}
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	at := c.At
	if at == "" {
		at = ctx.Config.Reminders.Time
	}
	loc, err := utils.LoadLocation(ctx.Config.Timezone)
	if err != nil {
		return err
	}

	s, err := scheduler.New(liveTracker{Tracker: t, store: ctx.Store}, c.notifier(ctx), loc, at, &sync.Mutex{})
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.Once {
		return s.SendReminder(sigCtx)
	}

	release, err := scheduler.AcquireLock(scheduler.LockfilePath(ctx.ConfigDir()))
	if err != nil {
		return err
	}
	defer func() {
		if err := release(); err != nil {
			logger.Warn("failed to remove lockfile", "error", err)
		}
	}()

	if err := s.Start(); err != nil {
		return err
	}
	fmt.Printf("Reminder daemon running: daily reminder at %s (%s). Press Ctrl+C to stop.\n", at, loc)

	<-sigCtx.Done()
	s.Stop()
	return nil
}
