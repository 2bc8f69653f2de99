// Package scheduler runs the reminder daemon: a daily nudge listing the
// habits still pending and a midnight rollover of the today flags.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
)

// Tracker is the part of the tracker the daemon drives.
type Tracker interface {
	Habits(category models.Category) []models.Habit
	Today() string
	Rollover() tracker.Outcome
}

// Notifier delivers reminder text.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type Scheduler struct {
	cron     *gocron.Scheduler
	mu       sync.Locker
	tracker  Tracker
	notifier Notifier
	remindAt string
}

// New creates a scheduler firing in loc. mu guards every access to t and is
// shared with any other goroutine using the same tracker.
func New(t Tracker, n Notifier, loc *time.Location, remindAt string, mu sync.Locker) (*Scheduler, error) {
	if remindAt == "" {
		remindAt = constants.DefaultReminderTime
	}
	if _, err := utils.ParseTimeToMinutes(remindAt); err != nil {
		return nil, fmt.Errorf("invalid reminder time %q: %w", remindAt, err)
	}
	if loc == nil {
		loc = time.Local
	}
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Scheduler{
		cron:     gocron.NewScheduler(loc),
		mu:       mu,
		tracker:  t,
		notifier: n,
		remindAt: remindAt,
	}, nil
}

// Start registers both jobs and runs them in the background.
func (s *Scheduler) Start() error {
	s.cron.SingletonModeAll()

	if _, err := s.cron.Every(1).Day().At(s.remindAt).Do(s.remindJob); err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	if _, err := s.cron.Every(1).Day().At("00:00").Do(s.Rollover); err != nil {
		return fmt.Errorf("failed to schedule rollover: %w", err)
	}

	s.cron.StartAsync()
	_, next := s.cron.NextRun()
	logger.Info("reminder daemon started", "remind_at", s.remindAt, "next_run", next.Format(time.RFC3339))
	return nil
}

// Stop terminates all scheduled jobs.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	logger.Info("reminder daemon stopped")
}

func (s *Scheduler) remindJob() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.NotifyTimeout)
	defer cancel()
	if err := s.SendReminder(ctx); err != nil {
		logger.Warn("failed to send reminder", "error", err)
	}
}

// SendReminder notifies about the habits not yet done today. Nothing is sent
// when every habit is done.
func (s *Scheduler) SendReminder(ctx context.Context) error {
	s.mu.Lock()
	text := notifier.ReminderText(s.tracker.Habits(""), s.tracker.Today())
	s.mu.Unlock()

	if text == "" {
		logger.Debug("no pending habits, skipping reminder")
		return nil
	}
	return s.notifier.Notify(ctx, text)
}

// Rollover moves the tracker onto the new day.
func (s *Scheduler) Rollover() {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.tracker.Rollover()
	if out.SaveErr != nil {
		logger.Warn("rollover could not be saved", "error", out.SaveErr)
		return
	}
	logger.Info("day rolled over", "day", s.tracker.Today())
}
