// Package tracker wires the habit store to the derived state around it:
// every command mutates the store, recomputes the profile, appends newly
// earned badges and saves the affected blobs.
package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/badges"
	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/habits"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/profile"
	"github.com/julianstephens/habitual/internal/recommend"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/utils"
)

// Ops emitted by the tracker in addition to the store's own.
const (
	OpAssess   habits.Op = "assess"
	OpIdentity habits.Op = "identity"
	OpImport   habits.Op = "import"
	OpReset    habits.Op = "reset"
	OpRollover habits.Op = "rollover"
)

// Event is delivered to subscribers after a command has been applied and
// saved.
type Event struct {
	Op        habits.Op
	HabitID   string
	Day       string
	NewBadges []models.Badge
}

// Outcome describes an applied command. SaveErr is set when the new state
// could not be persisted; the in-memory state is kept regardless.
type Outcome struct {
	Habit        models.Habit
	NewBadges    []models.Badge
	PrimaryBadge *models.Badge
	SaveErr      error
}

type Tracker struct {
	provider storage.Provider
	clock    utils.Clock

	store      *habits.Store
	profile    models.UserProfile
	assessment models.Assessment
	recs       []models.Recommendation

	day          string
	maxRecs      int
	name, email  string
	storeOpts    []habits.Option
	observers    []func(Event)
	newProfileID func() string
}

type Option func(*Tracker)

// WithMaxRecommendations caps the recommendation list.
func WithMaxRecommendations(n int) Option {
	return func(t *Tracker) { t.maxRecs = n }
}

// WithIdentity sets the name and email given to a freshly created profile.
func WithIdentity(name, email string) Option {
	return func(t *Tracker) { t.name, t.email = name, email }
}

// WithHabitIDFunc replaces the habit id generator.
func WithHabitIDFunc(fn func() string) Option {
	return func(t *Tracker) { t.storeOpts = append(t.storeOpts, habits.WithIDFunc(fn)) }
}

// New returns a tracker with empty state. Call Load to read saved state.
func New(provider storage.Provider, clock utils.Clock, opts ...Option) *Tracker {
	t := &Tracker{
		provider:     provider,
		clock:        clock,
		maxRecs:      constants.DefaultMaxRecommendations,
		name:         constants.DefaultProfileName,
		email:        constants.DefaultProfileEmail,
		newProfileID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.day = utils.Today(clock)
	t.store = t.newStore(nil)
	t.profile = profile.New(t.newProfileID(), t.name, t.email, t.day)
	return t
}

func (t *Tracker) newStore(seed []models.Habit) *habits.Store {
	s := habits.NewStore(seed, t.storeOpts...)
	s.Subscribe(func(e habits.Event) {
		logger.Debug("habit store changed", "op", e.Op, "habit", e.HabitID, "day", e.Day)
	})
	return s
}

// Subscribe registers fn to be called after every applied command.
func (t *Tracker) Subscribe(fn func(Event)) {
	t.observers = append(t.observers, fn)
}

func (t *Tracker) emit(e Event) {
	for _, fn := range t.observers {
		fn(e)
	}
}

// Load reads the three blobs. A missing blob leaves the default in place; a
// blob that cannot be decoded fails the load and nothing is replaced.
func (t *Tracker) Load() error {
	var (
		hs      []models.Habit
		p       models.UserProfile
		a       models.Assessment
		missing = map[string]bool{}
	)
	targets := map[string]interface{}{
		storage.KeyHabits:      &hs,
		storage.KeyUserProfile: &p,
		storage.KeyAssessment:  &a,
	}
	for _, key := range storage.Keys {
		data, err := t.provider.Get(key)
		if apperrors.Is(err, storage.ErrBlobNotFound) {
			missing[key] = true
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if err := json.Unmarshal(data, targets[key]); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
	}

	t.day = utils.Today(t.clock)
	t.store = t.newStore(hs)
	t.store.Refresh(t.day)
	if missing[storage.KeyUserProfile] {
		p = profile.New(t.newProfileID(), t.name, t.email, t.day)
	}
	t.profile = profile.Aggregate(p, t.store.Habits(), t.day)
	t.assessment = a
	t.recs = recommend.Recommend(a, t.maxRecs)

	logger.Debug("state loaded", "habits", t.store.Len(), "storage", t.provider.GetConfigPath())
	if missing[storage.KeyUserProfile] {
		if err := t.persist(storage.KeyUserProfile); err != nil {
			logger.Warn("failed to save new profile", "error", err)
		}
	}
	return nil
}

// sync refreshes completion flags when the calendar day has moved on since
// the last command.
func (t *Tracker) sync() string {
	today := utils.Today(t.clock)
	if today != t.day {
		t.day = today
		t.store.Refresh(today)
	}
	return today
}

// Today returns the current day key.
func (t *Tracker) Today() string { return utils.Today(t.clock) }

func (t *Tracker) encode(key string) ([]byte, error) {
	switch key {
	case storage.KeyHabits:
		return json.Marshal(t.store.Habits())
	case storage.KeyUserProfile:
		return json.Marshal(t.profile)
	case storage.KeyAssessment:
		return json.Marshal(t.assessment)
	}
	return nil, fmt.Errorf("unknown blob key %q", key)
}

// persist saves the named blobs. Every key is attempted; failures are joined.
func (t *Tracker) persist(keys ...string) error {
	var errs []error
	for _, key := range keys {
		data, err := t.encode(key)
		if err == nil {
			err = t.provider.Set(key, data)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to save %s: %w", key, err))
		}
	}
	return apperrors.Join(errs...)
}

// settle runs the derived-state pipeline after a habit mutation.
func (t *Tracker) settle(op habits.Op, h models.Habit, today string) Outcome {
	list := t.store.Habits()
	p := profile.Aggregate(t.profile, list, today)
	res := badges.Evaluate(list, p, today)
	t.profile = badges.Award(p, res)

	out := Outcome{Habit: h, NewBadges: res.Earned, PrimaryBadge: res.Primary}
	for _, b := range res.Earned {
		logger.Info("badge earned", "badge", b.ID, "day", today)
	}
	out.SaveErr = t.persist(storage.KeyHabits, storage.KeyUserProfile)
	if out.SaveErr != nil {
		logger.Warn("failed to save state", "op", op, "error", out.SaveErr)
	}
	t.emit(Event{Op: op, HabitID: h.ID, Day: today, NewBadges: res.Earned})
	return out
}

// CreateHabit adds a habit with zeroed tracking state.
func (t *Tracker) CreateHabit(in models.HabitInput) (Outcome, error) {
	today := t.sync()
	h, err := t.store.Create(in, today)
	if err != nil {
		return Outcome{}, err
	}
	return t.settle(habits.OpCreate, h, today), nil
}

// UpdateHabit replaces the descriptive fields of a habit.
func (t *Tracker) UpdateHabit(id string, in models.HabitInput) (Outcome, error) {
	today := t.sync()
	h, err := t.store.Update(id, in)
	if err != nil {
		return Outcome{}, err
	}
	return t.settle(habits.OpUpdate, h, today), nil
}

// DeleteHabit removes a habit.
func (t *Tracker) DeleteHabit(id string) (Outcome, error) {
	today := t.sync()
	h, err := t.store.Get(id)
	if err != nil {
		return Outcome{}, err
	}
	if err := t.store.Delete(id); err != nil {
		return Outcome{}, err
	}
	return t.settle(habits.OpDelete, h, today), nil
}

// ToggleHabit flips today's completion of a habit.
func (t *Tracker) ToggleHabit(id string) (Outcome, error) {
	today := t.sync()
	h, err := t.store.ToggleCompletion(id, today)
	if err != nil {
		return Outcome{}, err
	}
	return t.settle(habits.OpToggle, h, today), nil
}

// AdoptRecommendation tracks a current recommendation as a new habit.
func (t *Tracker) AdoptRecommendation(id string) (Outcome, error) {
	rec, ok := recommend.Find(t.recs, id)
	if !ok {
		return Outcome{}, apperrors.NotFound("recommendation", id)
	}
	return t.CreateHabit(rec.HabitInput())
}

// SubmitAssessment stores the answers and regenerates recommendations.
func (t *Tracker) SubmitAssessment(a models.Assessment) Outcome {
	today := t.sync()
	t.assessment = a.Clone()
	t.recs = recommend.Recommend(t.assessment, t.maxRecs)
	logger.Debug("assessment submitted", "recommendations", len(t.recs))

	out := Outcome{SaveErr: t.persist(storage.KeyAssessment)}
	if out.SaveErr != nil {
		logger.Warn("failed to save assessment", "error", out.SaveErr)
	}
	t.emit(Event{Op: OpAssess, Day: today})
	return out
}

// UpdateIdentity changes the profile's identity fields. Empty arguments
// keep the current value.
func (t *Tracker) UpdateIdentity(name, email, timezone string) (Outcome, error) {
	if timezone != "" && !utils.ValidateTimezone(timezone) {
		return Outcome{}, apperrors.Invalid("timezone", "unknown timezone %q", timezone)
	}
	today := t.sync()
	p := t.profile.Clone()
	if name != "" {
		p.Name = name
	}
	if email != "" {
		p.Email = email
	}
	if timezone != "" {
		p.Timezone = timezone
	}
	t.profile = p

	out := Outcome{SaveErr: t.persist(storage.KeyUserProfile)}
	if out.SaveErr != nil {
		logger.Warn("failed to save profile", "error", out.SaveErr)
	}
	t.emit(Event{Op: OpIdentity, Day: today})
	return out, nil
}

// Rollover brings the today flags and today counters up to date after the
// calendar day changed. Streaks are left alone.
func (t *Tracker) Rollover() Outcome {
	today := t.sync()
	t.store.Refresh(today)
	t.profile = profile.Aggregate(t.profile, t.store.Habits(), today)

	out := Outcome{SaveErr: t.persist(storage.KeyHabits, storage.KeyUserProfile)}
	if out.SaveErr != nil {
		logger.Warn("failed to save rollover", "error", out.SaveErr)
	}
	t.emit(Event{Op: OpRollover, Day: today})
	return out
}

// Reset discards every habit, badge and answer and starts a fresh profile.
func (t *Tracker) Reset() Outcome {
	today := t.sync()
	t.store.Replace(nil)
	t.profile = profile.New(t.newProfileID(), t.name, t.email, today)
	t.assessment = models.Assessment{}
	t.recs = nil
	logger.Info("all data reset")

	out := Outcome{SaveErr: t.persist(storage.Keys...)}
	if out.SaveErr != nil {
		logger.Warn("failed to save reset", "error", out.SaveErr)
	}
	t.emit(Event{Op: OpReset, Day: today})
	return out
}
