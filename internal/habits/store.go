package habits

import (
	"slices"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
)

// Op names a store mutation.
type Op string

const (
	OpCreate  Op = "create"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpToggle  Op = "toggle"
	OpRefresh Op = "refresh"
	OpReplace Op = "replace"
)

// Event is delivered to subscribers after a mutation has been applied.
type Event struct {
	Op      Op
	HabitID string
	Day     string
}

// Store exclusively owns the habit collection. Every mutation validates
// first, builds a new slice and swaps it in only on success, so a rejected
// command leaves the collection untouched. Callers only ever receive copies.
type Store struct {
	habits    []models.Habit
	observers []func(Event)
	newID     func() string
}

type Option func(*Store)

// WithIDFunc replaces the id generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// NewStore creates a store seeded with a copy of habits.
func NewStore(habits []models.Habit, opts ...Option) *Store {
	s := &Store{
		habits: normalizeAll(habits),
		newID:  newTimeOrderedID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newTimeOrderedID returns a UUIDv7, falling back to a random UUID.
func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func cloneAll(in []models.Habit) []models.Habit {
	out := make([]models.Habit, len(in))
	for i, h := range in {
		out[i] = h.Clone()
	}
	return out
}

// Subscribe registers fn to be called after every applied mutation.
func (s *Store) Subscribe(fn func(Event)) {
	s.observers = append(s.observers, fn)
}

func (s *Store) emit(e Event) {
	for _, fn := range s.observers {
		fn(e)
	}
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.habits, func(h models.Habit) bool { return h.ID == id })
}

// Create validates in and appends a new habit with zeroed tracking state.
func (s *Store) Create(in models.HabitInput, today string) (models.Habit, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Habit{}, err
	}

	h := models.Habit{
		ID:             s.newID(),
		CreatedAt:      today,
		CompletedDates: []string{},
	}
	in.Apply(&h)

	next := append(cloneAll(s.habits), h)
	s.habits = next
	s.emit(Event{Op: OpCreate, HabitID: h.ID, Day: today})
	return h.Clone(), nil
}

// Update replaces the descriptive fields of a habit. Tracking state is
// never touched.
func (s *Store) Update(id string, in models.HabitInput) (models.Habit, error) {
	i := s.index(id)
	if i < 0 {
		return models.Habit{}, apperrors.NotFound("habit", id)
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Habit{}, err
	}

	next := cloneAll(s.habits)
	in.Apply(&next[i])
	s.habits = next
	s.emit(Event{Op: OpUpdate, HabitID: id})
	return next[i].Clone(), nil
}

// Delete removes a habit.
func (s *Store) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return apperrors.NotFound("habit", id)
	}
	next := cloneAll(s.habits)
	s.habits = slices.Delete(next, i, i+1)
	s.emit(Event{Op: OpDelete, HabitID: id})
	return nil
}

// ToggleCompletion flips a habit between pending and done for today.
func (s *Store) ToggleCompletion(id, today string) (models.Habit, error) {
	i := s.index(id)
	if i < 0 {
		return models.Habit{}, apperrors.NotFound("habit", id)
	}
	next := cloneAll(s.habits)
	next[i] = Toggle(next[i], today)
	s.habits = next
	s.emit(Event{Op: OpToggle, HabitID: id, Day: today})
	return next[i].Clone(), nil
}

// Get returns a copy of one habit.
func (s *Store) Get(id string) (models.Habit, error) {
	i := s.index(id)
	if i < 0 {
		return models.Habit{}, apperrors.NotFound("habit", id)
	}
	return s.habits[i].Clone(), nil
}

// List returns the habits in category, or all habits when category is empty.
func (s *Store) List(category models.Category) []models.Habit {
	out := make([]models.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		if category == "" || h.Category == category {
			out = append(out, h.Clone())
		}
	}
	return out
}

// Habits returns a snapshot of the whole collection.
func (s *Store) Habits() []models.Habit {
	return cloneAll(s.habits)
}

func (s *Store) Len() int { return len(s.habits) }

// Refresh recomputes each habit's completed flag for today. It reports
// whether any flag changed.
func (s *Store) Refresh(today string) bool {
	next := cloneAll(s.habits)
	changed := false
	for i := range next {
		done := next[i].CompletedOn(today)
		if next[i].Completed != done {
			next[i].Completed = done
			changed = true
		}
	}
	if !changed {
		return false
	}
	s.habits = next
	s.emit(Event{Op: OpRefresh, Day: today})
	return true
}

// Replace swaps in a whole new collection, normalising each habit's
// completion dates.
func (s *Store) Replace(habits []models.Habit) {
	s.habits = normalizeAll(habits)
	s.emit(Event{Op: OpReplace})
}

func normalizeAll(habits []models.Habit) []models.Habit {
	out := cloneAll(habits)
	for i := range out {
		out[i].CompletedDates = normalizeDates(out[i].CompletedDates)
	}
	return out
}

func normalizeDates(dates []string) []string {
	out := slices.Clone(dates)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []string{}
	}
	return out
}
