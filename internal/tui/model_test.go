package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/tui/components/recommendations"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time { return c.t }

func setupTestModel(t *testing.T) (Model, *tracker.Tracker, *stepClock) {
	t.Helper()
	clock := &stepClock{t: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}
	tr := tracker.New(storage.NewMemoryStore(), clock)
	if err := tr.Load(); err != nil {
		t.Fatal(err)
	}
	m := NewModel(tr, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), tr, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestTabs(t *testing.T) {
	m, _, _ := setupTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateProgress {
		t.Errorf("state after tab = %v, want StateProgress", m.state)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateToday {
		t.Errorf("tab should wrap to StateToday, got %v", m.state)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateIdeas {
		t.Errorf("shift+tab should wrap to StateIdeas, got %v", m.state)
	}
	if !strings.Contains(m.View(), "self-assessment") {
		t.Error("ideas tab should prompt for the self-assessment")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.quitting || cmd == nil {
		t.Error("q should quit")
	}
}

func TestToggleAndDelete(t *testing.T) {
	m, tr, _ := setupTestModel(t)
	out, err := tr.CreateHabit(models.HabitInput{Title: "Meditate", Category: models.CategoryMindfulness, Goal: 30})
	if err != nil {
		t.Fatal(err)
	}
	m.refresh()

	m, _ = update(t, m, habits.ToggleHabitMsg{ID: out.Habit.ID})
	h, _ := tr.Habit(out.Habit.ID)
	if !h.Completed || h.Streak != 1 {
		t.Errorf("habit not toggled: %+v", h)
	}
	if !strings.Contains(m.View(), "1/1 done") {
		t.Error("today view should show 1/1 done")
	}

	m, _ = update(t, m, habits.DeleteHabitMsg{ID: out.Habit.ID})
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %v, want StateConfirmDelete", m.state)
	}
	if !strings.Contains(m.View(), "Meditate") {
		t.Error("confirmation should name the habit")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.state != StateToday || len(tr.Habits("")) != 1 {
		t.Error("cancel should keep the habit")
	}

	m, _ = update(t, m, habits.DeleteHabitMsg{ID: out.Habit.ID})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if len(tr.Habits("")) != 0 {
		t.Error("confirm should delete the habit")
	}
	if len(tr.Profile().Badges) == 0 {
		t.Error("badges must survive habit deletion")
	}
}

func TestAdoptRecommendation(t *testing.T) {
	m, tr, _ := setupTestModel(t)
	stress := 9
	tr.SubmitAssessment(models.Assessment{StressLevel: &stress})
	m.refresh()

	r, ok := m.recsModel.Selected()
	if !ok {
		t.Fatal("expected a recommendation")
	}
	m, _ = update(t, m, recommendations.AdoptMsg{ID: r.ID})
	if len(tr.Habits("")) != 1 {
		t.Fatal("adopting should create a habit")
	}
	if !strings.Contains(m.status, "unlocked") {
		t.Errorf("status should announce the first badge, got %q", m.status)
	}

	m, _ = update(t, m, recommendations.AdoptMsg{ID: "missing"})
	if !strings.HasPrefix(m.status, "⚠") {
		t.Errorf("unknown id should surface an error, got %q", m.status)
	}
}

func TestFormsOpenAndAbort(t *testing.T) {
	m, _, _ := setupTestModel(t)

	m, _ = update(t, m, habits.AddHabitMsg{})
	if m.state != StateAddHabit || m.form == nil {
		t.Fatalf("state = %v, want StateAddHabit", m.state)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateToday {
		t.Errorf("esc should return to the previous tab, got %v", m.state)
	}

	m.state = StateIdeas
	m, _ = update(t, m, recommendations.AssessMsg{})
	if m.state != StateAssess {
		t.Fatalf("state = %v, want StateAssess", m.state)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateIdeas {
		t.Errorf("esc should return to ideas, got %v", m.state)
	}
}

func TestTickRollsOver(t *testing.T) {
	m, tr, clock := setupTestModel(t)
	out, _ := tr.CreateHabit(models.HabitInput{Title: "Read", Goal: 30})
	_, _ = tr.ToggleHabit(out.Habit.ID)
	m.refresh()

	clock.t = clock.t.Add(24 * time.Hour)
	m, cmd := update(t, m, tickMsg(clock.t))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.day != "2026-10-18" {
		t.Errorf("day = %q, want 2026-10-18", m.day)
	}
	h, _ := tr.Habit(out.Habit.ID)
	if h.Completed {
		t.Error("completed flag should reset on a new day")
	}
	if h.Streak != 1 {
		t.Errorf("streak = %d, want 1 (no decay)", h.Streak)
	}
	if !strings.Contains(m.View(), "0/1 done") {
		t.Error("today view should reset")
	}
}
