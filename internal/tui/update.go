package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/tui/components/recommendations"
	"github.com/julianstephens/habitual/internal/tui/forms"
)

type tickMsg time.Time

type notifiedMsg struct {
	err error
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitsModel.SetSize(msg.Width-4, msg.Height-8)
		m.recsModel.SetSize(msg.Width-4, msg.Height-10)
		m.dayBar.Width = min(msg.Width-8, 60)
		m.levelBar.Width = min(msg.Width-8, 60)
		return m, nil

	case tickMsg:
		if m.tracker.Today() != m.day {
			m.report(m.tracker.Rollover())
			m.refresh()
		}
		return m, tick()

	case notifiedMsg:
		if msg.err != nil {
			logger.Warn("failed to send badge notification", "error", msg.err)
		}
		return m, nil
	}

	switch m.state {
	case StateAddHabit, StateEditHabit:
		return m.updateHabitForm(msg)
	case StateAssess:
		return m.updateAssessmentForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if handled, cmd := m.handleComponentMsg(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.habitsModel.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case StateIdeas:
		m.recsModel, cmd = m.recsModel.Update(msg)
	}
	return m, cmd
}

// report shows the outcome of a command in the status line and forwards the
// primary badge to the webhook.
func (m *Model) report(out tracker.Outcome) tea.Cmd {
	var parts []string
	for _, b := range out.NewBadges {
		parts = append(parts, fmt.Sprintf("🎉 %s %s unlocked!", b.Icon, b.Name))
	}
	if out.SaveErr != nil {
		parts = append(parts, "⚠ changes could not be saved: "+out.SaveErr.Error())
	}
	m.status = strings.Join(parts, "  ")

	if out.PrimaryBadge == nil || !m.notifier.Enabled() {
		return nil
	}
	n, text := m.notifier, notifier.BadgeText(*out.PrimaryBadge)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.NotifyTimeout)
		defer cancel()
		return notifiedMsg{err: n.Notify(ctx, text)}
	}
}

func (m *Model) fail(err error) {
	m.status = "⚠ " + err.Error()
}

func (m *Model) handleComponentMsg(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = forms.HabitFormFrom(models.HabitInput{})
		m.editingHabitID = ""
		m.form = forms.NewHabitForm(m.habitForm)
		m.previousState, m.state = m.state, StateAddHabit
		return true, m.form.Init()

	case habits.EditHabitMsg:
		h, err := m.tracker.Habit(msg.ID)
		if err != nil {
			m.fail(err)
			return true, nil
		}
		m.habitForm = forms.HabitFormFrom(models.InputOf(h))
		m.editingHabitID = h.ID
		m.form = forms.NewHabitForm(m.habitForm)
		m.previousState, m.state = m.state, StateEditHabit
		return true, m.form.Init()

	case habits.ToggleHabitMsg:
		out, err := m.tracker.ToggleHabit(msg.ID)
		if err != nil {
			m.fail(err)
			return true, nil
		}
		cmd := m.report(out)
		m.refresh()
		return true, cmd

	case habits.DeleteHabitMsg:
		m.habitToDelete = msg.ID
		m.previousState, m.state = m.state, StateConfirmDelete
		return true, nil

	case recommendations.AdoptMsg:
		out, err := m.tracker.AdoptRecommendation(msg.ID)
		if err != nil {
			m.fail(err)
			return true, nil
		}
		cmd := m.report(out)
		if m.status == "" {
			m.status = fmt.Sprintf("Now tracking %q", out.Habit.Title)
		}
		m.refresh()
		return true, cmd

	case recommendations.AssessMsg:
		m.assessmentForm = forms.AssessmentFormFrom(m.tracker.Assessment())
		m.form = forms.NewAssessmentForm(m.assessmentForm)
		m.previousState, m.state = m.state, StateAssess
		return true, m.form.Init()
	}
	return false, nil
}

// updateForm feeds msg to the active form and reports its state. Esc aborts.
func (m *Model) updateForm(msg tea.Msg) (huh.FormState, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return huh.StateAborted, nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return m.form.State, cmd
}

func (m Model) updateHabitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		in, err := m.habitForm.Input()
		if err != nil {
			m.fail(err)
			m.state = m.previousState
			return m, nil
		}
		var out tracker.Outcome
		if m.state == StateEditHabit {
			out, err = m.tracker.UpdateHabit(m.editingHabitID, in)
		} else {
			out, err = m.tracker.CreateHabit(in)
		}
		m.state = m.previousState
		if err != nil {
			m.fail(err)
			return m, nil
		}
		cmd = m.report(out)
		m.refresh()
		return m, cmd
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) updateAssessmentForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		out := m.tracker.SubmitAssessment(m.assessmentForm.Assessment())
		m.state = StateIdeas
		cmd = m.report(out)
		if m.status == "" {
			m.status = fmt.Sprintf("%d recommendation(s) ready", len(m.tracker.Recommendations()))
		}
		m.refresh()
		return m, cmd
	case huh.StateAborted:
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		out, err := m.tracker.DeleteHabit(m.habitToDelete)
		m.habitToDelete = ""
		m.state = m.previousState
		if err != nil {
			m.fail(err)
			return m, nil
		}
		cmd := m.report(out)
		m.refresh()
		return m, cmd
	case key.Matches(keyMsg, m.keys.Cancel):
		m.habitToDelete = ""
		m.state = m.previousState
	}
	return m, nil
}
