package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type EditHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type Item struct {
	Habit models.Habit
	Done  bool
}

func (i Item) Title() string {
	if i.Done {
		return "✓ " + i.Habit.Title
	}
	return "○ " + i.Habit.Title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s · %s · %d min · 🔥 %d (best %d)",
		i.Habit.Category, i.Habit.Difficulty, i.Habit.Goal, i.Habit.Streak, i.Habit.BestStreak)
	if i.Done {
		desc += " · done today"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Title }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "toggle done"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func items(habits []models.Habit, today string) []list.Item {
	out := make([]list.Item, len(habits))
	for i, h := range habits {
		out[i] = Item{Habit: h, Done: h.CompletedOn(today)}
	}
	return out
}

func New(habits []models.Habit, today string, width, height int) Model {
	l := list.New(items(habits, today), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func (m *Model) SetHabits(habits []models.Habit, today string) {
	m.list.SetItems(items(habits, today))
}

// Filtering reports whether the list is capturing keystrokes for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		selected, hasSelection := m.list.SelectedItem().(Item)
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle) && hasSelection:
			return m, func() tea.Msg { return ToggleHabitMsg{ID: selected.Habit.ID} }
		case key.Matches(msg, m.keys.Edit) && hasSelection:
			return m, func() tea.Msg { return EditHabitMsg{ID: selected.Habit.ID} }
		case key.Matches(msg, m.keys.Delete) && hasSelection:
			return m, func() tea.Msg { return DeleteHabitMsg{ID: selected.Habit.ID} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
