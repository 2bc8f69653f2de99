package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/tui/components/recommendations"
	"github.com/julianstephens/habitual/internal/tui/forms"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateProgress
	StateIdeas
	StateAddHabit
	StateEditHabit
	StateAssess
	StateConfirmDelete
)

// tabCount is the number of tab states at the start of SessionState.
const tabCount = 3

var tabTitles = []string{"Today", "Progress", "Ideas"}

type Model struct {
	tracker  *tracker.Tracker
	notifier *notifier.Notifier

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	habitsModel habits.Model
	recsModel   recommendations.Model
	dayBar      progress.Model
	levelBar    progress.Model

	form           *huh.Form
	habitForm      *forms.HabitFormModel
	assessmentForm *forms.AssessmentFormModel
	editingHabitID string
	habitToDelete  string

	day      string
	status   string
	quitting bool
	width    int
	height   int
}

func NewModel(t *tracker.Tracker, n *notifier.Notifier) Model {
	m := Model{
		tracker:     t,
		notifier:    n,
		state:       StateToday,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		habitsModel: habits.New(nil, "", 0, 0),
		recsModel:   recommendations.New(nil, false, 0, 0),
		dayBar:      progress.New(progress.WithDefaultGradient()),
		levelBar:    progress.New(progress.WithSolidFill("220")),
	}
	m.refresh()
	return m
}

// refresh copies the tracker's current state into the components.
func (m *Model) refresh() {
	m.day = m.tracker.Today()
	m.habitsModel.SetHabits(m.tracker.Habits(""), m.day)
	m.recsModel.SetRecommendations(m.tracker.Recommendations(), !m.tracker.Assessment().IsZero())
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateToday:
		k := habits.DefaultKeyMap()
		actions = []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete}
	case StateIdeas:
		k := recommendations.DefaultKeyMap()
		actions = []key.Binding{k.Adopt, k.Assess}
	case StateConfirmDelete:
		actions = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Run starts the dashboard and blocks until the user quits.
func Run(t *tracker.Tracker, n *notifier.Notifier) error {
	p := tea.NewProgram(NewModel(t, n), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
