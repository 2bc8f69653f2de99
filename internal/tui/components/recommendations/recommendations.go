package recommendations

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitual/internal/models"
)

type AdoptMsg struct {
	ID string
}

type AssessMsg struct{}

type Item struct {
	Rec models.Recommendation
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  [%s, %s]", i.Rec.Title, i.Rec.Category, i.Rec.EstimatedTime)
}

func (i Item) Description() string { return i.Rec.Reason }

func (i Item) FilterValue() string { return i.Rec.Title }

type KeyMap struct {
	Adopt  key.Binding
	Assess key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Adopt: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "adopt"),
		),
		Assess: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "self-assessment"),
		),
	}
}

type Model struct {
	list     list.Model
	keys     KeyMap
	assessed bool
}

func items(recs []models.Recommendation) []list.Item {
	out := make([]list.Item, len(recs))
	for i, r := range recs {
		out[i] = Item{Rec: r}
	}
	return out
}

func New(recs []models.Recommendation, assessed bool, width, height int) Model {
	l := list.New(items(recs), list.NewDefaultDelegate(), width, height)
	l.Title = "Ideas"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Adopt, keys.Assess}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys, assessed: assessed}
}

func (m *Model) SetRecommendations(recs []models.Recommendation, assessed bool) {
	m.assessed = assessed
	m.list.SetItems(items(recs))
}

// Selected returns the highlighted recommendation.
func (m Model) Selected() (models.Recommendation, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Rec, ok
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Assess):
			return m, func() tea.Msg { return AssessMsg{} }
		case key.Matches(msg, m.keys.Adopt):
			if r, ok := m.Selected(); ok {
				return m, func() tea.Msg { return AdoptMsg{ID: r.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		if !m.assessed {
			return "\n  Take the self-assessment to get habit ideas.\n  Press 's' to start."
		}
		return "\n  Nothing matches your answers yet.\n  Press 's' to update them."
	}
	var b strings.Builder
	b.WriteString(m.list.View())
	if r, ok := m.Selected(); ok && len(r.Benefits) > 0 {
		b.WriteString("\n  Benefits: " + strings.Join(r.Benefits, " · "))
	}
	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
