package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/profile"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateProgress:
		content = m.viewProgress()
	case StateIdeas:
		content = docStyle.Render(m.recsModel.View())
	case StateAddHabit, StateEditHabit, StateAssess:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs(), content}
	if m.status != "" {
		parts = append(parts, badgeStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, mutedStyle.Render("  "+m.day))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	p := m.tracker.DayProgress()
	header := fmt.Sprintf("%s  %d/%d done", m.dayBar.ViewAs(float64(p.Percentage)/100), p.Completed, p.Total)
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.habitsModel.View()))
}

func (m Model) viewProgress() string {
	prof := m.tracker.Profile()
	stats := m.tracker.Stats()
	into, span := profile.LevelProgress(prof.XP)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  Level %d · %d XP\n", prof.Name, prof.Level, prof.XP)
	fmt.Fprintf(&b, "%s  %d/%d to next level\n", m.levelBar.ViewAs(float64(into)/float64(span)), into, span)

	b.WriteString(headingStyle.Render("This week") + "\n")
	for _, d := range m.tracker.WeekProgress() {
		mark := mutedStyle.Render("·")
		if d.Completed {
			mark = badgeStyle.Render("●")
		}
		fmt.Fprintf(&b, "%s %s %3d%%   ", d.Day, mark, d.Percentage)
	}
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Stats") + "\n")
	fmt.Fprintf(&b, "Consistency %d%% · Weekly growth %+d%% · Overall %d%%\n", stats.Consistency, stats.WeeklyGrowth, stats.Overall)
	fmt.Fprintf(&b, "Completion rate %d%% · Avg streak %d · Best streak %d · %d completions\n",
		stats.CompletionRate, stats.AverageStreak, stats.BestStreak, stats.TotalCompletions)

	b.WriteString(headingStyle.Render(fmt.Sprintf("Badges (%d)", len(prof.Badges))) + "\n")
	if len(prof.Badges) == 0 {
		b.WriteString(mutedStyle.Render("Complete habits to earn badges.") + "\n")
	}
	for _, badge := range prof.Badges {
		fmt.Fprintf(&b, "%s %s %s\n", badge.Icon, badgeStyle.Render(badge.Name), mutedStyle.Render(string(badge.Rarity)+" · "+badge.EarnedAt))
	}
	return docStyle.Render(b.String())
}

func (m Model) viewConfirmDelete() string {
	title := m.habitToDelete
	if h, err := m.tracker.Habit(m.habitToDelete); err == nil {
		title = h.Title
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q?", title)),
			warningStyle.Render("Its streak and history are removed. Badges stay."),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
