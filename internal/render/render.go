// Package render draws a dashboard snapshot for the terminal. Each tab has
// its own view; nothing here reads or writes dashboard state.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Dan9191/mfdash/internal/models"
	"github.com/Dan9191/mfdash/internal/service"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	noticeStyles   = map[models.NoticeLevel]lipgloss.Style{
		models.NoticeInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A")),
		models.NoticeError: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#DC2626")),
	}
)

type view func(b *strings.Builder, st service.ViewState)

var adminViews = map[models.Tab]view{
	models.TabAdminOverview:  adminOverview,
	models.TabAdminLoans:     loansView,
	models.TabAdminSavings:   savingsView,
	models.TabAdminTrainings: trainingsView,
}

var userViews = map[models.Tab]view{
	models.TabUserOverview:    userOverview,
	models.TabUserSessions:    sessionsView,
	models.TabUserAssessments: assessmentsView,
	models.TabUserGoals:       goalsView,
	models.TabUserJobs:        jobsView,
	models.TabUserResources:   resourcesView,
}

// Render writes the active tab of st to w
func Render(w io.Writer, st service.ViewState) error {
	views := adminViews
	title := "Microfinance Admin"
	if st.Dashboard == service.DashboardUser {
		views = userViews
		title = "Career Counseling"
	}
	v, ok := views[st.ActiveTab]
	if !ok {
		return fmt.Errorf("no view for %s tab %q", st.Dashboard, st.ActiveTab)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	if st.Busy {
		b.WriteString(labelStyle.Render("  loading..."))
	}
	b.WriteString("\n")
	b.WriteString(tabBar(st))
	b.WriteString("\n\n")
	v(&b, st)

	_, err := io.WriteString(w, b.String())
	return err
}

// Notice writes a single notice line
func Notice(w io.Writer, n models.Notice) error {
	style, ok := noticeStyles[n.Level]
	if !ok {
		style = lipgloss.NewStyle()
	}
	_, err := fmt.Fprintln(w, style.Render(n.Message))
	return err
}

func tabBar(st service.ViewState) string {
	parts := make([]string, 0, len(st.Tabs))
	for _, t := range st.Tabs {
		if t == st.ActiveTab {
			parts = append(parts, activeTabStyle.Render(string(t)))
		} else {
			parts = append(parts, tabStyle.Render(string(t)))
		}
	}
	return strings.Join(parts, "  ")
}

func card(label, value string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + value)
}

func cards(b *strings.Builder, items ...string) {
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, items...))
	b.WriteString("\n")
}

func count(v float64) string {
	return fmt.Sprintf("%d", int64(v))
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
