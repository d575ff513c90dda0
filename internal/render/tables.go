package render

import (
	"fmt"
	"strings"

	"github.com/Dan9191/mfdash/internal/models"
	"github.com/Dan9191/mfdash/internal/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var statusColors = map[string]lipgloss.Color{
	models.StatusPending:   "#D97706",
	models.StatusApproved:  "#16A34A",
	models.StatusAccepted:  "#16A34A",
	models.StatusCompleted: "#16A34A",
	models.StatusRejected:  "#DC2626",
	models.StatusCancelled: "#DC2626",
	models.StatusEnrolled:  "#2563EB",
	models.StatusScheduled: "#2563EB",
}

// column picks the first non-empty field of a record
type column struct {
	title  string
	fields []string
}

func col(title string, fields ...string) column {
	return column{title: title, fields: fields}
}

func statusCell(status string) string {
	if status == "" {
		return "-"
	}
	c, ok := statusColors[status]
	if !ok {
		return status
	}
	return lipgloss.NewStyle().Foreground(c).Render(status)
}

func cell(r models.Record, c column) string {
	for _, f := range c.fields {
		if v := r.String(f); v != "" {
			if f == "status" {
				return statusCell(v)
			}
			return v
		}
	}
	return "-"
}

func recordTable(b *strings.Builder, heading string, coll models.Collection, cols ...column) {
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")
	if len(coll) == 0 {
		b.WriteString(labelStyle.Render("Nothing here yet."))
		b.WriteString("\n")
		return
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.title
	}
	t := table.New().Border(lipgloss.NormalBorder()).Headers(headers...)
	for _, r := range coll {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = cell(r, c)
		}
		t.Row(row...)
	}
	b.WriteString(t.String())
	b.WriteString("\n")
}

func adminOverview(b *strings.Builder, st service.ViewState) {
	cards(b,
		card("Total loans", count(st.Stats[models.StatTotalLoans])),
		card("Pending", count(st.Stats[models.StatPendingLoans])),
		card("Approved", count(st.Stats[models.StatApprovedLoans])),
		card("Savings", money(st.Stats[models.StatTotalSavings])),
		card("Trainings completed", count(st.Stats[models.StatCompletedTrainings])),
	)
}

func loansView(b *strings.Builder, st service.ViewState) {
	recordTable(b, "Loans", st.Collection(models.KindLoans),
		col("ID", "id"),
		col("Borrower", "user_name", "borrower_name", "user_id"),
		col("Amount", "amount"),
		col("Purpose", "purpose"),
		col("Term", "term_months"),
		col("Status", "status"),
	)
}

func savingsView(b *strings.Builder, st service.ViewState) {
	cards(b, card("Total savings", money(st.Stats[models.StatTotalSavings])))
	recordTable(b, "Savings accounts", st.Collection(models.KindSavings),
		col("ID", "id"),
		col("Holder", "user_name", "user_id"),
		col("Type", "account_type"),
		col("Balance", "balance"),
		col("Interest", "interest_rate"),
	)
}

func trainingsView(b *strings.Builder, st service.ViewState) {
	recordTable(b, "Programs", st.Collection(models.KindTrainingPrograms),
		col("ID", "id"),
		col("Title", "title", "name"),
		col("Duration", "duration"),
		col("Category", "category"),
	)
	b.WriteString("\n")
	recordTable(b, "Enrollments", st.Collection(models.KindTrainingEnrollments),
		col("ID", "id"),
		col("Program", "program_title", "program_id"),
		col("Participant", "user_name", "user_id"),
		col("Progress", "progress"),
		col("Status", "status"),
	)
}

func userOverview(b *strings.Builder, st service.ViewState) {
	cards(b,
		card("Sessions", fmt.Sprint(len(st.Collection(models.KindSessions)))),
		card("Assessments", fmt.Sprint(len(st.Collection(models.KindAssessments)))),
		card("Goals", fmt.Sprint(len(st.Collection(models.KindGoals)))),
		card("Applications", fmt.Sprint(len(st.Collection(models.KindApplications)))),
		card("Job matches", fmt.Sprint(len(st.Collection(models.KindJobMatches)))),
	)
}

func sessionsView(b *strings.Builder, st service.ViewState) {
	recordTable(b, "Counseling sessions", st.Collection(models.KindSessions),
		col("ID", "id"),
		col("Counselor", "counselor_name", "counselor_id"),
		col("Type", "session_type"),
		col("Date", "scheduled_date", "date"),
		col("Status", "status"),
	)
}

func assessmentsView(b *strings.Builder, st service.ViewState) {
	recordTable(b, "Assessments", st.Collection(models.KindAssessments),
		col("ID", "id"),
		col("Type", "assessment_type", "type"),
		col("Score", "score"),
		col("Completed", "completed_at", "created_at"),
	)
}

func goalsView(b *strings.Builder, st service.ViewState) {
	recordTable(b, "Career goals", st.Collection(models.KindGoals),
		col("ID", "id"),
		col("Goal", "title", "description"),
		col("Target", "target_date"),
		col("Status", "status"),
	)
}

func jobsView(b *strings.Builder, st service.ViewState) {
	if st.ActionBusy(models.BusyMatchGeneration) {
		b.WriteString(labelStyle.Render("Generating matches..."))
		b.WriteString("\n")
	}
	recordTable(b, "Job matches", st.Collection(models.KindJobMatches),
		col("Job", "job_title", "title", "job_id"),
		col("Company", "company"),
		col("Score", "match_score", "score"),
	)
	b.WriteString("\n")
	recordTable(b, "Applications", st.Collection(models.KindApplications),
		col("ID", "id"),
		col("Job", "job_title", "job_id"),
		col("Applied", "applied_at", "created_at"),
		col("Status", "status"),
	)
}

func resourcesView(b *strings.Builder, st service.ViewState) {
	recordTable(b, "Resources", st.Collection(models.KindResources),
		col("Title", "title"),
		col("Category", "category", "resource_type"),
		col("Link", "url"),
	)
}
