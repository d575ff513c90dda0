package models

// Tab identifies a dashboard section
type Tab string

// Admin dashboard tabs
const (
	TabAdminOverview  Tab = "overview"
	TabAdminLoans     Tab = "loans"
	TabAdminSavings   Tab = "savings"
	TabAdminTrainings Tab = "trainings"
)

// User dashboard tabs
const (
	TabUserOverview    Tab = "overview"
	TabUserSessions    Tab = "sessions"
	TabUserAssessments Tab = "assessments"
	TabUserGoals       Tab = "goals"
	TabUserJobs        Tab = "jobs"
	TabUserResources   Tab = "resources"
)

// AdminTabs lists the admin dashboard tabs in display order
var AdminTabs = []Tab{TabAdminOverview, TabAdminLoans, TabAdminSavings, TabAdminTrainings}

// UserTabs lists the user dashboard tabs in display order
var UserTabs = []Tab{TabUserOverview, TabUserSessions, TabUserAssessments, TabUserGoals, TabUserJobs, TabUserResources}
