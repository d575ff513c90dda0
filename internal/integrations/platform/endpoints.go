package platform

import (
	"fmt"
	"net/url"

	"github.com/Dan9191/mfdash/internal/models"
)

type endpoint struct {
	path    string
	perUser bool
}

var endpoints = map[models.Kind]endpoint{
	models.KindLoans:               {path: "/microfinance/loans"},
	models.KindSavings:             {path: "/microfinance/savings"},
	models.KindTrainingEnrollments: {path: "/microfinance/trainings/enrollments"},
	models.KindTrainingPrograms:    {path: "/microfinance/training/programs"},
	models.KindSessions:            {path: "/counselor/sessions/user/", perUser: true},
	models.KindAssessments:         {path: "/counselor/assessments/user/", perUser: true},
	models.KindGoals:               {path: "/counselor/goals/user/", perUser: true},
	models.KindApplications:        {path: "/counselor/applications/user/", perUser: true},
	models.KindJobMatches:          {path: "/counselor/matches/user/", perUser: true},
	models.KindResources:           {path: "/counselor/resources"},
}

// PathFor returns the list path for kind. param is the user id for
// per-user kinds and is ignored otherwise.
func PathFor(kind models.Kind, param string) (string, error) {
	ep, ok := endpoints[kind]
	if !ok {
		return "", fmt.Errorf("unknown resource kind %q", kind)
	}
	if !ep.perUser {
		return ep.path, nil
	}
	if param == "" {
		return "", fmt.Errorf("resource kind %q requires a user id", kind)
	}
	return ep.path + url.PathEscape(param), nil
}
