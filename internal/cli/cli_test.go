package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Dan9191/mfdash/internal/models"
	"github.com/Dan9191/mfdash/internal/testutil/fakeapi"
	"github.com/sirupsen/logrus/hooks/test"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	root := NewRootCmd(logger)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func seeded(t *testing.T) (string, *fakeapi.Store) {
	t.Helper()
	srv, store := fakeapi.NewServer()
	t.Cleanup(srv.Close)
	store.Seed(models.KindLoans,
		models.Record{"id": 1, "user_name": "Amina", "status": "pending", "amount": 1000},
		models.Record{"id": 2, "user_name": "Kofi", "status": "approved", "amount": 500},
	)
	store.Seed(models.KindSavings, models.Record{"id": 1, "balance": 200}, models.Record{"id": 2, "balance": 300})
	store.SeedUser("u1", models.KindGoals, models.Record{"id": "g1", "title": "Become a loan officer", "status": "in_progress"})
	store.SetJobs("j1", "j2", "j3")
	return srv.URL, store
}

func TestAdminOverview(t *testing.T) {
	url, _ := seeded(t)
	out, _, err := run(t, "admin", "--api-url", url, "--config", "")
	if err != nil {
		t.Fatalf("admin: %v", err)
	}
	if !strings.Contains(out, "500.00") || !strings.Contains(out, "Total loans") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestAdminBadTab(t *testing.T) {
	url, _ := seeded(t)
	if _, _, err := run(t, "admin", "--api-url", url, "--config", "", "--tab", "goals"); err == nil {
		t.Fatal("expected error for user tab on admin dashboard")
	}
}

func TestUserGoals(t *testing.T) {
	url, _ := seeded(t)
	out, _, err := run(t, "user", "--api-url", url, "--config", "", "--user", "u1", "--tab", "goals")
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	if !strings.Contains(out, "Become a loan officer") {
		t.Errorf("goal missing:\n%s", out)
	}
}

func TestLoanApprove(t *testing.T) {
	url, store := seeded(t)
	out, notices, err := run(t, "loan", "approve", "1", "--api-url", url, "--config", "")
	if err != nil {
		t.Fatalf("loan approve: %v", err)
	}
	if strings.Contains(out, "pending") {
		t.Errorf("loan still pending after approve:\n%s", out)
	}
	if !strings.Contains(notices, "Loan status updated") {
		t.Errorf("no success notice: %q", notices)
	}
	if store.Hits(fakeapi.RouteLoanStatus) != 1 {
		t.Errorf("status route hit %d times", store.Hits(fakeapi.RouteLoanStatus))
	}
}

func TestJobsApplyConflict(t *testing.T) {
	url, _ := seeded(t)
	args := []string{"jobs", "apply", "j1", "--api-url", url, "--config", "", "--user", "u1"}
	if _, _, err := run(t, args...); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	_, notices, err := run(t, args...)
	if err == nil {
		t.Fatal("second apply should fail")
	}
	if !strings.Contains(notices, "already applied") {
		t.Errorf("conflict notice missing: %q", notices)
	}
}

func TestJobsMatch(t *testing.T) {
	url, _ := seeded(t)
	out, notices, err := run(t, "jobs", "match", "--api-url", url, "--config", "", "--user", "u1")
	if err != nil {
		t.Fatalf("jobs match: %v", err)
	}
	if !strings.Contains(notices, "Found 3 job matches") {
		t.Errorf("notice = %q", notices)
	}
	if !strings.Contains(out, "Job matches") {
		t.Errorf("jobs tab not shown:\n%s", out)
	}
}

func TestUserRequiresIdentity(t *testing.T) {
	url, _ := seeded(t)
	t.Setenv("USER_ID", "")
	t.Setenv("API_TOKEN", "")
	if _, _, err := run(t, "user", "--api-url", url, "--config", ""); err == nil {
		t.Fatal("expected error without a user id")
	}
}
