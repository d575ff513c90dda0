package platform_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dan9191/mfdash/internal/config"
	"github.com/Dan9191/mfdash/internal/integrations/platform"
	"github.com/Dan9191/mfdash/internal/models"
	"github.com/Dan9191/mfdash/internal/testutil/fakeapi"
	"github.com/sirupsen/logrus/hooks/test"
)

func newClient(t *testing.T, baseURL string) *platform.Client {
	t.Helper()
	logger, _ := test.NewNullLogger()
	cfg := &config.Config{APIURL: baseURL, APIToken: "tok", RequestTimeout: 5 * time.Second}
	return platform.NewClient(cfg, logger)
}

func TestFetchLoans(t *testing.T) {
	srv, store := fakeapi.NewServer()
	defer srv.Close()
	store.Seed(models.KindLoans,
		models.Record{"id": 1, "status": "pending", "amount": 1000},
		models.Record{"id": 2, "status": "approved", "amount": 500},
	)

	coll, err := newClient(t, srv.URL).Fetch(context.Background(), models.KindLoans, "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(coll) != 2 {
		t.Fatalf("got %d loans, want 2", len(coll))
	}
	if coll[0].ID() != "1" || coll[0].Status() != "pending" {
		t.Errorf("first loan = %v", coll[0])
	}
	if n, ok := coll[0].Number("amount"); !ok || n.String() != "1000" {
		t.Errorf("amount = %v, %v", n, ok)
	}
}

func TestFetchEmptyCollection(t *testing.T) {
	srv, _ := fakeapi.NewServer()
	defer srv.Close()

	coll, err := newClient(t, srv.URL).Fetch(context.Background(), models.KindSavings, "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if coll == nil || len(coll) != 0 {
		t.Errorf("want empty non-nil collection, got %#v", coll)
	}
}

func TestFetchPerUserRequiresUserID(t *testing.T) {
	c := newClient(t, "http://unused.invalid")
	if _, err := c.Fetch(context.Background(), models.KindGoals, ""); err == nil {
		t.Fatal("expected error for missing user id")
	}
}

func TestFetchPerUser(t *testing.T) {
	srv, store := fakeapi.NewServer()
	defer srv.Close()
	store.SeedUser("u1", models.KindGoals, models.Record{"id": "g1", "status": "in_progress"})
	store.SeedUser("u2", models.KindGoals, models.Record{"id": "g2"})

	coll, err := newClient(t, srv.URL).Fetch(context.Background(), models.KindGoals, "u1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(coll) != 1 || coll[0].ID() != "g1" {
		t.Errorf("got %v, want only g1", coll)
	}
}

func TestFetchUnknownKind(t *testing.T) {
	c := newClient(t, "http://unused.invalid")
	if _, err := c.Fetch(context.Background(), models.Kind("bogus"), ""); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantMessage  string
		unstructured bool
	}{
		{"message field", `{"message":"loan locked"}`, "loan locked", false},
		{"error field", `{"error":"forbidden"}`, "forbidden", false},
		{"plain text", `boom`, "", true},
		{"empty object", `{}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, store := fakeapi.NewServer()
			defer srv.Close()
			store.FailNext(fakeapi.ListRoute(models.KindLoans), http.StatusInternalServerError, tt.body)

			_, err := newClient(t, srv.URL).Fetch(context.Background(), models.KindLoans, "")
			var apiErr *platform.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("want *APIError, got %T %v", err, err)
			}
			if apiErr.StatusCode != http.StatusInternalServerError {
				t.Errorf("status = %d", apiErr.StatusCode)
			}
			if apiErr.Message != tt.wantMessage || apiErr.Unstructured != tt.unstructured {
				t.Errorf("got message %q unstructured %v", apiErr.Message, apiErr.Unstructured)
			}
		})
	}
}

func TestMalformedResponse(t *testing.T) {
	srv, store := fakeapi.NewServer()
	defer srv.Close()
	store.FailNext(fakeapi.ListRoute(models.KindResources), http.StatusOK, `[{"id":1},`)

	_, err := newClient(t, srv.URL).Fetch(context.Background(), models.KindResources, "")
	var mErr *platform.MalformedResponseError
	if !errors.As(err, &mErr) {
		t.Fatalf("want *MalformedResponseError, got %T %v", err, err)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newClient(t, url).Fetch(context.Background(), models.KindLoans, "")
	var nErr *platform.NetworkError
	if !errors.As(err, &nErr) {
		t.Fatalf("want *NetworkError, got %T %v", err, err)
	}
}

func TestSendsAuthAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	msg, err := newClient(t, srv.URL).SetLoanStatus(context.Background(), "req-1", "5", "approved")
	if err != nil {
		t.Fatalf("SetLoanStatus: %v", err)
	}
	if msg != "ok" {
		t.Errorf("message = %q", msg)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReqID != "req-1" {
		t.Errorf("X-Request-ID = %q", gotReqID)
	}
}

func TestApplyConflict(t *testing.T) {
	srv, _ := fakeapi.NewServer()
	defer srv.Close()
	c := newClient(t, srv.URL)

	if _, err := c.ApplyForJob(context.Background(), "r1", "u1", "j1"); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	_, err := c.ApplyForJob(context.Background(), "r2", "u1", "j1")
	var apiErr *platform.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("want 409 APIError, got %v", err)
	}
	if apiErr.UserMessage() != fakeapi.AlreadyAppliedMessage {
		t.Errorf("UserMessage = %q", apiErr.UserMessage())
	}
}

func TestGenerateMatches(t *testing.T) {
	srv, store := fakeapi.NewServer()
	defer srv.Close()
	store.SetJobs("j1", "j2", "j3")

	res, err := newClient(t, srv.URL).GenerateMatches(context.Background(), "r1", "u1")
	if err != nil {
		t.Fatalf("GenerateMatches: %v", err)
	}
	if res.MatchesCount != 3 {
		t.Errorf("MatchesCount = %d, want 3", res.MatchesCount)
	}
}

func TestPathFor(t *testing.T) {
	got, err := platform.PathFor(models.KindSessions, "a b")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/counselor/sessions/user/a%20b" {
		t.Errorf("path = %q", got)
	}
}
