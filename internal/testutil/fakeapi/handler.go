// Package fakeapi is an in-memory implementation of the backend REST surface
// for tests. It keeps no business rules beyond what the dashboards observe.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/Dan9191/mfdash/internal/models"
	"github.com/gorilla/mux"
)

// Route names accepted by Store.FailNext and Store.Hits
const (
	RouteLoanStatus = "loans.status"
	RouteApply      = "applications.apply"
	RouteGenerate   = "matches.generate"
)

// ListRoute returns the route name of the list endpoint for kind
func ListRoute(kind models.Kind) string {
	return string(kind) + ".list"
}

// Handler serves the fake backend
type Handler struct {
	store *Store
}

// NewHandler creates a handler over store
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Router wires every backend route
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/microfinance/loans", h.list(models.KindLoans, false)).Methods("GET")
	r.HandleFunc("/microfinance/loans/{id}/status", h.SetLoanStatus).Methods("PUT")
	r.HandleFunc("/microfinance/savings", h.list(models.KindSavings, false)).Methods("GET")
	r.HandleFunc("/microfinance/trainings/enrollments", h.list(models.KindTrainingEnrollments, false)).Methods("GET")
	r.HandleFunc("/microfinance/training/programs", h.list(models.KindTrainingPrograms, false)).Methods("GET")
	r.HandleFunc("/counselor/sessions/user/{userId}", h.list(models.KindSessions, true)).Methods("GET")
	r.HandleFunc("/counselor/assessments/user/{userId}", h.list(models.KindAssessments, true)).Methods("GET")
	r.HandleFunc("/counselor/goals/user/{userId}", h.list(models.KindGoals, true)).Methods("GET")
	r.HandleFunc("/counselor/applications/user/{userId}", h.list(models.KindApplications, true)).Methods("GET")
	r.HandleFunc("/counselor/matches/user/{userId}", h.list(models.KindJobMatches, true)).Methods("GET")
	r.HandleFunc("/counselor/matches/generate/{userId}", h.GenerateMatches).Methods("POST")
	r.HandleFunc("/counselor/applications/apply", h.Apply).Methods("POST")
	r.HandleFunc("/counselor/resources", h.list(models.KindResources, false)).Methods("GET")
	return r
}

// NewServer starts an httptest server over a fresh store
func NewServer() (*httptest.Server, *Store) {
	store := NewStore()
	return httptest.NewServer(NewHandler(store).Router()), store
}

func (h *Handler) list(kind models.Kind, perUser bool) http.HandlerFunc {
	route := ListRoute(kind)
	return func(w http.ResponseWriter, r *http.Request) {
		if h.injected(w, route) {
			return
		}
		userID := ""
		if perUser {
			userID = mux.Vars(r)["userId"]
		}
		writeJSON(w, http.StatusOK, h.store.list(kind, userID))
	}
}

// SetLoanStatus handles PUT /microfinance/loans/{id}/status
func (h *Handler) SetLoanStatus(w http.ResponseWriter, r *http.Request) {
	if h.injected(w, RouteLoanStatus) {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}
	if !models.ValidLoanDecision(body.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid status"})
		return
	}
	if err := h.store.updateLoanStatus(mux.Vars(r)["id"], body.Status); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Loan not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Loan status updated"})
}

// Apply handles POST /counselor/applications/apply
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	if h.injected(w, RouteApply) {
		return
	}
	var body struct {
		UserID string `json:"user_id"`
		JobID  string `json:"job_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.UserID == "" || body.JobID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id and job_id are required"})
		return
	}
	if err := h.store.apply(body.UserID, body.JobID); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": AlreadyAppliedMessage})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Application submitted successfully"})
}

// GenerateMatches handles POST /counselor/matches/generate/{userId}
func (h *Handler) GenerateMatches(w http.ResponseWriter, r *http.Request) {
	if h.injected(w, RouteGenerate) {
		return
	}
	n := h.store.generateMatches(mux.Vars(r)["userId"])
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Job matches generated",
		"matches_count": n,
	})
}

// injected counts the hit and writes a queued failure, reporting whether it did
func (h *Handler) injected(w http.ResponseWriter, route string) bool {
	f, ok := h.store.record(route)
	if !ok {
		return false
	}
	w.WriteHeader(f.status)
	w.Write([]byte(f.body))
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
