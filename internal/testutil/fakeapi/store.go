package fakeapi

import (
	"errors"
	"strconv"
	"sync"

	"github.com/Dan9191/mfdash/internal/models"
)

// AlreadyAppliedMessage is the body text of a duplicate application reply
const AlreadyAppliedMessage = "You have already applied for this job"

var (
	// ErrLoanNotFound is returned for a status update of an unknown loan
	ErrLoanNotFound = errors.New("loan not found")
	// ErrAlreadyApplied is returned for a second application to the same job
	ErrAlreadyApplied = errors.New("already applied for this job")
)

// Store is the in-memory data behind the fake backend
type Store struct {
	mu       sync.Mutex
	shared   map[models.Kind]models.Collection
	perUser  map[string]map[models.Kind]models.Collection
	jobs     []string
	nextID   int
	failures map[string]failure
	hits     map[string]int
}

type failure struct {
	status int
	body   string
}

// NewStore initializes an empty store
func NewStore() *Store {
	return &Store{
		shared:   make(map[models.Kind]models.Collection),
		perUser:  make(map[string]map[models.Kind]models.Collection),
		nextID:   1000,
		failures: make(map[string]failure),
		hits:     make(map[string]int),
	}
}

// Seed replaces a shared collection such as loans or savings
func (s *Store) Seed(kind models.Kind, records ...models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shared[kind] = copyCollection(records)
}

// SeedUser replaces a per-user collection such as sessions or goals
func (s *Store) SeedUser(userID string, kind models.Kind, records ...models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.perUser[userID] == nil {
		s.perUser[userID] = make(map[models.Kind]models.Collection)
	}
	s.perUser[userID][kind] = copyCollection(records)
}

// SetJobs sets the job ids match generation pairs a user with
func (s *Store) SetJobs(jobIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append([]string(nil), jobIDs...)
}

// FailNext makes the next request to route answer with status and body
func (s *Store) FailNext(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, body: body}
}

// Hits returns how many requests route has served, failures included
func (s *Store) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// record counts a hit and pops a pending failure for route
func (s *Store) record(route string) (failure, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits[route]++
	f, ok := s.failures[route]
	if ok {
		delete(s.failures, route)
	}
	return f, ok
}

func (s *Store) list(kind models.Kind, userID string) models.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID == "" {
		return copyCollection(s.shared[kind])
	}
	return copyCollection(s.perUser[userID][kind])
}

// updateLoanStatus sets the status of a loan by id
func (s *Store) updateLoanStatus(id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, loan := range s.shared[models.KindLoans] {
		if loan.ID() == id {
			loan["status"] = status
			return nil
		}
	}
	return ErrLoanNotFound
}

// apply records an application, refusing a second one for the same job
func (s *Store) apply(userID, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.perUser[userID] == nil {
		s.perUser[userID] = make(map[models.Kind]models.Collection)
	}
	for _, app := range s.perUser[userID][models.KindApplications] {
		if app.String("job_id") == jobID {
			return ErrAlreadyApplied
		}
	}
	s.nextID++
	s.perUser[userID][models.KindApplications] = append(s.perUser[userID][models.KindApplications], models.Record{
		"id":      strconv.Itoa(s.nextID),
		"user_id": userID,
		"job_id":  jobID,
		"status":  models.StatusPending,
	})
	return nil
}

// generateMatches replaces a user's matches with one per known job
func (s *Store) generateMatches(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.perUser[userID] == nil {
		s.perUser[userID] = make(map[models.Kind]models.Collection)
	}
	matches := make(models.Collection, 0, len(s.jobs))
	for i, job := range s.jobs {
		s.nextID++
		matches = append(matches, models.Record{
			"id":          strconv.Itoa(s.nextID),
			"job_id":      job,
			"match_score": 90 - i*5,
		})
	}
	s.perUser[userID][models.KindJobMatches] = matches
	return len(matches)
}

func copyCollection(in models.Collection) models.Collection {
	out := make(models.Collection, 0, len(in))
	for _, r := range in {
		c := make(models.Record, len(r))
		for k, v := range r {
			c[k] = v
		}
		out = append(out, c)
	}
	return out
}
