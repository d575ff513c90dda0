package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Dan9191/mfdash/internal/analytics"
	"github.com/Dan9191/mfdash/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// Dashboard names
const (
	DashboardAdmin = "admin"
	DashboardUser  = "user"
)

// ErrAlreadyInitialized is returned by a second Initialize call
var ErrAlreadyInitialized = errors.New("dashboard already initialized")

// Fetcher loads one resource collection from the backend
type Fetcher interface {
	Fetch(ctx context.Context, kind models.Kind, param string) (models.Collection, error)
}

// Dashboard holds the view state of one dashboard instance and is its only writer
type Dashboard struct {
	name    string
	fetcher Fetcher
	log     *logrus.Logger
	kinds   []models.Kind

	mu         sync.Mutex
	state      ViewState
	generation map[models.Kind]uint64
	subs       map[int]func(Event)
	nextSub    int
	seq        uint64

	// delivery runs events in the order their seq was taken
	deliverMu sync.Mutex
	deliverCV *sync.Cond
	delivered uint64
}

// NewAdminDashboard creates the microfinance admin dashboard
func NewAdminDashboard(fetcher Fetcher, log *logrus.Logger) *Dashboard {
	kinds := []models.Kind{
		models.KindLoans,
		models.KindSavings,
		models.KindTrainingEnrollments,
		models.KindTrainingPrograms,
	}
	return newDashboard(DashboardAdmin, "", kinds, models.AdminTabs, fetcher, log)
}

// NewUserDashboard creates the counseling dashboard for userID
func NewUserDashboard(fetcher Fetcher, userID string, log *logrus.Logger) (*Dashboard, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required for the user dashboard")
	}
	kinds := []models.Kind{
		models.KindSessions,
		models.KindAssessments,
		models.KindGoals,
		models.KindApplications,
		models.KindJobMatches,
		models.KindResources,
	}
	return newDashboard(DashboardUser, userID, kinds, models.UserTabs, fetcher, log), nil
}

func newDashboard(name, userID string, kinds []models.Kind, tabs []models.Tab, fetcher Fetcher, log *logrus.Logger) *Dashboard {
	d := &Dashboard{
		name:    name,
		fetcher: fetcher,
		log:     log,
		kinds:   kinds,
		state: ViewState{
			Dashboard:   name,
			UserID:      userID,
			Phase:       PhaseUninitialized,
			ActiveTab:   tabs[0],
			Tabs:        tabs,
			Actions:     make(map[string]bool),
			Collections: make(map[models.Kind]models.Collection),
			Stats:       models.Stats{},
		},
		generation: make(map[models.Kind]uint64),
		subs:       make(map[int]func(Event)),
	}
	d.deliverCV = sync.NewCond(&d.deliverMu)
	return d
}

// Kinds returns the collections this dashboard loads
func (d *Dashboard) Kinds() []models.Kind {
	return slices.Clone(d.kinds)
}

// State returns a snapshot of the view state
func (d *Dashboard) State() ViewState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.clone()
}

// Subscribe registers fn for every event. Events reach fn one at a time in
// the order the changes happened, so the last state delivered is the
// current one. fn must not call methods that change the dashboard.
// The returned func unsubscribes.
func (d *Dashboard) Subscribe(fn func(Event)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextSub
	d.nextSub++
	d.subs[id] = fn
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.subs, id)
	}
}

// Initialize loads every collection concurrently and waits for all of them.
// A failed fetch is logged and leaves its collection as it was; the phase
// becomes Ready once every fetch has settled. The returned error joins the
// individual failures.
func (d *Dashboard) Initialize(ctx context.Context) error {
	d.mu.Lock()
	if d.state.Phase != PhaseUninitialized {
		d.mu.Unlock()
		return ErrAlreadyInitialized
	}
	d.state.Phase = PhaseLoading
	d.state.Busy = true
	d.publishLocked()

	err := d.fetchAll(ctx)

	d.mu.Lock()
	d.state.Phase = PhaseReady
	d.state.Busy = false
	d.publishLocked()

	log := d.log.WithField("dashboard", d.name)
	if err != nil {
		log = log.WithError(err)
	}
	log.Info("Dashboard loaded")
	return err
}

// SelectTab switches the active tab. It does not fetch anything.
func (d *Dashboard) SelectTab(tab models.Tab) error {
	d.mu.Lock()
	if !slices.Contains(d.state.Tabs, tab) {
		d.mu.Unlock()
		return fmt.Errorf("unknown %s dashboard tab %q", d.name, tab)
	}
	d.state.ActiveTab = tab
	d.publishLocked()
	return nil
}

// Refresh re-fetches one collection and replaces it along with its stats
func (d *Dashboard) Refresh(ctx context.Context, kind models.Kind) error {
	if !slices.Contains(d.kinds, kind) {
		return fmt.Errorf("%s dashboard does not load %q", d.name, kind)
	}
	return d.refresh(ctx, kind)
}

// RefreshAll re-fetches every collection concurrently
func (d *Dashboard) RefreshAll(ctx context.Context) error {
	return d.fetchAll(ctx)
}

// fetchAll refreshes every kind at once and waits for all of them to
// settle. A failure does not cancel the others; the result joins every
// failure.
func (d *Dashboard) fetchAll(ctx context.Context) error {
	p := pool.New().WithErrors()
	for _, kind := range d.kinds {
		p.Go(func() error {
			return d.refresh(ctx, kind)
		})
	}
	return p.Wait()
}

// refresh fetches kind and applies the result unless a newer fetch of the
// same kind started meanwhile. A superseded fetch reports nothing, whether
// it succeeded or failed.
func (d *Dashboard) refresh(ctx context.Context, kind models.Kind) error {
	d.mu.Lock()
	d.generation[kind]++
	gen := d.generation[kind]
	userID := d.state.UserID
	d.mu.Unlock()

	coll, err := d.fetcher.Fetch(ctx, kind, userID)

	d.mu.Lock()
	if d.generation[kind] != gen {
		d.mu.Unlock()
		d.log.WithFields(logrus.Fields{"kind": kind}).Debug("Discarding stale response")
		return nil
	}
	if err != nil {
		d.mu.Unlock()
		d.log.WithFields(logrus.Fields{
			"kind":  kind,
			"error": err,
		}).Error("Failed to fetch collection")
		return fmt.Errorf("failed to fetch %s: %w", kind, err)
	}
	if coll == nil {
		coll = models.Collection{}
	}
	d.state.Collections[kind] = coll
	analytics.Merge(d.state.Stats, analytics.Recompute(kind, coll))
	d.publishLocked()
	return nil
}

// BeginAction marks the named action in flight. It returns false when the
// action is already running.
func (d *Dashboard) BeginAction(name string) bool {
	d.mu.Lock()
	if d.state.Actions[name] {
		d.mu.Unlock()
		return false
	}
	d.state.Actions[name] = true
	d.publishLocked()
	return true
}

// EndAction clears the in-flight flag of the named action
func (d *Dashboard) EndAction(name string) {
	d.mu.Lock()
	delete(d.state.Actions, name)
	d.publishLocked()
}

// Notify delivers a notice to subscribers
func (d *Dashboard) Notify(notice models.Notice) {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	subs := d.subscribersLocked()
	d.mu.Unlock()
	d.deliver(seq, subs, Event{Type: EventNotice, Notice: notice})
}

// publishLocked snapshots the state, releases d.mu and calls subscribers.
// d.mu must be held on entry.
func (d *Dashboard) publishLocked() {
	d.state.Version++
	d.seq++
	seq := d.seq
	snapshot := d.state.clone()
	subs := d.subscribersLocked()
	d.mu.Unlock()
	d.deliver(seq, subs, Event{Type: EventStateChanged, State: snapshot})
}

// deliver waits until every event numbered below seq was delivered, then
// hands ev to subs
func (d *Dashboard) deliver(seq uint64, subs []func(Event), ev Event) {
	d.deliverMu.Lock()
	for d.delivered != seq-1 {
		d.deliverCV.Wait()
	}
	d.deliverMu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}

	d.deliverMu.Lock()
	d.delivered = seq
	d.deliverCV.Broadcast()
	d.deliverMu.Unlock()
}

func (d *Dashboard) subscribersLocked() []func(Event) {
	subs := make([]func(Event), 0, len(d.subs))
	for _, fn := range d.subs {
		subs = append(subs, fn)
	}
	return subs
}
