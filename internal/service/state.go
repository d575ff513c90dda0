package service

import (
	"github.com/Dan9191/mfdash/internal/models"
)

// Phase is the load phase of a dashboard
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseLoading
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// ViewState is everything a dashboard shows. Values handed out by
// Dashboard.State and events are copies; collections share their records,
// which are never modified in place.
type ViewState struct {
	// Version grows by one with every change
	Version     uint64
	Dashboard   string
	UserID      string
	Phase       Phase
	ActiveTab   models.Tab
	Tabs        []models.Tab
	Busy        bool
	Actions     map[string]bool
	Collections map[models.Kind]models.Collection
	Stats       models.Stats
}

// Collection returns the current records of kind, empty when never fetched
func (s ViewState) Collection(kind models.Kind) models.Collection {
	if c, ok := s.Collections[kind]; ok {
		return c
	}
	return models.Collection{}
}

// ActionBusy reports whether the named action is in flight
func (s ViewState) ActionBusy(name string) bool {
	return s.Actions[name]
}

func (s ViewState) clone() ViewState {
	out := s
	out.Tabs = append([]models.Tab(nil), s.Tabs...)
	out.Actions = make(map[string]bool, len(s.Actions))
	for k, v := range s.Actions {
		out.Actions[k] = v
	}
	out.Collections = make(map[models.Kind]models.Collection, len(s.Collections))
	for k, v := range s.Collections {
		out.Collections[k] = v
	}
	out.Stats = s.Stats.Clone()
	return out
}

// EventType discriminates dashboard events
type EventType int

const (
	EventStateChanged EventType = iota
	EventNotice
)

// Event is delivered to subscribers after every state change and for every
// user notice
type Event struct {
	Type   EventType
	State  ViewState
	Notice models.Notice
}
