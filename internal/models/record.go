package models

import (
	"encoding/json"
	"fmt"
)

// Kind identifies a resource collection served by the backend
type Kind string

const (
	KindLoans               Kind = "loans"
	KindSavings             Kind = "savings"
	KindTrainingEnrollments Kind = "trainingEnrollments"
	KindTrainingPrograms    Kind = "trainingPrograms"
	KindSessions            Kind = "sessions"
	KindAssessments         Kind = "assessments"
	KindGoals               Kind = "goals"
	KindApplications        Kind = "applications"
	KindJobMatches          Kind = "jobMatches"
	KindResources           Kind = "resources"
)

// Record is a single backend record. Numbers are kept as json.Number so
// monetary fields are not rounded through float64.
type Record map[string]any

// Collection is an ordered set of records of one kind
type Collection []Record

// ID returns the record identifier as a string, or "" when absent
func (r Record) ID() string {
	v, ok := r["id"]
	if !ok || v == nil {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	default:
		return fmt.Sprint(id)
	}
}

// Status returns the record status field, or "" when absent
func (r Record) Status() string {
	s, _ := r["status"].(string)
	return s
}

// String returns a field rendered as text, or "" when absent
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Number returns a numeric field. Numeric strings are accepted because the
// backend serializes decimal columns as text.
func (r Record) Number(field string) (json.Number, bool) {
	switch v := r[field].(type) {
	case json.Number:
		return v, true
	case string:
		if v == "" {
			return "", false
		}
		return json.Number(v), true
	case float64:
		return json.Number(fmt.Sprint(v)), true
	case int:
		return json.Number(fmt.Sprint(v)), true
	default:
		return "", false
	}
}

// Clone returns a copy of the collection slice. Records are shared.
func (c Collection) Clone() Collection {
	if c == nil {
		return Collection{}
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}
