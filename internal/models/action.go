package models

import "github.com/google/uuid"

// ActionKind names a mutating backend call
type ActionKind string

const (
	ActionSetLoanStatus      ActionKind = "setLoanStatus"
	ActionApplyForJob        ActionKind = "applyForJob"
	ActionGenerateJobMatches ActionKind = "generateJobMatches"
)

// BusyMatchGeneration is the dashboard busy flag held while job matches are
// being generated
const BusyMatchGeneration = "matchGeneration"

// ActionRequest describes one mutating call. It is built, dispatched and dropped.
type ActionRequest struct {
	ID     string
	Kind   ActionKind
	LoanID string
	Status string
	UserID string
	JobID  string
}

// ActionResult reports the outcome of a dispatched action
type ActionResult struct {
	RequestID    string     `json:"request_id"`
	Kind         ActionKind `json:"kind"`
	Message      string     `json:"message"`
	MatchesCount int        `json:"matches_count,omitempty"`
	Refreshed    Kind       `json:"refreshed,omitempty"`
}

// NoticeLevel is the severity of a user-facing notice
type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is a message for the user about an action outcome
type Notice struct {
	Level     NoticeLevel `json:"level"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// NewSetLoanStatus builds a request to set a loan's status
func NewSetLoanStatus(loanID, status string) ActionRequest {
	return ActionRequest{ID: uuid.NewString(), Kind: ActionSetLoanStatus, LoanID: loanID, Status: status}
}

// NewApplyForJob builds a request to apply a user to a job
func NewApplyForJob(userID, jobID string) ActionRequest {
	return ActionRequest{ID: uuid.NewString(), Kind: ActionApplyForJob, UserID: userID, JobID: jobID}
}

// NewGenerateJobMatches builds a request to regenerate a user's job matches
func NewGenerateJobMatches(userID string) ActionRequest {
	return ActionRequest{ID: uuid.NewString(), Kind: ActionGenerateJobMatches, UserID: userID}
}
