package models

// Status values the backend uses across record kinds
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusEnrolled  = "enrolled"
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
	StatusAccepted  = "accepted"
)

// ValidLoanDecision reports whether status is a decision an admin can set on a loan
func ValidLoanDecision(status string) bool {
	return status == StatusApproved || status == StatusRejected
}
