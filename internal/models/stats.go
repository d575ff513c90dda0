package models

// Stat names reported by the dashboards
const (
	StatTotalLoans         = "totalLoans"
	StatPendingLoans       = "pendingLoans"
	StatApprovedLoans      = "approvedLoans"
	StatTotalSavings       = "totalSavings"
	StatCompletedTrainings = "completedTrainings"
)

// Stats maps a stat name to its value. It is always derived from the
// current collections and never edited directly.
type Stats map[string]float64

// Clone returns an independent copy of s
func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
