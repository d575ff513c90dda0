// Package analytics derives dashboard statistics from fetched collections.
package analytics

import (
	"github.com/Dan9191/mfdash/internal/models"
	"github.com/shopspring/decimal"
)

var kindKeys = map[models.Kind][]string{
	models.KindLoans:               {models.StatTotalLoans, models.StatPendingLoans, models.StatApprovedLoans},
	models.KindSavings:             {models.StatTotalSavings},
	models.KindTrainingEnrollments: {models.StatCompletedTrainings},
}

// Keys returns the stat names derived from kind. Kinds without stats return nil.
func Keys(kind models.Kind) []string {
	return kindKeys[kind]
}

// Recompute derives the stats contributed by one collection. Unknown kinds
// contribute nothing; an empty collection yields zero values.
func Recompute(kind models.Kind, coll models.Collection) models.Stats {
	switch kind {
	case models.KindLoans:
		return models.Stats{
			models.StatTotalLoans:    float64(len(coll)),
			models.StatPendingLoans:  float64(countStatus(coll, models.StatusPending)),
			models.StatApprovedLoans: float64(countStatus(coll, models.StatusApproved)),
		}
	case models.KindSavings:
		return models.Stats{
			models.StatTotalSavings: sumField(coll, "balance"),
		}
	case models.KindTrainingEnrollments:
		return models.Stats{
			models.StatCompletedTrainings: float64(countStatus(coll, models.StatusCompleted)),
		}
	default:
		return models.Stats{}
	}
}

// Merge writes partial into dst key by key, leaving other keys untouched
func Merge(dst, partial models.Stats) {
	for k, v := range partial {
		dst[k] = v
	}
}

// Compute aggregates every collection from scratch
func Compute(colls map[models.Kind]models.Collection) models.Stats {
	stats := models.Stats{}
	for kind, coll := range colls {
		Merge(stats, Recompute(kind, coll))
	}
	return stats
}

func countStatus(coll models.Collection, status string) int {
	n := 0
	for _, r := range coll {
		if r.Status() == status {
			n++
		}
	}
	return n
}

// sumField adds a numeric field exactly. Records where the field is missing
// or not a number are skipped.
func sumField(coll models.Collection, field string) float64 {
	total := decimal.Zero
	for _, r := range coll {
		n, ok := r.Number(field)
		if !ok {
			continue
		}
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			continue
		}
		total = total.Add(d)
	}
	f, _ := total.Float64()
	return f
}
