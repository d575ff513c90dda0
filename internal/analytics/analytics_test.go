package analytics

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/Dan9191/mfdash/internal/models"
	"github.com/google/go-cmp/cmp"
)

func TestRecomputeLoans(t *testing.T) {
	loans := models.Collection{
		{"id": json.Number("1"), "status": "pending", "amount": json.Number("1000")},
		{"id": json.Number("2"), "status": "approved", "amount": json.Number("500")},
	}
	want := models.Stats{
		models.StatTotalLoans:    2,
		models.StatPendingLoans:  1,
		models.StatApprovedLoans: 1,
	}
	if diff := cmp.Diff(want, Recompute(models.KindLoans, loans)); diff != "" {
		t.Errorf("loan stats mismatch (-want +got):\n%s", diff)
	}
}

func TestRecomputeSavings(t *testing.T) {
	savings := models.Collection{
		{"balance": json.Number("200")},
		{"balance": json.Number("300")},
	}
	got := Recompute(models.KindSavings, savings)
	if got[models.StatTotalSavings] != 500 {
		t.Errorf("totalSavings = %v, want 500", got[models.StatTotalSavings])
	}
}

func TestRecomputeSavingsExactDecimal(t *testing.T) {
	savings := models.Collection{
		{"balance": json.Number("0.1")},
		{"balance": "0.2"},
		{"balance": nil},
		{"balance": "n/a"},
		{},
	}
	got := Recompute(models.KindSavings, savings)
	if got[models.StatTotalSavings] != 0.3 {
		t.Errorf("totalSavings = %v, want 0.3", got[models.StatTotalSavings])
	}
}

func TestRecomputeTrainings(t *testing.T) {
	enrollments := models.Collection{
		{"status": "completed"},
		{"status": "enrolled"},
		{"status": "completed"},
	}
	got := Recompute(models.KindTrainingEnrollments, enrollments)
	if got[models.StatCompletedTrainings] != 2 {
		t.Errorf("completedTrainings = %v, want 2", got[models.StatCompletedTrainings])
	}
}

func TestRecomputeEmptyIsZero(t *testing.T) {
	kinds := []models.Kind{
		models.KindLoans, models.KindSavings, models.KindTrainingEnrollments,
		models.KindTrainingPrograms, models.KindSessions, models.KindJobMatches,
	}
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			got := Recompute(kind, models.Collection{})
			if len(got) != len(Keys(kind)) {
				t.Fatalf("got keys %v, want %v", got, Keys(kind))
			}
			for k, v := range got {
				if v != 0 {
					t.Errorf("%s = %v, want 0", k, v)
				}
			}
		})
	}
}

func TestRecomputeUnknownKind(t *testing.T) {
	got := Recompute(models.Kind("mystery"), models.Collection{{"status": "pending"}})
	if len(got) != 0 {
		t.Errorf("unknown kind produced stats %v", got)
	}
}

func TestMergeLeavesOtherKeys(t *testing.T) {
	dst := models.Stats{models.StatTotalSavings: 42, models.StatTotalLoans: 9}
	Merge(dst, models.Stats{models.StatTotalLoans: 1, models.StatPendingLoans: 1})

	want := models.Stats{
		models.StatTotalSavings: 42,
		models.StatTotalLoans:   1,
		models.StatPendingLoans: 1,
	}
	if diff := cmp.Diff(want, dst); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeOrderIndependent(t *testing.T) {
	colls := map[models.Kind]models.Collection{
		models.KindLoans:               {{"status": "pending"}, {"status": "approved"}, {"status": "rejected"}},
		models.KindSavings:             {{"balance": json.Number("12.5")}, {"balance": json.Number("7.5")}},
		models.KindTrainingEnrollments: {{"status": "completed"}},
		models.KindResources:           {{"id": "r1"}},
	}
	want := Compute(colls)

	kinds := make([]models.Kind, 0, len(colls))
	for k := range colls {
		kinds = append(kinds, k)
	}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(kinds), func(a, b int) { kinds[a], kinds[b] = kinds[b], kinds[a] })
		got := models.Stats{}
		for _, k := range kinds {
			Merge(got, Recompute(k, colls[k]))
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("order %v changed stats (-want +got):\n%s", kinds, diff)
		}
	}
}
