package cluster

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
)

func TestKMedoidsTwoBlobs(t *testing.T) {
	for _, seed := range []int64{0, 1, 42} {
		km := NewKMedoids(2, WithKMedoidsRandomState(seed))
		labels, err := km.FitPredict(twoBlobs())
		if err != nil {
			t.Fatalf("FitPredict failed: %v", err)
		}
		assertPartitioned(t, labels, [][]int{{0, 1}, {2, 3}})
	}
}

func TestKMedoidsMedoidsAreSampleRows(t *testing.T) {
	X := twoBlobs()
	km := NewKMedoids(2, WithKMedoidsRandomState(5))
	if err := km.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	indices := km.MedoidIndices()
	medoids := km.Medoids()
	if len(indices) != 2 || len(medoids) != 2 {
		t.Fatalf("expected 2 medoids, got %d indices and %d rows", len(indices), len(medoids))
	}

	for m, idx := range indices {
		if idx < 0 || idx >= 4 {
			t.Fatalf("medoid index %d out of range", idx)
		}
		row := mat.Row(nil, idx, X)
		for j := range row {
			if medoids[m][j] != row[j] {
				t.Errorf("medoid %d is not the sample row %d: %v vs %v", m, idx, medoids[m], row)
			}
		}
	}
}

func TestKMedoidsConvergesBeforeMaxIter(t *testing.T) {
	// With clearly separated blobs the medoid set stabilizes almost
	// immediately; the iteration count must stay far below the cap.
	km := NewKMedoids(2, WithKMedoidsRandomState(1), WithKMedoidsMaxIter(100))
	if err := km.Fit(twoBlobs()); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if km.NIterations() >= 99 {
		t.Errorf("expected early convergence, ran %d iterations", km.NIterations())
	}
}

func TestKMedoidsInvalidConfig(t *testing.T) {
	km := NewKMedoids(1)
	err := km.Fit(twoBlobs())
	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}
	var vErr *errors.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError, got %T: %v", err, err)
	}
}
