package cluster

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
)

// twoBlobs is two well-separated pairs of points: {0,1} and {2,3}.
func twoBlobs() *mat.Dense {
	return mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		5, 5,
		5, 6,
	})
}

func assertPartitioned(t *testing.T, labels []int, groups [][]int) {
	t.Helper()
	for _, group := range groups {
		for _, idx := range group[1:] {
			if labels[idx] != labels[group[0]] {
				t.Errorf("samples %d and %d should share a cluster, got labels %v", group[0], idx, labels)
			}
		}
	}
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			if labels[groups[i][0]] == labels[groups[j][0]] {
				t.Errorf("groups %v and %v should be in different clusters, got labels %v", groups[i], groups[j], labels)
			}
		}
	}
}

func TestKMeansTwoBlobs(t *testing.T) {
	// The separation is large enough that any seed converges to the same
	// partition.
	for _, seed := range []int64{0, 1, 42, 1234} {
		km := NewKMeans(2, WithKMeansRandomState(seed))
		labels, err := km.FitPredict(twoBlobs())
		if err != nil {
			t.Fatalf("FitPredict failed: %v", err)
		}
		if len(labels) != 4 {
			t.Fatalf("expected 4 labels, got %d", len(labels))
		}
		assertPartitioned(t, labels, [][]int{{0, 1}, {2, 3}})
	}
}

func TestKMeansLabelRange(t *testing.T) {
	X := mat.NewDense(6, 2, []float64{
		0, 0, 1, 0, 0, 1,
		8, 8, 9, 8, 8, 9,
	})
	km := NewKMeans(3, WithKMeansRandomState(7))
	labels, err := km.FitPredict(X)
	if err != nil {
		t.Fatalf("FitPredict failed: %v", err)
	}
	for i, label := range labels {
		if label < 0 || label >= 3 {
			t.Errorf("label %d of sample %d out of range [0, 3)", label, i)
		}
	}
}

func TestKMeansInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		k    int
	}{
		{name: "k below 2", k: 1},
		{name: "k above sample count", k: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km := NewKMeans(tt.k, WithKMeansRandomState(0))
			err := km.Fit(twoBlobs())
			if err == nil {
				t.Fatal("expected a validation error, got nil")
			}
			var vErr *errors.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestKMeansReproducibleWithSeed(t *testing.T) {
	X := mat.NewDense(8, 2, []float64{
		0, 0, 0, 1, 1, 0, 1, 1,
		6, 6, 6, 7, 7, 6, 7, 7,
	})

	first := NewKMeans(2, WithKMeansRandomState(99))
	second := NewKMeans(2, WithKMeansRandomState(99))

	labelsA, err := first.FitPredict(X)
	if err != nil {
		t.Fatalf("first FitPredict failed: %v", err)
	}
	labelsB, err := second.FitPredict(X)
	if err != nil {
		t.Fatalf("second FitPredict failed: %v", err)
	}

	for i := range labelsA {
		if labelsA[i] != labelsB[i] {
			t.Fatalf("same seed produced different labels: %v vs %v", labelsA, labelsB)
		}
	}
}

func TestKMeansPredictMatchesTraining(t *testing.T) {
	km := NewKMeans(2, WithKMeansRandomState(3))
	X := twoBlobs()
	if err := km.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	predicted, err := km.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	trained := km.Labels()
	for i := range trained {
		if predicted[i] != trained[i] {
			t.Errorf("prediction on training data disagrees with fit labels at %d: %d vs %d", i, predicted[i], trained[i])
		}
	}
}

func TestKMeansPredictBeforeFit(t *testing.T) {
	km := NewKMeans(2)
	if _, err := km.Predict(twoBlobs()); err == nil {
		t.Fatal("expected NotFittedError, got nil")
	}
}

func TestKMeansInertia(t *testing.T) {
	km := NewKMeans(2, WithKMeansRandomState(42))
	if err := km.Fit(twoBlobs()); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Optimal centroids are (0, 0.5) and (5, 5.5); each point is at
	// distance 0.5 from its centroid, so the inertia is 4 * 0.25.
	if got := km.Inertia(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Inertia() = %v, want 1.0", got)
	}

	centers := km.ClusterCenters()
	if len(centers) != 2 || len(centers[0]) != 2 {
		t.Fatalf("unexpected centroid shape: %v", centers)
	}
}
