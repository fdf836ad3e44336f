package neighbors

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
)

func TestKNNOneNeighborReproducesTraining(t *testing.T) {
	X := mat.NewDense(5, 2, []float64{
		0, 0,
		1, 1,
		4, 4,
		5, 5,
		9, 0,
	})
	y := mat.NewDense(5, 1, []float64{0, 0, 1, 1, 2})

	knn := NewKNNClassifier(1)
	if err := knn.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Every training point is its own nearest neighbor at distance 0.
	pred, err := knn.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		if pred.At(i, 0) != y.At(i, 0) {
			t.Errorf("prediction %d = %v, want %v", i, pred.At(i, 0), y.At(i, 0))
		}
	}

	classes := knn.Classes()
	if len(classes) != 3 || classes[0] != 0 || classes[1] != 1 || classes[2] != 2 {
		t.Errorf("Classes() = %v, want [0 1 2]", classes)
	}
}

func TestKNNMajorityVote(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{0, 1, 2, 10, 11})
	y := mat.NewDense(5, 1, []float64{0, 0, 0, 1, 1})

	knn := NewKNNClassifier(3)
	if err := knn.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	query := mat.NewDense(2, 1, []float64{1.2, 10.5})
	pred, err := knn.Predict(query)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if pred.At(0, 0) != 0 {
		t.Errorf("query near the first group predicted %v, want 0", pred.At(0, 0))
	}
	// The second query's 3 nearest are {10, 11, 2} voting 1, 1, 0.
	if pred.At(1, 0) != 1 {
		t.Errorf("query near the second group predicted %v, want 1", pred.At(1, 0))
	}
}

func TestKNNVoteTieGoesToSmallestLabel(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{0, 2})
	y := mat.NewDense(2, 1, []float64{7, 3})

	knn := NewKNNClassifier(2)
	if err := knn.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Both neighbors vote once; the tie resolves to the smaller label 3.
	pred, err := knn.Predict(mat.NewDense(1, 1, []float64{1}))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if pred.At(0, 0) != 3 {
		t.Errorf("tied vote predicted %v, want 3", pred.At(0, 0))
	}
}

func TestKNNDistanceTieIsStable(t *testing.T) {
	// Two training points at the same location: the lower training index
	// wins the k=1 vote.
	X := mat.NewDense(2, 2, []float64{3, 3, 3, 3})
	y := mat.NewDense(2, 1, []float64{5, 9})

	knn := NewKNNClassifier(1)
	if err := knn.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	pred, err := knn.Predict(mat.NewDense(1, 2, []float64{3, 3}))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if pred.At(0, 0) != 5 {
		t.Errorf("distance tie predicted %v, want label of the earlier training row (5)", pred.At(0, 0))
	}
}

func TestKNNErrors(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{0, 1, 2})
	y := mat.NewDense(3, 1, []float64{0, 0, 1})

	t.Run("row mismatch", func(t *testing.T) {
		knn := NewKNNClassifier(1)
		err := knn.Fit(X, mat.NewDense(2, 1, []float64{0, 1}))
		var dErr *errors.DimensionError
		if err == nil || !errors.As(err, &dErr) {
			t.Errorf("expected DimensionError, got %v", err)
		}
	})

	t.Run("k above training size", func(t *testing.T) {
		knn := NewKNNClassifier(4)
		err := knn.Fit(X, y)
		var vErr *errors.ValidationError
		if err == nil || !errors.As(err, &vErr) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("predict before fit", func(t *testing.T) {
		knn := NewKNNClassifier(1)
		if _, err := knn.Predict(X); err == nil {
			t.Error("expected NotFittedError, got nil")
		}
	})

	t.Run("feature mismatch", func(t *testing.T) {
		knn := NewKNNClassifier(1)
		if err := knn.Fit(X, y); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		if _, err := knn.Predict(mat.NewDense(1, 2, []float64{0, 0})); err == nil {
			t.Error("expected DimensionError, got nil")
		}
	})
}
