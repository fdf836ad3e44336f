package naivebayes

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
)

func TestGaussianNBSeparableClasses(t *testing.T) {
	X := mat.NewDense(6, 2, []float64{
		0, 0,
		0.5, 0.5,
		1, 0,
		10, 10,
		10.5, 10.5,
		11, 10,
	})
	y := mat.NewDense(6, 1, []float64{0, 0, 0, 1, 1, 1})

	nb := NewGaussianNB()
	if err := nb.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	pred, err := nb.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := 0; i < 6; i++ {
		if pred.At(i, 0) != y.At(i, 0) {
			t.Errorf("prediction %d = %v, want %v", i, pred.At(i, 0), y.At(i, 0))
		}
	}

	query := mat.NewDense(2, 2, []float64{0.2, 0.4, 10.2, 9.8})
	pred, err = nb.Predict(query)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if pred.At(0, 0) != 0 || pred.At(1, 0) != 1 {
		t.Errorf("queries predicted (%v, %v), want (0, 1)", pred.At(0, 0), pred.At(1, 0))
	}
}

func TestGaussianNBClassesAndPriors(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{2, 0, 2, 2})

	nb := NewGaussianNB()
	if err := nb.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	classes := nb.Classes()
	if len(classes) != 2 || classes[0] != 0 || classes[1] != 2 {
		t.Fatalf("Classes() = %v, want [0 2]", classes)
	}

	priors := nb.Priors()
	if math.Abs(priors[0]-0.25) > 1e-9 || math.Abs(priors[1]-0.75) > 1e-9 {
		t.Errorf("Priors() = %v, want [0.25 0.75]", priors)
	}
}

func TestGaussianNBConstantFeature(t *testing.T) {
	// The first feature has zero variance within each class; the variance
	// epsilon must keep the log-density finite.
	X := mat.NewDense(4, 2, []float64{
		1, 0,
		1, 1,
		1, 10,
		1, 11,
	})
	y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})

	nb := NewGaussianNB()
	if err := nb.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	jll, err := nb.PredictLogProba(X)
	if err != nil {
		t.Fatalf("PredictLogProba failed: %v", err)
	}
	r, c := jll.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := jll.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("jll[%d][%d] = %v, want finite", i, j, v)
			}
		}
	}

	pred, err := nb.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := 0; i < 4; i++ {
		if pred.At(i, 0) != y.At(i, 0) {
			t.Errorf("prediction %d = %v, want %v", i, pred.At(i, 0), y.At(i, 0))
		}
	}
}

func TestGaussianNBErrors(t *testing.T) {
	t.Run("row mismatch", func(t *testing.T) {
		nb := NewGaussianNB()
		err := nb.Fit(mat.NewDense(2, 1, []float64{1, 2}), mat.NewDense(3, 1, []float64{0, 0, 1}))
		var dErr *errors.DimensionError
		if err == nil || !errors.As(err, &dErr) {
			t.Errorf("expected DimensionError, got %v", err)
		}
	})

	t.Run("predict before fit", func(t *testing.T) {
		nb := NewGaussianNB()
		if _, err := nb.Predict(mat.NewDense(1, 1, []float64{1})); err == nil {
			t.Error("expected NotFittedError, got nil")
		}
	})
}
