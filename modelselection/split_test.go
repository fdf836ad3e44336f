package modelselection

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
)

func rangeData(n int) (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(n, 1, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		y.SetVec(i, float64(i))
	}
	return X, y
}

func TestTrainTestSplitSizes(t *testing.T) {
	X, y := rangeData(10)

	xTrain, xTest, yTrain, yTest, err := TrainTestSplit(X, y, 0.2, 42)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}

	if r, _ := xTest.Dims(); r != 2 || yTest.Len() != 2 {
		t.Errorf("test set has %d rows and %d labels, want 2 and 2", r, yTest.Len())
	}
	if r, _ := xTrain.Dims(); r != 8 || yTrain.Len() != 8 {
		t.Errorf("train set has %d rows and %d labels, want 8 and 8", r, yTrain.Len())
	}
}

func TestTrainTestSplitDisjointCover(t *testing.T) {
	X, y := rangeData(10)

	xTrain, xTest, yTrain, yTest, err := TrainTestSplit(X, y, 0.3, 7)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}

	// Every original row appears exactly once across the two subsets, with
	// its label still attached.
	seen := make(map[float64]bool)
	collect := func(Xs *mat.Dense, ys *mat.VecDense) {
		r, _ := Xs.Dims()
		for i := 0; i < r; i++ {
			v := Xs.At(i, 0)
			if ys.AtVec(i) != v {
				t.Errorf("row with value %v paired with label %v", v, ys.AtVec(i))
			}
			if seen[v] {
				t.Errorf("row with value %v appears twice", v)
			}
			seen[v] = true
		}
	}
	collect(xTrain, yTrain)
	collect(xTest, yTest)

	if len(seen) != 10 {
		t.Errorf("subsets cover %d distinct rows, want 10", len(seen))
	}
}

func TestTrainTestSplitDeterministicSeed(t *testing.T) {
	X, y := rangeData(12)

	_, xTest1, _, yTest1, err := TrainTestSplit(X, y, 0.25, 42)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}
	_, xTest2, _, yTest2, err := TrainTestSplit(X, y, 0.25, 42)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}

	if !mat.Equal(xTest1, xTest2) {
		t.Error("identical seeds produced different test rows")
	}
	if !mat.Equal(yTest1, yTest2) {
		t.Error("identical seeds produced different test labels")
	}
}

func TestTrainTestSplitRounding(t *testing.T) {
	// 7 * 0.5 rounds to 4 test rows, not 3.
	X, y := rangeData(7)
	_, xTest, _, _, err := TrainTestSplit(X, y, 0.5, 0)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}
	if r, _ := xTest.Dims(); r != 4 {
		t.Errorf("test set has %d rows, want 4", r)
	}
}

func TestTrainTestSplitInvalidInput(t *testing.T) {
	X, y := rangeData(10)

	t.Run("test_size out of range", func(t *testing.T) {
		for _, size := range []float64{0, 1, -0.5, 1.5} {
			_, _, _, _, err := TrainTestSplit(X, y, size, 0)
			var vErr *errors.ValidationError
			if err == nil || !errors.As(err, &vErr) {
				t.Errorf("test_size %v: expected ValidationError, got %v", size, err)
			}
		}
	})

	t.Run("degenerate split", func(t *testing.T) {
		smallX, smallY := rangeData(3)
		_, _, _, _, err := TrainTestSplit(smallX, smallY, 0.1, 0)
		var vErr *errors.ValidationError
		if err == nil || !errors.As(err, &vErr) {
			t.Errorf("expected ValidationError for an empty test set, got %v", err)
		}
	})

	t.Run("label length mismatch", func(t *testing.T) {
		_, _, _, _, err := TrainTestSplit(X, mat.NewVecDense(4, nil), 0.2, 0)
		var dErr *errors.DimensionError
		if err == nil || !errors.As(err, &dErr) {
			t.Errorf("expected DimensionError, got %v", err)
		}
	})
}
