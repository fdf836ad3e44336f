// Package modelselection provides utilities for partitioning datasets into
// training and evaluation subsets.
package modelselection

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
)

// TrainTestSplit randomly partitions the rows of X and the aligned label
// vector y into train and test subsets.
//
// round(n * testSize) rows become the test set and the remainder the train
// set; row-to-label alignment is preserved. A non-negative seed makes the
// permutation deterministic; a negative seed draws from a time-based source.
func TrainTestSplit(X mat.Matrix, y *mat.VecDense, testSize float64, seed int64) (xTrain, xTest *mat.Dense, yTrain, yTest *mat.VecDense, err error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, nil, nil, nil, errors.NewModelError("TrainTestSplit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != r {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", r, y.Len(), 0)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, errors.NewValidationError("test_size", "must be in the open interval (0, 1)", testSize)
	}

	nTest := int(math.Round(float64(r) * testSize))
	if nTest == 0 || nTest == r {
		return nil, nil, nil, nil, errors.NewValidationError("test_size", "produces an empty train or test set", testSize)
	}

	var rng *rand.Rand
	if seed >= 0 {
		rng = rand.New(rand.NewSource(seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	perm := rng.Perm(r)

	testIdx := perm[:nTest]
	trainIdx := perm[nTest:]

	xTrain, yTrain = takeRows(X, y, trainIdx)
	xTest, yTest = takeRows(X, y, testIdx)
	return xTrain, xTest, yTrain, yTest, nil
}

// takeRows copies the selected rows of X and entries of y, in index order.
func takeRows(X mat.Matrix, y *mat.VecDense, indices []int) (*mat.Dense, *mat.VecDense) {
	_, c := X.Dims()
	outX := mat.NewDense(len(indices), c, nil)
	outY := mat.NewVecDense(len(indices), nil)
	for i, idx := range indices {
		outX.SetRow(i, mat.Row(nil, idx, X))
		outY.SetVec(i, y.AtVec(idx))
	}
	return outX, outY
}
