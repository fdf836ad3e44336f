// Package neighbors provides distance-based lazy classifiers.
package neighbors

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/core/model"
	"github.com/moxer-mmh/Data-Analysis-And-Mining/core/parallel"
	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
)

// KNNClassifier is a k-nearest-neighbors classifier.
//
// Fit only stores the training matrix and labels verbatim; all work happens
// at prediction time, where each query row is compared against every stored
// training row by Euclidean distance. Distance ties are resolved toward the
// lower training index (stable sort), and vote ties toward the numerically
// smallest label.
type KNNClassifier struct {
	model.BaseEstimator

	k int

	xTrain_    [][]float64
	yTrain_    []float64
	nFeatures_ int
}

// NewKNNClassifier creates a KNN classifier voting over the k nearest
// training samples.
func NewKNNClassifier(k int) *KNNClassifier {
	return &KNNClassifier{k: k}
}

// Fit stores the training data. X is n_samples x n_features, y is a
// n_samples x 1 label matrix.
func (knn *KNNClassifier) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("KNNClassifier.Fit", "empty data", errors.ErrEmptyData)
	}
	yr, _ := y.Dims()
	if yr != r {
		return errors.NewDimensionError("KNNClassifier.Fit", r, yr, 0)
	}
	if knn.k < 1 {
		return errors.NewValidationError("k", "number of neighbors must be at least 1", knn.k)
	}
	if knn.k > r {
		return errors.NewValidationError("k", "number of neighbors cannot exceed number of training samples", knn.k)
	}

	knn.nFeatures_ = c
	knn.xTrain_ = make([][]float64, r)
	knn.yTrain_ = make([]float64, r)
	for i := 0; i < r; i++ {
		knn.xTrain_[i] = mat.Row(nil, i, X)
		knn.yTrain_[i] = y.At(i, 0)
	}

	knn.SetFitted()
	return nil
}

// Predict returns the majority label among the k nearest training samples
// for each row of X, as an n x 1 matrix.
func (knn *KNNClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !knn.IsFitted() {
		return nil, errors.NewNotFittedError("KNNClassifier", "Predict")
	}

	r, c := X.Dims()
	if c != knn.nFeatures_ {
		return nil, errors.NewDimensionError("KNNClassifier.Predict", knn.nFeatures_, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	parallel.ParallelizeWithThreshold(r, 64, func(start, end int) {
		for i := start; i < end; i++ {
			predictions.Set(i, 0, knn.predictOne(mat.Row(nil, i, X)))
		}
	})

	return predictions, nil
}

// predictOne classifies a single query row.
func (knn *KNNClassifier) predictOne(x []float64) float64 {
	type neighbor struct {
		dist  float64
		label float64
	}

	// Neighbors start in training-index order; the stable sort keeps that
	// order for equal distances.
	neighbors := make([]neighbor, len(knn.xTrain_))
	for i, row := range knn.xTrain_ {
		neighbors[i] = neighbor{
			dist:  floats.Distance(x, row, 2),
			label: knn.yTrain_[i],
		}
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].dist < neighbors[j].dist
	})

	votes := make(map[float64]int)
	for _, nb := range neighbors[:knn.k] {
		votes[nb.label]++
	}

	// Majority vote; ties go to the numerically smallest label.
	best := 0.0
	bestCount := -1
	for label, count := range votes {
		if count > bestCount || (count == bestCount && label < best) {
			best = label
			bestCount = count
		}
	}
	return best
}

// Classes returns the unique training labels, sorted ascending.
func (knn *KNNClassifier) Classes() []float64 {
	sorted := make([]float64, len(knn.yTrain_))
	copy(sorted, knn.yTrain_)
	sort.Float64s(sorted)

	var classes []float64
	for i, v := range sorted {
		if i == 0 || v != classes[len(classes)-1] {
			classes = append(classes, v)
		}
	}
	return classes
}

// K returns the configured number of neighbors.
func (knn *KNNClassifier) K() int {
	return knn.k
}

// GetParams returns the model's hyperparameters.
func (knn *KNNClassifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_neighbors": knn.k,
	}
}
