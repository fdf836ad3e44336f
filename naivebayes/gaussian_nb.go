// Package naivebayes provides naive Bayes classifiers.
package naivebayes

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/core/model"
	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
)

// varEpsilon is added to every per-class feature variance so that constant
// features do not produce a zero denominator in the Gaussian density.
const varEpsilon = 1e-9

// GaussianNB is a Gaussian naive Bayes classifier.
//
// Fit estimates, for every class observed in y, the per-feature mean and
// population variance together with the class prior. Predict scores each
// query row with log(prior) + sum of per-feature Gaussian log-densities and
// picks the class with the maximum log-posterior; ties go to the class that
// appears first in the fitted (sorted) class ordering.
type GaussianNB struct {
	model.BaseEstimator

	classes_   []float64   // sorted unique class labels
	means_     [][]float64 // n_classes x n_features
	variances_ [][]float64 // n_classes x n_features
	priors_    []float64   // n_classes

	nFeatures_ int
}

// NewGaussianNB creates an unfitted Gaussian naive Bayes classifier.
func NewGaussianNB() *GaussianNB {
	return &GaussianNB{}
}

// Fit estimates per-class Gaussians and priors from X and the n x 1 label
// matrix y.
func (nb *GaussianNB) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("GaussianNB.Fit", "empty data", errors.ErrEmptyData)
	}
	yr, _ := y.Dims()
	if yr != r {
		return errors.NewDimensionError("GaussianNB.Fit", r, yr, 0)
	}

	labels := make([]float64, r)
	for i := 0; i < r; i++ {
		labels[i] = y.At(i, 0)
	}

	nb.classes_ = uniqueSorted(labels)
	nClasses := len(nb.classes_)
	nb.nFeatures_ = c
	nb.means_ = make([][]float64, nClasses)
	nb.variances_ = make([][]float64, nClasses)
	nb.priors_ = make([]float64, nClasses)

	colBuf := make([]float64, 0, r)
	for ci, class := range nb.classes_ {
		var members []int
		for i, label := range labels {
			if label == class {
				members = append(members, i)
			}
		}

		nb.means_[ci] = make([]float64, c)
		nb.variances_[ci] = make([]float64, c)
		nb.priors_[ci] = float64(len(members)) / float64(r)

		for j := 0; j < c; j++ {
			colBuf = colBuf[:0]
			for _, i := range members {
				colBuf = append(colBuf, X.At(i, j))
			}
			nb.means_[ci][j] = stat.Mean(colBuf, nil)
			nb.variances_[ci][j] = stat.PopVariance(colBuf, nil)
		}
	}

	nb.SetFitted()
	return nil
}

// Predict returns the most probable class for each row of X as an n x 1
// matrix.
func (nb *GaussianNB) Predict(X mat.Matrix) (mat.Matrix, error) {
	jll, err := nb.PredictLogProba(X)
	if err != nil {
		return nil, err
	}

	r, _ := jll.Dims()
	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		best := 0
		bestScore := math.Inf(-1)
		for ci := range nb.classes_ {
			// Strict > keeps the first class of the fitted ordering on ties.
			if score := jll.At(i, ci); score > bestScore {
				bestScore = score
				best = ci
			}
		}
		predictions.Set(i, 0, nb.classes_[best])
	}

	return predictions, nil
}

// PredictLogProba returns the unnormalized joint log-likelihood
// log(prior) + sum_f log N(x_f; mean, var+eps) for every row and class, as
// an n x n_classes matrix with columns ordered like Classes().
func (nb *GaussianNB) PredictLogProba(X mat.Matrix) (mat.Matrix, error) {
	if !nb.IsFitted() {
		return nil, errors.NewNotFittedError("GaussianNB", "PredictLogProba")
	}

	r, c := X.Dims()
	if c != nb.nFeatures_ {
		return nil, errors.NewDimensionError("GaussianNB.PredictLogProba", nb.nFeatures_, c, 1)
	}

	jll := mat.NewDense(r, len(nb.classes_), nil)
	for i := 0; i < r; i++ {
		row := mat.Row(nil, i, X)
		for ci := range nb.classes_ {
			score := math.Log(nb.priors_[ci])
			for j, v := range row {
				variance := nb.variances_[ci][j] + varEpsilon
				diff := v - nb.means_[ci][j]
				score += -0.5*math.Log(2*math.Pi*variance) - diff*diff/(2*variance)
			}
			jll.Set(i, ci, score)
		}
	}

	return jll, nil
}

// Classes returns the unique class labels seen during fitting, sorted
// ascending.
func (nb *GaussianNB) Classes() []float64 {
	out := make([]float64, len(nb.classes_))
	copy(out, nb.classes_)
	return out
}

// Priors returns the fitted class prior probabilities, ordered like
// Classes().
func (nb *GaussianNB) Priors() []float64 {
	out := make([]float64, len(nb.priors_))
	copy(out, nb.priors_)
	return out
}

// GetParams returns the model's hyperparameters.
func (nb *GaussianNB) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"var_epsilon": varEpsilon,
	}
}

// uniqueSorted returns the sorted unique values of xs.
func uniqueSorted(xs []float64) []float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	unique := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != unique[len(unique)-1] {
			unique = append(unique, v)
		}
	}
	out := make([]float64, len(unique))
	copy(out, unique)
	return out
}
