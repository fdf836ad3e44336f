package preprocessing

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/core/model"
	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
)

// ImputeStrategy selects the per-column statistic used to fill missing values.
type ImputeStrategy string

const (
	// StrategyMean fills missing cells with the column mean.
	StrategyMean ImputeStrategy = "mean"
	// StrategyMedian fills missing cells with the column median.
	StrategyMedian ImputeStrategy = "median"
)

// Imputer fills missing values (NaN cells) with a per-column statistic
// learned at Fit time. Present values are never touched, and the statistic
// is computed ignoring missing entries.
type Imputer struct {
	model.BaseEstimator

	// Strategy is the fill statistic, "mean" or "median".
	Strategy ImputeStrategy

	// Statistics holds the learned fill value per column.
	Statistics []float64

	// NFeatures is the number of features seen during fitting.
	NFeatures int
}

// NewImputer creates an Imputer with the given strategy. The strategy is
// validated at Fit time.
func NewImputer(strategy ImputeStrategy) *Imputer {
	return &Imputer{Strategy: strategy}
}

// Fit computes the per-column fill statistic, ignoring NaN entries.
// A column containing only NaN yields a NaN statistic; transforming such a
// column leaves its missing cells as NaN.
func (im *Imputer) Fit(X mat.Matrix) error {
	switch im.Strategy {
	case StrategyMean, StrategyMedian:
	default:
		return errors.NewValidationError("strategy", "unknown imputation strategy, must be mean or median", string(im.Strategy))
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("Imputer.Fit", "empty data", errors.ErrEmptyData)
	}

	im.NFeatures = c
	im.Statistics = make([]float64, c)

	for j := 0; j < c; j++ {
		present := make([]float64, 0, r)
		for i := 0; i < r; i++ {
			if v := X.At(i, j); !math.IsNaN(v) {
				present = append(present, v)
			}
		}
		if len(present) == 0 {
			im.Statistics[j] = math.NaN()
			continue
		}

		switch im.Strategy {
		case StrategyMean:
			im.Statistics[j] = stat.Mean(present, nil)
		case StrategyMedian:
			im.Statistics[j] = median(present)
		}
	}

	im.SetFitted()
	return nil
}

// Transform returns a copy of X with every NaN cell replaced by the fitted
// column statistic. Present values are passed through unchanged.
func (im *Imputer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !im.IsFitted() {
		return nil, errors.NewNotFittedError("Imputer", "Transform")
	}

	r, c := X.Dims()
	if c != im.NFeatures {
		return nil, errors.NewDimensionError("Imputer.Transform", im.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				v = im.Statistics[j]
			}
			result.Set(i, j, v)
		}
	}

	return result, nil
}

// FitTransform fits the imputer and transforms the same data.
func (im *Imputer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := im.Fit(X); err != nil {
		return nil, err
	}
	return im.Transform(X)
}

// GetParams returns the imputer's parameters.
func (im *Imputer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"strategy": string(im.Strategy),
	}
}

// String returns a printable representation of the imputer.
func (im *Imputer) String() string {
	if !im.IsFitted() {
		return fmt.Sprintf("Imputer(strategy=%s)", im.Strategy)
	}
	return fmt.Sprintf("Imputer(strategy=%s, n_features=%d)", im.Strategy, im.NFeatures)
}

// median returns the middle value of xs, averaging the two central values
// for even lengths. xs is sorted in place.
func median(xs []float64) float64 {
	sort.Float64s(xs)
	mid := len(xs) / 2
	if len(xs)%2 == 1 {
		return xs[mid]
	}
	return (xs[mid-1] + xs[mid]) / 2
}
