package cluster

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/core/model"
	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
)

// Linkage selects how the distance between two clusters is computed
// during agglomerative merging.
type Linkage string

const (
	// LinkageSingle uses the minimum pairwise distance between members.
	LinkageSingle Linkage = "single"
	// LinkageComplete uses the maximum pairwise distance between members.
	LinkageComplete Linkage = "complete"
	// LinkageAverage uses the mean pairwise distance between members.
	LinkageAverage Linkage = "average"
)

// AGNES is agglomerative (bottom-up) hierarchical clustering.
//
// Every sample starts in its own cluster; the closest pair of clusters under
// the configured linkage is merged repeatedly until exactly k clusters
// remain. All pairwise cluster distances are recomputed from scratch at each
// merge step. Ties in the minimum distance are broken by the first pair
// encountered in (i < j) enumeration order; changing either of those rules
// changes the output, so they are part of the contract.
type AGNES struct {
	model.BaseEstimator

	nClusters int
	linkage   Linkage

	labels_ []int
}

// NewAGNES creates an AGNES clusterer targeting k clusters under the given
// linkage. The linkage is validated at Fit time.
func NewAGNES(k int, linkage Linkage) *AGNES {
	return &AGNES{
		nClusters: k,
		linkage:   linkage,
	}
}

// Fit merges singleton clusters bottom-up until k clusters remain.
func (a *AGNES) Fit(X mat.Matrix) error {
	switch a.linkage {
	case LinkageSingle, LinkageComplete, LinkageAverage:
	default:
		return errors.NewValidationError("linkage", "unknown linkage, must be one of single/complete/average", string(a.linkage))
	}

	if err := validateClusterInput("AGNES.Fit", X, a.nClusters); err != nil {
		return err
	}

	rows := matrixRows(X)
	n := len(rows)

	clusters := make([][]int, n)
	for i := range clusters {
		clusters[i] = []int{i}
	}

	for len(clusters) > a.nClusters {
		minDist := math.Inf(1)
		mergeI, mergeJ := -1, -1

		for i := 0; i < len(clusters); i++ {
			for j := i + 1; j < len(clusters); j++ {
				dist := clusterDistance(rows, clusters[i], clusters[j], a.linkage)
				if dist < minDist {
					minDist = dist
					mergeI, mergeJ = i, j
				}
			}
		}

		if mergeI == -1 {
			break
		}

		clusters[mergeI] = append(clusters[mergeI], clusters[mergeJ]...)
		clusters = append(clusters[:mergeJ], clusters[mergeJ+1:]...)
	}

	a.labels_ = labelsFromPartition(n, clusters)
	a.SetFitted()
	return nil
}

// FitPredict runs Fit and returns the cluster label of each sample.
func (a *AGNES) FitPredict(X mat.Matrix) ([]int, error) {
	if err := a.Fit(X); err != nil {
		return nil, err
	}
	return a.Labels(), nil
}

// Labels returns the cluster label of each training sample.
func (a *AGNES) Labels() []int {
	return copyLabels(a.labels_)
}

// NClusters returns the configured number of clusters.
func (a *AGNES) NClusters() int {
	return a.nClusters
}

// GetParams returns the model's hyperparameters.
func (a *AGNES) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_clusters": a.nClusters,
		"linkage":    string(a.linkage),
	}
}

// clusterDistance computes the inter-cluster distance between the members of
// clusters a and b under the given linkage.
func clusterDistance(rows [][]float64, a, b []int, linkage Linkage) float64 {
	switch linkage {
	case LinkageSingle:
		minDist := math.Inf(1)
		for _, i := range a {
			for _, j := range b {
				if d := euclideanDistance(rows[i], rows[j]); d < minDist {
					minDist = d
				}
			}
		}
		return minDist
	case LinkageComplete:
		maxDist := math.Inf(-1)
		for _, i := range a {
			for _, j := range b {
				if d := euclideanDistance(rows[i], rows[j]); d > maxDist {
					maxDist = d
				}
			}
		}
		return maxDist
	default: // LinkageAverage
		sum := 0.0
		for _, i := range a {
			for _, j := range b {
				sum += euclideanDistance(rows[i], rows[j])
			}
		}
		return sum / float64(len(a)*len(b))
	}
}
