package cluster

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/core/model"
	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
	mlog "github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/log"
)

// NoiseLabel marks samples not reachable from any core point.
const NoiseLabel = -1

// DBSCAN is density-based clustering over an epsilon-radius neighbor graph.
//
// A sample whose epsilon-neighborhood (inclusive of itself) contains at
// least MinSamples points is a core point and starts or extends a cluster.
// Samples reachable from a core point join its cluster; everything else is
// labeled NoiseLabel. A sample first labeled as noise is relabeled when a
// later expansion reaches it from a core point, which yields the standard
// border-point semantics.
type DBSCAN struct {
	model.BaseEstimator

	eps        float64
	minSamples int

	labels_    []int
	nClusters_ int
}

// NewDBSCAN creates a DBSCAN clusterer with the given neighborhood radius
// and density threshold. minSamples counts the point itself.
func NewDBSCAN(eps float64, minSamples int) *DBSCAN {
	return &DBSCAN{
		eps:        eps,
		minSamples: minSamples,
	}
}

// Fit assigns a cluster label (or NoiseLabel) to every sample of X.
func (db *DBSCAN) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("DBSCAN.Fit", "empty data", errors.ErrEmptyData)
	}
	if db.eps < 0 {
		return errors.NewValidationError("eps", "neighborhood radius must be non-negative", db.eps)
	}
	if db.minSamples < 1 {
		return errors.NewValidationError("min_samples", "density threshold must be at least 1", db.minSamples)
	}

	rows := matrixRows(X)
	n := len(rows)

	labels := make([]int, n)
	for i := range labels {
		labels[i] = NoiseLabel
	}
	visited := make([]bool, n)
	clusterID := 0

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := db.regionQuery(rows, i)
		if len(neighbors) < db.minSamples {
			labels[i] = NoiseLabel
			continue
		}

		labels[i] = clusterID
		db.expandCluster(rows, neighbors, clusterID, visited, labels)
		clusterID++
	}

	db.labels_ = labels
	db.nClusters_ = clusterID

	slog.Debug("dbscan fit finished",
		mlog.ModelNameKey, "DBSCAN",
		mlog.OperationKey, mlog.OperationFit,
		mlog.SamplesKey, n,
		mlog.ClustersKey, clusterID,
	)

	db.SetFitted()
	return nil
}

// expandCluster grows a cluster from the seed neighborhood. The frontier is
// the neighbor list itself: neighbors of newly discovered core points are
// appended (deduplicated by a linear membership scan, preserving discovery
// order) and visited in order.
func (db *DBSCAN) expandCluster(rows [][]float64, neighbors []int, clusterID int, visited []bool, labels []int) {
	for i := 0; i < len(neighbors); i++ {
		idx := neighbors[i]

		if !visited[idx] {
			visited[idx] = true
			newNeighbors := db.regionQuery(rows, idx)
			if len(newNeighbors) >= db.minSamples {
				for _, candidate := range newNeighbors {
					if !containsIndex(neighbors, candidate) {
						neighbors = append(neighbors, candidate)
					}
				}
			}
		}

		if labels[idx] == NoiseLabel {
			labels[idx] = clusterID
		}
	}
}

// regionQuery returns the indices of all samples within eps of rows[idx],
// the sample itself included. Neighborhoods are recomputed on demand and
// never cached across calls.
func (db *DBSCAN) regionQuery(rows [][]float64, idx int) []int {
	var neighbors []int
	for j := range rows {
		if euclideanDistance(rows[idx], rows[j]) <= db.eps {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

// FitPredict runs Fit and returns the cluster label of each sample.
func (db *DBSCAN) FitPredict(X mat.Matrix) ([]int, error) {
	if err := db.Fit(X); err != nil {
		return nil, err
	}
	return db.Labels(), nil
}

// Labels returns the cluster label of each training sample; NoiseLabel
// marks noise.
func (db *DBSCAN) Labels() []int {
	return copyLabels(db.labels_)
}

// NClusters returns the number of clusters discovered during fitting,
// noise excluded.
func (db *DBSCAN) NClusters() int {
	return db.nClusters_
}

// GetParams returns the model's hyperparameters.
func (db *DBSCAN) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"eps":         db.eps,
		"min_samples": db.minSamples,
	}
}

func containsIndex(indices []int, idx int) bool {
	for _, v := range indices {
		if v == idx {
			return true
		}
	}
	return false
}
