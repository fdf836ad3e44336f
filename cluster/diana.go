package cluster

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/core/model"
)

// DIANA is divisive (top-down) hierarchical clustering.
//
// All samples start in a single cluster. At each step the cluster with the
// largest diameter (maximum pairwise member distance) is split: a splinter
// group is seeded with the member having the largest average distance to the
// rest, then members keep defecting to the splinter group while doing so
// strictly reduces their average distance. Splitting continues until k
// clusters exist, or earlier if every remaining cluster is a singleton.
type DIANA struct {
	model.BaseEstimator

	nClusters int

	labels_         []int
	nClustersFound_ int
}

// NewDIANA creates a DIANA clusterer targeting k clusters.
func NewDIANA(k int) *DIANA {
	return &DIANA{nClusters: k}
}

// Fit splits clusters top-down until k clusters exist.
func (d *DIANA) Fit(X mat.Matrix) error {
	if err := validateClusterInput("DIANA.Fit", X, d.nClusters); err != nil {
		return err
	}

	rows := matrixRows(X)
	n := len(rows)

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	clusters := [][]int{all}

	for len(clusters) < d.nClusters {
		// Pick the cluster with the largest diameter. Singletons have
		// diameter 0 and are never selected.
		maxDiameter := -1.0
		splitIdx := -1
		for i, members := range clusters {
			if len(members) < 2 {
				continue
			}
			if diam := diameter(rows, members); diam > maxDiameter {
				maxDiameter = diam
				splitIdx = i
			}
		}

		if splitIdx == -1 {
			// Nothing left to split; stop early with fewer than k clusters.
			break
		}

		splinter, remainder := splitCluster(rows, clusters[splitIdx])

		clusters = append(clusters[:splitIdx], clusters[splitIdx+1:]...)
		clusters = append(clusters, remainder)
		clusters = append(clusters, splinter)
	}

	d.labels_ = labelsFromPartition(n, clusters)
	d.nClustersFound_ = len(clusters)
	d.SetFitted()
	return nil
}

// FitPredict runs Fit and returns the cluster label of each sample.
func (d *DIANA) FitPredict(X mat.Matrix) ([]int, error) {
	if err := d.Fit(X); err != nil {
		return nil, err
	}
	return d.Labels(), nil
}

// Labels returns the cluster label of each training sample.
func (d *DIANA) Labels() []int {
	return copyLabels(d.labels_)
}

// NClusters returns the number of clusters actually produced. This can be
// less than the requested k when splitting stopped early.
func (d *DIANA) NClusters() int {
	return d.nClustersFound_
}

// GetParams returns the model's hyperparameters.
func (d *DIANA) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_clusters": d.nClusters,
	}
}

// diameter returns the maximum pairwise distance among the cluster members.
func diameter(rows [][]float64, members []int) float64 {
	maxDist := 0.0
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			if d := euclideanDistance(rows[members[i]], rows[members[j]]); d > maxDist {
				maxDist = d
			}
		}
	}
	return maxDist
}

// splitCluster divides the members into a splinter group and a remainder.
//
// The splinter group is seeded with the member having the largest average
// distance to all other members. Then, repeatedly, the member of the
// remainder maximizing avg_dist(to remainder) - avg_dist(to splinter) is
// moved across while that margin is strictly positive.
func splitCluster(rows [][]float64, members []int) (splinter, remainder []int) {
	remainder = make([]int, len(members))
	copy(remainder, members)

	// Seed: the member furthest (on average) from everyone else.
	maxAvg := -1.0
	seedPos := -1
	for pos, idx := range remainder {
		sum := 0.0
		count := 0
		for otherPos, other := range remainder {
			if otherPos == pos {
				continue
			}
			sum += euclideanDistance(rows[idx], rows[other])
			count++
		}
		if count == 0 {
			continue
		}
		if avg := sum / float64(count); avg > maxAvg {
			maxAvg = avg
			seedPos = pos
		}
	}
	if seedPos == -1 {
		return nil, remainder
	}
	splinter = []int{remainder[seedPos]}
	remainder = append(remainder[:seedPos], remainder[seedPos+1:]...)

	for {
		maxMargin := math.Inf(-1)
		movePos := -1

		for pos, idx := range remainder {
			distToSplinter := averageDistance(rows, idx, splinter, -1)
			distToRemainder := averageDistance(rows, idx, remainder, pos)
			if margin := distToRemainder - distToSplinter; margin > maxMargin {
				maxMargin = margin
				movePos = pos
			}
		}

		if movePos == -1 || maxMargin <= 0 {
			break
		}
		splinter = append(splinter, remainder[movePos])
		remainder = append(remainder[:movePos], remainder[movePos+1:]...)
	}

	return splinter, remainder
}

// averageDistance returns the mean distance from rows[idx] to the members of
// group, skipping the member at position skipPos (-1 to include all).
// Returns 0 when the group has no other members.
func averageDistance(rows [][]float64, idx int, group []int, skipPos int) float64 {
	sum := 0.0
	count := 0
	for pos, other := range group {
		if pos == skipPos {
			continue
		}
		sum += euclideanDistance(rows[idx], rows[other])
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
