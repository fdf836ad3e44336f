package cluster

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/core/model"
	"github.com/moxer-mmh/Data-Analysis-And-Mining/core/parallel"
)

// KMedoids はK-medoidsクラスタリング
// 代表点（medoid）は重心と異なり、必ず実際のサンプル行から選ばれる。
// 各クラスタ内で他メンバーへの距離の総和を最小化するメンバーを全探索で選ぶ
// （PAM法のswap最適化ではなく、意図的に単純な実装）。
type KMedoids struct {
	model.BaseEstimator

	// ハイパーパラメータ
	nClusters   int   // クラスタ数
	maxIter     int   // 最大イテレーション数
	randomState int64 // 乱数シード（負の場合は時刻ベース）

	// 学習パラメータ
	medoidIndices_ []int       // 各medoidのサンプルインデックス
	medoids_       [][]float64 // medoidの特徴ベクトル（サンプル行のコピー）
	labels_        []int       // 各サンプルのクラスタラベル
	nIter_         int         // 実行されたイテレーション数

	// 内部状態
	mu         sync.RWMutex
	rng        *rand.Rand
	nFeatures_ int
}

// KMedoidsOption はKMedoidsの設定オプション
type KMedoidsOption func(*KMedoids)

// WithKMedoidsMaxIter は最大イテレーション数を設定
func WithKMedoidsMaxIter(maxIter int) KMedoidsOption {
	return func(km *KMedoids) {
		km.maxIter = maxIter
	}
}

// WithKMedoidsRandomState は乱数シードを設定
func WithKMedoidsRandomState(seed int64) KMedoidsOption {
	return func(km *KMedoids) {
		km.randomState = seed
	}
}

// NewKMedoids は新しいKMedoidsを作成する
func NewKMedoids(k int, options ...KMedoidsOption) *KMedoids {
	km := &KMedoids{
		nClusters:   k,
		maxIter:     100,
		randomState: -1,
	}

	for _, opt := range options {
		opt(km)
	}

	if km.randomState >= 0 {
		km.rng = rand.New(rand.NewSource(km.randomState))
	} else {
		km.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return km
}

// Fit はK-medoidsクラスタリングを実行する
//
// 外側のループはK-meansと同じ形だが、収束判定はmedoidインデックスが
// 1つも変化しなくなった時点（許容誤差ではなく厳密一致）。
// 空クラスタのmedoidは変更されずスキップされる（K-meansの再初期化とは
// 異なる仕様であることに注意）。
func (km *KMedoids) Fit(X mat.Matrix) error {
	km.mu.Lock()
	defer km.mu.Unlock()

	if err := validateClusterInput("KMedoids.Fit", X, km.nClusters); err != nil {
		return err
	}

	rows := matrixRows(X)
	n := len(rows)
	km.nFeatures_ = len(rows[0])

	// 初期medoid: 相異なるk行をランダムに選択
	medoidIndices := make([]int, km.nClusters)
	perm := km.rng.Perm(n)
	copy(medoidIndices, perm[:km.nClusters])

	labels := make([]int, n)

	var iter int
	for iter = 0; iter < km.maxIter; iter++ {
		medoids := gatherRows(rows, medoidIndices)

		// 割り当てフェーズ: 最近傍medoid（同距離の場合はインデックスの小さい方）
		parallel.ParallelizeWithThreshold(n, 256, func(start, end int) {
			for i := start; i < end; i++ {
				labels[i] = nearestVector(rows[i], medoids)
			}
		})

		// 更新フェーズ: クラスタ内の距離総和を最小にするメンバーを新medoidにする
		changed := false
		for c := 0; c < km.nClusters; c++ {
			var members []int
			for i, label := range labels {
				if label == c {
					members = append(members, i)
				}
			}
			if len(members) == 0 {
				// 空クラスタ: medoidは変更しない
				continue
			}

			bestIdx := -1
			bestCost := math.Inf(1)
			for _, candidate := range members {
				cost := 0.0
				for _, other := range members {
					cost += euclideanDistance(rows[candidate], rows[other])
				}
				if cost < bestCost {
					bestCost = cost
					bestIdx = candidate
				}
			}

			if bestIdx != medoidIndices[c] {
				medoidIndices[c] = bestIdx
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	km.medoidIndices_ = medoidIndices
	km.medoids_ = gatherRows(rows, medoidIndices)
	km.labels_ = labels
	km.nIter_ = iter

	km.SetFitted()
	return nil
}

// FitPredict は学習を実行し、各サンプルのクラスタラベルを返す
func (km *KMedoids) FitPredict(X mat.Matrix) ([]int, error) {
	if err := km.Fit(X); err != nil {
		return nil, err
	}
	return km.Labels(), nil
}

// Labels は学習データのクラスタラベルを返す
func (km *KMedoids) Labels() []int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return copyLabels(km.labels_)
}

// MedoidIndices は各medoidのサンプルインデックスを返す
func (km *KMedoids) MedoidIndices() []int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return copyLabels(km.medoidIndices_)
}

// Medoids は学習されたmedoidの特徴ベクトルを返す
func (km *KMedoids) Medoids() [][]float64 {
	km.mu.RLock()
	defer km.mu.RUnlock()

	medoids := make([][]float64, len(km.medoids_))
	for i := range km.medoids_ {
		medoids[i] = make([]float64, len(km.medoids_[i]))
		copy(medoids[i], km.medoids_[i])
	}
	return medoids
}

// NIterations は実行された学習イテレーション数を返す
func (km *KMedoids) NIterations() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.nIter_
}

// NClusters はクラスタ数を返す
func (km *KMedoids) NClusters() int {
	return km.nClusters
}

// GetParams はモデルのハイパーパラメータを返す
func (km *KMedoids) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_clusters":   km.nClusters,
		"max_iter":     km.maxIter,
		"random_state": km.randomState,
	}
}

// gatherRows は指定インデックスの行をコピーして集める
func gatherRows(rows [][]float64, indices []int) [][]float64 {
	out := make([][]float64, len(indices))
	for i, idx := range indices {
		out[i] = make([]float64, len(rows[idx]))
		copy(out[i], rows[idx])
	}
	return out
}
