package cluster

import (
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/core/model"
	"github.com/moxer-mmh/Data-Analysis-And-Mining/core/parallel"
	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
	mlog "github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/log"
)

// KMeans はLloyd法によるK-meansクラスタリング
// 重心（centroid）はクラスタに割り当てられたサンプルの平均ベクトル
type KMeans struct {
	model.BaseEstimator

	// ハイパーパラメータ
	nClusters   int     // クラスタ数
	maxIter     int     // 最大イテレーション数
	tol         float64 // 収束判定の許容誤差（要素ごと）
	randomState int64   // 乱数シード（負の場合は時刻ベース）

	// 学習パラメータ
	centroids_ [][]float64 // クラスタ重心（nClusters x nFeatures）
	labels_    []int       // 各サンプルのクラスタラベル
	inertia_   float64     // クラスタ内平方和誤差
	nIter_     int         // 実行されたイテレーション数

	// 内部状態
	mu         sync.RWMutex
	rng        *rand.Rand
	nFeatures_ int
}

// KMeansOption はKMeansの設定オプション
type KMeansOption func(*KMeans)

// WithKMeansMaxIter は最大イテレーション数を設定
func WithKMeansMaxIter(maxIter int) KMeansOption {
	return func(km *KMeans) {
		km.maxIter = maxIter
	}
}

// WithKMeansTol は収束判定の許容誤差を設定
func WithKMeansTol(tol float64) KMeansOption {
	return func(km *KMeans) {
		km.tol = tol
	}
}

// WithKMeansRandomState は乱数シードを設定
func WithKMeansRandomState(seed int64) KMeansOption {
	return func(km *KMeans) {
		km.randomState = seed
	}
}

// NewKMeans は新しいKMeansを作成する
//
// 使用例:
//
//	km := cluster.NewKMeans(3, cluster.WithKMeansRandomState(42))
//	labels, err := km.FitPredict(X)
func NewKMeans(k int, options ...KMeansOption) *KMeans {
	km := &KMeans{
		nClusters:   k,
		maxIter:     100,
		tol:         1e-4,
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

// Fit はK-meansクラスタリングを実行する
//
// 初期重心はk個の相異なるサンプル行を一様ランダムに選ぶ。
// 各イテレーションで最近傍重心への割り当てと重心の再計算を繰り返し、
// 全ての重心の全座標の移動量がtol未満になった時点で収束とみなす。
// 空クラスタの重心はランダムなサンプル行で再初期化される。
func (km *KMeans) Fit(X mat.Matrix) error {
	km.mu.Lock()
	defer km.mu.Unlock()

	if err := validateClusterInput("KMeans.Fit", X, km.nClusters); err != nil {
		return err
	}

	rows := matrixRows(X)
	n := len(rows)
	km.nFeatures_ = len(rows[0])

	// 初期重心: 相異なるk行をランダムに選択
	centroids := make([][]float64, km.nClusters)
	perm := km.rng.Perm(n)
	for i := 0; i < km.nClusters; i++ {
		centroids[i] = make([]float64, km.nFeatures_)
		copy(centroids[i], rows[perm[i]])
	}

	labels := make([]int, n)
	converged := false

	var iter int
	for iter = 0; iter < km.maxIter; iter++ {
		// 割り当てフェーズ: 最近傍重心（同距離の場合はインデックスの小さい方）
		parallel.ParallelizeWithThreshold(n, 256, func(start, end int) {
			for i := start; i < end; i++ {
				labels[i] = nearestVector(rows[i], centroids)
			}
		})

		// 更新フェーズ: 各クラスタの平均を新しい重心にする
		newCentroids := make([][]float64, km.nClusters)
		counts := make([]int, km.nClusters)
		for c := range newCentroids {
			newCentroids[c] = make([]float64, km.nFeatures_)
		}
		for i, label := range labels {
			counts[label]++
			for j, v := range rows[i] {
				newCentroids[label][j] += v
			}
		}
		for c := range newCentroids {
			if counts[c] == 0 {
				// 空クラスタはランダムなサンプル行で再初期化する
				copy(newCentroids[c], rows[km.rng.Intn(n)])
				continue
			}
			for j := range newCentroids[c] {
				newCentroids[c][j] /= float64(counts[c])
			}
		}

		// 収束判定: 全重心・全座標の移動量がtol未満
		done := true
		for c := range centroids {
			for j := range centroids[c] {
				if math.Abs(newCentroids[c][j]-centroids[c][j]) >= km.tol {
					done = false
					break
				}
			}
			if !done {
				break
			}
		}

		centroids = newCentroids
		if done {
			converged = true
			break
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("KMeans", km.maxIter, ""))
	}

	km.centroids_ = centroids
	km.labels_ = labels
	km.inertia_ = inertia(rows, centroids, labels)
	km.nIter_ = iter

	slog.Debug("kmeans fit finished",
		mlog.ModelNameKey, "KMeans",
		mlog.OperationKey, mlog.OperationFit,
		mlog.SamplesKey, n,
		mlog.FeaturesKey, km.nFeatures_,
		mlog.IterationKey, km.nIter_,
		mlog.InertiaKey, km.inertia_,
	)

	km.SetFitted()
	return nil
}

// FitPredict は学習を実行し、各サンプルのクラスタラベルを返す
func (km *KMeans) FitPredict(X mat.Matrix) ([]int, error) {
	if err := km.Fit(X); err != nil {
		return nil, err
	}
	return km.Labels(), nil
}

// Predict は入力データの各行を最近傍の学習済み重心に割り当てる
func (km *KMeans) Predict(X mat.Matrix) ([]int, error) {
	km.mu.RLock()
	defer km.mu.RUnlock()

	if !km.IsFitted() {
		return nil, errors.NewNotFittedError("KMeans", "Predict")
	}

	r, c := X.Dims()
	if c != km.nFeatures_ {
		return nil, errors.NewDimensionError("KMeans.Predict", km.nFeatures_, c, 1)
	}

	labels := make([]int, r)
	for i := 0; i < r; i++ {
		labels[i] = nearestVector(mat.Row(nil, i, X), km.centroids_)
	}
	return labels, nil
}

// Labels は学習データのクラスタラベルを返す
func (km *KMeans) Labels() []int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return copyLabels(km.labels_)
}

// ClusterCenters は学習されたクラスタ重心を返す
func (km *KMeans) ClusterCenters() [][]float64 {
	km.mu.RLock()
	defer km.mu.RUnlock()

	centers := make([][]float64, len(km.centroids_))
	for i := range km.centroids_ {
		centers[i] = make([]float64, len(km.centroids_[i]))
		copy(centers[i], km.centroids_[i])
	}
	return centers
}

// Inertia は慣性（割り当てられた重心までの距離の二乗和）を返す
func (km *KMeans) Inertia() float64 {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.inertia_
}

// NIterations は実行された学習イテレーション数を返す
func (km *KMeans) NIterations() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.nIter_
}

// NClusters はクラスタ数を返す
func (km *KMeans) NClusters() int {
	return km.nClusters
}

// GetParams はモデルのハイパーパラメータを返す
func (km *KMeans) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_clusters":   km.nClusters,
		"max_iter":     km.maxIter,
		"tol":          km.tol,
		"random_state": km.randomState,
	}
}

// nearestVector はvectorsの中でxに最も近いもののインデックスを返す
// 同距離の場合は先に現れたインデックスを採用する
func nearestVector(x []float64, vectors [][]float64) int {
	minDist := math.Inf(1)
	nearest := 0
	for i, v := range vectors {
		dist := euclideanDistance(x, v)
		if dist < minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest
}

// inertia は各サンプルから割り当て先中心までの距離の二乗和を計算する
func inertia(rows [][]float64, centers [][]float64, labels []int) float64 {
	sum := 0.0
	for i, label := range labels {
		d := euclideanDistance(rows[i], centers[label])
		sum += d * d
	}
	return sum
}
