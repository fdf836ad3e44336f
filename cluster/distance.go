// Package cluster はクラスタリングアルゴリズム（K-Means, K-Medoids, AGNES, DIANA, DBSCAN）を提供する。
// 全てのアルゴリズムはユークリッド距離に基づき、入力行列をコピーして扱う（呼び出し側のデータは変更しない）。
package cluster

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
)

// euclideanDistance はユークリッド距離を計算
func euclideanDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// matrixRows は入力行列を行スライスにコピーする
func matrixRows(X mat.Matrix) [][]float64 {
	r, _ := X.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, X)
	}
	return rows
}

// validateClusterInput は入力行列とクラスタ数を検証する
func validateClusterInput(op string, X mat.Matrix, k int) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if k < 2 {
		return errors.NewValidationError("k", "number of clusters must be at least 2", k)
	}
	if k > r {
		return errors.NewValidationError("k", "number of clusters cannot exceed number of samples", k)
	}
	return nil
}

// copyLabels はラベルスライスのコピーを返す（nil安全）
func copyLabels(labels []int) []int {
	if labels == nil {
		return nil
	}
	out := make([]int, len(labels))
	copy(out, labels)
	return out
}

// labelsFromPartition はクラスタ分割（インデックス集合の列）からラベルベクトルを構築する
func labelsFromPartition(n int, clusters [][]int) []int {
	labels := make([]int, n)
	for clusterID, members := range clusters {
		for _, idx := range members {
			labels[idx] = clusterID
		}
	}
	return labels
}
