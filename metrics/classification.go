package metrics

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/moxer-mmh/Data-Analysis-And-Mining/pkg/errors"
)

// AccuracyScore は正解率（完全一致したラベルの割合）を計算する
func AccuracyScore(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validateLabelVectors("AccuracyScore", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ConfusionMatrix は混同行列を計算する
//
// 観測されたクラス（真値と予測値の和集合、昇順ソート）上の正方行列を返す。
// matrix[i][j] は真のクラスclasses[i]がclasses[j]と予測された回数。
func ConfusionMatrix(yTrue, yPred *mat.VecDense) (*mat.Dense, []float64, error) {
	n, err := validateLabelVectors("ConfusionMatrix", yTrue, yPred)
	if err != nil {
		return nil, nil, err
	}

	classes := observedClasses(yTrue, yPred)
	classToIdx := make(map[float64]int, len(classes))
	for i, c := range classes {
		classToIdx[c] = i
	}

	matrix := mat.NewDense(len(classes), len(classes), nil)
	for i := 0; i < n; i++ {
		ti := classToIdx[yTrue.AtVec(i)]
		pi := classToIdx[yPred.AtVec(i)]
		matrix.Set(ti, pi, matrix.At(ti, pi)+1)
	}

	return matrix, classes, nil
}

// PrecisionPerClass はクラスごとの適合率 TP/(TP+FP) を計算する
//
// 戻り値は（観測されたクラスの昇順リスト, 対応するスコア）。
// 分母が0のクラスは0.0となり、UndefinedMetricWarningが発生する。
func PrecisionPerClass(yTrue, yPred *mat.VecDense) ([]float64, []float64, error) {
	n, err := validateLabelVectors("PrecisionScore", yTrue, yPred)
	if err != nil {
		return nil, nil, err
	}

	classes := observedClasses(yTrue, yPred)
	scores := make([]float64, len(classes))
	for ci, class := range classes {
		tp, fp := 0, 0
		for i := 0; i < n; i++ {
			if yPred.AtVec(i) != class {
				continue
			}
			if yTrue.AtVec(i) == class {
				tp++
			} else {
				fp++
			}
		}
		if tp+fp == 0 {
			errors.Warn(errors.NewUndefinedMetricWarning("precision",
				fmt.Sprintf("no predicted samples for class %g", class), 0.0))
			continue
		}
		scores[ci] = float64(tp) / float64(tp+fp)
	}
	return classes, scores, nil
}

// RecallPerClass はクラスごとの再現率 TP/(TP+FN) を計算する
func RecallPerClass(yTrue, yPred *mat.VecDense) ([]float64, []float64, error) {
	n, err := validateLabelVectors("RecallScore", yTrue, yPred)
	if err != nil {
		return nil, nil, err
	}

	classes := observedClasses(yTrue, yPred)
	scores := make([]float64, len(classes))
	for ci, class := range classes {
		tp, fn := 0, 0
		for i := 0; i < n; i++ {
			if yTrue.AtVec(i) != class {
				continue
			}
			if yPred.AtVec(i) == class {
				tp++
			} else {
				fn++
			}
		}
		if tp+fn == 0 {
			errors.Warn(errors.NewUndefinedMetricWarning("recall",
				fmt.Sprintf("no true samples for class %g", class), 0.0))
			continue
		}
		scores[ci] = float64(tp) / float64(tp+fn)
	}
	return classes, scores, nil
}

// F1PerClass はクラスごとのF1スコア（適合率と再現率の調和平均）を計算する
// 適合率と再現率が共に0のクラスは0.0となる。
func F1PerClass(yTrue, yPred *mat.VecDense) ([]float64, []float64, error) {
	classes, precisions, err := PrecisionPerClass(yTrue, yPred)
	if err != nil {
		return nil, nil, err
	}
	_, recalls, err := RecallPerClass(yTrue, yPred)
	if err != nil {
		return nil, nil, err
	}

	scores := make([]float64, len(classes))
	for i := range classes {
		p, r := precisions[i], recalls[i]
		if p+r == 0 {
			continue
		}
		scores[i] = 2 * p * r / (p + r)
	}
	return classes, scores, nil
}

// PrecisionScore はマクロ平均適合率（クラスごとの適合率の単純平均）を計算する
func PrecisionScore(yTrue, yPred *mat.VecDense) (float64, error) {
	_, scores, err := PrecisionPerClass(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return stat.Mean(scores, nil), nil
}

// RecallScore はマクロ平均再現率を計算する
func RecallScore(yTrue, yPred *mat.VecDense) (float64, error) {
	_, scores, err := RecallPerClass(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return stat.Mean(scores, nil), nil
}

// F1Score はマクロ平均F1スコアを計算する
func F1Score(yTrue, yPred *mat.VecDense) (float64, error) {
	_, scores, err := F1PerClass(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return stat.Mean(scores, nil), nil
}

// validateLabelVectors はラベルベクトルの長さを検証する
func validateLabelVectors(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError(op, "nil label vector")
	}
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// observedClasses は真値と予測値に現れるクラスの和集合を昇順で返す
func observedClasses(yTrue, yPred *mat.VecDense) []float64 {
	seen := make(map[float64]struct{})
	for i := 0; i < yTrue.Len(); i++ {
		seen[yTrue.AtVec(i)] = struct{}{}
	}
	for i := 0; i < yPred.Len(); i++ {
		seen[yPred.AtVec(i)] = struct{}{}
	}

	classes := make([]float64, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Float64s(classes)
	return classes
}
