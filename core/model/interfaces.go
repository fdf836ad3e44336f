// Package model defines the interfaces shared by every estimator in the
// library: supervised models, data transformers and clusterers.
package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Model は教師あり学習モデルの基本インターフェース
type Model interface {
	Fitter
	Predictor
}

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// InverseTransformer is implemented by transformers that can map transformed
// data back to the original feature space.
type InverseTransformer interface {
	Transformer

	// InverseTransform reverses the transformation applied by Transform.
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}

// Clusterer is the interface for unsupervised clustering estimators.
// Fit partitions the samples of X; the resulting assignment is exposed
// through Labels, index-aligned with the rows of X. A label of -1 marks a
// sample that no cluster claimed (noise).
type Clusterer interface {
	// Fit computes the clustering of X.
	Fit(X mat.Matrix) error

	// Labels returns the cluster label of each training sample.
	Labels() []int

	// NClusters returns the number of clusters found during fitting.
	NClusters() int
}

// Classifier combines the interfaces implemented by classification models.
type Classifier interface {
	Fitter
	Predictor

	// Classes returns the unique class labels seen during fitting.
	Classes() []float64
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}
