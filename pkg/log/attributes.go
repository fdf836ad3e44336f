// Package log defines standard attribute keys for machine learning operations.
//
// Using these keys keeps fit/predict/transform logs consistent across the
// clustering, classification and preprocessing packages, which makes the
// structured output filterable by downstream log tooling.
package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of estimator.
	// Examples: "KMeans", "DBSCAN", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "fit_transform"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "cluster", "neighbors", "preprocessing", "metrics"
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"
)

// Training progress.
const (
	// IterationKey records the current iteration of an iterative algorithm.
	IterationKey = "training.iteration"

	// InertiaKey records the within-cluster sum of squared distances.
	InertiaKey = "training.inertia"

	// ClustersKey records the number of clusters produced or requested.
	ClustersKey = "training.clusters"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute value constants for common operations.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
)
