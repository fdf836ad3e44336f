// Package mining is the numerical core of the Data-Analysis-And-Mining
// application: a small machine learning library with a scikit-learn-like
// API built on gonum matrices.
//
// The library covers:
//
//   - Clustering: cluster.KMeans, cluster.KMedoids, cluster.AGNES,
//     cluster.DIANA and cluster.DBSCAN, all over Euclidean distance.
//   - Classification: neighbors.KNNClassifier and naivebayes.GaussianNB.
//   - Preprocessing: preprocessing.Imputer, preprocessing.MinMaxScaler and
//     preprocessing.StandardScaler, each with Fit/Transform/FitTransform.
//   - Model selection: modelselection.TrainTestSplit.
//   - Metrics: accuracy, confusion matrix and macro-averaged
//     precision/recall/F1 in the metrics package.
//
// # Quick start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/moxer-mmh/Data-Analysis-And-Mining/cluster"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 2, []float64{0, 0, 0, 1, 5, 5, 5, 6})
//
//	    km := cluster.NewKMeans(2, cluster.WithKMeansRandomState(42))
//	    labels, err := km.FitPredict(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(labels)
//	}
//
// All estimators own their fitted state: each call to Fit replaces the
// previous result, and accessors return copies so callers cannot mutate
// fitted parameters. Distinct instances are fully independent.
package mining
