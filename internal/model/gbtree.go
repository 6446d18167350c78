package model

import (
	"math"
	"math/rand"
	"sort"
)

// minSplitSamples is the smallest node a split may be attempted on.
const minSplitSamples = 2

// Hyperparameters control the boosting fit. These are tuning choices, not
// part of the service contract.
type Hyperparameters struct {
	Estimators   int
	LearningRate float64
	MaxDepth     int
	Subsample    float64 // fraction of rows per tree
	ColSample    float64 // fraction of features per tree
	Seed         int64
}

// DefaultHyperparameters returns the standing configuration.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		Estimators:   300,
		LearningRate: 0.05,
		MaxDepth:     5,
		Subsample:    0.8,
		ColSample:    0.8,
		Seed:         42,
	}
}

// treeNode is one node of a regression tree. Nodes live in a flat slice,
// children referenced by index, so the model gob-encodes cleanly.
type treeNode struct {
	Leaf      bool
	Value     float64 // leaf prediction
	Feature   int
	Threshold float64
	Left      int
	Right     int
}

type regressionTree struct {
	Nodes []treeNode
}

func (t *regressionTree) predict(x []float64) float64 {
	i := 0
	for !t.Nodes[i].Leaf {
		n := t.Nodes[i]
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}

// GradientBooster is an ensemble of regression trees fit stagewise to
// squared-error residuals.
type GradientBooster struct {
	BasePrediction float64
	LearningRate   float64
	Trees          []regressionTree
}

// Predict returns the ensemble prediction for one feature vector.
func (g *GradientBooster) Predict(x []float64) float64 {
	pred := g.BasePrediction
	for i := range g.Trees {
		pred += g.LearningRate * g.Trees[i].predict(x)
	}
	return pred
}

// fitBooster trains the ensemble on rows/targets. Each tree sees a random
// row subsample and feature subsample drawn from a seeded generator, so
// training is fully reproducible.
func fitBooster(rows [][]float64, targets []float64, hp Hyperparameters) *GradientBooster {
	rng := rand.New(rand.NewSource(hp.Seed))

	g := &GradientBooster{
		BasePrediction: mean(targets),
		LearningRate:   hp.LearningRate,
	}

	preds := make([]float64, len(targets))
	for i := range preds {
		preds[i] = g.BasePrediction
	}

	residuals := make([]float64, len(targets))
	for e := 0; e < hp.Estimators; e++ {
		for i := range targets {
			residuals[i] = targets[i] - preds[i]
		}

		rowIdx := sampleIndices(rng, len(rows), hp.Subsample)
		featIdx := sampleIndices(rng, len(rows[0]), hp.ColSample)

		b := &treeBuilder{
			rows:      rows,
			residuals: residuals,
			features:  featIdx,
			maxDepth:  hp.MaxDepth,
		}
		b.build(rowIdx, 0)
		tree := regressionTree{Nodes: b.nodes}

		for i := range rows {
			preds[i] += hp.LearningRate * tree.predict(rows[i])
		}
		g.Trees = append(g.Trees, tree)
	}

	return g
}

// treeBuilder grows one tree on the residuals, greedily choosing the split
// with the largest squared-error reduction.
type treeBuilder struct {
	rows      [][]float64
	residuals []float64
	features  []int
	maxDepth  int
	nodes     []treeNode
}

// build appends the subtree for idx and returns its root's node index.
func (b *treeBuilder) build(idx []int, depth int) int {
	if depth >= b.maxDepth || len(idx) < minSplitSamples {
		return b.leaf(idx)
	}

	feature, threshold, ok := b.bestSplit(idx)
	if !ok {
		return b.leaf(idx)
	}

	var left, right []int
	for _, i := range idx {
		if b.rows[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	// Reserve this node's slot before recursing.
	nodeIdx := len(b.nodes)
	b.nodes = append(b.nodes, treeNode{})
	leftIdx := b.build(left, depth+1)
	rightIdx := b.build(right, depth+1)
	b.nodes[nodeIdx] = treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      leftIdx,
		Right:     rightIdx,
	}
	return nodeIdx
}

func (b *treeBuilder) leaf(idx []int) int {
	var sum float64
	for _, i := range idx {
		sum += b.residuals[i]
	}
	value := 0.0
	if len(idx) > 0 {
		value = sum / float64(len(idx))
	}
	b.nodes = append(b.nodes, treeNode{Leaf: true, Value: value})
	return len(b.nodes) - 1
}

// bestSplit scans the sampled features for the split minimizing the summed
// squared error of the two children. Returns ok=false when no split
// improves on the unsplit node.
func (b *treeBuilder) bestSplit(idx []int) (feature int, threshold float64, ok bool) {
	var totalSum, totalSq float64
	for _, i := range idx {
		r := b.residuals[i]
		totalSum += r
		totalSq += r * r
	}
	n := float64(len(idx))
	parentSSE := totalSq - totalSum*totalSum/n

	bestGain := 1e-12
	sorted := make([]int, len(idx))

	for _, f := range b.features {
		copy(sorted, idx)
		sort.Slice(sorted, func(a, c int) bool { return b.rows[sorted[a]][f] < b.rows[sorted[c]][f] })

		var leftSum, leftSq float64
		for k := 0; k < len(sorted)-1; k++ {
			r := b.residuals[sorted[k]]
			leftSum += r
			leftSq += r * r

			v, next := b.rows[sorted[k]][f], b.rows[sorted[k+1]][f]
			if v == next {
				continue
			}

			nl := float64(k + 1)
			nr := n - nl
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)

			if gain := parentSSE - sse; gain > bestGain {
				bestGain = gain
				feature = f
				threshold = (v + next) / 2
				ok = true
			}
		}
	}

	return feature, threshold, ok
}

// sampleIndices draws a sorted sample of round(n*fraction) distinct indices.
func sampleIndices(rng *rand.Rand, n int, fraction float64) []int {
	k := int(math.Round(float64(n) * fraction))
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	perm := rng.Perm(n)[:k]
	sort.Ints(perm)
	return perm
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
