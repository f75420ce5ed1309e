// Package optim provides parameter search over simulation runs.
package optim

import (
	"context"
	"math"
)

// Evaluator runs one trial with the given parameter values and returns
// the objective to minimize.
type Evaluator func(ctx context.Context, params map[string]float64) (float64, error)

// GridSearch exhaustively evaluates the cartesian product of the
// configured parameter ranges.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search returns the best parameter assignment and its objective
// value. Trials that error are skipped; context cancellation stops the
// search with the best result found so far.
func (g *GridSearch) Search(ctx context.Context, eval Evaluator) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), eval, &best, &bestParams)

	if err := ctx.Err(); err != nil {
		return bestParams, best, err
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	eval Evaluator,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		val, err := eval(ctx, current)
		if err != nil {
			return
		}
		if val < *best {
			*best = val
			picked := make(map[string]float64, len(current))
			for k, v := range current {
				picked[k] = v
			}
			*bestParams = picked
		}
		return
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		g.searchRecursive(ctx, depth+1, current, eval, best, bestParams)
	}
	delete(current, name)
}

// Span returns n evenly spaced values across [lo, hi] inclusive.
func Span(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	step := (hi - lo) / float64(n-1)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	return vals
}
