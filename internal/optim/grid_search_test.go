package optim

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestSearchFindsMinimum(t *testing.T) {
	g := NewGridSearch(
		[]string{"a", "b"},
		[][]float64{Span(-2, 2, 5), Span(-2, 2, 5)},
	)

	// Quadratic bowl centered at (1, -1).
	best, val, err := g.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		da, db := p["a"]-1, p["b"]+1
		return da*da + db*db, nil
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if best["a"] != 1 || best["b"] != -1 {
		t.Errorf("expected minimum at (1,-1), got (%f,%f)", best["a"], best["b"])
	}
	if val != 0 {
		t.Errorf("expected objective 0, got %f", val)
	}
}

func TestSearchSkipsFailedTrials(t *testing.T) {
	g := NewGridSearch([]string{"x"}, [][]float64{{1, 2, 3}})

	best, val, err := g.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		if p["x"] == 1 {
			return 0, errors.New("diverged")
		}
		return p["x"], nil
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if best["x"] != 2 || val != 2 {
		t.Errorf("expected best x=2, got x=%f val=%f", best["x"], val)
	}
}

func TestSearchCancellation(t *testing.T) {
	g := NewGridSearch([]string{"x"}, [][]float64{Span(0, 1, 100)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, val, err := g.Search(ctx, func(context.Context, map[string]float64) (float64, error) {
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !math.IsInf(val, 1) {
		t.Errorf("canceled search should keep +Inf objective, got %f", val)
	}
}

func TestSpan(t *testing.T) {
	vals := Span(0, 1, 3)
	want := []float64{0, 0.5, 1}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("Span[%d] = %f, want %f", i, vals[i], want[i])
		}
	}
	if got := Span(5, 9, 1); len(got) != 1 || got[0] != 5 {
		t.Errorf("Span with n=1: %v", got)
	}
}
