package stats

import (
	"math/big"

	"github.com/ddirect/container/fifo"
	"golang.org/x/exp/constraints"
)

// Running tracks the mean and sample standard deviation of a sliding window
// of integer samples. Sums and squared sums are kept in big.Int since
// squared nanosecond-scale samples overflow int64 immediately.
type Running[T constraints.Signed] struct {
	window fifo.Fifo[T]
	sum    big.Int
	sqSum  big.Int
	u, v   big.Int // scratch
	limit  int
	spread float64
	mean   T
	stdDev T
}

// New returns a window holding at most limit samples. Once full, a new
// sample is accepted only if it lies within spread standard deviations of
// the current mean; accepted samples evict the oldest entry.
func New[T constraints.Signed](limit int, spread float64) *Running[T] {
	return &Running[T]{
		limit:  limit,
		spread: spread,
	}
}

// Add folds x into the window and reports whether it was accepted.
func (r *Running[T]) Add(x T) bool {
	if r.Len() >= r.limit {
		dev := T(float64(r.stdDev) * r.spread)
		if x < r.mean-dev || x > r.mean+dev {
			return false
		}
		r.evict()
	}

	t := r.u.SetInt64(int64(x))
	r.sum.Add(&r.sum, t)
	r.sqSum.Add(&r.sqSum, t.Mul(t, t))
	r.window.Enqueue(x)
	r.refresh()
	return true
}

func (r *Running[T]) evict() {
	x, ok := r.window.Dequeue()
	if !ok {
		return
	}
	t := r.u.SetInt64(int64(x))
	r.sum.Sub(&r.sum, t)
	r.sqSum.Sub(&r.sqSum, t.Mul(t, t))
}

func (r *Running[T]) refresh() {
	n := uint64(r.Len())

	if n < 1 {
		r.mean = 0
	} else {
		r.mean = T(r.u.Div(&r.sum, r.v.SetUint64(n)).Int64())
	}

	if n < 2 {
		r.stdDev = 0
		return
	}

	// sample variance: (n*sqSum - sum^2) / (n*(n-1))
	u := &r.u
	v := &r.v
	u.Mul(u.SetUint64(n), &r.sqSum)
	u.Sub(u, v.Mul(&r.sum, &r.sum))
	v.Mul(v.SetUint64(n), big.NewInt(int64(n-1)))
	r.stdDev = T(u.Div(u, v).Sqrt(u).Uint64())
}

func (r *Running[T]) Len() int {
	return r.window.Len()
}

func (r *Running[T]) Mean() T {
	return r.mean
}

func (r *Running[T]) StdDev() T {
	return r.stdDev
}
