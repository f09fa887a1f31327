// Package reduce provides the partition execution primitives used by the
// fitting core: a bounded-parallel per-partition map and a tree reduction over
// partial results. Combine functions handed to Tree must be associative and
// commutative so the tree shape only affects floating point summation order.
package reduce

import (
	"errors"
	"runtime"
	"sync"
)

// DefaultBranchFactor is the tree reduction fan-in used when none is given.
const DefaultBranchFactor = 2

var ErrNoPartials = errors.New("no partial results to reduce")

// Map runs fn once per partition index and returns the results index-aligned
// with the input. At most parallelism invocations run concurrently; values
// below 1 fall back to GOMAXPROCS.
func Map[T any](parts int, fn func(i int) T, parallelism int) []T {
	if parallelism < 1 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	out := make([]T, parts)
	sem := make(chan struct{}, parallelism)
	var wg sync.WaitGroup
	for i := 0; i < parts; i++ {
		sem <- struct{}{}
		wg.Add(1)

		go func(i int) {
			defer func() {
				wg.Done()
				<-sem
			}()
			out[i] = fn(i)
		}(i)
	}
	wg.Wait()

	return out
}

// Tree combines the partials into a single value using a tree with the given
// branching factor. A branch factor below 2 falls back to DefaultBranchFactor.
// The tree bounds the longest combine chain to ceil(log_b(len(partials)))
// levels instead of a linear fold.
func Tree[T any](partials []T, combine func(a, b T) T, branch int) (T, error) {
	var zero T
	if len(partials) == 0 {
		return zero, ErrNoPartials
	}
	if branch < 2 {
		branch = DefaultBranchFactor
	}

	level := make([]T, len(partials))
	copy(level, partials)
	for len(level) > 1 {
		next := make([]T, 0, (len(level)+branch-1)/branch)
		for i := 0; i < len(level); i += branch {
			group := level[i]
			for j := i + 1; j < i+branch && j < len(level); j++ {
				group = combine(group, level[j])
			}
			next = append(next, group)
		}
		level = next
	}
	return level[0], nil
}
