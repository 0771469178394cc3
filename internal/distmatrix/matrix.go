// Package distmatrix builds and caches all pairwise distances among the
// depot and the customer set for a single planning request.
package distmatrix

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"irp-planner/internal/domain"
	"irp-planner/internal/geo"
	"irp-planner/internal/ports"
)

// concurrentThreshold is the node count (customers plus the depot) above
// which row computation is fanned out across a bounded worker pool. Below
// it, goroutine overhead would dominate the haversine arithmetic itself.
const concurrentThreshold = 32

// Matrix holds symmetric pairwise distances, keyed by dense node index.
// Node 0 is always the depot; nodes 1..N are customers in request order.
// Lookup is O(1).
type Matrix struct {
	n    int
	dist [][]float64
}

// Build computes the full distance matrix once for a planning request.
func Build(depot domain.Depot, customers []domain.Customer) *Matrix {
	n := len(customers) + 1

	lats := make([]float64, n)
	lons := make([]float64, n)
	lats[0], lons[0] = depot.Lat, depot.Lon
	for i, c := range customers {
		lats[i+1], lons[i+1] = c.Lat, c.Lon
	}

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}

	computeRow := func(i int) {
		for j := i + 1; j < n; j++ {
			d := geo.DistanceKM(lats[i], lons[i], lats[j], lons[j])
			dist[i][j] = d
			dist[j][i] = d
		}
	}

	if n <= concurrentThreshold {
		for i := 0; i < n; i++ {
			computeRow(i)
		}
		return &Matrix{n: n, dist: dist}
	}

	// Rows are independent: each goroutine only ever writes entries whose
	// row or column index it owns, so no synchronization is needed beyond
	// the final WaitGroup barrier.
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	if workers < 1 {
		workers = 1
	}

	rowCh := make(chan int, n)
	for i := 0; i < n; i++ {
		rowCh <- i
	}
	close(rowCh)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rowCh {
				computeRow(i)
			}
		}()
	}
	wg.Wait()

	return &Matrix{n: n, dist: dist}
}

// BuildCached builds the matrix for depot/customers, consulting cache first
// and populating it on a miss. A nil cache always falls through to Build,
// so callers without a configured cache pay no extra cost.
func BuildCached(ctx context.Context, depot domain.Depot, customers []domain.Customer, cache ports.DistanceCache) (*Matrix, error) {
	if cache == nil {
		return Build(depot, customers), nil
	}

	n := len(customers) + 1
	sig := Signature(depot, customers)

	entries, ok, err := cache.GetMatrix(ctx, sig)
	if err != nil {
		return nil, fmt.Errorf("distance matrix: cache lookup: %w", err)
	}
	if ok {
		dist := make([][]float64, n)
		for i := range dist {
			dist[i] = make([]float64, n)
		}
		for _, e := range entries {
			if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
				return nil, fmt.Errorf("distance matrix: cached entry out of range: from=%d to=%d n=%d", e.From, e.To, n)
			}
			dist[e.From][e.To] = e.KM
			dist[e.To][e.From] = e.KM
		}
		return &Matrix{n: n, dist: dist}, nil
	}

	m := Build(depot, customers)

	toStore := make([]ports.DistanceCacheEntry, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			toStore = append(toStore, ports.DistanceCacheEntry{From: i, To: j, KM: m.dist[i][j]})
		}
	}
	if err := cache.PutMatrix(ctx, sig, n, toStore); err != nil {
		return nil, fmt.Errorf("distance matrix: cache store: %w", err)
	}

	return m, nil
}

// Lookup returns the distance in kilometres between two dense node indices.
// It errors only on an out-of-range index, which a correctly constructed
// Matrix never produces for indices derived from its own customer slice.
func (m *Matrix) Lookup(i, j int) (float64, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, fmt.Errorf("distance matrix: index out of range: i=%d j=%d n=%d", i, j, m.n)
	}
	return m.dist[i][j], nil
}

// N returns the number of nodes (depot + customers).
func (m *Matrix) N() int {
	return m.n
}
