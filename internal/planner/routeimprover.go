package planner

import (
	"fmt"

	"irp-planner/internal/distmatrix"
	"irp-planner/internal/domain"
)

// Improve2Opt applies first-improvement 2-opt to a tour (a permutation of
// customer indices implicitly bracketed by the depot at both ends),
// repeatedly reversing a contiguous segment whenever doing so strictly
// reduces total tour distance, restarting the scan after each accepted
// move. It terminates when a full scan finds no improvement. The visit set
// is unchanged; only order may change.
func Improve2Opt(route []int, customers []domain.Customer, matrix *distmatrix.Matrix) ([]int, error) {
	if len(route) < 3 {
		return route, nil
	}

	current := append([]int(nil), route...)
	currentDist, err := tourDistance(current, matrix)
	if err != nil {
		return nil, err
	}

	for {
		improved := false

		for i := 0; i <= len(current)-1 && !improved; i++ {
			for j := i + 2; j < len(current); j++ {
				candidate := reverseSegment(current, i+1, j)
				candidateDist, err := tourDistance(candidate, matrix)
				if err != nil {
					return nil, err
				}
				if candidateDist < currentDist {
					current = candidate
					currentDist = candidateDist
					improved = true
					break
				}
			}
		}

		if !improved {
			break
		}
	}

	return current, nil
}

// reverseSegment returns a copy of route with the closed interval [i, j]
// reversed.
func reverseSegment(route []int, i, j int) []int {
	out := append([]int(nil), route...)
	for lo, hi := i, j; lo < hi; lo, hi = lo+1, hi-1 {
		out[lo], out[hi] = out[hi], out[lo]
	}
	return out
}

// tourDistance computes depot -> route... -> depot total distance.
func tourDistance(route []int, matrix *distmatrix.Matrix) (float64, error) {
	total := 0.0
	prev := depotNode
	for _, idx := range route {
		node := idx + 1
		d, err := matrix.Lookup(prev, node)
		if err != nil {
			return 0, fmt.Errorf("tour distance: %w", err)
		}
		total += d
		prev = node
	}
	d, err := matrix.Lookup(prev, depotNode)
	if err != nil {
		return 0, fmt.Errorf("tour distance: return leg: %w", err)
	}
	total += d
	return total, nil
}
