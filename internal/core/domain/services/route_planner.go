package services

import (
	"math"

	"dispatch/internal/core/domain/model/kernel"
)

// RoutePlanner orders stops using a greedy nearest-neighbor algorithm.
//
// The algorithm minimizes immediate travel distance at each step. It does not
// attempt global route optimization (e.g. VRP solvers). The design
// prioritizes determinism and simplicity over optimality.
type RoutePlanner struct{}

// NewRoutePlanner creates a new RoutePlanner instance.
func NewRoutePlanner() RoutePlanner {
	return RoutePlanner{}
}

// PlanSequence returns the visiting order of destinations as indices into the
// input slice, starting from start, with the leg distance in kilometers for
// each chosen stop. When two candidates are equally distant, the one earlier
// in the input wins, so planning is deterministic.
func (p RoutePlanner) PlanSequence(start kernel.GeoPoint, destinations []kernel.GeoPoint) ([]int, []float64) {
	if len(destinations) == 0 {
		return []int{}, []float64{}
	}

	visited := make([]bool, len(destinations))
	sequence := make([]int, 0, len(destinations))
	legsKm := make([]float64, 0, len(destinations))
	current := start

	for len(sequence) < len(destinations) {
		best := -1
		bestDistance := math.MaxFloat64

		// Greedy step: pick the closest unvisited destination. Strict
		// less-than keeps the earliest input index on ties.
		for i, d := range destinations {
			if visited[i] {
				continue
			}
			distance := DistanceKm(current, d)
			if distance < bestDistance {
				bestDistance = distance
				best = i
			}
		}

		visited[best] = true
		sequence = append(sequence, best)
		legsKm = append(legsKm, bestDistance)
		current = destinations[best]
	}

	return sequence, legsKm
}
