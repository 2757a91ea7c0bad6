package pipeline

import "convoy-pipeline/internal/model"

// DefaultRouteLength is the distance of the fixed route profile
const DefaultRouteLength = 4.5

// Scorer rates a vehicle's suitability for the route on a 0..6 scale
type Scorer struct {
	RouteLength float64
}

// NewScorer returns a scorer for the given route length, falling back to
// DefaultRouteLength when it is not positive.
func NewScorer(routeLength float64) Scorer {
	if routeLength <= 0 {
		routeLength = DefaultRouteLength
	}
	return Scorer{RouteLength: routeLength}
}

// Score is the sum of the pitstop, fuel and capacity sub-scores. A zero engine
// capacity yields infinite (or NaN) pitstops, which scores 0.
func (s Scorer) Score(v model.Vehicle) int {
	fuelBurned := s.RouteLength * float64(v.FuelConsumption)
	pitstops := fuelBurned / float64(v.EngineCapacity)
	return scorePitstops(pitstops) + scoreFuel(fuelBurned) + scoreCapacity(v.MaximumLoad)
}

// ScoreFleet scores every vehicle independently, preserving order
func (s Scorer) ScoreFleet(fleet model.Fleet) []model.ScoredVehicle {
	out := make([]model.ScoredVehicle, len(fleet))
	for i, v := range fleet {
		out[i] = model.ScoredVehicle{Vehicle: v, Score: s.Score(v)}
	}
	return out
}

func scorePitstops(pitstops float64) int {
	switch {
	case pitstops < 1:
		return 2
	case pitstops < 2:
		return 1
	default:
		return 0
	}
}

func scoreFuel(fuelBurned float64) int {
	if fuelBurned <= 230 {
		return 2
	}
	return 1
}

func scoreCapacity(load int) int {
	if load < 20 {
		return 0
	}
	return 2
}
