package game

import "math"

// Weights of the extended evaluation. They are tunable heuristics.
const (
	resourceProximityWeight = 10.0
	resourceCountPenalty    = 4.0
	huntWeight              = 200.0
	collisionPenalty        = 500.0
	threatWeight            = 10.0
)

// EvaluateScore returns the intrinsic score of the state
func EvaluateScore(s State) float64 {
	return s.Score()
}

// EvaluateBetter combines the intrinsic score with the distance to the nearest resource, the
// number of resources left and the distance to every adversary weighted by its scared timer.
// States that do not expose Features are scored by their intrinsic score alone.
func EvaluateBetter(s State) float64 {
	value := s.Score()
	f, ok := s.(Features)
	if !ok {
		return value
	}
	pos := f.ProtagonistPosition()

	resources := f.Resources()
	if len(resources) > 0 {
		nearest := math.MaxInt
		for _, r := range resources {
			nearest = min(nearest, pos.Distance(r))
		}
		value += resourceProximityWeight / float64(1+nearest)
		value -= resourceCountPenalty * float64(len(resources))
	}

	for _, adversary := range f.Adversaries() {
		d := pos.Distance(adversary.Position)
		switch {
		case adversary.ScaredTimer > d: // Reachable before it recovers
			value += huntWeight / float64(1+d)
		case d <= 1:
			value -= collisionPenalty
		default:
			value -= threatWeight / float64(1+d)
		}
	}
	return value
}
