package model

import "math"

// ExecutionTrace records what one run executed.
type ExecutionTrace struct {
	ExecutedCodeObjects IDSet
	ExecutedPredicates  map[int]int
	TrueDistances       map[int]float64
	FalseDistances      map[int]float64
	CoveredLineIDs      IDSet
}

// NewExecutionTrace creates an empty trace.
func NewExecutionTrace() ExecutionTrace {
	return ExecutionTrace{
		ExecutedCodeObjects: NewIDSet(),
		ExecutedPredicates:  make(map[int]int),
		TrueDistances:       make(map[int]float64),
		FalseDistances:      make(map[int]float64),
		CoveredLineIDs:      NewIDSet(),
	}
}

// UpdatePredicateDistances counts one execution of predicate and keeps the
// pointwise minimum of the observed distances.
func (t *ExecutionTrace) UpdatePredicateDistances(predicate int, distanceTrue, distanceFalse float64) {
	t.ExecutedPredicates[predicate]++

	keepMin(t.TrueDistances, predicate, distanceTrue)
	keepMin(t.FalseDistances, predicate, distanceFalse)
}

// Merge folds other into t: sets are united, counts summed and distances
// minimised.
func (t *ExecutionTrace) Merge(other ExecutionTrace) {
	for id := range other.ExecutedCodeObjects {
		t.ExecutedCodeObjects.Add(id)
	}

	for id := range other.CoveredLineIDs {
		t.CoveredLineIDs.Add(id)
	}

	for id, count := range other.ExecutedPredicates {
		t.ExecutedPredicates[id] += count
	}

	mergeMin(t.TrueDistances, other.TrueDistances)
	mergeMin(t.FalseDistances, other.FalseDistances)
}

func mergeMin(dst, src map[int]float64) {
	for id, d := range src {
		keepMin(dst, id, d)
	}
}

// keepMin stores d under id unless a smaller distance is stored. NaN counts
// as +Inf.
func keepMin(dst map[int]float64, id int, d float64) {
	if math.IsNaN(d) {
		d = math.Inf(1)
	}

	if old, ok := dst[id]; !ok || d < old {
		dst[id] = d
	}
}

// Clone deep-copies the trace.
func (t ExecutionTrace) Clone() ExecutionTrace {
	out := NewExecutionTrace()
	out.Merge(t)

	return out
}
