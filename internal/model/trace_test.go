package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutionTrace_UpdatePredicateDistances(t *testing.T) {
	trace := NewExecutionTrace()

	trace.UpdatePredicateDistances(0, 5, 0)
	trace.UpdatePredicateDistances(0, 2, 3)
	trace.UpdatePredicateDistances(1, 0, 1)

	assert.Equal(t, map[int]int{0: 2, 1: 1}, trace.ExecutedPredicates)
	assert.Equal(t, map[int]float64{0: 2, 1: 0}, trace.TrueDistances)
	assert.Equal(t, map[int]float64{0: 0, 1: 1}, trace.FalseDistances)
}

func TestExecutionTrace_NaNDistanceIsReplaced(t *testing.T) {
	trace := NewExecutionTrace()

	trace.UpdatePredicateDistances(0, math.NaN(), math.NaN())
	assert.Equal(t, math.Inf(1), trace.TrueDistances[0])

	trace.UpdatePredicateDistances(0, 0, 2)
	assert.Equal(t, 0.0, trace.TrueDistances[0])
	assert.Equal(t, 2.0, trace.FalseDistances[0])

	merged := NewExecutionTrace()
	merged.TrueDistances[1] = 3

	other := NewExecutionTrace()
	other.TrueDistances[1] = math.NaN()
	other.TrueDistances[2] = math.NaN()

	merged.Merge(other)
	assert.Equal(t, 3.0, merged.TrueDistances[1])
	assert.Equal(t, math.Inf(1), merged.TrueDistances[2])
}

func TestExecutionTrace_Merge(t *testing.T) {
	a := NewExecutionTrace()
	a.ExecutedCodeObjects.Add(0)
	a.CoveredLineIDs.Add(1)
	a.UpdatePredicateDistances(0, 4, 0)

	b := NewExecutionTrace()
	b.ExecutedCodeObjects.Add(1)
	b.CoveredLineIDs.Add(1)
	b.CoveredLineIDs.Add(2)
	b.UpdatePredicateDistances(0, 0, 7)
	b.UpdatePredicateDistances(2, 1, 0)

	a.Merge(b)

	assert.Equal(t, []int{0, 1}, a.ExecutedCodeObjects.Sorted())
	assert.Equal(t, []int{1, 2}, a.CoveredLineIDs.Sorted())
	assert.Equal(t, map[int]int{0: 2, 2: 1}, a.ExecutedPredicates)
	assert.Equal(t, map[int]float64{0: 0, 2: 1}, a.TrueDistances)
	assert.Equal(t, map[int]float64{0: 0, 2: 0}, a.FalseDistances)
}

func TestExecutionTrace_CloneIsIndependent(t *testing.T) {
	trace := NewExecutionTrace()
	trace.ExecutedCodeObjects.Add(3)

	clone := trace.Clone()
	clone.ExecutedCodeObjects.Add(4)
	clone.UpdatePredicateDistances(0, 1, 0)

	assert.Equal(t, []int{3}, trace.ExecutedCodeObjects.Sorted())
	assert.Empty(t, trace.ExecutedPredicates)
	assert.Equal(t, []int{3, 4}, clone.ExecutedCodeObjects.Sorted())
}

func TestValueTypeOf(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  ValueType
		ok    bool
	}{
		{"int", int64(1), ValueInt, true},
		{"float", 1.5, ValueFloat, true},
		{"string", "a", ValueString, true},
		{"bool", true, "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ValueTypeOf(tt.value)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestValueSet_Sorted(t *testing.T) {
	assert.Equal(t, []any{int64(-2), int64(1), int64(9)}, NewValueSet(int64(9), int64(-2), int64(1), int64(9)).Sorted())
	assert.Equal(t, []any{"a", "b"}, NewValueSet("b", "a").Sorted())
}
