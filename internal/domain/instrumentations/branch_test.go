package instrumentations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/coverprobe/internal/bytecode"
	"github.com/mouse-blink/coverprobe/internal/domain/instrumentations/mocks"
	"github.com/mouse-blink/coverprobe/internal/model"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

func TestBranchCoverage_ComparePredicate(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{name: "true branch", input: 5, expected: "pos"},
		{name: "false branch", input: -3, expected: "neg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer := mocks.NewMockTracer(t)
			tracer.EXPECT().
				RegisterPredicate(model.PredicateMetaData{CodeObjectID: 0, Line: 2, Kind: model.PredicateCompare}).
				Return(0).Once()
			tracer.EXPECT().ExecutedCodeObject(testThread, 0).Return().Once()
			tracer.EXPECT().
				ExecutedComparePredicate(testThread, tt.input, int64(0), 0, bytecode.CompareGT).
				Return().Once()

			unit := instrument(t, compareSource, NewBranchCoverage(tracer))

			res, err := call(unit, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res)
		})
	}
}

func TestBranchCoverage_BoolPredicate(t *testing.T) {
	tracer := mocks.NewMockTracer(t)
	tracer.EXPECT().RegisterPredicate(mock.Anything).Return(4).Once()
	tracer.EXPECT().ExecutedCodeObject(testThread, 0).Return().Twice()
	tracer.EXPECT().ExecutedBoolPredicate(testThread, "x", 4).Return().Once()
	tracer.EXPECT().ExecutedBoolPredicate(testThread, "", 4).Return().Once()

	unit := instrument(t, boolSource, NewBranchCoverage(tracer))

	res, err := call(unit, "x")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res)

	res, err = call(unit, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res)
}

func TestBranchCoverage_ForLoop(t *testing.T) {
	tracer := mocks.NewMockTracer(t)
	tracer.EXPECT().
		RegisterPredicate(model.PredicateMetaData{CodeObjectID: 0, Line: 2, Kind: model.PredicateForLoop}).
		Return(0).Once()
	tracer.EXPECT().ExecutedCodeObject(testThread, 0).Return().Once()
	tracer.EXPECT().ExecutedBoolPredicate(testThread, true, 0).Return().Times(3)
	tracer.EXPECT().ExecutedBoolPredicate(testThread, false, 0).Return().Once()

	unit := instrument(t, loopSource, NewBranchCoverage(tracer))

	res, err := call(unit, int64(3))
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestBranchCoverage_ForLoopNeverEntered(t *testing.T) {
	tracer := mocks.NewMockTracer(t)
	tracer.EXPECT().RegisterPredicate(mock.Anything).Return(0).Once()
	tracer.EXPECT().ExecutedCodeObject(testThread, 0).Return().Once()
	tracer.EXPECT().ExecutedBoolPredicate(testThread, false, 0).Return().Once()

	unit := instrument(t, loopSource, NewBranchCoverage(tracer))

	_, err := call(unit, int64(0))
	require.NoError(t, err)
}

func TestBranchCoverage_ExceptionMatch(t *testing.T) {
	t.Run("matching handler", func(t *testing.T) {
		raised := vm.NewException(vm.ValueError, "boom")

		tracer := mocks.NewMockTracer(t)
		tracer.EXPECT().
			RegisterPredicate(model.PredicateMetaData{CodeObjectID: 0, Line: 4, Kind: model.PredicateException}).
			Return(0).Once()
		tracer.EXPECT().ExecutedCodeObject(testThread, 0).Return().Once()
		tracer.EXPECT().ExecutedExceptionMatch(testThread, raised, vm.ValueError, 0).Return().Once()

		unit := instrument(t, guardSource, NewBranchCoverage(tracer))

		res, err := call(unit, raised)
		require.NoError(t, err)
		assert.Equal(t, "handled", res)
	})

	t.Run("exception propagates", func(t *testing.T) {
		raised := vm.NewException(vm.TypeError, "nope")

		tracer := mocks.NewMockTracer(t)
		tracer.EXPECT().RegisterPredicate(mock.Anything).Return(0).Once()
		tracer.EXPECT().ExecutedCodeObject(testThread, 0).Return().Once()
		tracer.EXPECT().ExecutedExceptionMatch(testThread, raised, vm.ValueError, 0).Return().Once()

		unit := instrument(t, guardSource, NewBranchCoverage(tracer))

		_, err := call(unit, raised)
		require.ErrorIs(t, err, raised)
	})
}

func TestBranchCoverage_BranchLess(t *testing.T) {
	tracer := mocks.NewMockTracer(t)
	tracer.EXPECT().RegisterBranchLessCodeObject(0).Return().Once()
	tracer.EXPECT().ExecutedCodeObject(testThread, 0).Return().Once()

	unit := instrument(t, straightSource, NewBranchCoverage(tracer))

	res, err := call(unit, int64(41))
	require.NoError(t, err)
	assert.Equal(t, int64(42), res)
}

func TestBranchCoverage_ProbesAreArtificial(t *testing.T) {
	tracer := mocks.NewMockTracer(t)
	tracer.EXPECT().RegisterPredicate(mock.Anything).Return(0).Once()

	original := bytecode.MustAssemble(compareSource)
	unit := instrument(t, compareSource, NewBranchCoverage(tracer))

	// entry probe (4) + compare probe (7)
	assert.Len(t, unit.Code, len(original.Code)+11)
	assert.Equal(t, bytecode.COMPARE_OP, unit.Code[4+2+7].Op)
	assert.False(t, unit.Instrumented)
}
