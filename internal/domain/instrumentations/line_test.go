package instrumentations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/coverprobe/internal/domain/instrumentations/mocks"
	"github.com/mouse-blink/coverprobe/internal/model"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

func lineIDsByNumber(tracer *mocks.MockTracer) {
	tracer.EXPECT().RegisterLine(mock.Anything).
		RunAndReturn(func(meta model.LineMetaData) int { return meta.LineNumber * 10 })
}

func TestLineCoverage_RegistersEveryLine(t *testing.T) {
	tracer := mocks.NewMockTracer(t)

	var registered []model.LineMetaData

	tracer.EXPECT().RegisterLine(mock.Anything).
		RunAndReturn(func(meta model.LineMetaData) int {
			registered = append(registered, meta)

			return len(registered) - 1
		})

	instrument(t, compareSource, NewLineCoverage(tracer))

	assert.Equal(t, []model.LineMetaData{
		{CodeObjectID: 0, Filename: "positive.cov", LineNumber: 2},
		{CodeObjectID: 0, Filename: "positive.cov", LineNumber: 3},
		{CodeObjectID: 0, Filename: "positive.cov", LineNumber: 4},
	}, registered)
}

func TestLineCoverage_TracksVisitedLines(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		input   any
		visited []int
	}{
		{name: "if branch", src: compareSource, input: int64(1), visited: []int{20, 30}},
		{name: "else branch", src: compareSource, input: int64(-1), visited: []int{20, 40}},
		{name: "two lines in one block", src: straightSource, input: int64(1), visited: []int{20, 30}},
		{name: "loop body", src: loopSource, input: int64(2), visited: []int{20, 20, 30, 20, 30, 20, 40}},
		{name: "loop never entered", src: loopSource, input: int64(0), visited: []int{20, 20, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer := mocks.NewMockTracer(t)
			lineIDsByNumber(tracer)

			var visited []int

			tracer.EXPECT().TrackLineVisit(testThread, mock.Anything).
				Run(func(_ vm.ThreadID, id int) { visited = append(visited, id) })

			unit := instrument(t, tt.src, NewLineCoverage(tracer))

			_, err := call(unit, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.visited, visited)
		})
	}
}
