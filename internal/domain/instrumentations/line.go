package instrumentations

import (
	"github.com/rs/zerolog"

	"github.com/mouse-blink/coverprobe/internal/cfg"
	"github.com/mouse-blink/coverprobe/internal/model"
	"github.com/mouse-blink/coverprobe/internal/vm"
)

// LineCoverage reports every visited source line.
type LineCoverage struct {
	NopAdapter

	tracer Tracer
	log    zerolog.Logger
	hook   *vm.Builtin
}

// NewLineCoverage creates the line coverage adapter.
func NewLineCoverage(tracer Tracer, opts ...Option) *LineCoverage {
	o := newOptions(opts)

	return &LineCoverage{
		tracer: tracer,
		log:    o.log,
		hook: vm.NewBuiltin("track_line_visit", func(th *vm.Thread, args []vm.Value) (vm.Value, error) {
			id, err := intArg(args, 0)
			if err != nil {
				return nil, err
			}

			tracer.TrackLineVisit(th.ID(), id)

			return nil, nil
		}),
	}
}

// VisitNode puts a probe in front of the first instruction of every line
// the block spans.
func (l *LineCoverage) VisitNode(graph *cfg.Graph, codeObjectID int, block *cfg.Block) {
	type lineStart struct {
		original int
		line     int
	}

	var starts []lineStart

	last := 0

	for n := 0; n < block.OriginalLen(); n++ {
		instr, _ := originalAt(block, n)
		if instr.Line != 0 && instr.Line != last {
			starts = append(starts, lineStart{original: n, line: instr.Line})
			last = instr.Line
		}
	}

	filename := graph.Unit().Filename

	for _, s := range starts {
		id := l.tracer.RegisterLine(model.LineMetaData{
			CodeObjectID: codeObjectID,
			Filename:     filename,
			LineNumber:   s.line,
		})
		l.log.Debug().Int("code_object", codeObjectID).Int("line", s.line).Int("line_id", id).Msg("instrumented line")

		p := newProbe(graph, s.line).
			constant(l.hook).
			constant(int64(id)).
			call(1)

		block.Insert(block.PositionOf(s.original), p.instrs()...)
	}
}

var _ Adapter = (*LineCoverage)(nil)

