package telemetry

import (
	"encoding/json"
	"io"

	"github.com/rs/zerolog"

	"github.com/weavetree/core/config"
	"github.com/weavetree/core/mcts"
)

// Logger emits weavetree's three run/iteration events. It writes the
// stable text form as the Msg of a zerolog event (so a caller gets one
// coherent operational log stream, the way the teacher's searcher package
// logs through github.com/rs/zerolog/log), and optionally mirrors each
// event as a newline-delimited JSON object to a separate writer — the
// format §6 calls the "object form".
type Logger struct {
	sink  zerolog.Logger
	jsonl io.Writer
}

// NewLogger builds a Logger. jsonl may be nil to skip the object-form
// stream entirely.
func NewLogger(sink zerolog.Logger, jsonl io.Writer) *Logger {
	return &Logger{sink: sink, jsonl: jsonl}
}

// RunStarted emits a run_started event for cfg.
func (l *Logger) RunStarted(cfg config.Config) error {
	ev := RunStartedEvent{
		IterationsRequested: cfg.Iterations,
		C:                   cfg.C,
		Gamma:               cfg.Gamma,
		MaxSteps:            cfg.MaxSteps,
		ReturnType:          cfg.ReturnType.String(),
		FixedHorizonSteps:   cfg.FixedHorizonSteps,
	}
	l.sink.Info().Msg(ev.TextLine())
	return l.writeJSONL(ev)
}

// IterationCompleted emits an iteration_completed event, numbering
// iterations from 1.
func (l *Logger) IterationCompleted(iteration int, m mcts.IterationMetrics) error {
	ev := IterationCompletedEvent{
		Iteration:     iteration,
		LeafNodeId:    m.LeafNodeId.Int(),
		LeafIsNew:     m.LeafIsNew,
		PathLen:       m.PathLen,
		RewardPrefix:  m.RewardPrefixSum,
		RolloutReturn: m.RolloutReturn,
		TotalReturn:   m.TotalReturn,
		NodeCount:     m.NodeCount,
	}
	l.sink.Debug().Msg(ev.TextLine())
	return l.writeJSONL(ev)
}

// RunCompleted emits a run_completed event summarizing run.
func (l *Logger) RunCompleted(run mcts.RunMetrics) error {
	ev := RunCompletedEvent{
		IterationsRequested: run.IterationsRequested,
		IterationsCompleted: run.IterationsCompleted,
		TotalReturnSum:      run.TotalReturnSum,
		AverageTotalReturn:  run.AverageTotalReturn,
	}
	l.sink.Info().Msg(ev.TextLine())
	return l.writeJSONL(ev)
}

func (l *Logger) writeJSONL(event any) error {
	if l.jsonl == nil {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = l.jsonl.Write(data)
	return err
}
