package scenario

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"finboard/internal/amqp"
	"finboard/internal/catalog"
	"finboard/internal/clock"
	"finboard/internal/core"
	"finboard/internal/format"
	"finboard/internal/gesture"
	"finboard/internal/interaction"
	"finboard/internal/log"
)

// Epoch is the virtual time at which every replay starts.
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

const offsetTolerance = 1e-9

// Mode decides whether failed expectations fail the run.
type Mode int

const (
	Strict Mode = iota
	LogOnly
)

// Publisher receives one message per replayed scenario.
type Publisher interface {
	PublishScenarioResult(ctx context.Context, msg *amqp.ScenarioResultMessage) error
}

// Options configures replays. Zero values pick defaults.
type Options struct {
	Base      interaction.Config
	Mode      Mode
	Catalog   catalog.Lookup
	Formatter format.Formatter
	Logger    *log.Logger

	// RunID tags every result of a RunFiles call; a random one is
	// generated when empty.
	RunID       string
	Concurrency int
	Publisher   Publisher
}

// Failure is one unmet expectation.
type Failure struct {
	Step    int
	Action  Action
	Message string
}

func (f Failure) String() string {
	return fmt.Sprintf("step %d (%s): %s", f.Step, f.Action, f.Message)
}

// Result is the outcome of one replay.
type Result struct {
	RunID    string
	Name     string
	Path     string
	Passed   bool
	Failures []Failure
	Rows     []interaction.RowView
	Selected []string
	Summary  core.Summary
}

// Message converts the result for publishing.
func (r *Result) Message() *amqp.ScenarioResultMessage {
	failures := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		failures = append(failures, f.String())
	}
	return amqp.NewScenarioResultMessage(r.RunID, r.Name, r.Passed, failures, r.Rows)
}

// Run replays sc on a fresh list driven by a manual clock. The clock is
// advanced to each step's time before the step runs, firing any due
// long-press or hint timers first. Without opts.Logger it logs to the
// logger carried by ctx.
func Run(ctx context.Context, sc *Scenario, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = log.FromContext(ctx)
	}
	logger := opts.Logger.WithComponent(log.ComponentReplay).With(log.FieldScenario, sc.Name)

	txns, err := sc.Transactions()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	clk := clock.NewManual(Epoch)
	list, err := interaction.NewList(sc.Config(opts.Base), txns, interaction.Options{
		Clock:     clk,
		Catalog:   opts.Catalog,
		Formatter: opts.Formatter,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	res := &Result{RunID: opts.RunID, Name: sc.Name, Path: sc.Path}
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		at := Epoch.Add(msDuration(step.AtMs))
		clk.AdvanceTo(at)

		out, err := apply(list, step, at)
		if err != nil {
			res.Failures = append(res.Failures, Failure{Step: i, Action: step.Action, Message: err.Error()})
			continue
		}
		if step.Expect != nil {
			res.Failures = append(res.Failures, check(i, step, list, out)...)
		}
	}

	res.Rows = list.Views()
	res.Selected = list.Selected()
	res.Summary = list.SelectionSummary()
	res.Passed = len(res.Failures) == 0 || opts.Mode == LogOnly

	for _, f := range res.Failures {
		logger.Warn("Expectation not met", log.FieldStep, f.Step, log.FieldError, f.Message)
	}
	logger.Info("Scenario replayed",
		log.FieldSuccess, res.Passed,
		"failures", len(res.Failures),
		"steps", len(sc.Steps))
	return res, nil
}

func apply(list *interaction.List, step Step, at time.Time) (interaction.Outcome, error) {
	point := []gesture.Point{{X: step.X, Y: step.Y}}
	switch step.Action {
	case ActionPress:
		return list.Dispatch(gesture.Event{Kind: gesture.PressStart, Touches: point, At: at, Target: step.Row}), nil
	case ActionMove:
		return list.Dispatch(gesture.Event{Kind: gesture.PressMove, Touches: point, At: at, Target: step.Row}), nil
	case ActionRelease:
		return list.Dispatch(gesture.Event{Kind: gesture.PressEnd, At: at, Target: step.Row}), nil
	case ActionHint:
		_, err := list.PlayHint(step.Row)
		return interaction.Outcome{RowID: step.Row}, err
	case ActionReset:
		return interaction.Outcome{RowID: step.Row}, list.Reset(step.Row)
	case ActionResetAll:
		list.ResetAll()
	case ActionExitSelection:
		list.ExitSelection()
	case ActionWait:
	}
	return interaction.Outcome{RowID: step.Row}, nil
}

func check(i int, step Step, list *interaction.List, out interaction.Outcome) []Failure {
	e := step.Expect
	var failures []Failure
	fail := func(msg string, args ...any) {
		failures = append(failures, Failure{Step: i, Action: step.Action, Message: fmt.Sprintf(msg, args...)})
	}

	rowID := e.Row
	if rowID == "" {
		rowID = step.Row
	}
	if rowID == "" {
		rowID = out.RowID
	}

	needsRow := e.Offset != nil || e.Direction != nil || e.Open != nil || e.Selected != nil
	var state gesture.State
	if needsRow {
		row, ok := list.Row(rowID)
		if !ok {
			fail("no row to check")
			return failures
		}
		state = row.State()
	}

	if e.Offset != nil && math.Abs(state.Offset-*e.Offset) > offsetTolerance {
		fail("row %s offset = %v, want %v", rowID, state.Offset, *e.Offset)
	}
	if e.Direction != nil {
		want := strings.ToLower(*e.Direction)
		if want == "" {
			want = "none"
		}
		if got := directionName(state.Direction); got != want {
			fail("row %s direction = %s, want %s", rowID, got, want)
		}
	}
	if e.Open != nil && state.IsOpen != *e.Open {
		fail("row %s open = %v, want %v", rowID, state.IsOpen, *e.Open)
	}
	if e.Gesture != nil {
		want, _ := interaction.ParseGesture(*e.Gesture)
		if out.Gesture != want {
			fail("gesture = %s, want %s", out.Gesture, want)
		}
	}
	if e.Selecting != nil && list.Selecting() != *e.Selecting {
		fail("selecting = %v, want %v", list.Selecting(), *e.Selecting)
	}
	if e.Selected != nil {
		got := false
		for _, id := range list.Selected() {
			if id == rowID {
				got = true
				break
			}
		}
		if got != *e.Selected {
			fail("row %s selected = %v, want %v", rowID, got, *e.Selected)
		}
	}
	if e.SuppressScroll != nil && out.SuppressScroll != *e.SuppressScroll {
		fail("suppress_scroll = %v, want %v", out.SuppressScroll, *e.SuppressScroll)
	}
	return failures
}

// RunFiles loads and replays every path, at most opts.Concurrency at a
// time. Results keep the order of paths. When a Publisher is set each
// result is published before RunFiles returns.
func RunFiles(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.Logger == nil {
		opts.Logger = log.FromContext(ctx)
	}
	opts.Logger = opts.Logger.With(log.FieldRunID, opts.RunID)
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	results := make([]*Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			sc, err := Load(path)
			if err != nil {
				return err
			}
			res, err := Run(ctx, sc, opts)
			if err != nil {
				return err
			}
			if opts.Publisher != nil {
				if err := opts.Publisher.PublishScenarioResult(ctx, res.Message()); err != nil {
					return fmt.Errorf("publish %s: %w", sc.Name, err)
				}
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Failed counts the results that did not pass.
func Failed(results []*Result) int {
	n := 0
	for _, r := range results {
		if r != nil && !r.Passed {
			n++
		}
	}
	return n
}

func msDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
