package interaction

import (
	"errors"
	"fmt"
	"sync"

	"finboard/internal/catalog"
	"finboard/internal/clock"
	"finboard/internal/core"
	"finboard/internal/format"
	"finboard/internal/gesture"
	"finboard/internal/log"
)

var (
	ErrUnknownRow   = errors.New("unknown row")
	ErrDuplicateRow = errors.New("duplicate row id")
)

// Outcome is what the list reports after dispatching one event.
type Outcome struct {
	RowID string `json:"rowId"`
	// Gesture is set on press-end only.
	Gesture        Gesture       `json:"gesture"`
	State          gesture.State `json:"state"`
	SuppressScroll bool          `json:"suppressScroll"`
	Selecting      bool          `json:"selecting"`
	Selected       bool          `json:"selected"`
}

// Options carries the list's collaborators. Nil fields get defaults.
type Options struct {
	Clock     clock.Clock
	Catalog   catalog.Lookup
	Formatter format.Formatter
	Logger    *log.Logger
	// Actions are the static controls shown when the detectors are off.
	Actions []Action
}

// List coordinates the rows of one transaction list: selection mode, the
// single-open policy and external resets. Lock order is List, then Row.
type List struct {
	mu  sync.Mutex
	cfg Config

	rows  []*Row
	index map[string]*Row

	active    *Row
	selecting bool
	selected  map[string]struct{}

	catalog   catalog.Lookup
	formatter format.Formatter
	actions   []Action
	logger    *log.Logger
}

// NewList builds a list over txns in display order. Every transaction must
// validate and carry a unique ID.
func NewList(cfg Config, txns []core.Transaction, opts Options) (*List, error) {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.NewMemory(nil)
	}
	if opts.Formatter == nil {
		opts.Formatter = format.Plain{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Actions == nil {
		opts.Actions = DefaultActions()
	}

	l := &List{
		cfg:       cfg,
		index:     make(map[string]*Row, len(txns)),
		selected:  make(map[string]struct{}),
		catalog:   opts.Catalog,
		formatter: opts.Formatter,
		actions:   opts.Actions,
		logger:    opts.Logger.WithComponent(log.ComponentInteraction),
	}

	for _, txn := range txns {
		if err := txn.Validate(); err != nil {
			return nil, fmt.Errorf("row %q: %w", txn.ID, err)
		}
		if _, ok := l.index[txn.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRow, txn.ID)
		}
		row := newRow(txn, cfg, opts.Clock, l.longPressed)
		l.rows = append(l.rows, row)
		l.index[txn.ID] = row
	}
	return l, nil
}

// Dispatch routes ev to the row named by ev.Target, or to the row of the
// current press when the target is empty. Events for unknown rows are
// ignored.
func (l *List) Dispatch(ev gesture.Event) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	row := l.routeLocked(ev)
	if row == nil {
		return Outcome{}
	}

	switch ev.Kind {
	case gesture.PressStart:
		l.active = row
	case gesture.PressEnd:
		if l.active == row {
			l.active = nil
		}
	}

	out := row.handle(ev)
	if revealed(ev.Kind, out.State) {
		l.closeOthersLocked(row)
	}

	if out.Gesture == GestureTap && l.selecting {
		l.toggleLocked(row.ID())
	}
	out.Selecting = l.selecting
	_, out.Selected = l.selected[row.ID()]

	if ev.Kind == gesture.PressEnd && out.Gesture != GestureNone {
		l.logger.Debug("Gesture resolved",
			append(log.NewFields().
				WithRow(row.ID()).
				WithState(out.State).
				ToSlice(), log.FieldGesture, out.Gesture.String())...)
	}
	return out
}

// PlayHint previews the swipe affordance on a row. It returns false when
// the row's detectors are disabled.
func (l *List) PlayHint(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	row, ok := l.index[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownRow, id)
	}
	return row.playHint(), nil
}

// Reset springs one row back to neutral.
func (l *List) Reset(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	row, ok := l.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRow, id)
	}
	row.reset()
	return nil
}

// ResetAll springs every row back, e.g. when an edit dialog opens.
func (l *List) ResetAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, row := range l.rows {
		row.reset()
	}
}

// ExitSelection leaves selection mode, clears the selection and re-enables
// the detectors on touch platforms.
func (l *List) ExitSelection() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.selecting {
		return
	}
	l.selecting = false
	l.selected = make(map[string]struct{})
	for _, row := range l.rows {
		row.setDetectorsEnabled(l.cfg.detectorsEnabled())
	}
	l.logger.Info("Selection mode exited")
}

// Selecting reports whether the list is in selection mode.
func (l *List) Selecting() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.selecting
}

// Selected returns the selected row IDs in display order.
func (l *List) Selected() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var ids []string
	for _, row := range l.rows {
		if _, ok := l.selected[row.ID()]; ok {
			ids = append(ids, row.ID())
		}
	}
	return ids
}

// SelectionSummary aggregates the selected transactions.
func (l *List) SelectionSummary() core.Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	var txns []core.Transaction
	for _, row := range l.rows {
		if _, ok := l.selected[row.ID()]; ok {
			txns = append(txns, row.Transaction())
		}
	}
	return core.Summarize(txns)
}

// Row returns the row with the given ID.
func (l *List) Row(id string) (*Row, bool) {
	row, ok := l.index[id]
	return row, ok
}

// Len returns the number of rows.
func (l *List) Len() int {
	return len(l.rows)
}

func (l *List) routeLocked(ev gesture.Event) *Row {
	if ev.Target != "" {
		return l.index[ev.Target]
	}
	return l.active
}

// revealed reports whether a row now shows its actions: it is past the open
// threshold mid-drag, or it snapped to an action area on release. A snap can
// rest at or below the threshold, so IsOpen alone misses it.
func revealed(kind gesture.EventKind, s gesture.State) bool {
	return s.IsOpen || (kind == gesture.PressEnd && s.Offset != 0)
}

// closeOthersLocked springs back every other row that is displaced.
func (l *List) closeOthersLocked(open *Row) {
	for _, row := range l.rows {
		if row != open && row.State().Offset != 0 {
			row.reset()
		}
	}
}

func (l *List) toggleLocked(id string) {
	if _, ok := l.selected[id]; ok {
		delete(l.selected, id)
		return
	}
	l.selected[id] = struct{}{}
}

// longPressed is the rows' long-press hook. It runs on the timer's
// goroutine without any row lock held.
func (l *List) longPressed(row *Row) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.selecting {
		l.selecting = true
		for _, r := range l.rows {
			r.setDetectorsEnabled(false)
		}
		l.logger.Info("Selection mode entered", log.FieldRowID, row.ID())
	}
	l.selected[row.ID()] = struct{}{}
}
