// Package scenario replays scripted touch sequences against an interaction
// list on a virtual clock and checks the resulting states.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"finboard/internal/core"
	"finboard/internal/gesture"
	"finboard/internal/interaction"
)

var (
	ErrNoSteps        = errors.New("scenario has no steps")
	ErrUnknownAction  = errors.New("unknown action")
	ErrUnknownRow     = errors.New("unknown row")
	ErrNonMonotonic   = errors.New("step time goes backwards")
	ErrInvalidExpect  = errors.New("invalid expectation")
	ErrInvalidRow     = errors.New("invalid row")
	ErrInvalidSetting = errors.New("invalid setting")
)

// Action is what a step does.
type Action string

const (
	ActionPress         Action = "press"
	ActionMove          Action = "move"
	ActionRelease       Action = "release"
	ActionWait          Action = "wait"
	ActionHint          Action = "hint"
	ActionReset         Action = "reset"
	ActionResetAll      Action = "reset_all"
	ActionExitSelection Action = "exit_selection"
)

var knownActions = map[Action]bool{
	ActionPress:         true,
	ActionMove:          true,
	ActionRelease:       true,
	ActionWait:          true,
	ActionHint:          true,
	ActionReset:         true,
	ActionResetAll:      true,
	ActionExitSelection: true,
}

// rowRequired lists actions that must name a row. Moves and releases may
// omit it and follow the active press.
var rowRequired = map[Action]bool{
	ActionPress: true,
	ActionHint:  true,
	ActionReset: true,
}

// Scenario is a scripted interaction session.
type Scenario struct {
	Name     string         `yaml:"name"`
	Platform string         `yaml:"platform"`
	Swipe    SwipeOverrides `yaml:"swipe"`

	LongPressDelayMs *int     `yaml:"long_press_delay_ms"`
	HintDelayMs      *int     `yaml:"hint_delay_ms"`
	HintDistance     *float64 `yaml:"hint_distance"`

	Rows  []Row  `yaml:"rows"`
	Steps []Step `yaml:"steps"`

	// Path is the file the scenario was loaded from, if any.
	Path string `yaml:"-"`
}

// SwipeOverrides replaces individual swipe settings of the base
// configuration.
type SwipeOverrides struct {
	DistanceThreshold       *float64 `yaml:"distance_threshold"`
	LeftSnapDistance        *float64 `yaml:"left_snap_distance"`
	RightSnapDistance       *float64 `yaml:"right_snap_distance"`
	DampingFactor           *float64 `yaml:"damping_factor"`
	FastVelocityThreshold   *float64 `yaml:"fast_velocity_threshold"`
	FastThresholdMultiplier *float64 `yaml:"fast_threshold_multiplier"`
}

// Row is one transaction of the scenario's list.
type Row struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Amount      string `yaml:"amount"`
	Category    string `yaml:"category"`
	Date        string `yaml:"date"`
}

// Step is one scripted action at a point in virtual time.
type Step struct {
	AtMs   int64   `yaml:"at_ms"`
	Row    string  `yaml:"row"`
	Action Action  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Expect *Expect `yaml:"expect"`
}

// Expect lists the checks made after a step. Unset fields are not checked.
type Expect struct {
	// Row selects the row whose state is checked; it defaults to the
	// step's row.
	Row            string   `yaml:"row"`
	Offset         *float64 `yaml:"offset"`
	Direction      *string  `yaml:"direction"`
	Open           *bool    `yaml:"open"`
	Gesture        *string  `yaml:"gesture"`
	Selecting      *bool    `yaml:"selecting"`
	Selected       *bool    `yaml:"selected"`
	SuppressScroll *bool    `yaml:"suppress_scroll"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	sc.Path = path
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

// Parse decodes and validates a scenario. Unknown keys are rejected.
func Parse(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoSteps
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks steps, rows and expectations.
func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return ErrNoSteps
	}
	if _, err := interaction.ParsePlatform(sc.Platform); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}

	rows := make(map[string]bool, len(sc.Rows))
	for i, row := range sc.Rows {
		if _, err := row.transaction(); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if rows[row.ID] {
			return fmt.Errorf("row %d: %w: duplicate id %q", i, ErrInvalidRow, row.ID)
		}
		rows[row.ID] = true
	}

	var last int64
	for i, step := range sc.Steps {
		if !knownActions[step.Action] {
			return fmt.Errorf("step %d: %w %q", i, ErrUnknownAction, step.Action)
		}
		if step.AtMs < last {
			return fmt.Errorf("step %d: %w (%dms after %dms)", i, ErrNonMonotonic, step.AtMs, last)
		}
		last = step.AtMs

		if step.Row != "" || rowRequired[step.Action] {
			if !rows[step.Row] {
				return fmt.Errorf("step %d: %w %q", i, ErrUnknownRow, step.Row)
			}
		}
		if step.Expect != nil {
			if err := step.Expect.validate(rows); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
	}
	return nil
}

func (e *Expect) validate(rows map[string]bool) error {
	if e.Row != "" && !rows[e.Row] {
		return fmt.Errorf("%w %q", ErrUnknownRow, e.Row)
	}
	if e.Direction != nil {
		switch strings.ToLower(*e.Direction) {
		case "", "none", "left", "right":
		default:
			return fmt.Errorf("%w: direction %q", ErrInvalidExpect, *e.Direction)
		}
	}
	if e.Gesture != nil {
		if _, err := interaction.ParseGesture(*e.Gesture); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidExpect, err)
		}
	}
	return nil
}

func (r Row) transaction() (core.Transaction, error) {
	amount, err := core.ParseAmount(r.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("%w: amount %q: %v", ErrInvalidRow, r.Amount, err)
	}
	txn := core.Transaction{
		ID:          r.ID,
		Description: r.Description,
		Amount:      amount,
		Category:    r.Category,
	}
	if r.Date != "" {
		d, err := core.ParseDate(r.Date)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("%w: date %q: %v", ErrInvalidRow, r.Date, err)
		}
		txn.Date = d
	}
	if err := txn.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("%w: %v", ErrInvalidRow, err)
	}
	return txn, nil
}

// Transactions converts the scenario rows.
func (sc *Scenario) Transactions() ([]core.Transaction, error) {
	txns := make([]core.Transaction, 0, len(sc.Rows))
	for _, row := range sc.Rows {
		txn, err := row.transaction()
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// Config applies the scenario's overrides to base.
func (sc *Scenario) Config(base interaction.Config) interaction.Config {
	cfg := base
	if sc.Platform != "" {
		cfg.Platform, _ = interaction.ParsePlatform(sc.Platform)
	}

	o := sc.Swipe
	setFloat(&cfg.Swipe.DistanceThreshold, o.DistanceThreshold)
	setFloat(&cfg.Swipe.LeftSnapDistance, o.LeftSnapDistance)
	setFloat(&cfg.Swipe.RightSnapDistance, o.RightSnapDistance)
	setFloat(&cfg.Swipe.DampingFactor, o.DampingFactor)
	setFloat(&cfg.Swipe.FastVelocityThreshold, o.FastVelocityThreshold)
	setFloat(&cfg.Swipe.FastThresholdMultiplier, o.FastThresholdMultiplier)

	if sc.LongPressDelayMs != nil {
		cfg.LongPress.Delay = msDuration(int64(*sc.LongPressDelayMs))
	}
	if sc.HintDelayMs != nil {
		cfg.HintDelay = msDuration(int64(*sc.HintDelayMs))
	}
	setFloat(&cfg.HintDistance, sc.HintDistance)
	return cfg
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func directionName(d gesture.Direction) string {
	if d == gesture.DirectionNone {
		return "none"
	}
	return d.String()
}
