package log

import "finboard/internal/gesture"

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRunID       = "run_id"
	FieldScenario    = "scenario"
	FieldStep        = "step"
	FieldRowID       = "row_id"
	FieldGesture     = "gesture"
	FieldOffset      = "offset"
	FieldDirection   = "direction"
	FieldOpen        = "open"
	FieldAxis        = "axis"
	FieldSelected    = "selected"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldPath        = "path"
	FieldDuration    = "duration_ms"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
)

// Components defines standard component names
const (
	ComponentApp         = "app"
	ComponentGesture     = "gesture"
	ComponentInteraction = "interaction"
	ComponentReplay      = "replay"
	ComponentCatalog     = "catalog"
	ComponentStorage     = "storage"
	ComponentAMQP        = "amqp"
	ComponentCache       = "cache"
)

// Operations defines standard operation names
const (
	OpRead     = "read"
	OpList     = "list"
	OpUpsert   = "upsert"
	OpSeed     = "seed"
	OpReplay   = "replay"
	OpPublish  = "publish"
	OpValidate = "validate"
	OpParse    = "parse"
	OpMigrate  = "migrate"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithRow adds the row identifier
func (f LogFields) WithRow(id string) LogFields {
	f[FieldRowID] = id
	return f
}

// WithState adds swipe state fields
func (f LogFields) WithState(s gesture.State) LogFields {
	f[FieldOffset] = s.Offset
	f[FieldDirection] = s.Direction.String()
	f[FieldOpen] = s.IsOpen
	return f
}

// WithScenario adds scenario replay fields
func (f LogFields) WithScenario(name, runID string) LogFields {
	f[FieldScenario] = name
	if runID != "" {
		f[FieldRunID] = runID
	}
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
