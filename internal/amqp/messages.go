package amqp

import (
	"encoding/json"
	"time"

	"finboard/internal/interaction"
)

// ScenarioResultMessage reports the outcome of one replayed scenario.
type ScenarioResultMessage struct {
	RunID     string                `json:"run_id"`
	Scenario  string                `json:"scenario"`
	Passed    bool                  `json:"passed"`
	Failures  []string              `json:"failures,omitempty"`
	Rows      []interaction.RowView `json:"rows,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
}

// NewScenarioResultMessage creates a result message stamped with the
// current time.
func NewScenarioResultMessage(runID, scenario string, passed bool, failures []string, rows []interaction.RowView) *ScenarioResultMessage {
	return &ScenarioResultMessage{
		RunID:     runID,
		Scenario:  scenario,
		Passed:    passed,
		Failures:  failures,
		Rows:      rows,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ScenarioResultMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ScenarioResultMessageFromJSON creates a message from JSON bytes
func ScenarioResultMessageFromJSON(data []byte) (*ScenarioResultMessage, error) {
	var msg ScenarioResultMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
