package interaction

import (
	"finboard/internal/catalog"
	"finboard/internal/gesture"
)

// Action is a static row control shown when swipe actions are unavailable.
type Action struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// DefaultActions returns the edit and delete controls.
func DefaultActions() []Action {
	return []Action{
		{Name: "edit", Label: "Edit"},
		{Name: "delete", Label: "Delete"},
	}
}

// RowView is the render model of a row.
type RowView struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	Amount      string        `json:"amount"`
	Category    catalog.Style `json:"category"`
	State       gesture.State `json:"state"`
	Selected    bool          `json:"selected"`
	Hinting     bool          `json:"hinting"`
	// Actions is set while the detectors are disabled.
	Actions []Action `json:"actions,omitempty"`
}

// View returns the render model of one row.
func (l *List) View(id string) (RowView, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	row, ok := l.index[id]
	if !ok {
		return RowView{}, false
	}
	return l.viewLocked(row), true
}

// Views returns the render models of every row in display order.
func (l *List) Views() []RowView {
	l.mu.Lock()
	defer l.mu.Unlock()

	views := make([]RowView, 0, len(l.rows))
	for _, row := range l.rows {
		views = append(views, l.viewLocked(row))
	}
	return views
}

func (l *List) viewLocked(row *Row) RowView {
	txn := row.Transaction()
	v := RowView{
		ID:          txn.ID,
		Description: txn.Description,
		Amount:      l.formatter.Format(txn.Amount),
		Category:    l.catalog.Style(txn.Category),
		State:       row.State(),
		Hinting:     row.Hinting(),
	}
	_, v.Selected = l.selected[txn.ID]
	if !row.DetectorsEnabled() {
		v.Actions = append([]Action(nil), l.actions...)
	}
	return v
}
