// Package catalog resolves category names to the icon and color the
// dashboard renders next to a transaction.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

const (
	DefaultIcon  = "tag"
	DefaultColor = "#9e9e9e"
)

// Style is the visual treatment of a category.
type Style struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Lookup resolves a category name to its style. Unknown names resolve to a
// neutral style carrying the requested name.
type Lookup interface {
	Style(name string) Style
}

// Neutral returns the fallback style for name.
func Neutral(name string) Style {
	return Style{Name: name, Icon: DefaultIcon, Color: DefaultColor}
}

// Memory is an in-process Lookup seeded at construction.
type Memory struct {
	mu     sync.RWMutex
	order  []string
	styles map[string]Style
}

// NewMemory builds a catalog from styles. Names are trimmed; the first
// entry for a name wins and blank names are skipped.
func NewMemory(styles []Style) *Memory {
	m := &Memory{styles: make(map[string]Style, len(styles))}
	for _, s := range styles {
		m.add(s)
	}
	return m
}

// NewMemoryFromFile seeds a catalog from a file of name|icon|color lines.
// A missing file yields an empty catalog.
func NewMemoryFromFile(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewMemory(nil), nil
		}
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	styles, err := ParseSeed(f)
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return NewMemory(styles), nil
}

// ParseSeed reads name|icon|color lines. Blank lines and lines starting
// with # are skipped; icon and color are optional.
func ParseSeed(r io.Reader) ([]Style, error) {
	var out []Style
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		s := Style{Name: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			s.Icon = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			s.Color = strings.TrimSpace(parts[2])
		}
		if s.Name == "" {
			continue
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Style implements Lookup.
func (m *Memory) Style(name string) Style {
	name = strings.TrimSpace(name)
	m.mu.RLock()
	s, ok := m.styles[name]
	m.mu.RUnlock()
	if !ok {
		return Neutral(name)
	}
	return s
}

// Styles returns every style in insertion order.
func (m *Memory) Styles() []Style {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Style, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.styles[name])
	}
	return out
}

func (m *Memory) add(s Style) {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return
	}
	if _, ok := m.styles[s.Name]; ok {
		return
	}
	if s.Icon == "" {
		s.Icon = DefaultIcon
	}
	if s.Color == "" {
		s.Color = DefaultColor
	}
	m.styles[s.Name] = s
	m.order = append(m.order, s.Name)
}
