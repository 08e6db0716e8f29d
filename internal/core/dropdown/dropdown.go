package dropdown

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/sahilm/fuzzy"
)

// popThreshold is the option count from which the list is rendered as a
// floating popup instead of inline.
const popThreshold = 5

// Option is one selectable entry.
type Option struct {
	Text  string
	Value any
}

// Model holds the data side of a dropdown: options and the current selection.
// Open/close state and keyboard navigation belong to the front-end.
type Model struct {
	Options        []Option
	Multiple       bool
	SaveSelection  bool
	AllowFiltering bool

	selected []Option
}

// New returns a model that remembers selections.
func New(opts []Option, multiple bool) *Model {
	return &Model{Options: opts, Multiple: multiple, SaveSelection: true}
}

// Select applies a pick. In single mode the pick replaces the selection; in
// multiple mode it toggles membership and removing the last one clears it.
// A nil option clears the selection.
func (m *Model) Select(opt *Option) {
	if opt == nil {
		m.selected = nil
		return
	}
	if !m.Multiple {
		if m.SaveSelection {
			m.selected = []Option{*opt}
		}
		return
	}
	for i, o := range m.selected {
		if equalValue(o.Value, opt.Value) {
			if len(m.selected) == 1 {
				m.selected = nil
				return
			}
			m.selected = append(append([]Option(nil), m.selected[:i]...), m.selected[i+1:]...)
			return
		}
	}
	m.selected = append(append([]Option(nil), m.selected...), *opt)
}

// Clear drops the selection.
func (m *Model) Clear() { m.selected = nil }

// Selected returns a copy of the selected options, nil when nothing is selected.
func (m *Model) Selected() []Option {
	if len(m.selected) == 0 {
		return nil
	}
	return append([]Option(nil), m.selected...)
}

// Values returns the selected values.
func (m *Model) Values() []any {
	out := make([]any, 0, len(m.selected))
	for _, o := range m.selected {
		out = append(out, o.Value)
	}
	return out
}

// SetDefault selects the option(s) matching v. v may be a scalar or a slice;
// a nil v leaves the selection empty.
func (m *Model) SetDefault(v any) {
	m.selected = nil
	if v == nil {
		return
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		for _, o := range m.Options {
			for i := 0; i < rv.Len(); i++ {
				if equalValue(o.Value, rv.Index(i).Interface()) {
					m.selected = append(m.selected, o)
					break
				}
			}
		}
		return
	}
	for _, o := range m.Options {
		if equalValue(o.Value, v) {
			m.selected = []Option{o}
			return
		}
	}
}

// IsSelected reports whether opt is part of the selection.
func (m *Model) IsSelected(opt Option) bool {
	for _, o := range m.selected {
		if equalValue(o.Value, opt.Value) {
			return true
		}
	}
	return false
}

// ShouldPop reports whether the option list is long enough to float.
func (m *Model) ShouldPop() bool { return len(m.Options) >= popThreshold }

// Filter narrows the options by query: substring matches first, fuzzy matches
// when no substring hit exists. An empty query or disabled filtering returns
// all options.
func (m *Model) Filter(query string) []Option {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || !m.AllowFiltering {
		return append([]Option(nil), m.Options...)
	}
	sub := make([]Option, 0, len(m.Options))
	texts := make([]string, len(m.Options))
	for i, o := range m.Options {
		texts[i] = strings.ToLower(o.Text)
		if strings.Contains(texts[i], q) {
			sub = append(sub, o)
		}
	}
	if len(sub) > 0 {
		return sub
	}
	matches := fuzzy.Find(q, texts)
	out := make([]Option, 0, len(matches))
	for _, mt := range matches {
		out = append(out, m.Options[mt.Index])
	}
	return out
}

func equalValue(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if reflect.TypeOf(a).Comparable() && reflect.TypeOf(b).Comparable() && a == b {
		return true
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}
