package events

import (
	"sort"
	"strings"

	"github.com/nickagliano/hookplayer/internal/errors"
)

// Event names the playback path looks up directly.
const (
	EventStart      = "start"
	EventStop       = "stop"
	EventNotify     = "notify"
	EventPermission = "permission"
	EventError      = "error"
	EventUnknown    = "unknown"
)

// Vocabulary lists every event name, in display order.
var Vocabulary = []string{EventStart, EventStop, EventNotify, EventPermission, EventError, EventUnknown}

// Known reports whether name is in the event vocabulary.
func Known(name string) bool {
	for _, e := range Vocabulary {
		if e == name {
			return true
		}
	}
	return false
}

// Table maps upstream manifest category ids to event names. Categories
// absent from the table have no event and are dropped.
type Table map[string]string

// defaultTable is the CESP category taxonomy used by the public registry.
var defaultTable = Table{
	"session.start":    EventStart,
	"task.complete":    EventStop,
	"task.acknowledge": EventNotify,
	"input.required":   EventPermission,
	"resource.limit":   EventPermission,
	"task.error":       EventError,
	"user.spam":        EventUnknown,
}

// DefaultTable returns a fresh copy of the built-in category table.
func DefaultTable() Table {
	t := make(Table, len(defaultTable))
	for k, v := range defaultTable {
		t[k] = v
	}
	return t
}

// Translate returns the event for category, if any.
func (t Table) Translate(category string) (string, bool) {
	ev, ok := t[category]
	return ev, ok
}

// With returns a copy of t extended by overrides. Every override must
// name an event from the vocabulary.
func (t Table) With(overrides map[string]string) (Table, error) {
	out := make(Table, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, category := range keys {
		ev := overrides[category]
		if !Known(ev) {
			return nil, errors.Newf(errors.ErrInvalidInput, "category %q maps to unknown event %q (valid: %s)",
				category, ev, strings.Join(Vocabulary, ", "))
		}
		out[category] = ev
	}
	return out, nil
}
