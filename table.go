// FILE: lixenwraith/looks/table.go
package looks

import (
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
)

// Entry is one key and value of a bulk insertion. Value may be a *LazyValue.
type Entry struct {
	Key   string
	Value any
}

// Entries builds entries from alternating key and value arguments.
func Entries(kv ...any) ([]Entry, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("entries need key/value pairs, got %d arguments", len(kv))
	}
	out := make([]Entry, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: entry %d has key %v (%T)", ErrInvalidKey, i/2, kv[i], kv[i])
		}
		out = append(out, Entry{Key: key, Value: kv[i+1]})
	}
	return out, nil
}

// mustEntries is Entries for static tables declared in this package.
func mustEntries(kv ...any) []Entry {
	entries, err := Entries(kv...)
	if err != nil {
		panic(err)
	}
	return entries
}

// Table is a defaults table whose values may be deferred.
// Writes happen only through whole bulk insertions; reads resolve lazy
// values in place. All operations are safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	entries map[string]any
	passes  []string
	logger  *log.Logger
}

// NewTable creates an empty table. A nil logger logs to stderr.
func NewTable(logger *log.Logger) *Table {
	if logger == nil {
		logger = defaultLogger()
	}
	return &Table{
		entries: make(map[string]any),
		logger:  logger,
	}
}

func defaultLogger() *log.Logger {
	return log.New(os.Stderr, "looks: ", log.LstdFlags)
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// PutDefaults inserts entries in order. A later entry replaces an earlier one
// with the same key, within this call and across calls. A nil value removes the key.
func (t *Table) PutDefaults(entries ...Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range entries {
		if e.Value == nil {
			delete(t.entries, e.Key)
			continue
		}
		t.entries[e.Key] = e.Value
	}
}

// Get returns the value stored under key.
// A lazy value is evaluated and replaced by its result before returning.
// If evaluation fails the failure is logged and the key reads as absent;
// the lazy value stays in place and the next Get retries it.
func (t *Table) Get(key string) (any, bool) {
	t.mu.RLock()
	raw, exists := t.entries[key]
	t.mu.RUnlock()

	if !exists {
		return nil, false
	}

	lazy, isLazy := raw.(*LazyValue)
	if !isLazy {
		return raw, true
	}

	value, err := lazy.Evaluate()
	if err != nil {
		t.logger.Printf("table: key %s: %v", key, err)
		return nil, false
	}

	t.mu.Lock()
	// Only replace if no later pass rewrote the key meanwhile
	if current, ok := t.entries[key]; ok && current == raw {
		if value == nil {
			delete(t.entries, key)
		} else {
			t.entries[key] = value
		}
	}
	t.mu.Unlock()

	if value == nil {
		return nil, false
	}
	return value, true
}

// Has reports whether key is present without evaluating it.
func (t *Table) Has(key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.entries[key]
	return ok
}

// IsPending reports whether key holds a lazy value that has not been evaluated.
func (t *Table) IsPending(key string) bool {
	t.mu.RLock()
	raw, ok := t.entries[key]
	t.mu.RUnlock()
	lazy, isLazy := raw.(*LazyValue)
	return ok && isLazy && !lazy.Evaluated()
}

// Len returns the number of keys.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Keys returns all keys with the given prefix, sorted.
func (t *Table) Keys(prefix string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Snapshot copies the table without evaluating anything.
// Pending lazy values appear as "lazy:<name>" strings.
func (t *Table) Snapshot() map[string]any {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]any, len(t.entries))
	for k, v := range t.entries {
		if lazy, ok := v.(*LazyValue); ok {
			out[k] = lazy.String()
			continue
		}
		out[k] = v
	}
	return out
}

// AppliedPasses lists the passes applied so far, in order.
func (t *Table) AppliedPasses() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.passes)
}

func (t *Table) recordPass(name string) {
	t.mu.Lock()
	t.passes = append(t.passes, name)
	t.mu.Unlock()
}

// Font retrieves a font value.
func (t *Table) Font(key string) (Font, bool) {
	v, ok := t.Get(key)
	if !ok {
		return Font{}, false
	}
	switch f := v.(type) {
	case Font:
		return f, !f.IsZero()
	case *Font:
		if f == nil {
			return Font{}, false
		}
		return *f, !f.IsZero()
	}
	return Font{}, false
}

// String retrieves a string value, converting fmt.Stringer values.
func (t *Table) String(key string) (string, error) {
	v, ok := t.Get(key)
	if !ok {
		return "", fmt.Errorf("key not present: %s", key)
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	}
	return "", fmt.Errorf("cannot convert type %T to string for key %s", v, key)
}

// Int retrieves an integer value.
func (t *Table) Int(key string) (int, error) {
	v, ok := t.Get(key)
	if !ok {
		return 0, fmt.Errorf("key not present: %s", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	}
	return 0, fmt.Errorf("cannot convert type %T to int for key %s", v, key)
}

// Bool retrieves a boolean value.
func (t *Table) Bool(key string) (bool, error) {
	v, ok := t.Get(key)
	if !ok {
		return false, fmt.Errorf("key not present: %s", key)
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, fmt.Errorf("cannot convert type %T to bool for key %s", v, key)
	}
	return b, nil
}

// Insets retrieves an insets value.
func (t *Table) Insets(key string) (Insets, bool) {
	v, ok := t.Get(key)
	if !ok {
		return Insets{}, false
	}
	i, isInsets := v.(Insets)
	return i, isInsets
}

// Dimension retrieves a dimension value.
func (t *Table) Dimension(key string) (Dimension, bool) {
	v, ok := t.Get(key)
	if !ok {
		return Dimension{}, false
	}
	d, isDim := v.(Dimension)
	return d, isDim
}

// Color retrieves a color value.
func (t *Table) Color(key string) (Color, bool) {
	v, ok := t.Get(key)
	if !ok {
		return Color{}, false
	}
	c, isColor := v.(Color)
	return c, isColor
}
