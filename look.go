// FILE: lixenwraith/looks/look.go
package looks

import (
	"fmt"
	"log"
	"sync"
)

// Options are the look-wide settings passed to table construction.
// Per-profile property keys shadow FontSizeHints and UseSystemFonts.
type Options struct {
	FontSizeHints   FontSizeHints
	UseSystemFonts  bool
	DefaultIconSize Dimension
}

// DefaultOptions returns the process-wide defaults.
func DefaultOptions() Options {
	return Options{
		FontSizeHints:   HintsSystem,
		UseSystemFonts:  true,
		DefaultIconSize: Dimension{Width: 20, Height: 20},
	}
}

// effective applies the profile shadows to o.
func (o Options) effective(settings ProfileSettings) Options {
	o.FontSizeHints = EffectiveFontSizeHints(settings.FontSizeHints, o.FontSizeHints)
	o.UseSystemFonts = effectiveBool(settings.UseSystemFonts, o.UseSystemFonts)
	return o
}

// Look is one activation of a profile. It owns the font set and the
// defaults table built for it. Refresh replaces both; values handed out
// earlier are never mutated.
type Look struct {
	profile  string
	env      Environment
	policy   Policy
	props    *Properties
	options  Options
	passes   []Pass
	logger   *log.Logger
	refresh  sync.Mutex
	mu       sync.RWMutex
	fontSet  FontSet
	table    *Table
	resolved Options
}

// Profile returns the profile name.
func (l *Look) Profile() string { return l.profile }

// Environment returns the environment the look was built for.
func (l *Look) Environment() Environment { return l.env }

// Policy returns the resolution policy of the look.
func (l *Look) Policy() Policy { return l.policy }

// Properties returns the property source of the look.
func (l *Look) Properties() *Properties { return l.props }

// FontSet returns the font set resolved by the last refresh.
func (l *Look) FontSet() FontSet {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fontSet
}

// Table returns the defaults table built by the last refresh.
func (l *Look) Table() *Table {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.table
}

// Options returns the options in effect after profile shadows were applied.
func (l *Look) Options() Options {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.resolved
}

// Get reads a key from the current table.
func (l *Look) Get(key string) (any, bool) {
	return l.Table().Get(key)
}

// Refresh resolves the font set again and builds a new table.
// On error the previous font set and table stay in place.
func (l *Look) Refresh() error {
	l.refresh.Lock()
	defer l.refresh.Unlock()

	var settings ProfileSettings
	if l.props != nil {
		var err error
		if settings, err = l.props.ProfileSettings(l.profile); err != nil {
			return err
		}
	}
	resolved := l.options.effective(settings)

	fs, err := l.policy.FontSet(l.profile, nil)
	if err != nil {
		return fmt.Errorf("resolve font set for %s: %w", l.profile, err)
	}

	ctx := PassContext{
		Profile:      l.profile,
		Environment:  l.env,
		Capabilities: l.env.Capabilities(),
		Options:      resolved,
		Policy:       l.policy,
	}
	table, err := BuildTable(ctx, l.logger, l.passes...)
	if err != nil {
		return fmt.Errorf("build table for %s: %w", l.profile, err)
	}

	l.mu.Lock()
	l.fontSet = fs
	l.table = table
	l.resolved = resolved
	l.mu.Unlock()
	return nil
}
