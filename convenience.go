// FILE: lixenwraith/looks/convenience.go
package looks

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Quick activates profile with the standard setup: process-wide properties,
// a properties file discovered for "looks", and command-line overrides from os.Args.
func Quick(profile string) (*Look, error) {
	return NewBuilder(profile).
		WithArgs(os.Args[1:]).
		WithFileDiscovery(DefaultDiscoveryOptions("looks")).
		Build()
}

// MustQuick is like Quick but panics on error.
func MustQuick(profile string) *Look {
	look, err := Quick(profile)
	if err != nil && look == nil {
		panic(fmt.Sprintf("looks initialization failed: %v", err))
	}
	return look
}

// BindFlags copies every flag set on the command line into the CLI source.
// Flag names are property keys.
func (p *Properties) BindFlags(fs *flag.FlagSet) error {
	var errs []error

	fs.Visit(func(f *flag.Flag) {
		if err := p.Set(f.Name, SourceCLI, parseValue(f.Value.String())); err != nil {
			errs = append(errs, fmt.Errorf("flag %s: %w", f.Name, err))
		}
	})

	if len(errs) > 0 {
		return fmt.Errorf("failed to bind %d flags: %w", len(errs), errs[0])
	}
	return nil
}

// Validate checks that every required key has a value from some source.
func (p *Properties) Validate(required ...string) error {
	var missing []string
	for _, key := range required {
		if _, ok := p.Get(key); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required properties: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Dump writes the current property values to w in TOML format.
func (p *Properties) Dump(w io.Writer) error {
	return encodeTOML(w, p.snapshot())
}

// Dump writes the table to w in TOML format without evaluating
// pending lazy values.
func (t *Table) Dump(w io.Writer) error {
	return encodeTOML(w, t.Snapshot())
}

// Dump writes the font set to w in TOML format, one key per role.
func (fs FontSet) Dump(w io.Writer) error {
	roles := make(map[string]any, len(Roles))
	for role, f := range fs.Fonts() {
		roles[string(role)] = f
	}
	return toml.NewEncoder(w).Encode(roles)
}

func encodeTOML(w io.Writer, flat map[string]any) error {
	nested := make(map[string]any)
	for _, key := range sortedKeys(flat) {
		setNestedValue(nested, key, tomlValue(flat[key]))
	}
	return toml.NewEncoder(w).Encode(nested)
}
