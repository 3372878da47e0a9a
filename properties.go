// FILE: lixenwraith/looks/properties.go
package looks

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Source represents a property source, used to define precedence.
type Source string

const (
	// SourceDefault represents registered default values
	SourceDefault Source = "default"
	// SourceFile represents values loaded from a properties file
	SourceFile Source = "file"
	// SourceEnv represents values loaded from environment variables
	SourceEnv Source = "env"
	// SourceCLI represents values loaded from command-line arguments
	SourceCLI Source = "cli"
)

// Keys under a profile namespace understood by this package.
const (
	KeyControlFont    = "controlFont"
	KeyMenuFont       = "menuFont"
	KeyFontSizeHints  = "fontSizeHints"
	KeyUseSystemFonts = "useSystemFonts"
)

// DefaultEnvPrefix is prepended to environment variable names.
const DefaultEnvPrefix = "LOOKS_"

// EnvTransformFunc converts a property key to an environment variable name.
type EnvTransformFunc func(key string) string

// LoadOptions configures how properties are loaded from multiple sources.
type LoadOptions struct {
	// Sources defines the precedence order (first = highest priority)
	// Default: [SourceCLI, SourceEnv, SourceFile, SourceDefault]
	Sources []Source

	// EnvPrefix is prepended to environment variable names
	// Example: "LOOKS_" transforms "Windows.controlFont" to "LOOKS_WINDOWS_CONTROLFONT"
	EnvPrefix string

	// EnvTransform customizes how keys map to environment variables
	EnvTransform EnvTransformFunc

	// EnvWhitelist limits which keys are checked for env vars (nil = all)
	EnvWhitelist map[string]bool
}

// DefaultLoadOptions returns the standard load options.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Sources:   []Source{SourceCLI, SourceEnv, SourceFile, SourceDefault},
		EnvPrefix: DefaultEnvPrefix,
	}
}

// property holds the per-source values of one key.
type property struct {
	defaultValue any
	currentValue any
	values       map[Source]any
}

// Properties is a layered key/value configuration source.
// Keys are dot-separated, the first segment naming a profile
// (e.g. "Windows.controlFont"). The current value of a key is taken
// from the highest-precedence source that provides one.
type Properties struct {
	mu         sync.RWMutex
	items      map[string]property
	options    LoadOptions
	filePath   string
	fileFormat string
	watcher    *watcher
}

// NewProperties creates an empty property source with default options.
func NewProperties() *Properties {
	return NewPropertiesWithOptions(DefaultLoadOptions())
}

// NewPropertiesWithOptions creates an empty property source with custom options.
func NewPropertiesWithOptions(opts LoadOptions) *Properties {
	if len(opts.Sources) == 0 {
		opts.Sources = DefaultLoadOptions().Sources
	}
	return &Properties{
		items:   make(map[string]property),
		options: opts,
	}
}

var systemProperties = sync.OnceValue(func() *Properties {
	return NewProperties()
})

// SystemProperties returns the process-wide property source.
func SystemProperties() *Properties { return systemProperties() }

// Register makes a key known with a default value. A nil default means
// the key has no value until a source provides one. Environment variables
// are only consulted for registered keys.
func (p *Properties) Register(key string, defaultValue any) error {
	if err := validateKey(key); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	item := p.items[key]
	item.defaultValue = defaultValue
	item.currentValue = p.computeValue(item)
	p.items[key] = item
	return nil
}

// RegisterProfile registers every key this package reads for profile.
// Existing values are kept.
func (p *Properties) RegisterProfile(profile string) error {
	if err := validateProfile(profile); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, name := range profileKeys {
		key := profile + "." + name
		if _, exists := p.items[key]; !exists {
			p.items[key] = property{}
		}
	}
	return nil
}

var profileKeys = fieldKeys(reflect.TypeOf(ProfileSettings{}))

// RegisterStruct registers a key for every exported field of a struct,
// named by its toml tag and prefixed with prefix. Nested structs register
// nested keys; field values become the defaults.
func (p *Properties) RegisterStruct(prefix string, defaults any) error {
	v := reflect.ValueOf(defaults)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("RegisterStruct requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("RegisterStruct requires a struct or struct pointer, got %T", defaults)
	}

	var errs []error
	p.registerFields(v, strings.TrimSuffix(prefix, "."), &errs)
	return errors.Join(errs...)
}

func (p *Properties) registerFields(v reflect.Value, prefix string, errs *[]error) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, ok := fieldKey(field)
		if !ok {
			continue
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		fv := v.Field(i)
		if fv.Kind() == reflect.Struct && !isLeafType(fv.Type()) {
			p.registerFields(fv, key, errs)
			continue
		}

		var value any
		if fv.Kind() == reflect.Ptr {
			if !fv.IsNil() {
				value = fv.Elem().Interface()
			}
		} else {
			value = fv.Interface()
		}
		if err := p.Register(key, value); err != nil {
			*errs = append(*errs, fmt.Errorf("field %s: %w", field.Name, err))
		}
	}
}

// Unregister forgets key and every key below it.
func (p *Properties) Unregister(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	found := false
	for k := range p.items {
		if k == key || strings.HasPrefix(k, key+".") {
			delete(p.items, k)
			found = true
		}
	}
	if !found {
		return fmt.Errorf("key not registered: %s", key)
	}
	return nil
}

// fieldKey returns the key name of a struct field from its toml tag.
func fieldKey(field reflect.StructField) (string, bool) {
	if !field.IsExported() {
		return "", false
	}
	tag := field.Tag.Get("toml")
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return field.Name, true
}

// fieldKeys lists the key names of the top-level fields of t.
func fieldKeys(t reflect.Type) []string {
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		if name, ok := fieldKey(t.Field(i)); ok {
			keys = append(keys, name)
		}
	}
	return keys
}

// isLeafType reports whether a struct type is stored as a single value.
func isLeafType(t reflect.Type) bool {
	switch t {
	case fontType, fontSizeHintsType:
		return true
	}
	return false
}

// Get returns the current value of key. The second result is false when
// no source provides a value.
func (p *Properties) Get(key string) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	item, ok := p.items[key]
	if !ok || item.currentValue == nil {
		return nil, false
	}
	return item.currentValue, true
}

// String returns the current value of key as a string.
func (p *Properties) String(key string) (string, bool) {
	v, ok := p.Get(key)
	if !ok {
		return "", false
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return fmt.Sprint(v), true
}

// GetSource returns the value key holds in one specific source.
func (p *Properties) GetSource(key string, source Source) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	item, ok := p.items[key]
	if !ok {
		return nil, false
	}
	if source == SourceDefault {
		return item.defaultValue, item.defaultValue != nil
	}
	v, ok := item.values[source]
	return v, ok
}

// Origin returns the source that supplies the current value of key.
func (p *Properties) Origin(key string) (Source, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	item, ok := p.items[key]
	if !ok {
		return "", false
	}
	for _, source := range p.options.Sources {
		if source == SourceDefault {
			if item.defaultValue != nil {
				return SourceDefault, true
			}
			continue
		}
		if _, has := item.values[source]; has {
			return source, true
		}
	}
	return "", false
}

// Set stores value for key in the given source and recomputes the current value.
// Unknown keys are registered on the fly.
func (p *Properties) Set(key string, source Source, value any) error {
	if err := validateKey(key); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.setLocked(key, source, value)
	return nil
}

func (p *Properties) setLocked(key string, source Source, value any) {
	item := p.items[key]
	if source == SourceDefault {
		item.defaultValue = value
	} else {
		if item.values == nil {
			item.values = make(map[Source]any)
		}
		item.values[source] = value
	}
	item.currentValue = p.computeValue(item)
	p.items[key] = item
}

// Unset removes the value key holds in source.
func (p *Properties) Unset(key string, source Source) {
	p.mu.Lock()
	defer p.mu.Unlock()

	item, ok := p.items[key]
	if !ok {
		return
	}
	if source == SourceDefault {
		item.defaultValue = nil
	} else {
		delete(item.values, source)
	}
	item.currentValue = p.computeValue(item)
	p.items[key] = item
}

// resetProfileSource drops the source layer of every override key of profile.
func (p *Properties) resetProfileSource(profile string, source Source) {
	for _, name := range profileKeys {
		p.Unset(profile+"."+name, source)
	}
}

// Keys returns every key with prefix that currently has a value, sorted.
func (p *Properties) Keys(prefix string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	keys := make([]string, 0, len(p.items))
	for k, item := range p.items {
		if item.currentValue != nil && strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Options returns the load options in effect.
func (p *Properties) Options() LoadOptions {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.options
}

// SetPrecedence changes the source order and recomputes every key.
func (p *Properties) SetPrecedence(sources ...Source) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.options.Sources = slices.Clone(sources)
	for k, item := range p.items {
		item.currentValue = p.computeValue(item)
		p.items[k] = item
	}
}

// Clone creates a deep copy of the property source. Watchers are not copied.
func (p *Properties) Clone() *Properties {
	p.mu.RLock()
	defer p.mu.RUnlock()

	clone := &Properties{
		items:      make(map[string]property, len(p.items)),
		options:    p.options,
		filePath:   p.filePath,
		fileFormat: p.fileFormat,
	}
	clone.options.Sources = slices.Clone(p.options.Sources)
	clone.options.EnvWhitelist = maps.Clone(p.options.EnvWhitelist)
	for k, item := range p.items {
		item.values = maps.Clone(item.values)
		clone.items[k] = item
	}
	return clone
}

// Debug returns a formatted listing of every key, its current value and its sources.
func (p *Properties) Debug() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	keys := slices.Sorted(maps.Keys(p.items))

	var b strings.Builder
	b.WriteString("Properties:\n")
	fmt.Fprintf(&b, "Precedence: %v\n", p.options.Sources)
	for _, k := range keys {
		item := p.items[k]
		fmt.Fprintf(&b, "  %s:\n", k)
		fmt.Fprintf(&b, "    Current: %v\n", item.currentValue)
		if item.defaultValue != nil {
			fmt.Fprintf(&b, "    Default: %v\n", item.defaultValue)
		}
		for _, source := range p.options.Sources {
			if v, ok := item.values[source]; ok {
				fmt.Fprintf(&b, "    %s: %v\n", source, v)
			}
		}
	}
	return b.String()
}

// computeValue picks the value of the highest-precedence source.
// Caller must hold the lock.
func (p *Properties) computeValue(item property) any {
	for _, source := range p.options.Sources {
		if source == SourceDefault {
			if item.defaultValue != nil {
				return item.defaultValue
			}
			continue
		}
		if v, ok := item.values[source]; ok && v != nil {
			return v
		}
	}
	return nil
}

// snapshot copies the current values of all keys.
func (p *Properties) snapshot() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]any, len(p.items))
	for k, item := range p.items {
		if item.currentValue != nil {
			out[k] = item.currentValue
		}
	}
	return out
}

// validateKey checks a dot-separated key made of bare segments.
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for _, segment := range strings.Split(key, ".") {
		if !isValidKeySegment(segment) {
			return fmt.Errorf("%w: segment %q in key %q", ErrInvalidKey, segment, key)
		}
	}
	return nil
}
