// FILE: lixenwraith/looks/decode.go
package looks

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// ProfileSettings are the custom override keys of one profile.
// A nil field means the key is not declared.
type ProfileSettings struct {
	ControlFont    *Font          `toml:"controlFont"`
	MenuFont       *Font          `toml:"menuFont"`
	FontSizeHints  *FontSizeHints `toml:"fontSizeHints"`
	UseSystemFonts *bool          `toml:"useSystemFonts"`
}

// HasCustomFonts reports whether a custom font declaration is present.
func (s ProfileSettings) HasCustomFonts() bool {
	return s.ControlFont != nil
}

// ProfileSettings decodes the custom override keys declared for profile.
// A present but malformed value is returned as a *ConfigurationError.
func (p *Properties) ProfileSettings(profile string) (ProfileSettings, error) {
	var settings ProfileSettings
	if err := validateProfile(profile); err != nil {
		return settings, err
	}
	if err := p.Scan(profile, &settings); err != nil {
		return ProfileSettings{}, err
	}
	return settings, nil
}

// Scan decodes the current values under prefix into target, a non-nil pointer.
// Struct fields are matched by their toml tag.
func (p *Properties) Scan(prefix string, target any) error {
	return p.unmarshal(prefix, "", target)
}

// ScanSource decodes only the values held by source.
func (p *Properties) ScanSource(prefix string, source Source, target any) error {
	return p.unmarshal(prefix, source, target)
}

// unmarshal is the single decoding path behind Scan and ScanSource.
func (p *Properties) unmarshal(prefix string, source Source, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("unmarshal target must be non-nil pointer, got %T", target)
	}

	nested := make(map[string]any)
	p.mu.RLock()
	for key, item := range p.items {
		var value any
		if source == "" {
			value = item.currentValue
		} else if source == SourceDefault {
			value = item.defaultValue
		} else {
			value = item.values[source]
		}
		if value != nil {
			setNestedValue(nested, key, value)
		}
	}
	p.mu.RUnlock()

	section, ok := navigateToPath(nested, prefix).(map[string]any)
	if !ok {
		if v := navigateToPath(nested, prefix); v != nil {
			return fmt.Errorf("path %q refers to non-map value (type %T)", prefix, v)
		}
		section = make(map[string]any)
	}

	// mapstructure flattens hook errors into strings, so the typed
	// configuration error is kept aside and returned intact
	var capture hookErrors
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		ZeroFields:       true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToFontHookFunc(&capture),
			stringToFontSizeHintsHookFunc(&capture),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(section); err != nil {
		if cfgErr := capture.first(); cfgErr != nil {
			return withKey(cfgErr, keyOfValue(prefix, section, cfgErr.Value))
		}
		return &ConfigurationError{Key: prefix, Value: fmt.Sprint(section), Err: err}
	}
	return nil
}

// hookErrors records configuration errors raised inside decode hooks.
type hookErrors struct {
	mu   sync.Mutex
	errs []*ConfigurationError
}

func (h *hookErrors) record(err error) error {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		h.mu.Lock()
		h.errs = append(h.errs, cfgErr)
		h.mu.Unlock()
	}
	return err
}

func (h *hookErrors) first() *ConfigurationError {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.errs) == 0 {
		return nil
	}
	return h.errs[0]
}

// keyOfValue finds the key under prefix holding the raw string value.
func keyOfValue(prefix string, section map[string]any, value string) string {
	for _, key := range sortedKeys(flattenMap(section, "")) {
		if v := navigateToPath(section, key); v != nil && fmt.Sprint(v) == value {
			if prefix == "" {
				return key
			}
			return prefix + "." + key
		}
	}
	return prefix
}

var (
	fontType          = reflect.TypeOf(Font{})
	fontSizeHintsType = reflect.TypeOf(FontSizeHints{})
)

// stringToFontHookFunc parses font descriptors into Font.
func stringToFontHookFunc(capture *hookErrors) mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != fontType {
			return data, nil
		}
		if f.Kind() != reflect.String {
			return data, rejectNonString(capture, f, fontType, data, "a font descriptor")
		}
		font, err := ParseFont(data.(string))
		if err != nil {
			return nil, capture.record(err)
		}
		return font, nil
	}
}

// stringToFontSizeHintsHookFunc resolves preset names into FontSizeHints.
func stringToFontSizeHintsHookFunc(capture *hookErrors) mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != fontSizeHintsType {
			return data, nil
		}
		if f.Kind() != reflect.String {
			return data, rejectNonString(capture, f, fontSizeHintsType, data, "a font size hints name")
		}
		hints, err := ParseFontSizeHints(data.(string))
		if err != nil {
			return nil, capture.record(err)
		}
		return hints, nil
	}
}

// rejectNonString records a configuration error for a declaration that is
// neither a string nor already a value of the target type.
func rejectNonString(capture *hookErrors, f, target reflect.Type, data any, want string) error {
	if f == target || (f.Kind() == reflect.Ptr && f.Elem() == target) {
		return nil
	}
	return capture.record(&ConfigurationError{
		Value: fmt.Sprint(data),
		Err:   fmt.Errorf("expected %s, got %T", want, data),
	})
}
