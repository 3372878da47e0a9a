// FILE: lixenwraith/looks/hints.go
package looks

import (
	"fmt"
	"strings"
)

// FontSizeHints describes control and menu font sizes for low and high
// resolution screens. Presets are addressed by name.
type FontSizeHints struct {
	name                 string
	loResMenuFontSize    int
	loResControlFontSize int
	hiResMenuFontSize    int
	hiResControlFontSize int
}

var (
	// HintsLarge uses 12pt menu and control fonts on low resolution screens.
	HintsLarge = FontSizeHints{"LARGE", 12, 12, 14, 14}
	// HintsSystem follows the system font sizes; the default.
	HintsSystem = FontSizeHints{"SYSTEM", 11, 11, 14, 14}
	HintsMixed2 = FontSizeHints{"MIXED2", 11, 12, 14, 14}
	HintsMixed  = FontSizeHints{"MIXED", 11, 12, 14, 13}
	HintsSmall  = FontSizeHints{"SMALL", 11, 11, 12, 12}
	HintsFixed  = FontSizeHints{"FIXED", 12, 12, 12, 12}
)

var fontSizeHintsPresets = map[string]FontSizeHints{
	"LARGE":  HintsLarge,
	"SYSTEM": HintsSystem,
	"MIXED2": HintsMixed2,
	"MIXED":  HintsMixed,
	"SMALL":  HintsSmall,
	"FIXED":  HintsFixed,
}

// ParseFontSizeHints looks up a preset by name, case-insensitively.
func ParseFontSizeHints(name string) (FontSizeHints, error) {
	h, ok := fontSizeHintsPresets[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return FontSizeHints{}, &ConfigurationError{
			Value: name,
			Err:   fmt.Errorf("%w: expected one of LARGE, SYSTEM, MIXED2, MIXED, SMALL, FIXED", ErrUnknownFontSizeHints),
		}
	}
	return h, nil
}

func (h FontSizeHints) String() string { return h.name }

// IsZero reports whether h is unset.
func (h FontSizeHints) IsZero() bool { return h.name == "" }

// ControlFontSize returns the control font size for the resolution class.
func (h FontSizeHints) ControlFontSize(lowRes bool) int {
	if lowRes {
		return h.loResControlFontSize
	}
	return h.hiResControlFontSize
}

// MenuFontSize returns the menu font size for the resolution class.
func (h FontSizeHints) MenuFontSize(lowRes bool) int {
	if lowRes {
		return h.loResMenuFontSize
	}
	return h.hiResMenuFontSize
}

// MarshalText implements encoding.TextMarshaler.
func (h FontSizeHints) MarshalText() ([]byte, error) { return []byte(h.name), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *FontSizeHints) UnmarshalText(text []byte) error {
	parsed, err := ParseFontSizeHints(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// EffectiveFontSizeHints returns local when set, otherwise global.
// A look-specific value shadows the process-wide default.
func EffectiveFontSizeHints(local *FontSizeHints, global FontSizeHints) FontSizeHints {
	if local != nil && !local.IsZero() {
		return *local
	}
	if global.IsZero() {
		return HintsSystem
	}
	return global
}

// effectiveBool is the boolean counterpart of EffectiveFontSizeHints.
func effectiveBool(local *bool, global bool) bool {
	if local != nil {
		return *local
	}
	return global
}
