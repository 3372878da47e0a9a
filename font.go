// FILE: lixenwraith/looks/font.go
package looks

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Style is a font style bit set. Bold and italic combine.
type Style int

const (
	StylePlain      Style = 0
	StyleBold       Style = 1
	StyleItalic     Style = 2
	StyleBoldItalic Style = StyleBold | StyleItalic
)

// Font size limits accepted by ParseFont.
const (
	DefaultFontSize = 12
	MinFontSize     = 1
	MaxFontSize     = 512
)

// String returns the descriptor name of the style.
func (s Style) String() string {
	switch s {
	case StylePlain:
		return "PLAIN"
	case StyleBold:
		return "BOLD"
	case StyleItalic:
		return "ITALIC"
	case StyleBoldItalic:
		return "BOLDITALIC"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle parses a style name case-insensitively.
// REGULAR is accepted as an alias for PLAIN.
func ParseStyle(s string) (Style, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PLAIN", "REGULAR":
		return StylePlain, true
	case "BOLD":
		return StyleBold, true
	case "ITALIC":
		return StyleItalic, true
	case "BOLDITALIC", "BOLD_ITALIC":
		return StyleBoldItalic, true
	}
	return StylePlain, false
}

// Font is an opaque family, style and point size triple.
// The zero Font means "no font".
type Font struct {
	Family string
	Style  Style
	Size   int
}

// NewFont returns a font with the given attributes.
func NewFont(family string, style Style, size int) Font {
	return Font{Family: family, Style: style, Size: size}
}

// ParseFont decodes a platform font descriptor of the form family[-style][-size].
//
// Examples: "Tahoma", "Tahoma-11", "Tahoma-BOLD", "Segoe UI-BOLD-12".
// A missing style means PLAIN, a missing size means DefaultFontSize.
// Malformed descriptors return a *ConfigurationError.
func ParseFont(descriptor string) (Font, error) {
	fail := func(reason string) (Font, error) {
		return Font{}, &ConfigurationError{Value: descriptor, Err: errors.New(reason)}
	}

	tokens := strings.Split(strings.TrimSpace(descriptor), "-")
	family := strings.TrimSpace(tokens[0])
	if family == "" {
		return fail("empty font family")
	}
	if strings.ContainsFunc(family, func(r rune) bool { return r < 0x20 || r == 0x7f }) {
		return fail("font family contains control characters")
	}

	font := Font{Family: family, Style: StylePlain, Size: DefaultFontSize}
	rest := tokens[1:]

	switch len(rest) {
	case 0:
	case 1:
		if style, ok := ParseStyle(rest[0]); ok {
			font.Style = style
			break
		}
		size, err := parseFontSize(rest[0])
		if err != nil {
			return fail(err.Error())
		}
		font.Size = size
	case 2:
		style, ok := ParseStyle(rest[0])
		if !ok {
			return fail(fmt.Sprintf("unknown font style %q", rest[0]))
		}
		size, err := parseFontSize(rest[1])
		if err != nil {
			return fail(err.Error())
		}
		font.Style = style
		font.Size = size
	default:
		return fail("expected family[-style][-size]")
	}

	return font, nil
}

// MustParseFont is like ParseFont but panics on malformed descriptors.
// Intended for package-level font literals.
func MustParseFont(descriptor string) Font {
	f, err := ParseFont(descriptor)
	if err != nil {
		panic(err)
	}
	return f
}

func parseFontSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	size, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("neither a font style nor a size: %q", s)
	}
	if size < MinFontSize || size > MaxFontSize {
		return 0, fmt.Errorf("font size %d out of range [%d, %d]", size, MinFontSize, MaxFontSize)
	}
	return size, nil
}

// String renders the font as a descriptor accepted by ParseFont.
func (f Font) String() string {
	if f.IsZero() {
		return ""
	}
	return f.Family + "-" + f.Style.String() + "-" + strconv.Itoa(f.Size)
}

// IsZero reports whether f is the zero Font.
func (f Font) IsZero() bool {
	return f.Family == "" && f.Size == 0 && f.Style == StylePlain
}

// IsBold reports whether the bold bit is set.
func (f Font) IsBold() bool { return f.Style&StyleBold != 0 }

// IsItalic reports whether the italic bit is set.
func (f Font) IsItalic() bool { return f.Style&StyleItalic != 0 }

// WithStyle derives a font with the given style.
func (f Font) WithStyle(style Style) Font {
	f.Style = style
	return f
}

// WithSize derives a font with the given size.
func (f Font) WithSize(size int) Font {
	f.Size = size
	return f
}

// Emboldened derives a font with the bold bit added; family and size are kept.
func (f Font) Emboldened() Font {
	f.Style |= StyleBold
	return f
}

// Shrunk derives a font that is n points smaller, never below MinFontSize.
func (f Font) Shrunk(n int) Font {
	f.Size -= n
	if f.Size < MinFontSize {
		f.Size = MinFontSize
	}
	return f
}

// MarshalText implements encoding.TextMarshaler.
func (f Font) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Font) UnmarshalText(text []byte) error {
	parsed, err := ParseFont(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
