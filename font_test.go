// FILE: lixenwraith/looks/font_test.go
package looks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFont(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		want       Font
	}{
		{"FamilyOnly", "Tahoma", Font{"Tahoma", StylePlain, DefaultFontSize}},
		{"FamilyAndSize", "Tahoma-11", Font{"Tahoma", StylePlain, 11}},
		{"FamilyAndStyle", "Tahoma-bold", Font{"Tahoma", StyleBold, DefaultFontSize}},
		{"FullDescriptor", "Arial-BOLD-14", Font{"Arial", StyleBold, 14}},
		{"SpaceInFamily", "Segoe UI-ITALIC-12", Font{"Segoe UI", StyleItalic, 12}},
		{"RegularAlias", "Dialog-REGULAR-10", Font{"Dialog", StylePlain, 10}},
		{"BoldItalic", "Serif-BOLDITALIC-9", Font{"Serif", StyleBoldItalic, 9}},
		{"SurroundingSpace", "  Tahoma-11 ", Font{"Tahoma", StylePlain, 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFont(tt.descriptor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFontMalformed(t *testing.T) {
	malformed := []string{
		"",
		"-BOLD-12",
		"Arial-HEAVY-14",
		"Arial-BOLD-big",
		"Arial-0",
		"Arial-513",
		"Arial-BOLD-12-extra",
		"Ari\x00al-12",
	}

	for _, descriptor := range malformed {
		t.Run(descriptor, func(t *testing.T) {
			_, err := ParseFont(descriptor)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, descriptor, cfgErr.Value)
		})
	}
}

func TestFontRoundTrip(t *testing.T) {
	fonts := []Font{
		{"Arial", StyleBold, 14},
		{"Segoe UI", StylePlain, 12},
		{"Tahoma", StyleItalic, 1},
		{"Dialog", StyleBoldItalic, 512},
	}

	for _, f := range fonts {
		t.Run(f.String(), func(t *testing.T) {
			parsed, err := ParseFont(f.String())
			require.NoError(t, err)
			assert.Equal(t, f, parsed)

			text, err := f.MarshalText()
			require.NoError(t, err)
			var decoded Font
			require.NoError(t, decoded.UnmarshalText(text))
			assert.Equal(t, f, decoded)
		})
	}
}

func TestFontDerivations(t *testing.T) {
	base := Font{"Tahoma", StyleItalic, 11}

	t.Run("Emboldened", func(t *testing.T) {
		bold := base.Emboldened()
		assert.Equal(t, StyleBoldItalic, bold.Style)
		assert.Equal(t, base.Family, bold.Family)
		assert.Equal(t, base.Size, bold.Size)
		assert.Equal(t, bold, bold.Emboldened())
	})

	t.Run("Shrunk", func(t *testing.T) {
		assert.Equal(t, 9, base.Shrunk(2).Size)
		assert.Equal(t, MinFontSize, base.Shrunk(20).Size)
	})

	t.Run("WithStyleAndSize", func(t *testing.T) {
		f := base.WithStyle(StylePlain).WithSize(14)
		assert.Equal(t, Font{"Tahoma", StylePlain, 14}, f)
		assert.Equal(t, Font{"Tahoma", StyleItalic, 11}, base, "derivations must not mutate")
	})

	t.Run("Predicates", func(t *testing.T) {
		assert.True(t, base.IsItalic())
		assert.False(t, base.IsBold())
		assert.True(t, Font{}.IsZero())
		assert.Empty(t, Font{}.String())
	})
}

func TestMustParseFontPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseFont("Arial-HEAVY") })
	assert.NotPanics(t, func() { MustParseFont("Arial") })
}
