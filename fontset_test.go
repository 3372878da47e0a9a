// FILE: lixenwraith/looks/fontset_test.go
package looks

import (
	"bytes"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFontSet(t *testing.T) {
	control := MustParseFont("Tahoma-11")

	t.Run("Complete", func(t *testing.T) {
		fs, err := NewFontSet(control, control, control.Emboldened(), control, control.Shrunk(2), control.Emboldened())
		require.NoError(t, err)
		assert.Equal(t, control, fs.ControlFont())
		assert.Equal(t, control.Shrunk(2), fs.SmallFont())
		assert.False(t, fs.IsZero())
	})

	t.Run("MissingRoles", func(t *testing.T) {
		_, err := NewFontSet(control, Font{}, control, control, Font{}, control)
		require.ErrorIs(t, err, ErrIncompleteFontSet)
		assert.Contains(t, err.Error(), "menu")
		assert.Contains(t, err.Error(), "small")
		assert.NotContains(t, err.Error(), "control")
	})

	t.Run("ZeroSet", func(t *testing.T) {
		var fs FontSet
		assert.True(t, fs.IsZero())
		assert.ErrorIs(t, fs.Validate(), ErrIncompleteFontSet)
	})
}

func TestLogicalFontSet(t *testing.T) {
	fs := LogicalFontSet()
	require.NoError(t, fs.Validate())

	control := fs.ControlFont()
	assert.Equal(t, "Dialog", control.Family)
	assert.Equal(t, control.Emboldened(), fs.TitleFont())
	assert.Equal(t, control.Shrunk(2), fs.SmallFont())
	assert.True(t, fs.Equal(LogicalFontSet()))

	fonts := fs.Fonts()
	assert.Len(t, fonts, len(Roles))
	for _, role := range Roles {
		f, ok := fs.Font(role)
		assert.True(t, ok)
		assert.Equal(t, f, fonts[role])
	}

	_, ok := fs.Font(Role("caption"))
	assert.False(t, ok)
}

func TestFontSetDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, LogicalFontSet().Dump(&buf))

	var decoded map[string]string
	_, err := toml.Decode(buf.String(), &decoded)
	require.NoError(t, err)
	assert.Equal(t, "Dialog-PLAIN-12", decoded["control"])
	assert.Equal(t, "Dialog-BOLD-12", decoded["windowTitle"])
	assert.Equal(t, "Dialog-PLAIN-10", decoded["small"])
}
