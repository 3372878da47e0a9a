// FILE: lixenwraith/looks/properties_test.go
package looks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertiesPrecedence(t *testing.T) {
	props := NewProperties()
	key := "Windows.controlFont"

	require.NoError(t, props.Register(key, "Dialog-12"))
	v, _ := props.Get(key)
	assert.Equal(t, "Dialog-12", v)
	origin, _ := props.Origin(key)
	assert.Equal(t, SourceDefault, origin)

	require.NoError(t, props.Set(key, SourceFile, "Tahoma-11"))
	require.NoError(t, props.Set(key, SourceEnv, "Arial-12"))
	require.NoError(t, props.Set(key, SourceCLI, "Verdana-13"))

	v, _ = props.Get(key)
	assert.Equal(t, "Verdana-13", v)

	props.Unset(key, SourceCLI)
	v, _ = props.Get(key)
	assert.Equal(t, "Arial-12", v)
	origin, _ = props.Origin(key)
	assert.Equal(t, SourceEnv, origin)

	t.Run("CustomPrecedence", func(t *testing.T) {
		props.SetPrecedence(SourceFile, SourceEnv, SourceCLI, SourceDefault)
		v, _ := props.Get(key)
		assert.Equal(t, "Tahoma-11", v)
	})

	t.Run("GetSource", func(t *testing.T) {
		v, ok := props.GetSource(key, SourceEnv)
		assert.True(t, ok)
		assert.Equal(t, "Arial-12", v)
		_, ok = props.GetSource(key, SourceCLI)
		assert.False(t, ok)
		v, ok = props.GetSource(key, SourceDefault)
		assert.True(t, ok)
		assert.Equal(t, "Dialog-12", v)
	})
}

func TestPropertiesKeys(t *testing.T) {
	props := NewProperties()

	t.Run("InvalidKeys", func(t *testing.T) {
		for _, key := range []string{"", "Windows.", ".controlFont", "Win dows.controlFont", "Windows..menuFont"} {
			assert.ErrorIs(t, props.Set(key, SourceCLI, "x"), ErrInvalidKey, "key %q", key)
		}
	})

	require.NoError(t, props.RegisterProfile("Windows"))
	assert.Empty(t, props.Keys("Windows."), "registered keys without values are not listed")
	_, ok := props.Get("Windows.controlFont")
	assert.False(t, ok)

	require.NoError(t, props.Set("Windows.menuFont", SourceFile, "Tahoma-11"))
	require.NoError(t, props.RegisterProfile("Windows"))
	assert.Equal(t, []string{"Windows.menuFont"}, props.Keys("Windows."))

	assert.ErrorIs(t, props.RegisterProfile("Win.dows"), ErrInvalidKey)
}

func TestPropertiesRegisterStruct(t *testing.T) {
	type metrics struct {
		RowHeight int `toml:"rowHeight"`
		Gap       int `toml:"gap"`
	}
	type lookDefaults struct {
		ControlFont Font          `toml:"controlFont"`
		Hints       FontSizeHints `toml:"fontSizeHints"`
		Tree        metrics       `toml:"tree"`
		Hidden      string        `toml:"-"`
		internal    int
	}

	props := NewProperties()
	err := props.RegisterStruct("Plastic.", lookDefaults{
		ControlFont: MustParseFont("Tahoma-11"),
		Hints:       HintsMixed,
		Tree:        metrics{RowHeight: 18, Gap: 2},
	})
	require.NoError(t, err)

	v, ok := props.Get("Plastic.controlFont")
	require.True(t, ok)
	assert.Equal(t, MustParseFont("Tahoma-11"), v)
	v, _ = props.Get("Plastic.tree.rowHeight")
	assert.Equal(t, 18, v)
	_, ok = props.Get("Plastic.Hidden")
	assert.False(t, ok)

	var decoded lookDefaults
	require.NoError(t, props.Scan("Plastic", &decoded))
	assert.Equal(t, HintsMixed, decoded.Hints)
	assert.Equal(t, 2, decoded.Tree.Gap)

	t.Run("Unregister", func(t *testing.T) {
		require.NoError(t, props.Unregister("Plastic.tree"))
		_, ok := props.Get("Plastic.tree.gap")
		assert.False(t, ok)
		assert.Error(t, props.Unregister("Plastic.tree"))
	})

	t.Run("RejectsNonStruct", func(t *testing.T) {
		assert.Error(t, props.RegisterStruct("x", 42))
		assert.Error(t, props.RegisterStruct("x", (*lookDefaults)(nil)))
	})
}

func TestPropertiesClone(t *testing.T) {
	props := NewProperties()
	require.NoError(t, props.Set("Windows.controlFont", SourceFile, "Tahoma-11"))

	clone := props.Clone()
	require.NoError(t, clone.Set("Windows.controlFont", SourceCLI, "Arial-12"))

	v, _ := props.Get("Windows.controlFont")
	assert.Equal(t, "Tahoma-11", v)
	v, _ = clone.Get("Windows.controlFont")
	assert.Equal(t, "Arial-12", v)
	assert.Contains(t, clone.Debug(), "Windows.controlFont")
}

func TestPropertiesValidate(t *testing.T) {
	props := NewProperties()
	require.NoError(t, props.Set("Windows.controlFont", SourceFile, "Tahoma-11"))

	assert.NoError(t, props.Validate("Windows.controlFont"))
	err := props.Validate("Windows.controlFont", "Windows.menuFont")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Windows.menuFont")
}
