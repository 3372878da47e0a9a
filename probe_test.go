// FILE: lixenwraith/looks/probe_test.go
package looks

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectEnvironment(t *testing.T) {
	t.Run("WindowsVista", func(t *testing.T) {
		t.Setenv("LOOKS_OS", "windows")
		t.Setenv("LOOKS_OS_RELEASE", "vista")
		t.Setenv("LOOKS_TOOLKIT", "current")
		t.Setenv("LOOKS_DPI", "96")

		env, err := DetectEnvironment()
		require.NoError(t, err)
		assert.True(t, env.IsWindows())
		assert.Equal(t, ReleaseWinVista, env.Release)
		assert.True(t, env.EnhancedTheme)

		icon, ok := env.DesktopFont(DesktopIconFont)
		require.True(t, ok)
		assert.Equal(t, "Segoe UI", icon.Family)

		caps := env.Capabilities()
		assert.True(t, caps.Has(CapWindows|CapSegoeMisrender|CapLowResolution|CapEnhancedTheme))
		assert.False(t, caps.Has(CapLegacyRuntime))

		fs, err := WindowsPolicy(env).FontSet("Windows", nil)
		require.NoError(t, err)
		assert.Equal(t, "MS Sans Serif", fs.ControlFont().Family, "misrendering toolkit avoids Segoe UI")
	})

	t.Run("DeclaredDesktopFonts", func(t *testing.T) {
		t.Setenv("LOOKS_OS", "windows")
		t.Setenv("LOOKS_OS_RELEASE", "xp")
		t.Setenv("LOOKS_ICON_FONT", "Verdana-10")
		t.Setenv("LOOKS_ENHANCED_THEME", "false")

		env, err := DetectEnvironment()
		require.NoError(t, err)
		icon, _ := env.DesktopFont(DesktopIconFont)
		assert.Equal(t, MustParseFont("Verdana-10"), icon)
		assert.False(t, env.EnhancedTheme)
	})

	t.Run("NonWindows", func(t *testing.T) {
		t.Setenv("LOOKS_OS", "linux")
		t.Setenv("LOOKS_DPI", "144")

		env, err := DetectEnvironment()
		require.NoError(t, err)
		assert.Equal(t, OSLinux, env.OS)
		assert.Empty(t, env.DesktopFonts())
		assert.False(t, env.LowResolution())
		assert.Equal(t, Capabilities(CapMenuRevision), env.Capabilities())
	})

	t.Run("UnknownRelease", func(t *testing.T) {
		t.Setenv("LOOKS_OS", "windows")
		t.Setenv("LOOKS_OS_RELEASE", "me")

		env, err := DetectEnvironment()
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.Equal(t, OSOther, env.OS, "fallback environment")
	})

	t.Run("UnknownOverridesNameTheVariable", func(t *testing.T) {
		tests := []struct {
			variable string
			value    string
		}{
			{"LOOKS_TOOLKIT", "bogus"},
			{"LOOKS_OS_RELEASE", "me"},
			{"LOOKS_FONT_SIZE", "huge"},
		}

		for _, tt := range tests {
			t.Run(tt.variable, func(t *testing.T) {
				t.Setenv(tt.variable, tt.value)

				env, err := DetectEnvironment()
				var cfgErr *ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, tt.variable, cfgErr.Key)
				assert.Equal(t, tt.value, cfgErr.Value)
				assert.Equal(t, OSOther, env.OS)
			})
		}
	})

	t.Run("MalformedDesktopFont", func(t *testing.T) {
		t.Setenv("LOOKS_OS", "windows")
		t.Setenv("LOOKS_GUI_FONT", "Tahoma-HEAVY-11")

		_, err := DetectEnvironment()
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, DesktopDefaultGUIFont, cfgErr.Key)
	})

	t.Run("MalformedDPI", func(t *testing.T) {
		t.Setenv("LOOKS_DPI", "lots")
		_, err := DetectEnvironment()
		assert.Error(t, err)
	})
}

func TestEnvironmentIsValue(t *testing.T) {
	fonts := map[string]Font{DesktopIconFont: MustParseFont("Tahoma-11")}
	env := NewEnvironment(OSWindows, ReleaseWinXP, ToolkitModern, 0, FontSizeNormal, true, fonts)

	fonts[DesktopIconFont] = MustParseFont("Arial-20")
	icon, _ := env.DesktopFont(DesktopIconFont)
	assert.Equal(t, "Tahoma", icon.Family, "constructor copies the map")

	copied := env.DesktopFonts()
	copied[DesktopIconFont] = MustParseFont("Arial-20")
	icon, _ = env.DesktopFont(DesktopIconFont)
	assert.Equal(t, "Tahoma", icon.Family)

	assert.Equal(t, 96, env.DPI)
	assert.Contains(t, env.String(), "os=windows")
}

func TestWindowsDesktopFontsScale(t *testing.T) {
	normal := windowsDesktopFonts(ReleaseWinXP, 96, FontSizeNormal)
	large := windowsDesktopFonts(ReleaseWinXP, 120, FontSizeLarge)
	classic := windowsDesktopFonts(ReleaseWinNT, 96, FontSizeNormal)

	assert.Equal(t, MustParseFont("Tahoma-11"), normal[DesktopIconFont])
	assert.Greater(t, large[DesktopIconFont].Size, normal[DesktopIconFont].Size)
	assert.Equal(t, "MS Sans Serif", classic[DesktopIconFont].Family)
	assert.True(t, normal[DesktopCaptionFont].IsBold())
}

func TestProbeIsStable(t *testing.T) {
	first, err1 := Probe()
	second, err2 := Probe()
	assert.Equal(t, err1, err2)
	assert.Equal(t, first, second)
}

func TestProbeOrFallback(t *testing.T) {
	swapEnvironmentDetection(t, func() (Environment, error) {
		return xpEnvironment(), unknownOverride("TOOLKIT", "bogus", "toolkit")
	})

	var buf bytes.Buffer
	env := probeOrFallback(bufferLogger(&buf))
	assert.Equal(t, fallbackEnvironment(), env)
	assert.Contains(t, buf.String(), "LOOKS_TOOLKIT")
	assert.Contains(t, buf.String(), "cross-platform fallback")
}
