// FILE: lixenwraith/looks/doc.go

// Package looks resolves font sets for UI profiles and builds deferred
// defaults tables for them.
//
// Font set resolution walks a policy chain once, stopping at the first
// layer that produces a result:
//  1. a policy registered for the profile (RegisterPolicy)
//  2. custom fonts declared as "<profile>.controlFont" / "<profile>.menuFont"
//  3. the platform default (WindowsPolicy on Windows)
//  4. the cross-platform logical fonts, which never fail
//
// A malformed custom declaration is returned as a *ConfigurationError and
// never masked by a lower layer.
//
// Defaults tables are built by ordered passes gated on the Capabilities of
// the probed Environment. Values may be *LazyValue; they are evaluated on
// the first Table.Get, cached in place, and retried on the next read if
// they fail.
//
// Quick Start:
//
//	fs, err := looks.ResolveSettings("Windows")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(fs.ControlFont())
//
//	look, err := looks.NewBuilder("Windows").
//	    WithFile("looks.toml").
//	    WithFontSizeHints(looks.HintsMixed).
//	    Build()
//	border, ok := look.Get("Button.border")
//
// Custom declarations come from Properties, a layered key/value source.
// Default precedence (highest to lowest):
//  1. Command-line arguments (--Windows.controlFont=Tahoma-BOLD-12)
//  2. Environment variables (LOOKS_WINDOWS_CONTROLFONT=Tahoma-BOLD-12)
//  3. Properties file (TOML, YAML or JSON)
//  4. Registered defaults
//
// The environment probe honors LOOKS_OS, LOOKS_OS_RELEASE, LOOKS_TOOLKIT,
// LOOKS_DPI, LOOKS_FONT_SIZE, LOOKS_ENHANCED_THEME and LOOKS_*_FONT overrides.
//
// All exported operations are safe for concurrent use.
package looks
