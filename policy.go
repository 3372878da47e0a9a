// FILE: lixenwraith/looks/policy.go
package looks

import "fmt"

// Policy resolves the font set of a profile.
// The table is an optional reference table of values established so far;
// nil means there is none. Implementations hold no mutable state.
type Policy interface {
	FontSet(profile string, table *Table) (FontSet, error)
}

// PolicyFunc adapts an ordinary function to the Policy interface.
type PolicyFunc func(profile string, table *Table) (FontSet, error)

func (f PolicyFunc) FontSet(profile string, table *Table) (FontSet, error) {
	return f(profile, table)
}

// Keys of the reference table consulted by the Windows policy.
const (
	TableControlFont       = "Tree.font"
	TableMenuFont          = "Menu.font"
	TableOptionPaneFont    = "OptionPane.font"
	TableToolTipFont       = "ToolTip.font"
	TableInternalFrameFont = "InternalFrame.titleFont"
)

// FixedPolicy always returns set, ignoring profile and table.
func FixedPolicy(set FontSet) Policy {
	return PolicyFunc(func(string, *Table) (FontSet, error) {
		if err := set.Validate(); err != nil {
			return FontSet{}, err
		}
		return set, nil
	})
}

// LogicalFontsPolicy pins the logical font set regardless of the environment.
func LogicalFontsPolicy() Policy {
	return FixedPolicy(LogicalFontSet())
}

// CrossPlatformPolicy is the resolution floor. It never fails.
func CrossPlatformPolicy() Policy {
	return PolicyFunc(func(string, *Table) (FontSet, error) {
		return LogicalFontSet(), nil
	})
}

// WindowsPolicy builds the font set from the desktop fonts of env.
//
// The control font is the desktop icon font, or the default GUI font when
// the toolkit misrenders the Vista icon font. A reference table holding a
// control font, already sized by the font size hints, overrides it. The
// title font is the control font in bold. Menu, message, small and window
// title fonts are taken from the reference table when it holds them;
// otherwise they derive from the control font.
func WindowsPolicy(env Environment) Policy {
	return PolicyFunc(func(_ string, table *Table) (FontSet, error) {
		control := windowsControlFont(env)
		if table != nil {
			control = tableFontOr(table, TableControlFont, control)
		}

		menu, message, small, windowTitle := control, control, control.Shrunk(2), control
		if table != nil {
			menu = tableFontOr(table, TableMenuFont, menu)
			message = tableFontOr(table, TableOptionPaneFont, message)
			small = tableFontOr(table, TableToolTipFont, small)
			windowTitle = tableFontOr(table, TableInternalFrameFont, windowTitle)
		}

		return NewFontSet(control, menu, control.Emboldened(), message, small, windowTitle)
	})
}

// windowsControlFont selects the desktop font used for control text.
func windowsControlFont(env Environment) Font {
	primary, secondary := DesktopIconFont, DesktopDefaultGUIFont
	if env.Capabilities().Has(CapSegoeMisrender) {
		primary, secondary = secondary, primary
	}
	if f, ok := env.DesktopFont(primary); ok {
		return f
	}
	if f, ok := env.DesktopFont(secondary); ok {
		return f
	}
	return LogicalFontSet().ControlFont()
}

func tableFontOr(table *Table, key string, fallback Font) Font {
	if f, ok := table.Font(key); ok {
		return f
	}
	return fallback
}

// PlatformPolicy selects the platform default policy for env.
func PlatformPolicy(env Environment) Policy {
	if env.IsWindows() {
		return WindowsPolicy(env)
	}
	return CrossPlatformPolicy()
}

// customSettingsPolicy consults overrides before its wrapped policy.
type customSettingsPolicy struct {
	wrapped  Policy
	registry *Registry
	props    *Properties
}

// CustomSettingsPolicy wraps a policy with the two override layers:
// a policy registered for the profile in registry wins outright; otherwise
// custom fonts declared in props under "<profile>.controlFont" and
// "<profile>.menuFont" are used; otherwise wrapped decides.
//
// A declared control font yields its own title (bold) and small (shrunk)
// fonts; every other role not declared falls back to the wrapped policy's
// corresponding role. A malformed declaration is returned as a
// *ConfigurationError and the wrapped policy is not consulted.
func CustomSettingsPolicy(wrapped Policy, registry *Registry, props *Properties) Policy {
	if wrapped == nil {
		wrapped = CrossPlatformPolicy()
	}
	return &customSettingsPolicy{wrapped: wrapped, registry: registry, props: props}
}

func (p *customSettingsPolicy) FontSet(profile string, table *Table) (FontSet, error) {
	if named, ok := p.registry.Lookup(profile); ok {
		return named.FontSet(profile, table)
	}

	if p.props == nil {
		return p.wrapped.FontSet(profile, table)
	}

	settings, err := p.props.ProfileSettings(profile)
	if err != nil {
		return FontSet{}, err
	}
	if !settings.HasCustomFonts() {
		return p.wrapped.FontSet(profile, table)
	}

	fallback, err := p.wrapped.FontSet(profile, table)
	if err != nil {
		return FontSet{}, fmt.Errorf("custom fonts for %s: %w", profile, err)
	}

	control := *settings.ControlFont
	menu := fallback.MenuFont()
	if settings.MenuFont != nil {
		menu = *settings.MenuFont
	}

	return NewFontSet(
		control,
		menu,
		control.Emboldened(),
		fallback.MessageFont(),
		control.Shrunk(2),
		fallback.WindowTitleFont(),
	)
}

// DefaultPolicy is the standard chain: overrides, then the platform
// default for env, then the cross-platform floor.
func DefaultPolicy(env Environment, registry *Registry, props *Properties) Policy {
	return CustomSettingsPolicy(PlatformPolicy(env), registry, props)
}

// ResolveSettings resolves the font set of profile using the process-wide
// environment, registry and properties. Environment variables are reread
// for the profile's override keys on every call; a variable unset since the
// last call no longer shadows lower sources. A malformed environment
// description is logged and the cross-platform fallback environment used.
func ResolveSettings(profile string) (FontSet, error) {
	env := probeOrFallback(defaultLogger())

	props := SystemProperties()
	if err := props.RegisterProfile(profile); err != nil {
		return FontSet{}, err
	}
	props.resetProfileSource(profile, SourceEnv)
	if err := props.LoadEnv(props.Options().EnvPrefix); err != nil {
		return FontSet{}, err
	}

	return DefaultPolicy(env, DefaultRegistry(), props).FontSet(profile, nil)
}
