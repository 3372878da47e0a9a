// FILE: lixenwraith/looks/probe.go
package looks

import (
	"fmt"
	"log"
	"maps"
	"runtime"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
)

// OSFamily identifies the host operating system family.
type OSFamily string

const (
	OSWindows OSFamily = "windows"
	OSMac     OSFamily = "mac"
	OSLinux   OSFamily = "linux"
	OSSolaris OSFamily = "solaris"
	OSOther   OSFamily = "other"
)

// Release is the operating system version tier. Only Windows tiers are distinguished.
type Release int

const (
	ReleaseUnknown Release = iota
	ReleaseWin9x
	ReleaseWinNT
	ReleaseWin2000
	ReleaseWinXP
	ReleaseWinVista
	ReleaseWin7
)

var releaseNames = map[string]Release{
	"":      ReleaseUnknown,
	"9x":    ReleaseWin9x,
	"nt":    ReleaseWinNT,
	"2000":  ReleaseWin2000,
	"xp":    ReleaseWinXP,
	"vista": ReleaseWinVista,
	"7":     ReleaseWin7,
}

// Toolkit is the generation of the hosting UI toolkit runtime, oldest first.
type Toolkit int

const (
	ToolkitClassic Toolkit = iota // before the 1.4 line
	ToolkitEarly                  // 1.4.0 and 1.4.1
	ToolkitRevised                // 1.4.2
	ToolkitCurrent                // 5
	ToolkitModern                 // 6 and later
)

var toolkitNames = map[string]Toolkit{
	"classic": ToolkitClassic,
	"early":   ToolkitEarly,
	"revised": ToolkitRevised,
	"current": ToolkitCurrent,
	"modern":  ToolkitModern,
}

// FontSizeClass is the desktop font size setting.
type FontSizeClass int

const (
	FontSizeNormal FontSizeClass = iota
	FontSizeLarge
	FontSizeExtraLarge
)

var fontSizeClassNames = map[string]FontSizeClass{
	"normal":      FontSizeNormal,
	"large":       FontSizeLarge,
	"extra-large": FontSizeExtraLarge,
}

// Desktop property keys for the system font facts.
const (
	DesktopIconFont       = "win.icon.font"
	DesktopDefaultGUIFont = "win.defaultGUI.font"
	DesktopMenuFont       = "win.menu.font"
	DesktopMessageFont    = "win.messagebox.font"
	DesktopToolTipFont    = "win.tooltip.font"
	DesktopCaptionFont    = "win.frame.captionFont"
)

const (
	defaultDPI     = 96
	lowResDPIBound = 120
	probeEnvPrefix = "LOOKS_"
)

// Environment holds read-only facts about the runtime.
// It is a value type; DesktopFont returns copies and the map is never exposed.
type Environment struct {
	OS            OSFamily
	Release       Release
	Toolkit       Toolkit
	DPI           int
	FontSize      FontSizeClass
	EnhancedTheme bool

	desktopFonts map[string]Font
}

// NewEnvironment returns an environment with the given facts and desktop fonts.
func NewEnvironment(family OSFamily, release Release, toolkit Toolkit, dpi int, size FontSizeClass, enhancedTheme bool, desktopFonts map[string]Font) Environment {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	return Environment{
		OS:            family,
		Release:       release,
		Toolkit:       toolkit,
		DPI:           dpi,
		FontSize:      size,
		EnhancedTheme: enhancedTheme,
		desktopFonts:  maps.Clone(desktopFonts),
	}
}

// DesktopFont returns the system font fact stored under key.
func (e Environment) DesktopFont(key string) (Font, bool) {
	f, ok := e.desktopFonts[key]
	return f, ok && !f.IsZero()
}

// DesktopFonts returns a copy of all system font facts.
func (e Environment) DesktopFonts() map[string]Font {
	return maps.Clone(e.desktopFonts)
}

// IsWindows reports whether the host is a Windows system.
func (e Environment) IsWindows() bool { return e.OS == OSWindows }

// LowResolution reports whether the screen resolution is below 120 dpi.
func (e Environment) LowResolution() bool { return e.DPI < lowResDPIBound }

// Capabilities resolves the capability set for this environment.
func (e Environment) Capabilities() Capabilities {
	var c Capabilities
	if e.IsWindows() {
		c |= CapWindows
	}
	if e.Toolkit < ToolkitEarly {
		c |= CapLegacyRuntime
	}
	if e.Toolkit >= ToolkitRevised {
		c |= CapMenuRevision
	}
	if e.EnhancedTheme {
		c |= CapEnhancedTheme
	}
	if e.LowResolution() {
		c |= CapLowResolution
	}
	if e.IsWindows() && e.Release >= ReleaseWinVista &&
		e.Toolkit >= ToolkitEarly && e.Toolkit <= ToolkitCurrent {
		c |= CapSegoeMisrender
	}
	return c
}

func (e Environment) String() string {
	return fmt.Sprintf("os=%s release=%d toolkit=%d dpi=%d fontSize=%d enhancedTheme=%t",
		e.OS, e.Release, e.Toolkit, e.DPI, e.FontSize, e.EnhancedTheme)
}

// Capabilities is the explicit capability set consulted by policies and passes.
type Capabilities uint

const (
	CapWindows        Capabilities = 1 << iota
	CapLegacyRuntime                // toolkit predates the 1.4 line
	CapMenuRevision                 // toolkit ships the revised menu delegates
	CapEnhancedTheme                // the enhanced (XP style) theme is available
	CapLowResolution                // DPI below 120
	CapSegoeMisrender               // toolkit renders the Vista icon font poorly
)

// Has reports whether every capability in want is present.
func (c Capabilities) Has(want Capabilities) bool { return c&want == want }

// probeOverrides are the LOOKS_* environment variables honored by Probe.
type probeOverrides struct {
	OS            string `env:"OS"`
	Release       string `env:"OS_RELEASE"`
	Toolkit       string `env:"TOOLKIT" envDefault:"modern"`
	DPI           int    `env:"DPI" envDefault:"96"`
	FontSize      string `env:"FONT_SIZE" envDefault:"normal"`
	EnhancedTheme *bool  `env:"ENHANCED_THEME"`
	IconFont      string `env:"ICON_FONT"`
	GUIFont       string `env:"GUI_FONT"`
	MenuFont      string `env:"MENU_FONT"`
	MessageFont   string `env:"MESSAGE_FONT"`
	ToolTipFont   string `env:"TOOLTIP_FONT"`
	CaptionFont   string `env:"CAPTION_FONT"`
}

var probeOnce = sync.OnceValues(func() (Environment, error) {
	return DetectEnvironment()
})

// probeEnvironment is the detection hook used by the resolving entry points.
var probeEnvironment = Probe

// Probe returns the process-wide environment, detected once on first use.
// Detection errors are returned on every call; the environment is then the
// cross-platform fallback.
func Probe() (Environment, error) {
	return probeOnce()
}

// probeOrFallback returns the detected environment. A detection error is
// logged and the cross-platform fallback returned with it is used instead.
func probeOrFallback(logger *log.Logger) Environment {
	env, err := probeEnvironment()
	if err != nil {
		logger.Printf("environment: %v, using cross-platform fallback", err)
		return fallbackEnvironment()
	}
	return env
}

// DetectEnvironment detects the environment from runtime.GOOS and LOOKS_* overrides.
// Unlike Probe it does not cache.
func DetectEnvironment() (Environment, error) {
	var o probeOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: probeEnvPrefix}); err != nil {
		return fallbackEnvironment(), fmt.Errorf("parse environment overrides: %w", err)
	}

	osFamily := osFamilyFromGOOS(runtime.GOOS)
	if o.OS != "" {
		osFamily = osFamilyFromGOOS(o.OS)
	}

	release, ok := releaseNames[strings.ToLower(o.Release)]
	if !ok {
		return fallbackEnvironment(), unknownOverride("OS_RELEASE", o.Release, "release")
	}
	if osFamily == OSWindows && release == ReleaseUnknown {
		release = ReleaseWinXP
	}

	toolkit, ok := toolkitNames[strings.ToLower(o.Toolkit)]
	if !ok {
		return fallbackEnvironment(), unknownOverride("TOOLKIT", o.Toolkit, "toolkit")
	}

	sizeClass, ok := fontSizeClassNames[strings.ToLower(o.FontSize)]
	if !ok {
		return fallbackEnvironment(), unknownOverride("FONT_SIZE", o.FontSize, "font size class")
	}

	enhanced := osFamily == OSWindows && release >= ReleaseWinXP
	if o.EnhancedTheme != nil {
		enhanced = *o.EnhancedTheme
	}

	fonts := map[string]Font{}
	if osFamily == OSWindows {
		fonts = windowsDesktopFonts(release, o.DPI, sizeClass)
	}
	declared := map[string]string{
		DesktopIconFont:       o.IconFont,
		DesktopDefaultGUIFont: o.GUIFont,
		DesktopMenuFont:       o.MenuFont,
		DesktopMessageFont:    o.MessageFont,
		DesktopToolTipFont:    o.ToolTipFont,
		DesktopCaptionFont:    o.CaptionFont,
	}
	for key, descriptor := range declared {
		if descriptor == "" {
			continue
		}
		f, err := ParseFont(descriptor)
		if err != nil {
			return fallbackEnvironment(), withKey(err, key)
		}
		fonts[key] = f
	}

	return NewEnvironment(osFamily, release, toolkit, o.DPI, sizeClass, enhanced, fonts), nil
}

func unknownOverride(name, value, what string) error {
	return &ConfigurationError{
		Key:   probeEnvPrefix + name,
		Value: value,
		Err:   fmt.Errorf("unknown %s", what),
	}
}

func fallbackEnvironment() Environment {
	return NewEnvironment(OSOther, ReleaseUnknown, ToolkitModern, defaultDPI, FontSizeNormal, false, nil)
}

func osFamilyFromGOOS(goos string) OSFamily {
	switch strings.ToLower(goos) {
	case "windows":
		return OSWindows
	case "darwin", "mac", "ios":
		return OSMac
	case "linux", "android":
		return OSLinux
	case "solaris", "illumos":
		return OSSolaris
	}
	return OSOther
}

// windowsDesktopFonts approximates the desktop font facts of a Windows release.
// Icon and GUI fonts scale with the resolution and the desktop font size class.
func windowsDesktopFonts(release Release, dpi int, class FontSizeClass) map[string]Font {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	scale := func(points int) int {
		size := (points*dpi + defaultDPI/2) / defaultDPI
		return size + 2*int(class)
	}

	iconFamily, iconSize := "Tahoma", 11
	switch {
	case release >= ReleaseWinVista:
		iconFamily, iconSize = "Segoe UI", 12
	case release <= ReleaseWinNT:
		iconFamily = "MS Sans Serif"
	}
	icon := Font{Family: iconFamily, Style: StylePlain, Size: scale(iconSize)}

	return map[string]Font{
		DesktopIconFont:       icon,
		DesktopDefaultGUIFont: {Family: "MS Sans Serif", Style: StylePlain, Size: scale(11)},
		DesktopMenuFont:       icon,
		DesktopMessageFont:    icon,
		DesktopToolTipFont:    icon,
		DesktopCaptionFont:    icon.Emboldened(),
	}
}
