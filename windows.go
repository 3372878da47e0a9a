// FILE: lixenwraith/looks/windows.go
package looks

import (
	"errors"
	"log"
	"maps"
	"slices"
)

// Pass names, in application order.
const (
	PassPlatform         = "platform"
	PassFonts            = "fonts"
	PassLegacyRuntime    = "legacy-runtime"
	PassPreEnhancedTheme = "pre-enhanced-theme"
	PassThemeIntegration = "theme-integration"
)

// Names of the deferred values built by WindowsFactories.
const (
	FactoryButtonBorder    = "windows.buttonBorder"
	FactoryComboBoxBorder  = "windows.comboBoxBorder"
	FactoryCheckBoxIcon    = "windows.checkBoxIcon"
	FactoryRadioButtonIcon = "windows.radioButtonIcon"
	FactoryEtchedBorder    = "windows.etchedBorder"
	FactoryMenuItemBorder  = "windows.menuItemBorder"
)

// WindowsFactories produces the borders and icons that are only built when read.
var WindowsFactories = Factories{
	FactoryButtonBorder: func() (any, error) {
		return Border{Kind: "button", Insets: NewInsets(2, 3, 3, 3)}, nil
	},
	FactoryComboBoxBorder: func() (any, error) {
		return Border{Kind: "combo-box", Insets: NewInsets(2, 2, 2, 2)}, nil
	},
	FactoryCheckBoxIcon: func() (any, error) {
		return Icon{Name: "check-box", Width: 13, Height: 13}, nil
	},
	FactoryRadioButtonIcon: func() (any, error) {
		return Icon{Name: "radio-button", Width: 13, Height: 13}, nil
	},
	FactoryEtchedBorder: func() (any, error) {
		return Border{Kind: "etched", Insets: NewInsets(2, 2, 2, 2)}, nil
	},
	FactoryMenuItemBorder: func() (any, error) {
		return Border{Kind: "menu-item", Insets: NewInsets(0, 0, 0, 0)}, nil
	},
}

// Per-component font keys installed by the fonts pass.
var (
	controlFontKeys = []string{
		"Button.font", "CheckBox.font", "ComboBox.font", "EditorPane.font",
		"FormattedTextField.font", "Label.font", "List.font", "Panel.font",
		"PasswordField.font", "ProgressBar.font", "RadioButton.font",
		"ScrollPane.font", "Spinner.font", "TabbedPane.font", "Table.font",
		"TableHeader.font", "TextArea.font", "TextField.font", "TextPane.font",
		"ToggleButton.font", "ToolBar.font", "Tree.font", "Viewport.font",
	}
	menuFontKeys = []string{
		"Menu.font", "MenuBar.font", "MenuItem.font", "CheckBoxMenuItem.font",
		"RadioButtonMenuItem.font", "PopupMenu.font", "Menu.acceleratorFont",
		"MenuItem.acceleratorFont", "CheckBoxMenuItem.acceleratorFont",
		"RadioButtonMenuItem.acceleratorFont",
	}
)

// WindowsPasses returns the table construction passes of the Windows profile.
func WindowsPasses() []Pass {
	return []Pass{
		{Name: PassPlatform, Defaults: windowsPlatformDefaults},
		FontsPass(),
		{Name: PassLegacyRuntime, Gate: RequireCapabilities(CapLegacyRuntime), Defaults: legacyRuntimeDefaults},
		{Name: PassPreEnhancedTheme, Gate: LackCapabilities(CapEnhancedTheme), Defaults: preEnhancedThemeDefaults},
		{Name: PassThemeIntegration, Defaults: themeIntegrationDefaults},
	}
}

// CrossPlatformPasses returns the passes used outside Windows.
func CrossPlatformPasses() []Pass {
	return []Pass{
		{Name: PassPlatform, Defaults: crossPlatformDefaults},
		FontsPass(),
		{Name: PassThemeIntegration, Defaults: themeIntegrationDefaults},
	}
}

// PassesFor selects the pass list for env.
func PassesFor(env Environment) []Pass {
	if env.IsWindows() {
		return WindowsPasses()
	}
	return CrossPlatformPasses()
}

// FontsPass installs the profile's font set under every per-component font key.
// It runs only when system fonts are in use. The current table is handed to
// the policy as its reference table.
func FontsPass() Pass {
	return Pass{
		Name: PassFonts,
		Gate: func(ctx PassContext) bool { return ctx.Options.UseSystemFonts },
		Defaults: func(ctx PassContext) ([]Entry, error) {
			policy := ctx.Policy
			if policy == nil {
				policy = PlatformPolicy(ctx.Environment)
			}
			fs, err := policy.FontSet(ctx.Profile, ctx.Table)
			if err != nil {
				return nil, err
			}
			return fontSetEntries(fs), nil
		},
	}
}

func fontSetEntries(fs FontSet) []Entry {
	entries := make([]Entry, 0, len(controlFontKeys)+len(menuFontKeys)+4)
	for _, key := range controlFontKeys {
		entries = append(entries, Entry{Key: key, Value: fs.ControlFont()})
	}
	for _, key := range menuFontKeys {
		entries = append(entries, Entry{Key: key, Value: fs.MenuFont()})
	}
	return append(entries,
		Entry{Key: "TitledBorder.font", Value: fs.TitleFont()},
		Entry{Key: TableOptionPaneFont, Value: fs.MessageFont()},
		Entry{Key: TableToolTipFont, Value: fs.SmallFont()},
		Entry{Key: TableInternalFrameFont, Value: fs.WindowTitleFont()},
	)
}

// windowsPalette returns the system colors of a Windows release.
func windowsPalette(release Release) map[string]Color {
	p := map[string]Color{
		"controlText":        {0x00, 0x00, 0x00},
		"controlShadow":      {0x80, 0x80, 0x80},
		"controlDkShadow":    {0x40, 0x40, 0x40},
		"controlLtHighlight": {0xFF, 0xFF, 0xFF},
		"Menu.foreground":    {0x00, 0x00, 0x00},
	}
	switch {
	case release >= ReleaseWinVista:
		p["control"] = Color{0xF0, 0xF0, 0xF0}
		p["menu"] = Color{0xF0, 0xF0, 0xF0}
		p["MenuItem.selectionBackground"] = Color{0x33, 0x99, 0xFF}
	case release == ReleaseWinXP:
		p["control"] = Color{0xEC, 0xE9, 0xD8}
		p["menu"] = Color{0xFF, 0xFF, 0xFF}
		p["MenuItem.selectionBackground"] = Color{0x31, 0x6A, 0xC5}
	default:
		p["control"] = Color{0xD4, 0xD0, 0xC8}
		p["menu"] = Color{0xD4, 0xD0, 0xC8}
		p["MenuItem.selectionBackground"] = Color{0x0A, 0x24, 0x6A}
	}
	p["controlHighlight"] = p["control"]
	p["Menu.background"] = p["menu"]
	p["MenuItem.selectionForeground"] = Color{0xFF, 0xFF, 0xFF}
	p["ScrollBar.track"] = p["control"]
	return p
}

// windowsPlatformDefaults is the base platform pass: system colors, platform
// fonts sized by the effective font size hints, and component metrics.
func windowsPlatformDefaults(ctx PassContext) ([]Entry, error) {
	env := ctx.Environment
	lowRes := env.LowResolution()
	legacy := ctx.Capabilities.Has(CapLegacyRuntime)
	isXP := env.Release == ReleaseWinXP
	hints := EffectiveFontSizeHints(nil, ctx.Options.FontSizeHints)

	palette := windowsPalette(env.Release)
	entries := make([]Entry, 0, 96)
	for _, key := range slices.Sorted(maps.Keys(palette)) {
		entries = append(entries, Entry{Key: key, Value: palette[key]})
	}

	control := windowsControlFont(env).WithSize(hints.ControlFontSize(lowRes))
	menu := control
	if f, ok := env.DesktopFont(DesktopMenuFont); ok {
		menu = f
	}
	menu = menu.WithSize(hints.MenuFontSize(lowRes))
	message := control
	if f, ok := env.DesktopFont(DesktopMessageFont); ok {
		message = f.WithSize(control.Size)
	}
	toolTip := control.Shrunk(1)
	if f, ok := env.DesktopFont(DesktopToolTipFont); ok {
		toolTip = f.WithSize(toolTip.Size)
	}
	caption := control.Emboldened()
	if f, ok := env.DesktopFont(DesktopCaptionFont); ok {
		caption = f.WithSize(control.Size)
	}

	entries = append(entries,
		Entry{Key: TableMenuFont, Value: menu},
		Entry{Key: TableOptionPaneFont, Value: message},
		Entry{Key: TableToolTipFont, Value: toolTip},
		Entry{Key: TableInternalFrameFont, Value: caption},
		Entry{Key: TableControlFont, Value: control},
	)

	textInsets := NewInsets(2, 3, 2, 2)
	if lowRes && legacy {
		textInsets = NewInsets(0, 3, 1, 2)
	}

	var menuItemMargin Insets
	switch {
	case lowRes:
		menuItemMargin = NewInsets(3, 0, 3, 0)
	case legacy:
		menuItemMargin = NewInsets(1, 0, 1, 0)
	default:
		menuItemMargin = NewInsets(2, 0, 2, 0)
	}

	var menuMargin Insets
	switch {
	case lowRes && legacy:
		menuMargin = NewInsets(1, 3, 1, 3)
	case lowRes:
		menuMargin = NewInsets(2, 3, 2, 3)
	default:
		menuMargin = NewInsets(2, 4, 2, 4)
	}

	pad := 0
	if isXP {
		pad = 3
	}
	popupSeparatorMargin := NewInsets(3, pad, 4, pad)
	if lowRes {
		popupSeparatorMargin = NewInsets(2, pad, 3, pad)
	}

	menuBarBackground := palette["menu"]
	menuSelectionBackground := palette["Menu.background"]
	menuSelectionForeground := palette["Menu.foreground"]
	if isXP {
		menuBarBackground = palette["control"]
		menuSelectionBackground = palette["MenuItem.selectionBackground"]
		menuSelectionForeground = palette["MenuItem.selectionForeground"]
	}

	marginBorder := Border{Kind: "margin"}
	separatorBorder := Border{Kind: "separator", Insets: NewInsets(0, 0, 1, 0)}
	etchedBorder := WindowsFactories.Lazy(FactoryEtchedBorder)
	iconHeight := ctx.Options.DefaultIconSize.Height
	if iconHeight <= 0 {
		iconHeight = DefaultOptions().DefaultIconSize.Height
	}

	table := ctx.Table
	rowHeight := NewLazyValue("windows.treeRowHeight", func() (any, error) {
		f, ok := table.Font(TableControlFont)
		if !ok {
			return nil, errors.New("key " + TableControlFont + " not present")
		}
		return f.Size + 6, nil
	})

	more, err := Entries(
		"Button.border", WindowsFactories.Lazy(FactoryButtonBorder),
		"Button.margin", buttonMargin(false, lowRes),
		"Button.narrowMargin", buttonMargin(true, lowRes),

		"Menu.border", Border{Kind: "menu", Insets: NewInsets(2, 2, 2, 2)},
		"Menu.borderPainted", true,
		"Menu.background", menuBarBackground,
		"Menu.selectionForeground", menuSelectionForeground,
		"Menu.selectionBackground", menuSelectionBackground,
		"Menu.margin", menuMargin,

		"MenuBar.background", menuBarBackground,
		"MenuBar.border", separatorBorder,
		"MenuBar.emptyBorder", marginBorder,
		"MenuBar.separatorBorder", separatorBorder,
		"MenuBar.etchedBorder", etchedBorder,
		"MenuBar.headerBorder", Border{Kind: "menu-bar-header", Insets: NewInsets(2, 2, 1, 2)},

		"MenuItem.borderPainted", true,
		"MenuItem.checkIcon", Icon{Name: "minimum-sized", Width: 8, Height: 8},
		"MenuItem.margin", menuItemMargin,
		"CheckBoxMenuItem.margin", menuItemMargin,
		"RadioButtonMenuItem.margin", menuItemMargin,

		"FormattedTextField.margin", textInsets,
		"PasswordField.margin", textInsets,
		"PopupMenuSeparator.margin", popupSeparatorMargin,

		"ScrollPane.etchedBorder", etchedBorder,
		"Table.gridColor", palette["control"],
		"TextArea.margin", textInsets,
		"TextField.margin", textInsets,
		"ToggleButton.margin", buttonMargin(false, lowRes),
		"ToggleButton.narrowMargin", buttonMargin(true, lowRes),

		"ToolBar.border", marginBorder,
		"ToolBar.emptyBorder", marginBorder,
		"ToolBar.separatorBorder", separatorBorder,
		"ToolBar.etchedBorder", etchedBorder,
		"ToolBar.headerBorder", Border{Kind: "tool-bar-header", Insets: NewInsets(1, 2, 2, 2)},
		"ToolBar.separatorSize", Dimension{Width: 6, Height: iconHeight},
		"ToolBar.margin", NewInsets(0, 10, 0, 0),

		"Tree.selectionBorderColor", palette["control"],
		"Tree.rowHeight", rowHeight,
	)
	if err != nil {
		return nil, err
	}
	return append(entries, more...), nil
}

// buttonMargin returns the button margin for the narrow or wide variant.
func buttonMargin(narrow, lowRes bool) Insets {
	pad := 14
	if narrow {
		pad = 4
	}
	if lowRes {
		return NewInsets(1, pad, 2, pad)
	}
	return NewInsets(2, pad, 3, pad)
}

// crossPlatformDefaults seeds the reference fonts outside Windows.
func crossPlatformDefaults(ctx PassContext) ([]Entry, error) {
	logical := LogicalFontSet()
	hints := EffectiveFontSizeHints(nil, ctx.Options.FontSizeHints)
	lowRes := ctx.Environment.LowResolution()
	control := logical.ControlFont().WithSize(hints.ControlFontSize(lowRes))

	return Entries(
		TableMenuFont, logical.MenuFont().WithSize(hints.MenuFontSize(lowRes)),
		TableOptionPaneFont, control,
		TableToolTipFont, control.Shrunk(2),
		TableInternalFrameFont, control.Emboldened(),
		TableControlFont, control,
		"Button.margin", buttonMargin(false, lowRes),
		"TextField.margin", NewInsets(2, 3, 2, 2),
	)
}

// legacyRuntimeDefaults repairs defaults of toolkits that predate the 1.4 line.
func legacyRuntimeDefaults(ctx PassContext) ([]Entry, error) {
	table := ctx.Table
	controlText, _ := table.Color("controlText")
	control, _ := table.Color("control")
	track, ok := table.Color("ScrollBar.track")
	if !ok {
		track = control
	}

	scrollBarWidth := 16
	if ctx.Capabilities.Has(CapLowResolution) {
		scrollBarWidth = 13
	}

	menuItemBorder := WindowsFactories.Lazy(FactoryMenuItemBorder)
	focusBorder := Border{Kind: "line", Insets: NewInsets(1, 1, 1, 1)}
	shadow, _ := table.Color("controlShadow")
	highlight, _ := table.Color("controlLtHighlight")

	return Entries(
		"CheckBox.darkShadow", controlText,
		"CheckBoxMenuItem.border", menuItemBorder,
		"List.focusCellHighlightBorder", focusBorder,
		"MenuItem.border", menuItemBorder,
		"PopupMenu.border", Border{Kind: "toggle-button", Insets: NewInsets(2, 2, 2, 2)},
		"RadioButton.darkShadow", controlText,
		"RadioButtonMenuItem.border", menuItemBorder,
		"ScrollBar.track", track.Brighter(),
		"ScrollBar.width", scrollBarWidth,
		"Table.focusCellHighlightBorder", focusBorder,
		"TableHeader.cellBorder", Border{Kind: "compound", Insets: NewInsets(2, 4, 2, 2)},
		"ToolBar.shadow", shadow,
		"ToolBar.highlight", highlight,
	)
}

// preEnhancedThemeDefaults supplies borders and icons the enhanced theme would provide.
func preEnhancedThemeDefaults(ctx PassContext) ([]Entry, error) {
	table := ctx.Table
	legacy := ctx.Capabilities.Has(CapLegacyRuntime)
	controlText, _ := table.Color("controlText")

	var checkBoxIcon, radioButtonIcon any = WindowsFactories.Lazy(FactoryCheckBoxIcon), WindowsFactories.Lazy(FactoryRadioButtonIcon)
	if legacy {
		// Older toolkits keep their own icons when present
		if v, ok := table.Get("CheckBox.icon"); ok {
			checkBoxIcon = v
		}
		if v, ok := table.Get("RadioButton.icon"); ok {
			radioButtonIcon = v
		}
	}

	marginBorder := Border{Kind: "margin"}
	checkBoxMargin := NewInsets(2, 0, 2, 0)

	return Entries(
		"CheckBox.border", marginBorder,
		"CheckBox.margin", checkBoxMargin,
		"CheckBox.checkColor", controlText,
		"CheckBox.icon", checkBoxIcon,
		"ComboBox.border", WindowsFactories.Lazy(FactoryComboBoxBorder),
		"RadioButton.border", marginBorder,
		"RadioButton.margin", checkBoxMargin,
		"RadioButton.checkColor", controlText,
		"RadioButton.icon", radioButtonIcon,
		"Table.scrollPaneBorder", Border{Kind: "field", Insets: NewInsets(2, 2, 2, 2)},
	)
}

// themeIntegrationDefaults installs the replacement borders used by ClearLook.
func themeIntegrationDefaults(PassContext) ([]Entry, error) {
	empty := Border{Kind: "empty"}
	thinLowered := Border{Kind: "thin-lowered", Insets: NewInsets(1, 1, 1, 1)}
	thinRaised := Border{Kind: "thin-raised", Insets: NewInsets(1, 1, 1, 1)}
	statusCell := Border{Kind: "compound", Insets: NewInsets(3, 1, 2, 4)}

	return Entries(
		"ClearLook.ScrollPaneReplacementBorder", empty,
		"ClearLook.SplitPaneReplacementBorder", empty,
		"ClearLook.ThinLoweredBorder", thinLowered,
		"ClearLook.ThinRaisedBorder", thinRaised,
		"ClearLook.NetBeansScrollPaneBorder", empty,
		"ClearLook.NetBeansSpecialPanelBorder", empty,
		"ClearLook.NetBeansStatusCellBorder", statusCell,
		"ClearLook.NetBeansTabbedPaneBorder", empty,
	)
}

// BuildTable constructs a new table by applying passes in order.
func BuildTable(ctx PassContext, logger *log.Logger, passes ...Pass) (*Table, error) {
	table := NewTable(logger)
	applied, err := table.Apply(ctx, passes...)
	if err != nil {
		return nil, err
	}
	table.logger.Printf("table: profile %s built with passes %v (%d keys)", ctx.Profile, applied, table.Len())
	return table, nil
}

