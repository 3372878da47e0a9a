// FILE: lixenwraith/looks/fontset.go
package looks

import (
	"fmt"
	"strings"
)

// Role names one slot of a FontSet.
type Role string

const (
	RoleControl     Role = "control"
	RoleMenu        Role = "menu"
	RoleTitle       Role = "title"
	RoleMessage     Role = "message"
	RoleSmall       Role = "small"
	RoleWindowTitle Role = "windowTitle"
)

// Roles lists every FontSet role in declaration order.
var Roles = [...]Role{RoleControl, RoleMenu, RoleTitle, RoleMessage, RoleSmall, RoleWindowTitle}

// FontSet is an immutable role to font association.
// A FontSet returned by a Policy always has all six roles populated.
type FontSet struct {
	control     Font
	menu        Font
	title       Font
	message     Font
	small       Font
	windowTitle Font
}

// NewFontSet builds a font set and rejects it if any role is missing.
func NewFontSet(control, menu, title, message, small, windowTitle Font) (FontSet, error) {
	fs := FontSet{
		control:     control,
		menu:        menu,
		title:       title,
		message:     message,
		small:       small,
		windowTitle: windowTitle,
	}
	if err := fs.Validate(); err != nil {
		return FontSet{}, err
	}
	return fs, nil
}

// LogicalFontSet returns the generic logical font set. It is the resolution floor.
func LogicalFontSet() FontSet {
	control := Font{Family: "Dialog", Style: StylePlain, Size: DefaultFontSize}
	return FontSet{
		control:     control,
		menu:        control,
		title:       control.Emboldened(),
		message:     control,
		small:       control.Shrunk(2),
		windowTitle: control.Emboldened(),
	}
}

func (fs FontSet) ControlFont() Font     { return fs.control }
func (fs FontSet) MenuFont() Font        { return fs.menu }
func (fs FontSet) TitleFont() Font       { return fs.title }
func (fs FontSet) MessageFont() Font     { return fs.message }
func (fs FontSet) SmallFont() Font       { return fs.small }
func (fs FontSet) WindowTitleFont() Font { return fs.windowTitle }

// Font returns the font assigned to role.
func (fs FontSet) Font(role Role) (Font, bool) {
	switch role {
	case RoleControl:
		return fs.control, true
	case RoleMenu:
		return fs.menu, true
	case RoleTitle:
		return fs.title, true
	case RoleMessage:
		return fs.message, true
	case RoleSmall:
		return fs.small, true
	case RoleWindowTitle:
		return fs.windowTitle, true
	}
	return Font{}, false
}

// Fonts returns a fresh role to font map.
func (fs FontSet) Fonts() map[Role]Font {
	out := make(map[Role]Font, len(Roles))
	for _, role := range Roles {
		f, _ := fs.Font(role)
		out[role] = f
	}
	return out
}

// IsZero reports whether no role is populated.
func (fs FontSet) IsZero() bool {
	return fs == FontSet{}
}

// Validate returns ErrIncompleteFontSet naming every missing role.
func (fs FontSet) Validate() error {
	var missing []string
	for _, role := range Roles {
		if f, _ := fs.Font(role); f.IsZero() {
			missing = append(missing, string(role))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteFontSet, strings.Join(missing, ", "))
	}
	return nil
}

func (fs FontSet) String() string {
	var b strings.Builder
	for i, role := range Roles {
		if i > 0 {
			b.WriteString(" ")
		}
		f, _ := fs.Font(role)
		fmt.Fprintf(&b, "%s=%s", role, f)
	}
	return b.String()
}

// Equal reports whether both sets assign the same font to every role.
func (fs FontSet) Equal(other FontSet) bool { return fs == other }
