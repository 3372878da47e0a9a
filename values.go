// FILE: lixenwraith/looks/values.go
package looks

import "fmt"

// Insets are the top, left, bottom and right spacing of a component.
type Insets struct {
	Top    int `toml:"top"`
	Left   int `toml:"left"`
	Bottom int `toml:"bottom"`
	Right  int `toml:"right"`
}

func NewInsets(top, left, bottom, right int) Insets {
	return Insets{Top: top, Left: left, Bottom: bottom, Right: right}
}

func (i Insets) String() string {
	return fmt.Sprintf("insets(%d,%d,%d,%d)", i.Top, i.Left, i.Bottom, i.Right)
}

// Dimension is a width and height pair.
type Dimension struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// Brighter returns a slightly brighter color, as used for scroll bar tracks.
func (c Color) Brighter() Color {
	lift := func(v uint8) uint8 {
		n := int(v) + (255-int(v))/8
		if n > 255 {
			n = 255
		}
		return uint8(n)
	}
	return Color{R: lift(c.R), G: lift(c.G), B: lift(c.B)}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Border describes a component border by kind and the insets it occupies.
type Border struct {
	Kind   string `toml:"kind"`
	Insets Insets `toml:"insets"`
}

func (b Border) String() string {
	return fmt.Sprintf("border(%s %s)", b.Kind, b.Insets)
}

// Icon names a platform icon resource.
type Icon struct {
	Name   string `toml:"name"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

func (i Icon) String() string {
	return fmt.Sprintf("icon(%s %dx%d)", i.Name, i.Width, i.Height)
}
