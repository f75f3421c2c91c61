package vtcore

import "image/color"

// Color is a tagged terminal color value (spec §3): either a palette index
// in 0..255, or a direct RGB value, distinguished by a high bit tag. This
// mirrors how SGR 38/48 sub-parameters are described in §4.C.iv ("encoded
// as a tagged integer") rather than modeling colors as an interface value.
type Color uint32

const (
	// colorRGBTag marks the value as a direct 24-bit RGB color rather than
	// a palette index, which only ever occupies the low 8 bits (0..255),
	// leaving bit 24 free as a tag.
	colorRGBTag Color = 1 << 24

	// colorDefaultTag marks the "use terminal default" sentinel, kept
	// distinct from bit 24 so it never collides with a real palette index.
	colorDefaultTag Color = 1 << 25

	// ColorDefault is the sentinel for "no color set" (use the configured
	// default foreground/background).
	ColorDefault Color = colorDefaultTag
)

// RGB builds a direct-color Color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return colorRGBTag | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// Indexed builds a palette-index Color (0..255).
func Indexed(i uint8) Color {
	return Color(i)
}

// IsRGB reports whether c is a direct-RGB color rather than a palette index.
func (c Color) IsRGB() bool {
	return c&colorRGBTag != 0
}

// IsDefault reports whether c is the "use terminal default" sentinel.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}

// Index returns the palette index for an indexed color. Meaningless if
// IsRGB() is true.
func (c Color) Index() uint8 {
	return uint8(c & 0xFF)
}

// RGBA returns the raw RGB components of a direct color. Meaningless if
// IsRGB() is false.
func (c Color) RGBA() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// DefaultPalette is the standard 256-color palette: 16 named colors (0-15),
// 216 color cube (16-231), 24 grayscale (232-255).
var DefaultPalette = [256]color.RGBA{
	{0, 0, 0, 255},
	{205, 49, 49, 255},
	{13, 188, 121, 255},
	{229, 229, 16, 255},
	{36, 114, 200, 255},
	{188, 63, 188, 255},
	{17, 168, 205, 255},
	{229, 229, 229, 255},

	{102, 102, 102, 255},
	{241, 76, 76, 255},
	{35, 209, 139, 255},
	{245, 245, 67, 255},
	{59, 142, 234, 255},
	{214, 112, 214, 255},
	{41, 184, 219, 255},
	{255, 255, 255, 255},
}

func init() {
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = color.RGBA{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51), A: 255}
				i++
			}
		}
	}
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = color.RGBA{R: gray, G: gray, B: gray, A: 255}
	}
}

// DefaultForeground is the default text color.
var DefaultForeground = color.RGBA{R: 229, G: 229, B: 229, A: 255}

// DefaultBackground is the default background color.
var DefaultBackground = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// DefaultCursorColor is the default cursor rendering color.
var DefaultCursorColor = color.RGBA{R: 229, G: 229, B: 229, A: 255}

// Resolve maps a Color to an RGBA pixel using the given palette, falling
// back to the default foreground/background for ColorDefault. Host
// collaborators (the renderer, §1) call this to turn a cell's Fg/Bg into
// paintable pixels; the core itself never needs a resolved pixel value.
func (c Color) Resolve(palette *[256]color.RGBA, fg bool) color.RGBA {
	switch {
	case c.IsRGB():
		r, g, b := c.RGBA()
		return color.RGBA{R: r, G: g, B: b, A: 255}
	case c.IsDefault():
		if fg {
			return DefaultForeground
		}
		return DefaultBackground
	default:
		return palette[c.Index()]
	}
}
