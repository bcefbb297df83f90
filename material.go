package main

// rgb is a color triple with components in [0, 1].
type rgb struct {
	R, G, B float32
}

// bytes converts the color to 8-bit channel values.
func (c rgb) bytes() (uint8, uint8, uint8) {
	return uint8(c.R*255 + 0.5), uint8(c.G*255 + 0.5), uint8(c.B*255 + 0.5)
}

// materialEmpty is the sentinel value of an unoccupied cell.
const materialEmpty uint8 = 0

// palette maps material indices to renderable colors. Index 0 is the empty
// sentinel and never shades a hit; hits only carry non-zero materials.
var palette = []rgb{
	{},                 // empty
	{0.85, 0.10, 0.10}, // brick
	{0.55, 0.55, 0.58}, // stone
	{0.20, 0.65, 0.25}, // moss
	{0.80, 0.70, 0.35}, // sand
	{0.15, 0.35, 0.80}, // water
	{0.60, 0.35, 0.15}, // timber
	{0.90, 0.85, 0.80}, // chalk
}

// backgroundColor shades pixels whose rays reach their bound unobstructed.
var backgroundColor = rgb{0.07, 0.07, 0.09}

// materialCount is the number of paintable materials, excluding the sentinel.
func materialCount() uint8 {
	return uint8(len(palette) - 1)
}

// materialColor looks up the palette color for a material index. The empty
// sentinel and out-of-range indices map to the background.
func materialColor(m uint8) rgb {
	if m == materialEmpty || int(m) >= len(palette) {
		return backgroundColor
	}
	return palette[m]
}
