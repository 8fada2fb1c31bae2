package lyon

// PackedColor is an 8-bit-per-channel RGBA color packed into a single
// uint32 as r<<24 | g<<16 | b<<8 | a. The SVG shader unpacks it with
// shifts and divides by 255.
type PackedColor uint32

// PackColor packs four 8-bit channels into a PackedColor.
func PackColor(r, g, b, a uint8) PackedColor {
	return PackedColor(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// RGBA returns the four 8-bit channels of the packed color.
func (c PackedColor) RGBA() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Float4 expands the packed color to normalized float components in
// the order the shaders consume them.
func (c PackedColor) Float4() [4]float32 {
	r, g, b, a := c.RGBA()
	return [4]float32{
		float32(r) / 255,
		float32(g) / 255,
		float32(b) / 255,
		float32(a) / 255,
	}
}
