// Package colour implements the colour spaces, conversions, and perceptual
// distance metrics used by the extraction pipeline.
package colour

import "math"

// SRGB is a gamma-encoded sRGB colour with channels in [0, 1].
type SRGB struct {
	R, G, B float64
}

// LinearRGB is a linear-light RGB colour with channels in [0, 1] for
// in-gamut values.
type LinearRGB struct {
	R, G, B float64
}

// XYZ is a CIE 1931 XYZ colour under the D65 illuminant, scaled so that the
// Y of reference white is 100.
type XYZ struct {
	X, Y, Z float64
}

// LAB is a CIE 1976 L*a*b* colour.
type LAB struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// D65 reference white, scaled to Y = 100. The values match the row sums of
// the linear-RGB to XYZ matrix so that reference white lands on a = b = 0.
const (
	whitePointX = 95.05
	whitePointY = 100.0
	whitePointZ = 108.9
)

const (
	// Breakpoint between the linear and power segments of the sRGB gamma
	// curve, on the encoded side.
	srgbDecodeThreshold = 0.04045

	// The same breakpoint on the linear side.
	srgbEncodeThreshold = 0.0031308
)

// labDelta is 6/29, the knee of the LAB compression function; labEpsilon is
// its cube, the knee on the XYZ-ratio side.
const (
	labDelta   = 6.0 / 29.0
	labEpsilon = labDelta * labDelta * labDelta
)

// Linear decodes the sRGB gamma curve, channel by channel.
func (c SRGB) Linear() LinearRGB {
	return LinearRGB{
		R: srgbToLinear(c.R),
		G: srgbToLinear(c.G),
		B: srgbToLinear(c.B),
	}
}

// SRGB encodes the linear colour back onto the sRGB gamma curve. No clamping
// is applied; out-of-gamut values pass through.
func (c LinearRGB) SRGB() SRGB {
	return SRGB{
		R: linearToSRGB(c.R),
		G: linearToSRGB(c.G),
		B: linearToSRGB(c.B),
	}
}

func srgbToLinear(v float64) float64 {
	if v <= srgbDecodeThreshold {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSRGB(v float64) float64 {
	if v <= srgbEncodeThreshold {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

// XYZ converts linear RGB to CIE XYZ using the sRGB/D65 matrix, scaled by
// 100 to match the white point.
func (c LinearRGB) XYZ() XYZ {
	return XYZ{
		X: (0.4124*c.R + 0.3576*c.G + 0.1805*c.B) * 100.0,
		Y: (0.2126*c.R + 0.7152*c.G + 0.0722*c.B) * 100.0,
		Z: (0.0193*c.R + 0.1192*c.G + 0.9505*c.B) * 100.0,
	}
}

// LinearRGB converts CIE XYZ back to linear RGB with the inverse matrix.
func (c XYZ) LinearRGB() LinearRGB {
	x := c.X / 100.0
	y := c.Y / 100.0
	z := c.Z / 100.0
	return LinearRGB{
		R: 3.2406*x - 1.5372*y - 0.4986*z,
		G: -0.9689*x + 1.8758*y + 0.0415*z,
		B: 0.0557*x - 0.2040*y + 1.0570*z,
	}
}

// LAB converts CIE XYZ to CIE L*a*b* relative to the D65 white point.
func (c XYZ) LAB() LAB {
	fx := labForward(c.X / whitePointX)
	fy := labForward(c.Y / whitePointY)
	fz := labForward(c.Z / whitePointZ)
	return LAB{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

// XYZ converts CIE L*a*b* back to CIE XYZ.
func (c LAB) XYZ() XYZ {
	fy := (c.L + 16.0) / 116.0
	fx := fy + c.A/500.0
	fz := fy - c.B/200.0
	return XYZ{
		X: whitePointX * labInverse(fx),
		Y: whitePointY * labInverse(fy),
		Z: whitePointZ * labInverse(fz),
	}
}

// labForward is the cube-root compression applied to XYZ ratios: t^(1/3)
// above labEpsilon, the matching linear segment below.
func labForward(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return t/(3.0*labDelta*labDelta) + 4.0/29.0
}

// labInverse is the exact algebraic inverse of labForward, with the knee
// mirrored to labDelta.
func labInverse(t float64) float64 {
	if t > labDelta {
		return t * t * t
	}
	return 3.0 * labDelta * labDelta * (t - 4.0/29.0)
}

// LAB runs the full forward pipeline sRGB -> linear -> XYZ -> LAB.
func (c SRGB) LAB() LAB {
	return c.Linear().XYZ().LAB()
}

// SRGB runs the full inverse pipeline LAB -> XYZ -> linear -> sRGB. Nothing
// is clamped on the way back; callers quantizing for display must tolerate
// out-of-gamut components (see SRGB.RGB).
func (c LAB) SRGB() SRGB {
	return c.XYZ().LinearRGB().SRGB()
}

// RGB quantizes the colour to 8-bit sRGB for display consumers.
func (c LAB) RGB() RGB {
	return c.SRGB().RGB()
}

// Add returns the componentwise sum. Together with Div and Zero this lets
// the clusterer average LAB colours.
func (c LAB) Add(o LAB) LAB {
	return LAB{L: c.L + o.L, A: c.A + o.A, B: c.B + o.B}
}

// Div returns the colour with every component divided by n.
func (c LAB) Div(n int) LAB {
	d := float64(n)
	return LAB{L: c.L / d, A: c.A / d, B: c.B / d}
}

// Zero returns the additive identity.
func (c LAB) Zero() LAB {
	return LAB{}
}
