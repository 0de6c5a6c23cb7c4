// Package colour implements the colour spaces, conversions, and perceptual
// distance metrics used by the extraction pipeline.
package colour

import (
	"fmt"
	"math"
)

// Accuracy selects the perceptual difference formula used when clustering.
type Accuracy string

const (
	// AccuracyLow uses CIE76, plain Euclidean distance in LAB.
	AccuracyLow Accuracy = "low"

	// AccuracyMedium uses CIE94 with graphic-arts weights.
	AccuracyMedium Accuracy = "medium"

	// AccuracyHigh uses CIEDE2000, the most faithful and the most expensive.
	AccuracyHigh Accuracy = "high"
)

// ValidAccuracies returns the accuracy tiers a caller may request.
func ValidAccuracies() []Accuracy {
	return []Accuracy{AccuracyLow, AccuracyMedium, AccuracyHigh}
}

// IsValidAccuracy checks whether the given accuracy tier is recognised.
func IsValidAccuracy(a Accuracy) bool {
	for _, valid := range ValidAccuracies() {
		if a == valid {
			return true
		}
	}
	return false
}

// DistanceFunc returns the squared perceptual difference between two LAB
// colours. Squared, because the clusterer only compares distances and the
// square root would be wasted work.
type DistanceFunc func(a, b LAB) float64

// MetricFor returns the distance function for an accuracy tier.
func MetricFor(a Accuracy) (DistanceFunc, error) {
	switch a {
	case AccuracyLow:
		return CIE76Squared, nil
	case AccuracyMedium:
		return CIE94Squared, nil
	case AccuracyHigh:
		return CIE2000Squared, nil
	default:
		return nil, fmt.Errorf("unknown accuracy: %s (valid accuracies: %v)", a, ValidAccuracies())
	}
}

// CIE76Squared is the squared Euclidean distance in L*a*b*.
func CIE76Squared(x, y LAB) float64 {
	dL := x.L - y.L
	dA := x.A - y.A
	dB := x.B - y.B
	return dL*dL + dA*dA + dB*dB
}

// CIE94 application weights for graphic arts; the k weights are unity.
const (
	cie94K1 = 0.045
	cie94K2 = 0.015
)

// CIE94Squared is the squared CIE94 difference. Lightness, chroma, and hue
// are compensated by chroma-dependent scale factors; the hue term is derived
// algebraically (da² + db² - dC²) so zero-chroma inputs never divide by zero
// or take the square root of a negative.
func CIE94Squared(x, y LAB) float64 {
	dL := x.L - y.L
	c1 := math.Sqrt(x.A*x.A + x.B*x.B)
	c2 := math.Sqrt(y.A*y.A + y.B*y.B)
	dC := c1 - c2
	dA := x.A - y.A
	dB := x.B - y.B
	dH2 := dA*dA + dB*dB - dC*dC

	sc := 1.0 + cie94K1*c1
	sh := 1.0 + cie94K2*c1

	return dL*dL + (dC/sc)*(dC/sc) + dH2/(sh*sh)
}

// twentyFivePow7 is 25^7, the chroma constant in the CIEDE2000 G and Rc
// terms.
const twentyFivePow7 = 6103515625.0

// CIE2000Squared is the squared CIEDE2000 difference: a-axis rescaling via
// G, hue-angle interpolation, the Rt rotation term, and the Sl, Sc, Sh
// scale factors.
func CIE2000Squared(x, y LAB) float64 {
	lBar := (x.L + y.L) / 2.0

	c1 := math.Sqrt(x.A*x.A + x.B*x.B)
	c2 := math.Sqrt(y.A*y.A + y.B*y.B)
	cBar := (c1 + c2) / 2.0
	cBar7 := math.Pow(cBar, 7)
	g := 0.5 * (1.0 - math.Sqrt(cBar7/(cBar7+twentyFivePow7)))

	a1p := x.A * (1.0 + g)
	a2p := y.A * (1.0 + g)
	c1p := math.Sqrt(a1p*a1p + x.B*x.B)
	c2p := math.Sqrt(a2p*a2p + y.B*y.B)
	cBarP := (c1p + c2p) / 2.0

	h1p := hueAngle(a1p, x.B)
	h2p := hueAngle(a2p, y.B)

	var dhp float64
	switch {
	case math.Abs(h1p-h2p) <= 180.0:
		dhp = h2p - h1p
	case h2p <= h1p:
		dhp = h2p - h1p + 360.0
	default:
		dhp = h2p - h1p - 360.0
	}
	dHp := 2.0 * math.Sqrt(c1p*c2p) * math.Sin(radians(dhp/2.0))

	var hBarP float64
	if math.Abs(h1p-h2p) > 180.0 {
		hBarP = (h1p + h2p + 360.0) / 2.0
	} else {
		hBarP = (h1p + h2p) / 2.0
	}

	t := 1.0 -
		0.17*math.Cos(radians(hBarP-30.0)) +
		0.24*math.Cos(radians(2.0*hBarP)) +
		0.32*math.Cos(radians(3.0*hBarP+6.0)) -
		0.20*math.Cos(radians(4.0*hBarP-63.0))

	lDev := (lBar - 50.0) * (lBar - 50.0)
	sl := 1.0 + 0.015*lDev/math.Sqrt(20.0+lDev)
	sc := 1.0 + 0.045*cBarP
	sh := 1.0 + 0.015*cBarP*t

	dTheta := 30.0 * math.Exp(-((hBarP-275.0)/25.0)*((hBarP-275.0)/25.0))
	cBarP7 := math.Pow(cBarP, 7)
	rc := 2.0 * math.Sqrt(cBarP7/(cBarP7+twentyFivePow7))
	rt := -rc * math.Sin(radians(2.0*dTheta))

	lTerm := (y.L - x.L) / sl
	cTerm := (c2p - c1p) / sc
	hTerm := dHp / sh

	return lTerm*lTerm + cTerm*cTerm + hTerm*hTerm + rt*cTerm*hTerm
}

// hueAngle returns the hue angle in degrees in [0, 360). A colour with
// a = b = 0 has no chroma and therefore no defined hue; zero is used.
func hueAngle(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	deg := math.Atan2(b, a) * 180.0 / math.Pi
	if deg < 0 {
		deg += 360.0
	}
	return deg
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
