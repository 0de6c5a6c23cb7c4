// Package colour implements the colour spaces, conversions, and perceptual
// distance metrics used by the extraction pipeline.
package colour

// ConversionCache memoizes RGB to LAB conversions. Downsampled images repeat
// the same quantized colours often, and the full conversion costs two
// math.Pow calls per channel plus three cube roots, so caching pays for
// itself quickly on photographic input.
//
// The cache grows without bound (at most 16.7M entries, in practice far
// fewer) and is not safe for concurrent use. Callers own the cache and its
// lifetime; there is no package-level instance.
type ConversionCache struct {
	lab map[RGB]LAB
}

// NewConversionCache returns an empty cache.
func NewConversionCache() *ConversionCache {
	return &ConversionCache{lab: make(map[RGB]LAB)}
}

// LAB converts an RGB colour to LAB, reusing a prior result when the same
// colour has been seen before. The result is identical to calling RGB.LAB
// directly.
func (c *ConversionCache) LAB(p RGB) LAB {
	if v, ok := c.lab[p]; ok {
		return v
	}
	v := p.LAB()
	c.lab[p] = v
	return v
}

// Len reports the number of distinct colours cached so far.
func (c *ConversionCache) Len() int {
	return len(c.lab)
}
