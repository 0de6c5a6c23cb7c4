// Package colour implements the colour spaces, conversions, and perceptual
// distance metrics used by the extraction pipeline.
package colour

import "testing"

func TestConversionCacheMatchesDirect(t *testing.T) {
	cache := NewConversionCache()
	colours := []RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 128, G: 64, B: 200},
		{R: 1, G: 2, B: 3},
	}

	for _, c := range colours {
		direct := c.LAB()
		cached := cache.LAB(c)
		if cached != direct {
			t.Errorf("cache.LAB(%v) = %+v, want %+v", c, cached, direct)
		}
		// Second lookup hits the cache and must return the same value.
		if again := cache.LAB(c); again != direct {
			t.Errorf("cached cache.LAB(%v) = %+v, want %+v", c, again, direct)
		}
	}
}

func TestConversionCacheLen(t *testing.T) {
	cache := NewConversionCache()
	if got := cache.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}

	cache.LAB(RGB{R: 10, G: 20, B: 30})
	cache.LAB(RGB{R: 10, G: 20, B: 30})
	if got := cache.Len(); got != 1 {
		t.Errorf("Len() after repeated colour = %d, want 1", got)
	}

	cache.LAB(RGB{R: 40, G: 50, B: 60})
	if got := cache.Len(); got != 2 {
		t.Errorf("Len() after second colour = %d, want 2", got)
	}
}
