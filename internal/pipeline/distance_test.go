package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"milecompare/internal/pipeline"
	"milecompare/internal/reference"
)

var someAirports = []string{
	"HND", "NRT", "ITM", "KIX", "CTS", "FUK", "OKA", "ISG",
	"ICN", "TPE", "HNL", "LAX", "JFK", "LHR", "SYD", "GUM", "XXX",
}

func TestResolve_Symmetric(t *testing.T) {
	d := pipeline.NewDistanceResolver(64)
	for _, a := range someAirports {
		for _, b := range someAirports {
			assert.Equal(t, d.Resolve(a, b), d.Resolve(b, a), "%s-%s", a, b)
		}
	}
}

func TestResolve_LookupOrder(t *testing.T) {
	d := pipeline.NewDistanceResolver(0)

	t.Run("table hit", func(t *testing.T) {
		assert.Equal(t, 514, d.Resolve("HND", "ITM"))
	})
	t.Run("reversed hit", func(t *testing.T) {
		assert.Equal(t, 514, d.Resolve("ITM", "HND"))
		assert.Equal(t, 8753, d.Resolve("lax", "nrt"))
	})
	t.Run("great circle", func(t *testing.T) {
		_, ok := reference.KnownDistance("KIX", "ITM")
		assert.False(t, ok)
		assert.InDelta(t, 43, d.Resolve("KIX", "ITM"), 3)
		// cached value is returned the second time round
		assert.Equal(t, d.Resolve("KIX", "ITM"), d.Resolve("ITM", "KIX"))
	})
	t.Run("missing coordinates", func(t *testing.T) {
		assert.Equal(t, reference.FallbackDistanceKm, d.Resolve("HND", "ZZZ"))
		assert.Equal(t, reference.FallbackDistanceKm, d.Resolve("ZZZ", "YYY"))
	})
}
