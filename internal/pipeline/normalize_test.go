package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milecompare/internal/domain"
	"milecompare/internal/pipeline"
)

func offer(carrier string, price int, dep string) domain.RawOffer {
	return domain.RawOffer{CarrierID: carrier, Price: price, Departure: dep, Provenance: domain.ProvenanceReal}
}

func prices(offers []domain.RawOffer) []int {
	out := make([]int, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.Price)
	}
	return out
}

func TestNormalize_CollapsesCarrierToCheapest(t *testing.T) {
	in := []domain.RawOffer{
		offer("NH", 30000, "07:00"),
		offer("NH", 28000, "09:00"),
		offer("NH", 31000, "11:00"),
		offer("NH", 29000, "13:00"),
		offer("NH", 27000, "15:00"),
	}
	out := pipeline.Normalize(in, false)
	require.Len(t, out, 1)
	assert.Equal(t, 27000, out[0].Price)
}

func TestNormalize_Dedup(t *testing.T) {
	in := []domain.RawOffer{
		offer("NH", 20000, "08:00"),
		offer("NH", 20000, "08:00"),
		offer("ANA", 20000, "08:00"), // same flight, different alias
		offer("全日空", 20000, "08:00"),
		offer("JL", 20000, "08:00"),
		offer("ZZ", 20000, "08:00"),
		offer("zz ", 20000, "08:00"),
	}
	out := pipeline.Normalize(in, false)
	require.Len(t, out, 3)
	assert.Equal(t, "NH", out[0].CarrierID)
	assert.Equal(t, "JL", out[1].CarrierID)
	assert.Equal(t, "ZZ", out[2].CarrierID)
}

func TestNormalize_KeepsTwoPerCarrierAndOrder(t *testing.T) {
	in := []domain.RawOffer{
		offer("JL", 20000, "07:00"),
		offer("NH", 30000, "08:00"),
		offer("全日空", 28000, "09:00"),
		offer("MM", 9000, "10:00"),
		offer("NH", 27000, "11:00"),
		offer("BC", 12000, "12:00"),
		offer("BC", 11000, "13:00"),
	}
	out := pipeline.Normalize(in, false)
	assert.Equal(t, []int{20000, 9000, 27000, 12000, 11000}, prices(out))
}

func TestNormalize_TieKeepsFirst(t *testing.T) {
	in := []domain.RawOffer{
		offer("JL", 15000, "07:00"),
		offer("JL", 15000, "08:00"),
		offer("JL", 18000, "09:00"),
	}
	out := pipeline.Normalize(in, false)
	require.Len(t, out, 1)
	assert.Equal(t, "07:00", out[0].Departure)
}

func TestNormalize_ShowAllBypasses(t *testing.T) {
	in := []domain.RawOffer{
		offer("NH", 30000, "07:00"),
		offer("NH", 30000, "07:00"),
		offer("NH", 28000, "09:00"),
		offer("NH", 31000, "11:00"),
	}
	out := pipeline.Normalize(in, true)
	assert.Equal(t, in, out)
}

func TestNormalize_Idempotent(t *testing.T) {
	in := []domain.RawOffer{
		offer("JL", 20000, "07:00"),
		offer("NH", 30000, "08:00"),
		offer("NH", 30000, "08:00"),
		offer("NH", 28000, "09:00"),
		offer("NH", 27000, "11:00"),
		offer("ZZ", 5000, "12:00"),
		offer("zz", 5000, "12:00"),
		offer("BC", 11000, "13:00"),
	}
	once := pipeline.Normalize(in, false)
	assert.Equal(t, once, pipeline.Normalize(once, false))

	counts := map[string]int{}
	for _, o := range once {
		counts[o.CarrierID]++
	}
	for c, n := range counts {
		assert.LessOrEqual(t, n, pipeline.MaxPerCarrier, c)
	}
}
