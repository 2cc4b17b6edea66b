package typesystem

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallestFor(v int64) Type {
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return Byte
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return Short
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return Int
	}
	return Long
}

func defaultFor(v int64) Type {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return Int
	}
	return Long
}

func TestFixnumLiteralBoundaries(t *testing.T) {
	tests := []struct {
		value    int64
		def      Type
		narrowed Type
	}{
		{0, Int, Byte},
		{127, Int, Byte},
		{128, Int, Short},
		{-128, Int, Byte},
		{-129, Int, Short},
		{32767, Int, Short},
		{32768, Int, Int},
		{math.MaxInt32, Int, Int},
		{math.MinInt32, Int, Int},
		{math.MaxInt32 + 1, Long, Long},
		{math.MinInt64, Long, Long},
		{math.MaxInt64, Long, Long},
	}
	for _, tt := range tests {
		cell := NewFixnumLiteral(tt.value)
		assert.True(t, Equal(cell, tt.def), "default of %d", tt.value)
		assert.Equal(t, tt.def.Key(), cell.Key())

		changed := cell.Narrow()
		assert.Equal(t, !Equal(tt.def, tt.narrowed), changed, "first Narrow of %d", tt.value)
		assert.True(t, Equal(cell, tt.narrowed), "narrowed type of %d", tt.value)
	}
}

func TestFixnumNarrowingProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	values := []int64{1, -1, 200, -40000, 1 << 40}
	for i := 0; i < 500; i++ {
		shift := uint(rng.Intn(63))
		v := rng.Int63() >> shift
		if rng.Intn(2) == 0 {
			v = -v
		}
		values = append(values, v)
	}

	for _, v := range values {
		cell := NewFixnumLiteral(v)
		byKey := map[string]bool{defaultFor(v).Key(): true}
		require.True(t, byKey[cell.Key()], "cell for %d must hash like its default before narrowing", v)

		cell.Narrow()
		assert.Equal(t, smallestFor(v).Key(), cell.Key(), "value %d", v)
		for i := 0; i < 3; i++ {
			assert.False(t, cell.Narrow(), "Narrow must be idempotent for %d", v)
			assert.Equal(t, smallestFor(v).Key(), cell.Key())
		}
	}
}

func TestNarrowingIsShared(t *testing.T) {
	cell := NewFixnumLiteral(5)
	var holderA, holderB Type = cell, cell
	assert.Equal(t, "int", holderA.Name())

	require.True(t, cell.Narrow())
	assert.Equal(t, "byte", holderA.Name())
	assert.Equal(t, "byte", holderB.Name())
	p, ok := AsPrimitive(holderA)
	require.True(t, ok)
	assert.Same(t, Byte, p)
}

func TestFloatLiteralNeverNarrows(t *testing.T) {
	for _, v := range []float64{0, 1.5, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(1)} {
		cell := NewFloatLiteral(v)
		assert.True(t, Equal(cell, Double))
		assert.False(t, cell.Narrow())
		assert.True(t, Equal(cell, Double))
		assert.Equal(t, Type(Double), cell.Candidate())
	}
}
