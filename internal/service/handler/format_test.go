package handler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatter_Rate(t *testing.T) {
	t.Parallel()

	f := DefaultFormatter()
	tests := []struct {
		in   float64
		want string
	}{
		{5.200000000000003, "5.2"},
		{-3, "-3.0"},
		{0.05, "0.1"},
		{-0.04, "0.0"},
		{12.345, "12.3"},
		{math.NaN(), "N/A"},
		{math.Inf(1), "N/A"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Rate(tt.in), "%v", tt.in)
	}
	assert.Equal(t, "3.0", f.Abs(-3))
	assert.Equal(t, "5", Formatter{Decimals: 0}.Rate(4.5))
}

func TestFormatter_Value(t *testing.T) {
	t.Parallel()

	f := DefaultFormatter()
	assert.Equal(t, "105.2", f.Value(105.2))
	assert.Equal(t, "1,234.6", f.Value(1234.56))
	assert.Equal(t, "-5.0", f.Value(-5))
	assert.Equal(t, "N/A", f.Value(math.NaN()))
}

func TestFormatter_Direction(t *testing.T) {
	t.Parallel()

	f := DefaultFormatter()
	assert.Equal(t, DirectionUp, f.Direction(0.05))
	assert.Equal(t, DirectionDown, f.Direction(-2))
	assert.Equal(t, DirectionFlat, f.Direction(0.04))
	assert.Equal(t, DirectionFlat, f.Direction(-0.04))
}

func TestFormatter_CountAndJoin(t *testing.T) {
	t.Parallel()

	f := DefaultFormatter()
	assert.Equal(t, "1,234", f.Count(1234))
	assert.Equal(t, "서울, 부산", f.Join([]string{"서울", "부산"}))
}
