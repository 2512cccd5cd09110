package synth

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgrover/circuit"
	"qgrover/sim"
)

func TestToBits(t *testing.T) {
	tests := []struct {
		value, width int
		want         []int
		err          error
	}{
		{5, AutoWidth, []int{1, 0, 1}, nil},
		{5, 4, []int{0, 1, 0, 1}, nil},
		{5, 3, []int{1, 0, 1}, nil}, // exact fit
		{5, 0, []int{1, 0, 1}, nil},
		{5, 2, nil, ErrWidthTooSmall},
		{0, AutoWidth, []int{0}, nil},
		{0, 3, []int{0, 0, 0}, nil},
		{8, 4, []int{1, 0, 0, 0}, nil},
		{255, 8, []int{1, 1, 1, 1, 1, 1, 1, 1}, nil},
		{256, 8, nil, ErrWidthTooSmall},
		{-1, AutoWidth, nil, ErrInvalidValue},
		{-3, 4, nil, ErrInvalidValue},
		{5, MaxControls + 1, nil, ErrWidthTooLarge},
		{5, math.MaxInt, nil, ErrWidthTooLarge},
	}

	for _, tt := range tests {
		got, err := ToBits(tt.value, tt.width)
		if tt.err != nil {
			assert.True(t, errors.Is(err, tt.err), "ToBits(%d, %d): %v", tt.value, tt.width, err)
			assert.Nil(t, got)
			continue
		}
		require.NoError(t, err, "ToBits(%d, %d)", tt.value, tt.width)
		assert.Equal(t, tt.want, got, "ToBits(%d, %d)", tt.value, tt.width)
	}
}

func TestFormatBits(t *testing.T) {
	assert.Equal(t, "0101", FormatBits([]int{0, 1, 0, 1}))
	assert.Equal(t, "", FormatBits(nil))
}

func TestFlipMask(t *testing.T) {
	bits := []int{0, 1, 0, 1}

	mask, err := FlipMask(4, bits, false)
	require.NoError(t, err)
	assert.Equal(t, []circuit.Gate{circuit.X(0), circuit.X(2)}, mask.Gates())

	inverted, err := FlipMask(4, bits, true)
	require.NoError(t, err)
	assert.Equal(t, []circuit.Gate{circuit.X(1), circuit.X(3)}, inverted.Gates())

	// a mask may address the leading qubits of a larger register
	wide, err := FlipMask(8, bits, false)
	require.NoError(t, err)
	assert.Equal(t, 8, wide.NumQubits())
	assert.Equal(t, 2, wide.Len())
}

func TestFlipMaskTwiceIsIdentity(t *testing.T) {
	const n = 4
	for value := 0; value < 1<<n; value++ {
		bits, err := ToBits(value, n)
		require.NoError(t, err)
		mask, err := FlipMask(n, bits, false)
		require.NoError(t, err)
		twice, err := mask.Compose(mask, nil, circuit.After)
		require.NoError(t, err)

		for in := uint64(0); in < 1<<n; in++ {
			out, err := sim.EvalBasis(twice, in)
			require.NoError(t, err)
			assert.Equal(t, in, out, "mask %s on %04b", FormatBits(bits), in)
		}
	}
}

func TestFlipMaskMapsTargetToAllOnes(t *testing.T) {
	// Control i holds bits[i]; the mask must turn exactly that pattern into 1111.
	bits := []int{1, 0, 0, 1}
	mask, err := FlipMask(4, bits, false)
	require.NoError(t, err)

	in := uint64(0)
	for i, b := range bits {
		in |= uint64(b) << i
	}
	out, err := sim.EvalBasis(mask, in)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b1111), out)
}

func TestFlipMaskErrors(t *testing.T) {
	_, err := FlipMask(3, []int{0, 2, 1}, false)
	assert.True(t, errors.Is(err, ErrInvalidValue), "%v", err)

	_, err = FlipMask(2, []int{0, 0, 0}, false)
	assert.True(t, errors.Is(err, circuit.ErrIndexOutOfRange), "%v", err)

	_, err = FlipMask(0, nil, false)
	assert.True(t, errors.Is(err, circuit.ErrInvalidSize), "%v", err)
}
