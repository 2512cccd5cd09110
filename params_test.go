package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []int
	}{
		{"5,4", []int{5, 4}},
		{" 3 ", []int{3}},
		{"0b101 4", []int{5, 4}},
		{"0B11,2", []int{3, 2}},
		{"-1", []int{-1}},
		{"", []int{}},
		{",,", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseArgs(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	for _, input := range []string{"x", "5,y", "0b102", "1.5", "0x10"} {
		_, err := parseArgs(input)
		assert.Error(t, err, input)
	}
}

func TestFormatArgs(t *testing.T) {
	assert.Equal(t, "5,4", formatArgs([]int{5, 4}))
	assert.Equal(t, "", formatArgs(nil))

	args, err := parseArgs(formatArgs([]int{7, 3}))
	require.NoError(t, err)
	assert.Equal(t, []int{7, 3}, args)
}

func TestParseBitString(t *testing.T) {
	bits, err := parseBitString("0101")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0, 1}, bits)

	bits, err = parseBitString("")
	require.NoError(t, err)
	assert.Empty(t, bits)

	_, err = parseBitString("012")
	assert.ErrorContains(t, err, "position 2")
}
