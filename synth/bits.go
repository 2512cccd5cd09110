package synth

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// AutoWidth asks ToBits for the minimal representation.
const AutoWidth = -1

// ToBits returns value as big-endian bits. A width below 1 selects the
// minimal length; otherwise the result is left-padded with zeros to exactly
// width bits. Values that do not fit are never truncated, and widths above
// MaxControls are rejected with ErrWidthTooLarge.
func ToBits(value, width int) ([]int, error) {
	if value < 0 {
		return nil, errors.Wrapf(ErrInvalidValue, "cannot encode %d", value)
	}

	if width > MaxControls {
		return nil, errors.Wrapf(ErrWidthTooLarge, "%d bits (max %d)", width, MaxControls)
	}

	digits := strconv.FormatInt(int64(value), 2)
	if width >= 1 {
		if width < len(digits) {
			return nil, errors.Wrapf(ErrWidthTooSmall, "%d bits cannot represent %d (needs %d)", width, value, len(digits))
		}
		digits = strings.Repeat("0", width-len(digits)) + digits
	}

	bits := make([]int, len(digits))
	for i, d := range digits {
		if d == '1' {
			bits[i] = 1
		}
	}
	return bits, nil
}

// FormatBits renders bits most-significant first, e.g. "0101".
func FormatBits(bits []int) string {
	var sb strings.Builder
	for _, b := range bits {
		sb.WriteString(strconv.Itoa(b))
	}
	return sb.String()
}

func checkBits(bits []int) error {
	for i, b := range bits {
		if b != 0 && b != 1 {
			return errors.Wrapf(ErrInvalidValue, "bit %d is %d", i, b)
		}
	}
	return nil
}
