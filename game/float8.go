package game

import "math"

// Immediate values live in an 8-bit encoding similar to IEEE 754: one sign
// bit, a 4-bit exponent biased by 10, and a 3-bit scaled mantissa. The
// representable magnitudes span [0.001, 10].

const (
	exponentBias = 10
	minImmediate = 0.001
	maxImmediate = 10.0
)

// DecodeFloat8 reverses EncodeFloat8.
func DecodeFloat8(encoded int) float64 {
	// Very special cases
	if encoded == 0 {
		return 0.0
	}
	if encoded == 1 {
		return 0.001
	}

	signBit := encoded >> 7
	biasedExponent := (encoded >> 3) & 0b1111
	exponent := biasedExponent - exponentBias

	scaledMantissa := encoded & 0b111
	mantissa := float64(scaledMantissa)/8.0 + 1

	number := mantissa * math.Pow(2, float64(exponent))
	if signBit != 0 {
		number = -number
	}
	return number
}

// EncodeFloat8 packs number into 8 bits. Out-of-range magnitudes are
// clamped rather than rejected.
func EncodeFloat8(number float64) int {
	if number == 0 {
		return 0
	}
	if number == minImmediate {
		return 1
	}

	signBit := 0
	if number < 0 {
		signBit = 1
	}
	abs := math.Abs(number)
	abs = math.Max(minImmediate, math.Min(maxImmediate, abs))

	// The encoding degrades badly on these intervals (~50% error), so
	// nudge the value off them first.
	if (0.48 < abs && abs < 0.52) || (1.93 < abs && abs < 2.23) || (7.75 < abs && abs < 8) {
		candidate1 := abs * 0.95
		candidate2 := abs * 1.04
		if math.Abs(candidate1-abs) < math.Abs(candidate2-abs) {
			abs = candidate1
		} else {
			abs = candidate2
		}
	}

	exponent := int(math.Floor(math.Log2(abs)))
	biasedExponent := exponent + exponentBias
	if biasedExponent > 0b1111 {
		biasedExponent = 0b1111
	}

	mantissa := abs/math.Pow(2, float64(exponent)) - 1
	scaledMantissa := int(math.Round(mantissa * 8))
	if scaledMantissa > 0b111 {
		scaledMantissa = 0b111
	}

	return signBit<<7 | biasedExponent<<3 | scaledMantissa
}

// RoundtripFloat8 returns the value number decodes back to after encoding,
// i.e. the nearest representable immediate.
func RoundtripFloat8(number float64) float64 {
	return DecodeFloat8(EncodeFloat8(number))
}
