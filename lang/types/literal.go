package types

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// truncated masks v down to the low width bits and sign-extends the result
// back to a 64-bit value, i.e. it computes the value an LLVM integer
// constant of that width would hold if v were stored into it and read back
// as a signed quantity. It is generic over the literal's Go representation
// (int64 for signed source literals, uint64 for literals big enough to need
// unsigned parsing) so both paths share one masking rule.
func truncated[T constraints.Integer](v T, width int) int64 {
	u := uint64(v)
	if width < 64 {
		u &= (uint64(1) << width) - 1
	}
	signBit := uint64(1) << (width - 1)
	if u&signBit != 0 {
		return int64(u) - int64(uint64(1)<<width)
	}
	return int64(u)
}

// RenderInt returns the canonical decimal text LLVM uses for an integer
// constant stored into a slot of type t: the literal is masked to t's bit
// width and the result is displayed as a signed quantity, so e.g. storing
// 200 into a u8 slot renders as "-56" and 3_000_000_000 into a u32 slot
// renders as "-1294967296".
func RenderInt(v int64, t Type) string {
	width := t.Width()
	return fmt.Sprintf("%d", truncated(v, width))
}

// RenderUint is the RenderInt entry point for literals large enough that
// they were parsed as unsigned (e.g. usize literals beyond math.MaxInt64).
func RenderUint(v uint64, t Type) string {
	width := t.Width()
	return fmt.Sprintf("%d", truncated(v, width))
}

// RenderFloat renders a float literal's bit pattern. crossesType must be
// true when the value was promoted into a binary-op or ternary operand type
// different from its own literal default; an explicit cast does not set it,
// since the literal is rendered before the fpext/fptrunc is applied. When
// crossesType is false, the value renders in
// LLVM's canonical hex-double form; a float32-typed value is first rounded
// to float32 precision before being widened back to float64, which is why
// such constants commonly end in zero bits.
func RenderFloat(v float64, t Type, crossesType bool) string {
	if crossesType {
		return fmt.Sprintf("%e", v)
	}
	if t.Kind == F32 {
		v = float64(float32(v))
	}
	bits := math.Float64bits(v)
	return fmt.Sprintf("0x%016X", bits)
}
