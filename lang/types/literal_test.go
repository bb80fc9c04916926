package types_test

import (
	"testing"

	"github.com/reso-lang/reso-sub001/lang/types"
	"github.com/stretchr/testify/assert"
)

// TestRenderIntTruncation covers spec.md §4.6's own worked examples: an
// integer literal stored into a narrower unsigned slot renders as the
// signed reinterpretation of its low bits.
func TestRenderIntTruncation(t *testing.T) {
	assert.Equal(t, "-56", types.RenderInt(200, types.TU8))
	assert.Equal(t, "-1294967296", types.RenderInt(3_000_000_000, types.TU32))
	assert.Equal(t, "42", types.RenderInt(42, types.TI32))
	assert.Equal(t, "-1", types.RenderInt(255, types.TI8))
}

// TestRenderFloatDirectTyping covers the canonical-hex path: a literal
// typed directly into its own declaration/argument/return context renders
// in hex regardless of whether that context is f32 or f64 — crossesType is
// false in both cases, only promotion across an operand's differing type
// should ever select the scientific form.
func TestRenderFloatDirectTyping(t *testing.T) {
	got := types.RenderFloat(3.14, types.TF64, false)
	assert.Equal(t, "0x40091EB851EB851F", got)

	gotF32 := types.RenderFloat(3.14, types.TF32, false)
	// A float32-typed literal is rounded to float32 precision and then
	// widened back to float64 before being hex-rendered, which is why it
	// differs from the full f64 precision bit pattern above and ends in
	// zero bits.
	assert.Equal(t, "0x40091EB860000000", gotF32)
	assert.NotEqual(t, got, gotF32)
}

// TestRenderFloatCrossing covers the %e path: a literal forced across a
// type family boundary by promotion (crossesType=true) renders with Go's
// %e verb instead of hex.
func TestRenderFloatCrossing(t *testing.T) {
	got := types.RenderFloat(-1000.9, types.TF64, true)
	assert.Equal(t, "-1.000900e+03", got)
}
