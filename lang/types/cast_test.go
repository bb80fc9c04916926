package types_test

import (
	"testing"

	"github.com/reso-lang/reso-sub001/lang/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCastIntegerMatrix covers the widen/narrow/no-op rows of the §4.2 "as"
// matrix for plain signed/unsigned integers.
func TestCastIntegerMatrix(t *testing.T) {
	cases := []struct {
		name     string
		from, to types.Type
		want     types.CastKind
	}{
		{"signed widen sext", types.TI8, types.TI32, types.CastSExt},
		{"unsigned widen zext", types.TU8, types.TU32, types.CastZExt},
		{"signed narrow trunc", types.TI32, types.TI8, types.CastTrunc},
		{"unsigned narrow trunc", types.TU32, types.TU8, types.CastTrunc},
		{"same width resign is no-op", types.TI32, types.TU32, types.CastNoOp},
		{"identical type is no-op", types.TI16, types.TI16, types.CastNoOp},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := types.Cast(tc.from, tc.to)
			require.True(t, ok)
			assert.Equal(t, tc.want, kind)
		})
	}
}

// TestCastIntFloatMatrix covers the int<->float conversion rows, including
// char treated as unsigned i32.
func TestCastIntFloatMatrix(t *testing.T) {
	cases := []struct {
		name     string
		from, to types.Type
		want     types.CastKind
	}{
		{"signed int to float", types.TI32, types.TF64, types.CastSIToFP},
		{"unsigned int to float", types.TU32, types.TF64, types.CastUIToFP},
		{"float to signed int", types.TF64, types.TI32, types.CastFPToSI},
		{"float to unsigned int", types.TF64, types.TU32, types.CastFPToUI},
		{"char to float is unsigned", types.TChar, types.TF64, types.CastUIToFP},
		{"float to char is unsigned", types.TF64, types.TChar, types.CastFPToUI},
		{"char widens as unsigned", types.TChar, types.TU64, types.CastZExt},
		{"narrowing to char truncs", types.TI64, types.TChar, types.CastTrunc},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := types.Cast(tc.from, tc.to)
			require.True(t, ok)
			assert.Equal(t, tc.want, kind)
		})
	}
}

// TestCastFloatWidthMatrix covers float<->float widening/narrowing.
func TestCastFloatWidthMatrix(t *testing.T) {
	kind, ok := types.Cast(types.TF32, types.TF64)
	require.True(t, ok)
	assert.Equal(t, types.CastFPExt, kind)

	kind, ok = types.Cast(types.TF64, types.TF32)
	require.True(t, ok)
	assert.Equal(t, types.CastFPTrunc, kind)
}

// TestCastIllegalCombinations covers every combination the matrix forbids
// outright: bool, String and unit never convert to or from anything else,
// including each other.
func TestCastIllegalCombinations(t *testing.T) {
	illegal := []struct {
		name     string
		from, to types.Type
	}{
		{"bool to int", types.TBool, types.TI32},
		{"int to bool", types.TI32, types.TBool},
		{"String to int", types.TStr, types.TI32},
		{"int to String", types.TI32, types.TStr},
		{"unit to int", types.TUnit, types.TI32},
		{"int to unit", types.TI32, types.TUnit},
		{"bool to String", types.TBool, types.TStr},
		{"bool to unit", types.TBool, types.TUnit},
	}
	for _, tc := range illegal {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := types.Cast(tc.from, tc.to)
			assert.False(t, ok)
		})
	}
}

// TestCastPointerSized checks isize/usize behave as a signed/unsigned
// integer of the target's pointer width.
func TestCastPointerSized(t *testing.T) {
	isize32 := types.NewPtrSized(true, 32)
	usize32 := types.NewPtrSized(false, 32)

	kind, ok := types.Cast(isize32, types.TI64)
	require.True(t, ok)
	assert.Equal(t, types.CastSExt, kind)

	kind, ok = types.Cast(usize32, types.TI64)
	require.True(t, ok)
	assert.Equal(t, types.CastZExt, kind)
}

func TestConvertErrorMessage(t *testing.T) {
	msg := types.ConvertError(types.TBool, types.TI32)
	assert.Equal(t, "Cannot convert from bool to i32", msg)
}
