// Package types implements Reso's closed set of primitive types: the surface
// names, their LLVM IR representation, signedness, and the literal-typing
// and explicit-conversion rules that decide which LLVM instruction realises
// an "as" cast or a binary operator.
package types

import "fmt"

// Kind enumerates the primitive types of Reso, plus the unit type. Pointer-
// sized types (isize/usize) carry their target width as a separate
// attribute rather than as distinct Kind values, per the "type descriptor as
// a small enum with a width attribute" design note.
type Kind uint8

const (
	Invalid Kind = iota
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	ISize
	USize
	F32
	F64
	Bool
	Char
	String
	Unit
)

// Type is a fully resolved static type: a Kind plus the pointer width that
// gives isize/usize a concrete bit size. PtrWidth is ignored for every other
// Kind.
type Type struct {
	Kind     Kind
	PtrWidth int // 32 or 64, meaningful only for ISize/USize
}

// Common, width-independent types. Pointer-sized types must be built with
// NewPtrSized since their width depends on the target.
var (
	TI8    = Type{Kind: I8}
	TI16   = Type{Kind: I16}
	TI32   = Type{Kind: I32}
	TI64   = Type{Kind: I64}
	TU8    = Type{Kind: U8}
	TU16   = Type{Kind: U16}
	TU32   = Type{Kind: U32}
	TU64   = Type{Kind: U64}
	TF32   = Type{Kind: F32}
	TF64   = Type{Kind: F64}
	TBool  = Type{Kind: Bool}
	TChar  = Type{Kind: Char}
	TUnit  = Type{Kind: Unit}
	TStr   = Type{Kind: String}
	TInval = Type{Kind: Invalid}
)

// NewPtrSized builds the isize/usize Type for the given target pointer
// width (32 or 64).
func NewPtrSized(signed bool, width int) Type {
	k := USize
	if signed {
		k = ISize
	}
	return Type{Kind: k, PtrWidth: width}
}

// DefaultPtrWidth is the conventional 64-bit target pointer width. Lookup
// and NewPtrSized always take the width explicitly and never fall back to it.
const DefaultPtrWidth = 64

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "<invalid kind>"
	}
	return kindNames[k]
}

var kindNames = [...]string{
	Invalid: "<invalid>",
	I8:      "i8", I16: "i16", I32: "i32", I64: "i64",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	ISize: "isize", USize: "usize",
	F32: "f32", F64: "f64",
	Bool: "bool", Char: "char", String: "String", Unit: "()",
}

func (t Type) String() string {
	if t.Kind == ISize || t.Kind == USize {
		return t.Kind.String()
	}
	return t.Kind.String()
}

func (t Type) IsInteger() bool {
	switch t.Kind {
	case I8, I16, I32, I64, U8, U16, U32, U64, ISize, USize:
		return true
	}
	return false
}

func (t Type) IsFloat() bool { return t.Kind == F32 || t.Kind == F64 }

func (t Type) IsSigned() bool {
	switch t.Kind {
	case I8, I16, I32, I64, ISize:
		return true
	}
	return false
}

// IsChar reports whether t is Reso's char type, which the type system
// treats as an unsigned i32 for every arithmetic/cast rule except its own
// default literal type.
func (t Type) IsChar() bool { return t.Kind == Char }

// Width returns the integer bit-width of t (8/16/32/64), resolving
// isize/usize against t.PtrWidth. It panics if t is not an integer or char
// type; callers must check IsInteger()/IsChar() first.
func (t Type) Width() int {
	switch t.Kind {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32, Char:
		return 32
	case I64, U64:
		return 64
	case ISize, USize:
		if t.PtrWidth == 32 {
			return 32
		}
		return 64
	}
	panic(fmt.Sprintf("types: Width called on non-integer type %v", t))
}

// IRType returns the LLVM IR type spelling for t.
func (t Type) IRType() string {
	switch t.Kind {
	case I8, U8:
		return "i8"
	case I16, U16:
		return "i16"
	case I32, U32, Char:
		return "i32"
	case I64, U64:
		return "i64"
	case ISize, USize:
		if t.PtrWidth == 32 {
			return "i32"
		}
		return "i64"
	case F32:
		return "float"
	case F64:
		return "double"
	case Bool:
		return "i1"
	case Unit:
		return "%unit"
	case String:
		return "%String" // opaque; only referenced in error paths
	}
	return "<invalid>"
}

// Equal reports whether t and u denote the same type, including pointer
// width for isize/usize.
func (t Type) Equal(u Type) bool {
	if t.Kind != u.Kind {
		return false
	}
	if t.Kind == ISize || t.Kind == USize {
		return t.PtrWidth == u.PtrWidth
	}
	return true
}

// SameWidthDifferentSign reports whether t and u are both integers (or
// char) of identical bit width but opposite signedness, the case the "as"
// matrix realises with no instruction at all.
func (t Type) SameWidthDifferentSign(u Type) bool {
	if !(t.IsInteger() || t.IsChar()) || !(u.IsInteger() || u.IsChar()) {
		return false
	}
	return t.Width() == u.Width() && t.IsSigned() != u.IsSigned()
}

// Lookup resolves a surface type name (as it appears in a type annotation)
// to its Type, for the given target pointer width. It is the only place
// that needs to know the surface spelling of a type.
func Lookup(name string, ptrWidth int) (Type, bool) {
	switch name {
	case "i8":
		return TI8, true
	case "i16":
		return TI16, true
	case "i32":
		return TI32, true
	case "i64":
		return TI64, true
	case "u8":
		return TU8, true
	case "u16":
		return TU16, true
	case "u32":
		return TU32, true
	case "u64":
		return TU64, true
	case "isize":
		return NewPtrSized(true, ptrWidth), true
	case "usize":
		return NewPtrSized(false, ptrWidth), true
	case "f32":
		return TF32, true
	case "f64":
		return TF64, true
	case "bool":
		return TBool, true
	case "char":
		return TChar, true
	case "String":
		return TStr, true
	case "()":
		return TUnit, true
	default:
		return TInval, false
	}
}
