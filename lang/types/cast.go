package types

import "fmt"

// CastKind identifies the LLVM instruction (if any) an explicit "as"
// conversion lowers to. NoOp covers same-width signed/unsigned
// reinterpretation: the SSA value is reused unchanged, only its static type
// changes for subsequent emission decisions.
type CastKind uint8

const (
	CastIllegal CastKind = iota
	CastNoOp
	CastSExt
	CastZExt
	CastTrunc
	CastSIToFP
	CastUIToFP
	CastFPToSI
	CastFPToUI
	CastFPExt
	CastFPTrunc
)

func (k CastKind) String() string {
	switch k {
	case CastNoOp:
		return ""
	case CastSExt:
		return "sext"
	case CastZExt:
		return "zext"
	case CastTrunc:
		return "trunc"
	case CastSIToFP:
		return "sitofp"
	case CastUIToFP:
		return "uitofp"
	case CastFPToSI:
		return "fptosi"
	case CastFPToUI:
		return "fptoui"
	case CastFPExt:
		return "fpext"
	case CastFPTrunc:
		return "fptrunc"
	default:
		return "<illegal>"
	}
}

// Cast determines the instruction needed to convert a value from "from" to
// "to" under an explicit "as" expression, per the conversion matrix. ok is
// false when the conversion is illegal, in which case the caller should
// report ConvertError(from, to).
func Cast(from, to Type) (kind CastKind, ok bool) {
	if from.Kind == Invalid || to.Kind == Invalid {
		return CastIllegal, false
	}
	if from.Equal(to) {
		return CastNoOp, true
	}

	// bool, String and () never convert to/from anything else.
	if from.Kind == Bool || to.Kind == Bool || from.Kind == String || to.Kind == String ||
		from.Kind == Unit || to.Kind == Unit {
		return CastIllegal, false
	}

	fromNum := from.IsInteger() || from.IsChar()
	toNum := to.IsInteger() || to.IsChar()
	fromFloat := from.IsFloat()
	toFloat := to.IsFloat()

	switch {
	case fromNum && toNum:
		// char behaves as unsigned i32 for this rule.
		if from.SameWidthDifferentSign(to) {
			return CastNoOp, true
		}
		fw, tw := from.Width(), to.Width()
		switch {
		case tw > fw:
			if effectiveSigned(from) {
				return CastSExt, true
			}
			return CastZExt, true
		case tw < fw:
			return CastTrunc, true
		default:
			// equal width, same signedness, yet not Equal: only char<->u32
			// reaches here, a reinterpretation that needs no instruction.
			return CastNoOp, true
		}

	case fromNum && toFloat:
		if effectiveSigned(from) {
			return CastSIToFP, true
		}
		return CastUIToFP, true

	case fromFloat && toNum:
		if effectiveSigned(to) {
			return CastFPToSI, true
		}
		return CastFPToUI, true

	case fromFloat && toFloat:
		fw, tw := floatWidth(from), floatWidth(to)
		if tw > fw {
			return CastFPExt, true
		}
		return CastFPTrunc, true
	}

	return CastIllegal, false
}

// effectiveSigned treats char as unsigned, matching the spec's "treat char
// as unsigned i32" rule for every integer conversion.
func effectiveSigned(t Type) bool {
	if t.Kind == Char {
		return false
	}
	return t.IsSigned()
}

func floatWidth(t Type) int {
	if t.Kind == F32 {
		return 32
	}
	return 64
}

// ConvertError formats the standard "Cannot convert from X to Y" diagnostic
// fragment asserted verbatim by tests.
func ConvertError(from, to Type) string {
	return fmt.Sprintf("Cannot convert from %s to %s", from, to)
}
