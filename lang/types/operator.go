package types

import (
	"fmt"

	"github.com/reso-lang/reso-sub001/lang/token"
)

// DefaultInt and DefaultFloat are the fallback types for a literal used in a
// context that only requires "numeric", per spec: an integer literal
// defaults to i32, a float literal defaults to f64.
var (
	DefaultInt   = TI32
	DefaultFloat = TF64
)

// Instruction returns the LLVM mnemonic for applying op to two operands of
// type t (both operands must already share t; promotion happens before this
// is called). ok is false for a combination the type system forbids (e.g.
// DIV/REM on a float type, or a logical op on a non-bool), in which case the
// caller reports the type error.
func Instruction(op token.Op, t Type) (mnemonic string, ok bool) {
	switch {
	case op == token.ADD:
		if t.IsFloat() {
			return "fadd", true
		}
		return "add", true
	case op == token.SUB:
		if t.IsFloat() {
			return "fsub", true
		}
		return "sub", true
	case op == token.MUL:
		if t.IsFloat() {
			return "fmul", true
		}
		return "mul", true
	case op == token.QUO:
		if !t.IsFloat() {
			return "", false
		}
		return "fdiv", true
	case op == token.DIV:
		if t.IsFloat() {
			return "", false
		}
		if effectiveSigned(t) {
			return "sdiv", true
		}
		return "udiv", true
	case op == token.REM:
		if t.IsFloat() {
			return "", false
		}
		if effectiveSigned(t) {
			return "srem", true
		}
		return "urem", true
	}
	return "", false
}

// ComparisonInstruction returns the icmp/fcmp mnemonic and predicate for a
// comparison between two operands of type t.
func ComparisonInstruction(op token.Op, t Type) (mnemonic, predicate string, ok bool) {
	if !op.IsComparison() {
		return "", "", false
	}
	if t.IsFloat() {
		return "fcmp", floatPredicate(op), true
	}
	if t.IsInteger() || t.IsChar() || t.Kind == Bool {
		return "icmp", intPredicate(op, effectiveSigned(t)), true
	}
	return "", "", false
}

func floatPredicate(op token.Op) string {
	switch op {
	case token.LT:
		return "olt"
	case token.LE:
		return "ole"
	case token.GT:
		return "ogt"
	case token.GE:
		return "oge"
	case token.EQL:
		return "oeq"
	case token.NEQ:
		return "one"
	}
	panic(fmt.Sprintf("types: unexpected comparison op %v", op))
}

func intPredicate(op token.Op, signed bool) string {
	switch op {
	case token.EQL:
		return "eq"
	case token.NEQ:
		return "ne"
	case token.LT:
		if signed {
			return "slt"
		}
		return "ult"
	case token.LE:
		if signed {
			return "sle"
		}
		return "ule"
	case token.GT:
		if signed {
			return "sgt"
		}
		return "ugt"
	case token.GE:
		if signed {
			return "sge"
		}
		return "uge"
	}
	panic(fmt.Sprintf("types: unexpected comparison op %v", op))
}
