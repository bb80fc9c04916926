package codegen

import (
	"fmt"
	gotoken "go/token"

	"github.com/reso-lang/reso-sub001/lang/ast"
	"github.com/reso-lang/reso-sub001/lang/token"
	"github.com/reso-lang/reso-sub001/lang/types"
)

// literal holds the raw value of a bare int/float literal that has not yet
// committed to a concrete type, so a caller holding context (a declared
// type, the other operand of a binary op, a parameter type) can coerce it
// without re-lowering the expression. Bool and char literals are never
// "pending": per the type system, their type is fixed at the syntax.
type literal struct {
	isFloat bool
	i       int64
	f       float64
}

// value is the result of lowering an expression: an IR operand (a register
// name or a rendered constant) together with its static type. Pending is
// non-nil when val came from a bare numeric literal under the
// default-typing rule and may still be recoerced into a different type of
// the same numeric family.
type value struct {
	ir      string
	typ     types.Type
	pending *literal
}

// coerce renders v under target, applying literal promotion (§4.2) or
// rejecting the combination as a type error. promoted distinguishes the two
// contexts coerce is called from: false when target is the expression's own
// declared/parameter/return context (a literal typed directly, with no
// competing operand), true when target was derived from commonOperandType/
// ternaryCommonType, i.e. the literal is being forced to match some other
// operand's type in a binary op or ternary. Only the latter can make a
// float literal "cross" out of its own family default (f64): a literal
// typed directly into f32 is not crossing anything, it is simply being
// rendered at the precision its own declaration asked for.
func (c *funcCtx) coerce(v value, target types.Type, pos token.Pos, promoted bool) (value, bool) {
	if v.typ.Equal(target) {
		return v, true
	}

	if v.pending != nil {
		if target.IsInteger() || target.IsChar() {
			if v.pending.isFloat {
				c.errorf(pos, "Cannot determine result type")
				return value{}, false
			}
			return value{ir: types.RenderInt(v.pending.i, target), typ: target, pending: v.pending}, true
		}
		if target.IsFloat() {
			if !v.pending.isFloat {
				c.errorf(pos, "Cannot determine result type")
				return value{}, false
			}
			crosses := promoted && target.Kind != types.DefaultFloat.Kind
			return value{ir: types.RenderFloat(v.pending.f, target, crosses), typ: target, pending: v.pending}, true
		}
		c.errorf(pos, "Cannot determine result type")
		return value{}, false
	}

	c.errorf(pos, "incompatible types: type mismatch between %s and %s", v.typ, target)
	return value{}, false
}

// lowerExprAs lowers e and coerces the result to target, reporting the
// standard type-mismatch diagnostic when e's static type cannot be
// reconciled with target (either because it is a fixed, already-typed
// value of a different type, or because it is a literal of the wrong
// numeric family). Every context that requires a specific type — a
// variable's declared type, an assignment's target, a call argument, a
// return value — goes through this instead of lowerExpr directly.
func (c *funcCtx) lowerExprAs(e ast.Expr, target types.Type, pos token.Pos) (value, bool) {
	v, ok := c.lowerExpr(e, &target)
	if !ok {
		return value{}, false
	}
	return c.coerce(v, target, pos, false)
}

// defaultType resolves a pending literal to its family default (i32/f64)
// when no context type is available.
func (c *funcCtx) defaultType(v value) value {
	if v.pending == nil {
		return v
	}
	if v.pending.isFloat {
		return value{ir: types.RenderFloat(v.pending.f, types.DefaultFloat, false), typ: types.DefaultFloat, pending: v.pending}
	}
	return value{ir: types.RenderInt(v.pending.i, types.DefaultInt), typ: types.DefaultInt, pending: v.pending}
}

// lowerExpr lowers e under an optional context type hint (nil if none). It
// returns ok=false once a diagnostic has already been recorded; callers
// should not emit further instructions built on a !ok value.
func (c *funcCtx) lowerExpr(e ast.Expr, hint *types.Type) (value, bool) {
	switch n := e.(type) {
	case *ast.IntLit:
		v := value{pending: &literal{i: n.Value}}
		if hint != nil {
			return c.coerce(v, *hint, n.Start, false)
		}
		return c.defaultType(v), true

	case *ast.FloatLit:
		v := value{pending: &literal{isFloat: true, f: n.Value}}
		if hint != nil {
			return c.coerce(v, *hint, n.Start, false)
		}
		return c.defaultType(v), true

	case *ast.BoolLit:
		lit := "false"
		if n.Value {
			lit = "true"
		}
		return value{ir: lit, typ: types.TBool}, true

	case *ast.CharLit:
		return value{ir: fmt.Sprintf("%d", n.Value), typ: types.TChar}, true

	case *ast.StringLit:
		return value{ir: c.mod.internString(n.Value), typ: types.TStr}, true

	case *ast.VarRef:
		bdg, ok := c.rf.Use(n.Name, n.Start)
		if !ok {
			return value{}, false
		}
		dst := "%" + bdg.Slot + "_load"
		c.fn.emit(fmt.Sprintf("%s = load %s, ptr %%%s", dst, bdg.Type.IRType(), bdg.Slot))
		return value{ir: dst, typ: bdg.Type}, true

	case *ast.UnaryOp:
		return c.lowerUnaryOp(n, hint)

	case *ast.BinOp:
		return c.lowerBinOp(n, hint)

	case *ast.Cast:
		return c.lowerCast(n)

	case *ast.Call:
		return c.lowerCall(n)

	case *ast.Ternary:
		return c.lowerTernary(n, hint)

	default:
		panic(fmt.Sprintf("codegen: unexpected expr %T", e))
	}
}

func (c *funcCtx) lowerUnaryOp(n *ast.UnaryOp, hint *types.Type) (value, bool) {
	if n.Op == token.NOT {
		bt := types.TBool
		v, ok := c.lowerExpr(n.Operand, &bt)
		if !ok {
			return value{}, false
		}
		if !v.typ.Equal(types.TBool) {
			c.errorf(n.Start, "must be a boolean")
			return value{}, false
		}
		dst := c.fn.freshTemp()
		c.fn.emit(fmt.Sprintf("%s = xor i1 %s, true", dst, v.ir))
		return value{ir: dst, typ: types.TBool}, true
	}

	// unary minus: numeric operand only.
	v, ok := c.lowerExpr(n.Operand, hint)
	if !ok {
		return value{}, false
	}
	v = c.defaultType(v)
	if !v.typ.IsInteger() && !v.typ.IsFloat() && !v.typ.IsChar() {
		c.errorf(n.Start, "incompatible types: type mismatch")
		return value{}, false
	}
	dst := c.fn.freshTemp()
	if v.typ.IsFloat() {
		c.fn.emit(fmt.Sprintf("%s = fsub %s 0.0, %s", dst, v.typ.IRType(), v.ir))
	} else {
		c.fn.emit(fmt.Sprintf("%s = sub %s 0, %s", dst, v.typ.IRType(), v.ir))
	}
	return value{ir: dst, typ: v.typ}, true
}

func (c *funcCtx) lowerBinOp(n *ast.BinOp, hint *types.Type) (value, bool) {
	if n.Op.IsLogical() {
		return c.lowerShortCircuit(n)
	}

	// A comparison yields bool whatever its operands are, so the context hint
	// (typically bool) says nothing about the operand type.
	operandHint := hint
	if n.Op.IsComparison() {
		operandHint = nil
	}

	lv, lok := c.lowerExpr(n.Left, operandHint)
	rv, rok := c.lowerExpr(n.Right, operandHint)
	if !lok || !rok {
		return value{}, false
	}

	common, ok := c.commonOperandType(lv, rv, operandHint, n.Start)
	if !ok {
		return value{}, false
	}

	lv, ok1 := c.coerce(lv, common, n.Start, true)
	rv, ok2 := c.coerce(rv, common, n.Start, true)
	if !ok1 || !ok2 {
		return value{}, false
	}

	if n.Op.IsComparison() {
		mnemonic, pred, ok := types.ComparisonInstruction(n.Op, common)
		if !ok {
			c.errorf(n.Start, "incompatible types: type mismatch")
			return value{}, false
		}
		dst := c.fn.freshTemp()
		c.fn.emit(fmt.Sprintf("%s = %s %s %s %s, %s", dst, mnemonic, pred, common.IRType(), lv.ir, rv.ir))
		return value{ir: dst, typ: types.TBool}, true
	}

	mnemonic, ok := types.Instruction(n.Op, common)
	if !ok {
		c.errorf(n.Start, "incompatible types: type mismatch")
		return value{}, false
	}
	dst := c.fn.freshTemp()
	c.fn.emit(fmt.Sprintf("%s = %s %s %s, %s", dst, mnemonic, common.IRType(), lv.ir, rv.ir))
	return value{ir: dst, typ: common}, true
}

// commonOperandType implements §4.2's operand-typing rule: literal(s)
// promote into the concrete operand's type; two literals use the context
// hint or the family default; two concrete types must already match.
func (c *funcCtx) commonOperandType(lv, rv value, hint *types.Type, pos token.Pos) (types.Type, bool) {
	switch {
	case lv.pending != nil && rv.pending != nil:
		if lv.pending.isFloat != rv.pending.isFloat {
			c.errorf(pos, "Cannot determine result type")
			return types.TInval, false
		}
		if hint != nil {
			return *hint, true
		}
		if lv.pending.isFloat {
			return types.DefaultFloat, true
		}
		return types.DefaultInt, true

	case lv.pending != nil:
		return rv.typ, true

	case rv.pending != nil:
		return lv.typ, true

	default:
		if !lv.typ.Equal(rv.typ) {
			c.errorf(pos, "incompatible types: type mismatch between %s and %s", lv.typ, rv.typ)
			return types.TInval, false
		}
		return lv.typ, true
	}
}

// lowerShortCircuit realises and/or with explicit basic blocks and a phi at
// the merge, so the right-hand side is skipped at runtime when the left
// operand already determines the result — matching §4.4's short-circuit
// requirement instead of emitting an eager bitwise and/or.
func (c *funcCtx) lowerShortCircuit(n *ast.BinOp) (value, bool) {
	bt := types.TBool
	lv, ok := c.lowerExpr(n.Left, &bt)
	if !ok {
		return value{}, false
	}
	if !lv.typ.Equal(types.TBool) {
		c.errorf(n.Start, "must be a boolean")
		return value{}, false
	}

	rhsLabel := c.fn.freshLabel("logic_rhs")
	mergeLabel := c.fn.freshLabel("logic_merge")
	entryLabel := c.currentBlockLabel()

	if n.Op == token.AND {
		c.fn.emit(fmt.Sprintf("br i1 %s, label %%%s, label %%%s", lv.ir, rhsLabel, mergeLabel))
	} else {
		c.fn.emit(fmt.Sprintf("br i1 %s, label %%%s, label %%%s", lv.ir, mergeLabel, rhsLabel))
	}
	c.fn.terminated = true

	c.fn.label(rhsLabel)
	rv, ok := c.lowerExpr(n.Right, &bt)
	if !ok {
		return value{}, false
	}
	if !rv.typ.Equal(types.TBool) {
		c.errorf(n.Start, "must be a boolean")
		return value{}, false
	}
	rhsEndLabel := c.currentBlockLabel()
	c.fn.emit(fmt.Sprintf("br label %%%s", mergeLabel))
	c.fn.terminated = true

	c.fn.label(mergeLabel)
	c.setCurrentBlockLabel(mergeLabel)
	dst := c.fn.freshTemp()
	c.fn.emit(fmt.Sprintf("%s = phi i1 [ %s, %%%s ], [ %s, %%%s ]", dst, lv.ir, entryLabel, rv.ir, rhsEndLabel))
	return value{ir: dst, typ: types.TBool}, true
}

func (c *funcCtx) lowerCast(n *ast.Cast) (value, bool) {
	target, ok := types.Lookup(n.TargetType, c.ptrWidth)
	if !ok {
		c.errorf(n.Start, "Cannot convert to unknown type %s", n.TargetType)
		return value{}, false
	}

	v, ok := c.lowerExpr(n.Operand, nil)
	if !ok {
		return value{}, false
	}
	v = c.defaultType(v)

	kind, ok := types.Cast(v.typ, target)
	if !ok {
		c.errorf(n.Start, types.ConvertError(v.typ, target))
		return value{}, false
	}
	if kind == types.CastNoOp {
		return value{ir: v.ir, typ: target}, true
	}
	dst := c.fn.freshTemp()
	c.fn.emit(fmt.Sprintf("%s = %s %s %s to %s", dst, kind, v.typ.IRType(), v.ir, target.IRType()))
	return value{ir: dst, typ: target}, true
}

func (c *funcCtx) lowerCall(n *ast.Call) (value, bool) {
	// Constructor-like illegal conversions: bool(x) and String(x).
	if n.Name == "bool" || n.Name == "String" {
		target, _ := types.Lookup(n.Name, c.ptrWidth)
		if len(n.Args) == 1 {
			argv, ok := c.lowerExpr(n.Args[0], nil)
			if ok {
				argv = c.defaultType(argv)
				c.errorf(n.Start, types.ConvertError(argv.typ, target))
			}
		} else {
			c.errorf(n.Start, "Cannot convert from <n args> to %s", target)
		}
		return value{}, false
	}

	target, ok := c.rf.ResolveCall(n.Name, n.Start)
	if !ok {
		return value{}, false
	}
	rec := target.Record

	if len(n.Args) != len(rec.Params) {
		c.errorf(n.Start, "'%s' expects %d arguments, got %d", n.Name, len(rec.Params), len(n.Args))
		return value{}, false
	}

	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		pt, ok := types.Lookup(rec.Params[i].Type, c.ptrWidth)
		if !ok {
			c.errorf(n.Start, "unknown parameter type %s", rec.Params[i].Type)
			return value{}, false
		}
		argStart, _ := a.Span()
		av, ok := c.lowerExprAs(a, pt, argStart)
		if !ok {
			return value{}, false
		}
		args[i] = fmt.Sprintf("%s %s", pt.IRType(), av.ir)
	}

	retType, ok := types.Lookup(rec.ReturnType, c.ptrWidth)
	if !ok {
		c.errorf(n.Start, "unknown return type %s", rec.ReturnType)
		return value{}, false
	}

	argsText := ""
	for i, a := range args {
		if i > 0 {
			argsText += ", "
		}
		argsText += a
	}

	if retType.Equal(types.TUnit) {
		dst := c.fn.freshTemp()
		c.fn.emit(fmt.Sprintf("%s = call %s @%s(%s)", dst, retType.IRType(), n.Name, argsText))
		return value{ir: dst, typ: retType}, true
	}

	dst := c.fn.freshTemp()
	c.fn.emit(fmt.Sprintf("%s = call %s @%s(%s)", dst, retType.IRType(), n.Name, argsText))
	return value{ir: dst, typ: retType}, true
}

func (c *funcCtx) lowerTernary(n *ast.Ternary, hint *types.Type) (value, bool) {
	bt := types.TBool
	condv, ok := c.lowerExpr(n.Cond, &bt)
	if !ok {
		return value{}, false
	}
	if !condv.typ.Equal(types.TBool) {
		c.errorf(n.Start, "must be a boolean")
		return value{}, false
	}

	// Right-to-left lowering: inner ternaries nested in Then/Else are
	// lowered first as part of lowering those subexpressions, so their
	// "select" naturally appears earlier in the instruction stream than this
	// (outer) one.
	thenv, okT := c.lowerExpr(n.Then, hint)
	elsev, okE := c.lowerExpr(n.Else, hint)
	if !okT || !okE {
		return value{}, false
	}

	common, ok := c.ternaryCommonType(thenv, elsev, hint, n.Start)
	if !ok {
		return value{}, false
	}

	thenv, ok1 := c.coerce(thenv, common, n.Start, true)
	elsev, ok2 := c.coerce(elsev, common, n.Start, true)
	if !ok1 || !ok2 {
		return value{}, false
	}

	dst := "%" + c.fn.freshLabel("ternary")
	c.fn.emit(fmt.Sprintf("%s = select i1 %s, %s %s, %s %s",
		dst, condv.ir, common.IRType(), thenv.ir, common.IRType(), elsev.ir))
	return value{ir: dst, typ: common}, true
}

// ternaryCommonType mirrors commonOperandType but also covers the unit
// type, since a unit-returning call is a legal ternary operand even though
// unit never appears in arithmetic.
func (c *funcCtx) ternaryCommonType(thenv, elsev value, hint *types.Type, pos token.Pos) (types.Type, bool) {
	if thenv.typ.Equal(types.TUnit) && elsev.typ.Equal(types.TUnit) {
		return types.TUnit, true
	}
	return c.commonOperandType(thenv, elsev, hint, pos)
}

func (c *funcCtx) errorf(p token.Pos, format string, args ...any) {
	line, col := p.LineCol()
	c.bag.Errorf(gotoken.Position{Filename: c.file, Line: line, Column: col}, format, args...)
}
