package codegen_test

import (
	"strings"
	"testing"

	"github.com/reso-lang/reso-sub001/lang/ast"
	"github.com/reso-lang/reso-sub001/lang/codegen"
	"github.com/reso-lang/reso-sub001/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertInOrder fails the test unless every needle in order appears in ir,
// each occurring strictly after the previous match, mirroring how the
// scenarios in this package's design document state their expectations:
// "IR must contain, in order: ...".
func assertInOrder(t *testing.T, ir string, order ...string) {
	t.Helper()
	pos := 0
	for _, needle := range order {
		idx := strings.Index(ir[pos:], needle)
		if !assert.GreaterOrEqualf(t, idx, 0, "expected %q to appear after position %d\nIR:\n%s", needle, pos, ir) {
			return
		}
		pos += idx + len(needle)
	}
}

func fn(name string, vis ast.Visibility, params []ast.Param, ret string, stmts ...ast.Stmt) *ast.FnDecl {
	return &ast.FnDecl{
		Name:       name,
		Vis:        vis,
		Params:     params,
		ReturnType: ret,
		Body:       &ast.Block{Stmts: stmts},
	}
}

func p(line int) token.Pos { return token.MakePos(line, 1) }

// TestBasicWhile implements scenario S1: a counter loop whose IR must
// contain the init store, the unconditional branch into while_cond, the
// condition compare reading the loop variable, entry into while_body, the
// increment, the back-edge, and finally while_end — in that order.
func TestBasicWhile(t *testing.T) {
	body := fn("main", ast.Fileprivate, nil, "()",
		&ast.VarDecl{Name: "i", DeclaredType: "i32", Init: &ast.IntLit{Value: 0, Start: p(1)}, Start: p(1)},
		&ast.While{
			Cond: &ast.BinOp{Op: token.LT, Left: &ast.VarRef{Name: "i", Start: p(2)}, Right: &ast.IntLit{Value: 5, Start: p(2)}, Start: p(2)},
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.Assign{Name: "i", Value: &ast.BinOp{Op: token.ADD, Left: &ast.VarRef{Name: "i", Start: p(2)}, Right: &ast.IntLit{Value: 1, Start: p(2)}, Start: p(2)}, Start: p(2)},
			}},
			Start: p(2),
		},
		&ast.Return{Start: p(3)},
	)

	ir, _, bag := codegen.Compile([]codegen.Source{{Filename: "a.reso", File: &ast.File{Name: "a.reso", Fns: []*ast.FnDecl{body}}}}, 64)
	require.False(t, bag.HasErrors(), bag.Err())

	assertInOrder(t, ir,
		"store i32 0, ptr %i",
		"br label %while_cond",
		"while_cond:",
		"icmp slt i32 %i_load, 5",
		"while_body:",
		"add i32 %i_load, 1",
		"br label %while_cond",
		"while_end:",
	)
}

// TestUnsignedWidening implements scenario S2: storing 200 into a u8 slot
// renders as -56, and widening it to u16 emits zext.
func TestUnsignedWidening(t *testing.T) {
	body := fn("main", ast.Fileprivate, nil, "()",
		&ast.VarDecl{Name: "a", DeclaredType: "u8", Init: &ast.IntLit{Value: 200, Start: p(1)}, Start: p(1)},
		&ast.VarDecl{Name: "b", DeclaredType: "u16", Init: &ast.Cast{Operand: &ast.VarRef{Name: "a", Start: p(2)}, TargetType: "u16", Start: p(2)}, Start: p(2)},
		&ast.Return{Start: p(3)},
	)

	ir, _, bag := codegen.Compile([]codegen.Source{{Filename: "a.reso", File: &ast.File{Name: "a.reso", Fns: []*ast.FnDecl{body}}}}, 64)
	require.False(t, bag.HasErrors(), bag.Err())

	assertInOrder(t, ir,
		"store i8 -56, ptr %a",
		"zext i8",
		"to i16",
	)
}

// TestCrossFileFileprivateDenied implements scenario S3: a fileprivate
// function declared in one file cannot be called from another, and
// compilation produces no IR at all.
func TestCrossFileFileprivateDenied(t *testing.T) {
	helper := fn("privateHelper", ast.Fileprivate, nil, "i32", &ast.Return{Expr: &ast.IntLit{Value: 1, Start: p(1)}, Start: p(1)})
	caller := fn("main", ast.Fileprivate, nil, "()",
		&ast.ExprStmt{Expr: &ast.Call{Name: "privateHelper", Start: p(1)}, Start: p(1)},
		&ast.Return{Start: p(2)},
	)

	unit := []codegen.Source{
		{Filename: "a.reso", File: &ast.File{Name: "a.reso", Fns: []*ast.FnDecl{helper}}},
		{Filename: "b.reso", File: &ast.File{Name: "b.reso", Fns: []*ast.FnDecl{caller}}},
	}
	ir, _, bag := codegen.Compile(unit, 64)
	assert.Empty(t, ir)
	require.True(t, bag.HasErrors())
	assert.Contains(t, bag.Err().Error(), "Function 'privateHelper' with fileprivate visibility is not accessible")
}

// TestTernaryTypeMismatch implements scenario S4: a ternary whose arms are
// an untyped int literal and an f64 literal, assigned into an f64 slot,
// cannot determine a single result type.
func TestTernaryTypeMismatch(t *testing.T) {
	body := fn("main", ast.Fileprivate, nil, "()",
		&ast.VarDecl{
			Name:         "result",
			DeclaredType: "f64",
			Init: &ast.Ternary{
				Then:  &ast.IntLit{Value: 42, Start: p(1)},
				Cond:  &ast.BoolLit{Value: true, Start: p(1)},
				Else:  &ast.FloatLit{Value: 3.14, Start: p(1)},
				Start: p(1),
			},
			Start: p(1),
		},
		&ast.Return{Start: p(2)},
	)

	ir, _, bag := codegen.Compile([]codegen.Source{{Filename: "a.reso", File: &ast.File{Name: "a.reso", Fns: []*ast.FnDecl{body}}}}, 64)
	assert.Empty(t, ir)
	require.True(t, bag.HasErrors())
	msg := bag.Err().Error()
	assert.True(t,
		strings.Contains(msg, "Cannot determine result type") ||
			strings.Contains(msg, "incompatible types") ||
			strings.Contains(msg, "type mismatch"),
		"unexpected message: %s", msg)
}

// TestUnreachableAfterBreak implements scenario S5: a statement following
// an unconditional break warns "unreachable" but does not stop the rest of
// the unit from compiling.
func TestUnreachableAfterBreak(t *testing.T) {
	body := fn("main", ast.Fileprivate, nil, "()",
		&ast.While{
			Cond: &ast.BoolLit{Value: true, Start: p(1)},
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.Break{Start: p(2)},
				&ast.VarDecl{Name: "unreachable", DeclaredType: "i32", Init: &ast.IntLit{Value: 42, Start: p(3)}, Start: p(3)},
			}},
			Start: p(1),
		},
		&ast.Return{Start: p(4)},
	)

	ir, warnings, bag := codegen.Compile([]codegen.Source{{Filename: "a.reso", File: &ast.File{Name: "a.reso", Fns: []*ast.FnDecl{body}}}}, 64)
	require.False(t, bag.HasErrors())
	assert.NotEmpty(t, ir)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "unreachable")
}

// TestShadowing implements scenario S6: a while-body declaration of the
// same name as an outer variable allocates a second slot; a read after the
// loop ends must still resolve to the outer one.
func TestShadowing(t *testing.T) {
	body := fn("main", ast.Fileprivate, nil, "i32",
		&ast.VarDecl{Name: "x", DeclaredType: "i32", Init: &ast.IntLit{Value: 10, Start: p(1)}, Start: p(1)},
		&ast.While{
			Cond: &ast.BoolLit{Value: false, Start: p(2)},
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.VarDecl{Name: "x", DeclaredType: "i32", Init: &ast.IntLit{Value: 999, Start: p(3)}, Start: p(3)},
			}},
			Start: p(2),
		},
		&ast.Return{Expr: &ast.VarRef{Name: "x", Start: p(4)}, Start: p(4)},
	)

	ir, _, bag := codegen.Compile([]codegen.Source{{Filename: "a.reso", File: &ast.File{Name: "a.reso", Fns: []*ast.FnDecl{body}}}}, 64)
	require.False(t, bag.HasErrors(), bag.Err())

	assert.Contains(t, ir, "%x = alloca i32")
	assert.Contains(t, ir, "%x2 = alloca i32")
	assert.Contains(t, ir, "store i32 999, ptr %x2")
	assert.Contains(t, ir, "ret i32 %x_load")
}

// TestPublicCallableFromAnyFile covers invariant 8's positive case: a pub
// function declared in one file is callable from another.
func TestPublicCallableFromAnyFile(t *testing.T) {
	helper := fn("helper", ast.Public, nil, "i32", &ast.Return{Expr: &ast.IntLit{Value: 7, Start: p(1)}, Start: p(1)})
	caller := fn("main", ast.Fileprivate, nil, "i32", &ast.Return{Expr: &ast.Call{Name: "helper", Start: p(1)}, Start: p(1)})

	unit := []codegen.Source{
		{Filename: "a.reso", File: &ast.File{Name: "a.reso", Fns: []*ast.FnDecl{helper}}},
		{Filename: "b.reso", File: &ast.File{Name: "b.reso", Fns: []*ast.FnDecl{caller}}},
	}
	ir, _, bag := codegen.Compile(unit, 64)
	require.False(t, bag.HasErrors(), bag.Err())
	assert.Contains(t, ir, "call i32 @helper()")
}

// TestTernaryLowersToSelect covers invariant 6.
func TestTernaryLowersToSelect(t *testing.T) {
	body := fn("main", ast.Fileprivate, nil, "i32",
		&ast.Return{
			Expr: &ast.Ternary{
				Then:  &ast.IntLit{Value: 1, Start: p(1)},
				Cond:  &ast.BoolLit{Value: true, Start: p(1)},
				Else:  &ast.IntLit{Value: 2, Start: p(1)},
				Start: p(1),
			},
			Start: p(1),
		},
	)
	ir, _, bag := codegen.Compile([]codegen.Source{{Filename: "a.reso", File: &ast.File{Name: "a.reso", Fns: []*ast.FnDecl{body}}}}, 64)
	require.False(t, bag.HasErrors(), bag.Err())
	assert.Contains(t, ir, "select i1")
}

// TestSignedRoundTrip covers the widen-then-narrow round-trip invariant:
// (x as i32) as i8 reconstructs the original i8 bit pattern for values in
// range, since sext followed by trunc is lossless there.
func TestSignedRoundTrip(t *testing.T) {
	body := fn("main", ast.Fileprivate, []ast.Param{{Name: "x", Type: "i8", Pos: p(1)}}, "i8",
		&ast.Return{
			Expr: &ast.Cast{
				Operand: &ast.Cast{Operand: &ast.VarRef{Name: "x", Start: p(1)}, TargetType: "i32", Start: p(1)},
				TargetType: "i8",
				Start:      p(1),
			},
			Start: p(1),
		},
	)
	ir, _, bag := codegen.Compile([]codegen.Source{{Filename: "a.reso", File: &ast.File{Name: "a.reso", Fns: []*ast.FnDecl{body}}}}, 64)
	require.False(t, bag.HasErrors(), bag.Err())
	assert.Contains(t, ir, "sext i8")
	assert.Contains(t, ir, "trunc i32")
}

// TestBreakContinueTargetInnermostLoop covers invariant 5: break/continue
// inside a nested while target the innermost loop's labels, not the
// outer's.
func TestBreakContinueTargetInnermostLoop(t *testing.T) {
	body := fn("main", ast.Fileprivate, nil, "()",
		&ast.While{
			Cond: &ast.BoolLit{Value: true, Start: p(1)},
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.While{
					Cond: &ast.BoolLit{Value: true, Start: p(2)},
					Body: &ast.Block{Stmts: []ast.Stmt{
						&ast.If{
							Cond:  &ast.BoolLit{Value: true, Start: p(3)},
							Then:  &ast.Block{Stmts: []ast.Stmt{&ast.Break{Start: p(3)}}},
							Start: p(3),
						},
						&ast.Continue{Start: p(4)},
					}},
					Start: p(2),
				},
			}},
			Start: p(1),
		},
		&ast.Return{Start: p(5)},
	)
	ir, _, bag := codegen.Compile([]codegen.Source{{Filename: "a.reso", File: &ast.File{Name: "a.reso", Fns: []*ast.FnDecl{body}}}}, 64)
	require.False(t, bag.HasErrors(), bag.Err())
	assert.Contains(t, ir, "br label %while_end2")
	assert.NotContains(t, ir, "br label %while_end\n")
	assertInOrder(t, ir, "if_end:", "br label %while_cond2")
}
