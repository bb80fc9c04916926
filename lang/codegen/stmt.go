package codegen

import (
	"fmt"

	"github.com/reso-lang/reso-sub001/lang/ast"
	"github.com/reso-lang/reso-sub001/lang/token"
	"github.com/reso-lang/reso-sub001/lang/types"
)

// lowerBlock lowers every statement in b in order, inside a fresh resolver
// scope. Once a statement terminates the current basic block (return,
// break, continue, or an if/else whose both arms already terminated; a while
// never does, since lowering it always ends by opening its end label), any
// further statements in the same block are unreachable: per the
// error-handling design only the first such statement is warned about, and
// none of the unreachable statements are lowered to IR.
func lowerBlock(c *funcCtx, b *ast.Block) bool {
	c.rf.Push()
	defer c.rf.Pop()

	warnedUnreachable := false
	for _, stmt := range b.Stmts {
		if c.fn.terminated {
			if !warnedUnreachable {
				start, _ := stmt.Span()
				c.warnf(start, "unreachable code")
				warnedUnreachable = true
			}
			continue
		}
		if !lowerStmt(c, stmt) {
			return false
		}
	}
	return true
}

func lowerStmt(c *funcCtx, stmt ast.Stmt) bool {
	switch n := stmt.(type) {
	case *ast.VarDecl:
		return lowerVarDecl(c, n)
	case *ast.Assign:
		return lowerAssign(c, n)
	case *ast.If:
		return lowerIf(c, n)
	case *ast.While:
		return lowerWhile(c, n)
	case *ast.Break:
		return lowerBreak(c, n)
	case *ast.Continue:
		return lowerContinue(c, n)
	case *ast.Return:
		return lowerReturn(c, n)
	case *ast.ExprStmt:
		_, ok := c.lowerExpr(n.Expr, nil)
		return ok
	default:
		panic(fmt.Sprintf("codegen: unexpected stmt %T", stmt))
	}
}

func lowerVarDecl(c *funcCtx, n *ast.VarDecl) bool {
	var v value
	var declType types.Type
	if n.DeclaredType != "" {
		t, ok := types.Lookup(n.DeclaredType, c.ptrWidth)
		if !ok {
			c.errorf(n.Start, "unknown type %s", n.DeclaredType)
			return false
		}
		declType = t
		var ok2 bool
		v, ok2 = c.lowerExprAs(n.Init, declType, n.Start)
		if !ok2 {
			return false
		}
	} else {
		var ok2 bool
		v, ok2 = c.lowerExpr(n.Init, nil)
		if !ok2 {
			return false
		}
		v = c.defaultType(v)
		declType = v.typ
	}

	bdg, ok := c.rf.Declare(n.Name, declType, n.Start)
	if !ok {
		return false
	}
	c.fn.emit(formatAlloca(bdg.Slot, declType))
	c.fn.emit(fmt.Sprintf("store %s %s, ptr %%%s", declType.IRType(), v.ir, bdg.Slot))
	return true
}

func lowerAssign(c *funcCtx, n *ast.Assign) bool {
	bdg, ok := c.rf.Use(n.Name, n.Start)
	if !ok {
		return false
	}
	typ := bdg.Type
	v, ok := c.lowerExprAs(n.Value, typ, n.Start)
	if !ok {
		return false
	}
	c.fn.emit(fmt.Sprintf("store %s %s, ptr %%%s", typ.IRType(), v.ir, bdg.Slot))
	return true
}

func lowerIf(c *funcCtx, n *ast.If) bool {
	bt := types.TBool
	cond, ok := c.lowerExpr(n.Cond, &bt)
	if !ok {
		return false
	}
	if !cond.typ.Equal(types.TBool) {
		c.errorf(n.Start, "must be a boolean")
		return false
	}

	thenLabel := c.fn.freshLabel("if_then")
	endLabel := c.fn.freshLabel("if_end")
	elseLabel := endLabel
	if n.Else != nil {
		elseLabel = c.fn.freshLabel("if_else")
	}

	c.fn.emit(fmt.Sprintf("br i1 %s, label %%%s, label %%%s", cond.ir, thenLabel, elseLabel))
	c.fn.terminated = true

	c.fn.label(thenLabel)
	if !lowerBlock(c, n.Then) {
		return false
	}
	thenTerminated := c.fn.terminated
	if !thenTerminated {
		c.fn.emit(fmt.Sprintf("br label %%%s", endLabel))
		c.fn.terminated = true
	}

	elseTerminated := false
	if n.Else != nil {
		c.fn.label(elseLabel)
		if !lowerBlock(c, n.Else) {
			return false
		}
		elseTerminated = c.fn.terminated
		if !elseTerminated {
			c.fn.emit(fmt.Sprintf("br label %%%s", endLabel))
			c.fn.terminated = true
		}
	}

	// The merge block is unreachable only when both arms terminate (e.g. both
	// end in return); it is still emitted so later code has a well-formed
	// label to attach to, but is then immediately marked terminated so any
	// statement following the if is flagged unreachable.
	c.fn.label(endLabel)
	if n.Else != nil && thenTerminated && elseTerminated {
		c.fn.terminated = true
	}
	return true
}

func lowerWhile(c *funcCtx, n *ast.While) bool {
	condLabel := c.fn.freshLabel("while_cond")
	bodyLabel := c.fn.freshLabel("while_body")
	endLabel := c.fn.freshLabel("while_end")

	c.fn.emit(fmt.Sprintf("br label %%%s", condLabel))
	c.fn.terminated = true

	c.fn.label(condLabel)
	bt := types.TBool
	cond, ok := c.lowerExpr(n.Cond, &bt)
	if !ok {
		return false
	}
	if !cond.typ.Equal(types.TBool) {
		c.errorf(n.Start, "must be a boolean")
		return false
	}
	c.fn.emit(fmt.Sprintf("br i1 %s, label %%%s, label %%%s", cond.ir, bodyLabel, endLabel))
	c.fn.terminated = true

	c.fn.label(bodyLabel)
	c.pushLoop(condLabel, endLabel)
	ok = lowerBlock(c, n.Body)
	c.popLoop()
	if !ok {
		return false
	}
	if !c.fn.terminated {
		c.fn.emit(fmt.Sprintf("br label %%%s", condLabel))
		c.fn.terminated = true
	}

	c.fn.label(endLabel)
	return true
}

func lowerBreak(c *funcCtx, n *ast.Break) bool {
	loop, ok := c.currentLoop()
	if !ok {
		c.errorf(n.Start, "'break' used outside of a loop")
		return false
	}
	c.fn.emit(fmt.Sprintf("br label %%%s", loop.endLabel))
	c.fn.terminated = true
	return true
}

func lowerContinue(c *funcCtx, n *ast.Continue) bool {
	loop, ok := c.currentLoop()
	if !ok {
		c.errorf(n.Start, "'continue' used outside of a loop")
		return false
	}
	c.fn.emit(fmt.Sprintf("br label %%%s", loop.condLabel))
	c.fn.terminated = true
	return true
}

func lowerReturn(c *funcCtx, n *ast.Return) bool {
	if n.Expr == nil {
		if !c.retType.Equal(types.TUnit) {
			c.errorf(n.Start, "missing return value")
			return false
		}
		c.fn.emit("ret %unit zeroinitializer")
		c.fn.terminated = true
		return true
	}
	v, ok := c.lowerExprAs(n.Expr, c.retType, n.Start)
	if !ok {
		return false
	}
	c.fn.emit(fmt.Sprintf("ret %s %s", v.typ.IRType(), v.ir))
	c.fn.terminated = true
	return true
}

func (c *funcCtx) warnf(p token.Pos, format string, args ...any) {
	c.bag.Warnf(position(c.file, p), format, args...)
}
