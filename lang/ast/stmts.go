package ast

import "github.com/reso-lang/reso-sub001/lang/token"

type (
	// VarDecl declares a new variable in the current scope, e.g.
	// "var x: i32 = 0" or "var y = 3.14" (declared type omitted, inferred
	// from Init).
	VarDecl struct {
		Name         string
		DeclaredType string // "" if omitted
		Init         Expr   // nil if no initializer
		Start, End   token.Pos
	}

	// Assign stores a new value into an already-declared variable.
	Assign struct {
		Name       string
		Value      Expr
		Start, End token.Pos
	}

	// If is an if/else statement. Else is nil if there is no else arm.
	If struct {
		Cond       Expr
		Then       *Block
		Else       *Block
		Start, End token.Pos
	}

	// While is a condition-checked loop.
	While struct {
		Cond       Expr
		Body       *Block
		Start, End token.Pos
	}

	// Break exits the innermost enclosing While.
	Break struct {
		Start, End token.Pos
	}

	// Continue jumps to the condition check of the innermost enclosing While.
	Continue struct {
		Start, End token.Pos
	}

	// Return exits the current function, optionally with a value. Expr is nil
	// for a bare "return" in a unit-returning function.
	Return struct {
		Expr       Expr
		Start, End token.Pos
	}

	// ExprStmt is an expression evaluated for its side effects; its value, if
	// any, is discarded, but the instructions that produce it must still be
	// emitted.
	ExprStmt struct {
		Expr       Expr
		Start, End token.Pos
	}
)

func (n *VarDecl) Span() (token.Pos, token.Pos)  { return n.Start, n.End }
func (n *Assign) Span() (token.Pos, token.Pos)   { return n.Start, n.End }
func (n *If) Span() (token.Pos, token.Pos)       { return n.Start, n.End }
func (n *While) Span() (token.Pos, token.Pos)    { return n.Start, n.End }
func (n *Break) Span() (token.Pos, token.Pos)    { return n.Start, n.End }
func (n *Continue) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *Return) Span() (token.Pos, token.Pos)   { return n.Start, n.End }
func (n *ExprStmt) Span() (token.Pos, token.Pos) { return n.Start, n.End }

func (n *VarDecl) stmtNode()  {}
func (n *Assign) stmtNode()   {}
func (n *If) stmtNode()       {}
func (n *While) stmtNode()    {}
func (n *Break) stmtNode()    {}
func (n *Continue) stmtNode() {}
func (n *Return) stmtNode()   {}
func (n *ExprStmt) stmtNode() {}
