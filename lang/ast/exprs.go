package ast

import "github.com/reso-lang/reso-sub001/lang/token"

type (
	// IntLit is an integer literal. It has no intrinsic type until lowered in
	// a typed context; see lang/types for the literal-promotion rules.
	IntLit struct {
		Value      int64
		Start, End token.Pos
	}

	// FloatLit is a floating-point literal, defaulting to f64.
	FloatLit struct {
		Value      float64
		Start, End token.Pos
	}

	// BoolLit is a true/false literal.
	BoolLit struct {
		Value      bool
		Start, End token.Pos
	}

	// CharLit is a single-quoted Unicode scalar literal, always of type char.
	CharLit struct {
		Value      rune
		Start, End token.Pos
	}

	// StringLit is a double-quoted string literal. Reso's String type is
	// opaque; StringLit only ever surfaces in error-producing programs (e.g.
	// an illegal cast to/from String).
	StringLit struct {
		Value      string
		Start, End token.Pos
	}

	// VarRef is a reference to a variable by name.
	VarRef struct {
		Name       string
		Start, End token.Pos
	}

	// BinOp is a binary operation.
	BinOp struct {
		Op         token.Op
		Left       Expr
		Right      Expr
		Start, End token.Pos
	}

	// UnaryOp is a unary operation (numeric negation, or logical "not").
	UnaryOp struct {
		Op         token.Op
		Operand    Expr
		Start, End token.Pos
	}

	// Cast is an explicit "expr as Type" conversion.
	Cast struct {
		Operand    Expr
		TargetType string
		Start, End token.Pos
	}

	// Call is a function call by name.
	Call struct {
		Name       string
		Args       []Expr
		Start, End token.Pos
	}

	// Ternary is "then if cond else else_". Lowered right-to-left: a Ternary
	// nested in Then or Else is lowered before the outer one consumes its
	// result.
	Ternary struct {
		Then       Expr
		Cond       Expr
		Else       Expr
		Start, End token.Pos
	}
)

func (n *IntLit) Span() (token.Pos, token.Pos)    { return n.Start, n.End }
func (n *FloatLit) Span() (token.Pos, token.Pos)  { return n.Start, n.End }
func (n *BoolLit) Span() (token.Pos, token.Pos)   { return n.Start, n.End }
func (n *CharLit) Span() (token.Pos, token.Pos)   { return n.Start, n.End }
func (n *StringLit) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *VarRef) Span() (token.Pos, token.Pos)    { return n.Start, n.End }
func (n *BinOp) Span() (token.Pos, token.Pos)     { return n.Start, n.End }
func (n *UnaryOp) Span() (token.Pos, token.Pos)   { return n.Start, n.End }
func (n *Cast) Span() (token.Pos, token.Pos)      { return n.Start, n.End }
func (n *Call) Span() (token.Pos, token.Pos)      { return n.Start, n.End }
func (n *Ternary) Span() (token.Pos, token.Pos)   { return n.Start, n.End }

func (n *IntLit) exprNode()    {}
func (n *FloatLit) exprNode()  {}
func (n *BoolLit) exprNode()   {}
func (n *CharLit) exprNode()   {}
func (n *StringLit) exprNode() {}
func (n *VarRef) exprNode()    {}
func (n *BinOp) exprNode()     {}
func (n *UnaryOp) exprNode()   {}
func (n *Cast) exprNode()      {}
func (n *Call) exprNode()      {}
func (n *Ternary) exprNode()   {}
