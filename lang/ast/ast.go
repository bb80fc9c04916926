// Package ast defines the abstract syntax tree consumed by the resolver and
// code generator. The concrete-syntax parser that builds these nodes is
// outside this module's scope: a Node is simply a discriminated variant
// carrying its own fields, and a well-formed tree is assumed by every
// downstream pass (see the lang/resolve and lang/codegen packages).
package ast

import "github.com/reso-lang/reso-sub001/lang/token"

// Node is implemented by every AST node.
type Node interface {
	// Span reports the start and end source position of the node, for
	// diagnostics.
	Span() (start, end token.Pos)
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Block is an indentation-delimited sequence of statements, introduced by a
// function body, an if/while arm, and so on.
type Block struct {
	Start, End token.Pos
	Stmts      []Stmt
}

func (b *Block) Span() (start, end token.Pos) { return b.Start, b.End }

// Visibility is the declared visibility of a top-level function.
type Visibility int8

const (
	// Fileprivate is the default visibility: a function is only addressable
	// from within the file that declares it.
	Fileprivate Visibility = iota
	// Public ("pub") functions are addressable from any file in the unit.
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "pub"
	}
	return "fileprivate"
}

// Param is a single function parameter.
type Param struct {
	Name string
	Type string // surface type name, resolved by lang/types
	Pos  token.Pos
}

// FnDecl is a top-level function declaration.
type FnDecl struct {
	Name       string
	Vis        Visibility
	Params     []Param
	ReturnType string // surface type name; "()" for unit
	Body       *Block
	Start, End token.Pos
}

func (n *FnDecl) Span() (start, end token.Pos) { return n.Start, n.End }

// File is one source file's worth of top-level declarations.
type File struct {
	Name string
	Fns  []*FnDecl
}
