// Package resolve implements the scope chain and symbol resolution that the
// statement/expression lowerer drives while it walks a function body. It is
// adapted from the block/push/pop/bind/use shape of a Starlark-style
// resolver: a linked list of scopes, innermost first, with bindings
// declared in the top scope and references walking outward. Reso has no
// closures or labels, so this package is considerably smaller than that
// ancestry: every binding is a plain function-local stack slot, and
// shadowing a name simply allocates a second slot instead of promoting
// anything to a heap cell.
package resolve

import (
	"fmt"
	gotoken "go/token"

	"github.com/reso-lang/reso-sub001/lang/diag"
	"github.com/reso-lang/reso-sub001/lang/symbols"
	"github.com/reso-lang/reso-sub001/lang/token"
	"github.com/reso-lang/reso-sub001/lang/types"
)

// scope is one lexical block: a function's parameter scope, or a nested
// Block introduced by an if/while/function body.
type scope struct {
	parent *scope
	vars   map[string]*Binding
}

// Func is the resolver state for one function body. A fresh Func is created
// per function lowered; its lifetime matches the function's IR builder.
type Func struct {
	file string
	tab  *symbols.Table
	bag  *diag.Bag

	env *scope

	// slotCounts disambiguates shadowed declarations: the first declaration
	// of "x" emits as "x", the second as "x2", the third as "x3", and so on,
	// scoped to the whole function so two sibling blocks that each shadow "x"
	// once don't collide.
	slotCounts map[string]int
}

// NewFunc starts resolution for a function declared in file, backed by the
// file/public symbol tables in tab. Errors are reported to bag.
func NewFunc(file string, tab *symbols.Table, bag *diag.Bag) *Func {
	return &Func{
		file:       file,
		tab:        tab,
		bag:        bag,
		slotCounts: make(map[string]int),
	}
}

// Push enters a new nested scope (a Block).
func (f *Func) Push() {
	f.env = &scope{parent: f.env, vars: make(map[string]*Binding)}
}

// Pop exits the current scope, discarding its bindings. References to
// variables declared in the exited scope were already resolved to their
// slot name while the scope was live, so popping is safe even though other
// code may still refer to those slots by name in emitted IR.
func (f *Func) Pop() {
	f.env = f.env.parent
}

// Declare binds name in the current (innermost) scope. Redeclaring a name
// already bound in that same scope is an error; declaring a name that
// shadows an outer scope's binding is allowed and yields a distinct slot.
func (f *Func) Declare(name string, typ types.Type, p token.Pos) (*Binding, bool) {
	if _, dup := f.env.vars[name]; dup {
		f.bag.Errorf(f.pos(p), "'%s' is already defined in this scope", name)
		return nil, false
	}

	f.slotCounts[name]++
	slot := name
	if n := f.slotCounts[name]; n > 1 {
		slot = fmt.Sprintf("%s%d", name, n)
	}

	bdg := &Binding{Name: name, Slot: slot, Type: typ}
	f.env.vars[name] = bdg
	return bdg, true
}

// Use resolves a variable reference, walking the scope chain outward. It
// reports the "not defined" diagnostic and returns (nil, false) when no
// binding is found.
func (f *Func) Use(name string, p token.Pos) (*Binding, bool) {
	for s := f.env; s != nil; s = s.parent {
		if bdg, ok := s.vars[name]; ok {
			return bdg, true
		}
	}
	f.bag.Errorf(f.pos(p), "'%s' is not defined", name)
	return nil, false
}

// CallTarget is the outcome of resolving a call's callee name.
type CallTarget struct {
	Record *symbols.FnRecord
}

// ResolveCall looks up a callee name per spec's visibility rule: a same-file
// function (of any visibility) always resolves; otherwise only the public
// index is consulted. If the only declaration found is a fileprivate one in
// another file, that is reported as a visibility denial rather than
// "undefined".
func (f *Func) ResolveCall(name string, p token.Pos) (*CallTarget, bool) {
	if fns, ok := f.tab.PerFile[f.file]; ok {
		if fn, ok := fns[name]; ok {
			return &CallTarget{Record: fn}, true
		}
	}
	if fn, ok := f.tab.Public[name]; ok {
		return &CallTarget{Record: fn}, true
	}
	if f.tab.DeclaredElsewhere(f.file, name) {
		f.bag.Errorf(f.pos(p), "Function '%s' with fileprivate visibility is not accessible", name)
		return nil, false
	}
	f.bag.Errorf(f.pos(p), "'%s' is not defined", name)
	return nil, false
}

func (f *Func) pos(p token.Pos) gotoken.Position {
	line, col := p.LineCol()
	return gotoken.Position{Filename: f.file, Line: line, Column: col}
}
