// Package symbols implements the pre-pass that scans every file's top-level
// function declarations and builds the per-file and public symbol tables the
// resolver needs for cross-file call resolution. It is modeled on the
// bookkeeping half of lang/resolve's block/binding maps, but operates over
// whole files instead of nested lexical scopes, and must complete before any
// lowering starts so forward references (a function calling one declared
// later in the same or another file) just work.
package symbols

import (
	gotoken "go/token"

	"github.com/reso-lang/reso-sub001/lang/ast"
	"github.com/reso-lang/reso-sub001/lang/diag"
	"github.com/reso-lang/reso-sub001/lang/token"
)

// FnRecord is everything the resolver and code generator need to know about
// a declared function, independent of its body.
type FnRecord struct {
	Name       string
	File       string
	Vis        ast.Visibility
	Params     []ast.Param
	ReturnType string
	Decl       *ast.FnDecl
}

// Table is the result of collection: a per-file function table plus the
// subset of functions declared pub, indexed globally.
type Table struct {
	PerFile map[string]map[string]*FnRecord
	Public  map[string]*FnRecord
}

// Lookup resolves name for a call made from file, applying the same-file
// visibility rule: a same-file declaration always wins; otherwise only a
// pub declaration elsewhere is visible, and the caller must distinguish
// "not found" from "found but fileprivate in another file" (see
// lang/resolve, which performs that distinction using DeclaredElsewhere).
func (t *Table) Lookup(file, name string) (*FnRecord, bool) {
	if fns, ok := t.PerFile[file]; ok {
		if fn, ok := fns[name]; ok {
			return fn, true
		}
	}
	if fn, ok := t.Public[name]; ok {
		return fn, true
	}
	return nil, false
}

// DeclaredElsewhere reports whether name is declared fileprivate in some
// file other than file, for producing the "not accessible" diagnostic
// instead of a generic "not defined" one.
func (t *Table) DeclaredElsewhere(file, name string) bool {
	for f, fns := range t.PerFile {
		if f == file {
			continue
		}
		if fn, ok := fns[name]; ok && fn.Vis == ast.Fileprivate {
			return true
		}
	}
	return false
}

// Collect scans every file in files and builds the Table, reporting
// duplicate-in-file and duplicate-public-name errors to bag. The returned
// Table is safe to use for resolution even if bag.HasErrors(), since
// collection always finishes scanning every file before returning.
func Collect(files []*ast.File, bag *diag.Bag) *Table {
	t := &Table{
		PerFile: make(map[string]map[string]*FnRecord),
		Public:  make(map[string]*FnRecord),
	}

	for _, f := range files {
		fns := make(map[string]*FnRecord)
		t.PerFile[f.Name] = fns

		for _, decl := range f.Fns {
			rec := &FnRecord{
				Name:       decl.Name,
				File:       f.Name,
				Vis:        decl.Vis,
				Params:     decl.Params,
				ReturnType: decl.ReturnType,
				Decl:       decl,
			}

			if _, dup := fns[decl.Name]; dup {
				bag.Errorf(pos(f.Name, decl.Start), "'%s' is already defined in this file", decl.Name)
				continue
			}
			fns[decl.Name] = rec

			if decl.Vis == ast.Public {
				if other, dup := t.Public[decl.Name]; dup {
					bag.Errorf(pos(f.Name, decl.Start),
						"'%s' with pub visibility is already defined in %s", decl.Name, other.File)
					continue
				}
				t.Public[decl.Name] = rec
			}
		}
	}

	return t
}

func pos(file string, p token.Pos) gotoken.Position {
	line, col := p.LineCol()
	return gotoken.Position{Filename: file, Line: line, Column: col}
}
