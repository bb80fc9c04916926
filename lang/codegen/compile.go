package codegen

import (
	gotoken "go/token"

	"github.com/reso-lang/reso-sub001/lang/ast"
	"github.com/reso-lang/reso-sub001/lang/diag"
	"github.com/reso-lang/reso-sub001/lang/resolve"
	"github.com/reso-lang/reso-sub001/lang/symbols"
	"github.com/reso-lang/reso-sub001/lang/types"
)

// Source pairs one parsed file with the name under which its diagnostics and
// fileprivate-visibility decisions should be reported; it is the unit of
// input to Compile, one resolved syntax tree per source file.
type Source struct {
	Filename string
	File     *ast.File
}

// loopFrame is one entry of the break/continue target stack. Reso has no
// labeled loops, so "break"/"continue" always target the innermost frame;
// see §4.5's "innermost enclosing while" rule.
type loopFrame struct {
	condLabel string
	endLabel  string
}

// funcCtx is the state threaded through expression and statement lowering
// for a single function body: the module- and function-level IR builders,
// the scope resolver, the diagnostic sink, and the explicit loop-target
// stack that Break/Continue consult. One funcCtx is built per ast.FnDecl.
type funcCtx struct {
	mod      *module
	fn       *fn
	rf       *resolve.Func
	bag      *diag.Bag
	file     string
	ptrWidth int
	retType  types.Type

	loops []loopFrame
}

func (c *funcCtx) currentBlockLabel() string { return c.fn.curBlock }

func (c *funcCtx) setCurrentBlockLabel(label string) { c.fn.curBlock = label }

func (c *funcCtx) pushLoop(condLabel, endLabel string) {
	c.loops = append(c.loops, loopFrame{condLabel: condLabel, endLabel: endLabel})
}

func (c *funcCtx) popLoop() {
	c.loops = c.loops[:len(c.loops)-1]
}

func (c *funcCtx) currentLoop() (loopFrame, bool) {
	if len(c.loops) == 0 {
		return loopFrame{}, false
	}
	return c.loops[len(c.loops)-1], true
}

// Compile lowers every function declared across unit to textual LLVM IR.
// Symbol collection runs once over the whole unit first so forward and
// cross-file references resolve; if that pass alone produces errors,
// Compile stops there rather than attempting to lower bodies against an
// incomplete table. The returned ir is empty whenever bag.HasErrors(): per
// the error-handling design, a unit that fails to type-check produces no IR
// at all, only diagnostics.
func Compile(unit []Source, ptrWidth int) (ir string, warnings []diag.Warning, bag *diag.Bag) {
	bag = &diag.Bag{}

	files := make([]*ast.File, len(unit))
	for i, s := range unit {
		files[i] = s.File
	}
	tab := symbols.Collect(files, bag)
	if bag.HasErrors() {
		return "", nil, bag
	}

	mod := newModule()

	for _, src := range unit {
		for _, decl := range src.File.Fns {
			lowerFn(mod, src.Filename, decl, tab, bag, ptrWidth)
		}
	}

	if bag.HasErrors() {
		return "", bag.Warnings, bag
	}
	return mod.render(), bag.Warnings, bag
}

// lowerFn lowers one function declaration into the module, appending its
// text to mod.fns on success. On any lowering error the partial fn is
// simply discarded (never appended), matching the "finalize in full or
// abandon" contract documented on the fn type.
func lowerFn(mod *module, filename string, decl *ast.FnDecl, tab *symbols.Table, bag *diag.Bag, ptrWidth int) {
	retType, ok := types.Lookup(decl.ReturnType, ptrWidth)
	if !ok {
		bag.Errorf(position(filename, decl.Start), "unknown return type %s", decl.ReturnType)
		return
	}

	rf := resolve.NewFunc(filename, tab, bag)
	f := newFn(decl.Name)
	c := &funcCtx{mod: mod, fn: f, rf: rf, bag: bag, file: filename, ptrWidth: ptrWidth, retType: retType}

	rf.Push()
	paramDecls := make([]string, len(decl.Params))
	for i, p := range decl.Params {
		pt, ok := types.Lookup(p.Type, ptrWidth)
		if !ok {
			bag.Errorf(position(filename, p.Pos), "unknown parameter type %s", p.Type)
			rf.Pop()
			return
		}
		paramDecls[i] = paramOperand(pt, i)
		if _, ok := rf.Declare(p.Name, pt, p.Pos); !ok {
			rf.Pop()
			return
		}
	}

	f.label("entry")
	for i, p := range decl.Params {
		pt, _ := types.Lookup(p.Type, ptrWidth)
		bdg, _ := rf.Use(p.Name, p.Pos)
		f.emit(formatAlloca(bdg.Slot, pt))
		f.emit(formatParamStore(bdg.Slot, pt, i))
	}

	ok = lowerBlock(c, decl.Body)
	rf.Pop()
	if !ok {
		return
	}

	if !f.terminated {
		if retType.Equal(types.TUnit) {
			f.emit("ret %unit zeroinitializer")
		} else {
			bag.Errorf(position(filename, decl.End), "missing return statement")
			return
		}
	}

	header := funcHeader(decl.Name, paramDecls, retType)
	mod.addFunc(header + "\n" + f.buf.String() + "}\n")
}

func paramOperand(t types.Type, index int) string {
	return t.IRType() + " %arg" + itoa(index)
}

func formatAlloca(slot string, t types.Type) string {
	return "%" + slot + " = alloca " + t.IRType()
}

func formatParamStore(slot string, t types.Type, index int) string {
	return "store " + t.IRType() + " %arg" + itoa(index) + ", ptr %" + slot
}

func position(file string, p interface{ LineCol() (int, int) }) gotoken.Position {
	line, col := p.LineCol()
	return gotoken.Position{Filename: file, Line: line, Column: col}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
