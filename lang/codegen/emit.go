// Package codegen implements the Expression Lowerer, Statement Lowerer and
// IR Emitter: it walks a resolved function body and produces textual LLVM
// IR, driving lang/resolve inline as it goes, so scope resolution and
// lowering are a single pass here rather than two. The overall shape — a per-module builder holding one
// per-function builder at a time, an append-only instruction buffer, and
// counters for temporaries and labels — mirrors the pcomp/fcomp split a
// bytecode compiler uses to build a CFG of basic blocks; here the
// "bytecode" is LLVM IR text.
package codegen

import (
	"fmt"
	"strings"

	"github.com/reso-lang/reso-sub001/lang/types"
)

// module accumulates the whole unit's IR text: the fixed preamble, any
// string-literal constants discovered while lowering, and one function
// definition per Reso function.
type module struct {
	fns     []string
	strs    []string // already-rendered "@.strN = ..." globals
	strSeen map[string]string
}

func newModule() *module {
	return &module{strSeen: make(map[string]string)}
}

// internString interns s as a private global constant and returns the
// pointer operand referring to it. Reso's String type is opaque (only error
// cases reference it, per the type system), so this exists purely so a
// StringLit expression lowers to *something* rather than panicking.
func (m *module) internString(s string) string {
	if name, ok := m.strSeen[s]; ok {
		return name
	}
	name := fmt.Sprintf("@.str%d", len(m.strs))
	n := len(s) + 1
	m.strs = append(m.strs, fmt.Sprintf("%s = private unnamed_addr constant [%d x i8] c\"%s\\00\"", name, n, llvmEscape(s)))
	m.strSeen[s] = name
	return name
}

// llvmEscape renders s the way LLVM's textual IR expects inside a c"..."
// string constant: printable ASCII passes through unchanged, everything
// else (including '"' and '\') becomes a two-digit hex escape "\XX".
func llvmEscape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c < 0x7f && c != '"' && c != '\\' {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "\\%02X", c)
	}
	return b.String()
}

func (m *module) addFunc(text string) {
	m.fns = append(m.fns, text)
}

// render assembles the final module text: header, %unit declaration,
// interned string constants, then every function definition in source
// order.
func (m *module) render() string {
	var b strings.Builder
	b.WriteString("; ModuleID = 'reso'\n")
	b.WriteString(`target datalayout = "e-m:e-p270:32:32-p271:32:32-p272:64:64-i64:64-f80:128-n8:16:32:64-S128"` + "\n")
	b.WriteString(`target triple = "x86_64-unknown-linux-gnu"` + "\n\n")
	b.WriteString("%unit = type {}\n")
	if len(m.strs) > 0 {
		b.WriteString("\n")
		for _, s := range m.strs {
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
	for _, fn := range m.fns {
		b.WriteString("\n")
		b.WriteString(fn)
	}
	return b.String()
}

// fn builds the textual IR for a single function. Instructions accumulate
// in buf as an append-only log; on any error the caller simply discards the
// fn without calling render, so a partial function never leaks into the
// module (per the resource-model contract: a function's builder is either
// finalized in full or abandoned).
type fn struct {
	name string
	buf  strings.Builder

	tempN      int
	labelN     map[string]int
	terminated bool   // true once the current block ended in br/ret
	curBlock   string // label of the basic block currently being appended to
}

func newFn(name string) *fn {
	return &fn{name: name, labelN: make(map[string]int), curBlock: "entry"}
}

// emit appends one already-formatted instruction line, indented to match
// the rest of the function body.
func (f *fn) emit(line string) {
	f.buf.WriteString("  ")
	f.buf.WriteString(line)
	f.buf.WriteByte('\n')
}

// label opens a new basic block. It never marks the block terminated: the
// first instruction following it decides that.
func (f *fn) label(name string) {
	f.buf.WriteString(name)
	f.buf.WriteString(":\n")
	f.terminated = false
	f.curBlock = name
}

// freshTemp returns the next anonymous numbered SSA register, LLVM-style
// (%1, %2, ...). Named values (variable loads, the ternary result) use a
// more descriptive name instead; see expr.go.
func (f *fn) freshTemp() string {
	f.tempN++
	return fmt.Sprintf("%%%d", f.tempN)
}

// freshLabel returns a unique label for the given base name ("if_then",
// "while_cond", ...), suffixing with an incrementing count starting at the
// second use so the first occurrence of each label in a function keeps the
// bare spec-mandated spelling (e.g. the outermost while's labels are
// exactly "while_cond"/"while_body"/"while_end").
func (f *fn) freshLabel(base string) string {
	f.labelN[base]++
	if n := f.labelN[base]; n > 1 {
		return fmt.Sprintf("%s%d", base, n)
	}
	return base
}

// header renders "define <ret> @<name>(<params>) {".
func funcHeader(name string, params []string, ret types.Type) string {
	return fmt.Sprintf("define %s @%s(%s) {", ret.IRType(), name, strings.Join(params, ", "))
}
