package driver

import (
	"github.com/reso-lang/reso-sub001/lang/ast"
	"github.com/reso-lang/reso-sub001/lang/codegen"
	"github.com/reso-lang/reso-sub001/lang/token"
)

// DemoUnit builds the fixed placeholder program this driver exercises in
// lieu of a real parser: the §8 scenario S1 counting loop,
//
//	var i: i32 = 0
//	while i < 5: i = i + 1
//
// as a single fileprivate "main" function returning unit.
func DemoUnit() []codegen.Source {
	pos := token.MakePos(1, 1)

	body := &ast.FnDecl{
		Name:       "main",
		Vis:        ast.Fileprivate,
		ReturnType: "()",
		Start:      pos,
		End:        pos,
		Body: &ast.Block{
			Start: pos,
			End:   pos,
			Stmts: []ast.Stmt{
				&ast.VarDecl{
					Name:         "i",
					DeclaredType: "i32",
					Init:         &ast.IntLit{Value: 0, Start: pos, End: pos},
					Start:        pos,
					End:          pos,
				},
				&ast.While{
					Cond: &ast.BinOp{
						Op:    token.LT,
						Left:  &ast.VarRef{Name: "i", Start: pos, End: pos},
						Right: &ast.IntLit{Value: 5, Start: pos, End: pos},
						Start: pos, End: pos,
					},
					Body: &ast.Block{
						Start: pos,
						End:   pos,
						Stmts: []ast.Stmt{
							&ast.Assign{
								Name: "i",
								Value: &ast.BinOp{
									Op:    token.ADD,
									Left:  &ast.VarRef{Name: "i", Start: pos, End: pos},
									Right: &ast.IntLit{Value: 1, Start: pos, End: pos},
									Start: pos, End: pos,
								},
								Start: pos, End: pos,
							},
						},
					},
					Start: pos, End: pos,
				},
				&ast.Return{Start: pos, End: pos},
			},
		},
	}

	return []codegen.Source{
		{Filename: "demo.reso", File: &ast.File{Name: "demo.reso", Fns: []*ast.FnDecl{body}}},
	}
}
