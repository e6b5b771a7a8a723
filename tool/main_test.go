package main

import (
	"strings"
	"testing"

	"github.com/alecthomas/participle"
)

func TestGenerateDecls(t *testing.T) {
	parser := participle.MustBuild(&TypeDecls{})
	ast := TypeDecls{}
	err := parser.ParseString(`
type Node = A | B;
type Expression extends Node = A;
`, &ast)
	if err != nil {
		t.Fatal(err)
	}

	if len(ast.Declarations) != 2 || ast.Declarations[1].Extends == nil || *ast.Declarations[1].Extends != "Node" {
		t.Fatalf("unexpected parse: %#v", ast.Declarations)
	}

	src := GenerateDecls("ast", &ast)
	for _, want := range []string{
		"package ast",
		"type Node interface",
		"is_Node()",
		"func (v *A) is_Node() {}",
		"func (v *B) is_Node() {}",
		"func (v *A) is_Expression() {}",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source is missing %q:\n%s", want, src)
		}
	}
}
