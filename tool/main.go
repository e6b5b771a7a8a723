// Command adtGen generates the marker interfaces of a closed sum type from a
// small declaration file:
//
//	type Expression extends Node = Numeric | Variable | BinaryOp;
//
// Each sum becomes an interface with an is_<Sum>() method, embedding its
// parent if it extends one, and every member gets a pointer-receiver marker.
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type TypeDecls struct {
	Declarations []*Declaration `@@*`
}

type Declaration struct {
	Name    string   `"type" @Ident`
	Extends *string  `("extends" @Ident)?`
	Members []string `"=" @Ident ("|" @Ident)* ";"`
}

func GenerateDecls(pkgname string, t *TypeDecls) string {
	f := NewFile(pkgname)
	f.HeaderComment("Code generated by adtGen from nodes.adt. DO NOT EDIT.")

	for _, decl := range t.Declarations {
		var methods []Code
		if decl.Extends != nil {
			methods = append(methods, Id(*decl.Extends))
		}
		methods = append(methods, Id("is_"+decl.Name).Params())
		f.Type().Id(decl.Name).Interface(methods...)

		for _, member := range decl.Members {
			f.Func().Params(Id("v").Op("*").Id(member)).Id("is_" + decl.Name).Params().Block()
		}
	}

	return fmt.Sprintf("%#v", f)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: adtGen <input.adt> <output.go> <package>")
		os.Exit(2)
	}

	parser := participle.MustBuild(&TypeDecls{})

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	ast := TypeDecls{}
	err = parser.ParseBytes(inData, &ast)
	if err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateDecls(pkgname, &ast)), 0644)
	if err != nil {
		panic(err)
	}
}
