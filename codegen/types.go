package codegen

import (
	"github.com/llir/llvm/ir/types"
	"github.com/pontaoski/minipl/symbols"
)

var (
	Int    = types.I32
	Bool   = types.I1
	Byte   = types.I8
	Size   = types.I64
	String = types.NewPointer(Byte)
)

// llvmType maps a MiniPL type name to its native representation.
func llvmType(name string) types.Type {
	switch name {
	case symbols.TypeInt:
		return Int
	case symbols.TypeString:
		return String
	}
	return Bool
}

func typeName(t types.Type) string {
	switch {
	case t.Equal(Int):
		return symbols.TypeInt
	case t.Equal(String):
		return symbols.TypeString
	case t.Equal(Bool):
		return symbols.TypeBool
	}
	return t.String()
}
