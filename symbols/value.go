package symbols

import "strconv"

// Value is a tagged MiniPL runtime value. A nil Value means "absent": a
// reserved type name, or an expression the checker could not resolve.
type Value interface {
	is_Value()
	String() string
}

type Int int32

func (v Int) is_Value() {}

func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }

type Str string

func (v Str) is_Value() {}

func (v Str) String() string { return string(v) }

type Bool bool

func (v Bool) is_Value() {}

func (v Bool) String() string { return strconv.FormatBool(bool(v)) }

const (
	TypeInt    = "int"
	TypeString = "string"
	TypeBool   = "bool"
)

// TypeOf names the dynamic type of v, or "" when v is absent.
func TypeOf(v Value) string {
	switch v.(type) {
	case Int:
		return TypeInt
	case Str:
		return TypeString
	case Bool:
		return TypeBool
	}
	return ""
}

// Zero is the value a declaration without initializer starts with.
func Zero(typeName string) Value {
	switch typeName {
	case TypeInt:
		return Int(0)
	case TypeString:
		return Str("")
	}
	return Bool(false)
}

// Compatible reports whether v may be stored in a variable of the given
// type. Absent values are always accepted so one failure is reported once.
func Compatible(v Value, typeName string) bool {
	return v == nil || TypeOf(v) == typeName
}
