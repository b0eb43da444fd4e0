package program

import "fmt"

// BoolVar is a Boolean-valued program variable, global or module-local.
type BoolVar struct {
	Name string
	Init bool
}

// Kind reports KindBool, satisfying the Variable interface.
func (BoolVar) Kind() VarKind { return KindBool }

// VarName returns the variable's declared name.
func (v BoolVar) VarName() string { return v.Name }

// IntVar is a bounded-integer-valued program variable. Lo/Hi must already be
// numerically resolved constants; unresolved symbolic constants are an
// UndefinedConstant error (spec.md §7), not something this type represents.
type IntVar struct {
	Name string
	Lo   int
	Hi   int
	Init int
}

// Kind reports KindInt, satisfying the Variable interface.
func (IntVar) Kind() VarKind { return KindInt }

// VarName returns the variable's declared name.
func (v IntVar) VarName() string { return v.Name }

// Validate checks the integer variable's bounds and initial value are
// internally consistent.
func (v IntVar) Validate() error {
	if v.Hi < v.Lo {
		return fmt.Errorf("program: int var %q has hi (%d) < lo (%d)", v.Name, v.Hi, v.Lo)
	}
	if v.Init < v.Lo || v.Init > v.Hi {
		return fmt.Errorf("program: int var %q has init %d outside [%d, %d]", v.Name, v.Init, v.Lo, v.Hi)
	}
	return nil
}

// Variable is the common surface shared by BoolVar and IntVar, sufficient
// for S1 allocation to walk a mixed variable list without a type switch at
// every call site.
type Variable interface {
	Kind() VarKind
	VarName() string
}
