package core

import (
	"errors"
	"fmt"
)

// ReturnParam is the Param value of a TypeMismatchError raised for a result.
const ReturnParam = "return"

// Exported variables.
var (
	ErrArity          = errors.New("arity mismatch")
	ErrDuplicateFunc  = errors.New("function already registered")
	ErrDuplicateParam = errors.New("duplicate parameter name")
	ErrNotFunc        = errors.New("not a function")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrUnknownFunc    = errors.New("unknown function")
	ErrUnknownParam   = errors.New("unknown parameter")
)

// ArityError reports a call made with the wrong number of arguments.
type ArityError struct {
	Func     string
	Want     int
	Got      int
	Variadic bool
}

func (e *ArityError) Error() string {
	qualifier := ""
	if e.Variadic {
		qualifier = "at least "
	}

	return fmt.Sprintf("%s: %s takes %s%d argument(s), got %d", ErrArity, e.Func, qualifier, e.Want, e.Got)
}

func (e *ArityError) Unwrap() error { return ErrArity }

// TypeMismatchError reports a value whose runtime type is incompatible with
// the declared type of the parameter or result it was bound to.
type TypeMismatchError struct {
	Func     string // qualified name of the checked function
	Param    string // parameter name, or ReturnParam for results
	Index    int    // argument or result position
	Declared string // declared type or matcher description
	Actual   string // runtime type of Value, or "nil"
	Value    any
	Reason   string // matcher failure message, if a declared matcher rejected the value
}

func (e *TypeMismatchError) Error() string {
	where := fmt.Sprintf("argument %q", e.Param)
	if e.Param == ReturnParam {
		where = fmt.Sprintf("return value %d", e.Index)
	}

	msg := fmt.Sprintf("%s: %s of %s: declared %s, got %s", ErrTypeMismatch, where, e.Func, e.Declared, e.Actual)

	if e.Value != nil {
		msg += fmt.Sprintf(" (%#v)", e.Value)
	}

	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }
