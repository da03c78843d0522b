// Package typeguard provides checked calls for Go functions.
// A checked call validates dynamically-typed arguments against a function's
// declared parameter types before invoking it, and validates the results
// against its declared result types before returning them.
//
// This is the public API entry point. Implementation lives in internal/core.
package typeguard

import (
	"github.com/toejough/typeguard/internal/core"
)

// ReturnParam is the Param of a TypeMismatchError raised for a result.
const ReturnParam = core.ReturnParam

// Errors re-exported from internal/core.
var (
	ErrArity          = core.ErrArity
	ErrDuplicateFunc  = core.ErrDuplicateFunc
	ErrDuplicateParam = core.ErrDuplicateParam
	ErrNotFunc        = core.ErrNotFunc
	ErrTypeMismatch   = core.ErrTypeMismatch
	ErrUnknownFunc    = core.ErrUnknownFunc
	ErrUnknownParam   = core.ErrUnknownParam
)

// ArityError reports a call made with the wrong number of arguments.
type ArityError = core.ArityError

// Func is a function wrapped for checked calls.
type Func = core.Func

// Matcher narrows a declared type. gomega matchers satisfy it.
type Matcher = core.Matcher

// Option configures how a function is wrapped.
type Option = core.Option

// Param is one declared parameter of a checked function.
type Param = core.Param

// Registry holds checked functions by name.
type Registry = core.Registry

// Result is one declared result of a checked function.
type Result = core.Result

// Signature is the declared shape of a checked function.
type Signature = core.Signature

// TypeMismatchError reports a value incompatible with its declared type.
type TypeMismatchError = core.TypeMismatchError

// Call1 calls f and returns its first result as an R.
func Call1[R any](f *Func, args ...any) (R, error) {
	return core.Call1[R](f, args...)
}

// Checked returns a function of the same type as fn that checks every call.
//
// Usage:
//
//	multiply := typeguard.Checked(func(x, y any) (any, error) {
//		return x.(int) * y.(int), nil
//	}, typeguard.Named("x", "y"),
//		typeguard.Declare("x", match.BeType[int]()),
//		typeguard.Declare("y", match.BeType[int]()))
//
//	_, err := multiply("hello", 3) // err is a *TypeMismatchError naming x
func Checked[F any](fn F, opts ...Option) F {
	return core.Checked(fn, opts...)
}

// Declare narrows the declared type of the named parameter with a matcher.
func Declare(param string, matcher Matcher) Option {
	return core.Declare(param, matcher)
}

// DeclareResult narrows the declared type of the result at index.
func DeclareResult(index int, matcher Matcher) Option {
	return core.DeclareResult(index, matcher)
}

// MatchDeclared checks actual against a declared matcher.
func MatchDeclared(actual any, matcher Matcher) (bool, string) {
	return core.MatchDeclared(actual, matcher)
}

// MustWrap is Wrap, panicking on error.
func MustWrap(fn any, opts ...Option) *Func {
	return core.MustWrap(fn, opts...)
}

// Named gives the function's parameters names, in order.
func Named(names ...string) Option {
	return core.Named(names...)
}

// NewRegistry creates an empty registry whose options apply to every
// function registered with it.
func NewRegistry(opts ...Option) *Registry {
	return core.NewRegistry(opts...)
}

// WithCoercion allows lossless conversion of decoded numeric arguments.
func WithCoercion() Option {
	return core.WithCoercion()
}

// WithName overrides the function name used in error messages.
func WithName(name string) Option {
	return core.WithName(name)
}

// Wrap prepares fn for checked calls.
//
// Usage:
//
//	multiply := typeguard.MustWrap(func(x, y int) int { return x * y },
//		typeguard.WithName("multiply"), typeguard.Named("x", "y"))
//
//	results, err := multiply.Call(3, 4)       // results == []any{12}
//	_, err = multiply.Call("hello", 3)        // errors.Is(err, typeguard.ErrTypeMismatch)
func Wrap(fn any, opts ...Option) (*Func, error) {
	return core.Wrap(fn, opts...)
}
