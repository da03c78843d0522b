// Package core implements checked calls: invoking a function with
// dynamically-typed arguments only after every argument has been validated
// against the function's declared parameter types, and validating the results
// against the declared result types before handing them back.
package core

import (
	"fmt"
	"reflect"
	"slices"
)

// Func is a function wrapped for checked calls. It is immutable and safe for
// concurrent use.
type Func struct {
	fn     reflect.Value
	sig    Signature
	coerce bool
}

// Wrap prepares fn for checked calls. fn must be a non-nil function.
func Wrap(fn any, opts ...Option) (*Func, error) {
	value := reflect.ValueOf(fn)
	if value.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: received a %s", ErrNotFunc, value.Kind())
	}

	if value.IsNil() {
		return nil, fmt.Errorf("%w: received a nil %s", ErrNotFunc, value.Type())
	}

	cfg := newConfig(opts)

	name := cfg.name
	if name == "" {
		name = funcName(value)
	}

	sig, err := newSignature(name, value.Type(), cfg)
	if err != nil {
		return nil, err
	}

	return &Func{fn: value, sig: sig, coerce: cfg.coerce}, nil
}

// MustWrap is Wrap, panicking on error. It suits package-level declarations.
func MustWrap(fn any, opts ...Option) *Func {
	checked, err := Wrap(fn, opts...)
	if err != nil {
		panic(err)
	}

	return checked
}

// Call validates args against the declared parameter types, invokes the
// function, validates its results against the declared result types, and
// returns them unchanged. The function is not invoked if any argument fails.
func (f *Func) Call(args ...any) ([]any, error) {
	in, err := f.bind(args)
	if err != nil {
		return nil, err
	}

	out := f.fn.Call(in)

	results := make([]any, len(out))
	for i, value := range out {
		results[i] = value.Interface()
	}

	err = f.CheckResults(results...)
	if err != nil {
		return nil, err
	}

	return results, nil
}

// CheckArgs validates args against the declared parameter types without
// invoking the function.
func (f *Func) CheckArgs(args ...any) error {
	_, err := f.bind(args)
	return err
}

// CheckResults validates results against the declared result types.
func (f *Func) CheckResults(results ...any) error {
	if len(results) != len(f.sig.Results) {
		return fmt.Errorf("%w: %s returns %d value(s), got %d", ErrArity, f.sig.Name, len(f.sig.Results), len(results))
	}

	for index, result := range f.sig.Results {
		_, err := f.check(ReturnParam, index, result.Type, result.Declared, results[index], false)
		if err != nil {
			return err
		}
	}

	return nil
}

// Name returns the function name used in error messages.
func (f *Func) Name() string {
	return f.sig.Name
}

// Signature returns a copy of the declared shape of the function.
func (f *Func) Signature() Signature {
	sig := f.sig
	sig.Params = slices.Clone(f.sig.Params)
	sig.Results = slices.Clone(f.sig.Results)

	return sig
}

// bind validates args in parameter order and converts them to the values the
// function is invoked with.
func (f *Func) bind(args []any) ([]reflect.Value, error) {
	err := f.checkArity(len(args))
	if err != nil {
		return nil, err
	}

	in := make([]reflect.Value, len(args))

	for index, arg := range args {
		param := f.sig.paramAt(index)

		value, err := f.check(param.Name, index, param.Type, param.Declared, arg, f.coerce)
		if err != nil {
			return nil, err
		}

		in[index] = value
	}

	return in, nil
}

// check validates a single value against a declared type and matcher, and
// returns the value to bind.
func (f *Func) check(
	name string, index int, declaredType reflect.Type, declared Matcher, value any, allowCoercion bool,
) (reflect.Value, error) {
	mismatch := func(reason string) error {
		declaredString := typeString(declaredType)
		if declared != nil {
			declaredString = describeMatcher(declared)
		}

		return &TypeMismatchError{
			Func:     f.sig.Name,
			Param:    name,
			Index:    index,
			Declared: declaredString,
			Actual:   valueTypeString(value),
			Value:    value,
			Reason:   reason,
		}
	}

	var bound reflect.Value

	switch {
	case value == nil:
		// if the declared type is nillable, an untyped nil is ok.
		if !isNillableKind(declaredType.Kind()) {
			return reflect.Value{}, mismatch("")
		}

		bound = reflect.Zero(declaredType)
	case allowCoercion:
		if coerced, ok := coerce(value, declaredType); ok {
			bound = coerced
			value = coerced.Interface()

			break
		}

		fallthrough
	default:
		bound = reflect.ValueOf(value)
		if !bound.Type().AssignableTo(declaredType) {
			return reflect.Value{}, mismatch("")
		}
	}

	if declared != nil {
		ok, reason := MatchDeclared(value, declared)
		if !ok {
			return reflect.Value{}, mismatch(reason)
		}
	}

	return bound, nil
}

func (f *Func) checkArity(got int) error {
	want := len(f.sig.Params)

	if f.sig.Variadic {
		if got >= want-1 {
			return nil
		}

		return &ArityError{Func: f.sig.Name, Want: want - 1, Got: got, Variadic: true}
	}

	if got == want {
		return nil
	}

	return &ArityError{Func: f.sig.Name, Want: want, Got: got}
}

// Call1 calls f and returns its first result as an R.
func Call1[R any](f *Func, args ...any) (R, error) {
	var zero R

	results, err := f.Call(args...)
	if err != nil {
		return zero, err
	}

	if len(results) == 0 {
		return zero, fmt.Errorf("%w: %s returns no values", ErrArity, f.sig.Name)
	}

	if results[0] == nil {
		return zero, nil
	}

	result, ok := results[0].(R)
	if !ok {
		return zero, &TypeMismatchError{
			Func:     f.sig.Name,
			Param:    ReturnParam,
			Declared: typeString(reflect.TypeFor[R]()),
			Actual:   valueTypeString(results[0]),
			Value:    results[0],
		}
	}

	return result, nil
}

// Checked returns a function of the same type as fn that validates every call
// the way Func.Call does. On a mismatch, if fn's last result is an error the
// mismatch is returned there with zero values for the other results;
// otherwise the wrapper panics with the *TypeMismatchError.
func Checked[F any](fn F, opts ...Option) F {
	checked := MustWrap(fn, opts...)
	fnType := checked.fn.Type()
	returnsErr := fnType.NumOut() > 0 && fnType.Out(fnType.NumOut()-1) == errorType

	wrapped := reflect.MakeFunc(fnType, func(in []reflect.Value) []reflect.Value {
		out, err := checked.callValues(in)
		if err == nil {
			return out
		}

		if !returnsErr {
			panic(err)
		}

		out = make([]reflect.Value, fnType.NumOut())
		for i := range out {
			out[i] = reflect.Zero(fnType.Out(i))
		}

		out[len(out)-1] = reflect.ValueOf(&err).Elem()

		return out
	})

	typed, _ := wrapped.Interface().(F)

	return typed
}

// callValues is Call for arguments that arrive as reflect values, as they do
// in a MakeFunc implementation, where a variadic tail arrives as one slice.
func (f *Func) callValues(in []reflect.Value) ([]reflect.Value, error) {
	args := make([]any, 0, len(in))

	for i, value := range in {
		if f.sig.Variadic && i == len(in)-1 {
			for j := range value.Len() {
				args = append(args, value.Index(j).Interface())
			}

			continue
		}

		args = append(args, value.Interface())
	}

	bound, err := f.bind(args)
	if err != nil {
		return nil, err
	}

	out := f.fn.Call(bound)

	for index, result := range f.sig.Results {
		_, err := f.check(ReturnParam, index, result.Type, result.Declared, out[index].Interface(), false)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// unexported variables.
var (
	//nolint:gochecknoglobals // reflect type lookup, computed once
	errorType = reflect.TypeFor[error]()
)
