package core

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Param is one declared parameter of a checked function.
type Param struct {
	Name     string
	Index    int
	Type     reflect.Type // for a variadic parameter, the element type
	Declared Matcher      // optional narrowing of Type
}

// DeclaredString names the type an argument for p must have.
func (p Param) DeclaredString() string {
	if p.Declared != nil {
		return describeMatcher(p.Declared)
	}

	return typeString(p.Type)
}

// Result is one declared result of a checked function.
type Result struct {
	Index    int
	Type     reflect.Type
	Declared Matcher
}

// DeclaredString names the type the result must have.
func (r Result) DeclaredString() string {
	if r.Declared != nil {
		return describeMatcher(r.Declared)
	}

	return typeString(r.Type)
}

// Signature is the declared shape of a checked function: its name, ordered
// parameters, and ordered results. It is immutable once built.
type Signature struct {
	Name     string
	Params   []Param
	Results  []Result
	Variadic bool
}

// String renders the signature in Go syntax, with declared matchers in place
// of the types they narrow.
func (s Signature) String() string {
	params := make([]string, len(s.Params))

	for i, param := range s.Params {
		declared := param.DeclaredString()
		if s.Variadic && i == len(s.Params)-1 {
			declared = "..." + declared
		}

		params[i] = param.Name + " " + declared
	}

	results := make([]string, len(s.Results))
	for i, result := range s.Results {
		results[i] = result.DeclaredString()
	}

	out := "func " + s.Name + "(" + strings.Join(params, ", ") + ")"

	switch len(results) {
	case 0:
	case 1:
		out += " " + results[0]
	default:
		out += " (" + strings.Join(results, ", ") + ")"
	}

	return out
}

// paramAt returns the parameter an argument at index binds to, with its name
// indexed when it is one of several variadic arguments.
func (s Signature) paramAt(index int) Param {
	last := len(s.Params) - 1
	if !s.Variadic || index < last {
		return s.Params[index]
	}

	param := s.Params[last]
	param.Name = param.Name + "[" + strconv.Itoa(index-last) + "]"
	param.Index = index

	return param
}

// newSignature reads the declared shape of fnType and applies cfg to it.
func newSignature(name string, fnType reflect.Type, cfg config) (Signature, error) {
	if len(cfg.names) > fnType.NumIn() {
		return Signature{}, fmt.Errorf("%w: %s takes %d parameter(s) but %d names were given",
			ErrUnknownParam, name, fnType.NumIn(), len(cfg.names))
	}

	sig := Signature{
		Name:     name,
		Params:   make([]Param, fnType.NumIn()),
		Results:  make([]Result, fnType.NumOut()),
		Variadic: fnType.IsVariadic(),
	}

	byName := make(map[string]int, fnType.NumIn())

	for index := range sig.Params {
		paramType := fnType.In(index)
		if sig.Variadic && index == fnType.NumIn()-1 {
			paramType = paramType.Elem()
		}

		paramName := "arg" + strconv.Itoa(index)
		if index < len(cfg.names) && cfg.names[index] != "" {
			paramName = cfg.names[index]
		}

		if _, taken := byName[paramName]; taken {
			return Signature{}, fmt.Errorf("%w: %s names parameter %q twice", ErrDuplicateParam, name, paramName)
		}

		sig.Params[index] = Param{Name: paramName, Index: index, Type: paramType}
		byName[paramName] = index
	}

	for paramName, matcher := range cfg.declared {
		index, ok := byName[paramName]
		if !ok {
			return Signature{}, fmt.Errorf("%w: %s has no parameter %q", ErrUnknownParam, name, paramName)
		}

		sig.Params[index].Declared = matcher
	}

	for index := range sig.Results {
		sig.Results[index] = Result{Index: index, Type: fnType.Out(index)}
	}

	for index, matcher := range cfg.declaredResults {
		if index < 0 || index >= len(sig.Results) {
			return Signature{}, fmt.Errorf("%w: %s has no result %d", ErrUnknownParam, name, index)
		}

		sig.Results[index].Declared = matcher
	}

	return sig, nil
}
