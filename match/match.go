// Package match provides declared-type matchers for typeguard's Declare and
// DeclareResult options. They express the annotation forms a bare Go type
// cannot: unions, optionals, typed containers behind `any`, and predicates.
// This package is designed to be dot-imported alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/typeguard/match"
//	)
//
//	typeguard.Declare("id", BeAnyOf(BeType[int](), BeType[string]()))
//	typeguard.Declare("count", BeNumerically(">", 0))
//
// Matchers hold no per-call state, so they are safe to share between
// concurrent checked calls.
package match

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Matcher defines the interface for declared-type matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// Exported variables.
var (
	// BeAny is a matcher that matches any value.
	//
	//nolint:gochecknoglobals // Intentional exported constant-like value
	BeAny Matcher = anyMatcher{}

	// BeNilValue matches untyped nil and typed nil pointers, maps, slices, and the like.
	//
	//nolint:gochecknoglobals // Intentional exported constant-like value
	BeNilValue Matcher = nilMatcher{}
)

// BeAnyOf returns a matcher for a union of declared types: the value must
// satisfy at least one of matchers.
func BeAnyOf(matchers ...Matcher) Matcher {
	return unionMatcher{options: matchers}
}

// BeMapOf returns a matcher for a map whose keys and values satisfy key and value.
func BeMapOf(key, value Matcher) Matcher {
	return mapMatcher{key: key, value: value}
}

// BeOptional returns a matcher for a value that is either nil or satisfies matcher.
func BeOptional(matcher Matcher) Matcher {
	return unionMatcher{options: []Matcher{matcher, BeNilValue}}
}

// BeSliceOf returns a matcher for a slice or array whose elements satisfy elem.
func BeSliceOf(elem Matcher) Matcher {
	return sliceMatcher{elem: elem}
}

// BeType returns a matcher for values assignable to T. An untyped nil matches
// when T is nillable.
func BeType[T any]() Matcher {
	return typeMatcher{declared: reflect.TypeFor[T]()}
}

// Satisfying returns a matcher that uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
//
// Example:
//
//	typeguard.Declare("x", Satisfying(func(x int) error {
//	    if x < 0 { return fmt.Errorf("expected positive, got %d", x) }
//	    return nil
//	}))
func Satisfying[T any](predicate func(T) error) Matcher {
	return satisfyMatcher[T]{predicate: predicate}
}

// unexported variables.
var (
	errTypeMismatch = errors.New("type mismatch")
)

// anyMatcher is the implementation of the BeAny matcher.
type anyMatcher struct{}

// FailureMessage returns an empty string since BeAny always matches.
func (anyMatcher) FailureMessage(any) string {
	return ""
}

// Match always returns true - matches any value.
func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

func (anyMatcher) String() string {
	return "any"
}

type mapMatcher struct {
	key, value Matcher
}

func (m mapMatcher) FailureMessage(actual any) string {
	rv := reflect.ValueOf(actual)
	if rv.Kind() != reflect.Map {
		return fmt.Sprintf("expected %s, got %s", m, typeOf(actual))
	}

	iter := rv.MapRange()
	for iter.Next() {
		key, value := iter.Key().Interface(), iter.Value().Interface()

		if !matches(m.key, key) {
			return fmt.Sprintf("key %#v: %s", key, failure(m.key, key))
		}

		if !matches(m.value, value) {
			return fmt.Sprintf("value at key %#v: %s", key, failure(m.value, value))
		}
	}

	return fmt.Sprintf("expected %s, got %s", m, typeOf(actual))
}

func (m mapMatcher) Match(actual any) (bool, error) {
	rv := reflect.ValueOf(actual)
	if rv.Kind() != reflect.Map {
		return false, nil
	}

	iter := rv.MapRange()
	for iter.Next() {
		if !matches(m.key, iter.Key().Interface()) || !matches(m.value, iter.Value().Interface()) {
			return false, nil
		}
	}

	return true, nil
}

func (m mapMatcher) String() string {
	return "map[" + describe(m.key) + "]" + describe(m.value)
}

type nilMatcher struct{}

func (nilMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected nil, got %s", typeOf(actual))
}

func (nilMatcher) Match(actual any) (bool, error) {
	if actual == nil {
		return true, nil
	}

	rv := reflect.ValueOf(actual)

	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil(), nil
	default:
		return false, nil
	}
}

func (nilMatcher) String() string {
	return "nil"
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
}

func (m satisfyMatcher[T]) FailureMessage(actual any) string {
	val, ok := actual.(T)
	if !ok {
		return fmt.Sprintf("expected %s, got %s", typeName(reflect.TypeFor[T]()), typeOf(actual))
	}

	if err := m.predicate(val); err != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, err)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)
	if !ok {
		return false, fmt.Errorf("%w: expected %s, got %s", errTypeMismatch, typeName(reflect.TypeFor[T]()), typeOf(actual))
	}

	return m.predicate(val) == nil, nil
}

func (m satisfyMatcher[T]) String() string {
	return typeName(reflect.TypeFor[T]()) + " (satisfying predicate)"
}

type sliceMatcher struct {
	elem Matcher
}

func (m sliceMatcher) FailureMessage(actual any) string {
	rv := reflect.ValueOf(actual)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Sprintf("expected %s, got %s", m, typeOf(actual))
	}

	for i := range rv.Len() {
		elem := rv.Index(i).Interface()
		if !matches(m.elem, elem) {
			return fmt.Sprintf("element %d: %s", i, failure(m.elem, elem))
		}
	}

	return fmt.Sprintf("expected %s, got %s", m, typeOf(actual))
}

func (m sliceMatcher) Match(actual any) (bool, error) {
	rv := reflect.ValueOf(actual)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false, nil
	}

	for i := range rv.Len() {
		if !matches(m.elem, rv.Index(i).Interface()) {
			return false, nil
		}
	}

	return true, nil
}

func (m sliceMatcher) String() string {
	return "[]" + describe(m.elem)
}

type typeMatcher struct {
	declared reflect.Type
}

func (m typeMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected %s, got %s", m, typeOf(actual))
}

func (m typeMatcher) Match(actual any) (bool, error) {
	if actual == nil {
		switch m.declared.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return true, nil
		default:
			return false, nil
		}
	}

	return reflect.TypeOf(actual).AssignableTo(m.declared), nil
}

func (m typeMatcher) String() string {
	return typeName(m.declared)
}

type unionMatcher struct {
	options []Matcher
}

func (m unionMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected %s, got %s", m, typeOf(actual))
}

func (m unionMatcher) Match(actual any) (bool, error) {
	for _, option := range m.options {
		if matches(option, actual) {
			return true, nil
		}
	}

	return false, nil
}

func (m unionMatcher) String() string {
	names := make([]string, len(m.options))
	for i, option := range m.options {
		names[i] = describe(option)
	}

	return strings.Join(names, " | ")
}

// describe names the declared type a matcher stands for.
func describe(matcher Matcher) string {
	if stringer, ok := matcher.(fmt.Stringer); ok {
		return stringer.String()
	}

	return fmt.Sprintf("%T", matcher)
}

// failure explains why matcher rejected actual.
func failure(matcher Matcher, actual any) string {
	if _, err := matcher.Match(actual); err != nil {
		return err.Error()
	}

	return matcher.FailureMessage(actual)
}

// matches treats a matcher error as a non-match.
func matches(matcher Matcher, actual any) bool {
	ok, err := matcher.Match(actual)
	return err == nil && ok
}

// typeName names a type the way it reads in Go source.
func typeName(t reflect.Type) string {
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 && t.Name() == "" {
		return "any"
	}

	return t.String()
}

// typeOf names the runtime type of actual.
func typeOf(actual any) string {
	if actual == nil {
		return "nil"
	}

	return typeName(reflect.TypeOf(actual))
}
