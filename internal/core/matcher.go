package core

import (
	"fmt"
)

// Matcher narrows a declared type beyond what the Go type expresses.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// MatchDeclared checks actual against a declared matcher.
// Returns (success, reason). If success is true, reason is empty.
func MatchDeclared(actual any, matcher Matcher) (bool, string) {
	success, err := matcher.Match(actual)
	if err != nil {
		return false, err.Error()
	}

	if !success {
		return false, matcher.FailureMessage(actual)
	}

	return true, ""
}

// describeMatcher names the declared type a matcher stands for. Matchers from
// the match package describe themselves; anything else is named by its type.
func describeMatcher(matcher Matcher) string {
	if stringer, ok := matcher.(fmt.Stringer); ok {
		return stringer.String()
	}

	return fmt.Sprintf("%T", matcher)
}
