// Package match provides matchers and predicate helpers for stunt call
// patterns. The Matcher interface is compatible with gomega matchers via
// duck typing, so gomega matchers can drive pattern matching directly:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    "github.com/stuntdouble/stunt/match"
//	)
//
//	fetch.Call(match.To[Query](BeNumerically(">", 0))).Returns(user)
package match

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// errTypeMismatch is a sentinel error for type assertion failures.
var errTypeMismatch = errors.New("type mismatch")

// Matcher defines the interface for flexible value matching. Compatible
// with gomega.GomegaMatcher via duck typing - any type implementing Match
// and FailureMessage will work.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// BeAny is a matcher that matches any value. Useful when you don't care
// about a particular argument.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var BeAny Matcher = anyMatcher{}

// Satisfy returns a matcher that uses a predicate function to check for a
// match. The predicate should return nil if the value matches, or an error
// describing the mismatch if it does not.
func Satisfy[T any](predicate func(T) error) Matcher {
	return &satisfyMatcher[T]{predicate: predicate}
}

// Eq returns a matcher comparing against expected with go-cmp. Options can
// ignore fields, tolerate float error, and so on; the failure message
// carries the cmp diff.
func Eq[T any](expected T, opts ...cmp.Option) Matcher {
	return &eqMatcher[T]{expected: expected, opts: opts}
}

// Any returns a predicate accepting every input tuple, for use with
// Fn.Call and Fn.NextCall.
func Any[I any]() func(I) bool {
	return func(I) bool { return true }
}

// Equal returns a predicate accepting input tuples go-cmp-equal to
// expected.
func Equal[I any](expected I, opts ...cmp.Option) func(I) bool {
	return func(actual I) bool {
		return cmp.Equal(expected, actual, opts...)
	}
}

// To adapts a Matcher into a predicate over the whole input tuple.
func To[I any](m Matcher) func(I) bool {
	return func(actual I) bool {
		ok, err := m.Match(actual)

		return err == nil && ok
	}
}

// Fields matches each exported field of the input tuple struct against the
// value at the same position: Matchers match, anything else is compared
// with reflect.DeepEqual. Fewer values than fields leaves the remainder
// unconstrained. A non-struct input tuple is matched against a single
// value.
func Fields[I any](expected ...any) func(I) bool {
	return func(actual I) bool {
		val := reflect.ValueOf(actual)
		if val.Kind() != reflect.Struct {
			return len(expected) == 1 && matchValue(actual, expected[0])
		}

		if len(expected) > val.NumField() {
			return false
		}

		for i, exp := range expected {
			if !matchValue(val.Field(i).Interface(), exp) {
				return false
			}
		}

		return true
	}
}

// matchValue checks if actual matches expected: Matchers match, everything
// else falls back to reflect.DeepEqual.
func matchValue(actual, expected any) bool {
	if m, ok := expected.(Matcher); ok {
		success, err := m.Match(actual)

		return err == nil && success
	}

	return reflect.DeepEqual(actual, expected)
}

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

type satisfyMatcher[T any] struct {
	predicate func(T) error
	lastErr   error
}

func (m *satisfyMatcher[T]) FailureMessage(actual any) string {
	if m.lastErr != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, m.lastErr)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m *satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)
	if !ok {
		return false, fmt.Errorf("%w: expected %T, got %T", errTypeMismatch, *new(T), actual)
	}

	m.lastErr = m.predicate(val)

	return m.lastErr == nil, nil
}

type eqMatcher[T any] struct {
	expected T
	opts     []cmp.Option
	lastDiff string
}

func (m *eqMatcher[T]) FailureMessage(actual any) string {
	if m.lastDiff != "" {
		return fmt.Sprintf("values differ (-expected +actual):\n%s", m.lastDiff)
	}

	return fmt.Sprintf("expected %v, got %v", m.expected, actual)
}

func (m *eqMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)
	if !ok {
		return false, fmt.Errorf("%w: expected %T, got %T", errTypeMismatch, m.expected, actual)
	}

	m.lastDiff = cmp.Diff(m.expected, val, m.opts...)

	return m.lastDiff == "", nil
}
