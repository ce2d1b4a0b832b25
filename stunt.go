// Package stunt is the runtime core of a call-substitution (mocking)
// framework: declare expected calls for abstract function identities, let
// mocked method bodies evaluate through the registry, and verify call
// counts at teardown.
//
// This is the public API entry point. Implementation lives in internal/core.
package stunt

import (
	"github.com/stuntdouble/stunt/internal/core"
)

// Mock is one mocking session. Its call patterns are fixed by New and safe
// for concurrent use from multiple goroutines.
type Mock = core.Mock

// Clause is one registered expectation, built from a Fn and consumed by New.
type Clause = core.Clause

// TestReporter is the minimal interface stunt needs from test frameworks.
type TestReporter = core.TestReporter

// Fn is the handle for one mockable function: I is the input tuple type,
// O the output type.
type Fn[I, O any] = core.Fn[I, O]

// DefineResponse is a matched call pattern, ready for defining a response.
type DefineResponse[I, O any] = core.DefineResponse[I, O]

// QuantifyReturnValue quantifies a call pattern holding an explicit return
// value; left unquantified, the value can be yielded only once.
type QuantifyReturnValue[I, O any] = core.QuantifyReturnValue[I, O]

// Quantify sets how often the preceding response is expected.
type Quantify[I, O any] = core.Quantify[I, O]

// QuantifiedExact is an exactly-quantified response stage; it can chain
// another response with Then.
type QuantifiedExact[I, O any] = core.QuantifiedExact[I, O]

// QuantifiedAtLeast is an at-least-quantified, terminal response stage.
type QuantifiedAtLeast[I, O any] = core.QuantifiedAtLeast[I, O]

// Each declares a group of unordered call patterns for one function.
type Each[I, O any] = core.Each[I, O]

// OrderRange is the range of global order positions allocated to a
// strict-order call pattern.
type OrderRange = core.OrderRange

// Violation is one failed call-count expectation found by Verify.
type Violation = core.Violation

// ViolationKind distinguishes verification failures.
type ViolationKind = core.ViolationKind

// Violation kinds reported by Verify.
const (
	ViolationCallCount   = core.ViolationCallCount
	ViolationNeverCalled = core.ViolationNeverCalled
)

// Errors returned by Eval and Verify.

// DowncastError is a fatal internal-consistency failure.
type DowncastError = core.DowncastError

// NoMockImplementationError means no clause was registered for the function.
type NoMockImplementationError = core.NoMockImplementationError

// NoRegisteredCallPatternsError means the function holds no call patterns.
type NoRegisteredCallPatternsError = core.NoRegisteredCallPatternsError

// NoMatchingCallPatternsError means no unordered pattern accepted the inputs.
type NoMatchingCallPatternsError = core.NoMatchingCallPatternsError

// NoOutputAvailableError means a matched pattern had no responder for the
// call index.
type NoOutputAvailableError = core.NoOutputAvailableError

// ValueConsumedError means a one-shot value was already consumed.
type ValueConsumedError = core.ValueConsumedError

// CallOrderError means a strict-order call arrived at an uncovered position.
type CallOrderError = core.CallOrderError

// InputsNotMatchedInCallOrderError means the order was right but the inputs
// were rejected.
type InputsNotMatchedInCallOrderError = core.InputsNotMatchedInCallOrderError

// ExplicitPanicError is the failure produced by a Panics responder.
type ExplicitPanicError = core.ExplicitPanicError

// CannotUnmockError means delegation was requested but no real
// implementation is available.
type CannotUnmockError = core.CannotUnmockError

// VerificationError aggregates every violation found in one Verify pass.
type VerificationError = core.VerificationError

// New builds a strict mock from the given clauses: calls that find no
// registered pattern fail. If t supports Cleanup, verification runs
// automatically at test teardown.
func New(t TestReporter, clauses ...Clause) *Mock {
	return core.New(t, clauses...)
}

// NewPartial builds a permissive mock: calls that find no registered
// pattern are delegated to the function's unmock callback instead of
// failing.
func NewPartial(t TestReporter, clauses ...Clause) *Mock {
	return core.NewPartial(t, clauses...)
}

// NewFn declares a mockable function identity.
func NewFn[I, O any](name string) Fn[I, O] {
	return core.NewFn[I, O](name)
}

// NewUnmockedFn declares a mockable function identity together with the
// real implementation that partial mocks and Unmocked responders delegate
// to.
func NewUnmockedFn[I, O any](name string, unmock func(I) O) Fn[I, O] {
	return core.NewUnmockedFn[I, O](name, unmock)
}

// ReturnsRef responds with a pointer to storage owned by the call pattern;
// the pointer stays valid for the lifetime of the mock.
func ReturnsRef[I, T any](d *DefineResponse[I, *T], value T) *Quantify[I, *T] {
	return core.ReturnsRef(d, value)
}

// AnswersRef computes a value from the inputs on every call, pins it for
// the lifetime of the mock, and responds with a pointer to it.
func AnswersRef[I, T any](d *DefineResponse[I, *T], fn func(I) T) *Quantify[I, *T] {
	return core.AnswersRef(d, fn)
}
