package core

import (
	"fmt"
	"strings"
)

// DowncastError is a fatal internal-consistency failure: a stored matcher,
// responder, or unmock callback did not have the type established at
// registration.
type DowncastError struct {
	Name string
}

func (e *DowncastError) Error() string {
	return fmt.Sprintf("fatal: failed to downcast for %s", e.Name)
}

// NoMockImplementationError means no clause at all was registered for the
// function on this mock.
type NoMockImplementationError struct {
	Name string
}

func (e *NoMockImplementationError) Error() string {
	return fmt.Sprintf("no mock implementation found for %s", e.Name)
}

// NoRegisteredCallPatternsError means the function was registered but holds
// no call patterns.
type NoRegisteredCallPatternsError struct {
	Name   string
	Inputs string
}

func (e *NoRegisteredCallPatternsError) Error() string {
	return fmt.Sprintf("%s%s: no registered call patterns", e.Name, e.Inputs)
}

// NoMatchingCallPatternsError means no unordered pattern's matcher accepted
// the inputs.
type NoMatchingCallPatternsError struct {
	Name   string
	Inputs string
}

func (e *NoMatchingCallPatternsError) Error() string {
	return fmt.Sprintf("%s%s: no matching call patterns", e.Name, e.Inputs)
}

// NoOutputAvailableError means a pattern matched but no responder is
// registered at or below the pattern's current call index.
type NoOutputAvailableError struct {
	Name     string
	Inputs   string
	PatIndex int
}

func (e *NoOutputAvailableError) Error() string {
	return fmt.Sprintf("%s%s: no output available for matching call pattern #%d",
		e.Name, e.Inputs, e.PatIndex)
}

// ValueConsumedError means the matched responder held a one-shot value that
// an earlier call already consumed.
type ValueConsumedError struct {
	Name     string
	Inputs   string
	PatIndex int
}

func (e *ValueConsumedError) Error() string {
	return fmt.Sprintf("%s%s: the value registered for call pattern #%d can only be returned once and was already consumed",
		e.Name, e.Inputs, e.PatIndex)
}

// CallOrderError means a strict-order call arrived at a global order
// position no pattern covers. Positions are displayed 1-based.
type CallOrderError struct {
	Name           string
	Inputs         string
	ActualOrder    int64
	ExpectedRanges []OrderRange
}

func (e *CallOrderError) Error() string {
	return fmt.Sprintf("%s%s: matched in wrong order: it supported the call order ranges %v, but actual call order was %d",
		e.Name, e.Inputs, e.ExpectedRanges, e.ActualOrder+1)
}

// InputsNotMatchedInCallOrderError means the call arrived at the right
// global order position, but the covering pattern's matcher rejected the
// inputs.
type InputsNotMatchedInCallOrderError struct {
	Name        string
	Inputs      string
	ActualOrder int64
	PatIndex    int
}

func (e *InputsNotMatchedInCallOrderError) Error() string {
	return fmt.Sprintf("%s%s: invoked in the correct order (%d), but inputs didn't match call pattern #%d",
		e.Name, e.Inputs, e.ActualOrder+1, e.PatIndex)
}

// ExplicitPanicError is the failure produced by a Panics responder.
type ExplicitPanicError struct {
	Name     string
	Inputs   string
	PatIndex int
	Message  string
}

func (e *ExplicitPanicError) Error() string {
	return fmt.Sprintf("%s%s: explicit panic for call pattern #%d: %s",
		e.Name, e.Inputs, e.PatIndex, e.Message)
}

// CannotUnmockError means a call should have been delegated to a real
// implementation, but the function identity carries none.
type CannotUnmockError struct {
	Name string
}

func (e *CannotUnmockError) Error() string {
	return fmt.Sprintf("%s cannot be unmocked as there is no function available to call", e.Name)
}

// VerificationError aggregates every violation found in one Verify pass.
type VerificationError struct {
	Violations []Violation
}

func (e *VerificationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}

	return "verification failed:\n" + strings.Join(msgs, "\n")
}
