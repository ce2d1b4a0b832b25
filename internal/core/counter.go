package core

import "fmt"

// exactness classifies a single quantification step.
type exactness int

const (
	exactnessExact exactness = iota
	exactnessAtLeast
	exactnessAtLeastPlusOne
)

// callCountExpectation is the accumulated expected-call-count constraint for
// one call pattern. It composes additively: the minimum only ever grows, and
// the aggregate stays exact only while every accumulated step is exact.
type callCountExpectation struct {
	minimum int64
	atLeast bool

	// quantified is set by the first explicit quantifier; a pattern that
	// was never quantified verifies as "at least zero calls".
	quantified bool

	// plusOne records a pending "one more call than the previous stage"
	// floor from Then. Any later explicit quantifier replaces it.
	plusOne bool
}

func (e *callCountExpectation) add(times int64, x exactness) {
	switch x {
	case exactnessExact:
		e.minimum += times
		e.quantified = true
		e.plusOne = false
	case exactnessAtLeast:
		e.minimum += times
		e.atLeast = true
		e.quantified = true
		e.plusOne = false
	case exactnessAtLeastPlusOne:
		e.plusOne = true
	}
}

// requiresCall reports whether verification demands at least one call.
func (e *callCountExpectation) requiresCall() bool {
	return e.minimum > 0 || e.plusOne
}

// satisfied reports whether an observed call count meets the expectation.
// A never-quantified expectation behaves as at-least-zero, so default
// (unspecified) patterns verify regardless of how often they were called.
func (e *callCountExpectation) satisfied(actual int64) bool {
	switch {
	case e.plusOne:
		return actual >= e.minimum+1
	case e.atLeast, !e.quantified:
		return actual >= e.minimum
	default:
		return actual == e.minimum
	}
}

// orderedSpan is the number of global order positions a strict-order
// pattern occupies.
func (e *callCountExpectation) orderedSpan() int64 {
	if e.plusOne {
		return e.minimum + 1
	}

	return e.minimum
}

// describe renders the expectation for verification messages.
func (e *callCountExpectation) describe() string {
	switch {
	case e.plusOne:
		return fmt.Sprintf("at least %d time(s)", e.minimum+1)
	case e.atLeast, !e.quantified:
		return fmt.Sprintf("at least %d time(s)", e.minimum)
	default:
		return fmt.Sprintf("exactly %d time(s)", e.minimum)
	}
}
