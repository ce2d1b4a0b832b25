package core

import "fmt"

// ViolationKind distinguishes verification failures.
type ViolationKind int

const (
	// ViolationCallCount means the pattern was invoked, but the final count
	// did not satisfy its quantification.
	ViolationCallCount ViolationKind = iota
	// ViolationNeverCalled means a pattern that requires calls was never
	// invoked at all.
	ViolationNeverCalled
)

// Violation is one failed call-count expectation found by Verify.
type Violation struct {
	FnName   string
	PatIndex int
	Kind     ViolationKind
	Expected string
	Actual   int64
	Location string
}

func (v Violation) String() string {
	where := ""
	if v.Location != "" {
		where = fmt.Sprintf(" (%s)", v.Location)
	}

	if v.Kind == ViolationNeverCalled {
		return fmt.Sprintf("mock for %s was never called: dead mocks should be removed (pattern #%d%s)",
			v.FnName, v.PatIndex, where)
	}

	return fmt.Sprintf("expected %s pattern #%d%s to be called %s, but it was actually called %d time(s)",
		v.FnName, v.PatIndex, where, v.Expected, v.Actual)
}

// Verify compares every pattern's observed call count against its
// quantification, across all functions, and aggregates the failures.
// It is idempotent: calling it twice without intervening calls yields the
// same result. The default invocation point is the cleanup hook registered
// by New; DisableVerify suppresses that hook.
func (m *Mock) Verify() error {
	var violations []Violation

	for _, mocker := range m.order {
		for i, p := range mocker.patterns {
			actual := p.callCounter.Load()
			if p.expectation.satisfied(actual) {
				continue
			}

			kind := ViolationCallCount
			if actual == 0 && p.expectation.requiresCall() {
				kind = ViolationNeverCalled
			}

			violations = append(violations, Violation{
				FnName:   mocker.id.name,
				PatIndex: i,
				Kind:     kind,
				Expected: p.expectation.describe(),
				Actual:   actual,
				Location: p.matcher.debug.String(),
			})
		}
	}

	if len(violations) == 0 {
		return nil
	}

	return &VerificationError{Violations: violations}
}
