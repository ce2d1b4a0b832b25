//nolint:testpackage // exercises unexported builder guards
package core

import "testing"

func expectPanic(t *testing.T, message string) {
	t.Helper()

	if recover() == nil {
		t.Fatal(message)
	}
}

func TestQuantifyRejectsNegativeTimes(t *testing.T) {
	t.Parallel()

	b := newPatternBuilder(&fnIdentity{name: "Neg"}, matchAnyOrder, func(int) bool { return true }, matcherDebug{})
	b.pushResponder(&valueResponder{value: 0})

	defer expectPanic(t, "a negative quantifier must panic as builder misuse")

	b.quantify(-1, exactnessExact)
}

func TestQuantifyRejectsMissingResponse(t *testing.T) {
	t.Parallel()

	b := newPatternBuilder(&fnIdentity{name: "Empty"}, matchAnyOrder, func(int) bool { return true }, matcherDebug{})

	defer expectPanic(t, "a quantifier without a registered response must panic")

	b.quantify(1, exactnessExact)
}
