// Package core implements stunt's call-pattern registration, dispatch, and
// verification engine.
//
// A Mock is built once from clauses, after which its pattern registry is
// read-only; the per-pattern call counters and the shared ordered call
// index are the only mutable hot-path state, and both are atomic.
package core

import (
	"fmt"
	"sync/atomic"
)

// TestReporter is the minimal interface stunt needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// cleanupRegistrar is the interface needed for registering cleanup
// functions. This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}

// fallbackMode decides what happens when a call finds no mock
// implementation or no matching call pattern.
type fallbackMode int

const (
	fallbackError fallbackMode = iota
	fallbackUnmock
)

// patternMatchMode is the pattern-selection discipline for one function.
type patternMatchMode int

const (
	matchAnyOrder patternMatchMode = iota
	matchInOrder
)

// fnMocker holds the registered call patterns for one function identity.
type fnMocker struct {
	id       *fnIdentity
	mode     patternMatchMode
	patterns []*callPattern
}

// Mock is one mocking session: a registry of call patterns keyed by
// function identity, the shared strict-order call index, and the value
// chain backing borrowed outputs. Safe for concurrent use once built.
type Mock struct {
	t               TestReporter
	fnMockers       map[*fnIdentity]*fnMocker
	order           []*fnMocker // registration order, for deterministic verification
	sharedCallIndex atomic.Int64
	chain           valueChain
	fallback        fallbackMode
	verifyDisabled  atomic.Bool
}

// New builds a strict mock from the given clauses: calls that find no
// registered pattern fail. If t supports Cleanup, verification runs
// automatically at test teardown.
func New(t TestReporter, clauses ...Clause) *Mock {
	return newMock(t, fallbackError, clauses)
}

// NewPartial builds a permissive mock: calls that find no registered
// pattern are delegated to the function's unmock callback instead of
// failing.
func NewPartial(t TestReporter, clauses ...Clause) *Mock {
	return newMock(t, fallbackUnmock, clauses)
}

func newMock(t TestReporter, fallback fallbackMode, clauses []Clause) *Mock {
	m := &Mock{
		t:         t,
		fnMockers: make(map[*fnIdentity]*fnMocker),
		fallback:  fallback,
	}

	sink := &clauseSink{mock: m}

	for _, clause := range clauses {
		if err := clause.deconstruct(sink); err != nil {
			t.Fatalf("stunt: invalid clause: %v", err)
		}
	}

	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			if m.verifyDisabled.Load() {
				return
			}

			if err := m.Verify(); err != nil {
				t.Fatalf("%v", err)
			}
		})
	}

	return m
}

// DisableVerify opts this mock out of cleanup-time verification, for mocks
// intentionally discarded early. Verify can still be called explicitly.
func (m *Mock) DisableVerify() {
	m.verifyDisabled.Store(true)
}

// clauseSink collects terminal call patterns into a Mock, assigning
// contiguous global-order ranges to strict-order patterns as they arrive.
// Clause order across functions determines the interleaved ordering.
type clauseSink struct {
	mock          *Mock
	orderedCursor int64
}

func (s *clauseSink) putTerminal(b *patternBuilder) error {
	b.finalize()

	mocker, ok := s.mock.fnMockers[b.fnID]
	if !ok {
		mocker = &fnMocker{id: b.fnID, mode: b.mode}
		s.mock.fnMockers[b.fnID] = mocker
		s.mock.order = append(s.mock.order, mocker)
	} else if mocker.mode != b.mode {
		//nolint:err113 // construction-time diagnostic with dynamic context
		return fmt.Errorf("%s: cannot mix strict-order and unordered call patterns on one function", b.fnID.name)
	}

	pattern := &callPattern{
		matcher:     b.matcher,
		responders:  b.responders,
		expectation: b.expectation,
	}

	if b.mode == matchInOrder {
		span := pattern.expectation.orderedSpan()
		pattern.orderedRange = OrderRange{Start: s.orderedCursor, End: s.orderedCursor + span}
		s.orderedCursor += span
	}

	mocker.patterns = append(mocker.patterns, pattern)

	return nil
}
