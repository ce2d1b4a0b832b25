package core

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// matcherDebug is source-location metadata for a registered matcher, used
// only in diagnostics.
type matcherDebug struct {
	file string
	line int
}

func (d matcherDebug) String() string {
	if d.file == "" {
		return ""
	}

	return fmt.Sprintf("%s:%d", d.file, d.line)
}

// dynMatcher is a type-erased input predicate owned by one call pattern.
// Holds a func(I) bool.
type dynMatcher struct {
	fn    any
	debug matcherDebug
}

// OrderRange is the half-open range of global order positions allocated to
// a strict-order call pattern.
type OrderRange struct {
	Start, End int64
}

func (r OrderRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

func (r OrderRange) contains(pos int64) bool {
	return pos >= r.Start && pos < r.End
}

// callPattern is one registered expectation: an input matcher, a sequence of
// responders keyed by ascending response index, an atomic call counter, and
// the accumulated call-count expectation. Patterns are immutable after
// registration except for the counter.
type callPattern struct {
	matcher      dynMatcher
	responders   []callOrderResponder
	orderedRange OrderRange
	callCounter  atomic.Int64
	expectation  callCountExpectation
}

type callOrderResponder struct {
	responseIndex int64
	responder     dynResponder
}

// nextCallIndex atomically claims this pattern's next local call index.
func (p *callPattern) nextCallIndex() int64 {
	return p.callCounter.Add(1) - 1
}

// responderFor selects the responder with the greatest response index at or
// below callIndex. Below the first registered index there is no responder.
// The response indices are ascending by construction, so a predecessor
// search applies.
func responderFor(responders []callOrderResponder, callIndex int64) dynResponder {
	n := sort.Search(len(responders), func(i int) bool {
		return responders[i].responseIndex > callIndex
	})
	if n == 0 {
		return nil
	}

	return responders[n-1].responder
}
