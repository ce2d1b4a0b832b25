package core

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Clause is one registered expectation, produced by the Fn builder methods
// and consumed by New. Implementations are sealed to this package.
type Clause interface {
	deconstruct(sink *clauseSink) error
}

// patternBuilder accumulates one call pattern. The fluent stage types below
// wrap it; each stage hands the builder to the next exactly once.
type patternBuilder struct {
	fnID                 *fnIdentity
	mode                 patternMatchMode
	matcher              dynMatcher
	responders           []callOrderResponder
	expectation          callCountExpectation
	currentResponseIndex int64

	// pendingReturn holds a Returns value that has not been quantified yet.
	pendingReturn    any
	hasPendingReturn bool

	// unquantified is set while the most recent responder has no
	// quantifier; strict-order finalization quantifies it to exactly one.
	unquantified bool
}

func newPatternBuilder(fnID *fnIdentity, mode patternMatchMode, matching any, debug matcherDebug) *patternBuilder {
	if matching == nil {
		panic("stunt: nil matching predicate")
	}

	return &patternBuilder{
		fnID:    fnID,
		mode:    mode,
		matcher: dynMatcher{fn: matching, debug: debug},
	}
}

func (b *patternBuilder) pushResponder(r dynResponder) {
	b.responders = append(b.responders, callOrderResponder{
		responseIndex: b.currentResponseIndex,
		responder:     r,
	})
	b.unquantified = true
}

// quantify must follow a responder push; it advances the response index and
// accumulates the call-count expectation.
func (b *patternBuilder) quantify(times int64, x exactness) {
	if len(b.responders) == 0 {
		panic("stunt: quantifier without a registered response")
	}

	if times < 0 {
		panic("stunt: negative quantifier")
	}

	b.expectation.add(times, x)
	b.currentResponseIndex += times
	b.unquantified = false
}

func (b *patternBuilder) takePendingReturn() any {
	if !b.hasPendingReturn {
		panic("stunt: no pending return value")
	}

	v := b.pendingReturn
	b.pendingReturn = nil
	b.hasPendingReturn = false

	return v
}

// finalize closes the builder before registration. An unquantified Returns
// value becomes a one-shot response expected exactly once (a one-shot value
// must never register as a zero-call pattern), and a dangling strict-order
// responder is quantified to exactly one call.
func (b *patternBuilder) finalize() {
	if b.hasPendingReturn {
		b.pushResponder(&onceValueResponder{value: b.takePendingReturn()})
		b.quantify(1, exactnessExact)
	}

	if b.mode == matchInOrder && b.unquantified {
		b.quantify(1, exactnessExact)
	}
}

// takeBuilder consumes the builder out of a stage, so a stage value cannot
// be replayed to register a second response at the same index.
func takeBuilder(slot **patternBuilder) *patternBuilder {
	b := *slot
	if b == nil {
		panic("stunt: call pattern builder stage already consumed")
	}

	*slot = nil

	return b
}

// callerDebug captures the registration site of a matcher for diagnostics.
func callerDebug(skip int) matcherDebug {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return matcherDebug{}
	}

	return matcherDebug{file: filepath.Base(file), line: line}
}

// DefineResponse is a matched call pattern, ready for defining a response.
type DefineResponse[I, O any] struct {
	b *patternBuilder
}

// Returns specifies the output of the call pattern by providing a value.
// Unless quantified on the returned QuantifyReturnValue, the value can be
// yielded only once.
func (d *DefineResponse[I, O]) Returns(value O) *QuantifyReturnValue[I, O] {
	b := takeBuilder(&d.b)
	b.pendingReturn = value
	b.hasPendingReturn = true

	return &QuantifyReturnValue[I, O]{b: b}
}

// ReturnsDefault responds with the zero value of the output type.
func (d *DefineResponse[I, O]) ReturnsDefault() *Quantify[I, O] {
	b := takeBuilder(&d.b)
	b.pushResponder(&answerResponder{fn: func(I) O {
		var zero O

		return zero
	}})

	return &Quantify[I, O]{b: b}
}

// ReturnsBy responds with a fresh value from the factory on every call, for
// outputs whose duplication needs more than assignment.
func (d *DefineResponse[I, O]) ReturnsBy(factory func() O) *Quantify[I, O] {
	b := takeBuilder(&d.b)
	b.pushResponder(&factoryResponder{produce: factory})

	return &Quantify[I, O]{b: b}
}

// Answers computes the output from the inputs on every call.
func (d *DefineResponse[I, O]) Answers(fn func(I) O) *Quantify[I, O] {
	b := takeBuilder(&d.b)
	b.pushResponder(&answerResponder{fn: fn})

	return &Quantify[I, O]{b: b}
}

// Panics makes every matched call fail with the given message.
func (d *DefineResponse[I, O]) Panics(message string) *Quantify[I, O] {
	b := takeBuilder(&d.b)
	b.pushResponder(&panicResponder{message: message})

	return &Quantify[I, O]{b: b}
}

// Unmocked delegates matched calls to the function's unmock callback.
func (d *DefineResponse[I, O]) Unmocked() *Quantify[I, O] {
	b := takeBuilder(&d.b)
	b.pushResponder(&unmockResponder{})

	return &Quantify[I, O]{b: b}
}

// ReturnsRef responds with a pointer to storage owned by the call pattern.
// The same pointer is yielded on every call and stays valid for the
// lifetime of the mock. It is a free function because it constrains the
// output type to a pointer, which a method cannot express.
func ReturnsRef[I, T any](d *DefineResponse[I, *T], value T) *Quantify[I, *T] {
	b := takeBuilder(&d.b)
	ref := &value
	b.pushResponder(&borrowResponder{ref: ref})

	return &Quantify[I, *T]{b: b}
}

// AnswersRef computes a value from the inputs on every call, pins it in the
// mock's value chain, and responds with a pointer to it. Each call yields a
// distinct pointer, valid for the lifetime of the mock.
func AnswersRef[I, T any](d *DefineResponse[I, *T], fn func(I) T) *Quantify[I, *T] {
	b := takeBuilder(&d.b)
	b.pushResponder(&answerRefResponder{fn: func(inputs I, chain *valueChain) *T {
		v := fn(inputs)
		ref := &v
		chain.pin(ref)

		return ref
	}})

	return &Quantify[I, *T]{b: b}
}

// QuantifyReturnValue quantifies a call pattern holding an explicit return
// value. Left unquantified, the value can be yielded only once.
type QuantifyReturnValue[I, O any] struct {
	b *patternBuilder
}

// Once expects exactly one call; the stored value is consumed by it.
func (q *QuantifyReturnValue[I, O]) Once() *QuantifiedExact[I, O] {
	b := takeBuilder(&q.b)
	b.pushResponder(&onceValueResponder{value: b.takePendingReturn()})
	b.quantify(1, exactnessExact)

	return &QuantifiedExact[I, O]{b: b}
}

// NTimes expects exactly the given number of calls, each yielding a copy of
// the value.
func (q *QuantifyReturnValue[I, O]) NTimes(times int) *QuantifiedExact[I, O] {
	b := takeBuilder(&q.b)
	b.pushResponder(&valueResponder{value: b.takePendingReturn()})
	b.quantify(int64(times), exactnessExact)

	return &QuantifiedExact[I, O]{b: b}
}

// AtLeastTimes expects at least the given number of calls, each yielding a
// copy of the value.
func (q *QuantifyReturnValue[I, O]) AtLeastTimes(times int) *QuantifiedAtLeast[I, O] {
	b := takeBuilder(&q.b)
	b.pushResponder(&valueResponder{value: b.takePendingReturn()})
	b.quantify(int64(times), exactnessAtLeast)

	return &QuantifiedAtLeast[I, O]{b: b}
}

func (q *QuantifyReturnValue[I, O]) deconstruct(sink *clauseSink) error {
	return q.Once().deconstruct(sink)
}

// Quantify sets how often the preceding response is expected.
type Quantify[I, O any] struct {
	b *patternBuilder
}

// Once expects exactly one call.
func (q *Quantify[I, O]) Once() *QuantifiedExact[I, O] {
	b := takeBuilder(&q.b)
	b.quantify(1, exactnessExact)

	return &QuantifiedExact[I, O]{b: b}
}

// NTimes expects exactly the given number of calls.
func (q *Quantify[I, O]) NTimes(times int) *QuantifiedExact[I, O] {
	b := takeBuilder(&q.b)
	b.quantify(int64(times), exactnessExact)

	return &QuantifiedExact[I, O]{b: b}
}

// AtLeastTimes expects at least the given number of calls.
func (q *Quantify[I, O]) AtLeastTimes(times int) *QuantifiedAtLeast[I, O] {
	b := takeBuilder(&q.b)
	b.quantify(int64(times), exactnessAtLeast)

	return &QuantifiedAtLeast[I, O]{b: b}
}

func (q *Quantify[I, O]) deconstruct(sink *clauseSink) error {
	return sink.putTerminal(takeBuilder(&q.b))
}

// QuantifiedExact is an exactly-quantified response stage. Only exact
// stages can chain another response with Then.
type QuantifiedExact[I, O any] struct {
	b *patternBuilder
}

// Then opens the next response stage, which takes effect after the current
// stage has yielded its quota. Chaining implies the pattern must be driven
// at least one call past the prior stage, otherwise the chain was
// pointless; nothing is added to the minimum yet because a following
// quantifier may still do so.
func (q *QuantifiedExact[I, O]) Then() *DefineResponse[I, O] {
	b := takeBuilder(&q.b)
	b.expectation.add(0, exactnessAtLeastPlusOne)

	return &DefineResponse[I, O]{b: b}
}

func (q *QuantifiedExact[I, O]) deconstruct(sink *clauseSink) error {
	return sink.putTerminal(takeBuilder(&q.b))
}

// QuantifiedAtLeast is an at-least-quantified, terminal response stage.
type QuantifiedAtLeast[I, O any] struct {
	b *patternBuilder
}

func (q *QuantifiedAtLeast[I, O]) deconstruct(sink *clauseSink) error {
	return sink.putTerminal(takeBuilder(&q.b))
}

// Each declares a group of unordered call patterns for one function. The
// patterns are tried in declaration order; the first match wins.
type Each[I, O any] struct {
	fnID     *fnIdentity
	builders []*patternBuilder
}

// Call opens the next call pattern in the group.
func (e *Each[I, O]) Call(matching func(I) bool) *DefineResponse[I, O] {
	b := newPatternBuilder(e.fnID, matchAnyOrder, matching, callerDebug(1))
	e.builders = append(e.builders, b)

	return &DefineResponse[I, O]{b: b}
}

// stubClause is the Clause produced by Fn.Stub.
type stubClause[I, O any] struct {
	each *Each[I, O]
}

func (s *stubClause[I, O]) deconstruct(sink *clauseSink) error {
	if len(s.each.builders) == 0 {
		//nolint:err113 // construction-time diagnostic with dynamic context
		return fmt.Errorf("%s: stub contained no call patterns", s.each.fnID.name)
	}

	for _, b := range s.each.builders {
		if err := sink.putTerminal(b); err != nil {
			return err
		}
	}

	return nil
}
