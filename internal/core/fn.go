package core

import "fmt"

// fnIdentity is the stable identity of one abstract function signature.
// Identities are created once per function, never destroyed, and compared
// by pointer. The same identity that stores typed matchers and responders
// recovers them, so a failed type assertion is an internal-consistency
// fault rather than a user error.
type fnIdentity struct {
	name         string
	formatInputs func(any) string

	// unmock is the optional real implementation, a func(I) O.
	unmock any
}

func (id *fnIdentity) debugInputs(inputs any) string {
	if id.formatInputs != nil {
		return id.formatInputs(inputs)
	}

	return fmt.Sprintf("(%+v)", inputs)
}

// Fn is the handle for one mockable function: I is the input tuple type, O
// the output type. Declare one per abstract function with NewFn, typically
// as a package-level variable shared between clause declarations and the
// mocked implementation.
type Fn[I, O any] struct {
	id *fnIdentity
}

// NewFn declares a mockable function identity.
func NewFn[I, O any](name string) Fn[I, O] {
	return Fn[I, O]{id: &fnIdentity{name: name}}
}

// NewUnmockedFn declares a mockable function identity together with the
// real implementation that partial mocks and Unmocked responders delegate
// to.
func NewUnmockedFn[I, O any](name string, unmock func(I) O) Fn[I, O] {
	return Fn[I, O]{id: &fnIdentity{name: name, unmock: unmock}}
}

// Format installs a diagnostics-only renderer for input tuples, replacing
// the default "%+v" rendering. Call it at declaration time, before the
// identity is used in any clause.
func (f Fn[I, O]) Format(format func(I) string) Fn[I, O] {
	f.id.formatInputs = func(inputs any) string {
		typed, ok := inputs.(I)
		if !ok {
			return fmt.Sprintf("(%+v)", inputs)
		}

		return format(typed)
	}

	return f
}

// Name returns the declared function name.
func (f Fn[I, O]) Name() string {
	return f.id.name
}

// Call opens an unordered call pattern: it may be matched whenever the mock
// is invoked with inputs the predicate accepts, regardless of what other
// calls have happened.
func (f Fn[I, O]) Call(matching func(I) bool) *DefineResponse[I, O] {
	return &DefineResponse[I, O]{b: newPatternBuilder(f.id, matchAnyOrder, matching, callerDebug(1))}
}

// NextCall opens a strict-order call pattern: it must be matched at the
// exact global position implied by the clause order, interleaved across all
// strict-order functions on the same mock.
func (f Fn[I, O]) NextCall(matching func(I) bool) *DefineResponse[I, O] {
	return &DefineResponse[I, O]{b: newPatternBuilder(f.id, matchInOrder, matching, callerDebug(1))}
}

// Stub declares a group of unordered call patterns in a single clause.
func (f Fn[I, O]) Stub(build func(each *Each[I, O])) Clause {
	each := &Each[I, O]{fnID: f.id}
	build(each)

	return &stubClause[I, O]{each: each}
}

// Eval runs one invocation through the mock: locate the function's
// patterns, select one according to the pattern-match mode, advance the
// pattern's counter to pick the active responder, and produce the output.
// Every failure is returned as a typed error; nothing is swallowed.
func (f Fn[I, O]) Eval(m *Mock, inputs I) (O, error) {
	var zero O

	mocker, ok := m.fnMockers[f.id]
	if !ok {
		if m.fallback == fallbackUnmock {
			return f.callUnmock(inputs)
		}

		return zero, &NoMockImplementationError{Name: f.id.name}
	}

	if len(mocker.patterns) == 0 {
		if m.fallback == fallbackUnmock {
			return f.callUnmock(inputs)
		}

		return zero, &NoRegisteredCallPatternsError{Name: f.id.name, Inputs: f.id.debugInputs(inputs)}
	}

	pattern, patIndex, err := f.selectPattern(m, mocker, inputs)
	if err != nil {
		return zero, err
	}

	if pattern == nil {
		if m.fallback == fallbackUnmock {
			return f.callUnmock(inputs)
		}

		return zero, &NoMatchingCallPatternsError{Name: f.id.name, Inputs: f.id.debugInputs(inputs)}
	}

	callIndex := pattern.nextCallIndex()

	responder := responderFor(pattern.responders, callIndex)
	if responder == nil {
		return zero, &NoOutputAvailableError{Name: f.id.name, Inputs: f.id.debugInputs(inputs), PatIndex: patIndex}
	}

	return f.produce(m, responder, inputs, patIndex)
}

// MustEval is Eval for mocked method bodies: any failure is reported
// through the mock's TestReporter and the zero output returned.
func (f Fn[I, O]) MustEval(m *Mock, inputs I) O {
	out, err := f.Eval(m, inputs)
	if err != nil {
		m.t.Helper()
		m.t.Fatalf("%v", err)
	}

	return out
}

// selectPattern picks the pattern for one call, or (nil, 0, nil) when no
// unordered pattern matched. Strict-order selection is an error when it
// fails, never a fallback.
func (f Fn[I, O]) selectPattern(m *Mock, mocker *fnMocker, inputs I) (*callPattern, int, error) {
	if mocker.mode == matchInOrder {
		// Every strict-order call claims the next global position up
		// front, even when it ends up unmatched; unordered functions on
		// the same mock never advance it.
		pos := m.sharedCallIndex.Add(1) - 1

		for i, p := range mocker.patterns {
			if !p.orderedRange.contains(pos) {
				continue
			}

			ok, err := f.matchInputs(p, inputs)
			if err != nil {
				return nil, 0, err
			}

			if !ok {
				return nil, 0, &InputsNotMatchedInCallOrderError{
					Name:        f.id.name,
					Inputs:      f.id.debugInputs(inputs),
					ActualOrder: pos,
					PatIndex:    i,
				}
			}

			return p, i, nil
		}

		ranges := make([]OrderRange, len(mocker.patterns))
		for i, p := range mocker.patterns {
			ranges[i] = p.orderedRange
		}

		return nil, 0, &CallOrderError{
			Name:           f.id.name,
			Inputs:         f.id.debugInputs(inputs),
			ActualOrder:    pos,
			ExpectedRanges: ranges,
		}
	}

	for i, p := range mocker.patterns {
		ok, err := f.matchInputs(p, inputs)
		if err != nil {
			return nil, 0, err
		}

		if ok {
			return p, i, nil
		}
	}

	return nil, 0, nil
}

func (f Fn[I, O]) matchInputs(p *callPattern, inputs I) (bool, error) {
	matching, ok := p.matcher.fn.(func(I) bool)
	if !ok {
		return false, &DowncastError{Name: f.id.name}
	}

	return matching(inputs), nil
}

func (f Fn[I, O]) produce(m *Mock, responder dynResponder, inputs I, patIndex int) (O, error) {
	var zero O

	switch r := responder.(type) {
	case *onceValueResponder:
		v, ok := r.take()
		if !ok {
			return zero, &ValueConsumedError{Name: f.id.name, Inputs: f.id.debugInputs(inputs), PatIndex: patIndex}
		}

		return f.downcastOutput(v)
	case *valueResponder:
		return f.downcastOutput(r.value)
	case *factoryResponder:
		produce, ok := r.produce.(func() O)
		if !ok {
			return zero, &DowncastError{Name: f.id.name}
		}

		return produce(), nil
	case *borrowResponder:
		return f.downcastOutput(r.ref)
	case *answerResponder:
		fn, ok := r.fn.(func(I) O)
		if !ok {
			return zero, &DowncastError{Name: f.id.name}
		}

		return fn(inputs), nil
	case *answerRefResponder:
		fn, ok := r.fn.(func(I, *valueChain) O)
		if !ok {
			return zero, &DowncastError{Name: f.id.name}
		}

		return fn(inputs, &m.chain), nil
	case *panicResponder:
		return zero, &ExplicitPanicError{
			Name:     f.id.name,
			Inputs:   f.id.debugInputs(inputs),
			PatIndex: patIndex,
			Message:  r.message,
		}
	case *unmockResponder:
		return f.callUnmock(inputs)
	default:
		return zero, &DowncastError{Name: f.id.name}
	}
}

func (f Fn[I, O]) downcastOutput(v any) (O, error) {
	var zero O

	if v == nil {
		// Only a nil-valued output (nil error, nil pointer) is stored as a
		// nil box.
		return zero, nil
	}

	out, ok := v.(O)
	if !ok {
		return zero, &DowncastError{Name: f.id.name}
	}

	return out, nil
}

func (f Fn[I, O]) callUnmock(inputs I) (O, error) {
	var zero O

	if f.id.unmock == nil {
		return zero, &CannotUnmockError{Name: f.id.name}
	}

	unmock, ok := f.id.unmock.(func(I) O)
	if !ok {
		return zero, &DowncastError{Name: f.id.name}
	}

	return unmock(inputs), nil
}
