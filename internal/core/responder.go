package core

import "sync"

// dynResponder is the type-erased strategy for producing the output of a
// matched call. Exactly one variant is active for a given call index; the
// Fn that registered a responder recovers its typed payload with a checked
// type assertion.
type dynResponder interface {
	isResponder()
}

// onceValueResponder yields its stored value exactly once. The take is
// mutex-guarded so two racing callers cannot both observe the value present;
// at most one succeeds and the rest get the consumed error.
type onceValueResponder struct {
	mu    sync.Mutex
	value any
	taken bool
}

func (r *onceValueResponder) take() (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken {
		return nil, false
	}

	r.taken = true
	v := r.value
	r.value = nil

	return v, true
}

// valueResponder yields a copy of its stored value any number of times.
type valueResponder struct {
	value any
}

// factoryResponder yields a fresh value per call, for outputs whose
// duplication needs more than assignment. Holds a func() O.
type factoryResponder struct {
	produce any
}

// borrowResponder yields a stable pointer into pattern-owned storage.
// Holds a *T where the function's output type is *T.
type borrowResponder struct {
	ref any
}

// answerResponder computes the output from the inputs on every selection.
// Holds a func(I) O.
type answerResponder struct {
	fn any
}

// answerRefResponder computes a value from the inputs, pins it in the
// mock's value chain, and yields a pointer to it.
// Holds a func(I, *valueChain) O.
type answerRefResponder struct {
	fn any
}

// panicResponder fails every selection with a user-provided message.
type panicResponder struct {
	message string
}

// unmockResponder delegates the call to the function's unmock callback.
type unmockResponder struct{}

func (*onceValueResponder) isResponder() {}
func (*valueResponder) isResponder()     {}
func (*factoryResponder) isResponder()   {}
func (*borrowResponder) isResponder()    {}
func (*answerResponder) isResponder()    {}
func (*answerRefResponder) isResponder() {}
func (*panicResponder) isResponder()     {}
func (*unmockResponder) isResponder()    {}
