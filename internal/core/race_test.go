package core_test

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stuntdouble/stunt"
	"github.com/stuntdouble/stunt/match"
)

// reporter records failures instead of aborting, so error paths can be
// asserted on. It deliberately does not implement Cleanup.
type reporter struct {
	mu       sync.Mutex
	failures []string
}

func (r *reporter) Helper() {}

func (r *reporter) Fatalf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestConcurrentOnceValueHasSingleWinner(t *testing.T) {
	t.Parallel()

	fetch := stunt.NewFn[int, string]("Fetch")
	m := stunt.New(&reporter{}, fetch.Call(match.Any[int]()).Returns("payload").Once())

	const goroutines = 64

	var (
		wins     atomic.Int64
		consumed atomic.Int64
		wg       sync.WaitGroup
	)

	for i := range goroutines {
		wg.Add(1)

		go func() {
			defer wg.Done()

			out, err := fetch.Eval(m, i)

			var consumedErr *stunt.ValueConsumedError

			switch {
			case err == nil && out == "payload":
				wins.Add(1)
			case errors.As(err, &consumedErr):
				consumed.Add(1)
			default:
				t.Errorf("unexpected result (%q, %v)", out, err)
			}
		}()
	}

	wg.Wait()

	if wins.Load() != 1 {
		t.Fatalf("one-shot value was yielded %d times, want exactly 1", wins.Load())
	}

	if consumed.Load() != goroutines-1 {
		t.Fatalf("%d callers saw the consumed error, want %d", consumed.Load(), goroutines-1)
	}
}

func TestConcurrentEvalCountsEveryCall(t *testing.T) {
	t.Parallel()

	ping := stunt.NewFn[int, int]("Ping")
	m := stunt.New(&reporter{}, ping.Call(match.Any[int]()).Answers(func(n int) int { return n }).AtLeastTimes(1))

	const goroutines = 100

	var wg sync.WaitGroup

	for i := range goroutines {
		wg.Add(1)

		go func() {
			defer wg.Done()

			out, err := ping.Eval(m, i)
			if err != nil {
				t.Errorf("Eval(%d) failed: %v", i, err)
			} else if out != i {
				t.Errorf("Eval(%d) = %d", i, out)
			}
		}()
	}

	wg.Wait()

	if err := m.Verify(); err != nil {
		t.Fatalf("verification failed after %d successful calls: %v", goroutines, err)
	}
}

func TestConcurrentAnswersRefYieldsDistinctPointers(t *testing.T) {
	t.Parallel()

	compute := stunt.NewFn[int, *int]("Compute")
	m := stunt.New(&reporter{},
		stunt.AnswersRef(compute.Call(match.Any[int]()), func(n int) int { return n * 2 }).AtLeastTimes(1),
	)

	const goroutines = 50

	var (
		mu   sync.Mutex
		refs []*int
		wg   sync.WaitGroup
	)

	for i := range goroutines {
		wg.Add(1)

		go func() {
			defer wg.Done()

			ref, err := compute.Eval(m, i)
			if err != nil {
				t.Errorf("Eval(%d) failed: %v", i, err)

				return
			}

			if *ref != i*2 {
				t.Errorf("*Eval(%d) = %d, want %d", i, *ref, i*2)
			}

			mu.Lock()
			refs = append(refs, ref)
			mu.Unlock()
		}()
	}

	wg.Wait()

	seen := make(map[*int]bool, len(refs))
	for _, ref := range refs {
		if seen[ref] {
			t.Fatal("two calls yielded the same pinned pointer")
		}

		seen[ref] = true
	}
}
