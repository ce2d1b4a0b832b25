//nolint:testpackage // exercises unexported responder selection
package core

import (
	"fmt"
	"slices"
	"testing"

	"pgregory.net/rapid"
)

func TestResponderForSelectsGreatestIndexAtOrBelow(t *testing.T) {
	t.Parallel()

	responders := []callOrderResponder{
		{responseIndex: 0, responder: &panicResponder{message: "0"}},
		{responseIndex: 5, responder: &panicResponder{message: "5"}},
	}

	find := func(rs []callOrderResponder, callIndex int64) string {
		r := responderFor(rs, callIndex)
		if r == nil {
			return ""
		}

		pr, ok := r.(*panicResponder)
		if !ok {
			t.Fatalf("unexpected responder type %T", r)
		}

		return pr.message
	}

	if got := find(nil, 42); got != "" {
		t.Fatalf("empty responder list yielded %q", got)
	}

	cases := []struct {
		callIndex int64
		want      string
	}{
		{0, "0"},
		{4, "0"},
		{5, "5"},
		{7, "5"},
	}
	for _, tc := range cases {
		if got := find(responders, tc.callIndex); got != tc.want {
			t.Fatalf("responderFor(%d) selected %q, want %q", tc.callIndex, got, tc.want)
		}
	}
}

func TestResponderForBelowFirstIndexIsNil(t *testing.T) {
	t.Parallel()

	responders := []callOrderResponder{
		{responseIndex: 2, responder: &panicResponder{message: "2"}},
	}

	for _, callIndex := range []int64{0, 1} {
		if responderFor(responders, callIndex) != nil {
			t.Fatalf("call index %d is below the first response index, want nil", callIndex)
		}
	}

	if responderFor(responders, 2) == nil {
		t.Fatal("call index 2 should reach the responder")
	}
}

func TestResponderForMatchesLinearScan_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		indices := rapid.SliceOfN(rapid.Int64Range(0, 100), 1, 10).Draw(rt, "indices")
		slices.Sort(indices)

		responders := make([]callOrderResponder, len(indices))
		for i, idx := range indices {
			responders[i] = callOrderResponder{
				responseIndex: idx,
				responder:     &panicResponder{message: fmt.Sprint(i)},
			}
		}

		callIndex := rapid.Int64Range(0, 120).Draw(rt, "callIndex")

		var want dynResponder
		for i := range responders {
			if responders[i].responseIndex <= callIndex {
				want = responders[i].responder
			}
		}

		if got := responderFor(responders, callIndex); got != want {
			rt.Fatalf("responderFor(%d) over %v selected %v, want %v", callIndex, indices, got, want)
		}
	})
}

func TestNextCallIndexIsSequential(t *testing.T) {
	t.Parallel()

	p := &callPattern{}

	for want := int64(0); want < 5; want++ {
		if got := p.nextCallIndex(); got != want {
			t.Fatalf("nextCallIndex() = %d, want %d", got, want)
		}
	}
}

func TestOrderRangeContains(t *testing.T) {
	t.Parallel()

	r := OrderRange{Start: 2, End: 4}

	for pos, want := range map[int64]bool{1: false, 2: true, 3: true, 4: false} {
		if got := r.contains(pos); got != want {
			t.Fatalf("(%v).contains(%d) = %v, want %v", r, pos, got, want)
		}
	}

	if got, want := r.String(), "2..4"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
