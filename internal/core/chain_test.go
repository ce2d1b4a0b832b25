//nolint:testpackage // exercises the unexported value chain
package core

import (
	"sync"
	"testing"
)

func TestValueChainPinsConcurrently(t *testing.T) {
	t.Parallel()

	var (
		chain valueChain
		wg    sync.WaitGroup
	)

	const pins = 100

	for i := range pins {
		wg.Add(1)

		go func() {
			defer wg.Done()

			v := i
			chain.pin(&v)
		}()
	}

	wg.Wait()

	if got := chain.size(); got != pins {
		t.Fatalf("chain holds %d values, want %d", got, pins)
	}
}
