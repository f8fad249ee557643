package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionMapCoversEveryIndexOnce(t *testing.T) {
	for _, tc := range []struct{ np, k int }{
		{1, 7}, {3, 7}, {4, 12}, {5, 5}, {7, 100},
	} {
		pm := NewPartitionMap(tc.np, tc.k)
		var covered int
		for bn := 0; bn < tc.np; bn++ {
			kMin, kMax := pm.GetBucketRange(bn)
			require.LessOrEqual(t, kMin, kMax)
			covered += kMax - kMin
			// Imbalance never exceeds one element.
			assert.InDelta(t, float64(tc.k)/float64(tc.np),
				float64(pm.GetBucketDimension(bn)), 1.)
		}
		assert.Equal(t, tc.k, covered)

		for k := 0; k < tc.k; k++ {
			bn, kMin, kMax := pm.GetBucket(k)
			assert.GreaterOrEqual(t, k, kMin)
			assert.Less(t, k, kMax)
			assert.Equal(t, k, pm.GetGlobalK(k-kMin, bn))
		}
	}
}

func TestPartitionMapLocalGlobalRoundTrip(t *testing.T) {
	pm := NewPartitionMap(3, 10)
	for kGlobal := 0; kGlobal < 10; kGlobal++ {
		k, Kmax, bn := pm.GetLocalK(kGlobal)
		assert.Less(t, k, Kmax)
		assert.Equal(t, kGlobal, pm.GetGlobalK(k, bn))
	}
}

func TestMailBoxAllToAll(t *testing.T) {
	const np = 4
	mb := NewMailBox[int](np)

	// Every worker posts its id to every other worker, then drains
	// np-1 batches.
	var wg sync.WaitGroup
	received := make([][]int, np)
	for w := 0; w < np; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for target := 0; target < np; target++ {
				if target != w {
					mb.PostMessage(w, target, w)
				}
			}
			mb.DeliverMyMessages(w)
			received[w] = mb.ReceiveMyMessages(w, np-1)
		}(w)
	}
	wg.Wait()

	for w := 0; w < np; w++ {
		require.Len(t, received[w], np-1)
		var sum int
		for _, v := range received[w] {
			sum += v
		}
		// Sum of all other worker ids.
		assert.Equal(t, np*(np-1)/2-w, sum)
	}
}

func TestMailBoxDeliverWithNothingQueued(t *testing.T) {
	mb := NewMailBox[struct{}](2)
	mb.DeliverMyMessages(0)
	assert.Empty(t, mb.ReceiveMyMessages(1, 0))
}
