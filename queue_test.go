package fractal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTileQueue_ClaimsInRowMajorOrder(t *testing.T) {
	tiles := Tiles(40, 40, 20)
	q := NewTileQueue(tiles)
	require.Equal(t, 4, q.Len())

	for i := range tiles {
		got, ok := q.ClaimNext()
		require.True(t, ok)
		require.Equal(t, tiles[i], got)
		require.Equal(t, len(tiles)-i-1, q.Remaining())
	}

	_, ok := q.ClaimNext()
	require.False(t, ok)
	_, ok = q.ClaimNext()
	require.False(t, ok)
}

func TestTileQueue_EmptyQueue(t *testing.T) {
	q := NewTileQueue(nil)
	_, ok := q.ClaimNext()
	require.False(t, ok)
	require.Zero(t, q.Remaining())
}

func TestTileQueue_ConcurrentClaimsReturnEachTileOnce(t *testing.T) {
	tiles := Tiles(640, 480, 20)
	q := NewTileQueue(tiles)
	n := q.Len()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		claimed = make(map[Tile]int, n)
	)
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			tile, ok := q.ClaimNext()
			if !ok {
				return
			}
			mu.Lock()
			claimed[tile]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, claimed, n)
	for tile, c := range claimed {
		require.Equal(t, 1, c, "tile %v", tile)
	}

	// The (N+1)th claim, from another goroutine, finds the queue empty.
	done := make(chan bool)
	go func() {
		_, ok := q.ClaimNext()
		done <- ok
	}()
	require.False(t, <-done)
}

func TestTileQueue_ManyWorkersDrain(t *testing.T) {
	tiles := Tiles(333, 211, 7)
	q := NewTileQueue(tiles)

	const workers = 16
	counts := make([]int, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := range workers {
		go func() {
			defer wg.Done()
			for {
				if _, ok := q.ClaimNext(); !ok {
					return
				}
				counts[w]++
			}
		}()
	}
	wg.Wait()

	total := 0
	for _, c := range counts {
		total += c
	}
	require.Equal(t, len(tiles), total)
	require.Zero(t, q.Remaining())
}
