package fractal

import "sync"

// TileQueue hands out the tiles of one render pass, each to exactly one caller.
// ClaimNext is safe for concurrent use.
type TileQueue struct {
	mu      sync.Mutex
	tiles   []Tile
	claimed []bool
	// next is the lowest index that may still be unclaimed.
	next int
}

// NewTileQueue creates a queue holding tiles in the given order, all unclaimed.
func NewTileQueue(tiles []Tile) *TileQueue {
	return &TileQueue{tiles: tiles, claimed: make([]bool, len(tiles))}
}

// ClaimNext marks the first unclaimed tile in queue order as claimed and returns it.
// It returns false once every tile has been claimed.
func (q *TileQueue) ClaimNext() (Tile, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := q.next; i < len(q.tiles); i++ {
		if q.claimed[i] {
			continue
		}
		q.claimed[i] = true
		q.next = i + 1
		return q.tiles[i], true
	}
	q.next = len(q.tiles)
	return Tile{}, false
}

// Len returns the total number of tiles in the queue.
func (q *TileQueue) Len() int { return len(q.tiles) }

// Remaining returns the number of tiles not yet claimed.
func (q *TileQueue) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, c := range q.claimed[q.next:] {
		if !c {
			n++
		}
	}
	return n
}
