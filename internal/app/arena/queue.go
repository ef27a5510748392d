package arena

import (
	"sync"
)

// queue is the matchmaking waiting list. Insertion order only, no priority,
// no timeout eviction: an unmatched player waits until paired or disconnected.
type queue struct {
	waiting []*player
	mu      sync.Mutex
}

func newQueue() *queue {
	return &queue{waiting: []*player{}}
}

// enqueue appends the player unless already waiting. Whenever two players are
// waiting, the two oldest are popped and returned as a pair.
func (q *queue) enqueue(p *player) ([2]*player, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, w := range q.waiting {
		if w.Id == p.Id {
			return [2]*player{}, false
		}
	}
	q.waiting = append(q.waiting, p)

	if len(q.waiting) < 2 {
		return [2]*player{}, false
	}
	pair := [2]*player{q.waiting[0], q.waiting[1]}
	q.waiting = q.waiting[2:]
	return pair, true
}

// remove deletes the player from the waiting list if present.
func (q *queue) remove(playerId string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, w := range q.waiting {
		if w.Id == playerId {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			return true
		}
	}
	return false
}

func (q *queue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}
