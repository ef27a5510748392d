package arena

import (
	"sync"
)

// registry maps room ids to active sessions and player ids to their room.
// A player belongs to at most one room at a time.
type registry struct {
	sessions sync.Map // roomId -> *Session
	members  sync.Map // playerId -> roomId
}

func newRegistry() *registry {
	return &registry{}
}

func (r *registry) add(s *Session) {
	r.sessions.Store(s.id, s)
	for _, p := range s.players {
		r.members.Store(p.Id, s.id)
	}
}

func (r *registry) get(roomId string) (*Session, bool) {
	value, ok := r.sessions.Load(roomId)
	if !ok {
		return nil, false
	}
	s, ok := value.(*Session)
	return s, ok
}

func (r *registry) roomOf(playerId string) (string, bool) {
	value, ok := r.members.Load(playerId)
	if !ok {
		return "", false
	}
	roomId, ok := value.(string)
	return roomId, ok
}

func (r *registry) remove(roomId string) {
	value, ok := r.sessions.LoadAndDelete(roomId)
	if !ok {
		return
	}
	if s, ok := value.(*Session); ok {
		for _, p := range s.players {
			r.members.Delete(p.Id)
		}
	}
}

func (r *registry) count() int {
	n := 0
	r.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
