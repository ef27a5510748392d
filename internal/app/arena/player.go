package arena

import (
	"sync"
)

type (
	Status uint8
	Side   bool
)

const (
	INIT Status = iota
	CONNECTED
	DISCONNECTED

	UP_SIDE   Side = true // pushes the bar toward 100
	DOWN_SIDE Side = false
)

// Conn is the subset of *websocket.Conn the arena writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type player struct {
	Id      string
	Conn    Conn
	Side    Side
	Status  Status
	Streak  int
	Correct int
	Total   int

	mu *sync.Mutex
}

func newPlayer(conn Conn, playerId string) *player {
	return &player{
		Id:     playerId,
		Conn:   conn,
		Status: INIT,
		mu:     new(sync.Mutex),
	}
}

func (p *player) role() string {
	if p.Side == UP_SIDE {
		return "p1"
	}
	return "p2"
}

// direction returns the sign applied to forces produced by this player.
func (p *player) direction() float64 {
	if p.Side == UP_SIDE {
		return 1
	}
	return -1
}

func (p *player) setConn(conn Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if conn == nil {
		p.Status = DISCONNECTED
	} else {
		p.Status = CONNECTED
	}
	p.Conn = conn
}

func (p *player) writeJson(msg interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Conn == nil {
		return nil
	}
	return p.Conn.WriteJSON(msg)
}

func (p *player) closeConn() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Conn != nil {
		p.Conn.Close()
		p.Conn = nil
	}
}
