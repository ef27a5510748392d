package arena

import (
	"sync"
	"testing"
	"time"

	"github.com/siddhantmane2006-glitch/verdict/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []sessionResponse
	closed   bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if resp, ok := v.(sessionResponse); ok {
		c.messages = append(c.messages, resp)
	}
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) countType(msgType string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, m := range c.messages {
		if m.Type == msgType {
			n++
		}
	}
	return n
}

func (c *fakeConn) lastOfType(msgType string) (sessionResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Type == msgType {
			return c.messages[i], true
		}
	}
	return sessionResponse{}, false
}

func testSessionConfig() SessionConfig {
	return SessionConfig{
		MatchDuration: 60 * time.Second,
		TickInterval:  100 * time.Millisecond,
		ForfeitGrace:  10 * time.Second,
	}
}

func newTestSession(config SessionConfig) (*Session, *fakeConn, *fakeConn) {
	c1 := &fakeConn{}
	c2 := &fakeConn{}
	p1 := newPlayer(c1, "alice")
	p1.Status = CONNECTED
	p2 := newPlayer(c2, "bob")
	p2.Status = CONNECTED
	session := newSession("arena_test", p1, p2, deck.New(), config, nil)
	return session, c1, c2
}

func TestTugValueStaysInBounds(t *testing.T) {
	session, _, _ := newTestSession(testSessionConfig())
	now := time.Now()

	for i := 0; i < 500; i++ {
		switch i % 5 {
		case 0:
			session.handleEvent(event{playerId: "alice", kind: ANSWER_CORRECT})
		case 1:
			session.handleEvent(event{playerId: "bob", kind: ANSWER_CORRECT})
		case 2:
			session.handleEvent(event{playerId: "alice", kind: ANSWER_WRONG})
		case 3:
			session.handleEvent(event{playerId: "bob", kind: ANSWER_WRONG})
		case 4:
			now = now.Add(100 * time.Millisecond)
			session.tick(now)
		}
		require.GreaterOrEqual(t, session.tugValue, LoseThreshold)
		require.LessOrEqual(t, session.tugValue, WinThreshold)
		require.GreaterOrEqual(t, session.momentum, -MaxMomentum)
		require.LessOrEqual(t, session.momentum, MaxMomentum)
	}
}

func TestBoundaryWinFinishesExactlyOnce(t *testing.T) {
	session, c1, c2 := newTestSession(testSessionConfig())
	now := time.Now()

	for i := 0; i < 100 && session.status == PLAYING; i++ {
		session.handleEvent(event{playerId: "alice", kind: ANSWER_CORRECT})
		now = now.Add(100 * time.Millisecond)
		session.tick(now)
	}

	require.Equal(t, FINISHED, session.status)
	assert.Equal(t, "alice", session.winnerId)
	assert.Equal(t, WinThreshold, session.tugValue)
	assert.Equal(t, 1, c1.countType("game_over"))
	assert.Equal(t, 1, c2.countType("game_over"))

	// No further ticks or broadcasts once finished.
	ticksBefore := c1.countType("game_tick")
	session.tick(now.Add(time.Second))
	session.tick(now.Add(2 * time.Second))
	assert.Equal(t, ticksBefore, c1.countType("game_tick"))
	assert.Equal(t, 1, c1.countType("game_over"))
	assert.Equal(t, FINISHED, session.status)
}

func TestTimeoutAtMidpointFavorsDownSide(t *testing.T) {
	config := testSessionConfig()
	config.MatchDuration = 10 * time.Second
	session, _, c2 := newTestSession(config)

	base := time.Now()
	session.lastTick = base
	for i := 1; session.status == PLAYING && i <= 200; i++ {
		session.tick(base.Add(time.Duration(i) * 100 * time.Millisecond))
	}

	require.Equal(t, FINISHED, session.status)
	assert.Equal(t, 0, session.timeLeft)
	assert.Equal(t, StartPosition, session.tugValue)
	assert.Equal(t, "bob", session.winnerId)

	resp, ok := c2.lastOfType("game_over")
	require.True(t, ok)
	assert.Equal(t, gameOverResponse{WinnerId: "bob"}, resp.Data)
}

func TestTimeoutAwardsLeader(t *testing.T) {
	config := testSessionConfig()
	config.MatchDuration = 2 * time.Second
	session, _, _ := newTestSession(config)

	// Bob holds ground below the midpoint when the clock runs out.
	session.handleEvent(event{playerId: "bob", kind: ANSWER_CORRECT})
	base := time.Now()
	session.lastTick = base
	for i := 1; session.status == PLAYING && i <= 40; i++ {
		session.tick(base.Add(time.Duration(i) * 100 * time.Millisecond))
	}

	require.Equal(t, FINISHED, session.status)
	assert.Less(t, session.tugValue, StartPosition)
	assert.Equal(t, "bob", session.winnerId)
}

func TestEventsAfterFinishAreNoOps(t *testing.T) {
	config := testSessionConfig()
	config.MatchDuration = time.Second
	session, c1, _ := newTestSession(config)

	base := time.Now()
	session.lastTick = base
	for i := 1; session.status == PLAYING && i <= 40; i++ {
		session.tick(base.Add(time.Duration(i) * 100 * time.Millisecond))
	}
	require.Equal(t, FINISHED, session.status)

	tug := session.tugValue
	messages := len(c1.messages)
	session.handleEvent(event{playerId: "alice", kind: ANSWER_CORRECT})
	session.handleEvent(event{playerId: "bob", kind: ANSWER_WRONG})

	assert.Equal(t, tug, session.tugValue)
	assert.Equal(t, 0, session.players[0].Streak)
	assert.Equal(t, messages, len(c1.messages))
}

func TestUnknownPlayerEventIgnored(t *testing.T) {
	session, c1, _ := newTestSession(testSessionConfig())
	messages := len(c1.messages)
	session.handleEvent(event{playerId: "mallory", kind: ANSWER_CORRECT})
	assert.Equal(t, 0.0, session.momentum)
	assert.Equal(t, messages, len(c1.messages))
}

func TestWrongAnswerResetsStreak(t *testing.T) {
	session, _, _ := newTestSession(testSessionConfig())
	for i := 0; i < 3; i++ {
		session.handleEvent(event{playerId: "alice", kind: ANSWER_CORRECT})
	}
	assert.Equal(t, 3, session.players[0].Streak)
	assert.Equal(t, 3, session.players[0].Correct)

	session.handleEvent(event{playerId: "alice", kind: ANSWER_WRONG})
	assert.Equal(t, 0, session.players[0].Streak)
	assert.Equal(t, 4, session.players[0].Total)
}

func TestPushForceMonotoneAndCapped(t *testing.T) {
	prev := 0.0
	for streak := 1; streak <= 20; streak++ {
		force := pushForce(streak)
		assert.GreaterOrEqual(t, force, prev)
		assert.LessOrEqual(t, force, PushPower+StreakBonusCap)
		prev = force
	}
	assert.Equal(t, PushPower+StreakBonusCap, pushForce(20))
}

func TestMomentumDecaysToZero(t *testing.T) {
	session, _, _ := newTestSession(testSessionConfig())
	session.handleEvent(event{playerId: "alice", kind: ANSWER_CORRECT})
	require.Greater(t, session.momentum, 0.0)

	now := time.Now()
	for i := 0; i < 50 && session.momentum != 0; i++ {
		now = now.Add(100 * time.Millisecond)
		session.tick(now)
	}
	assert.Equal(t, 0.0, session.momentum)
}

func TestForfeitAfterGracePeriod(t *testing.T) {
	session, _, c2 := newTestSession(testSessionConfig())

	session.handleEvent(event{playerId: "alice", kind: LEAVE})
	require.Equal(t, PLAYING, session.status)
	require.False(t, session.forfeitAt.IsZero())

	// Grace period not elapsed yet.
	session.tick(time.Now())
	assert.Equal(t, PLAYING, session.status)

	session.forfeitAt = time.Now().Add(-time.Millisecond)
	session.tick(time.Now())
	require.Equal(t, FINISHED, session.status)
	assert.Equal(t, "bob", session.winnerId)
	assert.Equal(t, 1, c2.countType("game_over"))
}

func TestBothDisconnectedEndsWithoutWinner(t *testing.T) {
	session, _, _ := newTestSession(testSessionConfig())
	session.handleEvent(event{playerId: "alice", kind: LEAVE})
	session.handleEvent(event{playerId: "bob", kind: LEAVE})
	require.Equal(t, FINISHED, session.status)
	assert.Equal(t, "", session.winnerId)
}
