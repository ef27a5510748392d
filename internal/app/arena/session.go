package arena

import (
	"time"

	"github.com/siddhantmane2006-glitch/verdict/internal/deck"
	"github.com/siddhantmane2006-glitch/verdict/pkg/logging"
	"go.uber.org/zap"
)

type GameStatus uint8

const (
	PLAYING GameStatus = iota
	FINISHED
)

type eventKind uint8

const (
	ANSWER_CORRECT eventKind = iota
	ANSWER_WRONG
	LEAVE
)

type event struct {
	playerId  string
	kind      eventKind
	timeTaken time.Duration
}

// Session is the authoritative state of one tug-of-war match. All mutable
// fields are owned by the session goroutine; other goroutines interact only
// through submit.
type Session struct {
	id      string
	players []*player
	deck    deck.Deck
	config  SessionConfig

	tugValue float64
	momentum float64
	timeLeft int
	lastTick time.Time
	status   GameStatus
	winnerId string

	forfeitAt time.Time

	eventCh chan event
	quit    chan struct{}

	endGameHandler func(*Session)
}

type SessionConfig struct {
	MatchDuration time.Duration
	TickInterval  time.Duration
	ForfeitGrace  time.Duration
}

type matchFoundResponse struct {
	RoomId string    `json:"roomId"`
	Role   string    `json:"role"`
	Deck   deck.Deck `json:"deck"`
}

type gameTickResponse struct {
	TugValue float64 `json:"tugValue"`
	TimeLeft int     `json:"timeLeft"`
}

type gameOverResponse struct {
	WinnerId string `json:"winnerId"`
}

type sessionResponse struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func newSession(
	roomId string,
	player1,
	player2 *player,
	matchDeck deck.Deck,
	config SessionConfig,
	endGameHandler func(*Session),
) *Session {
	player1.Side = UP_SIDE
	player2.Side = DOWN_SIDE
	return &Session{
		id:             roomId,
		players:        []*player{player1, player2},
		deck:           matchDeck,
		config:         config,
		tugValue:       StartPosition,
		timeLeft:       int(config.MatchDuration.Seconds()),
		lastTick:       time.Now(),
		status:         PLAYING,
		eventCh:        make(chan event),
		quit:           make(chan struct{}),
		endGameHandler: endGameHandler,
	}
}

func (s *Session) start() {
	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.quit:
			return
		case ev := <-s.eventCh:
			s.handleEvent(ev)
		case <-ticker.C:
			s.tick(time.Now())
		}
	}
}

// submit hands an event to the session goroutine. A finished session drains
// nothing, so late events fall through the quit case and are dropped.
func (s *Session) submit(ev event) {
	select {
	case s.eventCh <- ev:
	case <-s.quit:
	}
}

func (s *Session) submitCorrect(playerId string, timeTaken time.Duration) {
	s.submit(event{playerId: playerId, kind: ANSWER_CORRECT, timeTaken: timeTaken})
}

func (s *Session) submitWrong(playerId string) {
	s.submit(event{playerId: playerId, kind: ANSWER_WRONG})
}

func (s *Session) submitLeave(playerId string) {
	s.submit(event{playerId: playerId, kind: LEAVE})
}

func (s *Session) handleEvent(ev event) {
	if s.status != PLAYING {
		return
	}
	p, exist := s.getPlayerWithId(ev.playerId)
	if !exist {
		return
	}
	switch ev.kind {
	case ANSWER_CORRECT:
		s.applyCorrect(p, ev.timeTaken)
	case ANSWER_WRONG:
		s.applyWrong(p)
	case LEAVE:
		s.handleLeave(p)
		return
	}
	s.broadcastTick()
}

// pushForce is the streak-scaled force of a correct answer.
func pushForce(streak int) float64 {
	bonus := float64(streak) * StreakBonus
	if bonus > StreakBonusCap {
		bonus = StreakBonusCap
	}
	return PushPower + bonus
}

// applyCorrect feeds a streak-scaled force into momentum in the player's push
// direction. Position only moves on tick.
func (s *Session) applyCorrect(p *player, timeTaken time.Duration) {
	p.Streak++
	p.Correct++
	p.Total++
	s.momentum = clamp(s.momentum+pushForce(p.Streak)*p.direction(), -MaxMomentum, MaxMomentum)
	logging.Info("correct answer",
		zap.String("room_id", s.id),
		zap.String("player_id", p.Id),
		zap.Int("streak", p.Streak),
		zap.Duration("time_taken", timeTaken),
	)
}

// applyWrong resets the streak and pushes the bar toward the opponent.
func (s *Session) applyWrong(p *player) {
	p.Streak = 0
	p.Total++
	s.momentum = clamp(s.momentum-PushPower*p.direction(), -MaxMomentum, MaxMomentum)
}

func (s *Session) handleLeave(p *player) {
	p.setConn(nil)
	if s.players[0].Status == DISCONNECTED && s.players[1].Status == DISCONNECTED {
		logging.Info("both players disconnected", zap.String("room_id", s.id))
		s.finish(nil)
		return
	}
	s.forfeitAt = time.Now().Add(s.config.ForfeitGrace)
	logging.Info("player disconnected, forfeit pending",
		zap.String("room_id", s.id),
		zap.String("player_id", p.Id),
	)
}

// tick advances the match by one loop iteration: forfeit deadline, momentum
// integration and friction, boundary win check, wall-clock timer.
func (s *Session) tick(now time.Time) {
	if s.status != PLAYING {
		return
	}

	if !s.forfeitAt.IsZero() && !now.Before(s.forfeitAt) {
		s.finish(s.connectedPlayer())
		return
	}

	s.tugValue += s.momentum
	switch {
	case s.momentum > DecayRate:
		s.momentum -= DecayRate
	case s.momentum < -DecayRate:
		s.momentum += DecayRate
	default:
		s.momentum = 0
	}
	s.tugValue = clamp(s.tugValue, LoseThreshold, WinThreshold)

	if s.tugValue >= WinThreshold {
		s.finish(s.getPlayerWithSide(UP_SIDE))
		return
	}
	if s.tugValue <= LoseThreshold {
		s.finish(s.getPlayerWithSide(DOWN_SIDE))
		return
	}

	// Timer runs at 1 Hz regardless of tick cadence.
	if now.Sub(s.lastTick) >= time.Second {
		s.timeLeft--
		s.lastTick = now
		if s.timeLeft <= 0 {
			s.timeOut()
			return
		}
	}

	s.broadcastTick()
}

// timeOut awards the match to whoever holds more ground. The boundary check is
// strictly greater, so the exact midpoint goes to the down side.
func (s *Session) timeOut() {
	if s.tugValue > StartPosition {
		s.finish(s.getPlayerWithSide(UP_SIDE))
	} else {
		s.finish(s.getPlayerWithSide(DOWN_SIDE))
	}
}

func (s *Session) finish(winner *player) {
	if s.status == FINISHED {
		return
	}
	s.status = FINISHED
	if winner != nil {
		s.winnerId = winner.Id
	}
	s.notifyPlayers(sessionResponse{
		Type: "game_over",
		Data: gameOverResponse{WinnerId: s.winnerId},
	})
	logging.Info("game over",
		zap.String("room_id", s.id),
		zap.String("winner_id", s.winnerId),
		zap.Float64("tug_value", s.tugValue),
		zap.Int("time_left", s.timeLeft),
	)
	close(s.quit)
	if s.endGameHandler != nil {
		s.endGameHandler(s)
	}
}

func (s *Session) broadcastTick() {
	s.notifyPlayers(sessionResponse{
		Type: "game_tick",
		Data: gameTickResponse{TugValue: s.tugValue, TimeLeft: s.timeLeft},
	})
}

func (s *Session) notifyPlayers(resp sessionResponse) {
	for _, p := range s.players {
		if err := p.writeJson(resp); err != nil {
			logging.Error("couldn't notify player",
				zap.String("room_id", s.id),
				zap.String("player_id", p.Id),
			)
		}
	}
}

func (s *Session) getPlayerWithId(id string) (*player, bool) {
	for _, p := range s.players {
		if p.Id == id {
			return p, true
		}
	}
	return nil, false
}

func (s *Session) getPlayerWithSide(side Side) *player {
	if s.players[0].Side == side {
		return s.players[0]
	}
	return s.players[1]
}

func (s *Session) connectedPlayer() *player {
	for _, p := range s.players {
		if p.Status != DISCONNECTED {
			return p
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
