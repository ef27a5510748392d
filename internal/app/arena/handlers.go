package arena

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/siddhantmane2006-glitch/verdict/internal/deck"
	"github.com/siddhantmane2006-glitch/verdict/pkg/logging"
	"go.uber.org/zap"
)

// Handler for when user sends a message.
func (s *Server) handleWebSocketMessage(p *player, pl payload) {
	switch pl.Type {
	case "find_match", "join_queue":
		s.handleFindMatch(p)
	case "submit_success":
		timeTaken, err := strconv.Atoi(pl.Data["timeTaken"])
		if err != nil {
			logging.Warn("invalid timeTaken", zap.String("player_id", p.Id))
			timeTaken = 0
		}
		if session, ok := s.lookupSession(pl.Data["roomId"]); ok {
			session.submitCorrect(p.Id, time.Duration(timeTaken)*time.Millisecond)
		}
	case "submit_fail":
		if session, ok := s.lookupSession(pl.Data["roomId"]); ok {
			session.submitWrong(p.Id)
		}
	default:
		logging.Info("invalid payload type", zap.String("type", pl.Type))
	}
}

// lookupSession resolves a room id from a client payload. A missing or stale
// room id is a client race, not a protocol violation, so it only logs.
func (s *Server) lookupSession(roomId string) (*Session, bool) {
	if roomId == "" {
		logging.Warn("payload without room id dropped")
		return nil, false
	}
	session, ok := s.registry.get(roomId)
	if !ok {
		logging.Info("stale room id ignored", zap.String("room_id", roomId))
		return nil, false
	}
	return session, true
}

func (s *Server) handleFindMatch(p *player) {
	if roomId, ok := s.registry.roomOf(p.Id); ok {
		logging.Info("find_match while in match ignored",
			zap.String("player_id", p.Id),
			zap.String("room_id", roomId),
		)
		return
	}
	pair, matched := s.queue.enqueue(p)
	if !matched {
		logging.Info("player queued",
			zap.String("player_id", p.Id),
			zap.Int("queue_size", s.queue.size()),
		)
		return
	}
	s.createSession(pair[0], pair[1])
}

func (s *Server) createSession(player1, player2 *player) {
	roomId := "arena_" + uuid.NewString()
	session := newSession(
		roomId,
		player1,
		player2,
		deck.New(),
		s.config.sessionConfig(),
		s.handleEndGame,
	)
	s.registry.add(session)

	for _, p := range session.players {
		if err := p.writeJson(sessionResponse{
			Type: "match_found",
			Data: matchFoundResponse{
				RoomId: roomId,
				Role:   p.role(),
				Deck:   session.deck,
			},
		}); err != nil {
			logging.Error("couldn't notify player",
				zap.String("room_id", roomId),
				zap.String("player_id", p.Id),
			)
		}
	}
	go session.start()

	logging.Info("match created",
		zap.String("room_id", roomId),
		zap.String("player1_id", player1.Id),
		zap.String("player2_id", player2.Id),
	)
}

// Handler for when a session reaches its terminal state.
func (s *Server) handleEndGame(session *Session) {
	s.registry.remove(session.id)
	for _, p := range session.players {
		p.closeConn()
	}
	logging.Info("game ended", zap.String("room_id", session.id))
}

// Handler for when a user connection closes.
func (s *Server) handlePlayerDisconnect(p *player) {
	if s.queue.remove(p.Id) {
		logging.Info("player left queue", zap.String("player_id", p.Id))
		return
	}
	if roomId, ok := s.registry.roomOf(p.Id); ok {
		if session, ok := s.registry.get(roomId); ok {
			session.submitLeave(p.Id)
		}
	}
}
