package arena

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/siddhantmane2006-glitch/verdict/pkg/logging"
	"go.uber.org/zap"
)

type Server struct {
	address  string
	upgrader websocket.Upgrader

	config   Config
	queue    *queue
	registry *registry
}

type payload struct {
	Type string            `json:"type"`
	Data map[string]string `json:"data"`
}

func NewServer() *Server {
	return newServer(NewConfig())
}

func newServer(cfg Config) *Server {
	return &Server{
		address: "0.0.0.0:" + cfg.Port,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
		config:   cfg,
		queue:    newQueue(),
		registry: newRegistry(),
	}
}

// Start method    starts the arena server
func (s *Server) Start() error {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/auth/guest", s.handleGuestToken).Methods(http.MethodPost)
	router.HandleFunc("/arena", s.handleArena).Methods(http.MethodGet)

	logging.Info("arena server started", zap.String("port", s.config.Port))
	return http.ListenAndServe(s.address, router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleGuestToken(w http.ResponseWriter, r *http.Request) {
	if !s.config.AuthEnabled {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	playerId, token, err := s.issueGuestToken()
	if err != nil {
		logging.Error("failed to issue guest token", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"playerId": playerId,
		"token":    token,
	})
}

func (s *Server) handleArena(w http.ResponseWriter, r *http.Request) {
	playerId, err := s.auth(r)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(err.Error()))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	p := newPlayer(conn, playerId)
	p.Status = CONNECTED
	logging.Info("player connected",
		zap.String("player_id", playerId),
		zap.String("remote_address", conn.RemoteAddr().String()),
	)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.handlePlayerDisconnect(p)
			logging.Info("connection closed",
				zap.String("player_id", playerId),
				zap.Error(err),
			)
			break
		}

		pl := payload{}
		if err := json.Unmarshal(message, &pl); err != nil {
			logging.Warn("malformed payload dropped", zap.String("player_id", playerId))
			continue
		}
		s.handleWebSocketMessage(p, pl)
	}
}
