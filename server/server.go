package server

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lazharichir/holdem/events"
	"github.com/lazharichir/holdem/poker"
	"github.com/lazharichir/holdem/server/connection"
	"github.com/lazharichir/holdem/table"
)

const decisionTimeout = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// Server runs one heads-up game (human seat vs bot seat) over WebSockets.
// Every connected client receives state broadcasts; action messages from
// any client feed the human seat.
type Server struct {
	config  table.Config
	connMgr *connection.Manager
	store   *events.InMemoryEventStore
	logger  *zap.Logger
	human   *table.Remote

	mutex   sync.Mutex
	playing bool
}

// inboundMessage is what clients send us
type inboundMessage struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

// outboundMessage wraps everything we push to clients
type outboundMessage struct {
	Type    string               `json:"type"`
	State   *poker.Snapshot      `json:"state,omitempty"`
	Legal   []legalActionPayload `json:"legal,omitempty"`
	Payouts []poker.Payout       `json:"payouts,omitempty"`
	Message string               `json:"message,omitempty"`
}

type legalActionPayload struct {
	Action string `json:"action"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
}

// NewServer creates a server with the given table configuration
func NewServer(config table.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		config:  config,
		connMgr: connection.NewManager(),
		store:   events.NewInMemoryEventStore(),
		logger:  logger,
		human:   table.NewRemote(decisionTimeout),
	}
	s.human.Prompt = s.promptDecision
	return s
}

// Start begins the server on the specified port and blocks
func (s *Server) Start(port string) error {
	go s.connMgr.Start()

	http.HandleFunc("/ws", s.handleWebSocket)

	s.logger.Info("starting server", zap.String("port", port))
	return http.ListenAndServe("0.0.0.0:"+port, nil)
}

// handleWebSocket upgrades the connection and wires the client into the
// broadcast set. The first connection starts the game.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &connection.Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	s.connMgr.Register <- client
	s.logger.Info("client connected",
		zap.String("client_id", client.ID),
		zap.String("remote", r.RemoteAddr),
		zap.Int("clients", s.connMgr.Count()),
	)

	go s.readPump(client)
	go s.writePump(client)

	s.startGameOnce()
}

func (s *Server) startGameOnce() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.playing {
		return
	}
	s.playing = true

	go func() {
		if err := s.runGame(context.Background()); err != nil {
			s.logger.Error("game ended with error", zap.Error(err))
		}
		s.mutex.Lock()
		s.playing = false
		s.mutex.Unlock()
	}()
}

// runGame drives the loop until someone goes broke
func (s *Server) runGame(ctx context.Context) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	loop, err := table.NewGameLoop(
		[]string{"You", "Bot"},
		[]table.DecisionProvider{s.human, table.NewBot(rng)},
		s.config,
		s.store,
		s.logger,
	)
	if err != nil {
		return err
	}

	loop.OnUpdate(func(snapshot poker.Snapshot) {
		s.broadcast(outboundMessage{Type: "state", State: &snapshot})
	})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		for _, p := range loop.Round().Players {
			if p.Chips == 0 {
				s.broadcast(outboundMessage{Type: "game_over", Message: p.Name + " is out of chips"})
				return nil
			}
		}

		payouts, err := loop.PlayHand(ctx)
		if err != nil {
			return err
		}
		s.broadcast(outboundMessage{Type: "payouts", Payouts: payouts})
	}
}

// promptDecision asks every connected client for the human seat's action.
// The remote provider collects the answer (or folds on timeout).
func (s *Server) promptDecision(_ poker.Snapshot, legal []poker.LegalAction) {
	payload := make([]legalActionPayload, len(legal))
	for i, la := range legal {
		payload[i] = legalActionPayload{Action: la.Action.String(), Min: la.Min, Max: la.Max}
	}
	s.broadcast(outboundMessage{Type: "decision_request", Legal: payload})
}

func (s *Server) broadcast(message outboundMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		s.logger.Error("failed to marshal message", zap.Error(err))
		return
	}
	s.connMgr.Broadcast(data)
}

// readPump reads messages from one client and feeds action messages into
// the human seat's decision channel
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Unregister <- client
		client.Conn.Close()
	}()

	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("read error", zap.String("client_id", client.ID), zap.Error(err))
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("malformed message", zap.String("client_id", client.ID), zap.Error(err))
			continue
		}

		if msg.Type != "action" {
			continue
		}

		proposed := poker.ProposedAction{
			Action: poker.ActionFromString(msg.Action),
			Amount: msg.Amount,
		}

		if !s.human.Submit(proposed) {
			s.logger.Warn("action received out of turn", zap.String("client_id", client.ID))
			if reply, err := json.Marshal(outboundMessage{Type: "error", Message: "action received out of turn"}); err == nil {
				s.connMgr.SendToClient(client.ID, reply)
			}
		}
	}
}

// writePump sends queued messages to one client
func (s *Server) writePump(client *connection.Client) {
	defer client.Conn.Close()

	for {
		message, ok := <-client.Send
		if !ok {
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			s.logger.Warn("write error", zap.String("client_id", client.ID), zap.Error(err))
			return
		}
	}
}
