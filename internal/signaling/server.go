package signaling

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pion/logging"
)

var upgrader = websocket.Upgrader{ //nolint:gochecknoglobals
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Server is the broker's HTTP/WebSocket front end. Matching
// CherryExchange's and saintparish4-altair's one-goroutine-per-connection
// pattern, each accepted connection gets its own read pump; the Server
// itself only tracks which connection speaks for which peer in which
// room so relay fan-out knows who to write to.
type Server struct {
	store RoomStore
	log   logging.LeveledLogger

	mu    sync.Mutex
	rooms map[string]map[string]*websocket.Conn // roomID -> peerID -> conn
}

// NewServer builds a Server backed by store, logging through log.
func NewServer(store RoomStore, log logging.LeveledLogger) *Server {
	return &Server{
		store: store,
		log:   log,
		rooms: make(map[string]map[string]*websocket.Conn),
	}
}

// ListenAndServe starts the broker's single HTTP endpoint at addr.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	return http.ListenAndServe(addr, mux) //nolint:gosec
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("websocket upgrade failed: %v", err)

		return
	}

	s.readPump(r.Context(), conn)
}

func (s *Server) readPump(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close() //nolint:errcheck

	var roomID, peerID string

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if roomID != "" && peerID != "" {
				s.leave(ctx, roomID, peerID)
			}

			return
		}

		switch env.Type {
		case TypeCreateRoom:
			id, err := s.store.CreateRoom(ctx)
			if err != nil {
				s.sendError(conn, err)

				continue
			}
			roomID, peerID = id, env.PeerID
			s.join(ctx, conn, roomID, peerID)

		case TypeJoinRoom:
			roomID, peerID = env.RoomID, env.PeerID
			s.join(ctx, conn, roomID, peerID)

		case TypeSDPOffer:
			s.relayToRoom(env, conn)

		case TypeSDPAnswer:
			s.relayToPeer(env)

		case TypePing:
			if roomID != "" {
				if err := s.store.Touch(ctx, roomID); err != nil {
					s.log.Warnf("touching room %s: %v", roomID, err)
				}
			}

		default:
			s.sendError(conn, errUnknownEnvelopeType(env.Type))
		}
	}
}

func (s *Server) join(ctx context.Context, conn *websocket.Conn, roomID, peerID string) {
	peers, err := s.store.JoinRoom(ctx, roomID, peerID)
	if err != nil {
		s.sendError(conn, err)

		return
	}

	s.mu.Lock()
	if s.rooms[roomID] == nil {
		s.rooms[roomID] = make(map[string]*websocket.Conn)
	}
	s.rooms[roomID][peerID] = conn
	s.mu.Unlock()

	payload, _ := json.Marshal(RoomStatePayload{RoomID: roomID, Peers: peers}) //nolint:errcheck
	conn.WriteJSON(Envelope{Type: TypeRoomState, RoomID: roomID, Payload: payload}) //nolint:errcheck,gosec
}

func (s *Server) leave(ctx context.Context, roomID, peerID string) {
	if err := s.store.LeaveRoom(ctx, roomID, peerID); err != nil {
		s.log.Warnf("leaving room %s: %v", roomID, err)
	}

	s.mu.Lock()
	if conns, ok := s.rooms[roomID]; ok {
		delete(conns, peerID)
		if len(conns) == 0 {
			delete(s.rooms, roomID)
		}
	}
	s.mu.Unlock()
}

// relayToRoom forwards an offer to every other connection registered
// for the room, matching CherryExchange's "send offer to all ids for
// this room" intent.
func (s *Server) relayToRoom(env Envelope, from *websocket.Conn) {
	s.mu.Lock()
	conns := s.rooms[env.RoomID]
	targets := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != from {
			targets = append(targets, c)
		}
	}
	s.mu.Unlock()

	for _, c := range targets {
		c.WriteJSON(env) //nolint:errcheck,gosec
	}
}

// relayToPeer forwards an answer to exactly the envelope's TargetID,
// matching CherryExchange's "send the answer only to the client id
// given".
func (s *Server) relayToPeer(env Envelope) {
	s.mu.Lock()
	conns := s.rooms[env.RoomID]
	target, ok := conns[env.TargetID]
	s.mu.Unlock()

	if !ok {
		return
	}

	target.WriteJSON(env) //nolint:errcheck,gosec
}

func (s *Server) sendError(conn *websocket.Conn, err error) {
	payload, _ := json.Marshal(ErrorPayload{Message: err.Error()}) //nolint:errcheck
	conn.WriteJSON(Envelope{Type: TypeError, Payload: payload})    //nolint:errcheck,gosec
}
