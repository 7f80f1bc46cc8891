package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"imposterparty/internal/db"
	"imposterparty/internal/game"
	"imposterparty/internal/metrics"
	"imposterparty/internal/protocol"
	"imposterparty/internal/wshub"
)

type Server struct {
	Coord   *game.Coordinator
	Hub     *wshub.Hub
	Metrics *metrics.Metrics
	DB      *db.DB
}

// handleWS upgrades the connection, assigns it a fresh channel identity,
// and runs the read loop until the client goes away. The identity is never
// reused: reconnecting clients get a new one and recover their seat through
// checkSession.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("[WS] Upgrade failed: %v\n", err)
		return
	}

	identity := uuid.New().String()
	client := &wshub.Client{
		ID:   identity,
		Conn: conn,
		Send: make(chan []byte, 32),
	}
	s.Hub.Register(client)
	s.Metrics.ConnectedClients.Inc()
	log.Printf("[WS] Client %s connected\n", identity)

	ctx := r.Context()
	go client.WritePump(ctx)

	s.readLoop(ctx, client)

	s.Hub.Unregister(identity)
	s.Metrics.ConnectedClients.Dec()
	s.Coord.Disconnect(identity)
	conn.Close(websocket.StatusNormalClosure, "")
	log.Printf("[WS] Client %s disconnected\n", identity)
}

func (s *Server) readLoop(ctx context.Context, client *wshub.Client) {
	for {
		_, data, err := client.Conn.Read(ctx)
		if err != nil {
			return
		}

		var msg protocol.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Bad message from %s: %v\n", client.ID, err)
			continue
		}
		s.dispatch(client.ID, msg)
	}
}

// dispatch routes one decoded client message to the coordinator. Room codes
// are normalized here so the game layer only ever sees canonical uppercase.
func (s *Server) dispatch(identity string, msg protocol.ClientMessage) {
	roomCode := strings.ToUpper(strings.TrimSpace(msg.RoomCode))

	switch msg.Type {
	case protocol.TypeCreateRoom:
		s.Coord.CreateRoom(identity, msg.Name)
	case protocol.TypeJoinRoom:
		s.Coord.JoinRoom(identity, roomCode, msg.Name)
	case protocol.TypeStartGame:
		s.Coord.StartGame(identity, roomCode)
	case protocol.TypeNextTurn:
		s.Coord.NextTurn(identity, roomCode)
	case protocol.TypeCheckSession:
		s.Coord.CheckSession(identity, msg.Name, roomCode)
	case protocol.TypeLeaveGame:
		s.Coord.LeaveGame(identity, roomCode)
	default:
		log.Printf("[WS] Unknown message type %q from %s\n", msg.Type, identity)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	fmt.Fprintln(w, "Imposter Party coordinator. Connect over WebSocket at /ws.")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			status = "db_error"
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"%s","error":"%s"}`, status, err.Error())
			return
		}
	}
	fmt.Fprintf(w, `{"status":"%s"}`, status)
}
