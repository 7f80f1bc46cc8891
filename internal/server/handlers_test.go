package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"imposterparty/internal/game"
	"imposterparty/internal/metrics"
	"imposterparty/internal/protocol"
	"imposterparty/internal/random"
	"imposterparty/internal/rooms"
	"imposterparty/internal/sessions"
	"imposterparty/internal/words"
	"imposterparty/internal/wshub"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	src := random.CryptoSource{}
	roomStore := rooms.NewStore(src)
	sessionStore := sessions.NewStore()
	hub := wshub.NewHub()
	m := metrics.NewWith("imposterparty", prometheus.NewRegistry())

	wordList, err := words.New([]string{"submarine", "lighthouse", "zoo"})
	if err != nil {
		t.Fatal(err)
	}

	// Long grace period so disconnect timers never fire mid-test.
	coord := game.NewCoordinator(roomStore, sessionStore, wordList, src, hub, time.Hour)
	coord.Metrics = m

	srv := &Server{
		Coord:   coord,
		Hub:     hub,
		Metrics: m,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleHome)
	mux.HandleFunc("/ws", srv.handleWS)
	mux.HandleFunc("/health", srv.handleHealth)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return srv, ts
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", url, err)
	}
	t.Cleanup(func() { conn.CloseNow() })
	return conn
}

func sendMsg(t *testing.T, conn *websocket.Conn, msg protocol.ClientMessage) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		t.Fatalf("writing %s: %v", msg.Type, err)
	}
}

// readUntil reads frames until one with the wanted type arrives, discarding
// anything else (membership refreshes interleave with acks).
func readUntil(t *testing.T, conn *websocket.Conn, wantType string) map[string]any {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("waiting for %q: %v", wantType, err)
		}
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decoding frame: %v", err)
		}
		if msg["type"] == wantType {
			return msg
		}
	}
}

func TestHandleHome(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestHandleHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"status":"ok"}` {
		t.Errorf("body = %s", body)
	}
}

func TestWS_CreateRoom(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dialWS(t, ts)

	sendMsg(t, conn, protocol.ClientMessage{Type: protocol.TypeCreateRoom, Name: "Alice"})

	ack := readUntil(t, conn, protocol.TypeRoomCreated)
	code, _ := ack["roomCode"].(string)
	if len(code) != 6 {
		t.Errorf("room code = %q, want 6 characters", code)
	}

	update := readUntil(t, conn, protocol.TypeUpdatePlayers)
	players, _ := update["players"].([]any)
	if len(players) != 1 {
		t.Fatalf("players = %d, want 1", len(players))
	}
	if update["hostId"] == "" {
		t.Error("hostId should be set for the creator")
	}
}

func TestWS_JoinRoom_NotFound(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dialWS(t, ts)

	sendMsg(t, conn, protocol.ClientMessage{Type: protocol.TypeJoinRoom, RoomCode: "ZZZZZZ", Name: "Bob"})

	errMsg := readUntil(t, conn, protocol.TypeError)
	if errMsg["message"] != "Room not found" {
		t.Errorf("message = %q, want %q", errMsg["message"], "Room not found")
	}
}

func TestWS_JoinRoom_LowercaseCode(t *testing.T) {
	_, ts := newTestServer(t)

	host := dialWS(t, ts)
	sendMsg(t, host, protocol.ClientMessage{Type: protocol.TypeCreateRoom, Name: "Alice"})
	ack := readUntil(t, host, protocol.TypeRoomCreated)
	code := ack["roomCode"].(string)

	joiner := dialWS(t, ts)
	sendMsg(t, joiner, protocol.ClientMessage{
		Type:     protocol.TypeJoinRoom,
		RoomCode: strings.ToLower(code),
		Name:     "Bob",
	})

	joined := readUntil(t, joiner, protocol.TypeJoinedRoom)
	if joined["roomCode"] != code {
		t.Errorf("roomCode = %q, want %q", joined["roomCode"], code)
	}
}

func TestWS_FullRound(t *testing.T) {
	_, ts := newTestServer(t)

	host := dialWS(t, ts)
	sendMsg(t, host, protocol.ClientMessage{Type: protocol.TypeCreateRoom, Name: "Alice"})
	ack := readUntil(t, host, protocol.TypeRoomCreated)
	code := ack["roomCode"].(string)

	joiner := dialWS(t, ts)
	sendMsg(t, joiner, protocol.ClientMessage{Type: protocol.TypeJoinRoom, RoomCode: code, Name: "Bob"})
	readUntil(t, joiner, protocol.TypeJoinedRoom)

	// Wait until the host sees both players before starting.
	for {
		update := readUntil(t, host, protocol.TypeUpdatePlayers)
		if players, _ := update["players"].([]any); len(players) == 2 {
			break
		}
	}

	sendMsg(t, host, protocol.ClientMessage{Type: protocol.TypeStartGame, RoomCode: code})

	hostRound := readUntil(t, host, protocol.TypeGameStarted)
	joinerRound := readUntil(t, joiner, protocol.TypeGameStarted)

	imposters := 0
	for _, round := range []map[string]any{hostRound, joinerRound} {
		isImposter, _ := round["isImposter"].(bool)
		if isImposter {
			imposters++
			if round["word"] != nil {
				t.Errorf("imposter received word %v, want null", round["word"])
			}
		} else {
			word, ok := round["word"].(string)
			if !ok || word == "" {
				t.Errorf("player word = %v, want the round's word", round["word"])
			}
		}
	}
	if imposters != 1 {
		t.Errorf("imposters = %d, want exactly 1", imposters)
	}
}

func TestWS_MalformedMessage(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dialWS(t, ts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, []byte("not json")); err != nil {
		t.Fatal(err)
	}

	// Connection stays usable after a bad frame.
	sendMsg(t, conn, protocol.ClientMessage{Type: protocol.TypeCreateRoom, Name: "Alice"})
	readUntil(t, conn, protocol.TypeRoomCreated)
}
