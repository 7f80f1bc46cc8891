package protocol

// Inbound message types (client -> coordinator).
const (
	TypeCreateRoom   = "createRoom"
	TypeJoinRoom     = "joinRoom"
	TypeStartGame    = "startGame"
	TypeNextTurn     = "nextTurn"
	TypeCheckSession = "checkSession"
	TypeLeaveGame    = "leaveGame"
)

// Outbound message types (coordinator -> clients).
const (
	TypeRoomCreated       = "roomCreated"
	TypeJoinedRoom        = "joinedRoom"
	TypeJoinedAsSpectator = "joinedAsSpectator"
	TypeRejoinedRoom      = "rejoinedRoom"
	TypeUpdatePlayers     = "updatePlayers"
	TypeGameStarted       = "gameStarted"
	TypeNewTurn           = "newTurn"
	TypeHostChanged       = "hostChanged"
	TypeError             = "error"
)

// ClientMessage is the JSON structure received from clients.
type ClientMessage struct {
	Type     string `json:"type"`
	Name     string `json:"name,omitempty"`
	RoomCode string `json:"roomCode,omitempty"`
}

// PlayerInfo is the membership view shared with every room member.
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomAck acknowledges room entry to a single client. Type is one of
// roomCreated, joinedRoom, or joinedAsSpectator.
type RoomAck struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
}

// RejoinedRoom acknowledges a successful session rejoin.
type RejoinedRoom struct {
	Type     string `json:"type"` // "rejoinedRoom"
	RoomCode string `json:"roomCode"`
	IsHost   bool   `json:"isHost"`
}

// UpdatePlayers is the room-wide membership refresh.
type UpdatePlayers struct {
	Type       string       `json:"type"` // "updatePlayers"
	Players    []PlayerInfo `json:"players"`
	HostID     string       `json:"hostId"`
	Spectators []PlayerInfo `json:"spectators"`
}

// RoundResult is the per-player round fan-out. Exactly one recipient per
// round gets IsImposter true, and that message carries a null word: the
// secret must never reach the imposter's channel in any field.
type RoundResult struct {
	Type       string  `json:"type"` // "gameStarted" or "newTurn"
	Word       *string `json:"word"`
	IsImposter bool    `json:"isImposter"`
}

// HostChanged announces host failover to the whole room.
type HostChanged struct {
	Type      string `json:"type"` // "hostChanged"
	NewHostID string `json:"newHostId"`
}

// ErrorMessage is sent to the failing caller only.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}
