package websocket

import "github.com/soupclass/soup-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is the only message shape clients send.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventReady      Event = "ready"
	EventSlotUpdate Event = "slot_update"
	EventError      Event = "error"
	EventPong       Event = "pong"
)

// ReadyResponse is sent once the Redis subscription is live.
type ReadyResponse struct {
	Event Event `json:"event"`
}

// SlotUpdateResponse carries one course schedule availability change.
type SlotUpdateResponse struct {
	Event Event            `json:"event"`
	Data  model.SlotUpdate `json:"data"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
