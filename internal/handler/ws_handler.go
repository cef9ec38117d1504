package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/service"
	ws "github.com/soupclass/soup-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams course schedule slot changes to browsers.
type WSHandler struct {
	slots    *service.SlotPublisher
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(slots *service.SlotPublisher, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		slots:    slots,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// SlotStream godoc
// WS /ws/v1/course-schedules/stream
// Forwards every published slot update until the client disconnects.
func (h *WSHandler) SlotStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := h.slots.Subscribe(ctx)
	defer sub.Close()

	// Receive confirms the subscription before clients are told they are live.
	if _, err := sub.Receive(ctx); err != nil {
		h.log.Error().Err(err).Msg("Slot subscription failed")
		ws.WriteError(conn, "subscription failed")
		return
	}

	wsLog := h.log.With().Str("remote", c.ClientIP()).Logger()
	wsLog.Info().Msg("Slot stream connected")
	defer wsLog.Info().Msg("Slot stream disconnected")

	if err := ws.WriteTyped(conn, ws.ReadyResponse{Event: ws.EventReady}); err != nil {
		return
	}

	pongs := make(chan struct{}, 1)
	go h.readLoop(conn, cancel, pongs, wsLog)

	ticker := time.NewTicker(ws.PingPeriod)
	defer ticker.Stop()

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-pongs:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				return
			}
		case <-ticker.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var update model.SlotUpdate
			if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
				wsLog.Warn().Err(err).Msg("Dropping malformed slot update")
				continue
			}
			if err := ws.WriteTyped(conn, ws.SlotUpdateResponse{Event: ws.EventSlotUpdate, Data: update}); err != nil {
				return
			}
		}
	}
}

// readLoop owns all reads on conn. Writes stay on the SlotStream goroutine,
// so ping actions are handed over through pongs.
func (h *WSHandler) readLoop(conn *websocket.Conn, cancel context.CancelFunc, pongs chan<- struct{}, wsLog zerolog.Logger) {
	defer cancel()
	ws.PrepareRead(conn)

	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			}
			return
		}

		if msg.Action == ws.ActionPing {
			select {
			case pongs <- struct{}{}:
			default:
			}
		}
	}
}
