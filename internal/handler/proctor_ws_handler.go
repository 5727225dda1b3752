package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/parikshasetu/assessment-core/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allow list permits all origins (development mode).
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

// ProctorWSHandler streams violation events to proctoring teachers in
// real time. Events arrive over the per-exam redis channel the violation
// service publishes to.
type ProctorWSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewProctorWSHandler creates a new ProctorWSHandler.
func NewProctorWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *ProctorWSHandler {
	return &ProctorWSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "proctor_ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// ViolationStream godoc
// WS /ws/v1/exams/:exam_id/violations
// Upgrades to WebSocket and relays each violation recorded for the exam
// as one JSON text frame, until the client disconnects.
func (h *ProctorWSHandler) ViolationStream(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int64("exam_id", examID).Logger()

	sub := h.rdb.Subscribe(c.Request.Context(), config.ExamViolationChannel(examID))
	defer sub.Close()

	// Drain client frames so pings are answered and a close frame ends
	// the stream; closing the subscription unblocks the relay loop.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sub.Close()
				return
			}
		}
	}()

	wsLog.Info().Msg("Proctor connected")
	for msg := range sub.Channel() {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			wsLog.Debug().Err(err).Msg("Proctor write failed, closing stream")
			return
		}
	}
	wsLog.Info().Msg("Proctor disconnected")
}
