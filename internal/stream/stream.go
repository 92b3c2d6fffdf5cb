// Package stream exposes the event feed over a WebSocket. A connected client
// receives the change notifications for its own domain — the channel it is
// subscribed to comes from the verified JWT, so there is no way to listen in
// on another tenant.
package stream

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lalith-99/luxgrid/internal/events"
	"github.com/lalith-99/luxgrid/internal/middleware"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers are not an expected client; controllers and tooling connect
	// with a bearer token, which origin checks add nothing to.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

type Handler struct {
	redis  *redis.Client
	logger *zap.Logger
}

func NewHandler(redisClient *redis.Client, logger *zap.Logger) *Handler {
	return &Handler{redis: redisClient, logger: logger}
}

// Serve upgrades the connection and forwards the domain's Redis channel to
// the socket until either side goes away.
func (h *Handler) Serve(c *gin.Context) {
	domainID := middleware.GetDomainID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	sub := h.redis.Subscribe(ctx, events.Channel(domainID))
	defer sub.Close()

	// Reader goroutine: the client sends nothing meaningful, but reading is
	// what surfaces close frames and keeps pong handling alive.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	msgs := sub.Channel()
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}
