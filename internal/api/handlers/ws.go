package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorilla "github.com/gorilla/websocket"

	"go-bookmark-hub-example/internal/logger"
	"go-bookmark-hub-example/internal/websocket"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// NotificationSocket upgrades the connection and registers it with the
// manager so the client receives operation notifications as they happen.
func NotificationSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", logger.Error(err))
		return
	}

	client := &websocket.Client{ID: uuid.NewString(), Conn: conn}
	wsManager.RegisterClient(client)

	// The client never sends application messages; the read loop exists to
	// notice the connection closing.
	go func() {
		defer func() {
			wsManager.UnregisterClient(client)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
