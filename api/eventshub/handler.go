package eventshub

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/moyoez/airshare-go/tool"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local network only, no origin policy
	},
}

// HandleWebsocket upgrades the connection and keeps it registered on the
// default hub until the client goes away.
func HandleWebsocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		tool.DefaultLogger.Debugf("Events websocket upgrade failed: %v", err)
		return
	}
	Default.Register(conn)
	defer func() {
		Default.Unregister(conn)
		conn.Close()
	}()

	// subscribers only listen; drain control frames until error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
