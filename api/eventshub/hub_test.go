package eventshub

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyoez/airshare-go/types"
)

func TestBroadcastReachesSubscriber(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/events", HandleWebsocket)

	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// let the handler register the connection before broadcasting
	time.Sleep(50 * time.Millisecond)

	Publish(types.EventFileServed, "192.168.1.9", "blob.bin", 1234)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"kind":"file_served"`)
	assert.Contains(t, string(payload), `"name":"blob.bin"`)
	assert.Contains(t, string(payload), `"size":1234`)
}

func TestBroadcastNilEventIsNoop(t *testing.T) {
	h := New()
	h.Broadcast(nil) // must not panic with no subscribers
}
