package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub()
	go hub.Run(ctx)
	return hub
}

// boardClient registers a connectionless client in the board room.
func boardClient(t *testing.T, hub *Hub, userID string) *Client {
	t.Helper()
	c := NewClient(hub, userID, nil)
	hub.register <- c
	hub.JoinRoom(c, RoomBoard)
	return c
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered")
	}
	return Message{}
}

func TestBroadcastReachesActorToo(t *testing.T) {
	hub := runHub(t)
	actor := boardClient(t, hub, "u1")
	other := boardClient(t, hub, "u2")

	NewBroadcaster(hub).BroadcastProjectStatusChanged("p1", "Lead", "Cotizacion", "u1")

	for _, c := range []*Client{actor, other} {
		msg := receive(t, c)
		assert.Equal(t, MessageProjectStatusChanged, msg.Type)
		assert.Equal(t, "p1", msg.Payload["projectId"])
		assert.Equal(t, "Cotizacion", msg.Payload["newStatus"])
		assert.Equal(t, "u1", msg.Payload["changedByUser"])
	}
}

func TestSendToRoomExclude(t *testing.T) {
	hub := runHub(t)
	skipped := boardClient(t, hub, "u1")
	target := boardClient(t, hub, "u2")

	hub.SendToRoom(RoomBoard, MessageProjectDeleted, map[string]interface{}{"projectId": "p1"}, "u1")

	assert.Equal(t, MessageProjectDeleted, receive(t, target).Type)
	select {
	case <-skipped.Send:
		t.Fatal("excluded user received the message")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRoomMembership(t *testing.T) {
	hub := runHub(t)
	c := boardClient(t, hub, "u1")
	require.Eventually(t, func() bool { return hub.ConnectedClients() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, hub.RoomSize(RoomBoard))

	hub.LeaveRoom(c, RoomBoard)
	assert.Equal(t, 0, hub.RoomSize(RoomBoard))

	hub.leave(c)
	require.Eventually(t, func() bool { return hub.ConnectedClients() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNilBroadcasterIsNoop(t *testing.T) {
	var b *Broadcaster
	assert.NotPanics(t, func() {
		b.BroadcastProjectCreated(map[string]interface{}{"id": "p1"}, "u1")
		b.BroadcastProjectUpdated(nil, []string{"name"}, "u1")
		b.BroadcastProjectStatusChanged("p1", "Lead", "Entregado", "u1")
		b.BroadcastProjectDeleted("p1", "u1")
	})
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestHandshake(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := runHub(t)
	h := NewHandler(hub, "ws-secret", nil)

	r := gin.New()
	r.GET("/ws", h.HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	expired := signed(t, "ws-secret", jwt.MapClaims{"userId": "u1", "exp": time.Now().Add(-time.Hour).Unix()})
	_, resp, err = websocket.DefaultDialer.Dial(wsURL+"?token="+expired, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	valid := signed(t, "ws-secret", jwt.MapClaims{"userId": "u1", "exp": time.Now().Add(time.Hour).Unix()})
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+valid, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.RoomSize(RoomBoard) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(ClientMessage{Action: "ping"}))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal([]byte(strings.Split(string(data), "\n")[0]), &msg))
	assert.Equal(t, MessagePong, msg.Type)
}
