package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"listenerlab/internal/config"
	"listenerlab/internal/service"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func receive(t *testing.T, conn *Connection) Message {
	t.Helper()
	select {
	case data, ok := <-conn.Send:
		require.True(t, ok, "send channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
	return Message{}
}

func TestHub_BroadcastToHosts(t *testing.T) {
	defer goleak.VerifyNone(t)
	hub := NewHub(nil)
	defer hub.Close()

	a := &Connection{HostID: "a", Send: make(chan []byte, 4), Hub: hub}
	b := &Connection{HostID: "b", Send: make(chan []byte, 4), Hub: hub}
	hub.Register(a)
	hub.Register(b)

	hub.BroadcastToHosts(service.EventProfileCompleted, map[string]string{"submissionId": "sub-1"})

	for _, conn := range []*Connection{a, b} {
		msg := receive(t, conn)
		assert.Equal(t, MsgProfileCompleted, msg.Type)
		assert.JSONEq(t, `{"submissionId":"sub-1"}`, string(msg.Payload))
	}

	hub.Unregister(a)
	_, ok := <-a.Send
	assert.False(t, ok, "unregister closes the send channel")

	hub.BroadcastToHosts(service.EventProfileCompleted, map[string]string{"submissionId": "sub-2"})
	msg := receive(t, b)
	assert.JSONEq(t, `{"submissionId":"sub-2"}`, string(msg.Payload))
	assert.Equal(t, 1, hub.Count())
}

func TestHub_CloseDisconnectsHosts(t *testing.T) {
	defer goleak.VerifyNone(t)
	hub := NewHub(nil)
	conn := &Connection{HostID: "a", Send: make(chan []byte, 1), Hub: hub}
	hub.Register(conn)

	hub.Close()
	hub.Close()

	select {
	case _, ok := <-conn.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("connection not closed")
	}

	// no-ops once closed
	hub.BroadcastToHosts(service.EventProfileCompleted, nil)
	hub.Unregister(conn)
}

func TestHandler_DashboardWS(t *testing.T) {
	auth := service.NewAuthService(&config.Config{JWTSecret: "s", HostUsername: "h", HostPassword: "p"})
	hub := NewHub(nil)
	defer hub.Close()

	srv := httptest.NewServer(http.HandlerFunc(NewHandler(hub, auth, nil).DashboardWS))
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	respondent, err := auth.GenerateRespondentToken("s1")
	require.NoError(t, err)
	_, resp, err = websocket.DefaultDialer.Dial(wsURL+"?token="+respondent, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	login, err := auth.Login("h", "p")
	require.NoError(t, err)
	client, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+login.Token, nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToHosts(service.EventProfileCompleted, map[string]string{"personaId": "attuned"})

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	require.NoError(t, client.ReadJSON(&msg))
	assert.Equal(t, MsgProfileCompleted, msg.Type)
	assert.JSONEq(t, `{"personaId":"attuned"}`, string(msg.Payload))
}
