package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/platform/logging"
	"github.com/birajlamsal/ApexGrid-Tournament-Platform/internal/usecase"
)

func TestHub_PublishReachesRoomOnly(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logging.NewNop())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, r.URL.Query().Get("room"))
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?room=t1", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.RoomSize("t1") == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Publish(ctx, "t2", usecase.EventTournamentUpdated, map[string]string{"match_id": "ignored"}))
	require.NoError(t, hub.Publish(ctx, "t1", usecase.EventTournamentUpdated, map[string]string{"match_id": "m1"}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type    string            `json:"type"`
		RoomID  string            `json:"room_id"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, sonic.Unmarshal(data, &msg))
	assert.Equal(t, usecase.EventTournamentUpdated, msg.Type)
	assert.Equal(t, "t1", msg.RoomID)
	assert.Equal(t, "m1", msg.Payload["match_id"])
}

func TestHub_RejectsUnknownOrigin(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub([]string{"https://apexgrid.gg"}, logging.NewNop())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, "t1")
	}))
	defer srv.Close()

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
