package ws

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	return conn
}

func readWithDeadline(t *testing.T, conn *websocket.Conn) (string, error) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	return string(msg), err
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub(nil, "events", nil, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWS))
	defer srv.Close()

	conn := dialHub(t, srv)
	defer conn.Close()

	// The hello arrives first, then the broadcast.
	msg, err := readWithDeadline(t, conn)
	require.NoError(t, err)
	assert.Contains(t, msg, `"event":"connected"`)

	h.broadcast <- []byte(`{"event":"refresh_completed"}`)
	msg, err = readWithDeadline(t, conn)
	require.NoError(t, err)
	assert.Contains(t, msg, "refresh_completed")
}

func TestHubShutdownUnblocksClients(t *testing.T) {
	h := NewHub(nil, "events", nil, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan struct{})
	go func() {
		_ = h.Run(ctx)
		close(runDone)
	}()

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWS))
	defer srv.Close()

	conn := dialHub(t, srv)
	defer conn.Close()

	_, err := readWithDeadline(t, conn)
	require.NoError(t, err)

	cancel()
	select {
	case <-runDone:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	// The existing client's connection unwinds instead of hanging.
	for {
		if _, err := readWithDeadline(t, conn); err != nil {
			break
		}
	}

	// A connection arriving after shutdown is closed, not left blocked on
	// registration.
	late := dialHub(t, srv)
	defer late.Close()
	_, err = readWithDeadline(t, late)
	assert.Error(t, err)
}
