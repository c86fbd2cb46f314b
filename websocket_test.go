package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Starts a feed that records the first client message, pushes messages
// and closes normally. With hold set it only waits for the client to leave.
func newFeedServer(t *testing.T, messages []string, hold bool) (*httptest.Server, chan string) {
	t.Helper()

	hello := make(chan string, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		if hold {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}

		conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		if _, msg, err := conn.ReadMessage(); err == nil {
			hello <- string(msg)
		}

		for _, m := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
				return
			}
		}

		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
		)
	}))
	t.Cleanup(srv.Close)

	return srv, hello
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWSClientReadMessages(t *testing.T) {
	srv, hello := newFeedServer(t, []string{
		readTestdata(t, "page.html"),
		"%u21A8", // corrupt, skipped
		readTestdata(t, "mini.b64"),
	}, false)

	config := testConfig()
	config.URL = wsURL(srv)
	config.Hello = `{"a":111}`

	var got [][]byte
	ws := NewWSClient(config, NewPayloadDecoder(), func(data []byte) error {
		got = append(got, data)
		return nil
	})

	require.NoError(t, ws.Connect())
	defer ws.Close()

	require.NoError(t, ws.SendMessage([]byte(config.Hello)))
	assert.Equal(t, `{"a":111}`, <-hello)

	require.NoError(t, ws.ReadMessages(context.Background()))

	require.Len(t, got, 2)
	for _, data := range got {
		assert.JSONEq(t, readTestdata(t, "mini.json"), string(data))
	}
}

func TestWSClientNotConnected(t *testing.T) {
	ws := NewWSClient(testConfig(), NewPayloadDecoder(), nil)

	assert.Error(t, ws.SendMessage([]byte("x")))
	assert.Error(t, ws.ReadMessages(context.Background()))
	assert.NoError(t, ws.Close())
}

func TestWSClientConnectFails(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	config := testConfig()
	config.URL = wsURL(srv)

	err := NewWSClient(config, NewPayloadDecoder(), nil).Connect()
	assert.ErrorContains(t, err, "failed to connect")
}

func TestClientWatch(t *testing.T) {
	srv, _ := newFeedServer(t, []string{readTestdata(t, "page.html")}, false)

	config := testConfig()
	config.URL = wsURL(srv)

	var out bytes.Buffer
	c := NewClient(config, &out, false)

	require.NoError(t, c.Watch(context.Background()))
	assert.Contains(t, out.String(), `"publicationDate": "2023-05-01"`)
}

func TestClientWatchCanceled(t *testing.T) {
	srv, _ := newFeedServer(t, nil, true)

	config := testConfig()
	config.URL = wsURL(srv)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- NewClient(config, &out, false).Watch(ctx)
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
	assert.Empty(t, out.String())
}
