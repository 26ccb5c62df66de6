package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialKiosk(t *testing.T, srv *httptest.Server, kioskID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/kiosk?kiosk_id=" + kioskID
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) realtime.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev realtime.Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestKioskHandler_BroadcastsConnectAndDisconnect(t *testing.T) {
	s := newTestServer(t, false)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	a := dialKiosk(t, srv, "kiosk-a")
	defer a.Close()

	ev := readEvent(t, a)
	assert.Equal(t, realtime.EventKioskWelcome, ev.Event)
	assert.Equal(t, "kiosk-a", ev.KioskID)
	assert.Equal(t, map[string]interface{}{"sessions": float64(1), "online": float64(1)}, ev.Data)

	ev = readEvent(t, a)
	assert.Equal(t, realtime.EventKioskConnected, ev.Event)
	assert.Equal(t, "kiosk-a", ev.KioskID)
	assert.False(t, ev.At.IsZero())

	b := dialKiosk(t, srv, "kiosk-b")
	ev = readEvent(t, b)
	assert.Equal(t, realtime.EventKioskWelcome, ev.Event)
	assert.Equal(t, map[string]interface{}{"sessions": float64(1), "online": float64(2)}, ev.Data)

	ev = readEvent(t, a)
	assert.Equal(t, realtime.EventKioskConnected, ev.Event)
	assert.Equal(t, "kiosk-b", ev.KioskID)

	require.NoError(t, b.Close())
	ev = readEvent(t, a)
	assert.Equal(t, realtime.EventKioskDisconnected, ev.Event)
	assert.Equal(t, "kiosk-b", ev.KioskID)

	assert.Eventually(t, func() bool {
		return s.hub.TotalSubscribers() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://kiosk.local"})

	req := httptest.NewRequest(http.MethodGet, "/ws/kiosk", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://kiosk.local")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://evil.test")
	assert.False(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
}
