package relay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
)

var upgrader = websocket.Upgrader{}

type received struct {
	key   string
	value json.RawMessage
}

// fakeRelay is a minimal in-test replication service: it records the
// join frame and lets the test script the frames it pushes back
type fakeRelay struct {
	server *httptest.Server
	frames chan frame // frames received from the client
	conns  chan *websocket.Conn
}

func newFakeRelay(t *testing.T) *fakeRelay {
	t.Helper()

	fr := &fakeRelay{
		frames: make(chan frame, 16),
		conns:  make(chan *websocket.Conn, 1),
	}

	fr.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		fr.conns <- conn

		for {
			var f frame
			if err := conn.ReadJSON(&f); err != nil {
				return
			}
			fr.frames <- f
		}
	}))
	t.Cleanup(fr.server.Close)

	return fr
}

func (fr *fakeRelay) url() string {
	return "ws" + strings.TrimPrefix(fr.server.URL, "http")
}

func (fr *fakeRelay) expectFrame(t *testing.T) frame {
	t.Helper()
	select {
	case f := <-fr.frames:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame from client")
		return frame{}
	}
}

func (fr *fakeRelay) conn(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case c := <-fr.conns:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for client connection")
		return nil
	}
}

func expectNotification(t *testing.T, ch chan received) received {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return received{}
	}
}

func TestClientJoinsBoardOnConnect(t *testing.T) {
	fr := newFakeRelay(t)

	client := NewClient(fr.url(), "day-events")
	client.Start()
	defer client.Close()

	join := fr.expectFrame(t)
	assert.Equal(t, "join", join.Type)
	assert.Equal(t, "day-events", join.Board)
}

func TestClientReceivesRemotePuts(t *testing.T) {
	fr := newFakeRelay(t)

	client := NewClient(fr.url(), "day-events")
	notifications := make(chan received, 4)
	client.Subscribe(func(key string, value json.RawMessage) {
		notifications <- received{key, value}
	})
	client.Start()
	defer client.Close()

	fr.expectFrame(t) // join
	conn := fr.conn(t)

	require.NoError(t, conn.WriteJSON(frame{
		Type:  "put",
		Key:   "e1",
		Value: json.RawMessage(`{"title":"Pique-nique","month":"Juin"}`),
	}))

	n := expectNotification(t, notifications)
	assert.Equal(t, "e1", n.key)
	assert.JSONEq(t, `{"title":"Pique-nique","month":"Juin"}`, string(n.value))

	// A null value arrives as a nil tombstone
	require.NoError(t, conn.WriteJSON(frame{Type: "put", Key: "e1", Value: json.RawMessage("null")}))
	n = expectNotification(t, notifications)
	assert.Equal(t, "e1", n.key)
	assert.Nil(t, n.value)
}

func TestPutDispatchesLocallyWhileOffline(t *testing.T) {
	client := NewClient("ws://127.0.0.1:1/never", "day-events")
	notifications := make(chan received, 4)
	client.Subscribe(func(key string, value json.RawMessage) {
		notifications <- received{key, value}
	})
	// Never started: fully offline

	event := &models.Event{ID: "e1", Title: "Soirée", Month: "Juin", MaxParticipants: 4}
	require.NoError(t, client.Put("e1", event))

	n := expectNotification(t, notifications)
	assert.Equal(t, "e1", n.key)
	decoded, err := models.DecodeEvent("e1", n.value)
	require.NoError(t, err)
	assert.Equal(t, "Soirée", decoded.Title)

	require.NoError(t, client.PutNull("e1"))
	n = expectNotification(t, notifications)
	assert.Nil(t, n.value)
}

func TestOfflineWritesFlushOnConnect(t *testing.T) {
	fr := newFakeRelay(t)

	client := NewClient(fr.url(), "day-events")

	// Queue a write before the connection exists
	event := &models.Event{ID: "e1", Title: "Soirée", Month: "Juin", MaxParticipants: 4}
	require.NoError(t, client.Put("e1", event))

	client.Start()
	defer client.Close()

	join := fr.expectFrame(t)
	assert.Equal(t, "join", join.Type)

	flushed := fr.expectFrame(t)
	assert.Equal(t, "put", flushed.Type)
	assert.Equal(t, "e1", flushed.Key)
}

func TestDelFrameDeliversTombstone(t *testing.T) {
	fr := newFakeRelay(t)

	client := NewClient(fr.url(), "day-events")
	notifications := make(chan received, 4)
	client.Subscribe(func(key string, value json.RawMessage) {
		notifications <- received{key, value}
	})
	client.Start()
	defer client.Close()

	fr.expectFrame(t) // join
	conn := fr.conn(t)

	require.NoError(t, conn.WriteJSON(frame{Type: "del", Key: "e1"}))

	n := expectNotification(t, notifications)
	assert.Equal(t, "e1", n.key)
	assert.Nil(t, n.value)
}

func TestSnapshotEndFiresHandler(t *testing.T) {
	fr := newFakeRelay(t)

	client := NewClient(fr.url(), "day-events")
	done := make(chan struct{}, 1)
	client.SetSnapshotHandler(func() {
		done <- struct{}{}
	})
	client.Start()
	defer client.Close()

	fr.expectFrame(t) // join
	conn := fr.conn(t)

	require.NoError(t, conn.WriteJSON(frame{
		Type:  "put",
		Key:   "e1",
		Value: json.RawMessage(`{"title":"Soirée","month":"Juin"}`),
	}))
	require.NoError(t, conn.WriteJSON(frame{Type: "snapshot-end"}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot handler")
	}
}

func TestQueuedWritesFlushBeforeNewOnes(t *testing.T) {
	fr := newFakeRelay(t)

	client := NewClient(fr.url(), "day-events")

	// Two writes queued while offline must reach the relay in order,
	// before anything written after the connection comes up
	require.NoError(t, client.Put("e1", &models.Event{ID: "e1", Title: "Soirée", Month: "Juin", MaxParticipants: 4}))
	require.NoError(t, client.Put("e2", &models.Event{ID: "e2", Title: "Brunch", Month: "Juillet", MaxParticipants: 4}))

	client.Start()
	defer client.Close()

	join := fr.expectFrame(t)
	assert.Equal(t, "join", join.Type)

	assert.Equal(t, "e1", fr.expectFrame(t).Key)
	assert.Equal(t, "e2", fr.expectFrame(t).Key)

	require.NoError(t, client.Put("e1", &models.Event{ID: "e1", Title: "Soirée v2", Month: "Juin", MaxParticipants: 4}))
	fresh := fr.expectFrame(t)
	assert.Equal(t, "e1", fresh.Key)

	decoded, err := models.DecodeEvent("e1", fresh.Value)
	require.NoError(t, err)
	assert.Equal(t, "Soirée v2", decoded.Title)
}

func TestEchoedWriteReachesSubscribers(t *testing.T) {
	fr := newFakeRelay(t)

	client := NewClient(fr.url(), "day-events")
	notifications := make(chan received, 4)
	client.Subscribe(func(key string, value json.RawMessage) {
		notifications <- received{key, value}
	})
	client.Start()
	defer client.Close()

	fr.expectFrame(t) // join
	conn := fr.conn(t)

	event := &models.Event{ID: "e1", Title: "Soirée", Month: "Juin", MaxParticipants: 4}
	require.NoError(t, client.Put("e1", event))

	// Local dispatch fires first
	expectNotification(t, notifications)

	// The relay fans the write back to the originator
	sent := fr.expectFrame(t)
	require.NoError(t, conn.WriteJSON(sent))

	// The echo is delivered too; deduplication is the reconciler's job
	echo := expectNotification(t, notifications)
	assert.Equal(t, "e1", echo.key)
}

func TestStatusHandler(t *testing.T) {
	fr := newFakeRelay(t)

	client := NewClient(fr.url(), "day-events")
	statuses := make(chan bool, 4)
	client.SetStatusHandler(func(connected bool) {
		statuses <- connected
	})
	client.Start()
	defer client.Close()

	select {
	case connected := <-statuses:
		assert.True(t, connected)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connect status")
	}
	assert.Eventually(t, client.IsConnected, 2*time.Second, 10*time.Millisecond)

	// Dropping the server side connection reports a disconnect
	fr.conn(t).Close()
	select {
	case connected := <-statuses:
		assert.False(t, connected)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for disconnect status")
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	client := NewClient("ws://127.0.0.1:1/never", "day-events")

	var count int
	unsubscribe := client.Subscribe(func(string, json.RawMessage) {
		count++
	})

	require.NoError(t, client.PutNull("e1"))
	unsubscribe()
	require.NoError(t, client.PutNull("e2"))

	assert.Equal(t, 1, count)
}
