package relay

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dormakabaservicesfr-a11y/Daycousu2/pkg/models"
)

// Notification is invoked once per record per observed change. value is
// nil (or the JSON null literal) for a tombstone.
type Notification func(key string, value json.RawMessage)

// frame is one message exchanged with the replication relay. A "join"
// frame scopes the connection to a board; the relay then replays the
// board's current records as "put" frames, terminated by a
// "snapshot-end" marker, and fans out every subsequent write to all
// subscribers, including the originating client. Deletions arrive
// either as a "put" with a null value or as a "del" frame.
type frame struct {
	Type  string          `json:"type"` // "join", "put", "del" or "snapshot-end"
	Board string          `json:"board,omitempty"`
	Key   string          `json:"key,omitempty"`
	Value json.RawMessage `json:"value,omitempty"` // null marks a deletion
}

// Client wraps the opaque replication relay. It exposes put/put-null
// writes and a subscription feed of per-record changes, and keeps a
// background connection with reconnect. Writes made while disconnected
// are queued and flushed on reconnect; they are always dispatched to
// local subscribers immediately, so the UI behaves the same either way
// and the eventual relay echo is discarded upstream as a duplicate.
type Client struct {
	relayURL string
	board    string

	mu         sync.Mutex
	conn       *websocket.Conn
	connected  bool
	closed     bool
	subs       map[int]Notification
	nextSubID  int
	outbox     []frame
	onStatus   func(connected bool)
	onSnapshot func()

	stopCh chan struct{}
}

// NewClient creates a relay client for one board. Call Start to begin
// connecting.
func NewClient(relayURL, board string) *Client {
	return &Client{
		relayURL: relayURL,
		board:    board,
		subs:     make(map[int]Notification),
		stopCh:   make(chan struct{}),
	}
}

// SetStatusHandler registers a callback fired on every connect and
// disconnect. Must be called before Start.
func (c *Client) SetStatusHandler(fn func(connected bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStatus = fn
}

// SetSnapshotHandler registers a callback fired when the relay signals
// the end of its full-state replay after a join. Must be called before
// Start.
func (c *Client) SetSnapshotHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSnapshot = fn
}

// Subscribe registers a callback for record change notifications and
// returns the function that unregisters it
func (c *Client) Subscribe(cb Notification) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = cb

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Start launches the background connect loop
func (c *Client) Start() {
	go c.connectLoop()
}

// Close tears down the connection and stops reconnecting
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	conn := c.conn
	c.mu.Unlock()

	close(c.stopCh)
	if conn != nil {
		conn.Close()
	}
}

// IsConnected reports whether the relay connection is currently up
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Put upserts a record under key. The value is flattened to the wire
// form before the write. Fire-and-forget: a delivery failure only queues
// the frame for the next reconnect.
func (c *Client) Put(key string, e *models.Event) error {
	value, err := models.EncodeEvent(e)
	if err != nil {
		return err
	}
	c.write(frame{Type: "put", Key: key, Value: value})
	return nil
}

// PutNull marks the record for key deleted. The relay propagates the
// null marker rather than physically removing history.
func (c *Client) PutNull(key string) error {
	c.write(frame{Type: "put", Key: key, Value: json.RawMessage("null")})
	return nil
}

// write dispatches the frame to local subscribers (the replication
// service fans writes back to the originator, so local dispatch keeps
// offline behavior identical) and sends or queues it for the relay
func (c *Client) write(f frame) {
	c.dispatch(f.Key, f.Value)

	c.mu.Lock()
	conn := c.conn
	if conn == nil {
		c.outbox = append(c.outbox, f)
		c.mu.Unlock()
		log.Printf("Relay offline, queued write for key %s (%d pending)", f.Key, len(c.outbox))
		return
	}
	err := conn.WriteJSON(f)
	if err != nil {
		c.outbox = append(c.outbox, f)
	}
	c.mu.Unlock()

	if err != nil {
		log.Printf("Relay write failed for key %s, queued for retry: %v", f.Key, err)
	}
}

func (c *Client) dispatch(key string, value json.RawMessage) {
	c.mu.Lock()
	callbacks := make([]Notification, 0, len(c.subs))
	for _, cb := range c.subs {
		callbacks = append(callbacks, cb)
	}
	c.mu.Unlock()

	if string(value) == "null" {
		value = nil
	}
	for _, cb := range callbacks {
		cb(key, value)
	}
}

func (c *Client) connectLoop() {
	backoff := time.Second

	for {
		select {
		case <-c.stopCh:
			return
		default:
		}

		conn, err := c.dial()
		if err != nil {
			log.Printf("Relay connection failed: %v (retrying in %s)", err, backoff)
			select {
			case <-c.stopCh:
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}

		backoff = time.Second
		log.Printf("Connected to relay %s (board %s)", c.relayURL, c.board)
		c.setConnected(conn)

		c.readLoop(conn)

		c.setDisconnected()
		log.Printf("Relay connection lost")
	}
}

func (c *Client) dial() (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(c.relayURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial relay: %w", err)
	}

	if err := conn.WriteJSON(frame{Type: "join", Board: c.board}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to join board: %w", err)
	}
	return conn, nil
}

// setConnected publishes the new connection and drains the outbox
// while still holding the write mutex: queued frames must reach the
// relay before any fresh Put for the same key, and the conn only ever
// has one writer (write holds the same mutex).
func (c *Client) setConnected(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.connected = true

	pending := c.outbox
	c.outbox = nil
	for i, f := range pending {
		if err := conn.WriteJSON(f); err != nil {
			log.Printf("Relay flush failed at %d/%d: %v", i, len(pending), err)
			c.outbox = pending[i:]
			break
		}
	}
	if len(pending) > 0 && len(c.outbox) == 0 {
		log.Printf("Flushed %d queued writes to relay", len(pending))
	}

	onStatus := c.onStatus
	c.mu.Unlock()

	if onStatus != nil {
		onStatus(true)
	}
}

func (c *Client) setDisconnected() {
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	wasConnected := c.connected
	c.connected = false
	onStatus := c.onStatus
	c.mu.Unlock()

	if wasConnected && onStatus != nil {
		onStatus(false)
	}
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Relay read error: %v", err)
			}
			return
		}

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			log.Printf("Ignoring malformed relay frame: %v", err)
			continue
		}

		switch f.Type {
		case "put":
			if f.Key != "" {
				c.dispatch(f.Key, f.Value)
			}
		case "del":
			if f.Key != "" {
				c.dispatch(f.Key, nil)
			}
		case "snapshot-end":
			c.mu.Lock()
			onSnapshot := c.onSnapshot
			c.mu.Unlock()
			if onSnapshot != nil {
				onSnapshot()
			}
		}
	}
}
