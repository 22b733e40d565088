package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/gray-logic-voice/internal/infrastructure/config"
)

// Default timeouts for hub operations.
const (
	defaultDialTimeout    = 10 * time.Second
	defaultCommandTimeout = 15 * time.Second
	defaultWriteTimeout   = 5 * time.Second
)

// Logger is the logging interface used by the Client.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Client is a WebSocket client for the hub's API.
//
// It performs the auth handshake on Connect and correlates command responses
// to callers by message id. A single read loop owns the connection's read
// side; writes are serialized by a mutex.
//
// Thread Safety: all methods are safe for concurrent use.
type Client struct {
	cfg    config.HubConfig
	logger Logger

	conn    *websocket.Conn
	writeMu sync.Mutex

	// pending maps in-flight command ids to their response channels.
	pending   map[int]chan serverMessage
	pendingMu sync.Mutex
	nextID    int

	closed   chan struct{}
	closeOne sync.Once
}

// Connect dials the hub, performs the auth handshake, and starts the read
// loop. The context bounds the dial and handshake only, not the connection
// lifetime.
func Connect(ctx context.Context, cfg config.HubConfig, logger Logger) (*Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, defaultDialTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dialling hub %s: %w", cfg.URL, err)
	}

	c := &Client{
		cfg:     cfg,
		logger:  logger,
		conn:    conn,
		pending: make(map[int]chan serverMessage),
		closed:  make(chan struct{}),
	}

	if err := c.authenticate(); err != nil {
		conn.Close() //nolint:errcheck // already failing
		return nil, err
	}

	go c.readLoop()

	c.logger.Debug("hub connected", "url", cfg.URL)
	return c, nil
}

// authenticate runs the auth_required → auth → auth_ok handshake.
// Must be called before the read loop starts; it reads directly.
func (c *Client) authenticate() error {
	var hello serverMessage
	if err := c.conn.ReadJSON(&hello); err != nil {
		return fmt.Errorf("reading hub greeting: %w", err)
	}
	if hello.Type != msgTypeAuthRequired {
		// Some hubs skip the greeting when auth is disabled.
		if hello.Type == msgTypeAuthOK {
			return nil
		}
		return fmt.Errorf("%w: unexpected greeting %q", ErrAuthFailed, hello.Type)
	}

	if err := c.writeJSON(authMessage{Type: msgTypeAuth, AccessToken: c.cfg.Token}); err != nil {
		return fmt.Errorf("sending auth: %w", err)
	}

	var reply serverMessage
	if err := c.conn.ReadJSON(&reply); err != nil {
		return fmt.Errorf("reading auth reply: %w", err)
	}
	switch reply.Type {
	case msgTypeAuthOK:
		return nil
	case msgTypeAuthInvalid:
		return fmt.Errorf("%w: %s", ErrAuthFailed, reply.Message)
	default:
		return fmt.Errorf("%w: unexpected auth reply %q", ErrAuthFailed, reply.Type)
	}
}

// readLoop dispatches id-correlated responses until the connection drops.
func (c *Client) readLoop() {
	for {
		var msg serverMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			select {
			case <-c.closed:
				// Close() was called; expected.
			default:
				c.logger.Warn("hub connection lost", "error", err)
			}
			c.failPending()
			return
		}

		if msg.Type != msgTypeResult {
			continue // state_changed events etc. are not our concern
		}

		c.pendingMu.Lock()
		ch, ok := c.pending[msg.ID]
		if ok {
			delete(c.pending, msg.ID)
		}
		c.pendingMu.Unlock()

		if ok {
			ch <- msg
		}
	}
}

// failPending unblocks every in-flight command after the connection drops.
func (c *Client) failPending() {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
}

// command sends one request and decodes its result payload into out.
func (c *Client) command(ctx context.Context, cmdType string, out any) error {
	c.pendingMu.Lock()
	c.nextID++
	id := c.nextID
	ch := make(chan serverMessage, 1)
	c.pending[id] = ch
	c.pendingMu.Unlock()

	if err := c.writeJSON(commandMessage{ID: id, Type: cmdType}); err != nil {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
		return fmt.Errorf("sending %s: %w", cmdType, err)
	}

	timeout := c.cfg.GetCommandTimeout()
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case msg, ok := <-ch:
		if !ok {
			return fmt.Errorf("%w: during %s", ErrClosed, cmdType)
		}
		if msg.Success != nil && !*msg.Success {
			if msg.Error != nil {
				return fmt.Errorf("%w: %s: %s (%s)", ErrCommandFailed, cmdType, msg.Error.Message, msg.Error.Code)
			}
			return fmt.Errorf("%w: %s", ErrCommandFailed, cmdType)
		}
		if out != nil {
			if err := json.Unmarshal(msg.Result, out); err != nil {
				return fmt.Errorf("decoding %s result: %w", cmdType, err)
			}
		}
		return nil
	case <-timer.C:
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
		return fmt.Errorf("%w: %s after %v", ErrTimeout, cmdType, timeout)
	case <-ctx.Done():
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
		return ctx.Err()
	}
}

// FetchDump collects a full discovery snapshot: all entity states plus the
// entity, device, and area registries. The four commands run concurrently;
// the first failure aborts the rest.
func (c *Client) FetchDump(ctx context.Context) (*Dump, error) {
	dump := &Dump{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.command(gctx, cmdGetStates, &dump.States) })
	g.Go(func() error { return c.command(gctx, cmdEntityRegistryList, &dump.EntityRegistry) })
	g.Go(func() error { return c.command(gctx, cmdDeviceRegistryList, &dump.DeviceRegistry) })
	g.Go(func() error { return c.command(gctx, cmdAreaRegistryList, &dump.Areas) })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching discovery dump: %w", err)
	}

	c.logger.Debug("discovery dump fetched",
		"states", len(dump.States),
		"entities", len(dump.EntityRegistry),
		"devices", len(dump.DeviceRegistry),
		"areas", len(dump.Areas),
	)
	return dump, nil
}

// writeJSON serializes writes to the connection.
func (c *Client) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(defaultWriteTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

// Close shuts down the connection. Safe to call multiple times.
func (c *Client) Close() {
	c.closeOne.Do(func() {
		close(c.closed)
		c.conn.Close() //nolint:errcheck // best-effort shutdown
	})
}
