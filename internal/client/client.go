// Package client wraps a websocket connection to periodd.
package client

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lambdcalculus/periods/internal/session"
	"github.com/lambdcalculus/periods/pkg/logger"
	"github.com/lambdcalculus/periods/pkg/packets"
)

// Messages larger than this are refused by the websocket layer.
const readLimit = 64 << 10

// Represents a client's connection and attributes.
type Client struct {
	mu sync.Mutex // guards writes and the fields below

	conn         *websocket.Conn
	addr         string
	writeTimeout time.Duration

	id     int
	authed bool

	logger *logger.Logger
}

// Makes a new client over a WebSocket connection. The client will log to the specified logger.
func NewWSClient(conn *websocket.Conn, writeTimeout time.Duration, log *logger.Logger) *Client {
	conn.SetReadLimit(readLimit)
	return &Client{
		conn:         conn,
		addr:         conn.RemoteAddr().String(),
		writeTimeout: writeTimeout,
		id:           session.None,
		logger:       log,
	}
}

func (c *Client) Addr() string {
	return c.addr
}

func (c *Client) ID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

func (c *Client) SetID(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.id = id
}

// Authed reports whether the client has sent a valid hello.
func (c *Client) Authed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authed
}

func (c *Client) SetAuthed(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authed = v
}

// ReadRequest waits for the next message. A malformed message fails with
// ErrBadRequest; any other error comes from the connection.
func (c *Client) ReadRequest() (packets.Request, error) {
	_, b, err := c.conn.ReadMessage()
	if err != nil {
		return packets.Request{}, err
	}
	c.logger.Tracef("Received from %v: %s", c.addr, b)
	req, err := packets.MakeRequest(b)
	if err != nil {
		return packets.Request{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return req, nil
}

// WriteResponse writes a response. Writes from several goroutines are serialized.
func (c *Client) WriteResponse(resp packets.Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeTimeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	if err := c.conn.WriteJSON(resp); err != nil {
		c.logger.Debugf("Couldn't write JSON to %v (%v).", c.addr, err)
		return err
	}
	c.logger.Tracef("Sent %v (%v) to %v.", resp.Header, resp.ID, c.addr)
	return nil
}

// Disconnect closes the connection, telling the peer why.
func (c *Client) Disconnect(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	c.conn.Close()
	c.logger.Debugf("%v disconnected.", c.addr)
}
