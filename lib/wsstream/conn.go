//
// conn.go
//
// Copyright (c) 2018-2021 Markku Rossi
//
// All rights reserved.
//

// Package wsstream carries terminal control output over WebSocket.
package wsstream

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/markkurossi/vtctl/lib/stream"
)

var (
	_ stream.Stream = &Conn{}
)

// Conn is a stream.Stream sending each write as one binary message.
// Status messages are sent as JSON text messages.
type Conn struct {
	ws  *websocket.Conn
	m   sync.Mutex
	out *stream.Writer
}

// NewConn creates a stream for the connection.
func NewConn(ws *websocket.Conn) *Conn {
	c := &Conn{
		ws: ws,
	}
	c.out = stream.NewWriter(binaryWriter{c})
	return c
}

type binaryWriter struct {
	c *Conn
}

func (w binaryWriter) Write(p []byte) (int, error) {
	w.c.m.Lock()
	defer w.c.m.Unlock()

	if err := w.c.ws.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Writable implements stream.Stream.
func (c *Conn) Writable() bool {
	return c.out.Writable()
}

// Write implements stream.Stream.
func (c *Conn) Write(p []byte, done func(err error)) {
	c.out.Write(p, done)
}

// WriteStatus sends the status message.
func (c *Conn) WriteStatus(status Status) error {
	c.m.Lock()
	defer c.m.Unlock()
	return c.ws.WriteJSON(status)
}

// Close flushes the queued output and closes the connection.
func (c *Conn) Close() error {
	err := c.out.Close()
	if cerr := c.ws.Close(); err == nil {
		err = cerr
	}
	return err
}
