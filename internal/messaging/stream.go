package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/rshade/idelinux/internal/logging"
)

// MaxStreamSize bounds a payload received over the TCP fallback.
const MaxStreamSize = 16 * 1024 * 1024

// StreamReadTimeout bounds how long one fallback connection may take to
// deliver its payload.
const StreamReadTimeout = 30 * time.Second

// StreamHandler receives one complete TCP fallback payload.
type StreamHandler func(from net.Addr, payload []byte)

// ListenStream binds the TCP side of the fallback on the socket's address.
func (s *UDPSocket) ListenStream() (net.Listener, error) {
	addr := s.LocalAddr()
	ln, err := net.ListenTCP("tcp4", &net.TCPAddr{IP: addr.IP, Port: addr.Port})
	if err != nil {
		return nil, fmt.Errorf("binding tcp %s: %w", addr, err)
	}
	return ln, nil
}

// ServeStream accepts fallback connections on ln and hands each payload to
// handler. Each connection carries exactly one payload terminated by the
// sender closing it, and must deliver it within StreamReadTimeout.
// Connections are served concurrently, so handler must be safe for
// concurrent use. ServeStream returns nil once ctx is done, after every
// open connection has been closed.
func ServeStream(ctx context.Context, ln net.Listener, handler StreamHandler) error {
	conns := newConnSet()
	var wg sync.WaitGroup

	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
		conns.closeAll()
	})
	defer func() {
		stop()
		conns.closeAll()
		wg.Wait()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accepting stream: %w", err)
		}
		if !conns.add(conn) {
			_ = conn.Close()
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conns.remove(conn)
			serveConn(ctx, conn, handler)
		}()
	}
}

func serveConn(ctx context.Context, conn net.Conn, handler StreamHandler) {
	from := conn.RemoteAddr()

	_ = conn.SetReadDeadline(time.Now().Add(StreamReadTimeout))
	payload, err := readPayload(conn)
	_ = conn.Close()
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("component", "messaging").
			Str("operation", "serve_stream").
			Str("from", from.String()).
			Err(err).
			Msg("dropping stream payload")
		return
	}

	handler(from, payload)
}

// connSet tracks the open fallback connections so shutdown can close them.
type connSet struct {
	mu     sync.Mutex
	conns  map[net.Conn]struct{}
	closed bool
}

func newConnSet() *connSet {
	return &connSet{conns: make(map[net.Conn]struct{})}
}

func (c *connSet) add(conn net.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.conns[conn] = struct{}{}
	return true
}

func (c *connSet) remove(conn net.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.conns, conn)
}

func (c *connSet) closeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for conn := range c.conns {
		_ = conn.Close()
	}
}

func readPayload(r io.Reader) ([]byte, error) {
	payload, err := io.ReadAll(io.LimitReader(r, MaxStreamSize+1))
	if err != nil {
		return nil, err
	}
	if len(payload) > MaxStreamSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrPayloadTooLarge, MaxStreamSize)
	}
	return payload, nil
}

func sendStream(ctx context.Context, to *net.UDPAddr, payload []byte) error {
	if len(payload) > MaxStreamSize {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp4", to.String())
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", to, err)
	}

	_, err = conn.Write(payload)
	closeErr := conn.Close()
	if err = errors.Join(err, closeErr); err != nil {
		return fmt.Errorf("streaming to %s: %w", to, err)
	}
	return nil
}
