package messaging

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rshade/idelinux/internal/logging"
)

// BufferSize is the receive buffer size of a datagram. Larger payloads go
// over TCP. The UDP limit itself is 65507 bytes.
const BufferSize = 8 * 1024

// Received is one datagram, or the error that ended receiving.
type Received struct {
	From *net.UDPAddr
	Data []byte
	Err  error
}

// BufferFor returns the bytes received in r.
func BufferFor(r Received) []byte {
	return r.Data
}

// Any is the wildcard IPv4 endpoint with an arbitrary port.
func Any() *net.UDPAddr {
	return &net.UDPAddr{IP: net.IPv4zero, Port: 0}
}

// UDPSocket is a bound IPv4 datagram socket.
type UDPSocket struct {
	conn *net.UDPConn
}

// Listen binds a socket to ip:port. A nil ip binds every interface and
// port 0 picks a free port.
func Listen(ip net.IP, port int) (*UDPSocket, error) {
	if ip == nil {
		ip = net.IPv4zero
	}
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: ip, Port: port})
	if err != nil {
		return nil, fmt.Errorf("binding udp %s:%d: %w", ip, port, err)
	}
	return &UDPSocket{conn: conn}, nil
}

// LocalAddr returns the bound address.
func (s *UDPSocket) LocalAddr() *net.UDPAddr {
	addr, _ := s.conn.LocalAddr().(*net.UDPAddr)
	return addr
}

// Close releases the socket.
func (s *UDPSocket) Close() error {
	return s.conn.Close()
}

// ReceiveAsync reads datagrams until ctx is done or the socket fails. The
// channel is closed when reading stops; a failure other than cancellation
// or Close is delivered as a final Received with Err set.
func (s *UDPSocket) ReceiveAsync(ctx context.Context) <-chan Received {
	out := make(chan Received)
	done := make(chan struct{})
	watched := make(chan struct{})

	go func() {
		defer close(watched)
		select {
		case <-ctx.Done():
			_ = s.conn.SetReadDeadline(time.Now())
		case <-done:
		}
	}()

	go func() {
		defer close(out)
		defer func() {
			close(done)
			<-watched
			_ = s.conn.SetReadDeadline(time.Time{})
		}()

		for {
			buf := make([]byte, BufferSize)
			n, from, err := s.conn.ReadFromUDP(buf)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return
				}
				logging.FromContext(ctx).Debug().
					Ctx(ctx).
					Str("component", "messaging").
					Str("operation", "receive").
					Err(err).
					Msg("datagram receive failed")
				select {
				case out <- Received{Err: err}:
				case <-ctx.Done():
				}
				return
			}

			select {
			case out <- Received{From: from, Data: buf[:n]}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Send delivers payload to addr: as one datagram when it fits in
// BufferSize, otherwise over a TCP connection to the same address.
func (s *UDPSocket) Send(ctx context.Context, to *net.UDPAddr, payload []byte) error {
	log := logging.FromContext(ctx)

	if len(payload) > BufferSize {
		log.Debug().
			Ctx(ctx).
			Str("component", "messaging").
			Str("operation", "send").
			Str("to", to.String()).
			Int("bytes", len(payload)).
			Msg("payload exceeds datagram buffer, using tcp")
		return sendStream(ctx, to, payload)
	}

	if _, err := s.conn.WriteToUDP(payload, to); err != nil {
		return fmt.Errorf("sending datagram to %s: %w", to, err)
	}
	return nil
}
