package messaging

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listenLoopback(t *testing.T) *UDPSocket {
	t.Helper()
	s, err := Listen(net.IPv4(127, 0, 0, 1), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAny(t *testing.T) {
	addr := Any()
	assert.True(t, addr.IP.Equal(net.IPv4zero))
	assert.Equal(t, 0, addr.Port)
}

func TestListen_ArbitraryPort(t *testing.T) {
	s := listenLoopback(t)
	assert.NotZero(t, s.LocalAddr().Port)
}

func TestListen_Wildcard(t *testing.T) {
	s, err := Listen(nil, 0)
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, s.LocalAddr().IP.Equal(net.IPv4zero))
}

func TestSend_Datagram(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	receiver := listenLoopback(t)
	sender := listenLoopback(t)
	received := receiver.ReceiveAsync(ctx)

	require.NoError(t, sender.Send(ctx, receiver.LocalAddr(), []byte("ping")))

	select {
	case r := <-received:
		require.NoError(t, r.Err)
		assert.Equal(t, []byte("ping"), BufferFor(r))
		assert.Equal(t, sender.LocalAddr().Port, r.From.Port)
	case <-ctx.Done():
		t.Fatal("datagram not received")
	}
}

func TestSend_LargePayloadUsesStream(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	receiver := listenLoopback(t)
	ln, err := receiver.ListenStream()
	require.NoError(t, err)

	payloads := make(chan []byte, 1)
	served := make(chan error, 1)
	go func() {
		served <- ServeStream(ctx, ln, func(_ net.Addr, payload []byte) {
			payloads <- payload
		})
	}()

	payload := bytes.Repeat([]byte("x"), BufferSize+1)
	sender := listenLoopback(t)
	require.NoError(t, sender.Send(ctx, receiver.LocalAddr(), payload))

	select {
	case got := <-payloads:
		assert.Equal(t, payload, got)
	case <-ctx.Done():
		t.Fatal("stream payload not received")
	}

	cancel()
	assert.NoError(t, <-served)
}

func TestSend_ExactlyBufferSizeIsDatagram(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	receiver := listenLoopback(t)
	received := receiver.ReceiveAsync(ctx)

	payload := bytes.Repeat([]byte("y"), BufferSize)
	require.NoError(t, listenLoopback(t).Send(ctx, receiver.LocalAddr(), payload))

	select {
	case r := <-received:
		assert.Len(t, r.Data, BufferSize)
	case <-ctx.Done():
		t.Fatal("datagram not received")
	}
}

func TestReceiveAsync_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	received := listenLoopback(t).ReceiveAsync(ctx)

	cancel()

	select {
	case _, ok := <-received:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestReceiveAsync_ClosesOnSocketClose(t *testing.T) {
	s, err := Listen(net.IPv4(127, 0, 0, 1), 0)
	require.NoError(t, err)
	received := s.ReceiveAsync(context.Background())

	require.NoError(t, s.Close())

	select {
	case _, ok := <-received:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after Close")
	}
}

func TestReadPayload_TooLarge(t *testing.T) {
	_, err := readPayload(bytes.NewReader(make([]byte, MaxStreamSize+1)))
	assert.ErrorIs(t, err, ErrPayloadTooLarge)

	got, err := readPayload(bytes.NewReader([]byte("ok")))
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), got)
}

func TestReceiveAsync_ReusableAfterCancel(t *testing.T) {
	receiver := listenLoopback(t)

	first, cancelFirst := context.WithCancel(context.Background())
	received := receiver.ReceiveAsync(first)
	cancelFirst()
	for range received {
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	received = receiver.ReceiveAsync(ctx)

	require.NoError(t, listenLoopback(t).Send(ctx, receiver.LocalAddr(), []byte("again")))

	select {
	case r, ok := <-received:
		require.True(t, ok, "channel closed before the datagram arrived")
		require.NoError(t, r.Err)
		assert.Equal(t, []byte("again"), r.Data)
	case <-ctx.Done():
		t.Fatal("datagram not received on second ReceiveAsync")
	}
}

func serveLoopbackStream(ctx context.Context, t *testing.T, receiver *UDPSocket) (<-chan []byte, <-chan error) {
	t.Helper()
	ln, err := receiver.ListenStream()
	require.NoError(t, err)

	payloads := make(chan []byte, 1)
	served := make(chan error, 1)
	go func() {
		served <- ServeStream(ctx, ln, func(_ net.Addr, payload []byte) {
			payloads <- payload
		})
	}()
	return payloads, served
}

func TestServeStream_IdleClientDoesNotBlockOthers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	receiver := listenLoopback(t)
	payloads, served := serveLoopbackStream(ctx, t, receiver)

	idle, err := net.Dial("tcp4", receiver.LocalAddr().String())
	require.NoError(t, err)
	defer idle.Close()

	payload := bytes.Repeat([]byte("z"), BufferSize+1)
	require.NoError(t, listenLoopback(t).Send(ctx, receiver.LocalAddr(), payload))

	select {
	case got := <-payloads:
		assert.Equal(t, payload, got)
	case <-ctx.Done():
		t.Fatal("payload not delivered while another client was idle")
	}

	cancel()
	assert.NoError(t, <-served)
}

func TestServeStream_ReturnsOnCancelWithIdleClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	receiver := listenLoopback(t)
	_, served := serveLoopbackStream(ctx, t, receiver)

	idle, err := net.Dial("tcp4", receiver.LocalAddr().String())
	require.NoError(t, err)
	defer idle.Close()

	// Give the server time to accept the idle connection.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ServeStream still running after cancel")
	}

	_ = idle.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, err = idle.Read(make([]byte, 1))
	assert.Error(t, err, "server side of the idle connection is closed")
}
