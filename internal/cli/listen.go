package cli

import (
	"context"
	"errors"
	"net"

	"github.com/spf13/cobra"

	"github.com/rshade/idelinux/internal/logging"
	"github.com/rshade/idelinux/internal/messaging"
)

// newListenCmd creates the listen command.
func newListenCmd(a *app) *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Receive editor messages and log them until interrupted",
		Example: `  idelinux listen
  idelinux listen --port 0 --bind 127.0.0.1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Messaging.Port
			}

			var ip net.IP
			if bind != "" {
				if ip = net.ParseIP(bind); ip == nil {
					return errors.New("invalid --bind address: " + bind)
				}
			}
			return runListen(ctx, cmd, ip, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "UDP port (default messaging.port from config, 0 = any)")
	cmd.Flags().StringVar(&bind, "bind", "", "address to bind (default all interfaces)")
	return cmd
}

// runListen logs datagrams and TCP fallback payloads until ctx is done.
func runListen(ctx context.Context, cmd *cobra.Command, ip net.IP, port int) error {
	log := logging.FromContext(ctx)

	socket, err := messaging.Listen(ip, port)
	if err != nil {
		return err
	}
	defer socket.Close()

	ln, err := socket.ListenStream()
	if err != nil {
		return err
	}

	cmd.Printf("Listening on %s\n", socket.LocalAddr())

	streamErr := make(chan error, 1)
	go func() {
		streamErr <- messaging.ServeStream(ctx, ln, func(from net.Addr, payload []byte) {
			log.Info().
				Ctx(ctx).
				Str("component", "messaging").
				Str("transport", "tcp").
				Str("from", from.String()).
				Int("bytes", len(payload)).
				Msg("message received")
		})
	}()

	for received := range socket.ReceiveAsync(ctx) {
		if received.Err != nil {
			_ = ln.Close()
			<-streamErr
			return received.Err
		}
		log.Info().
			Ctx(ctx).
			Str("component", "messaging").
			Str("transport", "udp").
			Str("from", received.From.String()).
			Int("bytes", len(messaging.BufferFor(received))).
			Msg("message received")
	}

	return <-streamErr
}
