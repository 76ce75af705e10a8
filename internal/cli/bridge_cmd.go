package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/gdbmi/adapter/internal/adapter"
	"github.com/gdbmi/adapter/internal/bridge"
	"github.com/gdbmi/adapter/internal/config"
)

func newBridgeCmd(session *adapter.Session) *cobra.Command {
	cmd := &cobra.Command{Use: "bridge", Short: "Expose the session to a remote front end"}
	cmd.AddCommand(newBridgeServeCmd(session))
	return cmd
}

func newBridgeServeCmd(session *adapter.Session) *cobra.Command {
	defaults, err := config.Load()
	if err != nil {
		defaults = config.DefaultConfig()
	}

	var host string
	var port int
	var advertise bool
	var qr bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the WebSocket event/control bridge and block until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRunning(session); err != nil {
				return err
			}

			srv := bridge.NewServer(session, bridge.Options{
				Host:      host,
				Port:      port,
				Advertise: advertise,
			})
			if err := srv.Start(); err != nil {
				return fmt.Errorf("starting bridge: %w", err)
			}
			fmt.Printf("bridge listening: %s\n", srv.URL())

			if qr {
				code, err := qrcode.New(srv.URL(), qrcode.Medium)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to render QR code: %v\n", err)
				} else {
					fmt.Println(code.ToString(false))
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&host, "host", defaults.Bridge.Host, "host to bind to")
	cmd.Flags().IntVar(&port, "port", defaults.Bridge.Port, "port to listen on")
	cmd.Flags().BoolVar(&advertise, "mdns", defaults.Bridge.Advertise, "advertise the bridge on the LAN via mDNS")
	cmd.Flags().BoolVar(&qr, "qr", false, "print a QR code encoding the bridge URL for pairing")
	return cmd
}
