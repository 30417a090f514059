package commands

import (
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/safesistemas/cejoana/pkg/entities"
	"github.com/safesistemas/cejoana/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command) {
	var addr, token, cert, key string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "share the configured store over a JSON API",
		Long: `Serve exposes the configured store so other consoles can reach it with
the rest driver:

  cejoana ui --driver rest --url http://host:8080 --token secret

Prometheus metrics are served on /metrics.`,
		Example: `
cejoana serve --addr :8080 --server-token secret
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if token != "" {
				cfg.Server.Token = token
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			b, err := openBackend(ctx, cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			r := serve.Runner{
				Backend:    b,
				Schemas:    entities.All(),
				ListenAddr: cfg.Server.Addr,
				Token:      cfg.Server.Token,
				CertFile:   cert,
				KeyFile:    key,
				OnListening: func(a net.Addr) {
					fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", a)
				},
			}
			return r.Do(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr).")
	cmd.Flags().StringVar(&token, "server-token", "", "Bearer token clients must send (default from server.token).")
	cmd.Flags().StringVar(&cert, "tls-cert", "", "TLS certificate file.")
	cmd.Flags().StringVar(&key, "tls-key", "", "TLS key file.")

	topLevel.AddCommand(cmd)
}
