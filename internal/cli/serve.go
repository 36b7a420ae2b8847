package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/estate/internal/httpapi"
	"github.com/mesh-intelligence/estate/internal/logging"
	"github.com/mesh-intelligence/estate/internal/metrics"
	"github.com/mesh-intelligence/estate/internal/records"
	"github.com/mesh-intelligence/estate/pkg/store"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(f *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the record API over HTTP",
		Long: `Serve exposes the record operations as a JSON API under /api/v1,
with /health and Prometheus /metrics. SIGINT or SIGTERM shuts the server
down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := f.resolve()
			if err != nil {
				return err
			}
			logging.Init(appName, env.settings.LogLevel, cmd.ErrOrStderr())
			if addr == "" {
				addr = env.settings.ListenAddr
			}

			st, err := store.Open(env.store)
			if err != nil {
				return systemError("attach %s store: %w", env.store.Backend, err)
			}
			defer st.Detach()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			rec, err := metrics.NewRecorder(reg)
			if err != nil {
				return systemError("register metrics: %w", err)
			}

			svc := records.New(st, records.WithLogger(logging.Logger), records.WithRecorder(rec))
			handler := httpapi.NewHandler(svc, httpapi.Options{
				AllowedOrigins: env.settings.AllowedOrigins,
				Gatherer:       reg,
				Logger:         logging.Logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, httpapi.NewServer(addr, handler))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: listen_addr from config.yaml)")
	return cmd
}

// serve runs srv until ctx is done, then shuts it down.
func serve(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	logging.Logger.WithField("addr", srv.Addr).Infof("Starting %s", appName)

	select {
	case err := <-errc:
		return systemError("serve: %w", err)
	case <-ctx.Done():
	}

	logging.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return systemError("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return systemError("serve: %w", err)
	}
	return nil
}
