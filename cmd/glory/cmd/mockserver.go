package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/glory-app/glory/internal/mock"
)

var mockServerOpts struct {
	addr     string
	seed     int64
	failRate float64
}

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Serve a simulated live-client API over plain HTTP",
	Long: `Serve the two live-client routes glory uses, backed by a scripted match.
Point glory at it with --config or GLORY_LIVE_CLIENT_BASE_URL, e.g.

  glory mock-server --addr 127.0.0.1:2998 &
  GLORY_LIVE_CLIENT_BASE_URL=http://127.0.0.1:2998 glory -p Faker`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, closer := newLogger(cfg)
		defer closer.Close()

		match := mock.NewMatch(mockServerOpts.seed, mock.WithFailureRate(mockServerOpts.failRate))
		srv := &http.Server{
			Addr:              mockServerOpts.addr,
			Handler:           mock.Handler(match),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx := cmd.Context()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		logger.Info().Str("addr", srv.Addr).Msg("mock live client listening")
		fmt.Fprintf(cmd.OutOrStdout(), "base url: http://%s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	f := mockServerCmd.Flags()
	f.StringVar(&mockServerOpts.addr, "addr", "127.0.0.1:2998", "listen address")
	f.Int64Var(&mockServerOpts.seed, "seed", 1, "random seed")
	f.Float64Var(&mockServerOpts.failRate, "fail-rate", 0, "probability that a stats request fails")
}
