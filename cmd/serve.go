package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/satheeshds/invoice-viewer/handlers"
	"github.com/satheeshds/invoice-viewer/logger"
	"github.com/satheeshds/invoice-viewer/payment"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve invoice pages and the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().String("port", "", "port to listen on")
	a.v.BindPFlag("PORT", cmd.Flags().Lookup("port"))
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	log := logger.WithComponent("server")

	l, err := a.newLoader(ctx)
	if err != nil {
		return err
	}
	srv := handlers.NewServer(l, payment.NewStub(a.cfg.PaymentDelay),
		handlers.WithPollInterval(a.cfg.PollInterval),
		handlers.WithLogger(log),
		handlers.WithPaymentRateLimit(a.cfg.PaymentRate, a.cfg.PaymentBurst),
		handlers.WithTrustedProxy(a.cfg.TrustProxy),
	)

	httpServer := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("address", httpServer.Addr).
			Str("source", a.cfg.Source).
			Msg("server starting")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
