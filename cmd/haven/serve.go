package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/PabloGalante/haven/internal/adapters/http"
	"github.com/PabloGalante/haven/internal/app/conversation"
	"github.com/PabloGalante/haven/internal/observability"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := buildCore(ctx, cfg)
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			observability.Logger().Warn("failed to close storage", zap.Error(err))
		}
	}()

	svc := conversation.NewService(c.dispatcher, st.sessions, st.messages, c.catalog.Session.Welcome)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           httpadapter.NewServer(svc, c.dispatcher, c.status),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		observability.Logger().Info("haven API listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		observability.Logger().Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
