package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"radiochild/repwizard/client"
	"radiochild/repwizard/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wizard API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		env, err := loadEnv(ctx)
		if err != nil {
			return err
		}
		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           web.NewRouter(web.NewHandler(env, logger)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Infow("wizard api listening", "addr", cfg.HTTP.Addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logger.Infof("Shutting down")
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Poll the notification endpoint until interrupted or the session expires",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c, err := client.New(cfg.Poll.BaseURL, logger)
		if err != nil {
			return err
		}
		poller := client.NewNotificationPoller(c, cfg.Poll.Path, cfg.Poll.Interval, func(batch client.NotificationBatch) {
			logger.Infow("notifications", "unread", batch.UnreadCount, "received", len(batch.Notifications))
		})
		return poller.Run(ctx)
	},
}
