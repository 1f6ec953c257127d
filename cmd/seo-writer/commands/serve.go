package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/jinford/seo-writer/internal/interface/httpapi"
)

// shutdownTimeout はGraceful Shutdownの待機時間
const shutdownTimeout = 10 * time.Second

// ServeAction はHTTP APIサーバを起動するコマンドのアクション
func ServeAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	addr := cmd.String("addr")
	if addr == "" {
		addr = appCtx.Config.HTTP.Addr
	}

	logger := appCtx.Container.Logger
	server := httpapi.NewServer(appCtx.Container.Service, logger, appCtx.Config.HTTP.APIToken)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	// シグナル受信でGraceful Shutdown
	go func() {
		<-ctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down http server", slog.Any("error", err))
		}
	}()

	logger.Info("starting http server",
		slog.String("addr", addr),
		slog.String("environment", appCtx.Config.Environment),
		slog.String("storeDriver", appCtx.Config.Store.Driver),
	)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
