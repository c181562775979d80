package app

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/ICS2-1D/spring-drinks/internal/admin"
	"github.com/ICS2-1D/spring-drinks/internal/client/api"
	"github.com/ICS2-1D/spring-drinks/internal/config"
	"github.com/ICS2-1D/spring-drinks/internal/logging"
	"github.com/ICS2-1D/spring-drinks/internal/shutdown"
)

// AdminApp содержит все зависимости админской консоли
type AdminApp struct {
	logger      *zap.Logger
	console     *admin.Console
	shutdownMgr *shutdown.Manager
}

// BuildAdmin собирает граф зависимостей админской консоли
func BuildAdmin(cfg config.Config) (*AdminApp, error) {
	logger, err := logging.New(logging.Config{
		AppName: "admincli",
		Env:     string(cfg.AppEnv),
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Building admin console", zap.String("server", cfg.ServerBaseURL))

	client := api.NewClient(cfg.ServerBaseURL, cfg.HTTPTimeout, logger)
	console := admin.NewConsole(client, os.Stdin, os.Stdout, logger)

	shutdownMgr := shutdown.New(cfg.ShutdownTimeout, logger)
	shutdownMgr.Add("http_client", shutdown.CloseIdleConnections(client))

	return &AdminApp{
		logger:      logger,
		console:     console,
		shutdownMgr: shutdownMgr,
	}, nil
}

// Run запускает админскую сессию и блокируется до её завершения
// или сигнала остановки
func (a *AdminApp) Run() error {
	defer logging.Sync(a.logger)

	go func() {
		if err := a.console.Run(context.Background()); err != nil {
			a.logger.Error("Admin session error", zap.Error(err))
		}
		a.shutdownMgr.Stop()
	}()

	a.shutdownMgr.Wait()
	return nil
}
