package app

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/ICS2-1D/spring-drinks/internal/cart"
	"github.com/ICS2-1D/spring-drinks/internal/catalog"
	"github.com/ICS2-1D/spring-drinks/internal/checkout"
	"github.com/ICS2-1D/spring-drinks/internal/client/api"
	"github.com/ICS2-1D/spring-drinks/internal/config"
	"github.com/ICS2-1D/spring-drinks/internal/drinks"
	"github.com/ICS2-1D/spring-drinks/internal/kiosk"
	"github.com/ICS2-1D/spring-drinks/internal/logging"
	"github.com/ICS2-1D/spring-drinks/internal/shutdown"
)

// KioskApp содержит все зависимости терминала заказов
type KioskApp struct {
	logger      *zap.Logger
	session     *kiosk.Session
	shutdownMgr *shutdown.Manager
}

// BuildKiosk собирает граф зависимостей терминала заказов
// Здесь же выполняется назначение филиала: либо из конфигурации,
// либо сервером через /connect
func BuildKiosk(cfg config.Config) (*KioskApp, error) {
	logger, err := logging.New(logging.Config{
		AppName: "kiosk",
		Env:     string(cfg.AppEnv),
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Building kiosk", zap.String("server", cfg.ServerBaseURL))

	client := api.NewClient(cfg.ServerBaseURL, cfg.HTTPTimeout, logger)

	// Назначение филиала
	var branch drinks.Branch
	if cfg.Branch != "" {
		branch, err = drinks.ParseBranch(cfg.Branch)
		if err != nil {
			return nil, err
		}
		logger.Info("Branch taken from configuration", zap.String("branch", string(branch)))
	} else {
		branch, err = client.Connect(context.Background())
		if err != nil {
			return nil, err
		}
		logger.Info("Branch assigned by server",
			zap.String("branch", string(branch)),
			zap.String("client_id", client.ClientID()))
	}

	catalogStore := catalog.NewStore()
	loader := catalog.NewLoader(client, catalogStore, branch, logger)
	cartStore := cart.NewStore(catalogStore)
	checkoutService := checkout.NewService(cartStore, client, client, loader, logger)

	session := kiosk.NewSession(branch, catalogStore, loader, cartStore, checkoutService,
		os.Stdin, os.Stdout, logger)

	shutdownMgr := shutdown.New(cfg.ShutdownTimeout, logger)
	shutdownMgr.Add("http_client", shutdown.CloseIdleConnections(client))

	return &KioskApp{
		logger:      logger,
		session:     session,
		shutdownMgr: shutdownMgr,
	}, nil
}

// Run запускает сессию терминала и блокируется до её завершения
// или сигнала остановки
func (a *KioskApp) Run() error {
	defer logging.Sync(a.logger)

	go func() {
		if err := a.session.Run(context.Background()); err != nil {
			a.logger.Error("Session error", zap.Error(err))
		}
		a.shutdownMgr.Stop()
	}()

	// По сигналу процесс завершается, не дожидаясь чтения из stdin -
	// незакрытый Scan блокируется до EOF терминала
	a.shutdownMgr.Wait()
	return nil
}
