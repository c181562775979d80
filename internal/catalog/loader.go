package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ICS2-1D/spring-drinks/internal/drinks"
)

// Fetcher определяет интерфейс для загрузки каталога с сервера филиала
// Loader зависит от этого интерфейса, а не от конкретного HTTP клиента
type Fetcher interface {
	// ListDrinks загружает список напитков для указанного филиала
	ListDrinks(ctx context.Context, branch drinks.Branch) ([]Item, error)
}

// Loader загружает каталог филиала и обновляет Store
type Loader struct {
	fetcher Fetcher
	store   *Store
	branch  drinks.Branch
	logger  *zap.Logger
}

// NewLoader создаёт Loader для указанного филиала
func NewLoader(fetcher Fetcher, store *Store, branch drinks.Branch, logger *zap.Logger) *Loader {
	return &Loader{
		fetcher: fetcher,
		store:   store,
		branch:  branch,
		logger:  logger,
	}
}

// Load загружает каталог с сервера и заменяет содержимое Store целиком
// При ошибке каталог остаётся пустым - повторных попыток нет,
// пользователь перезапускает загрузку сам
func (l *Loader) Load(ctx context.Context) ([]Item, error) {
	items, err := l.fetcher.ListDrinks(ctx, l.branch)
	if err != nil {
		l.logger.Warn("failed to load drinks catalog",
			zap.String("branch", string(l.branch)),
			zap.Error(err))
		l.store.Replace(nil)
		return nil, fmt.Errorf("failed to load drinks: %w", err)
	}

	l.store.Replace(items)
	l.logger.Info("drinks catalog loaded",
		zap.String("branch", string(l.branch)),
		zap.Int("items", len(items)))
	return items, nil
}
