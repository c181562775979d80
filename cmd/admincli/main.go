package main

import (
	"log"

	"github.com/ICS2-1D/spring-drinks/internal/app"
	"github.com/ICS2-1D/spring-drinks/internal/config"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Собираем граф зависимостей админской консоли
	application, err := app.BuildAdmin(cfg)
	if err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	// Запускаем сессию и блокируемся до её завершения
	if err := application.Run(); err != nil {
		log.Fatalf("Admin console error: %v", err)
	}
}
