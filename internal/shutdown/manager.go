package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Manager управляет корректным завершением клиентской сессии
// Перехватывает SIGINT/SIGTERM (покупатель или оператор закрывает терминал)
// и последовательно выполняет зарегистрированные функции завершения
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger
	funcs   []shutdownFunc
	done    chan struct{}
	once    sync.Once
	mu      sync.Mutex
}

type shutdownFunc struct {
	name string
	fn   func(context.Context) error
}

// New создаёт новый Manager с указанным таймаутом и logger
func New(timeout time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		timeout: timeout,
		logger:  logger,
		funcs:   make([]shutdownFunc, 0),
		done:    make(chan struct{}),
	}
}

// Add регистрирует функцию завершения с указанным именем
// Функции выполняются в обратном порядке регистрации
func (m *Manager) Add(name string, fn func(context.Context) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funcs = append(m.funcs, shutdownFunc{name: name, fn: fn})
}

// Stop завершает ожидание без сигнала - сессия закончилась сама
// (покупатель выбрал выход из меню)
func (m *Manager) Stop() {
	m.once.Do(func() { close(m.done) })
}

// Wait блокирует выполнение до получения SIGINT/SIGTERM или вызова Stop,
// затем выполняет все зарегистрированные функции завершения
// Каждая функция выполняется с context.WithTimeout
func (m *Manager) Wait() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		m.logger.Info("Received shutdown signal, closing session")
	case <-m.done:
		m.logger.Info("Session finished, closing")
	}

	m.mu.Lock()
	funcs := make([]shutdownFunc, len(m.funcs))
	copy(funcs, m.funcs)
	m.mu.Unlock()

	for i := len(funcs) - 1; i >= 0; i-- {
		fn := funcs[i]

		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		start := time.Now()

		err := fn.fn(ctx)
		cancel()

		duration := time.Since(start)
		if err != nil {
			m.logger.Error("Shutdown function failed",
				zap.String("name", fn.name),
				zap.Error(err),
				zap.Duration("duration", duration))
		} else {
			m.logger.Debug("Shutdown function completed",
				zap.String("name", fn.name),
				zap.Duration("duration", duration))
		}
	}

	m.logger.Info("Session closed")
}

// CloseIdleConnections возвращает функцию завершения для HTTP клиента
func CloseIdleConnections(client interface {
	CloseIdleConnections()
}) func(context.Context) error {
	return func(ctx context.Context) error {
		client.CloseIdleConnections()
		return nil
	}
}
