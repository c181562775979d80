package cart

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ICS2-1D/spring-drinks/internal/catalog"
)

// Ошибки, которые Store возвращает при нарушении ограничений по остаткам
// Состояние корзины при этих ошибках не меняется - вызывающий код
// показывает сообщение и продолжает работу
var (
	// ErrStockLimit - в корзине уже столько единиц, сколько есть на складе
	ErrStockLimit = errors.New("stock limit reached")
	// ErrOutOfStock - напиток закончился, добавить нельзя
	ErrOutOfStock = errors.New("out of stock")
	// ErrUnknownItem - напитка нет в текущем каталоге
	ErrUnknownItem = errors.New("drink not found in catalog")
)

// Line представляет одну позицию корзины
// Количество всегда >= 1: позиция с нулевым количеством удаляется, а не хранится
type Line struct {
	ItemID    int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// StockLookup определяет интерфейс для проверки остатков по каталогу
// Store зависит от этого интерфейса, а не от конкретного хранилища каталога
type StockLookup interface {
	// Get возвращает напиток по id, второе значение false если напитка нет
	Get(id int64) (catalog.Item, bool)
}

// Store хранит содержимое корзины покупателя
// Позиции упорядочены в порядке добавления, id напитка уникален:
// повторное добавление увеличивает количество существующей позиции
type Store struct {
	mu    sync.Mutex
	stock StockLookup
	lines []Line
}

// NewStore создаёт пустую корзину, привязанную к каталогу
func NewStore(stock StockLookup) *Store {
	return &Store{
		stock: stock,
	}
}

// Add добавляет напиток в корзину
// Новая позиция создаётся с количеством 1; для существующей позиции
// количество увеличивается, но не выше доступного остатка
func (s *Store) Add(itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.stock.Get(itemID)
	if !ok {
		return ErrUnknownItem
	}

	if i := s.indexOf(itemID); i >= 0 {
		if s.lines[i].Quantity >= item.AvailableQuantity {
			return ErrStockLimit
		}
		s.lines[i].Quantity++
		return nil
	}

	if item.AvailableQuantity <= 0 {
		return ErrOutOfStock
	}

	s.lines = append(s.lines, Line{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  1,
	})
	return nil
}

// ChangeQuantity изменяет количество существующей позиции на delta
// Увеличение ограничено остатком на складе; при падении количества до нуля
// и ниже позиция удаляется. Для отсутствующей позиции вызов ничего не делает
func (s *Store) ChangeQuantity(itemID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(itemID)
	if i < 0 {
		return nil
	}

	next := s.lines[i].Quantity + delta

	if delta > 0 {
		available := 0
		if item, ok := s.stock.Get(itemID); ok {
			available = item.AvailableQuantity
		}
		if next > available {
			return ErrStockLimit
		}
	}

	if next <= 0 {
		s.removeAt(i)
		return nil
	}

	s.lines[i].Quantity = next
	return nil
}

// Remove удаляет позицию целиком независимо от количества
// Для отсутствующей позиции вызов ничего не делает
func (s *Store) Remove(itemID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(itemID); i >= 0 {
		s.removeAt(i)
	}
}

// Clear опустошает корзину (после завершённого заказа)
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Total возвращает сумму unitPrice*quantity по всем позициям
// Пустая корзина даёт 0
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Lines возвращает копию позиций корзины в порядке добавления
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// IsEmpty сообщает, что корзина пуста
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// indexOf ищет позицию по id напитка, -1 если позиции нет
// Вызывается только внутри заблокированного мьютекса
func (s *Store) indexOf(itemID int64) int {
	for i, line := range s.lines {
		if line.ItemID == itemID {
			return i
		}
	}
	return -1
}

// removeAt удаляет позицию по индексу с сохранением порядка остальных
// Вызывается только внутри заблокированного мьютекса
func (s *Store) removeAt(i int) {
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}
