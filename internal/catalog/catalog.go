package catalog

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Item представляет напиток из каталога филиала
// Это доменная модель, не привязанная к формату HTTP ответа
type Item struct {
	ID                int64
	Name              string
	UnitPrice         decimal.Decimal
	AvailableQuantity int
}

// Store хранит последний загруженный каталог напитков
// Список заменяется целиком при каждой успешной загрузке,
// корзина никогда не изменяет элементы каталога
type Store struct {
	mu    sync.RWMutex
	items []Item
	byID  map[int64]int // индекс позиции в items по id напитка
}

// NewStore создаёт пустой каталог
func NewStore() *Store {
	return &Store{
		byID: make(map[int64]int),
	}
}

// Replace заменяет весь каталог новым списком
// Вызывается после каждой успешной загрузки с сервера
func (s *Store) Replace(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]Item, len(items))
	copy(s.items, items)

	s.byID = make(map[int64]int, len(items))
	for i, item := range s.items {
		s.byID[item.ID] = i
	}
}

// Items возвращает копию текущего каталога для отображения
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Get возвращает напиток по id
// Второе значение false, если напитка нет в каталоге
func (s *Store) Get(id int64) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i], true
}

// Availability возвращает доступное количество напитка
// Второе значение false, если напитка нет в каталоге
func (s *Store) Availability(id int64) (int, bool) {
	item, ok := s.Get(id)
	if !ok {
		return 0, false
	}
	return item.AvailableQuantity, true
}

// Len возвращает количество позиций в каталоге
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
