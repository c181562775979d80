package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{ID: 1, Name: "Cola", UnitPrice: decimal.NewFromInt(50), AvailableQuantity: 2},
		{ID: 2, Name: "Fanta", UnitPrice: decimal.NewFromInt(40), AvailableQuantity: 5},
	}
}

func TestStore_Replace(t *testing.T) {
	t.Run("replace swaps the whole catalog", func(t *testing.T) {
		s := NewStore()
		s.Replace(testItems())
		require.Equal(t, 2, s.Len())

		// Повторная загрузка заменяет список целиком, а не дополняет
		s.Replace([]Item{
			{ID: 3, Name: "Sprite", UnitPrice: decimal.NewFromInt(45), AvailableQuantity: 7},
		})

		require.Equal(t, 1, s.Len())
		_, ok := s.Get(1)
		require.False(t, ok)
		item, ok := s.Get(3)
		require.True(t, ok)
		require.Equal(t, "Sprite", item.Name)
	})

	t.Run("replace with nil empties the catalog", func(t *testing.T) {
		s := NewStore()
		s.Replace(testItems())

		s.Replace(nil)

		require.Equal(t, 0, s.Len())
		require.Empty(t, s.Items())
	})

	t.Run("store keeps its own copy of the slice", func(t *testing.T) {
		s := NewStore()
		items := testItems()
		s.Replace(items)

		items[0].Name = "mutated"

		got, ok := s.Get(1)
		require.True(t, ok)
		require.Equal(t, "Cola", got.Name)
	})
}

func TestStore_Get(t *testing.T) {
	s := NewStore()
	s.Replace(testItems())

	item, ok := s.Get(2)
	require.True(t, ok)
	require.Equal(t, "Fanta", item.Name)
	require.True(t, item.UnitPrice.Equal(decimal.NewFromInt(40)))

	_, ok = s.Get(99)
	require.False(t, ok)
}

func TestStore_Availability(t *testing.T) {
	s := NewStore()
	s.Replace(testItems())

	available, ok := s.Availability(1)
	require.True(t, ok)
	require.Equal(t, 2, available)

	_, ok = s.Availability(99)
	require.False(t, ok)
}

func TestStore_Items(t *testing.T) {
	s := NewStore()
	s.Replace(testItems())

	items := s.Items()
	require.Len(t, items, 2)

	// Возвращается копия: изменения снаружи не трогают каталог
	items[0].AvailableQuantity = 0

	available, ok := s.Availability(1)
	require.True(t, ok)
	require.Equal(t, 2, available)
}
