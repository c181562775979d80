package cart

import "github.com/shopspring/decimal"

// LineView представляет позицию корзины, подготовленную для отображения
// AtStockLimit сообщает, что количество больше увеличить нельзя
type LineView struct {
	Line
	AtStockLimit bool
}

// View представляет отображаемое состояние корзины: список позиций и итог
type View struct {
	Lines []LineView
	Total decimal.Decimal
}

// Project строит View по текущему состоянию корзины и каталога
// Чистая производная: не хранит собственного состояния и не изменяет корзину,
// пересчитывается после каждой мутации
func Project(s *Store) View {
	lines := s.Lines()

	view := View{
		Lines: make([]LineView, 0, len(lines)),
		Total: decimal.Zero,
	}

	for _, line := range lines {
		atLimit := true
		// Если напиток пропал из каталога после перезагрузки,
		// увеличивать количество тоже нельзя
		if item, ok := s.stock.Get(line.ItemID); ok {
			atLimit = line.Quantity >= item.AvailableQuantity
		}

		view.Lines = append(view.Lines, LineView{
			Line:         line,
			AtStockLimit: atLimit,
		})
		view.Total = view.Total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return view
}
