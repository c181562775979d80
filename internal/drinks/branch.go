package drinks

import "fmt"

// Branch представляет филиал сети (точку продаж)
// Каталог напитков и отчёты по продажам партиционируются по филиалам
type Branch string

const (
	BranchNairobi Branch = "NAIROBI"
	BranchMombasa Branch = "MOMBASA"
	BranchKisumu  Branch = "KISUMU"
	BranchNakuru  Branch = "NAKURU"
)

// KnownBranches возвращает список всех известных филиалов
// Порядок фиксированный - используется для меню выбора филиала в админке
func KnownBranches() []Branch {
	return []Branch{BranchNairobi, BranchMombasa, BranchKisumu, BranchNakuru}
}

// ParseBranch проверяет, что строка соответствует известному филиалу
// Возвращает ошибку для пустой строки и неизвестных названий
func ParseBranch(s string) (Branch, error) {
	if s == "" {
		return "", fmt.Errorf("branch is empty")
	}
	for _, b := range KnownBranches() {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown branch: %s", s)
}

// IsZero сообщает, что филиал ещё не назначен
func (b Branch) IsZero() bool {
	return b == ""
}
