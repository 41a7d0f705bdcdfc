// Package catalog — snapshot.go описывает неизменяемый снимок каталога.
//
// Старая версия ходила в БД на каждый улов и парсила требования к снаряжению
// из строк прямо в момент выбора. Здесь каталог загружается один раз
// в неизменяемую структуру; обновление — это публикация НОВОГО снимка,
// параллельные уловы продолжают видеть согласованную версию старого.
package catalog

import (
	"fmt"

	"baitpond.ru/fishing-bot/internal/common"
)

// Snapshot — неизменяемый снимок каталога рыбы с таблицей весов.
// После NewSnapshot содержимое не меняется; безопасен для чтения
// из любого числа горутин.
type Snapshot struct {
	items   []Fish
	weights WeightTable
}

// NewSnapshot строит снимок из записей каталога.
// Валидация «жадная»: пустой каталог и перевёрнутые диапазоны P&L —
// это ошибки конфигурации, лучше упасть при загрузке, чем молча
// не ловить рыбу в рантайме.
func NewSnapshot(items []Fish, weights WeightTable) (*Snapshot, error) {
	if len(items) == 0 {
		return nil, common.ErrEmptyCatalog
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidPnLRange, err)
		}
	}
	if len(weights) == 0 {
		weights = DefaultWeights
	}

	// Копируем срез: вызывающий не должен иметь возможности
	// мутировать содержимое снимка через свою ссылку
	copied := make([]Fish, len(items))
	copy(copied, items)

	return &Snapshot{items: copied, weights: weights}, nil
}

// Items возвращает записи каталога (для статистики и админки).
// Срез отдаётся как есть — вызывающие обязуются не мутировать.
func (s *Snapshot) Items() []Fish {
	return s.items
}

// Len возвращает количество рыб в каталоге.
func (s *Snapshot) Len() int {
	return len(s.items)
}
