// Package fishing — ядро игры: заброс открывает виртуальную позицию
// по цене пруда, подсечка закрывает её и превращает P&L в улов.
package fishing

import (
	"time"

	"baitpond.ru/fishing-bot/internal/features/catalog"
)

// Position — открытая или закрытая виртуальная позиция рыбака.
type Position struct {
	ID         int64
	AnglerID   int64
	PondID     int64
	RodID      int64
	Pair       string  // Торговая пара пруда на момент заброса
	EntryPrice float64 // Цена входа
	Leverage   float64 // Плечо удочки на момент заброса
	OpenedAt   time.Time

	// Заполняются при подсечке.
	ClosedAt   *time.Time
	ExitPrice  *float64
	PnLPercent *float64
	FishID     *int64 // NULL — подсечка без улова
}

// Open сообщает, открыта ли позиция.
func (p *Position) Open() bool {
	return p.ClosedAt == nil
}

// Duration возвращает время жизни позиции.
func (p *Position) Duration(now time.Time) time.Duration {
	if p.ClosedAt != nil {
		return p.ClosedAt.Sub(p.OpenedAt)
	}
	return now.Sub(p.OpenedAt)
}

// CatchResult — итог подсечки.
type CatchResult struct {
	Fish         *catalog.Fish // nil — рыба сорвалась
	PnLPercent   float64
	Duration     time.Duration
	XP           int
	LevelsGained int
	NewLevel     int
}
