// Package gear — пруды и удочки: где ловим и чем ловим.
// Пруд задаёт торговую пару и минимальный уровень,
// удочка — плечо позиции.
package gear

import "time"

// Pond — пруд, привязанный к торговой паре.
type Pond struct {
	ID        int64
	Name      string
	Emoji     string
	Pair      string // Торговая пара, например "ETH/USDT"
	Currency  string // Тикер базовой валюты для котировок ("ethereum")
	MinLevel  int    // Минимальный уровень рыбака для доступа
	CreatedAt time.Time
}

// Available сообщает, доступен ли пруд рыбаку данного уровня.
func (p *Pond) Available(level int) bool {
	return level >= p.MinLevel
}

// Rod — удочка с торговым плечом.
type Rod struct {
	ID        int64
	Name      string
	Emoji     string
	Leverage  float64 // Плечо позиции, может быть отрицательным (шорт)
	Price     int     // Цена в наживке; 0 — стартовая, выдаётся бесплатно
	CreatedAt time.Time
}

// Starter сообщает, является ли удочка стартовой.
func (r *Rod) Starter() bool {
	return r.Price == 0
}

// OwnedRod — удочка в снаряжении рыбака.
type OwnedRod struct {
	Rod
	Active     bool
	AcquiredAt time.Time
}
