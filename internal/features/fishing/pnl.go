package fishing

// CalcPnLPercent считает P&L позиции в процентах с учётом плеча.
// Отрицательное плечо — шорт: движение цены вниз даёт прибыль.
// Нулевая цена входа даёт 0 (битая котировка, не делим на неё).
func CalcPnLPercent(entryPrice, exitPrice, leverage float64) float64 {
	if entryPrice == 0 {
		return 0
	}
	raw := (exitPrice - entryPrice) / entryPrice * 100
	return raw * leverage
}
