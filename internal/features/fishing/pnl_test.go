package fishing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcPnLPercent_Long(t *testing.T) {
	// Рост на 2% с плечом 1.5x даёт +3%.
	pnl := CalcPnLPercent(100, 102, 1.5)
	assert.InDelta(t, 3.0, pnl, 1e-9)
}

func TestCalcPnLPercent_LongLoss(t *testing.T) {
	pnl := CalcPnLPercent(100, 95, 2.0)
	assert.InDelta(t, -10.0, pnl, 1e-9)
}

func TestCalcPnLPercent_ShortInvertsSign(t *testing.T) {
	// Шорт (отрицательное плечо): падение цены даёт прибыль.
	pnl := CalcPnLPercent(100, 95, -2.0)
	assert.InDelta(t, 10.0, pnl, 1e-9)

	pnl = CalcPnLPercent(100, 110, -1.0)
	assert.InDelta(t, -10.0, pnl, 1e-9)
}

func TestCalcPnLPercent_NoMove(t *testing.T) {
	assert.Zero(t, CalcPnLPercent(3500, 3500, 5.0))
}

func TestCalcPnLPercent_ZeroEntry(t *testing.T) {
	// Битая котировка не должна давать деление на ноль.
	assert.Zero(t, CalcPnLPercent(0, 100, 2.0))
}
