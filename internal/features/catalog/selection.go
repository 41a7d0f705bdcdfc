// Package catalog — selection.go реализует механику выбора улова.
//
// Два чистых шага:
//  1. FilterEligible — отбор рыбы, пригодной при данном P&L, уровне и снаряжении;
//  2. SelectWeighted — взвешенный по редкости случайный выбор из пригодных.
//
// Обе функции без побочных эффектов и безопасны для параллельных вызовов:
// каталог читается, генератор случайных чисел передаётся снаружи.
package catalog

import (
	"math/rand"
	"sync"

	"baitpond.ru/fishing-bot/internal/common"
)

// RandSource — источник случайности для выбора улова.
// Передаётся явно, чтобы тесты могли подставить детерминированный
// генератор, а параллельные уловы не делили глобальное состояние.
type RandSource interface {
	// Float64 возвращает равномерное число из [0, 1)
	Float64() float64
}

// LockedRand оборачивает *rand.Rand мьютексом.
// *rand.Rand сам по себе не потокобезопасен, а уловы идут из разных горутин.
type LockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRand создаёт потокобезопасный генератор с заданным сидом.
func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{r: rand.New(rand.NewSource(seed))}
}

// Float64 возвращает равномерное число из [0, 1).
func (l *LockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// FilterEligible возвращает рыбу, пригодную для данных условий.
// Рыба пригодна, если выполнены ВСЕ четыре условия:
//  1. MinPnL <= PnLPercent <= MaxPnL (обе границы включительно)
//  2. MinLevel <= UserLevel
//  3. RequiredPonds пусто ИЛИ содержит PondID
//  4. RequiredRods пусто ИЛИ содержит RodID
//
// Пустой результат — не ошибка: P&L может выпасть вне всех диапазонов.
// Решение о fallback принимает вызывающий (см. Snapshot.Select).
func FilterEligible(items []Fish, ctx Context) []Fish {
	eligible := make([]Fish, 0, len(items))
	for _, f := range items {
		if ctx.PnLPercent < f.MinPnL || ctx.PnLPercent > f.MaxPnL {
			continue
		}
		if f.MinLevel > ctx.UserLevel {
			continue
		}
		if len(f.RequiredPonds) > 0 {
			if _, ok := f.RequiredPonds[ctx.PondID]; !ok {
				continue
			}
		}
		if len(f.RequiredRods) > 0 {
			if _, ok := f.RequiredRods[ctx.RodID]; !ok {
				continue
			}
		}
		eligible = append(eligible, f)
	}
	return eligible
}

// SelectWeighted выбирает одну рыбу из пригодных с учётом весов редкости.
// Вероятность рыбы i равна weight(rarity_i) / sum(weight(rarity_j)).
//
// Старый каталог размножал каждую рыбу в max(1, weight*20) копий и брал
// равномерный random.choice из плоского списка. Здесь то же распределение
// считается напрямую по кумулятивным весам — без материализации копий,
// O(n) вместо O(n·weight); наблюдаемое распределение не меняется.
//
// Пустой список — нарушение предусловия (баг вызывающего кода),
// возвращается common.ErrEmptyEligibleSet. На непустом входе
// ошибка невозможна.
func SelectWeighted(eligible []Fish, weights WeightTable, rng RandSource) (Fish, error) {
	if len(eligible) == 0 {
		return Fish{}, common.ErrEmptyEligibleSet
	}
	if len(weights) == 0 {
		weights = DefaultWeights
	}

	var total float64
	for _, f := range eligible {
		total += weights.Weight(f.Rarity)
	}

	target := rng.Float64() * total
	var cum float64
	for _, f := range eligible {
		cum += weights.Weight(f.Rarity)
		if target < cum {
			return f, nil
		}
	}
	// Сюда попадаем только из-за накопленной погрешности float
	// на самой границе — отдаём последнюю рыбу
	return eligible[len(eligible)-1], nil
}

// Select — оркестратор полного выбора улова по снимку каталога.
//
// Сначала строгий проход. Если пусто — один fallback-проход со снятыми
// ограничениями уровня и снаряжения; диапазон P&L НЕ ослабляется никогда,
// это смысловой якорь «что именно поймано». Если пусто и после
// fallback — возвращается (nil, false): это штатный исход
// (P&L вне всех диапазонов каталога), а не ошибка.
func (s *Snapshot) Select(ctx Context, rng RandSource) (*Fish, bool) {
	eligible := FilterEligible(s.items, ctx)

	if len(eligible) == 0 {
		eligible = filterByPnL(s.items, ctx.PnLPercent)
	}

	if len(eligible) == 0 {
		return nil, false
	}

	fish, err := SelectWeighted(eligible, s.weights, rng)
	if err != nil {
		// Недостижимо: список не пуст
		return nil, false
	}
	return &fish, true
}

// filterByPnL — fallback-проход: только диапазон P&L, без уровня и снаряжения.
func filterByPnL(items []Fish, pnl float64) []Fish {
	eligible := make([]Fish, 0, len(items))
	for _, f := range items {
		if pnl >= f.MinPnL && pnl <= f.MaxPnL {
			eligible = append(eligible, f)
		}
	}
	return eligible
}
