package catalog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baitpond.ru/fishing-bot/internal/common"
)

// testFish — короткий конструктор записи каталога для тестов.
func testFish(id int64, name string, minPnL, maxPnL float64, minLevel int, rarity Rarity) Fish {
	return Fish{
		ID:       id,
		Name:     name,
		MinPnL:   minPnL,
		MaxPnL:   maxPnL,
		MinLevel: minLevel,
		Rarity:   rarity,
	}
}

func seededRand(seed int64) RandSource {
	return NewLockedRand(seed)
}

func TestFilterEligible_PnLBoundariesInclusive(t *testing.T) {
	items := []Fish{testFish(1, "Плотва", -20, 0, 1, RarityCommon)}

	// Обе границы диапазона включительно
	assert.Len(t, FilterEligible(items, Context{PnLPercent: -20, UserLevel: 1}), 1)
	assert.Len(t, FilterEligible(items, Context{PnLPercent: 0, UserLevel: 1}), 1)
	assert.Len(t, FilterEligible(items, Context{PnLPercent: -10, UserLevel: 1}), 1)

	// За границами — мимо
	assert.Empty(t, FilterEligible(items, Context{PnLPercent: -20.01, UserLevel: 1}))
	assert.Empty(t, FilterEligible(items, Context{PnLPercent: 0.01, UserLevel: 1}))
}

func TestFilterEligible_LevelBoundary(t *testing.T) {
	items := []Fish{testFish(1, "Щука", -100, 100, 5, RarityRare)}

	assert.Empty(t, FilterEligible(items, Context{PnLPercent: 0, UserLevel: 4}))
	assert.Len(t, FilterEligible(items, Context{PnLPercent: 0, UserLevel: 5}), 1)
	assert.Len(t, FilterEligible(items, Context{PnLPercent: 0, UserLevel: 6}), 1)
}

func TestFilterEligible_PondMembership(t *testing.T) {
	restricted := testFish(1, "Озёрная", -100, 100, 1, RarityCommon)
	restricted.RequiredPonds = map[int64]struct{}{3: {}, 7: {}}
	free := testFish(2, "Вездесущая", -100, 100, 1, RarityCommon)
	items := []Fish{restricted, free}

	// Правильный пруд — обе рыбы
	got := FilterEligible(items, Context{PnLPercent: 0, UserLevel: 1, PondID: 3})
	assert.Len(t, got, 2)

	// Чужой пруд — только рыба без ограничений
	got = FilterEligible(items, Context{PnLPercent: 0, UserLevel: 1, PondID: 5})
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilterEligible_RodMembership(t *testing.T) {
	restricted := testFish(1, "Глубоководная", -100, 100, 1, RarityEpic)
	restricted.RequiredRods = map[int64]struct{}{4: {}}
	items := []Fish{restricted}

	assert.Len(t, FilterEligible(items, Context{PnLPercent: 0, UserLevel: 1, RodID: 4}), 1)
	assert.Empty(t, FilterEligible(items, Context{PnLPercent: 0, UserLevel: 1, RodID: 1}))
}

func TestFilterEligible_AllPredicatesCombined(t *testing.T) {
	fish := testFish(1, "Придирчивая", 5, 15, 3, RarityRare)
	fish.RequiredPonds = map[int64]struct{}{2: {}}
	fish.RequiredRods = map[int64]struct{}{6: {}}
	items := []Fish{fish}

	full := Context{PnLPercent: 10, UserLevel: 3, PondID: 2, RodID: 6}
	assert.Len(t, FilterEligible(items, full), 1)

	// Ломаем условия по одному — каждое отсекает рыбу само по себе
	for name, ctx := range map[string]Context{
		"pnl":   {PnLPercent: 20, UserLevel: 3, PondID: 2, RodID: 6},
		"level": {PnLPercent: 10, UserLevel: 2, PondID: 2, RodID: 6},
		"pond":  {PnLPercent: 10, UserLevel: 3, PondID: 9, RodID: 6},
		"rod":   {PnLPercent: 10, UserLevel: 3, PondID: 2, RodID: 1},
	} {
		assert.Emptyf(t, FilterEligible(items, ctx), "условие %q должно отсекать", name)
	}
}

func TestFilterEligible_EmptyResultIsNotError(t *testing.T) {
	items := []Fish{testFish(1, "Оптимист", 10, 20, 1, RarityCommon)}
	got := FilterEligible(items, Context{PnLPercent: -5, UserLevel: 1})
	assert.Empty(t, got)
}

func TestSelectWeighted_EmptyInputFailsLoudly(t *testing.T) {
	_, err := SelectWeighted(nil, DefaultWeights, seededRand(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmptyEligibleSet)
}

func TestSelectWeighted_SingleItemAlwaysReturned(t *testing.T) {
	items := []Fish{testFish(1, "Одиночка", -10, 10, 1, RarityLegendary)}
	fish, err := SelectWeighted(items, DefaultWeights, seededRand(42))
	require.NoError(t, err)
	assert.Equal(t, int64(1), fish.ID)
}

func TestSelectWeighted_DeterministicWithFixedSeed(t *testing.T) {
	items := []Fish{
		testFish(1, "Первая", -10, 10, 1, RarityCommon),
		testFish(2, "Вторая", -10, 10, 1, RarityRare),
		testFish(3, "Третья", -10, 10, 1, RarityLegendary),
	}

	first, err := SelectWeighted(items, DefaultWeights, seededRand(1337))
	require.NoError(t, err)

	// Одинаковый сид — одинаковый результат, сколько ни повторяй
	for i := 0; i < 10; i++ {
		again, err := SelectWeighted(items, DefaultWeights, seededRand(1337))
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestSelectWeighted_DistributionMatchesWeights(t *testing.T) {
	// Два яруса с известными весами: trash 1.0 и legendary 0.05
	items := []Fish{
		testFish(1, "Сапог", -10, 10, 1, RarityTrash),
		testFish(2, "Кит", -10, 10, 1, RarityLegendary),
	}
	rng := rand.New(rand.NewSource(2024))

	const trials = 100000
	counts := map[int64]int{}
	for i := 0; i < trials; i++ {
		fish, err := SelectWeighted(items, DefaultWeights, rng)
		require.NoError(t, err)
		counts[fish.ID]++
	}

	wTrash, wLegendary := 1.0, 0.05
	expectTrash := wTrash / (wTrash + wLegendary)
	expectLegendary := wLegendary / (wTrash + wLegendary)

	assert.InDelta(t, expectTrash, float64(counts[1])/trials, 0.02)
	assert.InDelta(t, expectLegendary, float64(counts[2])/trials, 0.02)
}

func TestSnapshotSelect_EndToEndScenario(t *testing.T) {
	// A вне диапазона (-5 не входит в [-100,-20]), B и C конкурируют,
	// при этом C — легендарка и должна попадаться ~в 20 раз реже
	a := testFish(1, "A", -100, -20, 1, RarityTrash)
	b := testFish(2, "B", -20, 0, 1, RarityTrash)
	c := testFish(3, "C", -20, 0, 1, RarityLegendary)

	snap, err := NewSnapshot([]Fish{a, b, c}, DefaultWeights)
	require.NoError(t, err)

	ctx := Context{PnLPercent: -5, UserLevel: 1}

	eligible := FilterEligible(snap.Items(), ctx)
	require.Len(t, eligible, 2)
	assert.Equal(t, int64(2), eligible[0].ID)
	assert.Equal(t, int64(3), eligible[1].ID)

	rng := rand.New(rand.NewSource(7))
	const trials = 100000
	counts := map[int64]int{}
	for i := 0; i < trials; i++ {
		fish, ok := snap.Select(ctx, rng)
		require.True(t, ok)
		counts[fish.ID]++
	}

	// B: 1.0/(1.0+0.05) ≈ 95.2%, C: ≈ 4.8%
	assert.InDelta(t, 1.0/1.05, float64(counts[2])/trials, 0.02)
	assert.InDelta(t, 0.05/1.05, float64(counts[3])/trials, 0.02)
	assert.Zero(t, counts[1], "рыба A вне диапазона P&L и не должна ловиться")
}

func TestSnapshotSelect_FallbackRelaxesLevelButNotPnL(t *testing.T) {
	// Единственная рыба в диапазоне требует уровень 10 —
	// строгий проход пуст, fallback снимает уровень
	elite := testFish(1, "Элитная", -10, 10, 10, RarityRare)
	other := testFish(2, "Другая", 50, 60, 1, RarityCommon)

	snap, err := NewSnapshot([]Fish{elite, other}, DefaultWeights)
	require.NoError(t, err)

	fish, ok := snap.Select(Context{PnLPercent: 0, UserLevel: 1}, seededRand(5))
	require.True(t, ok)
	assert.Equal(t, int64(1), fish.ID)
	// Якорь улова: диапазон возвращённой рыбы всё ещё содержит P&L
	assert.LessOrEqual(t, fish.MinPnL, 0.0)
	assert.GreaterOrEqual(t, fish.MaxPnL, 0.0)
}

func TestSnapshotSelect_FallbackIgnoresGearRequirements(t *testing.T) {
	fish := testFish(1, "Чужая", -10, 10, 1, RarityCommon)
	fish.RequiredPonds = map[int64]struct{}{99: {}}

	snap, err := NewSnapshot([]Fish{fish}, DefaultWeights)
	require.NoError(t, err)

	got, ok := snap.Select(Context{PnLPercent: 0, UserLevel: 1, PondID: 1}, seededRand(5))
	require.True(t, ok)
	assert.Equal(t, int64(1), got.ID)
}

func TestSnapshotSelect_NoMatchEvenAfterFallback(t *testing.T) {
	// P&L -5 не входит в единственный диапазон [10,20]:
	// и строгий проход, и fallback пусты — штатный исход nil
	snap, err := NewSnapshot([]Fish{testFish(1, "Недосягаемая", 10, 20, 1, RarityCommon)}, DefaultWeights)
	require.NoError(t, err)

	fish, ok := snap.Select(Context{PnLPercent: -5, UserLevel: 1}, seededRand(5))
	assert.False(t, ok)
	assert.Nil(t, fish)
}
