package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baitpond.ru/fishing-bot/internal/common"
)

func TestNewSnapshot_EmptyCatalogIsConfigError(t *testing.T) {
	_, err := NewSnapshot(nil, DefaultWeights)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmptyCatalog)
}

func TestNewSnapshot_InvertedRangeIsConfigError(t *testing.T) {
	bad := testFish(1, "Перевёртыш", 10, -10, 1, RarityCommon)
	_, err := NewSnapshot([]Fish{bad}, DefaultWeights)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidPnLRange)
}

func TestNewSnapshot_ValidatesEveryItem(t *testing.T) {
	// Инвариант min_pnl <= max_pnl проверяется для КАЖДОЙ записи,
	// в том числе для вырожденного диапазона из одной точки
	items := []Fish{
		testFish(1, "Точка", 5, 5, 1, RarityCommon),
		testFish(2, "Широкая", -100, 100, 1, RarityTrash),
	}
	snap, err := NewSnapshot(items, DefaultWeights)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len())

	for _, f := range snap.Items() {
		assert.LessOrEqual(t, f.MinPnL, f.MaxPnL)
	}
}

func TestNewSnapshot_CopiesItems(t *testing.T) {
	items := []Fish{testFish(1, "Оригинал", -10, 10, 1, RarityCommon)}
	snap, err := NewSnapshot(items, DefaultWeights)
	require.NoError(t, err)

	// Мутация исходного среза не должна трогать снимок
	items[0].Name = "Подменыш"
	assert.Equal(t, "Оригинал", snap.Items()[0].Name)
}

func TestParseIDSet(t *testing.T) {
	assert.Nil(t, ParseIDSet(""))
	assert.Nil(t, ParseIDSet("   "))

	set := ParseIDSet("1, 3,7")
	require.Len(t, set, 3)
	assert.Contains(t, set, int64(1))
	assert.Contains(t, set, int64(3))
	assert.Contains(t, set, int64(7))

	// Мусорные элементы пропускаются, а не роняют загрузку
	set = ParseIDSet("2, мусор, 4,")
	require.Len(t, set, 2)
	assert.Contains(t, set, int64(2))
	assert.Contains(t, set, int64(4))

	// Совсем нечитаемое поле = без ограничений
	assert.Nil(t, ParseIDSet("abc, def"))
}

func TestParseRarity(t *testing.T) {
	assert.Equal(t, RarityTrash, ParseRarity("trash"))
	assert.Equal(t, RarityLegendary, ParseRarity(" LEGENDARY "))
	assert.Equal(t, RarityEpic, ParseRarity("epic"))
	// Неизвестная редкость — common, опечатка не делает рыбу неуловимой
	assert.Equal(t, RarityCommon, ParseRarity("мифическая"))
	assert.Equal(t, RarityCommon, ParseRarity(""))
}

func TestWeightTable_MonotonicallyDecreasing(t *testing.T) {
	order := []Rarity{RarityTrash, RarityCommon, RarityRare, RarityEpic, RarityLegendary}
	for i := 1; i < len(order); i++ {
		assert.Less(t, DefaultWeights.Weight(order[i]), DefaultWeights.Weight(order[i-1]),
			"вес %s должен быть меньше веса %s", order[i], order[i-1])
	}
}

func TestWeightTable_UnknownRarityGetsMiddleWeight(t *testing.T) {
	w := WeightTable{RarityTrash: 1.0}
	assert.Equal(t, 0.5, w.Weight(RarityLegendary))
}

func TestFishStory(t *testing.T) {
	f := Fish{
		Name:          "Счастливая Плотва",
		Emoji:         "🐟",
		StoryTemplate: "Маленький, но счастливый улов! {emoji} {name} — считается!",
	}
	assert.Equal(t, "Маленький, но счастливый улов! 🐟 Счастливая Плотва — считается!", f.Story())

	// Без шаблона — дефолтная фраза
	plain := Fish{Name: "Безымянная", Emoji: "🐠"}
	assert.Equal(t, "Вы поймали 🐠 Безымянная!", plain.Story())
}
