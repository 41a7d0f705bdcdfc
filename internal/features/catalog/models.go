// Package catalog реализует каталог рыбы и механику выбора улова:
// фильтр пригодности по P&L/уровню/снаряжению и взвешенный по редкости
// случайный выбор. models.go описывает структуры данных каталога.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Rarity — ступень редкости рыбы. Порядок важен: чем выше значение,
// тем реже рыба попадается на крючок.
type Rarity int

// Ступени редкости от мусора до легендарки.
const (
	RarityTrash Rarity = iota
	RarityCommon
	RarityRare
	RarityEpic
	RarityLegendary
)

// String возвращает имя ступени в том виде, в каком она хранится в БД.
func (r Rarity) String() string {
	switch r {
	case RarityTrash:
		return "trash"
	case RarityCommon:
		return "common"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	default:
		return "common"
	}
}

// Emoji возвращает значок ступени для карточек улова.
func (r Rarity) Emoji() string {
	switch r {
	case RarityTrash:
		return "🗑"
	case RarityCommon:
		return "🐟"
	case RarityRare:
		return "💠"
	case RarityEpic:
		return "🔮"
	case RarityLegendary:
		return "👑"
	default:
		return "🐟"
	}
}

// Title возвращает русское название ступени.
func (r Rarity) Title() string {
	switch r {
	case RarityTrash:
		return "Мусор"
	case RarityCommon:
		return "Обычная"
	case RarityRare:
		return "Редкая"
	case RarityEpic:
		return "Эпическая"
	case RarityLegendary:
		return "Легендарная"
	default:
		return "Обычная"
	}
}

// ParseRarity разбирает текстовую ступень редкости из БД.
// Неизвестные значения трактуются как common — так же поступал
// и старый каталог, где редкость была просто строкой.
func ParseRarity(s string) Rarity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trash":
		return RarityTrash
	case "common":
		return RarityCommon
	case "rare":
		return RarityRare
	case "epic":
		return RarityEpic
	case "legendary":
		return RarityLegendary
	default:
		return RarityCommon
	}
}

// WeightTable — веса ступеней редкости для взвешенного выбора.
// Вес — относительная вероятность ОДНОЙ рыбы данной ступени;
// итоговая вероятность ступени зависит ещё и от того, сколько
// рыб этой ступени пригодно в текущем диапазоне P&L.
type WeightTable map[Rarity]float64

// DefaultWeights — веса по умолчанию. Переопределяются через конфиг.
var DefaultWeights = WeightTable{
	RarityTrash:     1.0,
	RarityCommon:    0.8,
	RarityRare:      0.4,
	RarityEpic:      0.15,
	RarityLegendary: 0.05,
}

// Weight возвращает вес ступени. Для неизвестной ступени — средний вес 0.5,
// чтобы опечатка в каталоге не обнуляла шанс рыбы.
func (w WeightTable) Weight(r Rarity) float64 {
	if v, ok := w[r]; ok && v > 0 {
		return v
	}
	return 0.5
}

// Fish — одна запись каталога. Неизменяема после загрузки:
// каталог публикуется целиком как новый снимок, записи не мутируются.
type Fish struct {
	ID          int64
	Name        string
	Emoji       string
	Description string

	// Диапазон P&L (в процентах), при котором рыба может клюнуть.
	// Обе границы включительно.
	MinPnL float64
	MaxPnL float64

	// Минимальный уровень рыбака
	MinLevel int

	// Пруды/удочки, на которых рыба водится. Пустое множество = без ограничений.
	// В БД хранится как текст через запятую, парсится ОДИН раз при загрузке.
	RequiredPonds map[int64]struct{}
	RequiredRods  map[int64]struct{}

	Rarity Rarity

	// Шаблон истории улова ({emoji} и {name} подставляются при показе)
	StoryTemplate string
	// Промпт для генератора карточек — карточки рисует внешний сервис,
	// ядро просто протаскивает это поле
	ImagePrompt string

	CreatedAt time.Time
}

// Validate проверяет инвариант записи: нижняя граница не выше верхней.
func (f *Fish) Validate() error {
	if f.MinPnL > f.MaxPnL {
		return fmt.Errorf("рыба %q: min_pnl %.2f > max_pnl %.2f", f.Name, f.MinPnL, f.MaxPnL)
	}
	return nil
}

// Story возвращает историю улова с подставленными emoji и именем.
func (f *Fish) Story() string {
	s := f.StoryTemplate
	if s == "" {
		s = "Вы поймали {emoji} {name}!"
	}
	s = strings.ReplaceAll(s, "{emoji}", f.Emoji)
	s = strings.ReplaceAll(s, "{name}", f.Name)
	return s
}

// Context — условия одного улова. Живёт ровно один вызов.
type Context struct {
	PnLPercent float64 // Реализованный P&L в процентах
	UserLevel  int     // Уровень рыбака
	PondID     int64   // Текущий пруд
	RodID      int64   // Текущая удочка
}

// ParseIDSet разбирает текстовое поле вида "1, 3,7" в множество ID.
// Пустая строка — пустое множество (без ограничений).
// Мусорные элементы пропускаются: кривая запись в каталоге не должна
// ронять загрузку целиком.
func ParseIDSet(raw string) map[int64]struct{} {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	set := make(map[int64]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		set[id] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
