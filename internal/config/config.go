// Package config загружает конфигурацию бота из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Telegram ---
	AdminIDsRaw      string  `envconfig:"ADMIN_IDS" required:"true"`
	AdminIDs         []int64 `envconfig:"-"` // заполним вручную
	TelegramBotToken string  `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`

	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"botuser"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"fishing_bot"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Europe/Moscow"`

	// --- Bot runtime ---
	// Сколько апдейтов обрабатываем параллельно. Иначе "go на каждый апдейт" = утечка памяти при флуде.
	BotMaxInflight int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	// Таймаут long polling (секунды)
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Admin ---
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`

	// --- Fishing ---
	// Сколько наживки получает новый рыбак
	FishingStartBait int `envconfig:"FISHING_START_BAIT" default:"10"`
	// Подсечка раньше этого времени с микроскопическим P&L отклоняется
	FishingQuickSeconds int     `envconfig:"FISHING_QUICK_SECONDS" default:"60"`
	FishingQuickPnL     float64 `envconfig:"FISHING_QUICK_PNL" default:"0.1"`
	// Опыт за улов: базовый + бонус за каждую ступень редкости
	FishingXPPerCatch   int `envconfig:"FISHING_XP_PER_CATCH" default:"10"`
	FishingXPRarityStep int `envconfig:"FISHING_XP_RARITY_STEP" default:"15"`
	// Ежедневный бонус наживки для рыбаков с балансом ниже порога
	FishingDailyBaitBonus int `envconfig:"FISHING_DAILY_BAIT_BONUS" default:"3"`
	FishingBaitThreshold  int `envconfig:"FISHING_BAIT_THRESHOLD" default:"3"`

	// --- Редкость улова ---
	// Веса ступеней редкости: чем меньше вес, тем реже рыба попадается.
	// Это настраиваемые константы, а не выведенные значения.
	RarityWeightTrash     float64 `envconfig:"RARITY_WEIGHT_TRASH" default:"1.0"`
	RarityWeightCommon    float64 `envconfig:"RARITY_WEIGHT_COMMON" default:"0.8"`
	RarityWeightRare      float64 `envconfig:"RARITY_WEIGHT_RARE" default:"0.4"`
	RarityWeightEpic      float64 `envconfig:"RARITY_WEIGHT_EPIC" default:"0.15"`
	RarityWeightLegendary float64 `envconfig:"RARITY_WEIGHT_LEGENDARY" default:"0.05"`

	// --- Цены ---
	PriceAPIBaseURL string        `envconfig:"PRICE_API_BASE_URL" default:"https://api.coingecko.com/api/v3"`
	PriceCacheTTL   time.Duration `envconfig:"PRICE_CACHE_TTL" default:"1m"`
	PriceTimeout    time.Duration `envconfig:"PRICE_TIMEOUT" default:"10s"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
	// Подсечка лимитируется отдельно и жёстче — иначе спамят /hook каждую секунду
	RateLimitHooks      int           `envconfig:"RATE_LIMIT_HOOKS" default:"3"`
	RateLimitHookWindow time.Duration `envconfig:"RATE_LIMIT_HOOK_WINDOW" default:"1m"`

	// --- Feature Flags ---
	FeatureShopEnabled        bool `envconfig:"FEATURE_SHOP_ENABLED" default:"true"`
	FeatureLeaderboardEnabled bool `envconfig:"FEATURE_LEADERBOARD_ENABLED" default:"true"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) Validate() error {
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT должен быть > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS должен быть > 0")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.FishingStartBait < 0 {
		return fmt.Errorf("FISHING_START_BAIT не может быть отрицательным")
	}
	// Веса редкости должны убывать от мусора к легендарке,
	// иначе «редкая» рыба окажется самой частой
	weights := []float64{
		c.RarityWeightTrash, c.RarityWeightCommon, c.RarityWeightRare,
		c.RarityWeightEpic, c.RarityWeightLegendary,
	}
	for i, w := range weights {
		if w <= 0 {
			return fmt.Errorf("вес редкости #%d должен быть > 0", i)
		}
		if i > 0 && w > weights[i-1] {
			return fmt.Errorf("веса редкости должны монотонно убывать")
		}
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	ids, err := parseInt64CSV(cfg.AdminIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS parse: %w", err)
	}
	cfg.AdminIDs = ids

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInt64CSV(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int64 %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
