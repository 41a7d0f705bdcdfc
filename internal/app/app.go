// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// фильтры и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"baitpond.ru/fishing-bot/internal/bot"
	"baitpond.ru/fishing-bot/internal/bot/filters"
	"baitpond.ru/fishing-bot/internal/config"
	"baitpond.ru/fishing-bot/internal/db/postgres"
	"baitpond.ru/fishing-bot/internal/features/admin"
	"baitpond.ru/fishing-bot/internal/features/anglers"
	"baitpond.ru/fishing-bot/internal/features/catalog"
	"baitpond.ru/fishing-bot/internal/features/fishing"
	"baitpond.ru/fishing-bot/internal/features/gear"
	"baitpond.ru/fishing-bot/internal/features/leaderboard"
	"baitpond.ru/fishing-bot/internal/jobs"
	"baitpond.ru/fishing-bot/internal/prices"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Репозитории ===
	anglerRepo := anglers.NewRepository(pool)
	gearRepo := gear.NewRepository(pool)
	catalogRepo := catalog.NewRepository(pool)
	fishingRepo := fishing.NewRepository(pool)
	leaderboardRepo := leaderboard.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 4. Сервисы ===
	priceClient := prices.NewClient(cfg)
	anglerService := anglers.NewService(anglerRepo, cfg)
	gearService := gear.NewService(gearRepo, anglerService)
	catalogService := catalog.NewService(catalogRepo, cfg)
	fishingService := fishing.NewService(fishingRepo, anglerService, gearService, catalogService, priceClient, cfg)
	leaderboardService := leaderboard.NewService(leaderboardRepo)
	adminService := admin.NewService(adminRepo, anglerService, catalogService, cfg)

	// Каталог рыбы обязан быть загружен до первой подсечки
	if err := catalogService.Load(ctx); err != nil {
		return nil, fmt.Errorf("ошибка загрузки каталога рыбы: %w", err)
	}

	// === 5. Обработчики ===
	anglerHandler := anglers.NewHandler(anglerService, botAPI)
	gearHandler := gear.NewHandler(gearService, anglerService, botAPI)
	fishingHandler := fishing.NewHandler(fishingService, botAPI)
	leaderboardHandler := leaderboard.NewHandler(leaderboardService, botAPI)
	adminHandler := admin.NewHandler(adminService, botAPI)

	// === 6. Фильтры ===
	chatFilter := filters.NewChatFilter()

	// === 7. Собираем бота ===
	b := bot.New(
		botAPI, cfg,
		anglerHandler,
		gearHandler,
		fishingHandler,
		leaderboardHandler,
		adminHandler,
		chatFilter,
	)

	// === 8. Планировщик задач ===
	scheduler := jobs.NewScheduler(anglerService, catalogService)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Anglers},
		{2, migration002Ponds},
		{3, migration003Rods},
		{4, migration004Fish},
		{5, migration005Positions},
		{6, migration006Admin},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Anglers = `
CREATE TABLE IF NOT EXISTS anglers (
    telegram_id BIGINT PRIMARY KEY,
    username VARCHAR(255) NOT NULL DEFAULT '',
    first_name VARCHAR(255) NOT NULL DEFAULT '',
    bait_tokens INTEGER NOT NULL DEFAULT 0 CHECK (bait_tokens >= 0),
    level INTEGER NOT NULL DEFAULT 1,
    experience INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_anglers_username ON anglers(username);
`

var migration002Ponds = `
CREATE TABLE IF NOT EXISTS ponds (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    emoji VARCHAR(16) NOT NULL DEFAULT '',
    pair VARCHAR(32) NOT NULL,
    currency VARCHAR(64) NOT NULL,
    min_level INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP DEFAULT NOW()
);

INSERT INTO ponds (name, emoji, pair, currency, min_level)
SELECT * FROM (VALUES
    ('Криптовые Воды', '🌊', 'ETH/USDT', 'ethereum', 1),
    ('Озеро Профита', '💰', 'BTC/USDT', 'bitcoin', 2),
    ('Море Волатильности', '⚡', 'SOL/USDT', 'solana', 3),
    ('Лунные Пруды', '🌙', 'ADA/USDT', 'cardano', 4),
    ('Вулканические Источники', '🔥', 'MATIC/USDT', 'polygon', 5),
    ('Ледяные Глубины', '❄️', 'AVAX/USDT', 'avalanche-2', 6),
    ('Радужные Заводи', '🌈', 'LINK/USDT', 'chainlink', 7),
    ('Горные Озёра', '🏔️', 'DOT/USDT', 'polkadot', 8)
) AS seed(name, emoji, pair, currency, min_level)
WHERE NOT EXISTS (SELECT 1 FROM ponds);
`

var migration003Rods = `
CREATE TABLE IF NOT EXISTS rods (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    emoji VARCHAR(16) NOT NULL DEFAULT '',
    leverage REAL NOT NULL,
    price INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS angler_rods (
    id BIGSERIAL PRIMARY KEY,
    angler_id BIGINT NOT NULL REFERENCES anglers(telegram_id),
    rod_id BIGINT NOT NULL REFERENCES rods(id),
    active BOOLEAN NOT NULL DEFAULT FALSE,
    acquired_at TIMESTAMP DEFAULT NOW(),
    UNIQUE(angler_id, rod_id)
);

INSERT INTO rods (name, emoji, leverage, price)
SELECT * FROM (VALUES
    ('Стартовая удочка', '🎣', 1.5, 0),
    ('Морская удочка', '🌊', 2.0, 50),
    ('Электрическая удочка', '⚡', 2.5, 100),
    ('Огненная удочка', '🔥', 3.0, 200),
    ('Алмазная удочка', '💎', 3.5, 500),
    ('Лунная удочка', '🌙', 4.0, 1000),
    ('Солнечная удочка', '☀️', 5.0, 2000),
    ('Мастерская удочка', '🎯', 6.0, 5000)
) AS seed(name, emoji, leverage, price)
WHERE NOT EXISTS (SELECT 1 FROM rods);
`

var migration004Fish = `
CREATE TABLE IF NOT EXISTS fish (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    emoji VARCHAR(16) NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    min_pnl REAL NOT NULL,
    max_pnl REAL NOT NULL,
    min_level INTEGER NOT NULL DEFAULT 1,
    required_ponds TEXT NOT NULL DEFAULT '',
    required_rods TEXT NOT NULL DEFAULT '',
    rarity VARCHAR(16) NOT NULL DEFAULT 'common',
    story_template TEXT NOT NULL DEFAULT '',
    image_prompt TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT NOW()
);

INSERT INTO fish (name, emoji, description, min_pnl, max_pnl, min_level, required_ponds, required_rods, rarity, story_template)
SELECT * FROM (VALUES
    ('Старый Сапог', '🥾', 'Мусор со дна водоёма', -100.0, -20.0, 1, '', '', 'trash',
     'Вы чувствуете груз разочарования... {emoji} {name}... серьёзно?'),
    ('Ржавая Ложка', '🥄', 'Кто-то ел здесь суп. Давно.', -40.0, -10.0, 1, '', '', 'trash',
     '{emoji} {name} блестит на солнце. Это не то, ради чего ты сюда пришёл.'),
    ('Пакет-Медуза', '🛍️', 'Притворяется медузой. Неубедительно.', -20.0, -0.5, 1, '', '', 'trash',
     '{emoji} {name} вяло колышется на крючке. Экология скажет спасибо.'),
    ('Тревожный Анчоус', '🐟', 'Нервничает больше тебя', -0.5, 0.5, 1, '', '', 'common',
     '{emoji} {name} дрожит в руках. Вы с ним похожи.'),
    ('Счастливая Плотва', '🐟', 'Маленькая, но приносящая удачу', 0.0, 10.0, 1, '', '', 'common',
     'Маленький, но счастливый улов! {emoji} {name} — маленькая, но считается!'),
    ('Кофейный Гуппи', '🐠', 'Не спал три ночи. Как и рынок.', 0.5, 5.0, 1, '', '', 'common',
     '{emoji} {name} вибрирует от кофеина. Бодрый улов!'),
    ('Хипстерская Сельдь', '🐡', 'Ловилась до того, как это стало мейнстримом', 2.0, 8.0, 2, '', '', 'common',
     '{emoji} {name} смотрит на тебя с лёгким осуждением.'),
    ('Бычий Окунь', '🐂', 'Верит только в рост', 5.0, 20.0, 2, '', '', 'rare',
     '{emoji} {name} тянет вверх! Настоящий бык среди рыб.'),
    ('Медвежья Щука', '🧸', 'Водится в красных свечах', -60.0, -15.0, 2, '', '', 'rare',
     '{emoji} {name} утащила тебя на дно и там отпустила. Уважение.'),
    ('Лунный Карп', '🌕', 'Видел то самое «to the moon»', 15.0, 50.0, 3, '', '', 'rare',
     '{emoji} {name} сияет серебром. Почти как твой портфель в 2021.'),
    ('Золотой Кит', '🐋', 'Двигает рынки одним плавником', 30.0, 100.0, 5, '', '', 'epic',
     'Вода расступается... {emoji} {name}! Такого видят раз в сезон.'),
    ('Древний Левиафан', '🐉', 'Пережил все крипто-зимы', 50.0, 1000.0, 7, '', '', 'legendary',
     'Глубины содрогнулись. {emoji} {name} признал в тебе равного.'),
    ('Призрачная Камбала', '👻', 'Появляется только при полном обвале', -1000.0, -50.0, 4, '', '', 'epic',
     '{emoji} {name} всплыла из бездны твоего депозита.')
) AS seed(name, emoji, description, min_pnl, max_pnl, min_level, required_ponds, required_rods, rarity, story_template)
WHERE NOT EXISTS (SELECT 1 FROM fish);
`

var migration005Positions = `
CREATE TABLE IF NOT EXISTS positions (
    id BIGSERIAL PRIMARY KEY,
    angler_id BIGINT NOT NULL REFERENCES anglers(telegram_id),
    pond_id BIGINT NOT NULL REFERENCES ponds(id),
    rod_id BIGINT NOT NULL REFERENCES rods(id),
    pair VARCHAR(32) NOT NULL,
    entry_price DOUBLE PRECISION NOT NULL,
    leverage REAL NOT NULL,
    opened_at TIMESTAMP NOT NULL DEFAULT NOW(),
    closed_at TIMESTAMP,
    exit_price DOUBLE PRECISION,
    pnl_percent DOUBLE PRECISION,
    fish_id BIGINT REFERENCES fish(id)
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_positions_one_open
    ON positions(angler_id) WHERE closed_at IS NULL;
CREATE INDEX IF NOT EXISTS idx_positions_angler ON positions(angler_id, closed_at);
`

var migration006Admin = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    session_token VARCHAR(255) UNIQUE,
    authenticated_at TIMESTAMP DEFAULT NOW(),
    expires_at TIMESTAMP,
    last_activity TIMESTAMP DEFAULT NOW(),
    is_active BOOLEAN DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_user_id ON admin_sessions(user_id);

CREATE TABLE IF NOT EXISTS admin_login_attempts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT,
    attempt_time TIMESTAMP DEFAULT NOW(),
    success BOOLEAN DEFAULT FALSE
);
`
