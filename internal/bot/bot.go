// Package bot содержит главный модуль бота — инициализацию, запуск и остановку.
// bot.go подключает обработчики фич и запускает polling.
package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"baitpond.ru/fishing-bot/internal/bot/filters"
	"baitpond.ru/fishing-bot/internal/bot/middleware"
	"baitpond.ru/fishing-bot/internal/config"
	"baitpond.ru/fishing-bot/internal/features/admin"
	"baitpond.ru/fishing-bot/internal/features/anglers"
	"baitpond.ru/fishing-bot/internal/features/fishing"
	"baitpond.ru/fishing-bot/internal/features/gear"
	"baitpond.ru/fishing-bot/internal/features/leaderboard"
)

const helpText = `🎣 Рыболовный бот: забрасывай удочку в крипто-пруд и подсекай улов по движению цены.

Команды:
!заброс <пруд> — забросить удочку (стоит 1 наживку)
!статус — проверить поклёвку
!подсечка — вытащить улов
!пруды — список прудов
!удочки — снаряжение и магазин
!купить <номер> — купить удочку
!рыбак — профиль
!топ — лучшие рыбаки

Префиксы команд: ! . /`

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter
	hookLimiter *middleware.RateLimiter

	anglerHandler      *anglers.Handler
	gearHandler        *gear.Handler
	fishingHandler     *fishing.Handler
	leaderboardHandler *leaderboard.Handler
	adminHandler       *admin.Handler

	parser *CommandParser

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	anglerHandler *anglers.Handler,
	gearHandler *gear.Handler,
	fishingHandler *fishing.Handler,
	leaderboardHandler *leaderboard.Handler,
	adminHandler *admin.Handler,
	chatFilter *filters.ChatFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:                api,
		cfg:                cfg,
		chatFilter:         chatFilter,
		rateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		hookLimiter:        middleware.NewRateLimiter(cfg.RateLimitHooks, cfg.RateLimitHookWindow),
		anglerHandler:      anglerHandler,
		gearHandler:        gearHandler,
		fishingHandler:     fishingHandler,
		leaderboardHandler: leaderboardHandler,
		adminHandler:       adminHandler,
		parser:             NewCommandParser(),
		inflight:           make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			b.rateLimiter.Close()
			b.hookLimiter.Close()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	if update.Message == nil || update.Message.Text == "" {
		return
	}

	message := update.Message
	middleware.LogMessage(message)

	if !b.chatFilter.CheckAccess(message) {
		return
	}

	if !b.rateLimiter.Allow(message.From.ID) {
		log.WithField("user_id", message.From.ID).Debug("rate limited")
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID

	// В DM первым делом проверяем админ-панель
	if message.Chat.IsPrivate() {
		if b.adminHandler.HandleAdminMessage(ctx, chatID, userID, message.Text) {
			return
		}
	}

	cmd, args, isCommand := b.parser.ParseCommand(message.Text)
	if !isCommand {
		return
	}

	b.routeCommand(ctx, message, cmd, args)
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, message *tgbotapi.Message, cmd string, args []string) {
	chatID := message.Chat.ID
	userID := message.From.ID
	username := message.From.UserName
	firstName := message.From.FirstName

	log.WithFields(log.Fields{
		"cmd":  cmd,
		"args": args,
	}).Debug("routing command")

	switch cmd {
	case "start", "help", "помощь":
		b.sendMessage(chatID, helpText)

	case "login":
		if message.Chat.IsPrivate() {
			b.adminHandler.HandleAdminMessage(ctx, chatID, userID, strings.Join(args, " "))
		}

	case "заброс", "cast":
		b.fishingHandler.HandleCast(ctx, chatID, userID, username, firstName, args)

	case "статус", "status":
		b.fishingHandler.HandleStatus(ctx, chatID, userID)

	case "подсечка", "hook":
		// Отдельный, более жёсткий лимит — подсечку любят спамить
		if !b.hookLimiter.Allow(userID) {
			log.WithField("user_id", userID).Debug("hook rate limited")
			return
		}
		b.fishingHandler.HandleHook(ctx, chatID, userID)

	case "пруды", "ponds":
		b.gearHandler.HandlePonds(ctx, chatID, userID)

	case "удочки", "rods":
		if b.cfg.FeatureShopEnabled {
			b.gearHandler.HandleRods(ctx, chatID, userID)
		} else {
			b.sendMessage(chatID, "🏪 Магазин временно закрыт")
		}

	case "купить", "buy":
		if b.cfg.FeatureShopEnabled {
			b.gearHandler.HandleBuy(ctx, chatID, userID, args)
		} else {
			b.sendMessage(chatID, "🏪 Магазин временно закрыт")
		}

	case "рыбак", "профиль", "profile":
		b.anglerHandler.HandleProfile(ctx, chatID, userID, username, firstName)

	case "топ", "top":
		if b.cfg.FeatureLeaderboardEnabled {
			b.leaderboardHandler.HandleTop(ctx, chatID)
		}
	}
}

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// SendMessageToUser отправляет сообщение пользователю (для уведомлений).
func (b *Bot) SendMessageToUser(userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("Не удалось отправить сообщение")
	}
}
