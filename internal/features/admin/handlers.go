// Package admin — handlers.go обрабатывает взаимодействие с админ-панелью.
// Панель работает через Reply Keyboard в личных сообщениях.
// Поток: аутентификация → клавиатура → выбор действия.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"baitpond.ru/fishing-bot/internal/common"
)

// Handler обрабатывает админ-команды.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик админ-панели.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleAdminMessage обрабатывает любое сообщение от администратора в DM.
// Возвращает true, если сообщение было обработано панелью.
func (h *Handler) HandleAdminMessage(ctx context.Context, chatID int64, userID int64, text string) bool {
	if !h.service.IsAdmin(userID) {
		return false
	}

	state := h.service.GetState(userID)
	if state != nil && state.State == StateAwaitingPassword {
		h.handlePasswordInput(ctx, chatID, userID, text)
		return true
	}

	if !h.service.HasActiveSession(ctx, userID) {
		h.sendMessage(chatID, "🔐 Введите пароль для доступа к админ-панели:")
		h.service.SetState(userID, StateAwaitingPassword)
		return true
	}

	// Команда выдачи: "выдать <telegram_id> <количество>"
	if strings.HasPrefix(strings.ToLower(text), "выдать") {
		h.handleGrantBait(ctx, chatID, userID, strings.Fields(text)[1:])
		return true
	}

	switch strings.ToLower(strings.TrimSpace(text)) {
	case "статистика":
		h.handleStats(ctx, chatID)
		return true
	case "перезагрузить каталог", "перезагрузить":
		h.handleReloadCatalog(ctx, chatID)
		return true
	case "выйти":
		h.service.Logout(ctx, userID)
		h.sendMessage(chatID, "👋 Сессия завершена")
		return true
	case "админ", "панель":
		h.showKeyboard(chatID)
		return true
	}

	return false
}

// handlePasswordInput обрабатывает ввод пароля.
func (h *Handler) handlePasswordInput(ctx context.Context, chatID int64, userID int64, password string) {
	err := h.service.VerifyPassword(ctx, userID, password)
	h.service.ClearState(userID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrWrongPassword):
			h.sendMessage(chatID, "❌ Неверный пароль")
		case errors.Is(err, common.ErrTooManyAttempts):
			h.sendMessage(chatID, "❌ Слишком много попыток, подождите 1 час")
		default:
			log.WithError(err).Error("Ошибка аутентификации админа")
			h.sendMessage(chatID, "❌ Ошибка аутентификации")
		}
		return
	}

	h.sendMessage(chatID, "✅ Аутентификация успешна!")
	h.showKeyboard(chatID)
}

// showKeyboard отображает клавиатуру админ-панели.
func (h *Handler) showKeyboard(chatID int64) {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Статистика"),
			tgbotapi.NewKeyboardButton("Перезагрузить каталог"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Выйти"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "✅ Админ-панель открыта\nВыдача наживки: выдать <telegram_id> <количество>")
	msg.ReplyMarkup = keyboard
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки клавиатуры")
	}
}

// handleGrantBait обрабатывает команду "выдать <telegram_id> <количество>".
func (h *Handler) handleGrantBait(ctx context.Context, chatID int64, adminID int64, args []string) {
	if len(args) < 2 {
		h.sendMessage(chatID, "❌ Формат: выдать <telegram_id> <количество>")
		return
	}

	anglerID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendMessage(chatID, "❌ Некорректный telegram_id")
		return
	}
	amount, err := strconv.Atoi(args[1])
	if err != nil || amount <= 0 {
		h.sendMessage(chatID, "❌ Количество должно быть положительным числом")
		return
	}

	if err := h.service.GrantBait(ctx, adminID, anglerID, amount); err != nil {
		if errors.Is(err, common.ErrAnglerNotFound) {
			h.sendMessage(chatID, "❌ Рыбак с таким ID не найден")
			return
		}
		log.WithError(err).Error("Ошибка выдачи наживки")
		h.sendMessage(chatID, "❌ Ошибка выдачи наживки")
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("✅ Выдано %s рыбаку %d", common.FormatBait(amount), anglerID))
}

// handleStats показывает сводку по боту.
func (h *Handler) handleStats(ctx context.Context, chatID int64) {
	stats, err := h.service.GetBotStats(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка сбора статистики")
		h.sendMessage(chatID, "❌ Ошибка сбора статистики")
		return
	}

	text := fmt.Sprintf(
		"📊 Статистика бота на %s:\n\n🎣 Рыбаков: %s\n📈 Закрытых позиций: %s\n🐟 Уловов: %s\n🪱 Наживки в обороте: %s",
		common.FormatDateTime(common.GetMoscowTime()),
		common.FormatNumber(int64(stats.TotalAnglers)),
		common.FormatNumber(int64(stats.TotalPositions)),
		common.FormatNumber(int64(stats.TotalCatches)),
		common.FormatNumber(stats.TotalBait),
	)
	h.sendMessage(chatID, text)
}

// handleReloadCatalog перечитывает каталог рыбы из базы.
func (h *Handler) handleReloadCatalog(ctx context.Context, chatID int64) {
	count, err := h.service.ReloadCatalog(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка перезагрузки каталога")
		h.sendMessage(chatID, "❌ Ошибка перезагрузки каталога")
		return
	}
	h.sendMessage(chatID, fmt.Sprintf("✅ Каталог перезагружен: %d %s", count, common.PluralizeFish(count)))
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
