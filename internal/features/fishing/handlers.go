// Package fishing — handlers.go обрабатывает команды:
// !заброс <пруд> (открыть позицию), !статус (текущий P&L),
// !подсечка (закрыть позицию и получить улов).
package fishing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"baitpond.ru/fishing-bot/internal/common"
)

// Handler обрабатывает команды рыбалки.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик команд рыбалки.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleCast обрабатывает команду !заброс <номер пруда>.
// Без аргумента забрасывает в первый пруд.
//
// Формат ответа:
//
//	🎣 Заброс в 🌊 Криптовые Воды
//	📈 ETH/USDT по цене $3500.00, плечо 1.5x
//	Жди поклёвки и подсекай: !подсечка
func (h *Handler) HandleCast(ctx context.Context, chatID int64, userID int64, username, firstName string, args []string) {
	pondID := int64(1)
	if len(args) > 0 {
		var err error
		pondID, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil || pondID <= 0 {
			h.sendMessage(chatID, "❌ Номер пруда должен быть положительным числом")
			return
		}
	}

	p, pond, err := h.service.Cast(ctx, userID, username, firstName, pondID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAlreadyFishing):
			h.sendMessage(chatID, "❌ Ты уже рыбачишь! Проверь поклёвку: !статус")
		case errors.Is(err, common.ErrPondNotFound):
			h.sendMessage(chatID, "❌ Такого пруда нет. Список: !пруды")
		case errors.Is(err, common.ErrPondLocked):
			h.sendMessage(chatID, "🔒 Этот пруд пока закрыт — не хватает уровня")
		case errors.Is(err, common.ErrNoBait):
			h.sendMessage(chatID, "❌ Наживка кончилась! Ежедневный бонус начисляется утром")
		default:
			log.WithError(err).Error("Ошибка заброса")
			h.sendMessage(chatID, "❌ Ошибка заброса, попробуй ещё раз")
		}
		return
	}

	text := fmt.Sprintf(
		"🎣 Заброс в %s %s\n📈 %s по цене %s, плечо %.1fx\nЖди поклёвки и подсекай: !подсечка",
		pond.Emoji, pond.Name, p.Pair, common.FormatPrice(p.EntryPrice), p.Leverage,
	)
	h.sendMessage(chatID, text)
}

// HandleStatus обрабатывает команду !статус — нереализованный P&L.
func (h *Handler) HandleStatus(ctx context.Context, chatID int64, userID int64) {
	p, pnl, err := h.service.Status(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFishing) {
			h.sendMessage(chatID, "🏖️ Удочка не заброшена. Начни: !заброс")
			return
		}
		log.WithError(err).Error("Ошибка получения статуса")
		h.sendMessage(chatID, "❌ Ошибка получения статуса")
		return
	}

	text := fmt.Sprintf(
		"🎣 %s, в воде уже %s\n💹 P&L: %s\nПодсекай: !подсечка",
		p.Pair, common.FormatDuration(time.Since(p.OpenedAt)), common.FormatPnL(pnl),
	)
	h.sendMessage(chatID, text)
}

// HandleHook обрабатывает команду !подсечка — закрывает позицию.
//
// Формат ответа при улове:
//
//	🐟 Поймана Счастливая Плотва!
//	💹 P&L: 🟢 +2.40% за 5мин 30с
//	⭐ +10 XP
func (h *Handler) HandleHook(ctx context.Context, chatID int64, userID int64) {
	result, err := h.service.Hook(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFishing):
			h.sendMessage(chatID, "🏖️ Удочка не заброшена. Начни: !заброс")
		case errors.Is(err, common.ErrTooEarlyToHook):
			h.sendMessage(chatID, "⏳ Рано подсекать — поплавок ещё не дрогнул. Подожди немного")
		case errors.Is(err, common.ErrAnglerNotFound):
			h.sendMessage(chatID, "❌ Сначала зарегистрируйся командой !рыбак")
		default:
			log.WithError(err).Error("Ошибка подсечки")
			h.sendMessage(chatID, "❌ Ошибка подсечки, попробуй ещё раз")
		}
		return
	}

	if result.Fish == nil {
		text := fmt.Sprintf(
			"💨 Рыба сорвалась!\n💹 P&L: %s за %s",
			common.FormatPnL(result.PnLPercent), common.FormatDuration(result.Duration),
		)
		h.sendMessage(chatID, text)
		return
	}

	fish := result.Fish
	text := fmt.Sprintf(
		"%s Поймана %s! %s\n%s\n💹 P&L: %s за %s\n⭐ +%d XP",
		fish.Rarity.Emoji(), fish.Name, fish.Emoji,
		fish.Story(),
		common.FormatPnL(result.PnLPercent), common.FormatDuration(result.Duration),
		result.XP,
	)
	if result.LevelsGained > 0 {
		text += fmt.Sprintf("\n🎉 Новый уровень: %d!", result.NewLevel)
	}
	h.sendMessage(chatID, text)
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
