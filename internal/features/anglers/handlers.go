// Package anglers — handlers.go обрабатывает команду !рыбак (профиль).
package anglers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"baitpond.ru/fishing-bot/internal/common"
)

// Handler обрабатывает команды профиля рыбака.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик команд профиля.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleProfile обрабатывает команду !рыбак — показывает профиль.
//
// Формат ответа:
//
//	🎣 Рыбак: Иван
//	⭐ Уровень: 3 (120/300 XP)
//	🪱 Наживка: 7 наживок
func (h *Handler) HandleProfile(ctx context.Context, chatID int64, userID int64, username, firstName string) {
	a, err := h.service.Ensure(ctx, userID, username, firstName)
	if err != nil {
		log.WithError(err).Error("Ошибка получения профиля рыбака")
		h.sendMessage(chatID, "❌ Ошибка получения профиля")
		return
	}

	name := a.FirstName
	if name == "" {
		name = a.Username
	}

	text := fmt.Sprintf(
		"🎣 Рыбак: %s\n⭐ Уровень: %d (%d/%d XP)\n🪱 Наживка: %s",
		name, a.Level, a.Experience, XPForNextLevel(a.Level),
		common.FormatBait(a.BaitTokens),
	)
	h.sendMessage(chatID, text)
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
