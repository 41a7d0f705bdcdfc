// Package leaderboard — handlers.go обрабатывает команду !топ.
package leaderboard

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"baitpond.ru/fishing-bot/internal/common"
)

// Медали для первых трёх мест.
var medals = []string{"🥇", "🥈", "🥉"}

// Handler обрабатывает команду рейтинга.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик рейтинга.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleTop обрабатывает команду !топ — десятка лучших рыбаков.
//
// Формат ответа:
//
//	🏆 Лучшие рыбаки:
//
//	🥇 @ivan (ур. 5) — 42 улова, лучший P&L 🟢 +18.30%
//	🥈 @petr (ур. 3) — 30 уловов
func (h *Handler) HandleTop(ctx context.Context, chatID int64) {
	entries, err := h.service.Top(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка построения рейтинга")
		h.sendMessage(chatID, "❌ Ошибка построения рейтинга")
		return
	}

	if len(entries) == 0 {
		h.sendMessage(chatID, "🏆 Рейтинг пока пуст — стань первым: !заброс")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 Лучшие рыбаки:\n\n")
	for i, e := range entries {
		place := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			place = medals[i]
		}
		sb.WriteString(fmt.Sprintf("%s %s (ур. %d) — %d %s",
			place, e.DisplayName(), e.Level, e.Catches, common.PluralizeCatches(e.Catches)))
		if e.BestPnL != nil {
			sb.WriteString(fmt.Sprintf(", лучший P&L %s", common.FormatPnL(*e.BestPnL)))
		}
		sb.WriteString("\n")
	}
	h.sendMessage(chatID, sb.String())
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
