// Package gear — handlers.go обрабатывает команды:
// !пруды (список прудов), !удочки (снаряжение и магазин),
// !купить <номер> (покупка удочки).
package gear

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"baitpond.ru/fishing-bot/internal/common"
	"baitpond.ru/fishing-bot/internal/features/anglers"
)

// Handler обрабатывает команды снаряжения.
type Handler struct {
	service       *Service
	anglerService *anglers.Service
	bot           *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик команд снаряжения.
func NewHandler(service *Service, anglerService *anglers.Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{
		service:       service,
		anglerService: anglerService,
		bot:           bot,
	}
}

// HandlePonds обрабатывает команду !пруды — список прудов.
// Недоступные по уровню пруды помечаются замком.
func (h *Handler) HandlePonds(ctx context.Context, chatID int64, userID int64) {
	a, err := h.anglerService.Get(ctx, userID)
	level := 1
	if err == nil {
		level = a.Level
	}

	ponds, err := h.service.ListPonds(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка получения прудов")
		h.sendMessage(chatID, "❌ Ошибка получения списка прудов")
		return
	}

	var sb strings.Builder
	sb.WriteString("🗺️ Пруды:\n\n")
	for _, p := range ponds {
		if p.Available(level) {
			sb.WriteString(fmt.Sprintf("%s %s — %s\n", p.Emoji, p.Name, p.Pair))
		} else {
			sb.WriteString(fmt.Sprintf("🔒 %s — с %d уровня\n", p.Name, p.MinLevel))
		}
	}
	sb.WriteString("\nЗаброс: !заброс <номер пруда>")
	h.sendMessage(chatID, sb.String())
}

// HandleRods обрабатывает команду !удочки — снаряжение и магазин.
func (h *Handler) HandleRods(ctx context.Context, chatID int64, userID int64) {
	owned, err := h.service.ListOwnedRods(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Ошибка получения снаряжения")
		h.sendMessage(chatID, "❌ Ошибка получения снаряжения")
		return
	}
	ownedIDs := make(map[int64]bool, len(owned))
	for _, or := range owned {
		ownedIDs[or.ID] = true
	}

	rods, err := h.service.ListRods(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка получения каталога удочек")
		h.sendMessage(chatID, "❌ Ошибка получения каталога удочек")
		return
	}

	var sb strings.Builder
	sb.WriteString("🎣 Удочки:\n\n")
	for _, r := range rods {
		mark := ""
		for _, or := range owned {
			if or.ID == r.ID && or.Active {
				mark = " ✅"
			}
		}
		if ownedIDs[r.ID] {
			sb.WriteString(fmt.Sprintf("%s %s — плечо %.1fx%s\n", r.Emoji, r.Name, r.Leverage, mark))
		} else {
			sb.WriteString(fmt.Sprintf("%s %s — плечо %.1fx, цена %s (№%d)\n",
				r.Emoji, r.Name, r.Leverage, common.FormatBait(r.Price), r.ID))
		}
	}
	sb.WriteString("\nПокупка: !купить <номер>")
	h.sendMessage(chatID, sb.String())
}

// HandleBuy обрабатывает команду !купить <номер> — покупка удочки.
func (h *Handler) HandleBuy(ctx context.Context, chatID int64, userID int64, args []string) {
	if len(args) < 1 {
		h.sendMessage(chatID, "❌ Формат: !купить <номер удочки>")
		return
	}

	rodID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || rodID <= 0 {
		h.sendMessage(chatID, "❌ Номер удочки должен быть положительным числом")
		return
	}

	rod, err := h.service.BuyRod(ctx, userID, rodID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRodNotFound):
			h.sendMessage(chatID, "❌ Такой удочки нет в каталоге")
		case errors.Is(err, common.ErrRodAlreadyOwned):
			h.sendMessage(chatID, "❌ Эта удочка уже в твоём снаряжении")
		case errors.Is(err, common.ErrInsufficientBait):
			h.sendMessage(chatID, "❌ Недостаточно наживки для покупки")
		case errors.Is(err, common.ErrAnglerNotFound):
			h.sendMessage(chatID, "❌ Сначала зарегистрируйся командой !рыбак")
		default:
			log.WithError(err).Error("Ошибка покупки удочки")
			h.sendMessage(chatID, "❌ Ошибка покупки")
		}
		return
	}

	text := fmt.Sprintf("✅ Куплена %s %s (плечо %.1fx)\nУдочка выбрана активной",
		rod.Emoji, rod.Name, rod.Leverage)
	h.sendMessage(chatID, text)
}

// sendMessage — вспомогательный метод для отправки текстовых сообщений.
func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
