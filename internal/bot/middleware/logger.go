// Package middleware содержит промежуточные обработчики для логирования,
// восстановления после паники и rate-limiting.
package middleware

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// previewLimit — сколько символов текста сообщения попадает в лог.
const previewLimit = 50

// LogMessage логирует входящее сообщение.
// Записывает: user_id, chat_id, username, начало текста.
func LogMessage(message *tgbotapi.Message) {
	if message == nil || message.From == nil {
		return
	}

	log.WithFields(log.Fields{
		"user_id":  message.From.ID,
		"chat_id":  message.Chat.ID,
		"username": message.From.UserName,
		"text":     TruncateText(message.Text, previewLimit),
		"time":     time.Now().Format("15:04:05"),
	}).Debug("Входящее сообщение")
}

// TruncateText обрезает текст до limit символов (рун, не байт),
// чтобы кириллица не резалась посреди символа.
func TruncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
