// Package filters решает, какие сообщения бот вообще обрабатывает.
package filters

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// ChatFilter пропускает личные сообщения и групповые чаты.
// Каналы и сервисные сообщения без отправителя отбрасываются.
type ChatFilter struct{}

func NewChatFilter() *ChatFilter {
	return &ChatFilter{}
}

func (f *ChatFilter) CheckAccess(message *tgbotapi.Message) bool {
	if message == nil || message.Chat == nil {
		log.WithField("component", "ChatFilter").Warn("nil message/chat")
		return false
	}
	if message.From == nil {
		log.WithFields(log.Fields{
			"component": "ChatFilter",
			"chat_id":   message.Chat.ID,
			"chat_type": message.Chat.Type,
		}).Warn("nil message.From (service/channel message?)")
		return false
	}
	if message.From.IsBot {
		return false
	}

	switch {
	case message.Chat.IsPrivate(), message.Chat.IsGroup(), message.Chat.IsSuperGroup():
		return true
	default:
		log.WithFields(log.Fields{
			"component": "ChatFilter",
			"chat_id":   message.Chat.ID,
			"chat_type": message.Chat.Type,
		}).Debug("deny: неподдерживаемый тип чата")
		return false
	}
}
