// Package admin реализует админ-панель с парольной аутентификацией.
// models.go описывает структуры сессий и попыток входа.
package admin

import "time"

// Session — активная сессия администратора.
type Session struct {
	ID              int64
	UserID          int64
	SessionToken    string
	AuthenticatedAt time.Time
	ExpiresAt       time.Time
	LastActivity    time.Time
	IsActive        bool
}

// LoginAttempt — попытка входа (для защиты от brute-force).
type LoginAttempt struct {
	ID          int64
	UserID      int64
	AttemptTime time.Time
	Success     bool
}

// DialogState — состояние диалога с админом.
// Вход идёт в два шага: команда login → ввод пароля в личке.
type DialogState struct {
	State     string
	ExpiresAt time.Time
}

// Возможные состояния админ-диалога.
const (
	StateNone             = ""
	StateAwaitingPassword = "awaiting_password"
)
