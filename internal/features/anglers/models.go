// Package anglers управляет рыбаками: регистрация, запас наживки,
// уровень и опыт. models.go описывает структуры данных.
package anglers

import "time"

// Angler представляет рыбака. Одна запись на Telegram-пользователя.
type Angler struct {
	TelegramID int64     `db:"telegram_id"` // Telegram user ID (первичный ключ)
	Username   string    `db:"username"`    // @username (может быть пустым)
	FirstName  string    `db:"first_name"`  // Имя из профиля
	BaitTokens int       `db:"bait_tokens"` // Запас наживки (1 заброс = 1 наживка)
	Level      int       `db:"level"`       // Уровень (открывает пруды и рыбу)
	Experience int       `db:"experience"`  // Опыт в рамках текущего уровня
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// XPForNextLevel возвращает, сколько опыта нужно для перехода
// с уровня level на следующий. Линейная шкала: 100, 200, 300...
func XPForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * 100
}

// ApplyExperience прибавляет опыт и проводит повышения уровня.
// Остаток опыта переносится на следующий уровень, повышений может
// быть несколько за один улов. Возвращает число новых уровней.
func (a *Angler) ApplyExperience(xp int) int {
	if xp <= 0 {
		return 0
	}
	a.Experience += xp
	levelsGained := 0
	for a.Experience >= XPForNextLevel(a.Level) {
		a.Experience -= XPForNextLevel(a.Level)
		a.Level++
		levelsGained++
	}
	return levelsGained
}
