// Package leaderboard — рейтинг рыбаков по числу уловов.
package leaderboard

// Entry — строка рейтинга.
type Entry struct {
	TelegramID int64
	Username   string
	FirstName  string
	Level      int
	Catches    int
	BestPnL    *float64
}

// DisplayName возвращает имя для вывода в рейтинге.
func (e *Entry) DisplayName() string {
	if e.Username != "" {
		return "@" + e.Username
	}
	if e.FirstName != "" {
		return e.FirstName
	}
	return "Аноним"
}
