// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: русская плюрализация, форматирование чисел и P&L, работа с временем.
package common

import (
	"fmt"
	"math"
	"time"
)

// PluralizeBait возвращает правильную форму слова «наживка» для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → "наживка" (1, 21, 31, 101, ...)
//   - n%10 в [2,3,4] И n%100 НЕ в [12,13,14] → "наживки" (2, 3, 4, 22, 23, ...)
//   - Остальные случаи → "наживок" (0, 5-20, 25-30, 100, ...)
func PluralizeBait(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "наживка"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "наживки"
	}
	return "наживок"
}

// FormatBait форматирует запас наживки в читабельную строку.
// Пример: FormatBait(3) → "3 наживки"
func FormatBait(n int) string {
	return fmt.Sprintf("%d %s", n, PluralizeBait(n))
}

// PluralizeFish возвращает правильную форму слова «рыба».
func PluralizeFish(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "рыба"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "рыбы"
	}
	return "рыб"
}

// PluralizeCatches возвращает правильную форму слова «улов».
func PluralizeCatches(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "улов"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "улова"
	}
	return "уловов"
}

// FormatPnL форматирует P&L с явным знаком и цветовым индикатором.
//
// Примеры:
//
//	FormatPnL(5.2)  → "🟢 +5.20%"
//	FormatPnL(-3.1) → "🔴 -3.10%"
//	FormatPnL(0)    → "⚪ +0.00%"
func FormatPnL(pnl float64) string {
	return fmt.Sprintf("%s %+.2f%%", PnLColor(pnl), pnl)
}

// PnLColor возвращает цветовой индикатор для P&L.
func PnLColor(pnl float64) string {
	switch {
	case pnl > 0:
		return "🟢"
	case pnl < 0:
		return "🔴"
	default:
		return "⚪"
	}
}

// FormatDuration форматирует длительность рыбалки в читабельную строку.
//
// Примеры:
//
//	FormatDuration(45 * time.Second)   → "45с"
//	FormatDuration(5*time.Minute + 30*time.Second) → "5мин 30с"
//	FormatDuration(2*time.Hour + 15*time.Minute)   → "2ч 15мин"
func FormatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	switch {
	case totalSeconds < 60:
		return fmt.Sprintf("%dс", totalSeconds)
	case totalSeconds < 3600:
		return fmt.Sprintf("%dмин %dс", totalSeconds/60, totalSeconds%60)
	default:
		return fmt.Sprintf("%dч %dмин", totalSeconds/3600, (totalSeconds%3600)/60)
	}
}

// FormatNumber форматирует число с разделителями тысяч (пробелами).
// Пример: FormatNumber(2350) → "2 350"
func FormatNumber(n int64) string {
	// Простая реализация для чисел до миллиарда
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	// Рекурсивно добавляем разделители
	rest := n / 1000
	last := n % 1000

	if rest > 0 {
		return fmt.Sprintf("%s %03d", FormatNumber(rest), last)
	}
	return fmt.Sprintf("%d", last)
}

// FormatPrice форматирует цену актива в доллары.
// Для дешёвых монет (ADA и т.п.) оставляем 4 знака, для дорогих — 2.
func FormatPrice(price float64) string {
	if price < 10 {
		return fmt.Sprintf("$%.4f", price)
	}
	return fmt.Sprintf("$%.2f", price)
}

// GetMoscowTime возвращает текущее время в часовом поясе Москвы (Europe/Moscow).
// Используется в отчётах админки.
func GetMoscowTime() time.Time {
	return time.Now().In(moscowLocation())
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04" (день.месяц.год часы:минуты)
// по московскому времени.
func FormatDateTime(t time.Time) string {
	return t.In(moscowLocation()).Format("02.01.2006 15:04")
}

func moscowLocation() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		// Если не удалось загрузить — используем UTC+3 вручную
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}
