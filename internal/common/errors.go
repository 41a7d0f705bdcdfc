// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки каталога рыбы (ошибки конфигурации и предусловий — это баги,
// их надо поднимать громко, а не прятать)
var (
	// ErrEmptyCatalog — каталог рыбы пуст или не прошёл валидацию.
	// Возникает при загрузке каталога, а не при каждом улове.
	ErrEmptyCatalog = errors.New("каталог рыбы пуст")
	// ErrEmptyEligibleSet — взвешенный выбор вызван с пустым списком.
	// Это баг вызывающего кода: он обязан проверить список или применить fallback.
	ErrEmptyEligibleSet = errors.New("список подходящей рыбы пуст")
	// ErrInvalidPnLRange — у рыбы нижняя граница P&L больше верхней
	ErrInvalidPnLRange = errors.New("некорректный диапазон P&L у рыбы")
)

// Ошибки рыбалки
var (
	// ErrNoBait — у рыбака закончилась наживка
	ErrNoBait = errors.New("наживка закончилась")
	// ErrAlreadyFishing — удочка уже заброшена
	ErrAlreadyFishing = errors.New("удочка уже в воде")
	// ErrNotFishing — рыбак не рыбачит, подсекать нечего
	ErrNotFishing = errors.New("удочка не заброшена")
	// ErrTooEarlyToHook — подсечка слишком рано, рынок не успел сдвинуться
	ErrTooEarlyToHook = errors.New("слишком рано подсекать")
	// ErrAnglerNotFound — рыбак не найден в базе
	ErrAnglerNotFound = errors.New("рыбак не найден")
)

// Ошибки снаряжения
var (
	// ErrPondNotFound — пруд не найден
	ErrPondNotFound = errors.New("пруд не найден")
	// ErrPondLocked — уровень рыбака слишком низкий для этого пруда
	ErrPondLocked = errors.New("пруд недоступен на вашем уровне")
	// ErrRodNotFound — удочка не найдена
	ErrRodNotFound = errors.New("удочка не найдена")
	// ErrRodNotOwned — удочка не куплена
	ErrRodNotOwned = errors.New("у вас нет этой удочки")
	// ErrRodAlreadyOwned — удочка уже куплена
	ErrRodAlreadyOwned = errors.New("эта удочка уже у вас")
	// ErrInsufficientBait — не хватает наживки на покупку
	ErrInsufficientBait = errors.New("недостаточно наживки")
)

// Ошибки админки
var (
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
)
