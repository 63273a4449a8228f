// Package format превращает данные бота в текст ответов.
// Все функции чистые: только входные данные, никакого ввода-вывода.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Фиксированные ответы
const (
	UnavailableText = "❌ База данных временно недоступна"
	GreetingText    = "Привет! Чем могу помочь? 😊"
	UnknownText     = "Я пока не знаю ответ на этот вопрос. Попробуйте использовать команды из /help"
	ErrorText       = "❌ Произошла ошибка при обработке запроса"
)

// Ограничения длины списков
const (
	SearchLimit      = 10
	RecentLimit      = 15
	DigestHighlights = 3
	HistoryLimit     = 5
	RequestPreview   = 50

	// DigestWindowDays событие попадает в дайджест, если до него от 0 до 7 дней
	DigestWindowDays = 7
	// RecentDays период для /recent_orders
	RecentDays = 7
)

// Заглушки для незаполненных полей
const (
	notSpecifiedF = "Не указана"
	notSpecifiedM = "Не указан"
	notSpecifiedN = "Не указано"
	noComment     = "Нет комментария"
	noDescription = "Нет описания"
	notAssigned   = "не назначен"
	unknownValue  = "неизвестно"
)

var orderIcons = map[string]string{
	"новый":    "🆕",
	"в работе": "🔄",
	"выполнен": "✅",
	"отменен":  "❌",
}

var searchIcons = map[string]string{
	"новый":    "🟡",
	"в работе": "🟠",
	"выполнен": "🟢",
	"отменен":  "🔴",
}

var priorityIcons = map[string]string{
	"высокий": "🔴",
	"средний": "🟡",
	"низкий":  "🟢",
}

var taskStatusIcons = map[string]string{
	"к выполнению": "⏳",
	"в работе":     "🔄",
	"выполнено":    "✅",
}

func iconOr(icons map[string]string, key, fallback string) string {
	if icon, ok := icons[key]; ok {
		return icon
	}
	return fallback
}

// OrderIcon значок статуса заказа в списке и карточке
func OrderIcon(status string) string { return iconOr(orderIcons, status, "📦") }

// SearchIcon значок статуса заказа в результатах поиска
func SearchIcon(status string) string { return iconOr(searchIcons, status, "⚪") }

// PriorityIcon значок приоритета задачи
func PriorityIcon(priority string) string { return iconOr(priorityIcons, priority, "⚪") }

// TaskStatusIcon значок статуса задачи
func TaskStatusIcon(status string) string { return iconOr(taskStatusIcons, status, "📝") }

// RelativeDays подпись для количества дней до даты
func RelativeDays(days int) string {
	switch {
	case days > 0:
		return fmt.Sprintf("через %d дн.", days)
	case days == 0:
		return "сегодня"
	default:
		return fmt.Sprintf("прошло %d дн. назад", -days)
	}
}

// EventIcon зеленый для предстоящих и сегодняшних событий, красный для прошедших
func EventIcon(days int) string {
	if days >= 0 {
		return "🟢"
	}
	return "🔴"
}

// InDigestWindow сообщает, попадает ли событие в дайджест
func InDigestWindow(days int) bool {
	return days >= 0 && days <= DigestWindowDays
}

// ShownOf строка-маркер обрезанного списка. Пустая, если список показан целиком.
func ShownOf(limit, total int, noun string) string {
	if total <= limit {
		return ""
	}
	return fmt.Sprintf("💡 Показано %d из %d %s\n", limit, total, noun)
}

func orDefault[S ~string](value S, fallback string) string {
	if strings.TrimSpace(string(value)) == "" {
		return fallback
	}
	return string(value)
}

// Money форматирует сумму без лишних нулей: 3580, 1999.5
func Money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
