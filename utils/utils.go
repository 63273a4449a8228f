package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout формат дат в документах и в БД
const DateLayout = "2006-01-02"

// TimestampLayout формат отметок времени в БД
const TimestampLayout = "2006-01-02 15:04:05"

// ParseDate разбирает дату в формате ГГГГ-ММ-ДД
func ParseDate(dateStr string) (time.Time, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("неверный формат даты %q, используйте ГГГГ-ММ-ДД", dateStr)
	}
	return date, nil
}

// DaysBetween возвращает количество календарных дней от today до date.
// Время суток не учитывается, отрицательное значение означает прошедшую дату.
func DaysBetween(today, date time.Time) int {
	from := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// FormatDisplayDate форматирует дату для отображения пользователю
func FormatDisplayDate(dbDate string) string {
	if dbDate == "" {
		return ""
	}

	// Преобразуем из YYYY-MM-DD в ДД.ММ.YYYY
	date, err := time.Parse(DateLayout, dbDate)
	if err != nil {
		return dbDate // Возвращаем как есть, если не смогли распарсить
	}

	return date.Format("02.01.2006")
}

// FormatTimestamp форматирует время создания записи до минут
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "неизвестно"
	}
	return t.Format("2006-01-02 15:04")
}

// Truncate обрезает строку до limit символов и добавляет многоточие
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

// SplitArgs делит текст команды на аргументы по пробелам.
// Первое слово (сама команда) отбрасывается, кавычки удаляются без разбора вложенности.
func SplitArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}

	args := make([]string, 0, len(fields)-1)
	for _, f := range fields[1:] {
		f = strings.ReplaceAll(f, `"`, "")
		if f == "" {
			continue
		}
		args = append(args, f)
	}
	return args
}
