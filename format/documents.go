package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/awhatson15/gameboard-bot/documents"
	"github.com/awhatson15/gameboard-bot/utils"
)

// Пустые наборы данных
const (
	ContactsEmptyText = "📞 Контакты пока не добавлены."
	EventsEmptyText   = "📅 Акций и событий на ближайшее время нет."
	ProductsEmptyText = "🎲 Информация о товарах временно недоступна."
)

// CompanyFallbackText показывается, когда файл с информацией о компании отсутствует
const CompanyFallbackText = `🏢 GameBored

Творческая мастерская по кастомизации настольных игр.

🎯 Что мы делаем:
• Персонализированные версии популярных игр
• Игры с вашими фотографиями
• Уникальные подарки и развлечения

💼 Наши ценности:
- Качество
- Креативность
- Индивидуальный подход

📞 Контакты: gamebored@yandex.ru`

// SkippedEvent событие, которое не удалось показать
type SkippedEvent struct {
	Name string
	Err  error
}

// Contacts список контактов команды в порядке файла
func Contacts(contacts documents.Entries[documents.Contact]) string {
	if len(contacts) == 0 {
		return ContactsEmptyText
	}

	var sb strings.Builder
	sb.WriteString("📞 Контакты команды GameBored:\n\n")
	for _, c := range contacts {
		fmt.Fprintf(&sb, "👤 %s\n", c.Key)
		fmt.Fprintf(&sb, "   💼 Должность: %s\n", orDefault(c.Value.Position, notSpecifiedF))
		fmt.Fprintf(&sb, "   📞 Телефон: %s\n", orDefault(c.Value.Phone, notSpecifiedM))
		fmt.Fprintf(&sb, "   📧 Email: %s\n", orDefault(c.Value.Email, notSpecifiedM))
		fmt.Fprintf(&sb, "   💬 %s\n\n", orDefault(c.Value.Comment, noComment))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Events список акций и событий относительно today.
// События с неверной датой пропускаются и возвращаются вторым значением.
func Events(events documents.Entries[documents.Event], today time.Time) (string, []SkippedEvent) {
	var skipped []SkippedEvent
	var sb strings.Builder

	for _, e := range events {
		date, err := utils.ParseDate(string(e.Value.Date))
		if err != nil {
			skipped = append(skipped, SkippedEvent{Name: e.Key, Err: err})
			continue
		}
		days := utils.DaysBetween(today, date)

		fmt.Fprintf(&sb, "%s %s\n", EventIcon(days), e.Key)
		fmt.Fprintf(&sb, "   📅 %s (%s)\n", date.Format(utils.DateLayout), RelativeDays(days))
		fmt.Fprintf(&sb, "   🏷 %s\n", orDefault(e.Value.Type, notSpecifiedM))
		fmt.Fprintf(&sb, "   📝 %s\n", orDefault(e.Value.Description, noDescription))
		fmt.Fprintf(&sb, "   📊 %s\n\n", orDefault(e.Value.Status, "активно"))
	}

	if sb.Len() == 0 {
		return EventsEmptyText, skipped
	}
	return "📅 Текущие акции и события:\n\n" + strings.TrimRight(sb.String(), "\n"), skipped
}

// Products каталог товаров и текущие акции
func Products(catalog *documents.Catalog) string {
	if catalog == nil || len(catalog.Products) == 0 {
		return ProductsEmptyText
	}

	var sb strings.Builder
	sb.WriteString("🎲 Наши товары и цены:\n\n")
	for _, p := range catalog.Products {
		fmt.Fprintf(&sb, "🎯 %s\n", orDefault(p.Value.Name, p.Key))
		if p.Value.Price == "" {
			fmt.Fprintf(&sb, "   💰 Цена: %s\n", notSpecifiedF)
		} else {
			fmt.Fprintf(&sb, "   💰 Цена: %s руб.\n", p.Value.Price)
		}
		if p.Value.OriginalPrice != "" {
			fmt.Fprintf(&sb, "   🔥 Было: %s руб. (скидка %s)\n", p.Value.OriginalPrice, orDefault(p.Value.Discount.String(), notSpecifiedF))
		}
		fmt.Fprintf(&sb, "   📝 %s\n", orDefault(p.Value.Description, noDescription))
		fmt.Fprintf(&sb, "   ⏱ Срок: %s\n\n", orDefault(p.Value.DeliveryTime, notSpecifiedM))
	}

	if len(catalog.CurrentPromotions) > 0 {
		sb.WriteString("🎁 Акции:\n")
		for _, promo := range catalog.CurrentPromotions {
			fmt.Fprintf(&sb, "   • %s\n", promo)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Company информация о компании. Без данных показывается встроенный текст.
func Company(info *documents.CompanyInfo) string {
	if info.IsZero() {
		return CompanyFallbackText
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏢 %s\n\n", orDefault(info.Name, "GameBored"))
	fmt.Fprintf(&sb, "%s\n\n", orDefault(info.Description, noDescription))
	sb.WriteString("📞 Контакты:\n")
	fmt.Fprintf(&sb, "Телефон: %s\n", orDefault(info.Phone, notSpecifiedM))
	fmt.Fprintf(&sb, "Email: %s\n", orDefault(info.Email, "gamebored@yandex.ru"))
	fmt.Fprintf(&sb, "Адрес: %s\n\n", orDefault(info.Address, "СПб и по России"))
	fmt.Fprintf(&sb, "💼 Сфера: %s\n\n", orDefault(info.Industry, "Кастомизация настольных игр"))
	fmt.Fprintf(&sb, "🎯 Миссия: %s", orDefault(info.Mission, notSpecifiedF))
	return sb.String()
}

// UpcomingEvent событие из окна дайджеста
type UpcomingEvent struct {
	Name  string
	Event documents.Event
	Days  int
}

// DigestData данные для ежедневного дайджеста
type DigestData struct {
	Company  *documents.CompanyInfo
	Upcoming []UpcomingEvent
	Contacts int
	Products int
}

// Digest ежедневная сводка: компания, ближайшие события, количество контактов и товаров
func Digest(d DigestData) string {
	var sb strings.Builder
	sb.WriteString("📊 Ежедневный дайджест GameBored\n\n")

	if !d.Company.IsZero() {
		fmt.Fprintf(&sb, "🏢 %s\n", orDefault(d.Company.Name, "GameBored"))
		fmt.Fprintf(&sb, "   %s\n\n", orDefault(d.Company.Description, noDescription))
	}

	if len(d.Upcoming) == 0 {
		sb.WriteString("📅 Ближайших акций нет\n\n")
	} else {
		sb.WriteString("📅 Ближайшие акции:\n")
		for i, u := range d.Upcoming {
			if i == DigestHighlights {
				break
			}
			fmt.Fprintf(&sb, "   • %s (%s) - %s\n", u.Name, RelativeDays(u.Days), orDefault(u.Event.Description, noDescription))
		}
		sb.WriteString(ShownOf(DigestHighlights, len(d.Upcoming), "событий"))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "👥 Контактов в команде: %d\n", d.Contacts)
	fmt.Fprintf(&sb, "🎲 Товаров в ассортименте: %d\n", d.Products)
	sb.WriteString("\nХорошего дня! 🚀")
	return sb.String()
}
