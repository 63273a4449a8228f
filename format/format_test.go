package format

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awhatson15/gameboard-bot/documents"
	"github.com/awhatson15/gameboard-bot/models"
)

var today = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func TestRelativeDays_Boundaries(t *testing.T) {
	tests := []struct {
		days      int
		wantLabel string
		wantIcon  string
	}{
		{-1, "прошло 1 дн. назад", "🔴"},
		{0, "сегодня", "🟢"},
		{1, "через 1 дн.", "🟢"},
		{-12, "прошло 12 дн. назад", "🔴"},
		{30, "через 30 дн.", "🟢"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.days), func(t *testing.T) {
			assert.Equal(t, tt.wantLabel, RelativeDays(tt.days))
			assert.Equal(t, tt.wantIcon, EventIcon(tt.days))
		})
	}
}

func TestInDigestWindow(t *testing.T) {
	assert.False(t, InDigestWindow(-1))
	assert.True(t, InDigestWindow(0))
	assert.True(t, InDigestWindow(7))
	assert.False(t, InDigestWindow(8))
}

func TestIcons_FallBackToNeutral(t *testing.T) {
	assert.Equal(t, "🆕", OrderIcon(models.OrderStatusNew))
	assert.Equal(t, "📦", OrderIcon("потерян"))
	assert.Equal(t, "🟠", SearchIcon(models.OrderStatusInProgress))
	assert.Equal(t, "⚪", SearchIcon(""))
	assert.Equal(t, "🔴", PriorityIcon(models.PriorityHigh))
	assert.Equal(t, "⚪", PriorityIcon("срочно"))
	assert.Equal(t, "⏳", TaskStatusIcon(models.TaskStatusTodo))
	assert.Equal(t, "📝", TaskStatusIcon("на паузе"))
}

func TestEvents_SkipsMalformedDates(t *testing.T) {
	events := documents.Entries[documents.Event]{
		{Key: "Вчера", Value: documents.Event{Date: "2026-03-09", Type: "акция", Description: "Прошла"}},
		{Key: "Кривая", Value: documents.Event{Date: "10.03.2026"}},
		{Key: "Сегодня", Value: documents.Event{Date: "2026-03-10"}},
		{Key: "Завтра", Value: documents.Event{Date: "2026-03-11", Status: "планируется"}},
	}

	text, skipped := Events(events, today)

	require.Len(t, skipped, 1)
	assert.Equal(t, "Кривая", skipped[0].Name)
	assert.Error(t, skipped[0].Err)

	assert.NotContains(t, text, "Кривая")
	assert.Contains(t, text, "🔴 Вчера\n   📅 2026-03-09 (прошло 1 дн. назад)")
	assert.Contains(t, text, "🟢 Сегодня\n   📅 2026-03-10 (сегодня)")
	assert.Contains(t, text, "🟢 Завтра\n   📅 2026-03-11 (через 1 дн.)")
	assert.Contains(t, text, "📊 активно")
	assert.Contains(t, text, "📊 планируется")
	assert.Contains(t, text, "🏷 Не указан")
	assert.Less(t, strings.Index(text, "Вчера"), strings.Index(text, "Завтра"))
}

func TestEvents_Empty(t *testing.T) {
	text, skipped := Events(nil, today)
	assert.Equal(t, EventsEmptyText, text)
	assert.Empty(t, skipped)

	text, skipped = Events(documents.Entries[documents.Event]{{Key: "x", Value: documents.Event{Date: "нет"}}}, today)
	assert.Equal(t, EventsEmptyText, text)
	assert.Len(t, skipped, 1)
}

func TestContacts_Placeholders(t *testing.T) {
	text := Contacts(documents.Entries[documents.Contact]{
		{Key: "Борис", Value: documents.Contact{Phone: "123"}},
	})

	assert.Contains(t, text, "👤 Борис")
	assert.Contains(t, text, "💼 Должность: Не указана")
	assert.Contains(t, text, "📞 Телефон: 123")
	assert.Contains(t, text, "📧 Email: Не указан")
	assert.Contains(t, text, "💬 Нет комментария")
	assert.NotContains(t, text, "**")

	assert.Equal(t, ContactsEmptyText, Contacts(nil))
}

func TestCompany_Fallback(t *testing.T) {
	assert.Equal(t, CompanyFallbackText, Company(nil))
	assert.Equal(t, CompanyFallbackText, Company(&documents.CompanyInfo{}))

	text := Company(&documents.CompanyInfo{Name: "Мастерская"})
	assert.True(t, strings.HasPrefix(text, "🏢 Мастерская"))
	assert.Contains(t, text, "Телефон: Не указан")
	assert.Contains(t, text, "🎯 Миссия: Не указана")
}

func TestProducts(t *testing.T) {
	text := Products(documents.SampleCatalog())

	assert.Contains(t, text, "🎯 Персонализированная Мафия\n   💰 Цена: 1790 руб.\n   🔥 Было: 2190 руб. (скидка 18%)")
	assert.Contains(t, text, "🎯 Мемо\n   💰 Цена: 1990 руб.\n   📝")
	assert.Contains(t, text, "🎁 Акции:\n   • Вторая игра со скидкой 15%")

	assert.Equal(t, ProductsEmptyText, Products(nil))
	assert.Equal(t, ProductsEmptyText, Products(&documents.Catalog{}))
}

func newOrders(n int) []*models.Order {
	orders := make([]*models.Order, 0, n)
	for i := n; i >= 1; i-- {
		orders = append(orders, &models.Order{
			ID:           int64(i),
			CustomerName: "Иван",
			ProductName:  "Мафия",
			Quantity:     2,
			TotalPrice:   3580,
			Status:       models.OrderStatusNew,
			CreatedAt:    today,
		})
	}
	return orders
}

func TestOrderSearch_TruncationMarker(t *testing.T) {
	text := OrderSearch("Иван", newOrders(12))
	assert.Contains(t, text, "Найдено заказов для 'Иван': 12")
	assert.Contains(t, text, "💡 Показано 10 из 12 заказов")
	assert.Equal(t, 10, strings.Count(text, "Заказ #"))
	assert.Contains(t, text, "🟡 Заказ #12")
	assert.Contains(t, text, "💰 3580 руб.")

	text = OrderSearch("Иван", newOrders(10))
	assert.NotContains(t, text, "Показано")

	assert.Equal(t, "🔍 Заказы для клиента 'Пётр' не найдены", OrderSearch("Пётр", nil))
}

func TestRecentOrders_TruncationMarker(t *testing.T) {
	text := RecentOrders(newOrders(20))
	assert.Contains(t, text, "💡 Показано 15 из 20 заказов")
	assert.Equal(t, 15, strings.Count(text, "Заказ #"))

	assert.Equal(t, RecentEmptyText, RecentOrders(nil))
}

func TestOrders_ListAndDetail(t *testing.T) {
	orders := newOrders(2)
	orders[0].Status = "странный"

	text := Orders(orders)
	assert.Contains(t, text, "🛒 Последние заказы (2):")
	assert.Contains(t, text, "📦 Заказ #2")
	assert.Contains(t, text, "🆕 Заказ #1")
	assert.Contains(t, text, "📅 2026-03-10 15:30")
	assert.Equal(t, OrdersEmptyText, Orders(nil))

	detail := Order(orders[1])
	assert.Contains(t, detail, "🆕 Заказ #1")
	assert.Contains(t, detail, "📦 Количество: 2")
	assert.Contains(t, detail, "📝 Примечания: нет")
}

func TestTasks(t *testing.T) {
	text := Tasks([]*models.Task{
		{ID: 3, Title: "Обновить ассортимент", Priority: models.PriorityMedium, Status: models.TaskStatusTodo, DueDate: "2026-03-17"},
		{ID: 4, Title: "Без срока", Priority: "срочно", Status: "на паузе"},
	})

	assert.Contains(t, text, "🟡 Обновить ассортимент\n   ⏳ Статус: к выполнению")
	assert.Contains(t, text, "👤 Ответственный: не назначен")
	assert.Contains(t, text, "📅 Срок: 17.03.2026")
	assert.Contains(t, text, "⚪ Без срока\n   📝 Статус: на паузе")
	assert.Contains(t, text, "📅 Срок: Не указан")
	assert.Contains(t, text, "🆔 ID: #4")
	assert.Equal(t, TasksEmptyText, Tasks(nil))
}

func TestStats(t *testing.T) {
	text := Stats(&models.BotStats{}, &models.OrderStats{})
	assert.Contains(t, text, "Последняя активность: неизвестно")
	assert.Contains(t, text, "Общая выручка: 0.00 руб.")
	assert.Contains(t, text, "📈 Заказов пока нет")

	last := time.Date(2026, 3, 9, 8, 5, 0, 0, time.UTC)
	text = Stats(
		&models.BotStats{TotalUsers: 2, TotalRequests: 9, LastActivity: &last},
		&models.OrderStats{TotalOrders: 3, UniqueCustomers: 2, TotalRevenue: 5370, ByStatus: []models.StatusCount{{Status: "новый", Count: 3}}},
	)
	assert.Contains(t, text, "Всего пользователей: 2")
	assert.Contains(t, text, "Последняя активность: 2026-03-09 08:05")
	assert.Contains(t, text, "Общая выручка: 5370.00 руб.")
	assert.Contains(t, text, "• новый: 3")
}

func TestRequestHistory(t *testing.T) {
	long := strings.Repeat("я", 60)
	text := RequestHistory([]*models.Request{
		{RequestText: long, CommandUsed: "", CreatedAt: today},
		{RequestText: "/stats", CommandUsed: "stats", CreatedAt: today},
	})

	assert.Contains(t, text, "1. "+strings.Repeat("я", 50)+"...")
	assert.Contains(t, text, "Команда: текст")
	assert.Contains(t, text, "2. /stats\n   Команда: stats")
	assert.Equal(t, HistoryEmptyText, RequestHistory(nil))
}

func TestAddOrderUsage_ListsPrices(t *testing.T) {
	text := AddOrderUsage(models.UnitPrices, models.PriceNames)
	assert.Contains(t, text, "• Мафия (1790 руб.)")
	assert.Contains(t, text, "• Мемо (1990 руб.)")
	assert.Contains(t, text, "• Элиас (2500 руб.)")
}

func TestDigest(t *testing.T) {
	upcoming := []UpcomingEvent{
		{Name: "Первое", Days: 0, Event: documents.Event{Description: "Сегодня"}},
		{Name: "Второе", Days: 2},
		{Name: "Третье", Days: 5},
		{Name: "Четвертое", Days: 7},
	}

	text := Digest(DigestData{
		Company:  documents.SampleCompany(),
		Upcoming: upcoming,
		Contacts: 3,
		Products: 4,
	})

	assert.Contains(t, text, "🏢 GameBored")
	assert.Contains(t, text, "• Первое (сегодня) - Сегодня")
	assert.Contains(t, text, "• Третье (через 5 дн.)")
	assert.NotContains(t, text, "Четвертое")
	assert.Contains(t, text, "💡 Показано 3 из 4 событий")
	assert.Contains(t, text, "Контактов в команде: 3")
	assert.Contains(t, text, "Товаров в ассортименте: 4")

	text = Digest(DigestData{})
	assert.NotContains(t, text, "🏢")
	assert.Contains(t, text, "Ближайших акций нет")
}

func TestDebug(t *testing.T) {
	text := Debug(DebugInfo{
		Files: []FileStatus{
			{Name: "events.json", Exists: true, Count: 3, Noun: "событий"},
			{Name: "company_info.json", Exists: false, Count: -1},
		},
	})

	assert.Contains(t, text, "• events.json: ✅ (3 событий)")
	assert.Contains(t, text, "• company_info.json: ❌\n")
	assert.Contains(t, text, "База данных: ❌ Недоступна")
}

func TestWelcome(t *testing.T) {
	assert.True(t, strings.HasPrefix(Welcome("Иван"), "Привет, Иван! 👋"))
	assert.True(t, strings.HasPrefix(Welcome(""), "Привет, друг! 👋"))
	assert.Contains(t, HelpText, "/find_order")
}
