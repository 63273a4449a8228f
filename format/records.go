package format

import (
	"fmt"
	"strings"

	"github.com/awhatson15/gameboard-bot/models"
	"github.com/awhatson15/gameboard-bot/utils"
)

// Подсказки и сообщения об ошибках ввода
const (
	QuantityInvalidText = "❌ Количество должно быть целым числом от 1 до 100000!"
	OrderIDInvalidText  = "❌ Номер заказа должен быть числом!"

	OrderUsageText = "❌ Укажите номер заказа!\n\n" +
		"✅ Использование: /order [номер]\n" +
		"📝 Пример: /order 1\n\n" +
		"💡 Список заказов: /orders"

	FindOrderUsageText = "🔍 Поиск заказов по клиенту\n\n" +
		"📝 Использование:\n" +
		"/find_order [имя_клиента]\n\n" +
		"💡 Примеры:\n" +
		"/find_order Иван\n" +
		"/find_order Петров\n" +
		"/find_order Мария"

	OrdersEmptyText = "🛒 Заказов пока нет\n\n" +
		"💡 Чтобы добавить заказ, используйте команду:\n" +
		"/add_order [клиент] [товар] [количество]\n\n" +
		"📝 Пример: /add_order Иван Мафия 1"

	RecentEmptyText = "📅 Свежие заказы\n\n" +
		"За последние 7 дней заказов нет.\n\n" +
		"💡 Используйте /add_order чтобы добавить новый заказ!"

	TasksEmptyText = "✅ Активных задач нет\n\n" +
		"💡 Хотите добавить тестовую задачу?\n" +
		"Используйте команду:\n" +
		"/add_test_task"

	HistoryEmptyText = "📝 У вас еще нет истории запросов."
)

// AddOrderUsage подсказка по формату /add_order с прайсом
func AddOrderUsage(prices map[string]int, names []string) string {
	var sb strings.Builder
	sb.WriteString("❌ Неверный формат команды!\n\n")
	sb.WriteString("✅ Правильное использование:\n")
	sb.WriteString("/add_order [имя_клиента] [товар] [количество]\n\n")
	sb.WriteString("📝 Пример:\n")
	sb.WriteString("/add_order Иван Мафия 1\n")
	sb.WriteString("/add_order Иван Петров Мемо 2\n")
	sb.WriteString("/add_order Иван \"Персонализированная Мафия\" 1\n\n")
	sb.WriteString("💡 Название товара из нескольких слов берите в кавычки\n\n")
	sb.WriteString("🎲 Доступные товары:")
	for _, name := range names {
		fmt.Fprintf(&sb, "\n• %s (%d руб.)", name, prices[strings.ToLower(name)])
	}
	return sb.String()
}

// OrderCreated подтверждение нового заказа
func OrderCreated(order *models.Order) string {
	var sb strings.Builder
	sb.WriteString("✅ Заказ успешно добавлен!\n\n")
	fmt.Fprintf(&sb, "📋 ID заказа: #%d\n", order.ID)
	fmt.Fprintf(&sb, "👤 Клиент: %s\n", order.CustomerName)
	fmt.Fprintf(&sb, "🎯 Товар: %s\n", order.ProductName)
	fmt.Fprintf(&sb, "📦 Количество: %d\n", order.Quantity)
	fmt.Fprintf(&sb, "💰 Сумма: %s руб.\n", Money(order.TotalPrice))
	fmt.Fprintf(&sb, "📊 Статус: %s\n\n", order.Status)
	sb.WriteString("💡 Заказ будет обработан в течение 24 часов.")
	return sb.String()
}

// Orders список последних заказов
func Orders(orders []*models.Order) string {
	if len(orders) == 0 {
		return OrdersEmptyText
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🛒 Последние заказы (%d):\n\n", len(orders))
	for _, o := range orders {
		fmt.Fprintf(&sb, "%s Заказ #%d\n", OrderIcon(o.Status), o.ID)
		fmt.Fprintf(&sb, "   👤 %s\n", o.CustomerName)
		fmt.Fprintf(&sb, "   🎯 %s (x%d)\n", o.ProductName, o.Quantity)
		fmt.Fprintf(&sb, "   💰 %s руб.\n", Money(o.TotalPrice))
		fmt.Fprintf(&sb, "   📊 %s\n", o.Status)
		fmt.Fprintf(&sb, "   📅 %s\n\n", utils.FormatTimestamp(o.CreatedAt))
	}
	sb.WriteString("💡 Для подробной информации используйте /order [номер]")
	return sb.String()
}

// Order карточка одного заказа
func Order(o *models.Order) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Заказ #%d\n\n", OrderIcon(o.Status), o.ID)
	fmt.Fprintf(&sb, "👤 Клиент: %s\n", o.CustomerName)
	fmt.Fprintf(&sb, "🎯 Товар: %s\n", o.ProductName)
	fmt.Fprintf(&sb, "📦 Количество: %d\n", o.Quantity)
	fmt.Fprintf(&sb, "💰 Сумма: %s руб.\n", Money(o.TotalPrice))
	fmt.Fprintf(&sb, "📊 Статус: %s\n", o.Status)
	fmt.Fprintf(&sb, "📅 Создан: %s\n", utils.FormatTimestamp(o.CreatedAt))
	fmt.Fprintf(&sb, "📝 Примечания: %s", orDefault(o.Notes, "нет"))
	return sb.String()
}

// OrderNotFound заказа с таким номером нет
func OrderNotFound(id int64) string {
	return fmt.Sprintf("❌ Заказ #%d не найден!", id)
}

// OrderSearch результаты поиска по имени клиента, не больше SearchLimit
func OrderSearch(query string, orders []*models.Order) string {
	if len(orders) == 0 {
		return fmt.Sprintf("🔍 Заказы для клиента '%s' не найдены", query)
	}
	header := fmt.Sprintf("🔍 Найдено заказов для '%s': %d\n\n", query, len(orders))
	return header + compactOrders(orders, SearchLimit)
}

// RecentOrders заказы за последние дни, не больше RecentLimit
func RecentOrders(orders []*models.Order) string {
	if len(orders) == 0 {
		return RecentEmptyText
	}
	header := fmt.Sprintf("📅 Свежие заказы (последние %d дней): %d\n\n", RecentDays, len(orders))
	return header + compactOrders(orders, RecentLimit)
}

func compactOrders(orders []*models.Order, limit int) string {
	var sb strings.Builder
	for i, o := range orders {
		if i == limit {
			break
		}
		fmt.Fprintf(&sb, "%s Заказ #%d\n", SearchIcon(o.Status), o.ID)
		fmt.Fprintf(&sb, "👤 %s\n", o.CustomerName)
		fmt.Fprintf(&sb, "🛍️ %s (x%d)\n", o.ProductName, o.Quantity)
		fmt.Fprintf(&sb, "💰 %s руб.\n", Money(o.TotalPrice))
		fmt.Fprintf(&sb, "📅 %s\n", utils.FormatTimestamp(o.CreatedAt))
		if o.Notes != "" {
			fmt.Fprintf(&sb, "📝 %s\n", o.Notes)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(ShownOf(limit, len(orders), "заказов"))
	return strings.TrimRight(sb.String(), "\n")
}

// Tasks список задач команды
func Tasks(tasks []*models.Task) string {
	if len(tasks) == 0 {
		return TasksEmptyText
	}

	var sb strings.Builder
	sb.WriteString("📋 Задачи команды GameBored:\n\n")
	for _, t := range tasks {
		fmt.Fprintf(&sb, "%s %s\n", PriorityIcon(t.Priority), t.Title)
		fmt.Fprintf(&sb, "   %s Статус: %s\n", TaskStatusIcon(t.Status), t.Status)
		fmt.Fprintf(&sb, "   👤 Ответственный: %s\n", orDefault(t.AssignedTo, notAssigned))
		fmt.Fprintf(&sb, "   🏷 Приоритет: %s\n", t.Priority)
		fmt.Fprintf(&sb, "   📅 Срок: %s\n", orDefault(utils.FormatDisplayDate(t.DueDate), notSpecifiedM))
		fmt.Fprintf(&sb, "   📝 %s\n", orDefault(t.Description, noDescription))
		fmt.Fprintf(&sb, "   🆔 ID: #%d\n\n", t.ID)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// TaskCreated подтверждение добавления тестовой задачи
func TaskCreated(id int64) string {
	return "✅ Тестовая задача добавлена!\n\n" +
		fmt.Sprintf("📋 ID задачи: #%d\n", id) +
		"💡 Теперь используйте команду /tasks чтобы увидеть все задачи."
}

// Stats статистика бота и заказов
func Stats(bot *models.BotStats, orders *models.OrderStats) string {
	lastActivity := unknownValue
	if bot.LastActivity != nil {
		lastActivity = utils.FormatTimestamp(*bot.LastActivity)
	}

	var sb strings.Builder
	sb.WriteString("📊 Статистика GameBored Bot\n\n")
	sb.WriteString("👥 Пользователи бота:\n")
	fmt.Fprintf(&sb, "   • Всего пользователей: %d\n", bot.TotalUsers)
	fmt.Fprintf(&sb, "   • Всего запросов: %d\n", bot.TotalRequests)
	fmt.Fprintf(&sb, "   • Последняя активность: %s\n\n", lastActivity)

	sb.WriteString("🛒 Статистика заказов:\n")
	fmt.Fprintf(&sb, "   • Всего заказов: %d\n", orders.TotalOrders)
	fmt.Fprintf(&sb, "   • Уникальных клиентов: %d\n", orders.UniqueCustomers)
	fmt.Fprintf(&sb, "   • Общая выручка: %.2f руб.\n\n", orders.TotalRevenue)

	if len(orders.ByStatus) == 0 {
		sb.WriteString("📈 Заказов пока нет")
		return sb.String()
	}
	sb.WriteString("📈 Заказы по статусам:")
	for _, sc := range orders.ByStatus {
		fmt.Fprintf(&sb, "\n   • %s: %d", sc.Status, sc.Count)
	}
	return sb.String()
}

// RequestHistory последние запросы пользователя
func RequestHistory(requests []*models.Request) string {
	if len(requests) == 0 {
		return HistoryEmptyText
	}

	var sb strings.Builder
	sb.WriteString("📝 Ваши последние запросы:\n\n")
	for i, r := range requests {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, utils.Truncate(r.RequestText, RequestPreview))
		fmt.Fprintf(&sb, "   Команда: %s\n", orDefault(r.CommandUsed, "текст"))
		fmt.Fprintf(&sb, "   Время: %s\n\n", utils.FormatTimestamp(r.CreatedAt))
	}
	return strings.TrimRight(sb.String(), "\n")
}
