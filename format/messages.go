package format

import (
	"fmt"
	"strings"
)

const commandList = `📋 Основные команды:
/start - Начало работы
/help - Помощь и список команд
/contacts - Контакты коллег
/events - Акции и события
/products - Наши товары
/digest - Ежедневный дайджест
/about - О компании

🗃️ Команды базы данных:
/stats - Статистика бота
/my_requests - История ваших запросов
/add_order - Добавить заказ
/orders - Просмотреть заказы
/tasks - Задачи команды
/debug - Отладочная информация`

// HelpText справка по всем командам
const HelpText = `📋 Доступные команды:

🏢 Основные команды:
/start - Начало работы
/help - Эта справка
/contacts - Контакты команды
/events - Акции и мероприятия
/products - Товары и цены
/digest - Ежедневный дайджест
/about - О компании

🗃️ Команды базы данных:
/stats - Статистика бота и заказов
/my_requests - История ваших запросов
/add_order - Добавить новый заказ
/orders - Список всех заказов
/order - Детали заказа (например: /order 1)
/find_order - Поиск заказов по клиенту
/recent_orders - Свежие заказы (7 дней)
/tasks - Задачи команды
/add_test_task - Добавить тестовую задачу

🔧 Технические команды:
/debug - Отладочная информация`

// Welcome приветствие для /start
func Welcome(firstName string) string {
	return fmt.Sprintf("Привет, %s! 👋\n\n", orDefault(firstName, "друг")) +
		"Я бот-помощник для команды GameBored.\n\n" +
		commandList +
		"\n\nПросто напишите вопрос, и я постараюсь помочь!"
}

// FileStatus состояние одного файла данных
type FileStatus struct {
	Name   string
	Exists bool
	// Count количество записей, отрицательное значение не выводится
	Count int
	Noun  string
}

// DebugInfo отладочные сведения о данных бота
type DebugInfo struct {
	Files             []FileStatus
	DatabaseAvailable bool
}

// Debug отладочная информация о файлах и базе данных
func Debug(info DebugInfo) string {
	var sb strings.Builder
	sb.WriteString("🔧 Отладочная информация:\n\n")
	sb.WriteString("📁 Файлы данных:\n")
	for _, f := range info.Files {
		fmt.Fprintf(&sb, "• %s: %s", f.Name, check(f.Exists))
		if f.Count >= 0 {
			fmt.Fprintf(&sb, " (%d %s)", f.Count, f.Noun)
		}
		sb.WriteString("\n")
	}

	if info.DatabaseAvailable {
		sb.WriteString("\n🤖 База данных: ✅ Доступна\n\n")
	} else {
		sb.WriteString("\n🤖 База данных: ❌ Недоступна\n\n")
	}
	sb.WriteString("🤖 Бот активен! 🚀")
	return sb.String()
}

func check(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
