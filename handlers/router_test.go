package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awhatson15/gameboard-bot/db"
	"github.com/awhatson15/gameboard-bot/documents"
	"github.com/awhatson15/gameboard-bot/format"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newDocs(t *testing.T, seed bool) *documents.Store {
	t.Helper()
	docs, err := documents.New(filepath.Join(t.TempDir(), "data"), nil)
	require.NoError(t, err)
	if seed {
		_, err := documents.Seed(docs, now, true)
		require.NoError(t, err)
	}
	return docs
}

func newRouter(t *testing.T, store RecordStore, docs *documents.Store) *Router {
	t.Helper()
	r := NewRouter(store, docs, nil, nil)
	r.Now = func() time.Time { return now }
	r.digest.Now = r.Now
	return r
}

func newStoreRouter(t *testing.T) (*Router, *db.DB) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "bot.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	database.Now = func() time.Time { return now }

	return newRouter(t, database, newDocs(t, true)), database
}

func send(r *Router, text string) Reply {
	return r.Dispatch(context.Background(), Message{UserID: 7, Username: "ivan", FirstName: "Иван", Text: text})
}

func TestDispatch_KeywordPrecedence(t *testing.T) {
	r := newRouter(t, nil, newDocs(t, true))

	tests := []struct {
		text string
		want string
	}{
		{"tell me about the company contacts", "🏢 GameBored"},
		{"Расскажи о компании и дай телефон", "🏢 GameBored"},
		{"Дай телефон коллеги", "📞 Контакты команды"},
		{"Какие акции и игры есть?", "📅 Текущие акции"},
		{"Сколько стоит мемо?", "🎲 Наши товары"},
		{"Пришли сводку", "📊 Ежедневный дайджест"},
		{"Привет!", format.GreetingText},
		{"Как погода?", format.UnknownText},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			reply := send(r, tt.text)
			assert.True(t, strings.HasPrefix(reply.Text, tt.want), reply.Text)
		})
	}
}

func TestDispatch_CommandBeatsKeywords(t *testing.T) {
	r := newRouter(t, nil, newDocs(t, true))

	reply := send(r, "/contacts о компании")
	assert.True(t, strings.HasPrefix(reply.Text, "📞 Контакты команды"))

	reply = send(r, "/CONTACTS@GameBoredBot")
	assert.True(t, strings.HasPrefix(reply.Text, "📞 Контакты команды"))

	reply = send(r, "/start")
	assert.True(t, reply.ShowMenu)
	assert.True(t, strings.HasPrefix(reply.Text, "Привет, Иван!"))
}

func TestDispatch_UnknownCommandFallsBackToKeywords(t *testing.T) {
	r := newRouter(t, nil, newDocs(t, true))

	assert.Equal(t, format.UnknownText, send(r, "/weather").Text)
	assert.True(t, strings.HasPrefix(send(r, "/компания").Text, "🏢 GameBored"))
}

func TestDispatch_StoreUnavailable(t *testing.T) {
	var missing *db.DB
	for name, store := range map[string]RecordStore{"nil": nil, "typed nil": missing} {
		t.Run(name, func(t *testing.T) {
			r := newRouter(t, store, newDocs(t, true))
			assert.False(t, r.StoreAvailable())

			for _, text := range []string{
				"/stats", "/my_requests", "/add_order Иван Мафия 1", "/orders", "/order 1",
				"/find_order Иван", "/recent_orders", "/tasks", "/add_test_task",
				"покажи заказы", "мои задачи",
			} {
				assert.Equal(t, format.UnavailableText, send(r, text).Text, text)
			}

			assert.True(t, strings.HasPrefix(send(r, "/contacts").Text, "📞"))
			assert.Contains(t, send(r, "/debug").Text, "База данных: ❌ Недоступна")
		})
	}
}

func TestDispatch_AddOrder(t *testing.T) {
	r, database := newStoreRouter(t)

	reply := send(r, "/add_order Иван Мафия")
	assert.Contains(t, reply.Text, "Неверный формат команды")
	assert.Contains(t, reply.Text, "• Мафия (1790 руб.)")

	assert.Equal(t, format.QuantityInvalidText, send(r, "/add_order Иван Мафия два").Text)
	assert.Equal(t, format.QuantityInvalidText, send(r, "/add_order Иван Мафия 0").Text)
	assert.Equal(t, format.QuantityInvalidText, send(r, "/add_order Иван Мафия 9223372036854775807").Text)
	assert.Equal(t, format.QuantityInvalidText, send(r, "/add_order Иван Мафия 100001").Text)

	reply = send(r, `/add_order "Иван Петров" Мафия 2`)
	assert.Contains(t, reply.Text, "👤 Клиент: Иван Петров")
	assert.Contains(t, reply.Text, "💰 Сумма: 3580 руб.")

	orders, err := database.FindOrdersByCustomer(context.Background(), "иван петров")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 3580.0, orders[0].TotalPrice)
	assert.Equal(t, int64(7), orders[0].UserID)
	assert.Contains(t, reply.Text, "📋 ID заказа: #1")

	all, err := database.ListOrders(context.Background(), db.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	reply = send(r, `/add_order Иван "Персонализированная Мафия" 1`)
	assert.Contains(t, reply.Text, "👤 Клиент: Иван\n")
	assert.Contains(t, reply.Text, "🎯 Товар: Персонализированная Мафия")
	assert.Contains(t, reply.Text, "💰 Сумма: 2000 руб.")
}

func TestDispatch_OrderLookup(t *testing.T) {
	r, _ := newStoreRouter(t)

	assert.Equal(t, format.OrderUsageText, send(r, "/order").Text)
	assert.Equal(t, format.OrderIDInvalidText, send(r, "/order первый").Text)
	assert.Equal(t, format.OrderNotFound(5), send(r, "/order 5").Text)

	send(r, "/add_order Мария Мемо 1")
	assert.Contains(t, send(r, "/order 1").Text, "🆕 Заказ #1")
	assert.Contains(t, send(r, "/find_order мария").Text, "Найдено заказов для 'мария': 1")
	assert.Contains(t, send(r, "/recent_orders").Text, "Заказ #1")
	assert.Equal(t, format.FindOrderUsageText, send(r, "/find_order").Text)
}

func TestDispatch_LogsEveryRequest(t *testing.T) {
	r, database := newStoreRouter(t)
	ctx := context.Background()

	send(r, "/help")
	send(r, "Привет")
	send(r, "что-то непонятное")

	requests, err := database.ListUserRequests(ctx, 7, 10)
	require.NoError(t, err)
	require.Len(t, requests, 3)

	assert.Equal(t, "что-то непонятное", requests[0].RequestText)
	assert.Equal(t, TextMessageTag, requests[0].CommandUsed)
	assert.Equal(t, "Неизвестный запрос", requests[0].ResponseText)
	assert.Equal(t, "Приветствие", requests[1].ResponseText)
	assert.Equal(t, "help", requests[2].CommandUsed)

	ids, err := database.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, ids)

	reply := send(r, "/my_requests")
	assert.Contains(t, reply.Text, "1. что-то непонятное")
}

func TestDispatch_TasksAndStats(t *testing.T) {
	r, _ := newStoreRouter(t)

	assert.Equal(t, format.TasksEmptyText, send(r, "/tasks").Text)
	assert.Contains(t, send(r, "/add_test_task").Text, "ID задачи: #1")

	tasks := send(r, "/tasks").Text
	assert.Contains(t, tasks, "Обновить ассортимент товаров")
	assert.Contains(t, tasks, "📅 Срок: 17.03.2026")

	stats := send(r, "/stats").Text
	assert.Contains(t, stats, "Всего пользователей: 1")
	assert.Contains(t, stats, "Всего заказов: 0")
}

// flakyStore хранилище, у которого не работает журнал, а остальные методы паникуют
type flakyStore struct {
	RecordStore
	upserts int
}

func (s *flakyStore) Path() string { return "" }

func (s *flakyStore) UpsertUser(context.Context, int64, string, string, string) error {
	s.upserts++
	return nil
}

func (s *flakyStore) AppendRequest(context.Context, int64, string, string, string) error {
	return errors.New("диск заполнен")
}

func TestDispatch_LogFailureDoesNotBlockReply(t *testing.T) {
	store := &flakyStore{}
	r := newRouter(t, store, newDocs(t, true))

	reply := send(r, "/about")
	assert.True(t, strings.HasPrefix(reply.Text, "🏢 GameBored"))
	assert.Equal(t, 1, store.upserts)
}

func TestDispatch_RecoversFromPanic(t *testing.T) {
	r := newRouter(t, &flakyStore{}, newDocs(t, true))

	assert.Equal(t, "❌ Ошибка при получении статистики", send(r, "/stats").Text)
	assert.Equal(t, "❌ Ошибка при получении задач", send(r, "задачи").Text)
}

func TestDispatch_BrokenEntriesDoNotHideTheRest(t *testing.T) {
	docs := newDocs(t, false)
	events := `{"Скидка выходного дня": {"date": "2026-03-12"}, "Сломанная запись": {"date": ["2026-03-12"]}}`
	require.NoError(t, os.WriteFile(docs.Path(documents.EventsFile), []byte(events), 0644))
	require.NoError(t, os.WriteFile(docs.Path(documents.ContactsFile), []byte(`{"Анна": {"phone": 79001234567}}`), 0644))
	r := newRouter(t, nil, docs)

	text := send(r, "/events").Text
	assert.Contains(t, text, "Скидка выходного дня")
	assert.NotContains(t, text, "Сломанная запись")

	assert.Contains(t, send(r, "/contacts").Text, "79001234567")
	assert.Contains(t, send(r, "/digest").Text, "Скидка выходного дня")
}

func TestDispatch_MissingDocuments(t *testing.T) {
	r := newRouter(t, nil, newDocs(t, false))

	assert.Equal(t, format.ContactsEmptyText, send(r, "/contacts").Text)
	assert.Equal(t, format.EventsEmptyText, send(r, "/events").Text)
	assert.Equal(t, format.ProductsEmptyText, send(r, "/products").Text)
	assert.Equal(t, format.CompanyFallbackText, send(r, "/about").Text)
	assert.Contains(t, send(r, "/digest").Text, "Ежедневный дайджест")
	assert.Equal(t, format.UnknownText, send(r, "   ").Text)
}
