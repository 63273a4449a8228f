package models

import (
	"time"
)

// User представляет пользователя бота
type User struct {
	UserID       int64
	Username     string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	LastActivity time.Time
}

// Request представляет запись журнала обращений к боту
type Request struct {
	ID           int64
	UserID       int64
	RequestText  string
	ResponseText string
	CommandUsed  string
	CreatedAt    time.Time
}

// Order представляет заказ клиента
type Order struct {
	ID           int64
	UserID       int64
	CustomerName string
	ProductName  string
	Quantity     int
	TotalPrice   float64
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Notes        string
}

// NewOrder содержит данные для создания заказа. Цена считается хранилищем.
type NewOrder struct {
	UserID       int64
	CustomerName string
	ProductName  string
	Quantity     int
	Notes        string
}

// Task представляет задачу команды
type Task struct {
	ID          int64
	Title       string
	Description string
	AssignedTo  string
	Priority    string
	Status      string
	DueDate     string
	CreatedAt   time.Time
}

// NewTask содержит данные для создания задачи
type NewTask struct {
	Title       string
	Description string
	AssignedTo  string
	Priority    string
	DueDate     string
}

// StatusCount количество заказов в одном статусе
type StatusCount struct {
	Status string
	Count  int
}

// OrderStats сводка по заказам
type OrderStats struct {
	TotalOrders     int
	UniqueCustomers int
	TotalRevenue    float64
	ByStatus        []StatusCount
}

// BotStats сводка по пользователям и запросам. LastActivity равен nil, если запросов не было.
type BotStats struct {
	TotalUsers    int
	TotalRequests int
	LastActivity  *time.Time
}

// Статусы заказа
const (
	OrderStatusNew        = "новый"
	OrderStatusInProgress = "в работе"
	OrderStatusDone       = "выполнен"
	OrderStatusCancelled  = "отменен"
)

// Приоритеты задач
const (
	PriorityHigh   = "высокий"
	PriorityMedium = "средний"
	PriorityLow    = "низкий"
)

// Статусы задач
const (
	TaskStatusTodo       = "к выполнению"
	TaskStatusInProgress = "в работе"
	TaskStatusDone       = "выполнено"
)

// FallbackUnitPrice цена за единицу для товаров, которых нет в прайсе
const FallbackUnitPrice = 2000

// UnitPrices прайс на основные товары, ключом служит название в нижнем регистре
var UnitPrices = map[string]int{
	"мафия": 1790,
	"мемо":  1990,
	"элиас": 2500,
}

// PriceNames порядок вывода прайса в подсказках
var PriceNames = []string{"Мафия", "Мемо", "Элиас"}
