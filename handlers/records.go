package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/awhatson15/gameboard-bot/db"
	"github.com/awhatson15/gameboard-bot/format"
	"github.com/awhatson15/gameboard-bot/models"
	"github.com/awhatson15/gameboard-bot/utils"
)

func (r *Router) handleStats(ctx context.Context, _ Message, _ []string) (Reply, error) {
	botStats, err := r.store.BotStats(ctx)
	if err != nil {
		return Reply{}, err
	}
	orderStats, err := r.store.OrderStats(ctx)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: format.Stats(botStats, orderStats), Summary: "Показана статистика"}, nil
}

func (r *Router) handleMyRequests(ctx context.Context, msg Message, _ []string) (Reply, error) {
	requests, err := r.store.ListUserRequests(ctx, msg.UserID, format.HistoryLimit)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: format.RequestHistory(requests), Summary: "Показана история"}, nil
}

// handleAddOrder разбирает /add_order <клиент> <товар> <количество>.
// Имя клиента может состоять из нескольких слов: это все аргументы, кроме двух последних.
// Товар из нескольких слов передается в кавычках.
func (r *Router) handleAddOrder(ctx context.Context, msg Message, args []string) (Reply, error) {
	if len(args) < 3 {
		return Reply{Text: format.AddOrderUsage(models.UnitPrices, models.PriceNames), Summary: "Неверный формат команды"}, nil
	}

	quantity, err := strconv.Atoi(args[len(args)-1])
	if err != nil || quantity <= 0 || quantity > db.MaxQuantity {
		return Reply{Text: format.QuantityInvalidText, Summary: "Неверное количество"}, nil
	}

	order := models.NewOrder{
		UserID:       msg.UserID,
		CustomerName: strings.Join(args[:len(args)-2], " "),
		ProductName:  args[len(args)-2],
		Quantity:     quantity,
	}

	orderID, err := r.store.AddOrder(ctx, order)
	if errors.Is(err, db.ErrInvalidQuantity) {
		return Reply{Text: format.QuantityInvalidText, Summary: "Неверное количество"}, nil
	}
	if err != nil {
		return Reply{}, err
	}

	created, err := r.store.GetOrder(ctx, orderID)
	if err != nil {
		return Reply{}, err
	}
	if created == nil {
		return Reply{}, fmt.Errorf("заказ #%d не найден после добавления", orderID)
	}
	return Reply{Text: format.OrderCreated(created), Summary: fmt.Sprintf("Заказ добавлен ID: %d", orderID)}, nil
}

func (r *Router) handleOrders(ctx context.Context, _ Message, _ []string) (Reply, error) {
	orders, err := r.store.ListOrders(ctx, db.OrderFilter{Limit: db.DefaultOrderLimit})
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: format.Orders(orders), Summary: fmt.Sprintf("Показано %d заказов", len(orders))}, nil
}

func (r *Router) handleOrder(ctx context.Context, _ Message, args []string) (Reply, error) {
	if len(args) == 0 {
		return Reply{Text: format.OrderUsageText, Summary: "Не указан номер заказа"}, nil
	}

	orderID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return Reply{Text: format.OrderIDInvalidText, Summary: "Неверный номер заказа"}, nil
	}

	order, err := r.store.GetOrder(ctx, orderID)
	if err != nil {
		return Reply{}, err
	}
	if order == nil {
		return Reply{Text: format.OrderNotFound(orderID), Summary: fmt.Sprintf("Заказ #%d не найден", orderID)}, nil
	}
	return Reply{Text: format.Order(order), Summary: fmt.Sprintf("Показан заказ #%d", orderID)}, nil
}

func (r *Router) handleFindOrder(ctx context.Context, _ Message, args []string) (Reply, error) {
	if len(args) == 0 {
		return Reply{Text: format.FindOrderUsageText, Summary: "Не указано имя клиента"}, nil
	}

	customer := strings.Join(args, " ")
	orders, err := r.store.FindOrdersByCustomer(ctx, customer)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: format.OrderSearch(customer, orders), Summary: fmt.Sprintf("Найдено %d заказов", len(orders))}, nil
}

func (r *Router) handleRecentOrders(ctx context.Context, _ Message, _ []string) (Reply, error) {
	orders, err := r.store.OrdersSince(ctx, r.Now().AddDate(0, 0, -format.RecentDays))
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: format.RecentOrders(orders), Summary: fmt.Sprintf("Показано %d заказов", len(orders))}, nil
}

func (r *Router) handleTasks(ctx context.Context, _ Message, _ []string) (Reply, error) {
	tasks, err := r.store.ListTasks(ctx, "")
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: format.Tasks(tasks), Summary: fmt.Sprintf("Показано %d задач", len(tasks))}, nil
}

func (r *Router) handleAddTestTask(ctx context.Context, _ Message, _ []string) (Reply, error) {
	taskID, err := r.store.AddTask(ctx, models.NewTask{
		Title:       "Обновить ассортимент товаров",
		Description: "Добавить новые темы для кастомизации игр",
		AssignedTo:  "Менеджер по продукту",
		Priority:    models.PriorityMedium,
		DueDate:     r.Now().AddDate(0, 0, 7).Format(utils.DateLayout),
	})
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: format.TaskCreated(taskID), Summary: fmt.Sprintf("Добавлена задача ID: %d", taskID)}, nil
}
