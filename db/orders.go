package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/awhatson15/gameboard-bot/models"
	"github.com/awhatson15/gameboard-bot/utils"
)

const (
	// DefaultOrderLimit сколько заказов отдавать, если лимит не указан
	DefaultOrderLimit = 10
	// MaxQuantity наибольшее количество товара в одном заказе
	MaxQuantity = 100000
)

// ErrInvalidQuantity количество товара в заказе вне диапазона 1..MaxQuantity
var ErrInvalidQuantity = fmt.Errorf("количество должно быть от 1 до %d", MaxQuantity)

// OrderFilter условия выборки заказов. Пустые поля не участвуют в фильтре.
type OrderFilter struct {
	UserID int64
	Status string
	Limit  int
}

// UnitPrice возвращает цену за единицу товара по прайсу или цену по умолчанию
func UnitPrice(productName string) int {
	if price, ok := models.UnitPrices[strings.ToLower(strings.TrimSpace(productName))]; ok {
		return price
	}
	return models.FallbackUnitPrice
}

const orderColumns = `id, user_id, customer_name, product_name, quantity, total_price, status, created_at, updated_at, notes`

// AddOrder создает заказ со статусом "новый" и возвращает его ID
func (db *DB) AddOrder(ctx context.Context, order models.NewOrder) (int64, error) {
	if order.Quantity < 1 || order.Quantity > MaxQuantity {
		return 0, ErrInvalidQuantity
	}

	total := float64(order.Quantity * UnitPrice(order.ProductName))
	now := db.timestamp()

	result, err := db.ExecContext(ctx, `
		INSERT INTO orders
		(user_id, customer_name, product_name, quantity, total_price, status, created_at, updated_at, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.UserID, order.CustomerName, order.ProductName, order.Quantity, total,
		models.OrderStatusNew, now, now, order.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("ошибка при добавлении заказа: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID нового заказа: %w", err)
	}

	db.log.Info("Добавлен заказ",
		zap.Int64("order_id", orderID),
		zap.String("customer", order.CustomerName),
		zap.Float64("total_price", total))
	return orderID, nil
}

// GetOrder получает заказ по его ID. Если заказа нет, возвращает nil без ошибки.
func (db *DB) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	row := db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = ?", orderID)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении заказа: %w", err)
	}

	return order, nil
}

// ListOrders получает заказы по фильтру, новые первыми
func (db *DB) ListOrders(ctx context.Context, filter OrderFilter) ([]*models.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders"

	var conditions []string
	var params []any
	if filter.UserID != 0 {
		conditions = append(conditions, "user_id = ?")
		params = append(params, filter.UserID)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		params = append(params, filter.Status)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultOrderLimit
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	params = append(params, limit)

	return db.queryOrders(ctx, "ошибка при получении заказов", query, params...)
}

// FindOrdersByCustomer ищет заказы, в имени клиента которых встречается подстрока, без учета регистра
func (db *DB) FindOrdersByCustomer(ctx context.Context, customerName string) ([]*models.Order, error) {
	return db.queryOrders(ctx, "ошибка при поиске заказов по клиенту", `
		SELECT `+orderColumns+`
		FROM orders
		WHERE instr(casefold(customer_name), casefold(?)) > 0
		ORDER BY created_at DESC, id DESC`,
		customerName,
	)
}

// OrdersSince получает заказы, созданные не раньше since
func (db *DB) OrdersSince(ctx context.Context, since time.Time) ([]*models.Order, error) {
	return db.queryOrders(ctx, "ошибка при получении заказов по дате", `
		SELECT `+orderColumns+`
		FROM orders
		WHERE created_at >= ?
		ORDER BY created_at DESC, id DESC`,
		since.UTC().Format(utils.TimestampLayout),
	)
}

// OrderStats возвращает общую статистику по заказам
func (db *DB) OrderStats(ctx context.Context) (*models.OrderStats, error) {
	stats := &models.OrderStats{ByStatus: []models.StatusCount{}}

	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT customer_name), COALESCE(SUM(total_price), 0)
		FROM orders`,
	).Scan(&stats.TotalOrders, &stats.UniqueCustomers, &stats.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статистики заказов: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT status, COUNT(*) FROM orders GROUP BY status ORDER BY status")
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении статистики по статусам: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc models.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании статистики: %w", err)
		}
		stats.ByStatus = append(stats.ByStatus, sc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по статусам: %w", err)
	}

	return stats, nil
}

func (db *DB) queryOrders(ctx context.Context, errMsg, query string, args ...any) ([]*models.Order, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании данных заказа: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по заказам: %w", err)
	}

	return orders, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*models.Order, error) {
	order := &models.Order{}
	var userID sql.NullInt64
	err := s.Scan(
		&order.ID, &userID, &order.CustomerName, &order.ProductName, &order.Quantity,
		&order.TotalPrice, &order.Status, &order.CreatedAt, &order.UpdatedAt, &order.Notes,
	)
	if err != nil {
		return nil, err
	}
	order.UserID = userID.Int64
	return order, nil
}
