package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/awhatson15/gameboard-bot/models"
	"github.com/awhatson15/gameboard-bot/utils"
)

// AppendRequest записывает обращение пользователя в журнал
func (db *DB) AppendRequest(ctx context.Context, userID int64, requestText, responseText, commandUsed string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO user_requests
		(user_id, request_text, response_text, command_used, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		userID, requestText, responseText, commandUsed, db.timestamp(),
	)
	if err != nil {
		return fmt.Errorf("ошибка при логировании запроса: %w", err)
	}
	return nil
}

// ListUserRequests возвращает последние запросы пользователя, новые первыми
func (db *DB) ListUserRequests(ctx context.Context, userID int64, limit int) ([]*models.Request, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_id, request_text, response_text, command_used, created_at
		FROM user_requests
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении истории запросов: %w", err)
	}
	defer rows.Close()

	requests := []*models.Request{}
	for rows.Next() {
		req := &models.Request{}
		var requestText, responseText, commandUsed sql.NullString
		err := rows.Scan(&req.ID, &req.UserID, &requestText, &responseText, &commandUsed, &req.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании запроса: %w", err)
		}
		req.RequestText = requestText.String
		req.ResponseText = responseText.String
		req.CommandUsed = commandUsed.String
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по запросам: %w", err)
	}

	return requests, nil
}

// BotStats возвращает число пользователей, запросов и время последнего запроса
func (db *DB) BotStats(ctx context.Context) (*models.BotStats, error) {
	stats := &models.BotStats{}

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&stats.TotalUsers); err != nil {
		return nil, fmt.Errorf("ошибка при подсчете пользователей: %w", err)
	}
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_requests").Scan(&stats.TotalRequests); err != nil {
		return nil, fmt.Errorf("ошибка при подсчете запросов: %w", err)
	}

	// У агрегата нет объявленного типа, поэтому драйвер отдает строку
	var last sql.NullString
	if err := db.QueryRowContext(ctx, "SELECT MAX(created_at) FROM user_requests").Scan(&last); err != nil {
		return nil, fmt.Errorf("ошибка при получении последней активности: %w", err)
	}
	if last.Valid {
		t, err := parseTimestamp(last.String)
		if err != nil {
			return nil, err
		}
		stats.LastActivity = &t
	}

	return stats, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{utils.TimestampLayout, time.RFC3339Nano, sqlite3TimeLayout} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("неверный формат времени %q", s)
}

// sqlite3TimeLayout формат, которым драйвер записывает time.Time
const sqlite3TimeLayout = "2006-01-02 15:04:05.999999999-07:00"
