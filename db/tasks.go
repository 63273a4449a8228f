package db

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/awhatson15/gameboard-bot/models"
)

// AddTask добавляет задачу команды со статусом "к выполнению"
func (db *DB) AddTask(ctx context.Context, task models.NewTask) (int64, error) {
	priority := task.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	var dueDate any
	if task.DueDate != "" {
		dueDate = task.DueDate
	}

	result, err := db.ExecContext(ctx, `
		INSERT INTO tasks
		(title, description, assigned_to, priority, status, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.Title, task.Description, task.AssignedTo, priority, models.TaskStatusTodo, dueDate, db.timestamp(),
	)
	if err != nil {
		return 0, fmt.Errorf("ошибка при добавлении задачи: %w", err)
	}

	taskID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID новой задачи: %w", err)
	}

	db.log.Info("Добавлена задача", zap.Int64("task_id", taskID), zap.String("title", task.Title))
	return taskID, nil
}

// ListTasks получает задачи, при пустом status все.
// Сортировка по сроку, затем по названию приоритета в обратном порядке строк, а не по важности.
func (db *DB) ListTasks(ctx context.Context, status string) ([]*models.Task, error) {
	query := `
		SELECT id, title, description, assigned_to, priority, status, due_date, created_at
		FROM tasks`
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY due_date ASC, priority DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении задач: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		task := &models.Task{}
		var dueDate sql.NullString
		err := rows.Scan(
			&task.ID, &task.Title, &task.Description, &task.AssignedTo,
			&task.Priority, &task.Status, &dueDate, &task.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании данных задачи: %w", err)
		}
		task.DueDate = dueDate.String
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по задачам: %w", err)
	}

	return tasks, nil
}
