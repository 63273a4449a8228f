package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/awhatson15/gameboard-bot/utils"
)

// driverName драйвер sqlite3 с функцией casefold для поиска без учета регистра.
// Встроенные LOWER и LIKE в SQLite понимают регистр только у ASCII.
const driverName = "sqlite3_gameboard"

//go:embed migrations/*.sql
var migrations embed.FS

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("casefold", strings.ToLower, true)
		},
	})
}

// DB представляет экземпляр базы данных
type DB struct {
	*sql.DB
	path string
	log  *zap.Logger

	// Now возвращает текущее время, подменяется в тестах
	Now func() time.Time
}

// NewDB инициализирует соединение с базой данных
func NewDB(dbPath string, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}

	// Создаем директорию для БД, если она не существует
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию для БД: %w", err)
	}

	conn, err := sql.Open(driverName, dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть базу данных: %w", err)
	}

	// SQLite не любит параллельных писателей, одно соединение на процесс
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	return &DB{DB: conn, path: dbPath, log: log, Now: time.Now}, nil
}

// Path возвращает путь к файлу базы данных
func (db *DB) Path() string {
	return db.path
}

// InitSchema применяет миграции схемы базы данных
func (db *DB) InitSchema() error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("не удалось выбрать диалект миграций: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("не удалось применить миграции: %w", err)
	}

	db.log.Info("Схема базы данных успешно инициализирована", zap.String("path", db.path))
	return nil
}

// Open открывает базу данных и применяет миграции
func Open(dbPath string, log *zap.Logger) (*DB, error) {
	database, err := NewDB(dbPath, log)
	if err != nil {
		return nil, err
	}
	if err := database.InitSchema(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// timestamp возвращает текущее время в формате столбцов TIMESTAMP
func (db *DB) timestamp() string {
	return db.Now().UTC().Format(utils.TimestampLayout)
}

// UpsertUser добавляет пользователя или полностью заменяет его запись, обновляя last_activity
func (db *DB) UpsertUser(ctx context.Context, userID int64, username, firstName, lastName string) error {
	now := db.timestamp()
	_, err := db.ExecContext(ctx, `
		INSERT OR REPLACE INTO users
		(user_id, username, first_name, last_name, created_at, last_activity)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, username, firstName, lastName, now, now,
	)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении пользователя: %w", err)
	}
	return nil
}

// ListUserIDs возвращает идентификаторы всех пользователей
func (db *DB) ListUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := db.QueryContext(ctx, "SELECT user_id FROM users ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении пользователей: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка при сканировании пользователя: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по пользователям: %w", err)
	}

	return ids, nil
}
