package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Seconds разбирает длительность из переменной окружения: "60s", "1m" или просто число секунд.
type Seconds time.Duration

func (s *Seconds) SetValue(data string) error {
	data = strings.TrimSpace(data)
	if data == "" {
		return fmt.Errorf("пустая длительность")
	}
	if n, err := strconv.Atoi(data); err == nil {
		*s = Seconds(time.Duration(n) * time.Second)
		return nil
	}
	d, err := time.ParseDuration(data)
	if err != nil {
		return fmt.Errorf("длительность должна быть вида 60s, 1m или числом секунд: %w", err)
	}
	*s = Seconds(d)
	return nil
}

func (s Seconds) Duration() time.Duration { return time.Duration(s) }

// Config содержит настройки приложения
type Config struct {
	BotToken       string  `env:"BOT_TOKEN"`
	BotDebug       bool    `env:"BOT_DEBUG" env-default:"false"`
	PollTimeout    Seconds `env:"POLL_TIMEOUT" env-default:"60"`
	DatabasePath   string  `env:"DATABASE_PATH" env-default:"./data/bot.db"`
	DataDir        string  `env:"DATA_DIR" env-default:"./data"`
	LogLevel       string  `env:"LOG_LEVEL" env-default:"info"`
	DigestSchedule string  `env:"DIGEST_SCHEDULE" env-default:"0 9 * * *"`
}

// ErrNoToken возвращается, когда для запуска бота не задан BOT_TOKEN.
var ErrNoToken = errors.New("BOT_TOKEN не задан")

// LoadConfig загружает конфигурацию из .env (если он есть) и переменных окружения
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("ошибка чтения .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка чтения переменных окружения: %w", err)
	}
	cfg.DigestSchedule = strings.TrimSpace(cfg.DigestSchedule)

	return &cfg, nil
}

// Validate проверяет настройки, без которых бот не может работать
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BotToken) == "" {
		return ErrNoToken
	}
	return nil
}
