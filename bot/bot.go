package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/awhatson15/gameboard-bot/handlers"
)

// Sender отправляет сообщения в Telegram
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Dispatcher формирует ответ на входящее сообщение
type Dispatcher interface {
	Dispatch(ctx context.Context, msg handlers.Message) handlers.Reply
}

// Recipients список пользователей для рассылки
type Recipients interface {
	ListUserIDs(ctx context.Context) ([]int64, error)
}

// DigestSource текст ежедневного дайджеста
type DigestSource interface {
	Text() (string, error)
}

// Bot представляет Telegram бота
type Bot struct {
	API *tgbotapi.BotAPI

	sender      Sender
	router      Dispatcher
	digest      DigestSource
	recipients  Recipients
	log         *zap.Logger
	pollTimeout time.Duration

	wg sync.WaitGroup
}

// NewBot создает нового бота. recipients может быть nil, тогда рассылка дайджеста отключена.
func NewBot(token string, debug bool, pollTimeout time.Duration, router Dispatcher, digest DigestSource, recipients Recipients, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании бота: %w", err)
	}
	api.Debug = debug

	if log == nil {
		log = zap.NewNop()
	}

	return &Bot{
		API:         api,
		sender:      api,
		router:      router,
		digest:      digest,
		recipients:  recipients,
		log:         log,
		pollTimeout: pollTimeout,
	}, nil
}

// Start получает обновления до отмены контекста. Каждое сообщение обрабатывается в своей горутине.
func (b *Bot) Start(ctx context.Context) error {
	b.log.Info("Авторизован", zap.String("username", b.API.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(b.pollTimeout / time.Second)

	updates := b.API.GetUpdatesChan(u)
	defer b.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			b.API.StopReceivingUpdates()
			b.log.Info("Получение обновлений остановлено")
			return nil
		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("канал обновлений закрыт")
			}
			if update.Message == nil {
				continue
			}
			b.wg.Add(1)
			go func(message *tgbotapi.Message) {
				defer b.wg.Done()
				b.handleMessage(ctx, message)
			}(update.Message)
		}
	}
}

// handleMessage обрабатывает одно текстовое сообщение и отправляет ответ
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.Text == "" || message.From == nil {
		return
	}

	requestID := uuid.NewString()
	log := b.log.With(zap.String("request_id", requestID), zap.Int64("chat_id", message.Chat.ID))
	log.Debug("Входящее сообщение", zap.String("text", message.Text))

	reply := b.router.Dispatch(ctx, handlers.Message{
		UserID:    message.From.ID,
		Username:  message.From.UserName,
		FirstName: message.From.FirstName,
		LastName:  message.From.LastName,
		Text:      message.Text,
		RequestID: requestID,
	})

	msg := tgbotapi.NewMessage(message.Chat.ID, reply.Text)
	msg.ReplyToMessageID = message.MessageID
	if reply.ShowMenu {
		msg.ReplyMarkup = mainMenuKeyboard()
	}

	if _, err := b.sender.Send(msg); err != nil {
		log.Error("Ошибка при отправке ответа", zap.Error(err))
	}
}

// mainMenuKeyboard клавиатура с основными командами
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/contacts"),
			tgbotapi.NewKeyboardButton("/events"),
			tgbotapi.NewKeyboardButton("/products"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/digest"),
			tgbotapi.NewKeyboardButton("/orders"),
			tgbotapi.NewKeyboardButton("/tasks"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/about"),
			tgbotapi.NewKeyboardButton("/help"),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// SendDigest рассылает дайджест всем известным пользователям.
// Ошибка отправки одному пользователю не прерывает рассылку.
func (b *Bot) SendDigest(ctx context.Context) (int, error) {
	if b.recipients == nil {
		return 0, fmt.Errorf("база данных недоступна, получателей нет")
	}

	text, err := b.digest.Text()
	if err != nil {
		return 0, fmt.Errorf("ошибка при формировании дайджеста: %w", err)
	}

	userIDs, err := b.recipients.ListUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении получателей: %w", err)
	}

	sent := 0
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		if _, err := b.sender.Send(tgbotapi.NewMessage(userID, text)); err != nil {
			b.log.Warn("Ошибка при отправке дайджеста", zap.Int64("user_id", userID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

// ScheduleDigest добавляет рассылку дайджеста в планировщик. Пустое расписание ничего не добавляет.
func (b *Bot) ScheduleDigest(ctx context.Context, scheduler *cron.Cron, schedule string) error {
	if schedule == "" {
		b.log.Info("Рассылка дайджеста отключена")
		return nil
	}

	_, err := scheduler.AddFunc(schedule, func() {
		sent, err := b.SendDigest(ctx)
		if err != nil {
			b.log.Error("Ошибка при рассылке дайджеста", zap.Error(err))
			return
		}
		b.log.Info("Дайджест разослан", zap.Int("recipients", sent))
	})
	if err != nil {
		return fmt.Errorf("неверное расписание дайджеста %q: %w", schedule, err)
	}

	b.log.Info("Рассылка дайджеста запланирована", zap.String("schedule", schedule))
	return nil
}
