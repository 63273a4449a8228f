package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/awhatson15/gameboard-bot/db"
	"github.com/awhatson15/gameboard-bot/digest"
	"github.com/awhatson15/gameboard-bot/documents"
	"github.com/awhatson15/gameboard-bot/format"
	"github.com/awhatson15/gameboard-bot/models"
	"github.com/awhatson15/gameboard-bot/utils"
)

// RecordStore операции базы данных, которые нужны обработчикам
type RecordStore interface {
	Path() string
	UpsertUser(ctx context.Context, userID int64, username, firstName, lastName string) error
	AppendRequest(ctx context.Context, userID int64, requestText, responseText, commandUsed string) error
	ListUserRequests(ctx context.Context, userID int64, limit int) ([]*models.Request, error)
	AddOrder(ctx context.Context, order models.NewOrder) (int64, error)
	GetOrder(ctx context.Context, orderID int64) (*models.Order, error)
	ListOrders(ctx context.Context, filter db.OrderFilter) ([]*models.Order, error)
	FindOrdersByCustomer(ctx context.Context, customerName string) ([]*models.Order, error)
	OrdersSince(ctx context.Context, since time.Time) ([]*models.Order, error)
	OrderStats(ctx context.Context) (*models.OrderStats, error)
	BotStats(ctx context.Context) (*models.BotStats, error)
	AddTask(ctx context.Context, task models.NewTask) (int64, error)
	ListTasks(ctx context.Context, status string) ([]*models.Task, error)
}

// DocumentStore наборы данных в JSON
type DocumentStore interface {
	digest.Source
	Exists(name string) bool
}

// Message входящее текстовое сообщение
type Message struct {
	UserID    int64
	Username  string
	FirstName string
	LastName  string
	Text      string
	RequestID string
}

// Reply ответ на сообщение
type Reply struct {
	Text string
	// Summary краткое описание ответа для журнала запросов
	Summary string
	// ShowMenu прикрепить к ответу клавиатуру с основными командами
	ShowMenu bool
}

// TextMessageTag метка журнала для сообщений без явной команды
const TextMessageTag = "text_message"

type handlerFunc func(ctx context.Context, msg Message, args []string) (Reply, error)

type command struct {
	Name       string
	NeedsStore bool
	FailText   string
	Handle     handlerFunc
}

type keywordRoute struct {
	Keywords []string
	Command  *command
	Summary  string
}

// Router выбирает обработчик для сообщения и формирует ответ
type Router struct {
	store  RecordStore
	docs   DocumentStore
	digest *digest.Aggregator
	log    *zap.Logger

	commands map[string]*command
	keywords []keywordRoute
	unknown  *command

	// Now возвращает текущее время, подменяется в тестах
	Now func() time.Time
}

// NewRouter создает маршрутизатор. store может быть nil, если база данных недоступна.
func NewRouter(store RecordStore, docs DocumentStore, agg *digest.Aggregator, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	if database, ok := store.(*db.DB); ok && database == nil {
		store = nil
	}
	if agg == nil {
		agg = digest.New(docs, log)
	}

	r := &Router{
		store:  store,
		docs:   docs,
		digest: agg,
		log:    log,
		Now:    time.Now,
	}
	r.register()
	return r
}

// StoreAvailable сообщает, подключена ли база данных
func (r *Router) StoreAvailable() bool {
	return r.store != nil
}

func (r *Router) register() {
	commands := []*command{
		{Name: "start", Handle: r.handleStart},
		{Name: "help", Handle: r.handleHelp},
		{Name: "contacts", Handle: r.handleContacts},
		{Name: "events", Handle: r.handleEvents, FailText: "❌ Ошибка при загрузке событий."},
		{Name: "products", Handle: r.handleProducts, FailText: "❌ Ошибка при загрузке товаров."},
		{Name: "digest", Handle: r.handleDigest, FailText: "❌ Ошибка при формировании дайджеста"},
		{Name: "about", Handle: r.handleAbout},
		{Name: "stats", Handle: r.handleStats, NeedsStore: true, FailText: "❌ Ошибка при получении статистики"},
		{Name: "my_requests", Handle: r.handleMyRequests, NeedsStore: true, FailText: "❌ Ошибка при получении истории запросов"},
		{Name: "add_order", Handle: r.handleAddOrder, NeedsStore: true, FailText: "❌ Произошла ошибка при добавлении заказа"},
		{Name: "orders", Handle: r.handleOrders, NeedsStore: true, FailText: "❌ Ошибка при получении списка заказов"},
		{Name: "order", Handle: r.handleOrder, NeedsStore: true, FailText: "❌ Ошибка при получении информации о заказе"},
		{Name: "find_order", Handle: r.handleFindOrder, NeedsStore: true, FailText: "❌ Произошла ошибка при поиске заказов"},
		{Name: "recent_orders", Handle: r.handleRecentOrders, NeedsStore: true, FailText: "❌ Произошла ошибка при получении заказов"},
		{Name: "tasks", Handle: r.handleTasks, NeedsStore: true, FailText: "❌ Ошибка при получении задач"},
		{Name: "add_test_task", Handle: r.handleAddTestTask, NeedsStore: true, FailText: "❌ Ошибка при добавлении тестовой задачи"},
		{Name: "debug", Handle: r.handleDebug, FailText: "❌ Ошибка отладки"},
	}

	r.commands = make(map[string]*command, len(commands))
	for _, cmd := range commands {
		r.commands[cmd.Name] = cmd
	}

	greeting := &command{Name: "greeting", Handle: func(context.Context, Message, []string) (Reply, error) {
		return Reply{Text: format.GreetingText, Summary: "Приветствие"}, nil
	}}
	r.unknown = &command{Name: "unknown", Handle: func(context.Context, Message, []string) (Reply, error) {
		return Reply{Text: format.UnknownText, Summary: "Неизвестный запрос"}, nil
	}}

	// Порядок важен: побеждает первый набор, в котором нашлось совпадение
	r.keywords = []keywordRoute{
		{Keywords: []string{"компани", "о компани", "организац", "company"}, Command: r.commands["about"], Summary: "Информация о компании"},
		{Keywords: []string{"контакт", "телефон", "email", "коллег", "contact"}, Command: r.commands["contacts"], Summary: "Контакты команды"},
		{Keywords: []string{"событи", "акци", "встреч", "мероприят"}, Command: r.commands["events"], Summary: "События и акции"},
		{Keywords: []string{"товар", "игр", "цен", "стоит", "купить"}, Command: r.commands["products"], Summary: "Товары и цены"},
		{Keywords: []string{"дайджест", "итог", "сводк"}, Command: r.commands["digest"], Summary: "Ежедневный дайджест"},
		{Keywords: []string{"статистик", "статус", "отчет"}, Command: r.commands["stats"], Summary: "Статистика бота"},
		{Keywords: []string{"заказ", "покуп"}, Command: r.commands["orders"], Summary: "Список заказов"},
		{Keywords: []string{"задач", "todo", "дело"}, Command: r.commands["tasks"], Summary: "Задачи команды"},
		{Keywords: []string{"истори", "мои запрос"}, Command: r.commands["my_requests"], Summary: "История запросов"},
		{Keywords: []string{"привет", "здравств", "hello", "hi"}, Command: greeting, Summary: "Приветствие"},
	}
}

// route выбирает команду для текста. explicit истинно для явной команды вида /name.
func (r *Router) route(text string) (cmd *command, summary string, explicit bool) {
	if strings.HasPrefix(text, "/") {
		token := strings.ToLower(strings.Fields(text)[0][1:])
		if at := strings.IndexByte(token, '@'); at >= 0 {
			token = token[:at]
		}
		if cmd, ok := r.commands[token]; ok {
			return cmd, "", true
		}
	}

	lower := strings.ToLower(text)
	for _, route := range r.keywords {
		for _, kw := range route.Keywords {
			if strings.Contains(lower, kw) {
				return route.Command, route.Summary, false
			}
		}
	}
	return r.unknown, "Неизвестный запрос", false
}

// Dispatch обрабатывает одно сообщение. Всегда возвращает ответ, ошибки и паники остаются внутри.
func (r *Router) Dispatch(ctx context.Context, msg Message) Reply {
	log := r.log.With(zap.String("request_id", msg.RequestID), zap.Int64("user_id", msg.UserID))

	msg.Text = strings.TrimSpace(msg.Text)
	if msg.Text == "" {
		return Reply{Text: format.UnknownText, Summary: "Неизвестный запрос"}
	}

	cmd, summary, explicit := r.route(msg.Text)
	log.Debug("Выбран обработчик", zap.String("command", cmd.Name), zap.Bool("explicit", explicit))

	if r.store != nil {
		if err := r.store.UpsertUser(ctx, msg.UserID, msg.Username, msg.FirstName, msg.LastName); err != nil {
			log.Warn("Не удалось сохранить пользователя", zap.Error(err))
		}
	}

	reply := r.execute(ctx, log, cmd, msg)

	if r.store != nil {
		tag := TextMessageTag
		if explicit {
			tag = cmd.Name
		} else {
			reply.Summary = summary
		}
		if err := r.store.AppendRequest(ctx, msg.UserID, msg.Text, reply.Summary, tag); err != nil {
			log.Warn("Не удалось записать запрос в журнал", zap.Error(err))
		}
	}

	return reply
}

func (r *Router) execute(ctx context.Context, log *zap.Logger, cmd *command, msg Message) (reply Reply) {
	failText := cmd.FailText
	if failText == "" {
		failText = format.ErrorText
	}

	if cmd.NeedsStore && r.store == nil {
		return Reply{Text: format.UnavailableText, Summary: "База данных недоступна"}
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("Паника в обработчике",
				zap.String("command", cmd.Name),
				zap.Any("panic", rec),
				zap.Stack("stack"))
			reply = Reply{Text: failText, Summary: fmt.Sprintf("Ошибка: %v", rec)}
		}
	}()

	reply, err := cmd.Handle(ctx, msg, utils.SplitArgs(msg.Text))
	if err != nil {
		log.Error("Ошибка при обработке команды", zap.String("command", cmd.Name), zap.Error(err))
		return Reply{Text: failText, Summary: "Ошибка: " + err.Error()}
	}
	return reply
}

// isMissing отсутствие набора данных не считается ошибкой, остальные ошибки логируются
func (r *Router) isMissing(name string, err error) bool {
	if err == nil {
		return false
	}
	if !errors.Is(err, documents.ErrMissing) {
		r.log.Error("Ошибка чтения набора данных", zap.String("file", name), zap.Error(err))
	}
	return true
}
