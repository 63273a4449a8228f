package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/awhatson15/gameboard-bot/bot"
	"github.com/awhatson15/gameboard-bot/config"
	"github.com/awhatson15/gameboard-bot/db"
	"github.com/awhatson15/gameboard-bot/digest"
	"github.com/awhatson15/gameboard-bot/documents"
	"github.com/awhatson15/gameboard-bot/handlers"
	"github.com/awhatson15/gameboard-bot/logger"
)

var (
	cfg *config.Config
	log *zap.Logger

	forceSeed bool
)

var rootCmd = &cobra.Command{
	Use:   "gameboard-bot",
	Short: "Telegram-помощник команды GameBored",
	Long: `Бот отвечает на команды и вопросы сотрудников: контакты, акции, товары,
заказы и задачи. Без аргументов запускает бота.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}
		log, err = logger.New(cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: runBot,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Запустить бота",
	Args:  cobra.NoArgs,
	RunE:  runBot,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Записать демонстрационные наборы данных в DATA_DIR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := documents.New(cfg.DataDir, log)
		if err != nil {
			return err
		}
		written, err := documents.Seed(docs, time.Now(), forceSeed)
		if err != nil {
			return err
		}
		for _, name := range written {
			fmt.Fprintf(cmd.OutOrStdout(), "записан %s\n", docs.Path(name))
		}
		if len(written) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "все файлы уже существуют, используйте --force для перезаписи")
		}
		return nil
	},
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Вывести ежедневный дайджест",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := documents.New(cfg.DataDir, log)
		if err != nil {
			return err
		}
		text, err := digest.New(docs, log).Text()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&forceSeed, "force", false, "перезаписать существующие файлы")
	rootCmd.AddCommand(runCmd, seedCmd, digestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBot(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Запуск GameBored бота...")

	docs, err := documents.New(cfg.DataDir, log)
	if err != nil {
		return fmt.Errorf("ошибка при подготовке директории данных: %w", err)
	}

	// Без базы данных бот работает, но команды заказов и задач отвечают, что сервис недоступен
	var store handlers.RecordStore
	var recipients bot.Recipients
	database, err := db.Open(cfg.DatabasePath, log)
	if err != nil {
		log.Error("База данных недоступна", zap.String("path", cfg.DatabasePath), zap.Error(err))
	} else {
		defer database.Close()
		store = database
		recipients = database
	}

	agg := digest.New(docs, log)
	router := handlers.NewRouter(store, docs, agg, log)

	telegramBot, err := bot.NewBot(cfg.BotToken, cfg.BotDebug, cfg.PollTimeout.Duration(), router, agg, recipients, log)
	if err != nil {
		return err
	}

	scheduler := cron.New()
	if recipients != nil {
		if err := telegramBot.ScheduleDigest(ctx, scheduler, cfg.DigestSchedule); err != nil {
			return err
		}
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	log.Info("Бот успешно запущен", zap.Bool("database", router.StoreAvailable()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return telegramBot.Start(gctx)
	})
	return g.Wait()
}
