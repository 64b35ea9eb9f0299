package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/go-resty/resty/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/virgidrex/sentinela-bot/bot"
	"github.com/virgidrex/sentinela-bot/config"
	"github.com/virgidrex/sentinela-bot/contracts/handlers"
	"github.com/virgidrex/sentinela-bot/explorer"
	"github.com/virgidrex/sentinela-bot/http_server"
	"github.com/virgidrex/sentinela-bot/metrics"
	"github.com/virgidrex/sentinela-bot/models"
	"github.com/virgidrex/sentinela-bot/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Getting configuration dir
	exPath, err := os.Getwd()
	if err != nil {
		panic("can't resolve working directory: " + err.Error())
	}
	envFiles, envErr := config.LoadEnvFiles(filepath.Join(exPath, "config"))
	cfg, cfgErr := config.Parse(os.Args[1:])

	logger, err := newLogger(cfg != nil && cfg.Debug)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if envErr != nil {
		logger.Fatal("Error loading env files", zap.Error(envErr))
	}
	if cfgErr != nil {
		logger.Fatal("Invalid configuration", zap.Error(cfgErr))
	}
	logger.Info("Loaded configuration",
		zap.Strings("env_files", envFiles),
		zap.String("balance_source", cfg.BalanceSource),
		zap.String("threshold", cfg.Threshold.String()),
		zap.Bool("webhook", cfg.WebhookURL != ""),
	)

	db, err := openDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	// Migrate the schema
	if err := db.AutoMigrate(&models.User{}); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	lookup, err := newBalanceLookup(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to create balance lookup", zap.Error(err))
	}

	s := &service.Service{
		DB: db,
		Classifier: service.NewClassifier(lookup, cfg.Threshold,
			service.WithDecimals(cfg.TokenDecimals),
			service.WithLookupTimeout(cfg.LookupTimeout),
		),
		Links:       service.Links{Holder: cfg.HolderGroupLink, Waiting: cfg.WaitingGroupLink},
		TokenSymbol: cfg.TokenSymbol,
		Logger:      logger,
		Observer:    metrics.NewRecorder(cfg.BalanceSource),
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatal("failed to authorize bot", zap.Error(err))
	}
	api.Debug = cfg.Debug
	logger.Info("Authorized on account", zap.String("username", api.Self.UserName))

	var updates <-chan tgbotapi.Update
	var webhook *http_server.Webhook
	if cfg.WebhookURL != "" {
		wh, err := tgbotapi.NewWebhook(cfg.WebhookEndpoint())
		if err != nil {
			logger.Fatal("invalid webhook url", zap.Error(err))
		}
		if _, err := api.Request(wh); err != nil {
			logger.Fatal("failed to register webhook", zap.Error(err))
		}
		webhookUpdates := make(chan tgbotapi.Update, cfg.Workers)
		webhook = &http_server.Webhook{
			Path:    cfg.WebhookPath(),
			Decoder: api,
			Updates: webhookUpdates,
			Done:    ctx.Done(),
		}
		updates = webhookUpdates
	} else {
		if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			logger.Warn("failed to delete webhook", zap.Error(err))
		}
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates = api.GetUpdatesChan(u)
		go func() {
			<-ctx.Done()
			api.StopReceivingUpdates()
		}()
	}

	srv := http_server.NewServer(cfg.Port, http_server.NewRouter(s, webhook, logger))
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to listen and serve", zap.Error(err))
			stop()
		}
	}()

	handler := bot.NewHandler(s, api, logger)
	bot.Dispatch(ctx, cfg.Workers, updates, handler.HandleUpdate, logger)

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown http server", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func openDatabase(dsn string) (*gorm.DB, error) {
	dialector := sqlite.Open(dsn)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dialector = postgres.Open(dsn)
	}
	return gorm.Open(dialector, &gorm.Config{})
}

func newBalanceLookup(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.BalanceLookup, error) {
	if cfg.BalanceSource == config.SourceRPC {
		ethClient, err := ethclient.DialContext(ctx, cfg.RPCURL)
		if err != nil {
			return nil, err
		}
		erc20, err := handlers.NewErc20Handler(cfg.TokenContract, ethClient)
		if err != nil {
			return nil, err
		}
		decimalsCtx, cancel := context.WithTimeout(ctx, cfg.LookupTimeout)
		defer cancel()
		if decimals, err := erc20.Decimals(decimalsCtx); err != nil {
			logger.Warn("could not read token decimals", zap.Error(err))
		} else if int32(decimals) != cfg.TokenDecimals {
			logger.Warn("token decimals differ from configuration",
				zap.Uint8("contract", decimals), zap.Int32("configured", cfg.TokenDecimals))
		}
		return erc20, nil
	}

	client := resty.New().SetTimeout(cfg.LookupTimeout)
	return explorer.NewClient(client, cfg.ExplorerURL, cfg.ChainID, cfg.ExplorerAPIKey, cfg.TokenContract, logger), nil
}
