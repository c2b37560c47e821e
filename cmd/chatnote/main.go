package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/akfldk1028/chatnote/internal/api"
	"github.com/akfldk1028/chatnote/internal/config"
	"github.com/akfldk1028/chatnote/internal/intent"
	"github.com/akfldk1028/chatnote/internal/kakao"
	"github.com/akfldk1028/chatnote/internal/mcp"
	"github.com/akfldk1028/chatnote/internal/memo"
	"github.com/akfldk1028/chatnote/internal/metadata"
	"github.com/akfldk1028/chatnote/internal/provider"
	"github.com/akfldk1028/chatnote/internal/reminder"
	"github.com/akfldk1028/chatnote/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	logger.Info("Starting ChatNote...")

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/chatnote.json"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.String("path", cfgPath), zap.Error(err))
	}
	logger.Info("Config loaded", zap.String("path", cfgPath))

	// Redis is the system of record; no point starting without it
	st, err := store.New(cfg.Redis.URL, logger)
	if err != nil {
		logger.Fatal("redis unavailable", zap.Error(err))
	}

	prov := provider.New(provider.Config{
		ID:       "classifier",
		Type:     cfg.Provider.Type,
		Name:     cfg.Provider.Type,
		Endpoint: cfg.Provider.Endpoint,
		APIKey:   cfg.Provider.APIKey,
		Model:    cfg.Provider.Model,
	}, logger)
	if prov == nil {
		logger.Warn("no provider API key, classification runs rules-only")
	}
	classifier := intent.NewClassifier(prov, cfg.Provider.Model, logger)

	extractor := metadata.NewExtractor(logger)
	svc := memo.NewService(st, classifier, extractor, logger)

	kakaoClient := kakao.NewClient(cfg.Kakao.ClientID, cfg.Kakao.ClientSecret, cfg.Kakao.RedirectURI, logger)

	var notifiers []reminder.Notifier
	notifiers = append(notifiers, reminder.NewKakaoNotifier(kakaoClient, st, logger))
	if cfg.Notify.Discord.Enabled && cfg.Notify.Discord.BotToken != "" {
		dn, err := reminder.NewDiscordNotifier(cfg.Notify.Discord.BotToken, cfg.Notify.Discord.ChannelID, logger)
		if err != nil {
			logger.Warn("discord notifier unavailable", zap.Error(err))
		} else {
			notifiers = append(notifiers, dn)
		}
	}
	if cfg.Notify.Slack.Enabled && cfg.Notify.Slack.BotToken != "" {
		notifiers = append(notifiers, reminder.NewSlackNotifier(cfg.Notify.Slack.BotToken, cfg.Notify.Slack.ChannelID, logger))
	}

	interval := time.Duration(cfg.Reminder.IntervalSeconds) * time.Second
	dispatcher := reminder.NewDispatcher(st, notifiers, interval, logger)

	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	go dispatcher.Start(dispatchCtx)

	mcpServer := mcp.NewServer(st, extractor, logger)

	handler := api.NewHandler(svc, classifier, dispatcher, mcpServer, kakaoClient, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("ChatNote listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down ChatNote...")
	stopDispatch()
	srv.Shutdown(context.Background())
	st.Close()
}
