package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"decryptify/internal/chatbot"
	"decryptify/internal/config"
	"decryptify/internal/controllers"
	"decryptify/internal/logging"
	"decryptify/internal/middleware"
	"decryptify/internal/models"
	"decryptify/internal/orchestrator"
	"decryptify/internal/services"
	"decryptify/migrations"
)

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database -----------------------------------------------------------
	db, err := models.Open(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := models.Ping(ctx, db); err != nil {
		return err
	}
	log.Info("database connected")

	if err := models.MigrateFS(db, migrations.FS, "."); err != nil {
		return err
	}
	log.Info("migrations applied")

	// Services -----------------------------------------------------------
	llm := services.NewLLMClient(
		cfg.APIs.OpenAIBaseURL,
		cfg.APIs.OpenAIAPIKey,
		cfg.APIs.OpenAIModel,
		cfg.Limits.LLMRequestsPerMinute,
	)

	gecko := services.NewCoinGeckoClient(cfg.APIs.CoinGeckoAPIKey)

	opts := orchestrator.Options{
		Quotes:   gecko,
		Profiles: gecko,
		Stats:    services.NewGitHubClient(cfg.APIs.GitHubToken),
		Timeout:  cfg.Limits.ProviderTimeout,
		Logger:   log,
	}
	if llm.Configured() {
		opts.Completer = llm
	} else {
		log.Warn("no completion API key configured, running with deterministic scoring")
	}
	analyzer := orchestrator.New(opts)

	store := chatbot.NewStore(cfg.Limits.SessionTTL, cfg.Limits.MaxHistoryTurns)
	defer store.Close()

	var chatCompleter chatbot.Completer
	if llm.Configured() {
		chatCompleter = llm
	}
	bot := chatbot.NewBot(analyzer, chatCompleter, store, log)

	chatService := models.NewChatService(db)

	// Controllers and routes ----------------------------------------------
	auth, err := middleware.NewAuthMiddleware(cfg.Security.APIToken, cfg.Security.BcryptCost)
	if err != nil {
		return err
	}

	chatController := controllers.NewChatController(chatService, bot)
	metaController := controllers.NewMetaController(llm)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", metaController.GetWelcome)
	r.Route("/api", func(r chi.Router) {
		r.Get("/agents", metaController.GetAgents)
		r.Get("/model", metaController.GetModel)

		r.Route("/chats", func(r chi.Router) {
			r.Use(auth.RequireToken)
			r.Post("/create", chatController.PostCreate)
			r.Post("/message", chatController.PostMessage)
			r.Get("/{chatID}/history", chatController.GetHistory)
		})
	})

	// Serve with graceful shutdown ----------------------------------------
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.Server.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
