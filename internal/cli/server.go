package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"onetime-quiz-service/internal/app"
	"onetime-quiz-service/internal/config"
	"onetime-quiz-service/internal/domain"
	"onetime-quiz-service/internal/infra/memory"
	pgrepo "onetime-quiz-service/internal/infra/postgres"
	redisinfra "onetime-quiz-service/internal/infra/redis"
	transport "onetime-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var catalog app.CatalogRepository = memory.NewStaticCatalog(sampleCatalog())
	if pool != nil {
		catalog = pgrepo.NewCatalogRepository(pool)
	}
	if redisClient != nil {
		catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
		catalog = redisinfra.NewCatalogCache(redisClient, catalog, catalogTTL)
	}

	var attempts app.AttemptRepository = memory.NewAttemptStore()
	if pool != nil {
		attempts = pgrepo.NewAttemptRepository(pool)
	}

	var sessions app.SessionResolver = memory.NewStaticSessionResolver(cfg.Auth.Sessions)
	if redisClient != nil {
		sessions = redisinfra.NewSessionStore(redisClient)
	}

	service := app.NewQuizService(catalog, attempts)
	handler := transport.NewQuizHandler(service, sessions)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleCatalog provides a minimal question set so the server runs with no
// Postgres configured; use the seed command to load real content.
func sampleCatalog() []domain.Question {
	return []domain.Question{
		{
			ID:           "q1",
			Text:         "What is 2 + 2?",
			Options:      []string{"3", "4", "5"},
			CorrectIndex: 1,
			Order:        1,
		},
		{
			ID:           "q2",
			Text:         "Which planet is closest to the sun?",
			Options:      []string{"Mercury", "Venus", "Mars"},
			CorrectIndex: 0,
			Order:        2,
		},
		{
			ID:           "q3",
			Text:         "How many continents are there?",
			Options:      []string{"five", "six", "seven"},
			CorrectIndex: 2,
			Order:        3,
		},
	}
}
