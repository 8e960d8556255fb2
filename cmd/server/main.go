package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"liteboard/internal/auth"
	"liteboard/internal/config"
	"liteboard/internal/domain/repositories"
	"liteboard/internal/handler"
	"liteboard/internal/repository/cache"
	"liteboard/internal/repository/memory"
	"liteboard/internal/repository/postgres"
	"liteboard/internal/service"
	svcauth "liteboard/internal/service/auth"
)

type storage struct {
	projects repositories.ProjectRepository
	lists    repositories.ListRepository
	entries  repositories.EntryRepository
	tx       repositories.TransactionManager
	close    func()
}

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging, mirrored to a rotating file when LOG_DIR is set
	var out io.Writer = os.Stdout
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, "server", 10)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		out = io.MultiWriter(os.Stdout, f)
	}
	logger := config.NewLogger(out, true, cfg.Debug)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.close()

	// Optional read-through cache for board list documents
	lists := store.lists
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()
		lists = cache.NewListCache(store.lists, rdb, cfg.ListCacheTTL, logger)
		logger.Info("list cache enabled", "ttl", cfg.ListCacheTTL)
	}

	sessions, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, logger)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}
	var verifier auth.SessionVerifier = sessions
	if cfg.JWKSURL != "" {
		jwks, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWKS verifier: %v", err)
		}
		verifier = auth.Chain{sessions, jwks}
		logger.Info("external tokens accepted", "jwks_url", cfg.JWKSURL)
	}
	defer verifier.Close()

	if cfg.DevLoginEnabled() {
		logger.Warn("DEV LOGIN: POST /auth/login issues sessions without a password (NEVER use in production!)")
	}

	authorizer := svcauth.NewOwnerBasedAuthorizer(store.projects)
	router := handler.NewRouter(handler.Services{
		Projects: service.NewProjectService(store.projects, lists, store.entries, store.tx, logger),
		Lists:    service.NewListService(lists, authorizer, logger),
		Entries:  service.NewEntryService(store.entries, authorizer, logger),
	}, sessions, verifier, cfg, logger)

	logger.Info("services initialized")

	// CORS wraps everything so OPTIONS pre-flight never reaches auth
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}

// openStorage connects to postgres when DATABASE_URL is set and falls back
// to the in-memory store otherwise.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory store")
		s := memory.NewStore()
		return &storage{
			projects: memory.NewProjectRepository(s),
			lists:    memory.NewListRepository(s),
			entries:  memory.NewEntryRepository(s),
			tx:       memory.NewTransactionManager(s),
			close:    func() {},
		}, nil
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("database connected", "tables", tables.All())

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	return &storage{
		projects: postgres.NewProjectRepository(repoConfig),
		lists:    postgres.NewListRepository(repoConfig),
		entries:  postgres.NewEntryRepository(repoConfig),
		tx:       postgres.NewTransactionManager(pool, logger),
		close:    pool.Close,
	}, nil
}
