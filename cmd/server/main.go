// Command server runs the task manager HTTP API.
//
// @title                       Task Manager API
// @version                     0.0.1
// @description                 Task management: users with grades, tasks with deadlines and projects, assignee selection.
// @license.name                MIT
// @license.url                 https://opensource.org/licenses/MIT
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"github.com/taskman/taskman-api/internal/api"
	"github.com/taskman/taskman-api/internal/api/handler"
	"github.com/taskman/taskman-api/internal/core/auth"
	"github.com/taskman/taskman-api/internal/core/ports"
	"github.com/taskman/taskman-api/internal/core/service"
	"github.com/taskman/taskman-api/internal/infrastructure/dayoff"
	mongostore "github.com/taskman/taskman-api/internal/infrastructure/db/mongo"
	"github.com/taskman/taskman-api/internal/infrastructure/db/postgres"
	redisstore "github.com/taskman/taskman-api/internal/infrastructure/db/redis"
	"github.com/taskman/taskman-api/internal/pkg/config"
	"github.com/taskman/taskman-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Fatal().Err(err).Msg("server stopped")
	}
}

// stores is the repository set of the active STORE_DRIVER.
type stores struct {
	users    ports.UserRepository
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	pinger   handler.Pinger
	close    func(ctx context.Context) error
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "taskman-api",
	})

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			log.Error().Err(err).Msg("closing store")
		}
	}()

	readiness := map[string]handler.Pinger{cfg.StoreDriver: st.pinger}

	var dayOff ports.DayOffChecker = dayoff.NewClient(cfg.DayOff.BaseURL, cfg.DayOff.Timeout, logger.Component("dayoff"))
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		dayOff = dayoff.NewCached(dayOff, redisstore.NewDayOffCache(rdb, cfg.Redis.CacheTTL), logger.Component("dayoff"))
		readiness["redis"] = redisstore.Pinger{Client: rdb}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("day-off cache enabled")
	}

	tokens := auth.NewTokens([]byte(cfg.Auth.JWTSecret), cfg.Auth.AccessTokenTTL(), time.Now)

	router := api.NewRouter(api.Deps{
		Auth:      service.NewAuthService(st.users, tokens, logger.Component("auth")),
		Users:     service.NewUserService(st.users, logger.Component("users")),
		Tasks:     service.NewTaskService(st.tasks, st.users, st.projects, dayOff, time.Now, logger.Component("tasks")),
		Projects:  service.NewProjectService(st.projects, logger.Component("projects")),
		Readiness: readiness,
		Logger:    log,
	})

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("shut down http server")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return &stores{
			users:    mongostore.NewUserRepository(db),
			tasks:    mongostore.NewTaskRepository(db),
			projects: mongostore.NewProjectRepository(db),
			pinger:   mongostore.Pinger{Client: client},
			close:    client.Disconnect,
		}, nil
	default:
		db, err := postgres.Connect(ctx, cfg.Postgres, log)
		if err != nil {
			return nil, err
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &stores{
			users:    postgres.NewUserRepository(db),
			tasks:    postgres.NewTaskRepository(db),
			projects: postgres.NewProjectRepository(db),
			pinger:   postgres.Pinger{DB: db},
			close:    func(context.Context) error { return db.Close() },
		}, nil
	}
}
