package main

import (
	"context"
	"database/sql"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "smart_climate/docs"
	"smart_climate/internal/flow"
	"smart_climate/internal/handlers"
	"smart_climate/internal/logger"
	"smart_climate/internal/repository"
	"smart_climate/internal/repository/db"
	"smart_climate/internal/server"
	"smart_climate/internal/service"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const (
	envPrefix       = "SMART_CLIMATE"
	shutdownTimeout = 10 * time.Second
	importTimeout   = 30 * time.Second
)

// @title                       Smart Climate API
// @version                     1.0
// @description                 Setup and options flows for smart_climate configuration entries.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load config.yml; env and defaults still apply when the file is missing
	cfgErr := loadConfig()

	// init logger
	log := logger.Get(logger.Config{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	})
	defer func() { _ = log.Sync() }()
	if cfgErr != nil {
		log.Warnw("config file not loaded; using defaults and environment", "err", cfgErr)
	}

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// register flow handlers explicitly
	registry := flow.NewRegistry()
	if err := flow.RegisterSmartClimate(registry); err != nil {
		log.Fatalw("failed to register flow handler", "err", err)
	}
	log.Infow("flow handlers registered", "domains", registry.Domains())

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, registry, service.Config{
		SigningKey:  viper.GetString("auth.signing_key"),
		TokenTTL:    viper.GetDuration("auth.token_ttl"),
		FlowIdleTTL: viper.GetDuration("flows.idle_ttl"),
	}, log)
	if viper.GetString("auth.signing_key") == "" {
		log.Warnw("auth.signing_key is empty; sign-in and protected routes will fail")
	}
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithStreamInterval(viper.GetDuration("ws.default_interval")))

	// one-shot import of records from a static file
	runImport(services, viper.GetString("import.path"), log)

	// serve until SIGINT/SIGTERM, then shut down gracefully
	if err := serve(server.Config{Port: viper.GetString("port")}, apiHandler, log); err != nil {
		log.Errorw("server stopped with error", "err", err)
	}
}

func loadConfig() error {
	viper.SetDefault("port", "8080")
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("log.format", logger.FormatConsole)
	viper.SetDefault("db.path", "smart_climate.db")
	viper.SetDefault("auth.token_ttl", time.Hour)
	viper.SetDefault("ws.default_interval", time.Second)
	viper.SetDefault("flows.idle_ttl", 30*time.Minute)

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	log.Infow("opening sqlite", "path", dbPath)
	return db.InitDB(dbPath)
}

// runImport feeds the configured import file through the import step.
func runImport(services *service.Service, path string, log *logger.Logger) {
	if path == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	defer cancel()

	rep, err := services.ImportFile(ctx, path)
	if err != nil {
		log.Errorw("import_failed", "path", path, "err", err)
		return
	}
	log.Infow("import_finished", "path", path, "created", rep.Created, "skipped", rep.Skipped, "invalid", rep.Invalid)
}

// serve runs the HTTP server next to a signal watcher; whichever returns
// first stops the other.
func serve(cfg server.Config, handler *handlers.Handler, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &server.Server{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("http server listening", "port", cfg.Port)
		return srv.Run(cfg, handler.InitRoutes())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down server...")

		// allow in-flight requests to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
