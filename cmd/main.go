package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe_share/internal/handlers"
	"recipe_share/internal/logger"
	"recipe_share/internal/repository"
	"recipe_share/internal/repository/db"
	"recipe_share/internal/server"
	"recipe_share/internal/service"

	"github.com/spf13/viper"
)

const (
	defaultPort       = "8080"
	defaultDBPath     = "recipe_share.db"
	shutdownTimeout   = 10 * time.Second
	defaultSessionTTL = 24 * time.Hour
)

func main() {
	// load config.yml first so the log level is honored
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	// open DB
	database, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(database)
	services := service.NewService(repos, authConfig())
	apiHandler := handlers.NewHandler(services, log, cookieConfig())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	// allow overriding the cookie signing key without touching the file
	_ = viper.BindEnv("session.signing_key", "SESSION_SIGNING_KEY")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", defaultDBPath)
		dbPath = defaultDBPath
	}
	return db.InitDB(dbPath)
}

func authConfig() service.AuthConfig {
	ttl := viper.GetDuration("session.ttl")
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return service.AuthConfig{
		SigningKey: []byte(viper.GetString("session.signing_key")),
		SessionTTL: ttl,
	}
}

func cookieConfig() handlers.CookieConfig {
	ttl := viper.GetDuration("session.ttl")
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return handlers.CookieConfig{
		Name:   viper.GetString("session.cookie_name"),
		MaxAge: int(ttl.Seconds()),
		Secure: viper.GetBool("session.cookie_secure"),
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = defaultPort
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
