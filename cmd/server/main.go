// @title           contactbook API
// @version         1.0
// @description     Contact book backend.
// @description     Provides user registration, JWT login and per-user contact storage.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа серверного приложения contactbook.
//
// Команды:
//   - serve (по умолчанию): поднимает HTTP(S)-сервер;
//   - migrate up|down: применяет или откатывает миграции и выходит.
//
// Пакет отвечает за сборку зависимостей (конфиг, логгер, БД, репозитории,
// сервисы, роутер) и graceful shutdown по SIGINT/SIGTERM/SIGQUIT.
package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-contactbook/internal/server/api"
	"github.com/IvanChernomyrdin/go-contactbook/internal/server/config"
	"github.com/IvanChernomyrdin/go-contactbook/internal/server/middleware"
	h "github.com/IvanChernomyrdin/go-contactbook/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-contactbook/internal/server/repository"
	"github.com/IvanChernomyrdin/go-contactbook/internal/server/service"
	"github.com/IvanChernomyrdin/go-contactbook/internal/shared/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "contactbook-server",
		Short:         "contactbook HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "./configs/server.yaml", "path to server.yaml")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP-сервер",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "migrate up|down",
		Short:     "Применить или откатить миграции",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd.Context(), configPath, args[0])
		},
	})
	return cmd
}

// bootstrap читает .env и конфиг, собирает логгер и открывает БД.
func bootstrap(ctx context.Context, configPath string) (*config.Config, *logger.HTTPLogger, *sql.DB, error) {
	// .env необязателен
	envErr := godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Dir:    cfg.Log.Dir,
		File:   cfg.Log.File,
		Stdout: cfg.Log.Stdout,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	if envErr != nil {
		log.Sugar().Debugf("no .env file loaded: %v", envErr)
	}

	db, err := config.OpenDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func migrate(ctx context.Context, configPath, direction string) error {
	_, log, db, err := bootstrap(ctx, configPath)
	if err != nil {
		return err
	}
	defer db.Close()
	defer log.Sync()

	if direction == "down" {
		return config.MigrateDown(db, log)
	}
	return config.MigrateUp(db, log)
}

func serve(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, log, db, err := bootstrap(ctx, configPath)
	if err != nil {
		return err
	}
	defer db.Close()
	defer log.Sync()
	sugar := log.Sugar()

	if cfg.Migrations.Enabled {
		if err := config.MigrateUp(db, log); err != nil {
			return err
		}
	}

	// создаём репы
	opt := repository.WithQueryTimeout(cfg.DB.QueryTimeout)
	repos := service.Repositories{
		Users:    repository.NewUsersRepository(db, opt),
		Contacts: repository.NewContactsRepository(db, opt),
		Health:   repository.NewHealthRepository(db, opt),
	}
	svc, err := service.NewServices(repos, cfg)
	if err != nil {
		return err
	}

	verifier := middleware.NewJWTVerifier(cfg.Auth.JWT.SigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	handler := api.NewHandler(svc, log, verifier)
	handler.MaxBodyBytes = cfg.Server.MaxBodyBytes

	opts := h.Options{
		TrustProxy:    cfg.Server.TrustProxy,
		SecureHeaders: cfg.Security.Headers.Enabled,
		Development:   cfg.Env == "dev",
	}
	if cfg.TLS.Enabled {
		opts.HSTSSeconds = cfg.Security.Headers.HSTSSeconds
	}
	if cfg.Observability.Metrics.Enabled {
		metrics := middleware.NewMetrics()
		if err := metrics.Registerer().Register(collectors.NewDBStatsCollector(db, "contactbook")); err != nil {
			return fmt.Errorf("register db stats collector: %w", err)
		}
		opts.Metrics = metrics
		opts.MetricsPath = cfg.Observability.Metrics.Path
	}
	if cfg.Observability.Pprof.Enabled {
		opts.PprofPrefix = cfg.Observability.Pprof.PathPrefix
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h.NewRouter(handler, opts),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		if cfg.TLS.MinVersion == "1.3" {
			server.TLSConfig.MinVersion = tls.VersionTLS13
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s (tls=%t)", server.Addr, cfg.TLS.Enabled)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	sugar.Info("server gracefully stopped")
	return nil
}
