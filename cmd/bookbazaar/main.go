package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/bookbazaar/internal/config"
	"github.com/Skotchmaster/bookbazaar/internal/events"
	"github.com/Skotchmaster/bookbazaar/internal/httpserver"
	"github.com/Skotchmaster/bookbazaar/internal/repo"
	"github.com/Skotchmaster/bookbazaar/internal/seed"
	"github.com/Skotchmaster/bookbazaar/internal/service"
	pkgdb "github.com/Skotchmaster/bookbazaar/pkg/db"
	"github.com/Skotchmaster/bookbazaar/pkg/logging"
	loggingmw "github.com/Skotchmaster/bookbazaar/pkg/middleware/logging"
)

type store struct {
	repo  repo.Repository
	ready func(ctx context.Context) error
	close func() error
}

func openStore(ctx context.Context, cfg config.Config) (*store, error) {
	if cfg.StoreDriver == config.StoreMemory {
		return &store{repo: repo.NewMemRepo(), close: func() error { return nil }}, nil
	}

	driver, dsn := pkgdb.DriverSQLite, cfg.DatabaseURL
	if cfg.StoreDriver == config.StorePostgres {
		driver = pkgdb.DriverPostgres
	} else if dsn == "" {
		dsn = pkgdb.MemoryDSN
	}

	db, err := pkgdb.Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	r, err := repo.NewGormRepo(ctx, db)
	if err != nil {
		_ = pkgdb.Close(db)
		return nil, err
	}
	return &store{
		repo: r,
		ready: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func() error { return pkgdb.Close(db) },
	}, nil
}

func newPublisher(brokers []string, logger *slog.Logger) (events.Publisher, func() error) {
	if len(brokers) == 0 {
		logger.Info("kafka disabled, events are dropped")
		return events.Nop{}, func() error { return nil }
	}
	prod, err := events.NewProducer(brokers)
	if err != nil {
		logger.Warn("kafka producer unavailable, events are dropped", "error", err)
		return events.Nop{}, func() error { return nil }
	}
	return prod, prod.Close
}

// corsMiddleware only allows credentialed cross-origin requests from the
// configured origins.
func corsMiddleware(origins []string) echo.MiddlewareFunc {
	if len(origins) == 0 {
		return echomw.CORS()
	}
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     origins,
		AllowCredentials: true,
	})
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := openStore(initCtx, cfg)
	if err != nil {
		cancel()
		log.Fatalf("store open: %v", err)
	}
	if cfg.SeedData {
		seeded, err := seed.Load(initCtx, st.repo)
		if err != nil {
			cancel()
			log.Fatalf("seed: %v", err)
		}
		logger.Info("seed_done", "created", seeded)
	}
	cancel()

	pub, closePub := newPublisher(cfg.KafkaBrokers, logger)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpserver.NewValidator()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Secure())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(corsMiddleware(cfg.CORSOrigins))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc: &service.AuthService{
				Repo:      st.repo,
				Events:    pub,
				JWTSecret: cfg.JWTSecret,
				AccessTTL: cfg.AccessTokenTTL,
			},
			CookieSecure: cfg.CookieSecure,
		},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: st.repo, Events: pub}},
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: st.repo, Events: pub}},
		OrderHandler: &httpserver.OrderHTTP{Svc: &service.OrderService{
			Repo:               st.repo,
			Events:             pub,
			MarkSoldOutOfStock: cfg.CheckoutMarkSold,
		}},
		JWTSecret:    cfg.JWTSecret,
		CookieSecure: cfg.CookieSecure,
		CSRFEnabled:  cfg.CSRFEnabled,
		Ready:        st.ready,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	if err := closePub(); err != nil {
		logger.Error("kafka close", "error", err)
	}
	if err := st.close(); err != nil {
		logger.Error("store close", "error", err)
	}
}
