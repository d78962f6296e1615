package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/vendorhub/internal/config"
	"github.com/georgemunganga/vendorhub/internal/db"
	"github.com/georgemunganga/vendorhub/internal/events"
	"github.com/georgemunganga/vendorhub/internal/logging"
	"github.com/georgemunganga/vendorhub/internal/modules/auth"
	"github.com/georgemunganga/vendorhub/internal/modules/catalog"
	"github.com/georgemunganga/vendorhub/internal/modules/product"
	"github.com/georgemunganga/vendorhub/internal/modules/sale"
	"github.com/georgemunganga/vendorhub/internal/modules/store"
	"github.com/georgemunganga/vendorhub/internal/modules/user"
)

// app holds the wired router and the connections it must release on exit.
type app struct {
	router  http.Handler
	closers []io.Closer
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
}

type repositories struct {
	users    user.Repository
	stores   store.Repository
	catalog  catalog.Repository
	products product.Repository
	sales    sale.Repository
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	a := &app{}
	fail := func(err error) (*app, error) {
		a.Close()
		return nil, err
	}

	// ── Storage ─────────────────────────────────────────────
	var repos repositories
	switch cfg.Storage {
	case config.StoragePostgres:
		sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fail(err)
		}
		a.closers = append(a.closers, sqlDB)
		if err := db.Migrate(ctx, sqlDB); err != nil {
			return fail(err)
		}
		repos = postgresRepositories(sqlDB)
		logger.Info("connected to postgres")
	default:
		repos = memoryRepositories()
	}

	// ── Sessions ────────────────────────────────────────────
	var sessions auth.SessionStore
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		client, err := auth.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fail(err)
		}
		a.closers = append(a.closers, client)
		sessions = auth.NewRedisSessionStore(client)
		logger.Info("sessions stored in redis", "addr", cfg.RedisAddr)
	default:
		sessions = auth.NewMemorySessionStore()
	}

	// ── Events ──────────────────────────────────────────────
	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers)
		a.closers = append(a.closers, kp)
		publisher = kp
		logger.Info("publishing events to kafka", "brokers", cfg.KafkaBrokers)
	}

	// ── Services ────────────────────────────────────────────
	userService := user.NewService(repos.users, user.BcryptHasher{Cost: bcrypt.DefaultCost})
	authService := auth.NewService(userService, sessions, cfg.SessionSecret, cfg.SessionMaxAge)
	storeService := store.NewService(repos.stores)
	catalogService := catalog.NewService(repos.catalog)
	productService := product.NewService(repos.products, storeService, catalogService, publisher)
	saleService := sale.NewService(repos.sales, storeService, productService, publisher)

	if cfg.SeedCatalog {
		if err := catalogService.Seed(logging.IntoContext(ctx, logger)); err != nil {
			return fail(fmt.Errorf("seed catalog: %w", err))
		}
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.Middleware(logger))
	router.Use(middleware.Recoverer)
	router.Use(auth.Middleware(authService))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	auth.NewHandler(authService, auth.HandlerOptions{
		SecureCookie:    cfg.CookieSecure,
		AdminSignupOpen: cfg.AdminSignupOpen,
	}).RegisterRoutes(router)
	store.NewHandler(storeService).RegisterRoutes(router)
	catalog.NewHandler(catalogService).RegisterRoutes(router)
	product.NewHandler(productService).RegisterRoutes(router)
	sale.NewHandler(saleService).RegisterRoutes(router)

	a.router = router
	return a, nil
}

func memoryRepositories() repositories {
	return repositories{
		users:    user.NewMemoryRepository(),
		stores:   store.NewMemoryRepository(),
		catalog:  catalog.NewMemoryRepository(),
		products: product.NewMemoryRepository(),
		sales:    sale.NewMemoryRepository(),
	}
}

func postgresRepositories(sqlDB *sql.DB) repositories {
	return repositories{
		users:    user.NewPostgresRepository(sqlDB),
		stores:   store.NewPostgresRepository(sqlDB),
		catalog:  catalog.NewPostgresRepository(sqlDB),
		products: product.NewPostgresRepository(sqlDB),
		sales:    sale.NewPostgresRepository(sqlDB),
	}
}
