package router

import (
	"errors"
	"fmt"
	"net/http"

	cashsvc "realty-backend/internal/application/cashflows"
	finsvc "realty-backend/internal/application/financings"
	propsvc "realty-backend/internal/application/properties"
	uploadsvc "realty-backend/internal/application/uploads"
	"realty-backend/internal/config"
	"realty-backend/internal/financing"
	"realty-backend/internal/infrastructure/cache"
	"realty-backend/internal/infrastructure/database"
	cashhandler "realty-backend/internal/interfaces/handlers/cashflows"
	finhandler "realty-backend/internal/interfaces/handlers/financings"
	healthhandler "realty-backend/internal/interfaces/handlers/health"
	prophandler "realty-backend/internal/interfaces/handlers/properties"
	uploadhandler "realty-backend/internal/interfaces/handlers/uploads"
	"realty-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrDatabaseURLRequired = errors.New("database url is not configured")

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp wires config, storage and handlers into a Fiber app. The
// returned redis client is nil when REDIS_URL is unset.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, nil, ErrDatabaseURLRequired
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		rdb = redis.NewClient(opt)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
		BodyLimit:               int(cfg.MaxUploadBytes) + 1<<20,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.Env != "production"}))
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.Metrics())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             &gormDBPinger{db: db},
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", hh.Dashboard)
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	calcs := financing.NewRegistry()
	var resultCache cache.ResultCache = cache.Nop{}
	if rdb != nil {
		resultCache = cache.NewRedisCache(rdb, cfg.FinancingCacheTTL)
	}

	ps := &propsvc.Service{DB: db, Calculators: calcs}
	ph := &prophandler.Handlers{Service: ps}
	pg := app.Group("/api/v1/properties")
	pg.Post("/", ph.Create)
	pg.Get("/", ph.List)
	pg.Get("/:id", ph.Get)
	pg.Put("/:id", ph.Update)
	pg.Delete("/:id", ph.Delete)

	cs := &cashsvc.Service{DB: db}
	ch := &cashhandler.Handlers{Service: cs}
	ig := app.Group("/api/v1/incomes")
	ig.Post("/", ch.CreateIncome)
	ig.Put("/:id", ch.UpdateIncome)
	ig.Delete("/:id", ch.DeleteIncome)
	eg := app.Group("/api/v1/expenses")
	eg.Post("/", ch.CreateExpense)
	eg.Put("/:id", ch.UpdateExpense)
	eg.Delete("/:id", ch.DeleteExpense)

	fs := &finsvc.Service{DB: db, Calculators: calcs, Cache: resultCache}
	fh := &finhandler.Handlers{Service: fs}
	fg := app.Group("/api/v1/financing")
	fg.Get("/types", fh.Types)
	fg.Post("/calculate", fh.Calculate)
	fg.Post("/compare", fh.Compare)
	pg.Put("/:id/financing", fh.Attach)
	pg.Delete("/:id/financing", fh.Clear)
	pg.Post("/:id/financing/compare", fh.CompareForProperty)

	var storage uploadsvc.Storage
	if cfg.ObjectStorageEnabled() {
		storage = &uploadsvc.HTTPStorage{BaseURL: cfg.StorageURL, SecretKey: cfg.StorageSecretKey, Bucket: cfg.StorageBucket}
	} else {
		storage = &uploadsvc.DiskStorage{Dir: cfg.UploadDir, PublicPath: cfg.UploadPublicPath}
		app.Static(cfg.UploadPublicPath, cfg.UploadDir)
	}
	us := &uploadsvc.Service{Storage: storage, Properties: ps, MaxBytes: cfg.MaxUploadBytes}
	uh := &uploadhandler.Handlers{Service: us}
	app.Post("/api/v1/uploads/property-image", uh.UploadPropertyImage)

	log.Info().
		Bool("redis", rdb != nil).
		Bool("object_storage", cfg.ObjectStorageEnabled()).
		Msg("router: app created")
	return app, db, rdb, nil
}

// Handler adapts the Fiber app to net/http for serverless runtimes.
func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
