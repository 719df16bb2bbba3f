package main

import (
	"context"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"menucup/docs"
	"menucup/internal/auth"
	"menucup/internal/config"
	"menucup/internal/database"
	"menucup/internal/database/migration"
	handlers "menucup/internal/http/handler"
	"menucup/internal/http/middleware"
	"menucup/internal/logging"
	"menucup/internal/mail"
	"menucup/internal/menubuilder"
	"menucup/internal/otel"
	"menucup/internal/repository/postgres"
	"menucup/internal/service"
	"menucup/internal/storage"
	"menucup/internal/web"
)

// @title MenuCup API
// @version 1.0
// @description Restaurant digital menus: public menus, owner management and the menu builder.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		fatal(log, "failed to initialize tracing", err)
	}

	db, err := database.NewPostgres(cfg.Database, log.With("database"))
	if err != nil {
		fatal(log, "failed to connect to database", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		fatal(log, "failed to migrate database", err)
	}

	// Restaurant assets and item photos live in separate public buckets.
	assets, err := storage.NewMinIO(cfg.MinIO, cfg.MinIO.AssetBucket)
	if err != nil {
		fatal(log, "failed to initialize asset storage", err)
	}
	images, err := storage.NewMinIO(cfg.MinIO, cfg.MinIO.ItemBucket)
	if err != nil {
		fatal(log, "failed to initialize item image storage", err)
	}

	sender, err := mail.NewResend(cfg.Email.ResendAPIKey)
	if err != nil {
		fatal(log, "failed to initialize email sender", err)
	}

	restaurantRepo := postgres.NewRestaurantPostgres(db)
	categoryRepo := postgres.NewCategoryPostgres(db)
	itemRepo := postgres.NewItemPostgres(db)
	profileRepo := postgres.NewProfilePostgres(db)

	restaurantSvc := service.NewRestaurantService(restaurantRepo, assets, cfg.PublicBaseURL, log)
	menuSvc := service.NewMenuService(restaurantRepo, categoryRepo, itemRepo, images, log)
	publicSvc := service.NewPublicMenuService(restaurantRepo, categoryRepo, itemRepo, cfg.Menu.ShowUnavailable)
	contactSvc := service.NewContactService(sender, cfg.Email.From, cfg.Email.To, log)

	verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Audience)
	if err != nil {
		fatal(log, "failed to initialize token verifier", err)
	}
	sessions := auth.NewManager(verifier, profileRepo, log)

	builders := menubuilder.NewRegistry(restaurantSvc, menuSvc, menubuilder.PersistMode(cfg.Menu.ReorderPersist), log)
	sessions.OnSignOut(builders.Drop)

	pages, err := web.NewRenderer()
	if err != nil {
		fatal(log, "failed to parse page templates", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		fatal(log, "failed to register metrics", err)
	}

	// Set once before serving; swag reads SwaggerInfo on every docs request.
	host, scheme := swaggerTarget(cfg.PublicBaseURL, cfg.AppHost)
	docs.SwaggerInfo.Host = host
	docs.SwaggerInfo.Schemes = []string{scheme}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:          db,
		Restaurants: restaurantSvc,
		Menu:        menuSvc,
		Public:      publicSvc,
		Contact:     contactSvc,
		Sessions:    sessions,
		Builders:    builders,
		Pages:       pages,
		Metrics:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Docs:        swagger.HandlerDefault,
		Auth:        cfg.Auth,
		Locales:     cfg.Locales,
		PersistMode: cfg.Menu.ReorderPersist,
		Log:         log,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", err, nil)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("tracing shutdown failed", err, nil)
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_starting", logging.Fields{"addr": addr, "reorder_persist": cfg.Menu.ReorderPersist})
	if err := app.Listen(addr); err != nil {
		fatal(log, "failed to start server", err)
	}
}

// swaggerTarget picks the host and scheme the docs advertise. The public base URL
// wins; a bare APP_HOST is served over http.
func swaggerTarget(publicBaseURL, appHost string) (host, scheme string) {
	if u, err := url.Parse(publicBaseURL); err == nil && u.Host != "" {
		return u.Host, u.Scheme
	}
	return appHost, "http"
}

func fatal(log *logging.Logger, msg string, err error) {
	log.Error(msg, err, nil)
	os.Exit(1)
}
