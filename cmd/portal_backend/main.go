package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/superhostingvip/portal_backend/internal/clients/enhance"
	"github.com/superhostingvip/portal_backend/internal/clients/whmcs"
	"github.com/superhostingvip/portal_backend/internal/core/services"
	"github.com/superhostingvip/portal_backend/internal/dto"
	"github.com/superhostingvip/portal_backend/internal/handlers"
	"github.com/superhostingvip/portal_backend/internal/middleware"
	"github.com/superhostingvip/portal_backend/internal/platform/config"
	"github.com/superhostingvip/portal_backend/internal/platform/dbconn"
	"github.com/superhostingvip/portal_backend/internal/repositories/database/pgsql"
	"github.com/superhostingvip/portal_backend/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := dto.RegisterValidations(); err != nil {
		logger.Error("Failed to register request validations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	runMigrations(cfg, logger)

	// Connection manager supervises store health for the lifetime of the
	// process. A failed first probe is not fatal; the manager re-probes on
	// demand and reconnects in the background.
	pgxConn, err := dbconn.NewPgxConn(dbPool)
	if err != nil {
		logger.Error("Failed to create connection probe", slog.String("error", err.Error()))
		os.Exit(1)
	}
	connManager, err := dbconn.NewManager(pgxConn, logger)
	if err != nil {
		logger.Error("Failed to create connection manager", slog.String("error", err.Error()))
		os.Exit(1)
	}
	initCtx, cancelInit := context.WithTimeout(context.Background(), cfg.DBOpTimeout)
	if err := connManager.Initialize(initCtx); err != nil {
		logger.Warn("Initial store health check failed, continuing degraded", slog.String("error", err.Error()))
	}
	cancelInit()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	userService := services.NewUserService(pgsql.NewPgxUserRepository(dbPool))

	// Public routes, login is rate limited per client IP
	loginRate := limiter.Rate{Period: time.Minute, Limit: 10}
	loginLimiter := limiter.New(memory.NewStore(), loginRate)
	authRoutes := r.Group("/auth", middleware.RateLimit(loginLimiter))
	handlers.RegisterAuthRoutes(authRoutes, userService, connManager, cfg)

	setupAPIV1Routes(r, cfg, dbPool, connManager, userService, logger)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, dbPool *pgxpool.Pool, connManager *dbconn.Manager, userService *services.UserService, logger *slog.Logger) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	resolver := services.NewAccessResolver(connManager, logger)

	rateService := services.NewCurrencyRateService(pgsql.NewPgxCurrencyRateRepository(dbPool), connManager, logger)
	handlers.RegisterCurrencyRateRoutes(v1, rateService, resolver)

	profileService := services.NewProfileService(pgsql.NewPgxProfileRepository(dbPool))
	handlers.RegisterProfileRoutes(v1, profileService)

	handlers.RegisterUserRoutes(v1, userService, resolver)

	handlers.RegisterLogoutRoute(v1, userService, connManager, cfg)

	billing := whmcs.NewClient(cfg.WHMCSAPIURL, cfg.WHMCSIdentifier, cfg.WHMCSSecret)
	provisioning := enhance.NewClient(cfg.EnhanceAPIURL, cfg.EnhanceOrgID, cfg.EnhanceAccessToken)
	handlers.RegisterServiceRoutes(v1, billing, provisioning)
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-ID")
	corsCfg.AllowCredentials = true
	return corsCfg
}

func runMigrations(cfg *config.Config, logger *slog.Logger) {
	logger.Info("Running database migrations...")
	// Open a temporary standard sql.DB connection for migrations,
	// using the pgx stdlib driver to match the main pool.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		os.Exit(1)
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		os.Exit(1)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
}
