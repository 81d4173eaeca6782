package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MrNonaRv/jamindan-e-clonic/internal/config"
	"github.com/MrNonaRv/jamindan-e-clonic/internal/domain/account"
	"github.com/MrNonaRv/jamindan-e-clonic/internal/domain/analytics"
	"github.com/MrNonaRv/jamindan-e-clonic/internal/domain/consultation"
	"github.com/MrNonaRv/jamindan-e-clonic/internal/domain/medicine"
	"github.com/MrNonaRv/jamindan-e-clonic/internal/domain/patient"
	"github.com/MrNonaRv/jamindan-e-clonic/internal/geo"
	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/auth"
	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/db"
	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/insights"
	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/middleware"
	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/validation"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "eclinic-server",
		Short: "Barangay e-clinic patient management server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			pool, err := openPool()
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(context.Background())
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			pool, err := openPool()
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default clinic account when no users exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := openPool()
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := account.NewService(account.NewRepoPG(pool))
			if err := svc.EnsureSeed(context.Background()); err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			fmt.Println("Seed account ensured.")
			return nil
		},
	}
}

func openPool() (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return db.NewPool(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	issuer := auth.NewIssuer(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	// Repositories and services
	userRepo := account.NewRepoPG(pool)
	accountSvc := account.NewService(userRepo)
	if err := accountSvc.EnsureSeed(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed default account")
	}

	patientSvc := patient.NewService(patient.NewRepoPG(pool))
	consultationSvc := consultation.NewService(
		consultation.NewRepoPG(pool),
		patientSvc,
		func(ctx context.Context, fn func(context.Context) error) error {
			return db.WithTx(ctx, pool, fn)
		},
	)
	medicineSvc := medicine.NewService(medicine.NewRepoPG(pool), cfg.LowStockThreshold)

	var generator insights.Generator = insights.Disabled{}
	if cfg.InsightsEnabled() {
		generator = insights.NewClient(cfg.InsightsURL, cfg.InsightsAPIKey, cfg.InsightsModel)
		logger.Info().Str("model", cfg.InsightsModel).Msg("insights generation enabled")
	}
	analyticsSvc := analytics.NewService(analytics.NewRepoPG(pool), generator, cfg.LowStockThreshold)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", db.HealthHandler(pool))

	// Public API: credentials plus recovery; tighter rate limit against
	// guessing.
	public := e.Group("/api")
	public.Use(middleware.RateLimit(middleware.LoginRateLimitConfig()))

	// Authenticated API
	api := e.Group("/api")
	api.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
	api.Use(auth.Middleware(issuer))

	account.NewHandler(accountSvc, issuer).RegisterRoutes(public, api)
	patient.NewHandler(patientSvc).RegisterRoutes(api)
	consultation.NewHandler(consultationSvc).RegisterRoutes(api)
	medicine.NewHandler(medicineSvc).RegisterRoutes(api)
	analytics.NewHandler(analyticsSvc, logger).RegisterRoutes(api)
	geo.NewHandler().RegisterRoutes(api)

	if err := registerFrontend(e, cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to configure frontend serving")
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// registerFrontend serves the built SPA from the static dir in production
// and proxies everything that is not an API call to the frontend dev server
// otherwise.
func registerFrontend(e *echo.Echo, cfg *config.Config) error {
	skipper := func(c echo.Context) bool {
		p := c.Request().URL.Path
		return strings.HasPrefix(p, "/api") || strings.HasPrefix(p, "/health")
	}

	if cfg.IsProduction() || cfg.DevServerURL == "" {
		e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
			Skipper: skipper,
			Root:    cfg.StaticDir,
			Index:   "index.html",
			HTML5:   true,
		}))
		return nil
	}

	target, err := url.Parse(cfg.DevServerURL)
	if err != nil {
		return fmt.Errorf("invalid dev server url %q: %w", cfg.DevServerURL, err)
	}
	e.Use(echomw.ProxyWithConfig(echomw.ProxyConfig{
		Skipper:  skipper,
		Balancer: echomw.NewRoundRobinBalancer([]*echomw.ProxyTarget{{URL: target}}),
	}))
	return nil
}
