package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/careport/careport/internal/config"
	"github.com/careport/careport/internal/domain/appointment"
	"github.com/careport/careport/internal/domain/dashboard"
	"github.com/careport/careport/internal/domain/labreport"
	"github.com/careport/careport/internal/domain/person"
	"github.com/careport/careport/internal/domain/prescription"
	"github.com/careport/careport/internal/domain/request"
	"github.com/careport/careport/internal/domain/vitals"
	"github.com/careport/careport/internal/platform/auth"
	"github.com/careport/careport/internal/platform/blobstore"
	"github.com/careport/careport/internal/platform/cache"
	"github.com/careport/careport/internal/platform/db"
	"github.com/careport/careport/internal/platform/idgen"
	"github.com/careport/careport/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "careport-server",
		Short: "Care coordination portal API server",
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
		Short: "Start the API server",
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

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
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

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
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
		Short: "Create one development account per role",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			people := person.NewRepoPG(pool)
			gen := idgen.New(people)

			seeds := []struct {
				role person.Role
				name string
			}{
				{person.RolePatient, "Dev Patient"},
				{person.RoleDoctor, "Dev Doctor"},
				{person.RoleLabTechnician, "Dev Lab Technician"},
				{person.RolePharmacist, "Dev Pharmacist"},
			}
			for _, s := range seeds {
				roleID, err := gen.Generate(ctx, s.role)
				if err != nil {
					return fmt.Errorf("generate role id for %s: %w", s.role, err)
				}
				p := &person.Person{
					Role:     s.role,
					RoleID:   roleID,
					LoginID:  roleID,
					FullName: s.name,
				}
				if err := people.Create(ctx, p); err != nil {
					return fmt.Errorf("seed %s: %w", s.role, err)
				}
				fmt.Printf("%-14s %s  %s\n", s.role, p.ID, roleID)
			}
			return nil
		},
	}
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	views, err := cache.New(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure redis cache")
	}
	defer views.Close()
	if views != nil {
		if err := views.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable; dashboard caching degraded")
		} else {
			logger.Info().Msg("connected to redis")
		}
	}

	uploads, err := blobstore.NewDiskStore(cfg.UploadDir, cfg.UploadBaseURL, cfg.UploadMaxBytes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare upload directory")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware([]byte(cfg.AuthSecret)))
	}

	e.GET("/healthz", db.HealthHandler(pool))
	e.Static(cfg.UploadBaseURL, cfg.UploadDir)

	// Repositories
	peopleRepo := person.NewRepoPG(pool)
	requestRepo := request.NewRepoPG(pool)
	prescriptionRepo := prescription.NewRepoPG(pool)
	reportRepo := labreport.NewRepoPG(pool)
	vitalsRepo := vitals.NewRepoPG(pool)
	apptRepo := appointment.NewRepoPG(pool)

	// Services
	resolver := person.NewResolver(peopleRepo)
	requestSvc := request.NewService(requestRepo, resolver)
	scheduler := appointment.NewScheduler(apptRepo)
	prescriptionSvc := prescription.NewService(prescriptionRepo, resolver, scheduler, requestSvc, cfg.PrescriptionValidDays)
	reportSvc := labreport.NewService(reportRepo, resolver, requestSvc)
	vitalsSvc := vitals.NewService(vitalsRepo, resolver)
	dashboardSvc := dashboard.NewService(peopleRepo, resolver, requestRepo, prescriptionRepo, reportRepo, vitalsRepo, apptRepo)

	// Routes
	apiV1 := e.Group("/api/v1")
	person.NewHandler(resolver).RegisterRoutes(apiV1)
	request.NewHandler(requestSvc).RegisterRoutes(apiV1)
	prescription.NewHandler(prescriptionSvc).RegisterRoutes(apiV1)
	labreport.NewHandler(reportSvc).RegisterRoutes(apiV1)
	vitals.NewHandler(vitalsSvc).RegisterRoutes(apiV1)
	dashboard.NewHandler(dashboardSvc, views).RegisterRoutes(apiV1)
	blobstore.NewHandler(uploads).RegisterRoutes(apiV1)

	// Start with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
