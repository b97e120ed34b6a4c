package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recon-engine/core/config"
	"recon-engine/core/database"
	"recon-engine/core/docstore"
	"recon-engine/core/loader"
	"recon-engine/core/logger"
	"recon-engine/core/middleware/auth"
	"recon-engine/core/middleware/rayid"
	"recon-engine/core/storage"

	"recon-engine/feature/recon"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "recon-engine/docs/swagger"
)

// @title Recon Engine API
// @version 1.0
// @description API for reconciling business documents against configurable rules.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server, selects the document store backend, and preloads rules.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Select the document store backend
		store, err := buildStore(cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize document store", zap.Error(err))
		}
		if ttl := cfg.Docstore.CacheTTLSeconds; ttl > 0 {
			store = docstore.NewCached(store, time.Duration(ttl)*time.Second)
			logg.Info("Document store cache enabled", zap.Int("ttl_seconds", ttl))
		}

		// 4. Initialize the reconciliation feature and preload rules
		feature := recon.NewFeature(store, logg)
		if cfg.Rules.Path != "" {
			count, err := recon.LoadRulesFile(context.Background(), feature.Service(), cfg.Rules.Path)
			if err != nil {
				logg.Fatal("Failed to preload rules", zap.Error(err), zap.String("path", cfg.Rules.Path))
			}
			logg.Info("Rules preloaded", zap.Int("count", count), zap.String("path", cfg.Rules.Path))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// RayID must be first to trace everything.
		app.Use(rayid.New())

		// Request logging with ray-id correlation.
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Load Features
		mgr := loader.NewManager(logg)
		mgr.Register(feature)
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// buildStore constructs the document store selected by configuration.
func buildStore(cfg *config.Config, logg *zap.Logger) (docstore.Store, error) {
	switch cfg.Docstore.Backend {
	case docstore.BackendDB:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		store := docstore.NewDB(db)
		if err := store.Migrate(); err != nil {
			return nil, err
		}
		logg.Info("Using database document store", zap.String("database", cfg.Database.Name))
		return store, nil

	case docstore.BackendObject:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		logg.Info("Using object storage document store", zap.String("bucket", cfg.Storage.Bucket))
		return docstore.NewObject(client, cfg.Storage.Bucket), nil

	case docstore.BackendMemory:
		store := docstore.NewMemory()
		if cfg.Docstore.FixturePath != "" {
			f, err := os.Open(cfg.Docstore.FixturePath)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			if err := store.LoadFixture(f); err != nil {
				return nil, err
			}
		}
		logg.Info("Using in-memory document store", zap.String("fixture", cfg.Docstore.FixturePath))
		return store, nil

	default:
		return nil, fmt.Errorf("unknown docstore backend %q", cfg.Docstore.Backend)
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
