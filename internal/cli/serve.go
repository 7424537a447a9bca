package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/evcraddock/listings/internal/logging"
	"github.com/evcraddock/listings/internal/property"
	"github.com/evcraddock/listings/internal/web"
)

// serveConfig holds the settings for the serve command.
type serveConfig struct {
	Port      int
	DevMode   bool
	RateLimit float64
	RateBurst int
	Seed      bool
}

func newServeCmd() *cobra.Command {
	var cfg serveConfig
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the listings API",
		Long: `Start an HTTP server for the property listings API. Listings live in memory
and are lost when the server stops.

Flags fall back to LISTINGS_PORT, LISTINGS_DEV, LISTINGS_RATE_LIMIT and
LISTINGS_RATE_BURST, which may also be set in a .env file.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnvFile(envFile); err != nil {
				return err
			}
			return applyServeEnv(cmd, &cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVar(&cfg.Port, "port", 8080, "port to listen on")
	cmd.Flags().BoolVar(&cfg.DevMode, "dev", false, "human-readable debug logging")
	cmd.Flags().Float64Var(&cfg.RateLimit, "rate-limit", 0, "max API requests per second (0 = unlimited)")
	cmd.Flags().IntVar(&cfg.RateBurst, "rate-burst", 20, "burst size when --rate-limit is set")
	cmd.Flags().BoolVar(&cfg.Seed, "seed", false, "preload sample listings")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load (missing file is ignored)")

	return cmd
}

// loadEnvFile loads variables from path without overriding the real
// environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// applyServeEnv fills flags the user did not set from the environment.
func applyServeEnv(cmd *cobra.Command, cfg *serveConfig) error {
	flags := cmd.Flags()

	if v := os.Getenv("LISTINGS_PORT"); v != "" && !flags.Changed("port") {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LISTINGS_PORT %q: %w", v, err)
		}
		cfg.Port = n
	}
	if v := os.Getenv("LISTINGS_DEV"); v != "" && !flags.Changed("dev") {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LISTINGS_DEV %q: %w", v, err)
		}
		cfg.DevMode = b
	}
	if v := os.Getenv("LISTINGS_RATE_LIMIT"); v != "" && !flags.Changed("rate-limit") {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid LISTINGS_RATE_LIMIT %q: %w", v, err)
		}
		cfg.RateLimit = f
	}
	if v := os.Getenv("LISTINGS_RATE_BURST"); v != "" && !flags.Changed("rate-burst") {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LISTINGS_RATE_BURST %q: %w", v, err)
		}
		cfg.RateBurst = n
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", cfg.Port)
	}
	if cfg.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %g", cfg.RateLimit)
	}
	return nil
}

func runServe(ctx context.Context, cfg serveConfig) error {
	logging.Setup(cfg.DevMode)

	store := property.NewStore()
	if cfg.Seed {
		seedStore(store)
		slog.Info("seeded sample listings", "count", store.Len())
	}

	srv := web.NewServer(store, web.Options{
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, cfg.Port)
}

// sampleListings are loaded by serve --seed.
var sampleListings = []property.NewProperty{
	{Title: "Craftsman bungalow", Description: "Updated kitchen, detached garage.", Address: "412 Elm St, Springfield", Price: 325000},
	{Title: "Downtown loft", Address: "88 Market St #5B, Springfield", Price: 289900, Status: property.StatusPending},
	{Title: "Ranch on two acres", Description: "Barn and fenced pasture.", Address: "9100 County Rd 12, Shelbyville", Price: 410000, Status: property.StatusSold},
	{Title: "Starter duplex", Address: "17 Oak Ave, Springfield", Price: 198500},
}

func seedStore(store *property.Store) {
	for _, np := range sampleListings {
		store.Create(np)
	}
}
