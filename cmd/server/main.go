package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/fileforge/backend/internal/api"
	"github.com/fileforge/backend/internal/config"
	"github.com/fileforge/backend/internal/convert"
	"github.com/fileforge/backend/internal/ratelimit"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configPath := os.Getenv(config.EnvConfigPath)
	if configPath == "" {
		configPath = "./convertd.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// Initialize the rate limiter and evict stale client entries in the
	// background so the map stays bounded under many distinct clients.
	limiter := ratelimit.New(cfg.Limits.RateLimit, cfg.RateWindow())
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval())
		defer ticker.Stop()
		for range ticker.C {
			if n := limiter.Sweep(time.Now()); n > 0 {
				fmt.Printf("Rate limiter sweep: evicted %d stale client(s)\n", n)
			}
		}
	}()

	office := &convert.OfficeConverter{
		Binary:     cfg.Convert.SofficePath,
		ScratchDir: cfg.Convert.ScratchDirectory,
		Timeout:    cfg.ConvertTimeout(),
		Logf: func(format string, args ...interface{}) {
			fmt.Printf(format+"\n", args...)
		},
	}

	handlers := api.NewHandlers(&api.Dependencies{
		Config:  cfg,
		Limiter: limiter,
		Office:  office,
		Version: Version,
	})

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	// Outer guard only; the per-file ceilings are enforced mid-stream by
	// the ingestion pipeline.
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, handlers)

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	fmt.Printf("\n")
	fmt.Printf("File Conversion Server\n")
	fmt.Printf("  Version:    %s (built %s)\n", Version, BuildTime)
	fmt.Printf("  Listen:     http://%s\n", cfg.GetServerAddr())
	fmt.Printf("  Scratch:    %s\n", cfg.Convert.ScratchDirectory)
	fmt.Printf("  Converter:  %s\n", cfg.Convert.SofficePath)
	fmt.Printf("  Rate limit: %d req / %s per client\n", cfg.Limits.RateLimit, cfg.RateWindow())
	fmt.Printf("\n")

	e.Logger.Fatal(e.StartServer(s))
}
