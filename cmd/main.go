package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"ecommerce-scraper/extractor"
	"ecommerce-scraper/internal/types"
	"ecommerce-scraper/utils"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	config := types.DefaultConfig()
	if dir := os.Getenv("OUTPUT_DIR"); dir != "" {
		config.OutputDir = dir
	}
	if base := os.Getenv("BASE_URL"); base != "" {
		config.BaseURL = base
	}

	// Parse command line flags
	var (
		outputFlag    = flag.String("output", config.OutputDir, "Directory for the generated CSV files")
		headless      = flag.Bool("headless", config.Headless, "Run the browser headless")
		httpOnly      = flag.Bool("http-only", false, "Use HTTP requests only (no pagination or variant prices)")
		timeout       = flag.Duration("timeout", config.GlobalTimeout, "Overall run timeout")
		actionTimeout = flag.Duration("action-timeout", config.ActionTimeout, "Timeout for a single browser action")
		requestDelay  = flag.Duration("delay", config.RequestDelay, "Delay between HTTP requests")
		maxRetries    = flag.Int("retries", config.MaxRetries, "Maximum HTTP retry attempts")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	config.OutputDir = *outputFlag
	config.Headless = *headless
	config.UseBrowser = !*httpOnly
	config.GlobalTimeout = *timeout
	config.ActionTimeout = *actionTimeout
	config.RequestDelay = *requestDelay
	config.MaxRetries = *maxRetries

	// Setup logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	// Set log level from LOG_LEVEL env if present
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	logger.Debugf("Configuration: browser=%v headless=%v output=%s targets=%d",
		config.UseBrowser, config.Headless, config.OutputDir, len(config.Targets))

	if err := run(config, logger); err != nil {
		logger.Fatalf("Extraction failed: %v", err)
	}
}

// run wires the clients to the catalog extractor and executes the full
// catalog. Deferred cleanup lives here so a fatal exit in main cannot skip
// it.
func run(config *types.Config, logger types.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), config.GlobalTimeout)
	defer cancel()

	var (
		browser    types.Browser
		httpClient *utils.HTTPClient
	)

	if config.UseBrowser {
		session, err := utils.NewSession(config, logger)
		if err != nil {
			return err
		}
		defer session.Close()
		browser = session
	} else {
		httpClient = utils.NewHTTPClient(config, logger)
		defer httpClient.Close()
	}

	catalog := extractor.NewCatalogExtractor(config, logger, browser, httpClient)
	return catalog.Run(ctx)
}
