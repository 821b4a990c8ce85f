package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/fabdl/fabdl/internal/auth"
	"github.com/fabdl/fabdl/internal/config"
	"github.com/fabdl/fabdl/internal/download"
	"github.com/fabdl/fabdl/internal/fab"
	"github.com/fabdl/fabdl/internal/manifest"
	"github.com/fabdl/fabdl/internal/model"
)

func main() {
	var (
		configFlag   = flag.String("config", "", "Path to settings file (JSON)")
		outputFlag   = flag.String("output", "", "Output directory (overrides config)")
		sortFlag     = flag.String("sort", "", "Library sort order (overrides config)")
		uidsFlag     = flag.String("uid", "", "Comma-separated asset UIDs to download (default: all)")
		listFlag     = flag.Bool("list", false, "List library contents without downloading")
		dryRunFlag   = flag.Bool("dry-run", false, "Fetch library and report what would be downloaded")
		validateFlag = flag.Bool("validate", false, "Validate downloaded manifests against the schema")
		insecureFlag = flag.Bool("insecure", false, "Skip TLS certificate verification")
		delayFlag    = flag.Float64("delay", -1, "Inter-request delay in seconds (overrides config)")
		verboseFlag  = flag.Bool("verbose", false, "Show debug output")
	)

	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	if *verboseFlag {
		logger.SetLevel(log.DebugLevel)
	}

	if *configFlag == "" {
		fmt.Println("fabdl - download entitled asset manifests from your marketplace library")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  fabdl -config <settings.json> [options]")
		fmt.Println()
		fmt.Println("The settings file supplies endpoint URLs and authentication cookies.")
		fmt.Println("For interactive mode, use: fabdl-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	settings, err := config.Load(*configFlag)
	if err != nil {
		logger.Fatal("loading settings", "err", err)
	}
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *sortFlag != "" {
		settings.SortBy = *sortFlag
	}
	if *insecureFlag {
		settings.VerifySSL = false
	}
	if *delayFlag >= 0 {
		settings.RateLimitDelaySeconds = *delayFlag
	}
	if *validateFlag {
		settings.ValidateManifests = true
	}

	provider, err := auth.NewCookieProvider(settings.ToCookieConfig())
	if err != nil {
		logger.Fatal("configuring transport", "err", err)
	}
	client := fab.NewClient(provider, fab.WithRequestDelay(settings.RateLimitDelay()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("interrupted, cancelling")
		cancel()
	}()

	logger.Info("fetching library", "sort", settings.SortBy)
	library, err := client.GetLibrary(ctx, settings.SortBy)
	if err != nil {
		switch {
		case fab.IsAuthentication(err):
			logger.Fatal("authentication failed, refresh your cookies", "err", err)
		case fab.IsNetwork(err):
			logger.Fatal("network error", "err", err)
		default:
			logger.Fatal("fetching library", "err", err)
		}
	}
	logger.Info("library fetched", "assets", library.Len(), "total", library.TotalCount)

	if *listFlag {
		printLibrary(library)
		return
	}

	assets, err := selectAssets(library, *uidsFlag)
	if err != nil {
		logger.Fatal("selecting assets", "err", err)
	}

	if *dryRunFlag {
		logger.Info("dry run", "would_download", len(assets), "output", settings.OutputDir)
		for _, asset := range assets {
			fmt.Printf("  %s  %s\n", asset.UID, asset.Title)
		}
		return
	}

	manager := download.NewManager(client, buildParser(settings),
		download.WithFormatCode(settings.FormatCode),
		download.WithPlatform(settings.Platform))

	outcomes := manager.DownloadManifests(ctx, assets, settings.OutputDir,
		func(asset *model.Asset, status download.Status) {
			switch status {
			case download.StatusFailed:
				logger.Error("download failed", "asset", asset.Title)
			case download.StatusCompleted:
				logger.Info("downloaded", "asset", asset.Title)
			default:
				logger.Debug(string(status), "asset", asset.Title)
			}
		})

	succeeded := 0
	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			succeeded++
		} else {
			logger.Error("failure", "asset", outcome.AssetUID, "reason", outcome.FailureReason())
		}
	}
	logger.Info("batch complete", "succeeded", succeeded, "failed", len(outcomes)-succeeded)

	if settings.ValidateManifests {
		if err := validateOutcomes(ctx, logger, outcomes); err != nil {
			logger.Fatal("validation", "err", err)
		}
	}

	if succeeded < len(outcomes) {
		os.Exit(1)
	}
}

func buildParser(settings *config.Settings) manifest.Parser {
	return manifest.NewJSONParser(settings.ValidateManifests)
}

func printLibrary(library *model.Library) {
	for _, asset := range library.Assets {
		created := ""
		if !asset.CreatedAt.IsZero() {
			created = asset.CreatedAt.Format("2006-01-02")
		}
		fmt.Printf("%-36s  %-10s  %-10s  %s\n", asset.UID, asset.Status, created, asset.Title)
	}
	fmt.Printf("\n%d assets (server total %d)\n", library.Len(), library.TotalCount)
}

// selectAssets narrows the library to the requested UIDs, or returns all
// assets when none were requested. Unknown UIDs are an error rather than
// a silent skip.
func selectAssets(library *model.Library, uids string) ([]*model.Asset, error) {
	if uids == "" {
		return library.Assets, nil
	}

	var selected []*model.Asset
	for _, uid := range strings.Split(uids, ",") {
		uid = strings.TrimSpace(uid)
		if uid == "" {
			continue
		}
		asset := library.FindByUID(uid)
		if asset == nil {
			return nil, fmt.Errorf("asset %q not in library", uid)
		}
		selected = append(selected, asset)
	}
	return selected, nil
}

// validateOutcomes parses every successful outcome concurrently. This is
// local disk/CPU work, so unlike the network pipeline it fans out.
func validateOutcomes(ctx context.Context, logger *log.Logger, outcomes []*download.Outcome) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, outcome := range outcomes {
		if !outcome.Succeeded() {
			continue
		}
		g.Go(func() error {
			parsed, err := outcome.Load()
			if err != nil {
				return fmt.Errorf("asset %s: %w", outcome.AssetUID, err)
			}
			logger.Debug("manifest valid",
				"asset", outcome.AssetUID,
				"app", parsed.AppName,
				"files", len(parsed.Files))
			return nil
		})
	}

	return g.Wait()
}
