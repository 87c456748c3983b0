package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/YourPlantDad/SteamLibraryScraper/internal/config"
	"github.com/YourPlantDad/SteamLibraryScraper/internal/pipeline"
	"github.com/YourPlantDad/SteamLibraryScraper/internal/steam"
)

func main() {
	// Command line flags
	var (
		inputFlag    = flag.String("input", "", "Directory containing scraped library batches (overrides config)")
		outputFlag   = flag.String("output", "", "Notes output directory (overrides config)")
		configFlag   = flag.String("config", "", "Path to config file")
		templateFlag = flag.String("template", "", "Path to a note template file (overrides config)")
		delayFlag    = flag.Float64("delay", 0, "Seconds to wait between storefront requests (overrides config)")
		coverArtFlag = flag.Bool("cover-art", false, "Save cover art next to each note")
		verboseFlag  = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag   = flag.Bool("dry-run", false, "List the batch without processing")
	)

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *inputFlag != "" {
		settings.LibraryPath = *inputFlag
	}
	if *outputFlag != "" {
		settings.OutputPath = *outputFlag
	}
	if *templateFlag != "" {
		settings.TemplatePath = *templateFlag
	}
	if *delayFlag > 0 {
		settings.RequestDelaySeconds = *delayFlag
	}
	if *coverArtFlag {
		settings.SaveCoverArt = true
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	client := steam.NewClient(settings.CountryCode, settings.Language)
	manager := pipeline.NewManager(settings, client, func(event pipeline.ProgressEvent) {
		if event.Level == pipeline.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case pipeline.LevelError:
			prefix = "❌ "
		case pipeline.LevelWarning:
			prefix = "⚠️  "
		case pipeline.LevelSuccess:
			prefix = "✅ "
		case pipeline.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	fmt.Println("🎮 Steam Library Notes")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	if err := manager.Initialize(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *dryRunFlag {
		fmt.Println("\n[Dry run - not processing]")
		for _, title := range manager.GameTitles() {
			fmt.Printf("  • %s\n", title)
		}
		return
	}

	fmt.Println("\n📝 Generating notes...")
	fmt.Println()

	if err := manager.Run(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nRun cancelled. Finished notes are kept; the next run resumes where this one stopped.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during run: %v\n", err)
		os.Exit(1)
	}

	processed, skipped, enriched, basic, failed, total := manager.GetProgress()
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! Processed %d/%d games (%d enriched, %d basic, %d skipped, %d failed)\n",
		processed, total, enriched, basic, skipped, failed)
	fmt.Printf("   Notes written to %s\n", manager.OutputDir())
}
