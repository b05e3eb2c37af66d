package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rokuso/mangadl/internal/config"
	"github.com/rokuso/mangadl/internal/download"
	"github.com/rokuso/mangadl/internal/export"
)

func main() {
	// Command line flags
	var (
		titleFlag        = flag.String("title", "", "Title ID(s) to download (comma- or space-separated)")
		outputFlag       = flag.String("output", "", "Output directory (overrides config)")
		formatFlag       = flag.String("format", "", fmt.Sprintf("Export format, one of %v (overrides config)", export.Formats()))
		configFlag       = flag.String("config", "", "Path to config file")
		chapterTitleFlag = flag.Bool("chapter-title", false, "Add chapter titles to file names")
		comicInfoFlag    = flag.Bool("comic-info", false, "Embed ComicInfo.xml metadata in cbz output")
		beginFlag        = flag.Int("begin", 0, "First chapter number to download (0 = from the start)")
		endFlag          = flag.Int("end", 0, "Last chapter number to download (0 = to the end)")
		verboseFlag      = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag       = flag.Bool("dry-run", false, "Resolve chapters without downloading")
	)

	flag.Parse()

	// CLI mode - require title ID
	if *titleFlag == "" && flag.NArg() == 0 {
		fmt.Println("mangadl - Download and package manga chapters")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  mangadl -title <ID> [options]")
		fmt.Println("  mangadl <ID> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: mangadl-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

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
	if *outputFlag != "" {
		settings.Destination = *outputFlag
	}
	if *formatFlag != "" {
		settings.SaveFormat = *formatFlag
	}
	if *chapterTitleFlag {
		settings.AddChapterTitle = true
	}
	if *comicInfoFlag {
		settings.WriteComicInfo = true
	}
	if *beginFlag > 0 {
		settings.ChapterBegin = *beginFlag
	}
	if *endFlag > 0 {
		settings.ChapterEnd = *endFlag
	}

	// Get title IDs
	titles := *titleFlag
	if titles == "" && flag.NArg() > 0 {
		titles = flag.Arg(0)
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
	manager := download.NewManager(settings, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "✗ "
		case download.LevelWarning:
			prefix = "! "
		case download.LevelSuccess:
			prefix = "✓ "
		case download.LevelInfo:
			prefix = "› "
		default:
			prefix = "  "
		}

		fmt.Println(prefix + event.Message)
	})

	// Initialize
	fmt.Println("mangadl")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	if err := manager.Initialize(ctx, titles); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	if *dryRunFlag {
		fmt.Println("\n[Dry run - not downloading]")
		for _, name := range manager.GetChapterNames() {
			fmt.Println("  " + name)
		}
		return
	}

	// Start downloads
	fmt.Println("\nStarting downloads...")
	fmt.Println()

	if err := manager.StartDownloads(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nDownload cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during download: %v\n", err)
		os.Exit(1)
	}

	received, pages, chaptersDone, chaptersTotal := manager.GetProgress()
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("Complete! Exported %d/%d chapters, %d pages (%.2f MB)\n",
		chaptersDone, chaptersTotal, pages, float64(received)/1024/1024)
}
