package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/brogergvhs/pokepdf/internal/batch"
	"github.com/brogergvhs/pokepdf/internal/config"
	"github.com/brogergvhs/pokepdf/internal/episode"
	"github.com/brogergvhs/pokepdf/internal/extract"
	"github.com/brogergvhs/pokepdf/internal/fetch"
	"github.com/brogergvhs/pokepdf/internal/render"
	"github.com/brogergvhs/pokepdf/internal/ui"
	"github.com/brogergvhs/pokepdf/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagDir       string
	flagBatchSize int
	flagDelay     time.Duration
	flagFonts     []string
	flagUserAgent string
	flagBypassCF  bool
	flagDryRun    bool
)

func init() {
	generateCmd := &cobra.Command{
		Use:   "generate <season>",
		Short: "Fetch a season's episode pages and write batched Traditional Chinese PDFs. Uses the defaults from the selected config, overwritten by CLI flags",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}

	generateCmd.Flags().StringVar(&flagDir, "dir", ".", "data root containing the season directories")
	generateCmd.Flags().IntVar(&flagBatchSize, "batch-size", 0, "episodes per output PDF (default 20)")
	generateCmd.Flags().DurationVar(&flagDelay, "delay", 0, "minimum delay between page requests (default 1s)")
	generateCmd.Flags().StringSliceVar(&flagFonts, "font", nil, "font file to try first (repeatable, ahead of config and system fonts)")
	generateCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	generateCmd.Flags().BoolVar(&flagBypassCF, "bypass-cf", false, "route requests through the Cloudflare bypass transport")
	generateCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show planned batches, don't fetch or render")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	season := args[0]

	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		BatchSize:    flagBatchSize,
		DelayMS:      int(flagDelay.Milliseconds()),
		UserAgent:    flagUserAgent,
		BypassCF:     flagBypassCF,
		FontPaths:    flagFonts,
	})
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}

	fmt.Println("Full config:")
	cfg.Print()
	fmt.Println()

	seasonDir := filepath.Join(flagDir, season)
	urlsFile := filepath.Join(seasonDir, "urls.txt")

	urls, err := util.ReadURLs(urlsFile)
	if err != nil {
		return fmt.Errorf("season %q: %w", season, err)
	}
	if len(urls) == 0 {
		return fmt.Errorf("season %q: urls.txt is empty", season)
	}

	fmt.Printf("Found %d URLs to process\n", len(urls))

	if flagDryRun {
		fmt.Printf("Dry-run: %d batches planned.\n\n", batch.Count(len(urls), cfg.BatchSize))
		for b := range batch.Plan(urls, cfg.BatchSize) {
			fmt.Printf("%3d) %s  (%d episodes)\n", b.Index, b.Filename(season), len(b.URLs))
		}
		return nil
	}

	pdfDir := filepath.Join(seasonDir, "pdf")
	if err := os.MkdirAll(pdfDir, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	// font resolution is global: without glyph coverage no batch can
	// render, so fail before the first request
	renderer, err := render.New(append(cfg.FontPaths, render.DefaultFontPaths()...))
	if err != nil {
		return err
	}
	logSvc.Infof("Using font: %s\n", renderer.FontPath())

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     cfg.Timeout(),
		UserAgent:   util.PickUserAgent(cfg.UserAgent),
		BypassCF:    cfg.BypassCF,
		DebugLogger: logSvc,
	})
	if err != nil {
		return err
	}

	util.SetupInterruptHandler(pdfDir)

	ctx := context.Background()
	fetcher := fetch.New(client, cfg.Delay())
	extractor := extract.New(cfg.Headings)

	pm := ui.NewProgressManager()

	stats := &ui.Stats{}
	start := time.Now()
	total := len(urls)
	processed := 0

	for b := range batch.Plan(urls, cfg.BatchSize) {
		handle := pm.Register(fmt.Sprintf("Part %d", b.Index))
		handle.SetTotal(len(b.URLs))

		records := make([]episode.Record, 0, len(b.URLs))

		for i, u := range b.URLs {
			processed++
			logSvc.Debugf("Processing URL %d/%d: %s\n", processed, total, u)

			rec := fetchEpisode(ctx, fetcher, extractor, u, logSvc, stats)
			records = append(records, rec.Normalized())

			handle.Update(i+1, stats.TotalBytes.Load())
		}

		out := filepath.Join(pdfDir, b.Filename(season))
		if err := renderer.Render(records, out); err != nil {
			// this batch's PDF is lost; later batches may still succeed
			logSvc.Errorf("Batch %d failed: %v\n", b.Index, err)
			handle.MarkDone()
			continue
		}

		handle.MarkDone()
		stats.TotalBatches.Add(1)
		stats.TotalEpisodes.Add(int64(len(records)))
		logSvc.Debugf("Completed batch %d -> %s\n", b.Index, out)
	}

	// flush the bars before the summary block
	pm.Close()

	fmt.Println()
	fmt.Println("Generation Summary:")
	fmt.Printf("Batches:  %d\n", stats.TotalBatches.Load())
	fmt.Printf("Episodes: %d\n", stats.TotalEpisodes.Load())
	fmt.Printf("Degraded: %d\n", stats.Degraded.Load())
	fmt.Printf("Data:     %s\n", util.Human(stats.TotalBytes.Load()))
	fmt.Printf("Time:     %s\n", time.Since(start).Round(time.Second))
	fmt.Println("\nAll done.")

	return nil
}

// fetchEpisode retrieves and extracts one episode. Fetch failures degrade
// to a record with only the URL-derived title; the run always continues.
func fetchEpisode(
	ctx context.Context,
	fetcher *fetch.Fetcher,
	extractor *extract.Extractor,
	u string,
	logSvc *ui.Logger,
	stats *ui.Stats,
) episode.Record {
	raw, err := fetcher.Fetch(ctx, u)
	if err != nil {
		logSvc.Errorf("Fetch failed for %s: %v\n", u, err)
		stats.Degraded.Add(1)

		return episode.Record{
			SourceURL: u,
			Title:     episode.TitleFromURL(u),
		}
	}

	stats.TotalBytes.Add(int64(len(raw)))

	return extractor.Extract(raw, u)
}
