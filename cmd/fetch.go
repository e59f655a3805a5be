package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tbenitez/epifetch/internal/bulletins"
	"github.com/tbenitez/epifetch/internal/config"
	"github.com/tbenitez/epifetch/internal/downloader"
	"github.com/tbenitez/epifetch/internal/report"
	"github.com/tbenitez/epifetch/internal/scraper"
	"github.com/tbenitez/epifetch/internal/sources"
	"github.com/tbenitez/epifetch/internal/ui"
	"github.com/tbenitez/epifetch/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagURL   string
	flagRange string
	flagList  string

	// runtime
	flagOutput      string
	flagDelay       int
	flagDryRun      bool
	flagKeepPartial bool

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
)

func init() {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download every bulletin linked from the listing page and write the CSV report. Uses the defaults from the selected config, overwritten by CLI flags",
		RunE:  runFetch,
	}

	// selection
	fetchCmd.Flags().StringVar(&flagURL, "url", "", "bulletin listing page URL")
	fetchCmd.Flags().StringVar(&flagRange, "range", "", "download a range of bulletins by row index (e.g. 5-12)")
	fetchCmd.Flags().StringVar(&flagList, "list", "", "download specific bulletin indices (e.g. 1,3,5)")

	// runtime
	fetchCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for PDFs and the CSV report")
	fetchCmd.Flags().IntVar(&flagDelay, "delay", config.DefaultDelay, "seconds to wait between downloads")
	fetchCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be downloaded, don't download")
	fetchCmd.Flags().BoolVar(&flagKeepPartial, "keep-partial", false, "keep .part files from failed transfers for inspection")

	// headers/auth
	fetchCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	fetchCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	fetchCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		PageURL:      flagURL,
		Output:       flagOutput,
		DelaySeconds: 0,
		KeepPartial:  flagKeepPartial,
		DefaultRange: flagRange,
		DefaultList:  flagList,
		Cookie:       flagCookie,
		CookieFile:   flagCookieFile,
		UserAgent:    flagUserAgent,
	})

	if err != nil {
		return err
	}

	if cmd.Flags().Changed("delay") {
		cfg.DelaySeconds = flagDelay
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}

	fmt.Println("Full config:")
	cfg.Print()
	fmt.Println()

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		UserAgent:   util.PickUserAgent(cfg.UserAgent),
		Cookie:      cfg.Cookie,
		CookieFile:  cfg.CookieFile,
		DebugLogger: logSvc,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	util.SetupInterruptHandler(cfg.Output)

	scr := scraper.New(client, cfg.Debug)

	all, err := scr.GetBulletins(ctx, cfg.PageURL)
	if err != nil {
		logSvc.Errorf("Could not read the listing page: %v\n", err)
		fmt.Println("No download links found.")
		return nil
	}

	if len(all) == 0 {
		fmt.Println("No download links found.")
		return nil
	}

	fmt.Printf("Found %d bulletins on the page.\n\n", len(all))

	selected := bulletins.Filter(all, cfg.DefaultRange, cfg.DefaultList)
	if len(selected) == 0 {
		return fmt.Errorf("no bulletins selected")
	}

	if flagDryRun {
		fmt.Printf("Dry-run: %d bulletins selected.\n\n", len(selected))
		for i, b := range selected {
			fmt.Printf("%3d) %s\n    %s\n", i+1, b.Name, b.URL)
		}
		return nil
	}

	// created only once there is something to download
	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	pm := ui.NewProgressManager()

	stats := &ui.Stats{}
	dl := downloader.New(client, cfg.Debug, cfg.KeepPartial)
	reg := sources.DefaultRegistry(client, dl)
	rep := report.NewLogger()
	start := time.Now()

	processBulletins(ctx, reg, rep, selected, cfg.Output,
		time.Duration(cfg.DelaySeconds)*time.Second, pm, stats, logSvc)

	pm.Close()

	csvPath, err := rep.SaveCSV(cfg.Output)
	if err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}

	fmt.Println()
	fmt.Println("Report saved to:", csvPath)
	fmt.Println()
	fmt.Println("Download Summary:")
	fmt.Printf("Succeeded:   %d\n", stats.Downloaded.Load())
	fmt.Printf("Failed:      %d\n", stats.Failed.Load())
	fmt.Printf("Unsupported: %d\n", stats.Unsupported.Load())
	fmt.Printf("Data:        %s\n", util.Human(stats.TotalBytes.Load()))
	fmt.Printf("Time:        %s\n", time.Since(start).Round(time.Second))
	fmt.Println("\nAll done.")

	return nil
}

// processBulletins walks the selection in page order: resolve a source for
// each link, download or mark it unsupported, record the outcome, then wait
// the courtesy delay before the next item. Failures never stop the loop.
func processBulletins(
	ctx context.Context,
	reg *sources.Registry,
	rep *report.Logger,
	items []bulletins.Bulletin,
	folder string,
	delay time.Duration,
	pm *ui.MPBProgressManager,
	stats *ui.Stats,
	logSvc *ui.Logger,
) {
	// Two rows can share a name; later ones get a numeric suffix so they
	// don't silently overwrite the first within this run.
	seen := map[string]int{}

	for i, b := range items {
		key := strings.ToLower(b.SafeName())
		seen[key]++
		if n := seen[key]; n > 1 {
			b.Name = fmt.Sprintf("%s_%d", b.Name, n)
		}

		outcome := sources.OutcomeUnsupported

		src := reg.Resolve(b.URL)
		if src == nil {
			logSvc.Infof("No source supports %s (%s)\n", b.Name, b.URL)
		} else {
			var ph *ui.ProgressHandle
			if pm != nil {
				ph = pm.Register(b.Name)
			}

			written, err := src.Download(ctx, b, folder, ph)
			ph.MarkDone()

			if err != nil {
				logSvc.Errorf("Download of %s failed: %v\n", b.Name, err)
				outcome = sources.OutcomeFailed
			} else {
				outcome = sources.OutcomeSucceeded
				stats.TotalBytes.Add(written)
			}
		}

		rep.Record(b.Name, outcome)

		switch outcome {
		case sources.OutcomeSucceeded:
			stats.Downloaded.Add(1)
		case sources.OutcomeFailed:
			stats.Failed.Add(1)
		case sources.OutcomeUnsupported:
			stats.Unsupported.Add(1)
		}

		if i == len(items)-1 || delay <= 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}
