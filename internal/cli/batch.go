package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/creedharan/sourcescore/internal/model"
	"github.com/creedharan/sourcescore/internal/pipeline"
	"github.com/creedharan/sourcescore/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	batchTimeout time.Duration
	fromArticles bool
	rps          float64
	burst        int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Score multiple articles from a file in parallel",
	Long: `Batch processes many articles concurrently:
- Read URLs from an input file (one per line), or article JSON with --articles
- Score articles in parallel with a configurable worker count
- Rate-limit fetches per domain
- Write one result JSON per article plus a run summary

A failed article never stops the batch; it lands in the output as an
error result alongside the scored ones.

Example:
  sourcescore batch urls.txt
  sourcescore batch urls.txt --concurrency 10 --output-dir ./reports
  sourcescore batch corpus.json --articles --policy ssi-strict --store scores.db`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&rps, "rps", 1.0, "per-domain fetch rate limit (requests per second)")
	batchCmd.Flags().IntVar(&burst, "burst", 3, "per-domain rate limit burst size")

	// Input flags
	batchCmd.Flags().BoolVar(&fromArticles, "articles", false, "input file holds article JSON instead of URLs")

	// Shared flags, same vars as the score command
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./sourcescore-reports", "output directory for result JSON")
	batchCmd.Flags().StringVar(&storePath, "store", "", "SQLite database path for the result sink (optional)")
	batchCmd.Flags().StringVar(&policyName, "policy", "ssi-standard", "scoring policy name")
	batchCmd.Flags().DurationVar(&timeout, "fetch-timeout", 30*time.Second, "timeout for individual fetches")
	batchCmd.Flags().StringVar(&userAgent, "ua", "Sourcescore/0.1 (+https://github.com/creedharan/sourcescore)", "HTTP User-Agent")
	batchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the classifier response cache")
	batchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks before fetching")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	batchCmd.Flags().StringVar(&clfProvider, "classifier", "", "classifier provider (openai, groq, ollama, heuristic)")
	batchCmd.Flags().StringVar(&clfModel, "model", "", "classifier model name")
	batchCmd.Flags().DurationVar(&clfTimeout, "classifier-timeout", 30*time.Second, "per-article classifier call timeout")
	batchCmd.Flags().IntVar(&clfMaxChars, "max-chars", 8000, "max article characters sent to the classifier")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency
	cfg.RateLimiting.RequestsPerSecond = rps
	cfg.RateLimiting.BurstSize = burst

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Sourcescore Batch Run\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Policy:       %s\n", cfg.Scoring.Policy)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if cfg.Classifier.Provider != "" {
		fmt.Fprintf(os.Stderr, "  Classifier:   %s/%s\n", cfg.Classifier.Provider, cfg.Classifier.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.New(cfg, nil)
	if err != nil {
		return err
	}

	sink, err := openSink(cfg)
	if err != nil {
		return err
	}
	if sink != nil {
		defer func() { _ = sink.Close() }()
	}

	processor := worker.NewBatchProcessor(p, concurrency, cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	var results []*model.Result
	if fromArticles {
		fmt.Fprintf(os.Stderr, "⚙️  Loading articles...\n")
		articles, err := pipeline.LoadArticles(file)
		if err != nil {
			return fmt.Errorf("load articles: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Loaded %d articles\n\n", len(articles))
		fmt.Fprintf(os.Stderr, "⚙️  Scoring with %d workers...\n\n", concurrency)
		results = processor.ProcessArticles(ctx, articles)
	} else {
		fmt.Fprintf(os.Stderr, "⚙️  Reading URLs...\n")
		urls, err := worker.ReadURLsFromFile(file)
		if err != nil {
			return fmt.Errorf("read URLs: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Loaded %d URLs\n\n", len(urls))
		fmt.Fprintf(os.Stderr, "⚙️  Scoring with %d workers...\n\n", concurrency)
		results = processor.ProcessURLs(ctx, urls)
	}

	for _, res := range results {
		p.Renderer().RenderResult(res)
		if err := persistResult(p, sink, cfg, res); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.ArticleID, err)
		}
	}

	summary := pipeline.Summarize(results)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	p.Renderer().RenderSummary(summary)
	fmt.Fprintf(os.Stderr, "\n  Output:    %s\n\n", cfg.Output.Dir)

	return nil
}
