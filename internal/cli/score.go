package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creedharan/sourcescore/internal/model"
	"github.com/creedharan/sourcescore/internal/pipeline"
	"github.com/creedharan/sourcescore/internal/store"
	"github.com/spf13/cobra"
)

var (
	outputDir   string
	storePath   string
	policyName  string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noRobots    bool
	httpProxy   string
	httpsProxy  string
	clfProvider string
	clfModel    string
	clfTimeout  time.Duration
	clfMaxChars int
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score <url-or-file>",
	Short: "Score a single article's sourcing quality",
	Long: `Score runs the full audit on one article:
- Fetch and parse the page (or load a local article JSON file)
- Run the policy's exemption prescreen
- Locate quotes, resolve attribution, deduplicate sources
- Classify sources via the configured provider
- Compute the composite score with policy gates

Example:
  sourcescore score https://example.com/news/council-row
  sourcescore score article.json --policy ssi-strict
  sourcescore score https://example.com/news/x --classifier openai --model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	// Output flags
	scoreCmd.Flags().StringVar(&outputDir, "output-dir", "./sourcescore-reports", "output directory for result JSON")
	scoreCmd.Flags().StringVar(&storePath, "store", "", "SQLite database path for the result sink (optional)")

	// Scoring flags
	scoreCmd.Flags().StringVar(&policyName, "policy", "ssi-standard", "scoring policy name")

	// HTTP flags
	scoreCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout for the run")
	scoreCmd.Flags().StringVar(&userAgent, "ua", "Sourcescore/0.1 (+https://github.com/creedharan/sourcescore)", "HTTP User-Agent")
	scoreCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	scoreCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the classifier response cache")
	scoreCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks before fetching")
	scoreCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	scoreCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Classifier flags
	scoreCmd.Flags().StringVar(&clfProvider, "classifier", "", "classifier provider (openai, groq, ollama, heuristic)")
	scoreCmd.Flags().StringVar(&clfModel, "model", "", "classifier model name")
	scoreCmd.Flags().DurationVar(&clfTimeout, "classifier-timeout", 30*time.Second, "per-article classifier call timeout")
	scoreCmd.Flags().IntVar(&clfMaxChars, "max-chars", 8000, "max article characters sent to the classifier")
}

// buildConfig assembles runtime configuration from defaults plus flags.
// Shared by score and batch.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.RespectRobots = !noRobots
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Scoring.Policy = policyName
	cfg.Output.Verbose = verbose
	cfg.Output.Dir = outputDir
	cfg.Output.StorePath = storePath

	if clfProvider != "" {
		cfg.Classifier.Provider = clfProvider
		cfg.Classifier.Model = clfModel
		cfg.Classifier.Timeout = clfTimeout
		cfg.Classifier.MaxChars = clfMaxChars

		// API keys come from the environment, never from flags or the
		// config file.
		switch clfProvider {
		case "openai":
			cfg.Classifier.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.Classifier.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "groq":
			cfg.Classifier.APIKey = os.Getenv("GROQ_API_KEY")
			if cfg.Classifier.APIKey == "" {
				return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.Classifier.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}

// openSink opens the SQLite result sink when a path is configured.
// A nil return with nil error means the sink is disabled.
func openSink(cfg *model.Config) (*store.Store, error) {
	if cfg.Output.StorePath == "" {
		return nil, nil
	}
	st, err := store.Open(cfg.Output.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open result store: %w", err)
	}
	return st, nil
}

// persistResult writes one result to directory and sink. Render errors are
// fatal; the caller has nothing useful to do with a result it cannot keep.
func persistResult(p *pipeline.Pipeline, sink *store.Store, cfg *model.Config, res *model.Result) error {
	path := filepath.Join(cfg.Output.Dir, res.ArticleID+".json")
	if err := p.Renderer().RenderJSON(res, path); err != nil {
		return fmt.Errorf("write result %s: %w", res.ArticleID, err)
	}
	if sink != nil {
		if err := sink.Save(res); err != nil {
			return fmt.Errorf("store result %s: %w", res.ArticleID, err)
		}
	}
	return nil
}

func runScore(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scoring: %s\n", target)
		fmt.Fprintf(os.Stderr, "Policy: %s\n", cfg.Scoring.Policy)
		fmt.Fprintln(os.Stderr)
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

	// A local path means a pre-fetched article file; anything else is a URL.
	var results []*model.Result
	if _, statErr := os.Stat(target); statErr == nil {
		articles, err := pipeline.LoadArticles(target)
		if err != nil {
			return fmt.Errorf("load articles: %w", err)
		}
		for _, a := range articles {
			results = append(results, p.Process(ctx, a))
		}
	} else {
		results = append(results, p.ScoreURL(ctx, target))
	}

	for _, res := range results {
		p.Renderer().RenderResult(res)
		if err := persistResult(p, sink, cfg, res); err != nil {
			return err
		}
	}

	if len(results) == 1 && results[0].Status == model.StatusError {
		return fmt.Errorf("score failed: %s", results[0].Error)
	}

	return nil
}
