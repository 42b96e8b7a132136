package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/creedharan/sourcescore/internal/model"
)

// Processor scores one article, by URL or as a pre-segmented document.
// Satisfied by pipeline.Pipeline.
type Processor interface {
	ScoreURL(ctx context.Context, url string) *model.Result
	Process(ctx context.Context, article *model.Article) *model.Result
}

// URLJob fetches and scores one URL, respecting the per-domain limiter.
type URLJob struct {
	URL       string
	Processor Processor
	Limiter   *Limiter
}

// Execute runs the job.
func (j *URLJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.URL); err != nil {
			return &ScoreResult{Result: &model.Result{
				ArticleID: j.URL,
				URL:       j.URL,
				Status:    model.StatusError,
				Error:     fmt.Sprintf("rate limit wait: %v", err),
			}}
		}
	}
	return &ScoreResult{Result: j.Processor.ScoreURL(ctx, j.URL)}
}

// ArticleJob scores one already-loaded article.
type ArticleJob struct {
	Article   *model.Article
	Processor Processor
}

// Execute runs the job.
func (j *ArticleJob) Execute(ctx context.Context) Result {
	return &ScoreResult{Result: j.Processor.Process(ctx, j.Article)}
}

// ScoreResult wraps one article's outcome for the pool. Per-article
// failures live inside Result.Status, not here, so a bad article never
// looks like a pool failure.
type ScoreResult struct {
	Result *model.Result
}

// GetError implements the pool result contract.
func (r *ScoreResult) GetError() error {
	return nil
}

// BatchProcessor runs many articles through a Processor with bounded
// concurrency. Article processing is independent; one article's error
// never blocks or corrupts the others' results.
type BatchProcessor struct {
	processor   Processor
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. requestsPerSecond and
// burst bound outbound fetches per domain; zero disables throttling.
func NewBatchProcessor(processor Processor, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, burst)
	}
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// ProcessURLs fetches and scores URLs concurrently.
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*model.Result {
	jobs := make([]Job, len(urls))
	for i, u := range urls {
		jobs[i] = &URLJob{URL: u, Processor: b.processor, Limiter: b.limiter}
	}
	return b.run(ctx, jobs)
}

// ProcessArticles scores pre-loaded articles concurrently.
func (b *BatchProcessor) ProcessArticles(ctx context.Context, articles []*model.Article) []*model.Result {
	jobs := make([]Job, len(articles))
	for i, a := range articles {
		jobs[i] = &ArticleJob{Article: a, Processor: b.processor}
	}
	return b.run(ctx, jobs)
}

func (b *BatchProcessor) run(ctx context.Context, jobs []Job) []*model.Result {
	if len(jobs) == 0 {
		return []*model.Result{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submit from a goroutine while Wait drains, so a batch larger than
	// the channel buffers cannot wedge the pool.
	go func() {
		for _, job := range jobs {
			pool.Submit(job)
		}
		pool.Close()
	}()

	raw := pool.Wait()
	results := make([]*model.Result, 0, len(raw))
	for _, r := range raw {
		results = append(results, r.(*ScoreResult).Result)
	}
	return results
}

// ReadURLsFromFile reads one URL per line, skipping blanks and comments
// and deduplicating.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return urls, nil
}
