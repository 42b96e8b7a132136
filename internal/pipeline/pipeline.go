// Package pipeline orchestrates one article's journey: normalize, locate
// quotes, resolve attribution, deduplicate, prescreen, classify, score.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creedharan/sourcescore/internal/cache"
	"github.com/creedharan/sourcescore/internal/classify"
	"github.com/creedharan/sourcescore/internal/exempt"
	"github.com/creedharan/sourcescore/internal/extract"
	"github.com/creedharan/sourcescore/internal/model"
	"github.com/creedharan/sourcescore/internal/score"
)

// Pipeline processes articles end to end. Articles are independent;
// Process never mutates shared state, so one Pipeline may serve many
// workers concurrently.
type Pipeline struct {
	fetcher    *Fetcher
	classifier classify.Classifier
	engine     *score.Engine
	renderer   *Renderer
	cfg        *model.Config
}

// New creates a pipeline from configuration. The classifier may be
// pre-wrapped (caching, test doubles); pass nil to build one from cfg.
func New(cfg *model.Config, classifier classify.Classifier) (*Pipeline, error) {
	if classifier == nil {
		var err error
		classifier, err = classify.NewClassifier(cfg.Classifier, cfg.HTTP)
		if err != nil {
			return nil, fmt.Errorf("init classifier: %w", err)
		}
		if cfg.Classifier.Provider != "" && cfg.Classifier.Provider != "heuristic" {
			classifier = classify.NewRateLimitedClassifier(classifier,
				cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
		}
		if cfg.Cache.Enabled {
			classifier = classify.NewCachedClassifier(classifier, newClassifierCache(cfg.Cache), cfg.Cache.TTL)
		}
	}

	engine, err := score.NewEngine(cfg.Scoring.Policy, cfg)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		fetcher:    NewFetcher(cfg.HTTP),
		classifier: classifier,
		engine:     engine,
		renderer:   NewRenderer(cfg.Output.Verbose),
		cfg:        cfg,
	}, nil
}

// newClassifierCache builds the response cache from configuration.
// A configured directory adds a disk layer under the in-memory one, so
// cached judgments survive across runs.
func newClassifierCache(cfg model.CacheConfig) cache.Cache {
	if cfg.Dir != "" {
		return cache.NewLayeredCache(cfg.TTL, cfg.Dir, cfg.TTL)
	}
	return cache.NewMemoryCache(cfg.TTL, 10*time.Minute)
}

// Renderer returns the pipeline's output renderer.
func (p *Pipeline) Renderer() *Renderer { return p.renderer }

// ScoreURL fetches one article and processes it. Fetch failures are
// terminal per-article errors, recorded, never a batch abort.
func (p *Pipeline) ScoreURL(ctx context.Context, url string) *model.Result {
	article, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return &model.Result{
			ArticleID: slugFromURL(url),
			URL:       url,
			Status:    model.StatusError,
			Error:     err.Error(),
			ScoredAt:  time.Now().UTC(),
		}
	}
	return p.Process(ctx, article)
}

// Process runs the per-article state machine:
//
//	Prescreened -> Exempt            (terminal, score null)
//	Prescreened -> Classified -> Scored (terminal, score present)
//
// Any failure marks the whole article as an error with a recorded
// reason; there is no partially scored state.
func (p *Pipeline) Process(ctx context.Context, article *model.Article) *model.Result {
	result := &model.Result{
		ArticleID: article.ID,
		URL:       article.URL,
		Headline:  article.Headline,
		ScoredAt:  time.Now().UTC(),
	}

	// Category targets are checked before spending a classifier call.
	if _, err := p.cfg.Target(article.Category); err != nil {
		result.Status = model.StatusError
		result.Error = fmt.Sprintf("category %q: %v", article.Category, err)
		return result
	}

	decision := exempt.Prescreen(article, p.engine.Policy().Prescreen)
	if decision.Exempt {
		result.Status = model.StatusExempt
		result.Exemption = &decision
		return result
	}

	doc := extract.NewDocument(article.Paragraphs)
	spans := extract.LocateQuotes(doc)
	resolved := extract.NewResolver(article.Author).ResolveAll(doc, spans)
	voices := extract.Dedupe(doc, resolved)

	sources, flags, err := p.classify(ctx, article, voices)
	if err != nil {
		result.Status = model.StatusError
		result.Error = err.Error()
		return result
	}

	sc, err := p.engine.Score(article, sources, flags)
	if err != nil {
		result.Status = model.StatusError
		result.Error = err.Error()
		return result
	}

	result.Status = model.StatusScored
	result.Sources = sources
	result.Context = &flags
	result.Score = sc
	result.FinalScore = &sc.FinalScore
	return result
}

// classify makes the single external call for an article, under the
// configured timeout. Articles with no quotes skip the call: there are
// no voices to judge and the context flags fall back to the heuristic
// signals.
func (p *Pipeline) classify(ctx context.Context, article *model.Article, voices []extract.Voice) ([]model.Source, model.ContextFlags, error) {
	text := classify.TruncateText(extract.Normalize(article.Text()), p.cfg.Classifier.MaxChars)

	req := classify.Request{
		ArticleText: text,
		Category:    article.Category,
	}
	for _, v := range voices {
		for _, q := range v.Quotes {
			req.Quotes = append(req.Quotes, classify.QuoteHint{
				Candidate: v.Name,
				Quote:     q.Text,
				Anonymous: v.Anonymous,
			})
		}
	}

	classifier := p.classifier
	if len(voices) == 0 {
		classifier = classify.NewHeuristicClassifier()
	}

	timeout := p.cfg.Classifier.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := classifier.Classify(cctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", model.ErrClassifierTimeout, err)
		}
		return nil, model.ContextFlags{}, err
	}

	sources, err := classify.Merge(voices, resp)
	if err != nil {
		return nil, model.ContextFlags{}, err
	}

	flags := model.ContextFlags{
		HasStatistics:  resp.Context.HasStatistics,
		HasTimeline:    resp.Context.HasTimeline,
		HasComparison:  resp.Context.HasComparison,
		HasExplanation: resp.Context.HasExplanation,
	}
	return sources, flags, nil
}
