package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/creedharan/sourcescore/internal/model"
)

// Renderer writes per-article results and the run summary.
type Renderer struct {
	verbose bool
}

// NewRenderer creates a renderer.
func NewRenderer(verbose bool) *Renderer {
	return &Renderer{verbose: verbose}
}

// RenderJSON writes one result as an indented JSON file.
func (r *Renderer) RenderJSON(result *model.Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if r.verbose {
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	}
	return nil
}

// RenderResult prints one article's outcome to stderr.
func (r *Renderer) RenderResult(result *model.Result) {
	switch result.Status {
	case model.StatusScored:
		fmt.Fprintf(os.Stderr, "scored  %-40s %5.1f  (%d sources)\n",
			truncate(result.ArticleID, 40), *result.FinalScore, len(result.Sources))
	case model.StatusExempt:
		fmt.Fprintf(os.Stderr, "exempt  %-40s        (%s)\n",
			truncate(result.ArticleID, 40), result.Exemption.Reason)
	case model.StatusError:
		fmt.Fprintf(os.Stderr, "error   %-40s        %s\n",
			truncate(result.ArticleID, 40), result.Error)
	}
}

// RenderSummary prints the batch roll-up to stderr.
func (r *Renderer) RenderSummary(summary model.RunSummary) {
	fmt.Fprintf(os.Stderr, "\n%d articles: %d scored, %d exempt, %d errors\n",
		summary.Total, summary.Scored, summary.Exempt, summary.Errors)
	for cat, stat := range summary.ByCategory {
		fmt.Fprintf(os.Stderr, "  %-10s %3d scored, avg %5.1f\n", cat, stat.Count, stat.AvgScore)
	}
}

// Summarize aggregates results into a run summary.
func Summarize(results []*model.Result) model.RunSummary {
	summary := model.RunSummary{
		Total:      len(results),
		ByCategory: make(map[string]model.CatStat),
	}
	totals := make(map[string]float64)
	for _, res := range results {
		switch res.Status {
		case model.StatusScored:
			summary.Scored++
			if res.Score != nil {
				stat := summary.ByCategory[res.Score.Category]
				stat.Count++
				totals[res.Score.Category] += res.Score.FinalScore
				summary.ByCategory[res.Score.Category] = stat
			}
		case model.StatusExempt:
			summary.Exempt++
		case model.StatusError:
			summary.Errors++
		}
	}
	for cat, stat := range summary.ByCategory {
		if stat.Count > 0 {
			stat.AvgScore = totals[cat] / float64(stat.Count)
			summary.ByCategory[cat] = stat
		}
	}
	return summary
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
