package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/creedharan/sourcescore/internal/model"
)

// LoadArticles reads pre-segmented articles from a JSON file: either a
// single article object or an array of them. This is the offline article
// collaborator, used for CMS exports and test corpora.
func LoadArticles(path string) ([]*model.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read articles: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	var articles []*model.Article
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &articles); err != nil {
			return nil, fmt.Errorf("parse articles: %w", err)
		}
	} else {
		var one model.Article
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("parse article: %w", err)
		}
		articles = []*model.Article{&one}
	}

	for i, a := range articles {
		if len(a.Paragraphs) == 0 {
			return nil, fmt.Errorf("article %d (%s): no paragraphs", i, a.ID)
		}
		if a.ID == "" {
			a.ID = slugFromURL(a.URL)
		}
		if a.WordCount == 0 {
			for _, p := range a.Paragraphs {
				a.WordCount += len(strings.Fields(p))
			}
		}
	}
	return articles, nil
}
