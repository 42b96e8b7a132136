package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/creedharan/sourcescore/internal/model"
	"github.com/creedharan/sourcescore/internal/util"
)

// Fetcher is the HTTP article collaborator: it turns a URL into a
// paragraph-segmented model.Article. The scoring core itself never
// touches the network.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker // nil when robots checking is disabled
}

// NewFetcher creates a fetcher from HTTP configuration.
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
	}
	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return f
}

// Fetch retrieves and parses one article. Network failures surface as
// ErrFetchUnavailable so the batch records them as per-article errors.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*model.Article, error) {
	if f.robots != nil {
		allowed, _, err := f.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return nil, fmt.Errorf("%w: disallowed by robots.txt: %s", model.ErrFetchUnavailable, rawURL)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrFetchUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d for %s", model.ErrFetchUnavailable, resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", model.ErrFetchUnavailable, err)
	}

	finalURL := resp.Request.URL.String()
	article, err := ParseHTML(string(body), finalURL)
	if err != nil {
		return nil, err
	}
	return article, nil
}

// ParseHTML extracts the article from an HTML document. Paragraphs come
// from the article container when one exists, otherwise from all body
// <p> elements.
func ParseHTML(doc, finalURL string) (*model.Article, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	a := &model.Article{
		ID:  slugFromURL(finalURL),
		URL: finalURL,
	}

	meta := collectMeta(root)
	a.Headline = firstNonEmpty(textOfFirst(root, "h1"), meta["og:title"], textOfFirst(root, "title"))
	a.Category = firstNonEmpty(meta["article:section"], categoryFromURL(finalURL))
	a.Author = strings.TrimPrefix(firstNonEmpty(meta["author"], findByline(root)), "By ")

	container := findArticleContainer(root)
	if container == nil {
		container = root
	}
	for _, p := range elementsByTag(container, "p") {
		text := strings.TrimSpace(nodeText(p))
		if text == "" || strings.HasPrefix(text, "By ") && len(strings.Fields(text)) <= 4 {
			continue
		}
		a.Paragraphs = append(a.Paragraphs, text)
		a.WordCount += len(strings.Fields(text))
	}

	if len(a.Paragraphs) == 0 {
		return nil, fmt.Errorf("%w: no article body found in %s", model.ErrFetchUnavailable, finalURL)
	}
	return a, nil
}

// findArticleContainer prefers the semantic <article> element, then the
// common CMS body wrappers.
func findArticleContainer(root *html.Node) *html.Node {
	if n := firstElement(root, "article"); n != nil {
		return n
	}
	for _, class := range []string{"entry-content", "article-body", "story-body"} {
		if n := firstElementWithClass(root, "div", class); n != nil {
			return n
		}
	}
	return nil
}

func collectMeta(root *html.Node) map[string]string {
	meta := make(map[string]string)
	for _, n := range elementsByTag(root, "meta") {
		var key, content string
		for _, attr := range n.Attr {
			switch attr.Key {
			case "property", "name":
				key = attr.Val
			case "content":
				content = attr.Val
			}
		}
		if key != "" && content != "" {
			meta[key] = content
		}
	}
	return meta
}

func findByline(root *html.Node) string {
	for _, class := range []string{"byline", "author"} {
		for _, tag := range []string{"span", "div", "p", "a"} {
			if n := firstElementWithClass(root, tag, class); n != nil {
				return strings.TrimSpace(nodeText(n))
			}
		}
	}
	return ""
}

func firstElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func firstElementWithClass(n *html.Node, tag, class string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		for _, attr := range n.Attr {
			if attr.Key == "class" && strings.Contains(attr.Val, class) {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstElementWithClass(c, tag, class); found != nil {
			return found
		}
	}
	return nil
}

func elementsByTag(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	if n.Type == html.ElementNode && n.Data == tag {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, elementsByTag(c, tag)...)
	}
	return out
}

func textOfFirst(root *html.Node, tag string) string {
	if n := firstElement(root, tag); n != nil {
		return strings.TrimSpace(nodeText(n))
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// slugFromURL derives a stable article ID from the final URL path.
func slugFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}
	segments := strings.Split(path, "/")
	return segments[len(segments)-1]
}

// categoryFromURL maps the leading URL path segment onto a category name
// ("/sport/..." -> "Sport").
func categoryFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return ""
	}
	switch strings.ToLower(segments[0]) {
	case "sport", "sports":
		return "Sport"
	case "news":
		return "News"
	case "features", "feature", "lifestyle":
		return "Feature"
	}
	return ""
}
