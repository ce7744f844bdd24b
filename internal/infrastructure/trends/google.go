package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dorisurararara-crypto/auto-blog/internal/config"
	"github.com/dorisurararara-crypto/auto-blog/internal/ports"
)

const searchEndpoint = "https://www.googleapis.com/customsearch/v1"

// Searcher summarizes the top Custom Search hits for a keyword into a
// short trend-context block fed to the generator. It is best-effort:
// missing credentials or any failure produces "".
type Searcher struct {
	apiKey   string
	cx       string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

var _ ports.TrendSearcher = (*Searcher)(nil)

// NewSearcher wires API credentials from configuration.
func NewSearcher(cfg config.TrendsConfig, logger *slog.Logger) *Searcher {
	return &Searcher{
		apiKey:   cfg.APIKey,
		cx:       cfg.CX,
		endpoint: searchEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// Search returns a bullet list of result titles and snippets, or ""
// when the lookup is unavailable.
func (s *Searcher) Search(ctx context.Context, keyword string) string {
	if s.apiKey == "" || s.cx == "" {
		s.debug("trend search credentials missing, skipping")
		return ""
	}

	query := url.Values{}
	query.Set("key", s.apiKey)
	query.Set("cx", s.cx)
	query.Set("q", keyword)
	query.Set("num", "5")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		s.debug("trend search request build failed", "error", err)
		return ""
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.debug("trend search failed", "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.debug("trend search returned non-200", "status", resp.Status)
		return ""
	}

	var payload struct {
		Items []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		s.debug("trend search decode failed", "error", err)
		return ""
	}

	lines := make([]string, 0, len(payload.Items))
	for _, item := range payload.Items {
		lines = append(lines, fmt.Sprintf("- Title: %s\n  Snippet: %s", item.Title, item.Snippet))
	}
	return strings.Join(lines, "\n")
}

func (s *Searcher) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
