package affiliate

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dorisurararara-crypto/auto-blog/internal/config"
	"github.com/dorisurararara-crypto/auto-blog/internal/domain"
	"github.com/dorisurararara-crypto/auto-blog/internal/ports"
)

const (
	searchPath = "/v2/providers/affiliate_open_api/apis/openapi/products/search"

	// GMT timestamp layout required by the gateway's signature scheme.
	signedDateLayout = "060102T150405Z"
)

// Client talks to the affiliate gateway using its HMAC request
// signing scheme. Any failure yields an empty result; product
// enrichment never blocks a publish.
type Client struct {
	domain    string
	accessKey string
	secretKey string
	client    *http.Client
	logger    *slog.Logger
	now       func() time.Time
}

var _ ports.AffiliateSearcher = (*Client)(nil)

// NewClient wires gateway credentials from configuration.
func NewClient(cfg config.AffiliateConfig, logger *slog.Logger) *Client {
	return &Client{
		domain:    cfg.Domain,
		accessKey: cfg.AccessKey,
		secretKey: cfg.SecretKey,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
		now:       time.Now,
	}
}

// Search returns up to limit product listings for a keyword, or an
// empty slice on any upstream failure.
func (c *Client) Search(ctx context.Context, keyword string, limit int) []domain.AffiliateItem {
	if c.accessKey == "" || c.secretKey == "" || keyword == "" {
		return nil
	}

	query := "keyword=" + url.QueryEscape(keyword) + "&limit=" + strconv.Itoa(limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.domain+searchPath+"?"+query, nil)
	if err != nil {
		c.warn("affiliate request build failed", "error", err)
		return nil
	}

	signedDate := c.now().UTC().Format(signedDateLayout)
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	req.Header.Set("Authorization", c.authorization(http.MethodGet, searchPath, query, signedDate))

	resp, err := c.client.Do(req)
	if err != nil {
		c.warn("affiliate search failed", "keyword", keyword, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.warn("affiliate search returned non-200", "keyword", keyword, "status", resp.Status)
		return nil
	}

	var payload struct {
		Data any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.warn("affiliate response decode failed", "error", err)
		return nil
	}

	items := collectItems(payload.Data, limit)
	c.debug("affiliate search done", "keyword", keyword, "count", len(items))
	return items
}

// authorization builds the fixed-scheme header: the signature is an
// HMAC-SHA256 hex digest over signedDate + method + path + query.
func (c *Client) authorization(method, path, query, signedDate string) string {
	return fmt.Sprintf("CEA algorithm=HmacSHA256, access-key=%s, signed-date=%s, signature=%s",
		c.accessKey, signedDate, c.sign(method, path, query, signedDate))
}

func (c *Client) sign(method, path, query, signedDate string) string {
	mac := hmac.New(sha256.New, []byte(c.secretKey))
	mac.Write([]byte(signedDate + method + path + query))
	return hex.EncodeToString(mac.Sum(nil))
}

// collectItems tolerates the gateway's sibling response shapes: data
// as a bare list, or a dict keyed by productData or items.
func collectItems(data any, limit int) []domain.AffiliateItem {
	var raw []any
	switch d := data.(type) {
	case []any:
		raw = d
	case map[string]any:
		if list, ok := d["productData"].([]any); ok && len(list) > 0 {
			raw = list
		} else if list, ok := d["items"].([]any); ok {
			raw = list
		}
	default:
		return nil
	}

	items := make([]domain.AffiliateItem, 0, limit)
	for _, entry := range raw {
		if len(items) >= limit {
			break
		}

		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		link := pick(fields, "productUrl", "link")
		name := pick(fields, "productName", "title")
		if link == "" || name == "" {
			continue
		}

		items = append(items, domain.AffiliateItem{
			Name:  name,
			Price: pick(fields, "productPrice", "price"),
			Link:  link,
			Image: pick(fields, "productImage", "imageUrl"),
		})
	}
	return items
}

// pick reads a field through its known aliases, first hit wins.
func pick(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := fields[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			return v.String()
		}
	}
	return ""
}

func (c *Client) warn(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

func (c *Client) debug(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
