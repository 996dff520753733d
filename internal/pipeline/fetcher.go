package pipeline

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/okkonen/kinship/internal/cache"
	"github.com/okkonen/kinship/internal/model"
	"github.com/okkonen/kinship/internal/util"
	"github.com/okkonen/kinship/internal/worker"
)

// ErrRobotsDisallowed marks a URL the host's robots.txt forbids fetching
var ErrRobotsDisallowed = errors.New("fetch disallowed by robots.txt")

// Fetcher retrieves profile pages politely: robots.txt compliance,
// per-host rate limiting and a layered response cache.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	pages      cache.Cache         // nil disables caching
	robots     *util.RobotsChecker // nil disables robots checks
	limiter    *worker.Limiter     // nil disables rate limiting
}

// NewFetcher assembles a fetcher from configuration
func NewFetcher(cfg *model.Config) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
	}
	if cfg.HTTP.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	f := &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.HTTP.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		robots:    util.NewRobotsChecker(cfg.HTTP.UserAgent, 10*time.Second),
		limiter:   worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst),
	}

	if cfg.Cache.Enabled {
		f.pages = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cacheDir(cfg.Cache.Dir), cfg.Cache.DiskTTL)
	}
	return f
}

func cacheDir(configured string) string {
	if configured != "" {
		return configured
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kinship-cache"
	}
	return filepath.Join(home, ".kinship", "cache")
}

// FetchResult contains the fetched page and its HTTP metadata
type FetchResult struct {
	HTML     string
	FinalURL string
	Meta     model.FetchMeta
}

// Fetch retrieves the HTML document at the given URL
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.pages != nil {
		if data, found := f.pages.Get(cache.PageKey(rawURL)); found {
			return &FetchResult{
				HTML:     string(data),
				FinalURL: rawURL,
				Meta:     model.FetchMeta{FromCache: true},
			}, nil
		}
	}

	var crawlDelay time.Duration
	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return nil, fmt.Errorf("%w: %s", ErrRobotsDisallowed, rawURL)
		}
		crawlDelay = delay
	}
	if f.limiter != nil {
		if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	meta := model.FetchMeta{
		StatusCode:   resp.StatusCode,
		ContentType:  resp.Header.Get("Content-Type"),
		LastModified: resp.Header.Get("Last-Modified"),
		ETag:         resp.Header.Get("ETag"),
		Headers:      make(map[string]string),
	}
	for _, key := range []string{"Content-Length", "Server", "Cache-Control"} {
		if val := resp.Header.Get(key); val != "" {
			meta.Headers[key] = val
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	finalURL := resp.Request.URL.String()
	if f.pages != nil {
		_ = f.pages.Set(cache.PageKey(rawURL), body, 0)
	}

	return &FetchResult{HTML: string(body), FinalURL: finalURL, Meta: meta}, nil
}
