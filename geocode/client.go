package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"apartment-map/config"
	"apartment-map/utils"
)

// result mirrors the relevant part of the Nominatim search payload.
// The service returns coordinates as strings.
type result struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Client wraps the Nominatim search endpoint. Every lookup is restricted
// to the configured country and viewbox so that a bare street name cannot
// match a town on the other side of the country, and results landing more
// than MaxKm from the viewbox center are rejected as false positives.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	language   string
	countries  string
	viewbox    Viewbox
	bounded    bool
	maxKm      float64
	limiter    *utils.RateLimiter
	cache      *Cache
	logger     *utils.Logger
}

// New creates a ready-to-use Client. cache may be nil to disable caching.
func New(cfg *config.Config, cache *Cache, logger *utils.Logger) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.GeoTimeoutMs) * time.Millisecond},
		baseURL:    cfg.NominatimURL,
		userAgent:  cfg.UserAgent,
		language:   cfg.Language,
		countries:  cfg.CountryCodes,
		maxKm:      cfg.MaxKm,
		limiter:    utils.NewRateLimiter(time.Duration(cfg.RateLimitMs) * time.Millisecond),
		cache:      cache,
		logger:     logger,
	}

	if vb, err := ParseViewbox(cfg.Viewbox); err == nil {
		c.viewbox = vb
		c.bounded = true
	} else if cfg.Viewbox != "" {
		logger.Warn("[geocode] Ignoring viewbox: %v", err)
	}

	return c
}

// Geocode resolves a free-text query to a coordinate pair. Every failure
// mode (empty result set, non-success response, transport or parse error,
// out-of-area match) collapses into the same (zero, false) outcome;
// callers cannot distinguish them and a failed lookup is never retried.
func (c *Client) Geocode(ctx context.Context, query string) (Point, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Point{}, false
	}

	key := c.cacheKey(query)
	if c.cache != nil {
		if p, ok := c.cache.Get(key); ok {
			c.logger.Debug("[geocode] Cache hit for %q", query)
			if p == nil {
				return Point{}, false
			}
			return *p, true
		}
	}

	c.limiter.Wait()

	p, err := c.search(ctx, query)
	if err != nil {
		c.logger.Debug("[geocode] %q: %v", query, err)
		p = nil
	}

	if p != nil && c.bounded && c.maxKm > 0 {
		if d := haversineKm(c.viewbox.Center(), *p); d > c.maxKm {
			c.logger.Warn("[geocode] Rejected %q: %.1f km from the search area", query, d)
			p = nil
		}
	}

	if c.cache != nil {
		c.cache.Put(key, p)
	}

	if p == nil {
		return Point{}, false
	}
	return *p, true
}

func (c *Client) cacheKey(query string) string {
	vb := ""
	if c.bounded {
		vb = c.viewbox.String()
	}
	return strings.ToLower(strings.TrimSpace(query)) + "|" + vb + "|" + strings.ToLower(c.countries)
}

// search performs the HTTP lookup and returns the highest-ranked match,
// or nil when the service has none.
func (c *Client) search(ctx context.Context, query string) (*Point, error) {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("q", query)
	params.Set("limit", "1")
	params.Set("addressdetails", "0")
	if c.language != "" {
		params.Set("accept-language", c.language)
	}
	if c.countries != "" {
		params.Set("countrycodes", c.countries)
	}
	if c.bounded {
		params.Set("viewbox", c.viewbox.String())
		params.Set("bounded", "1")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %s", resp.Status)
	}

	var results []result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lat %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lon %q: %w", results[0].Lon, err)
	}
	return &Point{Lat: lat, Lon: lon}, nil
}
