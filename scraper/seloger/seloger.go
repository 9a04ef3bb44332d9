package seloger

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"apartment-map/config"
	"apartment-map/models"
	"apartment-map/utils"
)

// Announce pages are rendered client-side and sit behind a bot check that
// rejects bare HTTP clients, so fetching goes through a real browser
// engine.

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Fetcher loads one announce page in a headless browser and pulls out the
// structured-data blocks plus the rendered text the extractor works on.
type Fetcher struct {
	cfg    *config.Config
	logger *utils.Logger
}

// New creates a ready-to-use Fetcher.
func New(cfg *config.Config, logger *utils.Logger) *Fetcher {
	return &Fetcher{cfg: cfg, logger: logger}
}

// Fetch navigates to url and reads back the page material.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*models.AnnouncePage, error) {
	chromeBin := findChromeBinary(f.cfg.ChromeBin)
	if chromeBin != "" {
		f.logger.Debug("[seloger] Using browser binary: %s", chromeBin)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(userAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	runCtx, cancelTimeout := context.WithTimeout(browserCtx, time.Duration(f.cfg.FetchTimeoutMs)*time.Millisecond)
	defer cancelTimeout()

	var blocks []string
	var text string

	f.logger.Info("[seloger] Fetching %s", url)
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		// Let the client-side render settle before reading the DOM.
		chromedp.Sleep(3*time.Second),
		chromedp.Evaluate(`
			Array.from(document.querySelectorAll('script[type="application/ld+json"]'))
				.map(function(s) { return s.textContent || ''; })
		`, &blocks),
		chromedp.Evaluate(`document.body ? document.body.innerText : ''`, &text),
	)
	if err != nil {
		return nil, fmt.Errorf("seloger: fetch %s: %w", url, err)
	}

	f.logger.Debug("[seloger] Got %d structured data blocks, %d chars of text", len(blocks), len(text))

	return &models.AnnouncePage{
		URL:       url,
		JSONLD:    blocks,
		Text:      text,
		FetchedAt: time.Now(),
	}, nil
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the
// explicitly configured one.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
