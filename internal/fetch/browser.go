package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted text length to consider an HTTP
// fetch successful. Shorter content suggests a JavaScript-rendered page.
const MinContentLength = 500

// ShouldUseBrowser reports whether the extracted text is too short,
// indicating the posting page is likely a JavaScript-rendered SPA.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// WithBrowser renders a page in a headless browser and returns the rendered
// HTML. Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, timeout time.Duration) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string

	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side rendering time to populate the posting body.
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Dismiss common cookie banners; ignore when absent.
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"], button:contains("OK"), button:contains("Accept")`, chromedp.NodeVisible).Do(ctx)
			return nil
		}),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html),
	)

	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	return html, nil
}

// BrowserSimple renders a page with the default timeout.
func BrowserSimple(ctx context.Context, url string) (string, error) {
	return WithBrowser(ctx, url, 30*time.Second)
}
