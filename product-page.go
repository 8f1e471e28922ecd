package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// pageContextLimit caps how much page text is handed to the copy model.
const pageContextLimit = 2000

var whitespacePattern = regexp.MustCompile(`\s+`)

// PageFetcher pulls readable text from a product page so the copy model has
// real product facts to work from instead of just the roster fields.
type PageFetcher struct {
	client *http.Client
}

func NewPageFetcher() *PageFetcher {
	return &PageFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *PageFetcher) FetchText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("request creation failed: %v", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status code %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return "", fmt.Errorf("invalid content type: %s", contentType)
	}

	bodyReader := io.LimitReader(resp.Body, 10*1024*1024) // 10MB limit
	doc, err := goquery.NewDocumentFromReader(bodyReader)
	if err != nil {
		return "", fmt.Errorf("error parsing HTML: %v", err)
	}

	doc.Find("script").Remove()
	doc.Find("style").Remove()
	doc.Find("nav").Remove()
	doc.Find("header").Remove()
	doc.Find("footer").Remove()
	doc.Find("iframe").Remove()
	doc.Find("noscript").Remove()

	var content string
	mainContent := doc.Find("article, [role='main'], main, .main-content, #main-content, .product-description, .product-detail, .entry-content")
	if mainContent.Length() > 0 {
		content = mainContent.Text()
	} else {
		content = doc.Find("body").Text()
	}

	content = collapseWhitespace(content)
	if content == "" {
		return "", fmt.Errorf("no content extracted")
	}

	return truncateRunes(content, pageContextLimit), nil
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// truncateRunes shortens s to at most n runes. Rune-based so multi-byte
// product copy is never split mid-character.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
