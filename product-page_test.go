package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFetchTextExtractsMainContent(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head><title>Collagen Jelly</title><style>body { color: red; }</style></head>
<body>
  <nav>Home | Products | Contact</nav>
  <div class="product-description">
    <h1>コラーゲンゼリー</h1>
    <p>毎日ひとつで、肌にハリとうるおいを。</p>
    <p>低カロリーで続けやすいピーチ味です。</p>
  </div>
  <footer>All rights reserved</footer>
  <script>console.log("tracking");</script>
</body>
</html>`

	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	text, err := NewPageFetcher().FetchText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchText returned error: %v", err)
	}

	if !strings.Contains(text, "肌にハリとうるおい") {
		t.Errorf("extracted text is missing product copy: %q", text)
	}
	if !strings.Contains(text, "ピーチ味") {
		t.Errorf("extracted text is missing product copy: %q", text)
	}
	if strings.Contains(text, "tracking") {
		t.Error("script content should be stripped")
	}
	if strings.Contains(text, "Home | Products") {
		t.Error("navigation should be excluded")
	}
	if strings.Contains(text, "\n") {
		t.Error("whitespace should be collapsed")
	}
	if !strings.Contains(userAgent, "Mozilla/5.0") {
		t.Errorf("unexpected User-Agent: %s", userAgent)
	}
}

func TestFetchTextFallsBackToBody(t *testing.T) {
	page := `<html><head><script>var x = 1;</script></head><body>
  <nav>Menu</nav>
  <p>Plain product page without semantic containers.</p>
</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	text, err := NewPageFetcher().FetchText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchText returned error: %v", err)
	}
	if !strings.Contains(text, "Plain product page without semantic containers.") {
		t.Errorf("body text not extracted: %q", text)
	}
	if strings.Contains(text, "var x") {
		t.Error("script content should be stripped")
	}
	if strings.Contains(text, "Menu") {
		t.Error("navigation should be stripped")
	}
}

func TestFetchTextRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewPageFetcher().FetchText(context.Background(), srv.URL); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestFetchTextRejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"product": "jelly"}`))
	}))
	defer srv.Close()

	if _, err := NewPageFetcher().FetchText(context.Background(), srv.URL); err == nil {
		t.Error("expected error for non-HTML content type")
	}
}

func TestFetchTextTruncatesLongPages(t *testing.T) {
	long := strings.Repeat("とても長い商品説明 ", 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><article>" + long + "</article></body></html>"))
	}))
	defer srv.Close()

	text, err := NewPageFetcher().FetchText(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchText returned error: %v", err)
	}
	if got := utf8.RuneCountInString(text); got > pageContextLimit+3 {
		t.Errorf("text not truncated: %d runes", got)
	}
	if !strings.HasSuffix(text, "...") {
		t.Error("truncated text should end with an ellipsis marker")
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("hello", 10); got != "hello" {
		t.Errorf("short string should be unchanged, got %q", got)
	}
	if got := truncateRunes("こんにちは世界", 5); got != "こんにちは..." {
		t.Errorf("unexpected truncation: %q", got)
	}
}
