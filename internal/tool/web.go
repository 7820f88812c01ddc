// Package tool implements the built-in invocation handles and wires them,
// together with their credential requirements, into the capability catalog.
package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	httpTimeout    = 30 * time.Second
	maxContentSize = 64 * 1024
	serperEndpoint = "https://google.serper.dev/search"
)

// WebsiteSearchHandle fetches a webpage and extracts its readable text.
// Input is the URL to fetch.
type WebsiteSearchHandle struct {
	client *http.Client
}

// NewWebsiteSearchHandle creates a website content handle
func NewWebsiteSearchHandle() *WebsiteSearchHandle {
	return &WebsiteSearchHandle{
		client: &http.Client{Timeout: httpTimeout},
	}
}

// Invoke fetches the page at the given URL and returns title plus body text
func (h *WebsiteSearchHandle) Invoke(ctx context.Context, input string) (string, error) {
	parsedURL, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", fmt.Errorf("invalid URL scheme: must be http or https")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent to avoid blocking
	req.Header.Set("User-Agent", "Mozilla/5.0 (Compatible Web Fetcher Bot)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch webpage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error %d: %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxContentSize))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Strip non-content elements before extracting text
	doc.Find("script, style, nav, header, footer, aside").Remove()

	var sb strings.Builder
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		sb.WriteString("# " + title + "\n\n")
	}
	doc.Find("h1, h2, h3, p, li").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			sb.WriteString(text + "\n")
		}
	})

	if sb.Len() == 0 {
		return "", fmt.Errorf("no readable content found at %s", parsedURL.String())
	}
	return sb.String(), nil
}

// SerperSearchHandle queries the Serper web search API.
// Input is the search query; the API key comes from SERPER_API_KEY.
type SerperSearchHandle struct {
	client *http.Client
}

// NewSerperSearchHandle creates a Serper web search handle
func NewSerperSearchHandle() *SerperSearchHandle {
	return &SerperSearchHandle{
		client: &http.Client{Timeout: httpTimeout},
	}
}

type serperResult struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Invoke runs a web search and returns a plain-text result list
func (h *SerperSearchHandle) Invoke(ctx context.Context, input string) (string, error) {
	apiKey := os.Getenv("SERPER_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("SERPER_API_KEY environment variable not set")
	}

	payload, err := json.Marshal(map[string]string{"q": strings.TrimSpace(input)})
	if err != nil {
		return "", fmt.Errorf("failed to encode search query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-KEY", apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search API error %d: %s", resp.StatusCode, resp.Status)
	}

	var result serperResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse search response: %w", err)
	}

	if len(result.Organic) == 0 {
		return "No results found.", nil
	}

	var sb strings.Builder
	for i, item := range result.Organic {
		fmt.Fprintf(&sb, "%d. %s\n   %s\n   %s\n", i+1, item.Title, item.Link, item.Snippet)
	}
	return sb.String(), nil
}
