package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"scripture-tui/internal/logging"
)

const (
	DefaultBaseURL = "https://api.esv.org"

	// DefaultReference is what an empty lookup resolves to.
	DefaultReference = "John 3:16-21"

	searchPageSize = 20
)

// CacheInterface stores raw response bodies keyed by request.
type CacheInterface interface {
	Get(kind, query string, opts PassageOptions) ([]byte, bool)
	Put(kind, query string, opts PassageOptions, body []byte) error
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      CacheInterface
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

func (c *Client) SetCache(cache CacheInterface) {
	c.cache = cache
}

// PassageOptions toggles the optional parts of passage markup.
type PassageOptions struct {
	Headings bool `toml:"headings"`
	Extras   bool `toml:"extras"`
	Numbers  bool `toml:"numbers"`
}

type PassageMeta struct {
	Canonical    string `json:"canonical"`
	ChapterStart []int  `json:"chapter_start"`
	ChapterEnd   []int  `json:"chapter_end"`
	PrevVerse    int    `json:"prev_verse"`
	NextVerse    int    `json:"next_verse"`
	PrevChapter  []int  `json:"prev_chapter"`
	NextChapter  []int  `json:"next_chapter"`
}

type PassageResponse struct {
	Query       string        `json:"query"`
	Canonical   string        `json:"canonical"`
	Parsed      [][]int       `json:"parsed"`
	PassageMeta []PassageMeta `json:"passage_meta"`
	Passages    []string      `json:"passages"`
}

type SearchResult struct {
	Reference string `json:"reference"`
	Content   string `json:"content"`
}

type SearchResponse struct {
	Page         int            `json:"page"`
	TotalResults int            `json:"total_results"`
	TotalPages   int            `json:"total_pages"`
	Results      []SearchResult `json:"results"`
}

// FetchVerse resolves a reference to passage HTML with verse anchors.
func (c *Client) FetchVerse(ctx context.Context, reference string, opts PassageOptions) (*PassageResponse, error) {
	if reference == "" {
		reference = DefaultReference
	}

	params := url.Values{}
	params.Add("q", reference)
	params.Add("include-passage-references", "true")
	params.Add("include-verse-anchors", "true")
	params.Add("include-chapter-numbers", strconv.FormatBool(opts.Numbers))
	params.Add("include-verse-numbers", strconv.FormatBool(opts.Numbers))
	params.Add("include-headings", strconv.FormatBool(opts.Headings))
	params.Add("include-subheadings", strconv.FormatBool(opts.Headings))
	params.Add("include-footnotes", strconv.FormatBool(opts.Extras))
	params.Add("include-audio-link", strconv.FormatBool(opts.Extras))

	var resp PassageResponse
	if err := c.get(ctx, "passage", reference, opts, "/v3/passage/html/", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Search runs a free-text search and returns the first page of results.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("page", "1")
	params.Add("page-size", strconv.Itoa(searchPageSize))

	var resp SearchResponse
	if err := c.get(ctx, "search", query, PassageOptions{}, "/v3/passage/search/", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, kind, query string, opts PassageOptions, path string, params url.Values, out any) error {
	log := logging.FromContext(ctx)

	if c.cache != nil {
		if body, ok := c.cache.Get(kind, query, opts); ok {
			if err := json.Unmarshal(body, out); err == nil {
				log.Debug("cache hit", "kind", kind, "query", query)
				return nil
			}
		}
	}

	fullURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	log.Info("api request", "kind", kind, "query", query, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", kind, err)
	}

	if c.cache != nil {
		if err := c.cache.Put(kind, query, opts, body); err != nil {
			log.Warn("cache write failed", "kind", kind, "error", err)
		}
	}
	return nil
}
