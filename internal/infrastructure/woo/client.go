package woo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/medrec/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	// pageSize is the WooCommerce REST API maximum per_page value.
	pageSize = 100

	defaultMaxProducts = 1000
	maxAttempts        = 3
)

// RawProduct is a single product row as returned by the WooCommerce REST API.
type RawProduct struct {
	ID               int           `json:"id"`
	Name             string        `json:"name"`
	Price            string        `json:"price"`
	RegularPrice     string        `json:"regular_price"`
	Description      string        `json:"description"`
	ShortDescription string        `json:"short_description"`
	Categories       []RawCategory `json:"categories"`
	Status           string        `json:"status"`
}

// RawCategory is a WooCommerce category reference attached to a product row.
type RawCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Client handles communication with the WooCommerce REST API v3.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	consumerKey    string
	consumerSecret string
	rateLimiter    *rate.Limiter
	maxProducts    int
	debug          bool
}

// NewClient creates a WooCommerce API client for the given store.
// maxProducts bounds how many products FetchAll materializes; zero or
// negative selects the default.
func NewClient(siteURL, consumerKey, consumerSecret string, maxProducts int) *Client {
	// Stay well under typical shared-hosting throttles.
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	if maxProducts <= 0 {
		maxProducts = defaultMaxProducts
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:        strings.TrimRight(siteURL, "/") + "/wp-json/wc/v3",
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		rateLimiter:    limiter,
		maxProducts:    maxProducts,
	}
}

// SetDebug enables verbose request logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// FetchAll implements domain.CatalogSource: it pages through the published
// products and maps the rows to domain products.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Product, error) {
	rows, err := c.FetchAllRaw(ctx)
	if err != nil {
		return nil, err
	}
	return MapProducts(rows), nil
}

// FetchAllRaw pages through the remote catalog until a short page or the
// configured product limit. A failure on any page fails the whole fetch so
// callers never consume a partially paginated catalog.
func (c *Client) FetchAllRaw(ctx context.Context) ([]RawProduct, error) {
	var all []RawProduct

	for page := 1; len(all) < c.maxProducts; page++ {
		perPage := pageSize
		if remaining := c.maxProducts - len(all); remaining < perPage {
			perPage = remaining
		}

		rows, err := c.FetchPage(ctx, page, perPage)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)

		if len(rows) < perPage {
			break
		}
	}

	log.Printf("[WOO] fetched %d products", len(all))
	return all, nil
}

// FetchPage fetches a single page of published products.
func (c *Client) FetchPage(ctx context.Context, page, perPage int) ([]RawProduct, error) {
	endpoint := fmt.Sprintf("%s/products", c.baseURL)
	params := url.Values{}
	params.Add("per_page", strconv.Itoa(perPage))
	params.Add("page", strconv.Itoa(page))
	params.Add("status", "publish")

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		rows, retryable, err := c.doRequest(ctx, reqURL)
		if err == nil {
			if c.debug {
				log.Printf("[WOO] page %d: %d products", page, len(rows))
			}
			return rows, nil
		}
		if !retryable {
			return nil, err
		}

		if c.debug {
			log.Printf("[WOO] request error (attempt %d): %v", attempt, err)
		}
		lastErr = err
		if attempt < maxAttempts {
			time.Sleep(exponentialBackoff(attempt))
		}
	}

	return nil, lastErr
}

// doRequest executes one products request. The second return value reports
// whether the failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]RawProduct, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "medrec/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", domain.ErrWooAPIFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("%w: reading body: %v", domain.ErrWooAPIFailure, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// handled below
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// Bad credentials will not improve on retry.
		return nil, false, fmt.Errorf("%w: status %d", domain.ErrWooAPIFailure, resp.StatusCode)
	default:
		return nil, true, fmt.Errorf("%w: status %d", domain.ErrWooAPIFailure, resp.StatusCode)
	}

	var rows []RawProduct
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, false, fmt.Errorf("failed to decode response: %w", err)
	}
	return rows, false, nil
}

func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}
