package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/logging"

	"github.com/google/uuid"
)

// ProductPage is one server page of products together with the pagination
// bounds reported by the backend. Page and Pages are taken verbatim from the
// response; the client never recomputes them.
type ProductPage struct {
	Products []Product
	Total    int
	Page     int
	Pages    int
	Count    int
}

// productListEnvelope is the wire shape of GET products.
type productListEnvelope struct {
	Success bool      `json:"success"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	Pages   int       `json:"pages"`
	Count   int       `json:"count"`
	Data    []Product `json:"data"`
}

// productEnvelope is the wire shape of GET products/{id}.
type productEnvelope struct {
	Success bool    `json:"success"`
	Data    Product `json:"data"`
}

// categoriesEnvelope is the wire shape of GET categories.
type categoriesEnvelope struct {
	Categories []Category `json:"categories"`
}

// Client talks to the remote shop API. It is safe for concurrent use; all
// state is immutable after construction.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a shop API client for the given base URL
// (e.g. "http://localhost:9090/api/").
func NewClient(baseURL string, timeout time.Duration) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Categories fetches all browsing categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var env categoriesEnvelope
	if err := c.getJSON(ctx, "categories", nil, &env); err != nil {
		return nil, err
	}
	if env.Categories == nil {
		return nil, fmt.Errorf("categories response missing categories field")
	}
	return env.Categories, nil
}

// Products fetches one page of the flat product list.
func (c *Client) Products(ctx context.Context, page, limit int) (*ProductPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return c.productPage(ctx, q)
}

// ProductsByCategory fetches one page of products belonging to a category.
func (c *Client) ProductsByCategory(ctx context.Context, categoryID string, page, limit int) (*ProductPage, error) {
	q := url.Values{}
	q.Set("category", categoryID)
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return c.productPage(ctx, q)
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var env productEnvelope
	if err := c.getJSON(ctx, "products/"+url.PathEscape(id), nil, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("product %s: backend reported failure", id)
	}
	return &env.Data, nil
}

func (c *Client) productPage(ctx context.Context, query url.Values) (*ProductPage, error) {
	var env productListEnvelope
	if err := c.getJSON(ctx, "products", query, &env); err != nil {
		return nil, err
	}
	if !env.Success || env.Data == nil {
		return nil, fmt.Errorf("invalid product list response structure")
	}
	return &ProductPage{
		Products: env.Data,
		Total:    env.Total,
		Page:     env.Page,
		Pages:    env.Pages,
		Count:    env.Count,
	}, nil
}

// getJSON performs a GET against the API and decodes the JSON body into out.
// Every call gets a correlation id so a failed request can be traced in the
// api log.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	reqID := uuid.NewString()[:8]
	rlog := logging.WithRequestID(logging.CategoryAPI, reqID)

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	rlog.Info("GET %s", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		rlog.Error("GET %s failed: %v", endpoint, err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		rlog.Error("GET %s read failed: %v", endpoint, err)
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rlog.Error("GET %s -> %d", endpoint, resp.StatusCode)
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.Unmarshal(body, out); err != nil {
		rlog.Error("GET %s decode failed: %v", endpoint, err)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	rlog.Info("GET %s -> %d in %v", endpoint, resp.StatusCode, time.Since(start))
	return nil
}
