package opensea

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nftarchive/pkg/config"
	errs "nftarchive/pkg/errors"
	"nftarchive/pkg/logger"
)

const bodyPreviewLimit = 200

// Client represents an OpenSea API client
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
	logger     logger.Logger
}

// NewClient creates a client from the OpenSea section of the configuration.
// A zero cfg.Timeout leaves requests without a deadline.
func NewClient(cfg *config.OpenSeaConfig, log logger.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   baseURL,
		apiKey:    cfg.APIKey,
		userAgent: cfg.UserAgent,
		logger:    logger.OrNop(log),
	}
}

// SetHTTPClient replaces the underlying HTTP client
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// doRequest performs an HTTP request and maps transport failures to network errors
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, errs.Wrap(errs.ErrorTypeNetwork, err, "%s %s", req.Method, req.URL.Redacted())
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	return resp, nil
}

// checkResponseStatus turns any non-2xx status into an api error
func (c *Client) checkResponseStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	preview, _ := io.ReadAll(io.LimitReader(resp.Body, bodyPreviewLimit))
	url := resp.Request.URL.String()

	c.logger.WarnWithFields("unexpected HTTP status", map[string]interface{}{
		"status":       resp.StatusCode,
		"url":          url,
		"body_preview": string(preview),
	})

	apiErr := errs.APIStatus(resp.StatusCode, url)
	if body := strings.TrimSpace(string(preview)); body != "" {
		apiErr.Message += ": " + body
	}
	return apiErr
}

// FetchPage fetches one page of a collection listing. An empty next requests the first page.
func (c *Client) FetchPage(ctx context.Context, collection, next string) (*PageResponse, error) {
	url := GetCollectionNFTsURL(c.baseURL, collection, next)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeNetwork, err, "failed to create request")
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeNetwork, err, "failed to read response body")
	}

	page, err := decodePage(body)
	if err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > bodyPreviewLimit {
			bodyPreview = bodyPreview[:bodyPreviewLimit] + "..."
		}
		c.logger.ErrorWithFields("failed to parse collection page", map[string]interface{}{
			"url":          url,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return nil, err
	}

	return page, nil
}

// decodePage parses a listing page, requiring the nfts array
func decodePage(body []byte) (*PageResponse, error) {
	var env pageEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeMalformedResponse, err, "failed to parse JSON")
	}

	if !env.hasNFTs() {
		return nil, errs.New(errs.ErrorTypeMalformedResponse, `response has no "nfts" field`)
	}

	page := &PageResponse{}
	if err := json.Unmarshal(env.NFTs, &page.NFTs); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeMalformedResponse, err, `"nfts" is not an array of objects`)
	}
	if env.Next != nil {
		page.Next = *env.Next
	}

	return page, nil
}

// FetchCollection pages through the whole collection and returns its items in API order.
// Pagination stops on the first page whose continuation token is absent or empty.
func (c *Client) FetchCollection(ctx context.Context, collection string) ([]Item, error) {
	if strings.TrimSpace(collection) == "" {
		return nil, errs.New(errs.ErrorTypeConfig, "collection identifier is empty")
	}

	log := c.logger.WithField("collection", collection)

	var items []Item
	next := ""
	for pageNum := 1; ; pageNum++ {
		page, err := c.FetchPage(ctx, collection, next)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d of %s: %w", pageNum, collection, err)
		}

		items = append(items, page.NFTs...)
		logger.LogPageProgress(log, collection, pageNum, len(items))

		if page.Next == "" {
			break
		}
		next = page.Next
	}

	return items, nil
}

// FetchImage downloads the raw image bytes behind an item's image_url
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	if imageURL == "" {
		return nil, errs.New(errs.ErrorTypeInvalidItem, "item has no image_url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeInvalidItem, err, "invalid image_url %q", imageURL)
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponseStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeNetwork, err, "failed to read image body")
	}

	c.logger.DebugWithFields("downloaded image", map[string]interface{}{
		"url":  imageURL,
		"size": len(data),
	})

	return data, nil
}
