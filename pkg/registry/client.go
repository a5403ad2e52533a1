package registry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/depviz/pkg/observability"
)

const httpTimeout = 10 * time.Second

// HTTPClient provides the JSON-over-HTTP plumbing shared by network-backed
// registry clients: default headers, status classification and decoding into
// [FetchError]s. It does not cache and does not retry.
type HTTPClient struct {
	http    *http.Client
	headers map[string]string
}

// NewHTTPClient creates an HTTPClient with the given default headers.
// Pass nil for headers if none are needed.
func NewHTTPClient(headers map[string]string) *HTTPClient {
	return &HTTPClient{
		http:    &http.Client{Timeout: httpTimeout},
		headers: headers,
	}
}

// GetJSON performs a GET request and decodes the JSON body into v.
// The pkg argument is only used to label errors.
func (c *HTTPClient) GetJSON(ctx context.Context, pkg, url string, v any) error {
	body, err := c.doRequest(ctx, pkg, url)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return NewFetchError(ErrDecode, pkg, err, "invalid JSON from %s", url)
	}
	return nil
}

func (c *HTTPClient) doRequest(ctx context.Context, pkg, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewFetchError(ErrNetwork, pkg, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, NewFetchError(ErrNetwork, pkg, err, "GET %s", url)
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(pkg, url, resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(pkg, url string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		fe := NewFetchError(ErrNotFound, pkg, nil, "GET %s returned 404", url)
		fe.Status = code
		return fe
	default:
		fe := NewFetchError(ErrStatus, pkg, nil, "GET %s returned status %d", url, code)
		fe.Status = code
		return fe
	}
}
