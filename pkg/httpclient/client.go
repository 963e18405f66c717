package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Profile represents the header set sent with each request
type Profile string

const (
	// HTMLProfile asks for HTML with an explicit Accept list to avoid
	// 406 (Not Acceptable) errors from picky episode-page hosts
	HTMLProfile Profile = "html"

	// JSONProfile hints the endpoint should answer with JSON
	// Used for chapters documents
	JSONProfile Profile = "json"
)

// ErrNoScheme is returned for request URLs without an http/https scheme
var ErrNoScheme = errors.New("url has no http scheme")

// StatusError is a non-2xx response, kept as a distinct type so callers can
// decide whether the status is fatal for their unit of work
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// HTTPClient wraps an http.Client with a header profile
type HTTPClient struct {
	client  *http.Client
	profile Profile
}

// NewClient creates a new HTTP client with the specified profile
func NewClient(profile Profile) *HTTPClient {
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Follow up to 10 redirects
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return &HTTPClient{
		client:  client,
		profile: profile,
	}
}

// NewGetRequest builds a GET request after verifying the URL carries an http
// scheme, returning ErrNoScheme otherwise
func NewGetRequest(rawURL string) (*http.Request, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNoScheme, rawURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrNoScheme, rawURL)
	}
	return http.NewRequest("GET", rawURL, nil)
}

// Do executes an HTTP request with the appropriate headers for the profile
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req)
	return c.client.Do(req)
}

// Get is a convenience method for GET requests. A 4xx/5xx answer is returned
// as a *StatusError with the body already closed
func (c *HTTPClient) Get(url string) (*http.Response, error) {
	req, err := NewGetRequest(url)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	return resp, nil
}

// setHeaders sets the appropriate headers based on the profile
func (c *HTTPClient) setHeaders(req *http.Request) {
	switch c.profile {
	case HTMLProfile:
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml")

	case JSONProfile:
		req.Header.Set("Accept", "application/json")

	default:
		// Default: no extra headers
	}
}
