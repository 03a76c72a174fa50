package trainapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const userAgent = "railbook/1.0"

// Client is a train booking API client. It is immutable after construction and
// safe for concurrent use; per-call state lives entirely on the stack of one
// invocation.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client bound to the given base URL. A nil httpClient
// gets a default with a 30 second timeout; callers that share a transport
// across clients inject their own.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// SearchJourneys finds journeys between two stations over the requested
// outbound/return window.
func (c *Client) SearchJourneys(ctx context.Context, req SearchRequest) (*JourneyResponse, error) {
	query := fmt.Sprintf("from=%s&to=%s&outbound_time=%s&return_time=%s",
		queryEscape(req.From), queryEscape(req.To),
		queryEscape(req.OutboundTime), queryEscape(req.ReturnTime))

	body, err := c.do(ctx, http.MethodGet, "/api/search?"+query)
	if err != nil {
		return nil, err
	}
	return decodeJSON[JourneyResponse]("search", body)
}

// BookTrains books the trains named by req.TrainIDs. The identifier is sent as
// a single encoded path segment with an empty request body.
func (c *Client) BookTrains(ctx context.Context, req BookRequest) (*BookingResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/book/"+url.PathEscape(req.TrainIDs))
	if err != nil {
		return nil, err
	}
	return decodeJSON[BookingResponse]("book", body)
}

// do issues exactly one HTTP exchange and returns the raw response body.
// Failures before a response arrives are TransportError; a non-2xx status is
// HTTPStatusError with the body discarded.
func (c *Client) do(ctx context.Context, method, pathAndQuery string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, &HTTPStatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("reading response body: %w", err)}
	}
	return body, nil
}

// decodeJSON parses a mandatory JSON object body. Property names are matched
// case-insensitively, which encoding/json does by default.
func decodeJSON[T any](operation string, body []byte) (*T, error) {
	var out *T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if out == nil {
		return nil, &EmptyResponseError{Operation: operation}
	}
	return out, nil
}

// queryEscape percent-encodes one query value, using %20 for spaces rather
// than '+' so the value round-trips through strict component decoding.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
