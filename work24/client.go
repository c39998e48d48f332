package work24

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pb33f/jobific/motor"
	"golang.org/x/time/rate"
)

// API defaults for the work24 job listing service.
const (
	DefaultEndpoint  = "https://www.work24.go.kr/cm/openApi/call/wk/callOpenApiSvcInfo210L01.do"
	DetailURLFormat  = "https://www.work.go.kr/empInfo/empInfoSrch/detail/empDetailAuthView.do?wantedAuthNo=%s"
	DefaultDisplay   = 100
	DefaultStartPage = 1
	MaxDisplay       = 100

	maxResponseBytes = 16 << 20
)

var (
	ErrMissingAuthKey = errors.New("work24 auth key is required")
	ErrInvalidDisplay = errors.New("display must be between 1 and 100")
)

// APIError is reported by the service inside an otherwise successful response.
type APIError struct {
	Message string
	Code    string
}

func (e *APIError) Error() string {
	code := e.Code
	if code == "" {
		code = "unknown"
	}
	return fmt.Sprintf("work24 api error: %s (code: %s)", e.Message, code)
}

// Options configures a Client.
type Options struct {
	Endpoint  string
	AuthKey   string
	Display   int
	StartPage int

	// RequestsPerSecond throttles outgoing calls; 0 disables throttling
	RequestsPerSecond float64

	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client fetches job postings from the work24 open API.
type Client struct {
	opts     Options
	endpoint *url.URL
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewClient validates options and creates a client.
func NewClient(opts Options) (*Client, error) {
	if opts.AuthKey == "" {
		return nil, ErrMissingAuthKey
	}
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Display == 0 {
		opts.Display = DefaultDisplay
	}
	if opts.Display < 1 || opts.Display > MaxDisplay {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDisplay, opts.Display)
	}
	if opts.StartPage < 1 {
		opts.StartPage = DefaultStartPage
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}

	endpoint, err := url.Parse(opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		opts:     opts,
		endpoint: endpoint,
		limiter:  rate.NewLimiter(limit, 1),
		logger:   logger,
	}, nil
}

// Name identifies the source in logs and errors
func (c *Client) Name() string {
	return "work24"
}

// Load fetches one batch of postings and converts them to records.
func (c *Client) Load(ctx context.Context) ([]motor.Record, error) {
	postings, err := c.FetchWanted(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]motor.Record, 0, len(postings))
	for i := range postings {
		records = append(records, postings[i].Record())
	}
	return records, nil
}

// FetchWanted performs the API call and decodes the <wanted> elements.
// A response carrying <message> is an *APIError; zero postings is
// motor.ErrEmptyDataset.
func (c *Client) FetchWanted(ctx context.Context) ([]Wanted, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	start := time.Now()
	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("work24 response",
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	postings, err := decodeResponse(body)
	if err != nil {
		return nil, err
	}
	return postings, nil
}

func (c *Client) requestURL() string {
	u := *c.endpoint
	q := u.Query()
	q.Set("authKey", c.opts.AuthKey)
	q.Set("callTp", "L")
	q.Set("returnType", "XML")
	q.Set("startPage", strconv.Itoa(c.opts.StartPage))
	q.Set("display", strconv.Itoa(c.opts.Display))
	u.RawQuery = q.Encode()
	return u.String()
}

func decodeResponse(body []byte) ([]Wanted, error) {
	var root wantedRoot
	if err := xml.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if root.Message != "" {
		return nil, &APIError{Message: root.Message, Code: root.MessageCode}
	}
	if len(root.Wanted) == 0 {
		return nil, motor.ErrEmptyDataset
	}
	return root.Wanted, nil
}
