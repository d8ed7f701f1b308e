package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"canvas-mcp/internal/httpx"
	"canvas-mcp/internal/metrics"
)

// Client talks to the Canvas REST API. All methods issue single idempotent
// GETs with a finite per-request timeout and no retries; callers decide how
// to react to classified failures.
type Client struct {
	// BaseURL is the API root including the version prefix,
	// e.g. https://canvas.example.edu/api/v1
	BaseURL string
	HTTP    *http.Client

	token       string
	pageSize    int
	maxParallel int
	limiter     *rate.Limiter
	log         *zap.Logger
	metrics     *metrics.Collector
}

// Options tunes the client. Zero values fall back to workable defaults.
type Options struct {
	Timeout           time.Duration
	PageSize          int
	MaxParallel       int
	RequestsPerSecond float64
	Logger            *zap.Logger
	Metrics           *metrics.Collector
}

func New(baseURL, token string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}
	maxParallel := opts.MaxParallel
	if maxParallel <= 0 {
		maxParallel = 4
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	tr := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
		token:       token,
		pageSize:    pageSize,
		maxParallel: maxParallel,
		limiter:     limiter,
		log:         logger,
		metrics:     opts.Metrics,
	}
}

// Params holds query parameters. Slice values encode as repeated keys, which
// is how Canvas expects include[] style parameters.
type Params map[string]any

func (p Params) encode() string {
	if len(p) == 0 {
		return ""
	}
	v := url.Values{}
	for key, val := range p {
		switch t := val.(type) {
		case string:
			v.Set(key, t)
		case int:
			v.Set(key, strconv.Itoa(t))
		case int64:
			v.Set(key, strconv.FormatInt(t, 10))
		case []string:
			for _, s := range t {
				v.Add(key, s)
			}
		case []int64:
			for _, n := range t {
				v.Add(key, strconv.FormatInt(n, 10))
			}
		default:
			v.Set(key, fmt.Sprint(t))
		}
	}
	return v.Encode()
}

type rawResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// get performs one authenticated GET against the API. It returns whatever
// Canvas answered without interpreting the status; classification is the
// caller's job.
func (c *Client) get(ctx context.Context, path string, params Params) (*rawResponse, error) {
	if strings.TrimSpace(path) == "" {
		return nil, failuref(KindUnknown, "empty endpoint path")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u := c.BaseURL + path
	if q := params.encode(); q != "" {
		u += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("canvas: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, br")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}

	body, err := httpx.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("canvas: read response: %w", err)
	}

	return &rawResponse{Status: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// fetchJSON runs one operation end to end: request, classify, decode.
// Every error it returns is a *Failure or *Empty.
func (c *Client) fetchJSON(ctx context.Context, op, path string, params Params, out any) error {
	start := time.Now()

	raw, err := c.get(ctx, path, params)
	if err != nil {
		fail := classifyTransport(op, err)
		c.metrics.APIRequest(op, "error", time.Since(start))
		c.log.Debug("canvas request failed",
			zap.String("op", op),
			zap.String("kind", string(fail.Kind)),
			zap.Duration("elapsed", time.Since(start)))
		return fail
	}

	c.metrics.APIRequest(op, strconv.Itoa(raw.Status), time.Since(start))
	c.log.Debug("canvas request",
		zap.String("op", op),
		zap.Int("status", raw.Status),
		zap.Duration("elapsed", time.Since(start)))

	payload, cerr := classify(op, raw)
	if cerr != nil {
		return cerr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return failuref(KindUnknown, "unexpected response shape: %v", err)
	}
	return nil
}
