package rosterapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/rosterview/internal/platform/logging"
	"github.com/riskibarqy/rosterview/internal/platform/resilience"
	"github.com/riskibarqy/rosterview/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultBaseURL     = "http://localhost:5000"
	defaultWorkerCount = 4
	maxResponseBytes   = 8 << 20
)

var errRosterAPITransient = crerr.New("roster api transient failure")

var clientTracer = otel.Tracer("rosterview/external/rosterapi")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Username       string
	Password       string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	WorkerCount    int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the optimizer backend that owns projections and lineups.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	username     string
	password     string
	maxRetries   int
	retryBackoff time.Duration
	workerCount  int
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.Flight[[]byte]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = time.Second
	}

	workerCount := cfg.WorkerCount
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		username:     strings.TrimSpace(cfg.Username),
		password:     cfg.Password,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: retryBackoff,
		workerCount:  workerCount,
		logger:       logger,
		breaker:      resilience.NewOptionalCircuitBreaker(cfg.CircuitBreaker),
	}
}

// BreakerStats reports the upstream circuit for health checks.
func (c *Client) BreakerStats() resilience.Stats {
	return c.breaker.Stats()
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	ctx, span := clientTracer.Start(ctx, "rosterapi "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "roster api circuit breaker rejected request", "path", path, "state", c.breaker.State())
		span.SetStatus(codes.Error, "circuit open")
		return fmt.Errorf("%w: roster api is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	fullURL := buildURL(c.baseURL, path, query)
	span.SetAttributes(attribute.String("http.url", fullURL))

	raw, err, shared := c.flight.Do(fullURL, func() ([]byte, error) {
		body, reqErr := c.executeRequest(ctx, fullURL)
		if reqErr != nil && isCircuitFailure(reqErr) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return body, reqErr
	})
	span.SetAttributes(attribute.Bool("singleflight.shared", shared))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode roster api payload path=%s: %w", path, err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.username != "" {
			req.SetBasicAuth(c.username, c.password)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = fmt.Errorf("%w: send request: %v", errRosterAPITransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errRosterAPITransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: upstream status=%d body=%s", errRosterAPITransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, mapStatusError(resp.StatusCode, raw)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: upstream request failed", errRosterAPITransient)
	}
	c.logger.WarnContext(ctx, "roster api request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, lastErr)
}

func mapStatusError(status int, raw []byte) error {
	message := upstreamErrorMessage(raw)
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", usecase.ErrNotFound, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: roster api rejected service credentials status=%d", usecase.ErrDependencyUnavailable, status)
	default:
		return fmt.Errorf("roster api status=%d body=%s", status, abbreviateBody(raw))
	}
}

// upstreamErrorMessage extracts {"error": "..."} bodies returned by the backend.
func upstreamErrorMessage(raw []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := sonic.Unmarshal(raw, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		return strings.TrimSpace(payload.Error)
	}
	return abbreviateBody(raw)
}

func buildURL(baseURL, path string, query url.Values) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(baseURL)
	_, _ = buf.WriteString(path)

	if len(query) > 0 {
		keys := make([]string, 0, len(query))
		for key := range query {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		_ = buf.WriteByte('?')
		for i, key := range keys {
			if i > 0 {
				_ = buf.WriteByte('&')
			}
			_, _ = buf.WriteString(url.QueryEscape(key))
			_ = buf.WriteByte('=')
			_, _ = buf.WriteString(url.QueryEscape(query.Get(key)))
		}
	}

	return buf.String()
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errRosterAPITransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
