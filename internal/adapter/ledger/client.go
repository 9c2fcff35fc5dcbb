package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/polkiloo/factra/internal/domain/model"
)

// ErrInvoiceNotFound indicates the ledger has no invoice with the requested id.
var ErrInvoiceNotFound = errors.New("invoice not found on ledger")

// ErrResponseTooLarge is returned when a gateway reply exceeds maxResponseBytes.
var ErrResponseTooLarge = errors.New("ledger response too large")

// maxResponseBytes bounds a single reply; one invoice tuple is well under 1 KiB.
const maxResponseBytes = 64 << 10

// TooManyRequestsError represents rate limiting signal from the ledger gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes read operations of the invoice ledger.
type Client interface {
	Count(ctx context.Context) (int64, error)
	Invoice(ctx context.Context, id int64) (model.RawInvoice, error)
}

// HTTPClient implements Client against the ledger gateway JSON API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

type countResponse struct {
	Count json.Number `json:"count"`
}

// NewHTTPClient creates a ledger client paced at rps requests per second.
// A non-positive rps disables pacing.
func NewHTTPClient(baseURL string, rps float64, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse ledger url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("ledger url must be absolute")
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if rps > 0 {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}

	return &HTTPClient{
		baseURL: parsed,
		limiter: limiter,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Count returns the number of invoices ever created; ids run from 1 to Count.
func (c *HTTPClient) Count(ctx context.Context) (int64, error) {
	var resp countResponse
	if err := c.get(ctx, &resp, "invoices", "count"); err != nil {
		return 0, err
	}
	n, err := resp.Count.Int64()
	if err != nil {
		return 0, fmt.Errorf("decode invoice count: %w", err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative invoice count %d", n)
	}
	return n, nil
}

// Invoice fetches the raw tuple of invoice id.
func (c *HTTPClient) Invoice(ctx context.Context, id int64) (model.RawInvoice, error) {
	var raw model.RawInvoice
	if err := c.get(ctx, &raw, "invoices", strconv.FormatInt(id, 10)); err != nil {
		return model.RawInvoice{}, err
	}
	return raw, nil
}

func (c *HTTPClient) get(ctx context.Context, out any, segments ...string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(append([]string{endpoint.Path}, segments...)...)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
		if err != nil {
			return err
		}
		if len(body) > maxResponseBytes {
			return ErrResponseTooLarge
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode ledger response: %w", err)
		}
		return nil
	case http.StatusNotFound:
		return ErrInvoiceNotFound
	case http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("ledger request failed", slog.String("path", endpoint.Path), slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("ledger error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
