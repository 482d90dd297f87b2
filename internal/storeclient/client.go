// Package storeclient talks to a remote data store over its JSON API. It
// implements the POS SaleWriter and ProductLookup ports.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/noah-isme/backend-kasir/internal/common"
	"github.com/noah-isme/backend-kasir/internal/pos"
	"github.com/noah-isme/backend-kasir/internal/resilience"
)

const maxErrorBody = 64 << 10

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Breaker *resilience.Breaker
	// Transport overrides the base round tripper; it is still wrapped by otelhttp.
	Transport http.RoundTripper
	Logger    zerolog.Logger
}

// Client is an HTTP store client. Every call is sent once; there is no retry.
type Client struct {
	base   *url.URL
	http   resilience.HTTPClient
	logger zerolog.Logger
}

// New constructs a Client.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("storeclient: base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("storeclient: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("storeclient: unsupported scheme %q", base.Scheme)
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: base,
		http: resilience.HTTPClient{
			Client:  &http.Client{Transport: otelhttp.NewTransport(transport)},
			Breaker: cfg.Breaker,
			Timeout: timeout,
		},
		logger: cfg.Logger,
	}, nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// Product implements pos.ProductLookup via GET /products/{id}.
func (c *Client) Product(ctx context.Context, id string) (pos.Product, error) {
	var p pos.Product
	err := c.call(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &p)
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) && appErr.HTTPStatus == http.StatusNotFound {
			return pos.Product{}, fmt.Errorf("%w: %s", pos.ErrProductNotFound, id)
		}
		return pos.Product{}, err
	}
	return p, nil
}

// CreateSale implements pos.SaleWriter via POST /sales.
func (c *Client) CreateSale(ctx context.Context, req pos.SaleRequest) (pos.Sale, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return pos.Sale{}, fmt.Errorf("storeclient: encode sale: %w", err)
	}
	var sale pos.Sale
	if err := c.call(ctx, http.MethodPost, "/sales", body, &sale); err != nil {
		return pos.Sale{}, err
	}
	return sale, nil
}

func (c *Client) call(ctx context.Context, method, path string, body []byte, out any) error {
	endpoint := c.base.JoinPath(path)
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("storeclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(ctx, req)
	if resp == nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("store request failed")
		if errors.Is(err, resilience.ErrOpenCircuit) {
			return common.NewAppError("STORE_UNAVAILABLE", "data store temporarily unavailable", http.StatusServiceUnavailable, err)
		}
		return common.NewAppError("STORE_UNREACHABLE", "data store could not be reached", http.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Msg("store request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return common.NewAppError("STORE_BAD_RESPONSE", "data store returned an unreadable response", http.StatusBadGateway, err)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return common.NewAppError("STORE_BAD_RESPONSE", "data store returned an unreadable response", http.StatusBadGateway, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Error.Code == "" {
		return common.NewAppError("STORE_ERROR", fmt.Sprintf("data store responded %s", resp.Status), resp.StatusCode, nil)
	}
	appErr := common.NewAppError(env.Error.Code, env.Error.Message, resp.StatusCode, nil)
	if len(env.Error.Details) > 0 && string(env.Error.Details) != "null" {
		var details any
		if err := json.Unmarshal(env.Error.Details, &details); err == nil {
			appErr = appErr.WithDetails(details)
		}
	}
	return appErr
}
