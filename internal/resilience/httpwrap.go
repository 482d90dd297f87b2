package resilience

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUpstream is wrapped when the dependency answers with a 5xx status.
var ErrUpstream = errors.New("resilience: upstream error")

// HTTPClient sends each request exactly once through a circuit breaker.
// Transport errors and 5xx responses count as failures; other statuses are
// returned to the caller untouched.
type HTTPClient struct {
	Client  *http.Client
	Breaker *Breaker
	Timeout time.Duration
}

// Do executes req once. When the breaker is open ErrOpenCircuit is returned
// without contacting the dependency. On a 5xx response the response is
// returned together with an error wrapping ErrUpstream; the caller owns the body.
func (cl HTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if cl.Client == nil {
		return nil, errors.New("resilience: http client not configured")
	}
	if cl.Breaker != nil && !cl.Breaker.Allow(ctx) {
		return nil, ErrOpenCircuit
	}
	callCtx, cancel := cl.callContext(ctx)
	resp, err := cl.Client.Do(req.WithContext(callCtx))
	if err != nil {
		cancel()
		cl.report(ctx, false)
		return nil, err
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	if resp.StatusCode >= 500 {
		cl.report(ctx, false)
		return resp, fmt.Errorf("%w: %s", ErrUpstream, resp.Status)
	}
	cl.report(ctx, true)
	return resp, nil
}

func (cl HTTPClient) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := cl.Timeout
	if timeout <= 0 {
		timeout = cl.Client.Timeout
	}
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

func (cl HTTPClient) report(ctx context.Context, success bool) {
	if cl.Breaker != nil {
		cl.Breaker.Report(ctx, success)
	}
}
