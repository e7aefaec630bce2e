package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// redactedError hides secrets that the transport put into its message,
// typically the request URL of a *url.Error.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }

// doRequest executes req once through the circuit breaker. Only transport
// errors count against the breaker. Any answer that arrived, 5xx included,
// is returned to the caller for classification. There are no retries.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	req *http.Request,
	secret string,
) (weather.UpstreamResponse, error) {
	if client == nil {
		return weather.UpstreamResponse{}, errNoHTTPClient
	}

	req = req.WithContext(ctx)

	var out *weather.UpstreamResponse
	_, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, readErr
		}
		out = &weather.UpstreamResponse{StatusCode: resp.StatusCode, Body: body}
		return nil, nil
	})

	if err == nil && out != nil {
		return *out, nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return weather.UpstreamResponse{}, fmt.Errorf("%w: %v", errCircuitOpen, err)
	}
	return weather.UpstreamResponse{}, scrub(err, secret)
}

// scrub drops the request URL from transport errors and redacts the secret
// from whatever remains.
func scrub(err error, secret string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &redactedError{
			msg: common.Redact(fmt.Sprintf("%s request: %v", urlErr.Op, urlErr.Err), secret),
			err: urlErr.Err,
		}
	}
	return &redactedError{msg: common.Redact(err.Error(), secret), err: err}
}
