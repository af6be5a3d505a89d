package httpclient

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

type Doer interface {
	Do(request *http.Request) (*http.Response, error)
}

type RetryConfig struct {
	MaxRetries int
	Interval   time.Duration
}

// RLHTTPClient is a rate-limited HTTP client with bounded retries. Server
// errors (5xx) retry on a fixed interval; HTTP 429 retries with exponential
// backoff, honoring Retry-After when the provider sends one.
type RLHTTPClient struct {
	client      *http.Client
	Ratelimiter *rate.Limiter
	RetryConfig *RetryConfig
	sleep       func(time.Duration)
}

func NewRLClient(limiter *rate.Limiter) *RLHTTPClient {
	return &RLHTTPClient{
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Ratelimiter: limiter,
		sleep:       time.Sleep,
	}
}

func NoRetries() *RetryConfig {
	return &RetryConfig{
		MaxRetries: 0,
		Interval:   0,
	}
}

func (client *RLHTTPClient) Do(request *http.Request) (*http.Response, error) {
	retryConfig := RetryConfig{
		MaxRetries: 3,
		Interval:   1 * time.Second,
	}
	if client.RetryConfig != nil {
		retryConfig = *client.RetryConfig
	}

	var response *http.Response
	var err error

	for attempt := 0; attempt <= retryConfig.MaxRetries; attempt++ {
		err = client.Ratelimiter.Wait(request.Context())
		if err != nil {
			return nil, fmt.Errorf("rate limit burst exceeded %w", err)
		}

		response, err = client.client.Do(request)
		if err != nil {
			return nil, err
		}

		if attempt < retryConfig.MaxRetries {
			if response.StatusCode == http.StatusTooManyRequests {
				_ = response.Body.Close()
				client.sleep(backoffDelay(response, retryConfig.Interval, attempt))
				continue
			}
			if response.StatusCode >= 500 && response.StatusCode < 600 {
				_ = response.Body.Close()
				client.sleep(retryConfig.Interval)
				continue
			}
		}

		break
	}

	return response, err
}

func backoffDelay(response *http.Response, interval time.Duration, attempt int) time.Duration {
	if retryAfter := response.Header.Get("Retry-After"); retryAfter != "" {
		if parsed, parseErr := time.ParseDuration(retryAfter + "s"); parseErr == nil {
			return parsed
		}
	}
	return interval << uint(attempt)
}
