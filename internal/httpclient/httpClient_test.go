package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newTestClient(retries int, interval time.Duration) (*RLHTTPClient, *[]time.Duration) {
	client := NewRLClient(rate.NewLimiter(rate.Inf, 0))
	client.RetryConfig = &RetryConfig{MaxRetries: retries, Interval: interval}

	slept := make([]time.Duration, 0)
	client.sleep = func(d time.Duration) {
		slept = append(slept, d)
	}
	return client, &slept
}

func TestDoRetriesRateLimitWithExponentialBackoff(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, slept := newTestClient(3, 100*time.Millisecond)

	request, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	response, err := client.Do(request)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, 4, calls)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}, *slept)
	_ = response.Body.Close()
}

func TestDoSurfacesRateLimitAfterCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, slept := newTestClient(2, time.Millisecond)

	request, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	response, err := client.Do(request)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, response.StatusCode)
	assert.Len(t, *slept, 2)
	_ = response.Body.Close()
}

func TestDoHonorsRetryAfterHeader(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, slept := newTestClient(1, time.Millisecond)

	request, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	response, err := client.Do(request)

	assert.NoError(t, err)
	assert.Equal(t, []time.Duration{2 * time.Second}, *slept)
	_ = response.Body.Close()
}

func TestDoRetriesServerErrorsOnFixedInterval(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, slept := newTestClient(3, 50*time.Millisecond)

	request, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	response, err := client.Do(request)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, []time.Duration{50 * time.Millisecond}, *slept)
	_ = response.Body.Close()
}

func TestNoRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, slept := newTestClient(0, time.Second)
	client.RetryConfig = NoRetries()

	request, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	response, err := client.Do(request)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	assert.Empty(t, *slept)
	_ = response.Body.Close()
}
