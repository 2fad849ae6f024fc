package transport

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogdash/internal/metrics"
)

type stubTransport struct {
	calls atomic.Int32
	do    func(n int32, req *http.Request) (*http.Response, error)
}

func (s *stubTransport) Do(req *http.Request) (*http.Response, error) {
	return s.do(s.calls.Add(1), req)
}

func newReq(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://catalog.local/api/products/", nil)
	require.NoError(t, err)
	return req
}

func TestRetryTransport_DoesNotRetryStatuses(t *testing.T) {
	stub := &stubTransport{do: func(int32, *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusServiceUnavailable, Body: http.NoBody}, nil
	}}
	rt := &RetryTransport{Base: stub, MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}

	resp, err := rt.Do(newReq(t))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestRetryTransport_RetriesConnectionErrors(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	stub := &stubTransport{do: func(n int32, _ *http.Request) (*http.Response, error) {
		if n < 3 {
			return nil, refused
		}
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	}}
	rt := &RetryTransport{Base: stub, MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}

	resp, err := rt.Do(newReq(t))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), stub.calls.Load())
}

func TestRetryTransport_TimeoutIsFinal(t *testing.T) {
	stub := &stubTransport{do: func(int32, *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	}}
	rt := &RetryTransport{Base: stub, MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}

	_, err := rt.Do(newReq(t))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestMetricsTransport_CountsByPathAndCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	m := metrics.NewUpstream(prometheus.NewRegistry())
	tr, err := Build(Options{HTTPClient: srv.Client(), Metrics: m})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/products/", nil)
	require.NoError(t, err)
	resp, err := tr.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues("/api/products/", "404")))
}

func TestConcurrencyTransport_HonoursContext(t *testing.T) {
	stub := &stubTransport{do: func(int32, *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	}}
	ct := &ConcurrencyTransport{Base: stub, sem: newSemaphore(1)}
	require.NoError(t, ct.sem.acquire(context.Background()))
	defer ct.sem.release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	req := newReq(t).WithContext(ctx)

	_, err := ct.Do(req)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(0), stub.calls.Load())
}

func TestBuild_Validates(t *testing.T) {
	_, err := Build(Options{})
	assert.Error(t, err)

	_, err = Build(Options{HTTPClient: http.DefaultClient, Retries: -1})
	assert.Error(t, err)
}
