package throttle

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewRoundTripper_Validation(t *testing.T) {
	testCases := map[string]struct {
		rps    int
		burst  int
		expErr error
	}{
		"zeroRPS":       {rps: 0, burst: 10, expErr: ErrMustNotBeZero},
		"negativeRPS":   {rps: -5, burst: 10, expErr: ErrMustNotBeZero},
		"zeroBurst":     {rps: 10, burst: 0, expErr: ErrMustNotBeZero},
		"negativeBurst": {rps: 10, burst: -5, expErr: ErrMustNotBeZero},
		"valid":         {rps: 10, burst: 20},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			rt, err := NewRoundTripper(tc.rps, tc.burst, nil, http.DefaultTransport)

			if tc.expErr != nil {
				if !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v; got: %v", tc.expErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("exp nil err, got: %v", err)
			}
			if rt == nil {
				t.Error("exp non-nil RoundTripper")
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	testCases := map[string]struct {
		rps         int
		burst       int
		numRequests int
		reqTimeout  time.Duration
		preCancel   bool
		expErrs     int
		expErr      error
		minDuration time.Duration
		maxDuration time.Duration
	}{
		"withinBurst": {
			rps:         5,
			burst:       5,
			numRequests: 5,
			maxDuration: 200 * time.Millisecond,
		},
		"highLimits": {
			rps:         10000,
			burst:       100,
			numRequests: 50,
			maxDuration: 500 * time.Millisecond,
		},
		"exceedBurstWaits": {
			rps:         10,
			burst:       5,
			numRequests: 8,
			reqTimeout:  2 * time.Second,
			// three requests beyond the burst at 10rps.
			minDuration: 250 * time.Millisecond,
		},
		"exceedBurstDeadline": {
			rps:         5,
			burst:       2,
			numRequests: 5,
			reqTimeout:  50 * time.Millisecond,
			expErrs:     3,
			expErr:      ErrWaitingFailed,
		},
		"preCancelled": {
			rps:         20,
			burst:       10,
			numRequests: 1,
			preCancel:   true,
			expErrs:     1,
			expErr:      ErrContextEnded,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			rt, err := NewRoundTripper(tc.rps, tc.burst, nil, http.DefaultTransport)
			if err != nil {
				t.Fatal(err)
			}
			hc := &http.Client{Transport: rt}

			var wg sync.WaitGroup
			errs := make([]error, tc.numRequests)

			start := time.Now()
			for i := range tc.numRequests {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()

					var (
						ctx    context.Context
						cancel context.CancelFunc
					)
					if tc.reqTimeout > 0 {
						ctx, cancel = context.WithTimeout(t.Context(), tc.reqTimeout)
					} else {
						ctx, cancel = context.WithCancel(t.Context())
					}
					defer cancel()
					if tc.preCancel {
						cancel()
					}

					req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
					if err != nil {
						errs[idx] = err
						return
					}

					resp, err := hc.Do(req)
					if err != nil {
						errs[idx] = err
						return
					}
					resp.Body.Close()
				}(i)
			}
			wg.Wait()
			elapsed := time.Since(start)

			var failed int
			for _, err := range errs {
				if err == nil {
					continue
				}
				failed++
				if tc.expErr != nil && !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v, got: %v", tc.expErr, err)
				}
			}

			if failed != tc.expErrs {
				t.Errorf("exp %d failed requests, got %d", tc.expErrs, failed)
			}
			if got, exp := int(hits.Load()), tc.numRequests-failed; got != exp {
				t.Errorf("exp %d requests to reach the server, got %d", exp, got)
			}
			if tc.minDuration > 0 && elapsed < tc.minDuration {
				t.Errorf("exp throttling to take at least %v, took %v", tc.minDuration, elapsed)
			}
			if tc.maxDuration > 0 && elapsed > tc.maxDuration {
				t.Errorf("exp requests to finish within %v, took %v", tc.maxDuration, elapsed)
			}
		})
	}
}

func TestRoundTrip_LogsExhaustedBucket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&syncWriter{w: &buf}, nil))

	rt, err := NewRoundTripper(50, 1, func() *slog.Logger { return logger }, http.DefaultTransport)
	if err != nil {
		t.Fatal(err)
	}
	hc := &http.Client{Transport: rt}

	for range 2 {
		req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL+"/todos", nil)
		if err != nil {
			t.Fatal(err)
		}
		resp, err := hc.Do(req)
		if err != nil {
			t.Fatalf("exp nil err, got: %v", err)
		}
		resp.Body.Close()
	}

	logs := buf.String()
	if !strings.Contains(logs, "throttle tokens exhausted") {
		t.Errorf("exp exhausted log line, got: %q", logs)
	}
	if !strings.Contains(logs, "path=/todos") {
		t.Errorf("exp path attribute in logs, got: %q", logs)
	}
}

type syncWriter struct {
	mu sync.Mutex
	w  *bytes.Buffer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
