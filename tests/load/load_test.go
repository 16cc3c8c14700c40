//go:build load
// +build load

// Package load drives a running scoreboard with a steady request rate.
// Start the server, mint a token with `scoreboardctl token` and export it as
// SCOREBOARD_TOKEN before running `go test -tags load ./tests/load`.
package load

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const (
	targetRPS      = 20
	duration       = 30 * time.Second
	maxLatencyP99  = 100 * time.Millisecond
	minSuccessRate = 0.999
	rpsTolerance   = 0.1
)

func baseURL() string {
	if u := os.Getenv("SCOREBOARD_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

type metrics struct {
	total     int
	succeeded int
	latencies []time.Duration
}

func (m *metrics) percentile(p int) time.Duration {
	sorted := make([]time.Duration, len(m.latencies))
	copy(sorted, m.latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted[len(sorted)*p/100]
}

// requireServer fails fast when nothing answers /health.
func requireServer(t *testing.T) *http.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("load tests are skipped in short mode")
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(baseURL() + "/health")
	if err != nil {
		t.Fatalf("server is not running at %s: %v", baseURL(), err)
	}
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "server is unhealthy")
	return &http.Client{Timeout: 10 * time.Second}
}

// run sends build's requests at targetRPS for the whole duration.
func run(t *testing.T, name string, client *http.Client, build func(i int) *http.Request) {
	t.Helper()
	limiter := rate.NewLimiter(rate.Limit(targetRPS), 1)
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	m := &metrics{}
	start := time.Now()
	for i := 0; ; i++ {
		// Wait fails once the next slot falls past the deadline.
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		reqStart := time.Now()
		resp, err := client.Do(build(i))
		m.latencies = append(m.latencies, time.Since(reqStart))
		m.total++
		if err != nil {
			if m.total-m.succeeded <= 3 {
				t.Logf("request error: %v", err)
			}
			continue
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			m.succeeded++
		} else if m.total-m.succeeded <= 3 {
			body, _ := io.ReadAll(resp.Body)
			t.Logf("request failed: status=%d body=%s", resp.StatusCode, body)
		}
		resp.Body.Close()
	}
	elapsed := time.Since(start)
	require.NotZero(t, m.total)

	successRate := float64(m.succeeded) / float64(m.total)
	actualRPS := float64(m.total) / elapsed.Seconds()
	p99 := m.percentile(99)

	t.Logf("%s: %d requests in %v, success %.2f%%, %.1f rps, p50 %v, p95 %v, p99 %v",
		name, m.total, elapsed, successRate*100, actualRPS, m.percentile(50), m.percentile(95), p99)

	require.GreaterOrEqual(t, successRate, minSuccessRate)
	require.LessOrEqual(t, p99, maxLatencyP99)
	require.InDelta(t, float64(targetRPS), actualRPS, targetRPS*rpsTolerance)
}

func TestLoad_CellEdits(t *testing.T) {
	client := requireServer(t)
	token := os.Getenv("SCOREBOARD_TOKEN")
	if token == "" {
		t.Skip("SCOREBOARD_TOKEN is not set")
	}

	run(t, "cell edits", client, func(i int) *http.Request {
		body := []byte(fmt.Sprintf(`{"value":"%d"}`, i%10))
		req, _ := http.NewRequest(http.MethodPut, baseURL()+"/games/1/innings/0/0", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	})
}

func TestLoad_Standings(t *testing.T) {
	client := requireServer(t)

	run(t, "standings", client, func(int) *http.Request {
		req, _ := http.NewRequest(http.MethodGet, baseURL()+"/statistics/standings", nil)
		return req
	})
}

func TestLoad_Leaders(t *testing.T) {
	client := requireServer(t)

	run(t, "leaders", client, func(int) *http.Request {
		req, _ := http.NewRequest(http.MethodGet, baseURL()+"/statistics/leaders?limit=5", nil)
		return req
	})
}
