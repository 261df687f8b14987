package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bobby-s-dev/weather-panel/pkg/client"
	"go.uber.org/zap"
)

// newProviderPanel wires a panel to a real OpenWeather client with the
// default breaker threshold.
func newProviderPanel(baseURL string) *Panel {
	weather := client.NewOpenWeatherClient(client.StaticKey("test-key"), baseURL, client.ClientConfig{
		Timeout:        2 * time.Second,
		BreakerTimeout: time.Minute,
	}, zap.NewNop())
	return NewPanel(weather, zap.NewNop())
}

func TestSubmitReachesProviderAfterTransportFailures(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 5 {
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("hijacking not supported")
			}
			conn, _, _ := hj.Hijack()
			conn.Close()
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(londonBody))
	}))
	defer srv.Close()

	panel := newProviderPanel(srv.URL)
	for i := 0; i < 5; i++ {
		state, err := panel.Submit(context.Background(), "London")
		if err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", i, err)
		}
		if state.Status() != StatusError || state.Message() != NetworkErrorMessage {
			t.Fatalf("attempt %d: expected network error, got %s %q", i, state.Status(), state.Message())
		}
	}

	state, err := panel.Submit(context.Background(), "London")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report, ok := state.Report(); !ok || report.City != "London" {
		t.Errorf("expected London to load once the provider recovers, got %s %+v", state.Status(), report)
	}
	if got := atomic.LoadInt32(&hits); got != 6 {
		t.Errorf("expected every submit to reach the provider, got %d hits", got)
	}
}

func TestSubmitAgainstProvider(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		want     Status
		message  string
		category Category
	}{
		{"rainy report", http.StatusOK, londonBody, StatusLoaded, "", CategoryRainy},
		{"city not found", http.StatusNotFound, `{"cod":"404","message":"city not found"}`, StatusError, "city not found", ""},
		{"malformed body", http.StatusBadGateway, "<html>bad gateway</html>", StatusError, NetworkErrorMessage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("q"); got != "London" {
					t.Errorf("expected q=London, got %q", got)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			state, err := newProviderPanel(srv.URL).Submit(context.Background(), " London ")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if state.Status() != tt.want || state.Message() != tt.message {
				t.Fatalf("expected %s %q, got %s %q", tt.want, tt.message, state.Status(), state.Message())
			}
			if state.Category() != tt.category {
				t.Errorf("expected category %q, got %q", tt.category, state.Category())
			}
			if tt.want != StatusLoaded {
				return
			}

			report, _ := state.Report()
			if report.City != "London" || report.Temperature != 15.5 || report.Humidity != 60 || report.WindSpeed != 12 || report.Icon != "10d" {
				t.Errorf("unexpected report: %+v", report)
			}
		})
	}
}
