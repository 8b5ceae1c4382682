package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/rosterview/internal/config"
	"github.com/riskibarqy/rosterview/internal/platform/logging"
)

type betterStackRecorder struct {
	mu       sync.Mutex
	requests int
	auth     string
	entries  []map[string]any
}

func (r *betterStackRecorder) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		var batch []map[string]any
		if err := sonic.Unmarshal(body, &batch); err != nil {
			t.Errorf("decode batch %q: %v", body, err)
		}

		r.mu.Lock()
		r.requests++
		r.auth = req.Header.Get("Authorization")
		r.entries = append(r.entries, batch...)
		r.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}
}

func betterStackTestConfig(endpoint, token string) config.Config {
	return config.Config{
		BetterStackEnabled:  true,
		BetterStackEndpoint: endpoint,
		BetterStackToken:    token,
		BetterStackTimeout:  2 * time.Second,
		BetterStackMinLevel: logging.LevelError,
		LogLevel:            logging.LevelError,
		ServiceName:         "rosterview-api",
		AppEnv:              config.EnvDev,
	}
}

func TestInitBetterStackLogger_ShipsErrorLogsInBatches(t *testing.T) {
	t.Parallel()

	recorder := &betterStackRecorder{}
	server := httptest.NewServer(recorder.handler(t))
	defer server.Close()

	logger, shutdown, err := InitBetterStackLogger(betterStackTestConfig(server.URL, "secret-token"), logging.NewNop())
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}

	for i := 0; i < 3; i++ {
		logger.ErrorContext(context.Background(), "upstream failed", "component", "rosterapi", "attempt", i)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if recorder.requests == 0 {
		t.Fatalf("expected Better Stack endpoint to receive at least 1 request")
	}
	if recorder.auth != "Bearer secret-token" {
		t.Fatalf("unexpected authorization header: %q", recorder.auth)
	}
	if len(recorder.entries) != 3 {
		t.Fatalf("unexpected shipped entry count: got=%d want=3", len(recorder.entries))
	}
	if recorder.entries[0]["msg"] != "upstream failed" || recorder.entries[0]["component"] != "rosterapi" {
		t.Fatalf("unexpected entry: %+v", recorder.entries[0])
	}
}

func TestInitBetterStackLogger_RespectsMinLevel(t *testing.T) {
	t.Parallel()

	recorder := &betterStackRecorder{}
	server := httptest.NewServer(recorder.handler(t))
	defer server.Close()

	logger, shutdown, err := InitBetterStackLogger(betterStackTestConfig(server.URL, ""), logging.NewNop())
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}

	logger.InfoContext(context.Background(), "info log should not be shipped")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if recorder.requests != 0 {
		t.Fatalf("expected no request for info log, got %d", recorder.requests)
	}
}

func TestNormalizeBetterStackEndpoint(t *testing.T) {
	cases := map[string]string{
		"":                            "",
		"  in.logs.example.com ":      "https://in.logs.example.com",
		"http://localhost:9000":       "http://localhost:9000",
		"https://in.logs.example.com": "https://in.logs.example.com",
	}
	for raw, want := range cases {
		if got := normalizeBetterStackEndpoint(raw); got != want {
			t.Fatalf("normalize %q: got=%q want=%q", raw, got, want)
		}
	}
}
