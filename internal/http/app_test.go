package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	"localcart/internal/config"
	"localcart/internal/http/handlers"
	applog "localcart/internal/log"
	"localcart/internal/repos"
)

type testEnv struct {
	app  *fiber.App
	deps *handlers.Deps
}

func newTestApp(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Config{
		DBDSN:             ":memory:",
		MediaDir:          t.TempDir(),
		MediaBaseURL:      "/media",
		JWTSecret:         "test-secret",
		TokenTTLMinutes:   60,
		UploadConcurrency: 2,
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	deps, err := handlers.NewDeps(db, cfg)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	return &testEnv{app: handlers.NewApp(deps), deps: deps}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func jsonReq(method, target, token string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// signUpAndLogin registers a fresh account and returns its token.
func (e *testEnv) signUpAndLogin(t *testing.T, first, email string) string {
	t.Helper()
	resp, body := e.do(t, jsonReq("POST", "/auth/signup", "", map[string]string{
		"firstName": first, "lastName": "Test", "email": email, "password": "secret1",
	}))
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("signup: %d %s", resp.StatusCode, body)
	}
	resp, body = e.do(t, jsonReq("POST", "/auth/login", "", map[string]string{"email": email, "password": "secret1"}))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login: %d %s", resp.StatusCode, body)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil || out.Token == "" {
		t.Fatalf("no token in %s", body)
	}
	return out.Token
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func (l *lockedBuf) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.String()
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	buf := &lockedBuf{}
	applog.SetOutput(buf)
	defer applog.SetOutput(os.Stdout)

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func hasAction(entries []logEntry, action string) bool {
	for _, e := range entries {
		if e.Action == action {
			return true
		}
	}
	return false
}
