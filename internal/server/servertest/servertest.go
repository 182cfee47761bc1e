// Package servertest runs the in-memory backend on a local listener for tests.
package servertest

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/server"
	"github.com/jonathan/resume-screener/internal/server/ratelimit"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Clock is a settable time source shared by the backend and the test.
type Clock struct {
	mu sync.Mutex
	t  time.Time
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// Env is a running backend.
type Env struct {
	Server *server.Server
	HTTP   *httptest.Server
	Clock  *Clock
	URL    string
}

// Start is the initial time of every Env clock.
var Start = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// New starts a backend with a fixed clock, minimum bcrypt cost and rate
// limiting disabled. It is shut down when the test ends.
func New(t testing.TB) *Env {
	t.Helper()
	clock := &Clock{t: Start}
	srv, err := server.New(server.Config{
		Logger:    zap.NewNop().Sugar(),
		JWT:       &config.JWTConfig{Secret: "servertest-secret-0123456789abcdef", ExpirationHours: 24},
		Password:  &config.PasswordConfig{BcryptCost: bcrypt.MinCost},
		RateLimit: &ratelimit.Config{Enabled: false},
		Now:       clock.Now,
	})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &Env{Server: srv, HTTP: ts, Clock: clock, URL: ts.URL}
}
