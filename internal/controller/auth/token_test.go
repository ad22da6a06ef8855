package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"

	"github.com/wgquickrs/agent/internal/pkg/configstore"
	"github.com/wgquickrs/agent/internal/pkg/crypto"
	"github.com/wgquickrs/agent/internal/pkg/model"
)

func newTestStore(t *testing.T, passwordEnabled bool, passwordHash string) *configstore.Store {
	t.Helper()
	cfg := model.Config{
		Agent: model.Agent{
			Web: model.AgentWeb{Password: model.PasswordAuth{Enabled: passwordEnabled, Hash: passwordHash}},
		},
		Network: model.Network{
			Peers:        map[string]model.Peer{},
			Connections:  map[string]model.Connection{},
			Reservations: map[string]model.Reservation{},
		},
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "conf.yml")
	if err := os.WriteFile(path, out, 0o600); err != nil {
		t.Fatalf("os.WriteFile() error = %v", err)
	}
	return configstore.New(path, nil)
}

func doTokenRequest(t *testing.T, ctl *Controller, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/api/token", ctl.Token)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/token", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	return rec
}

func TestTokenPasswordAuthDisabledReturnsNoContent(t *testing.T) {
	store := newTestStore(t, false, "")
	issuer, err := crypto.NewTokenIssuer()
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}
	ctl := NewController(store, issuer)

	rec := doTokenRequest(t, ctl, `{"client_id":"cli","password":"anything"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d, body = %s", rec.Code, http.StatusNoContent, rec.Body.String())
	}
}

func TestTokenWrongPasswordReturnsUnauthorized(t *testing.T) {
	hash, err := crypto.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	store := newTestStore(t, true, hash)
	issuer, err := crypto.NewTokenIssuer()
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}
	ctl := NewController(store, issuer)

	rec := doTokenRequest(t, ctl, `{"client_id":"cli","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d, body = %s", rec.Code, http.StatusUnauthorized, rec.Body.String())
	}
}

func TestTokenCorrectPasswordIssuesToken(t *testing.T) {
	hash, err := crypto.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	store := newTestStore(t, true, hash)
	issuer, err := crypto.NewTokenIssuer()
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}
	ctl := NewController(store, issuer)

	rec := doTokenRequest(t, ctl, `{"client_id":"cli","password":"correct-horse"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body = %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected a non-empty body carrying the token")
	}
}
