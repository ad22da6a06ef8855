package network

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

func newTestController(t *testing.T) *Controller {
	t.Helper()
	keyA, err := crypto.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey() error = %v", err)
	}
	cfg := model.Config{
		Agent: model.Agent{Address: "203.0.113.5"},
		Network: model.Network{
			Identifier: "home",
			Subnet:     "192.168.10.0/24",
			ThisPeer:   "peer-a",
			Peers: map[string]model.Peer{
				"peer-a": {Name: "a", Address: "192.168.10.1", PrivateKey: keyA},
			},
			Connections:  map[string]model.Connection{},
			Reservations: map[string]model.Reservation{},
			UpdatedAt:    model.NowString(),
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
	return NewController(configstore.New(path, nil))
}

func newTestEngine(ctl *Controller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/api/network/summary", ctl.Summary)
	engine.PATCH("/api/network/config", ctl.PatchConfig)
	engine.POST("/api/network/reserve/address", ctl.ReserveAddress)
	return engine
}

func TestSummaryOnlyDigest(t *testing.T) {
	engine := newTestEngine(newTestController(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/network/summary?only_digest=true", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", rec.Code, rec.Body.String())
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("peer-a")) {
		t.Errorf("only_digest=true response leaked network content: %s", rec.Body.String())
	}
}

func TestSummaryFull(t *testing.T) {
	engine := newTestEngine(newTestController(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/network/summary", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", rec.Code, rec.Body.String())
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("peer-a")) {
		t.Errorf("expected full summary to include peer-a, got %s", rec.Body.String())
	}
}

func TestPatchConfigStaleDigestConflicts(t *testing.T) {
	engine := newTestEngine(newTestController(t))

	body := `{"identifier":"home","subnet":"192.168.10.0/24","this_peer":"peer-a","peers":{"peer-a":{"name":"a","address":"192.168.10.1"}}}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/network/config", bytes.NewBufferString(body))
	req.Header.Set("If-Match", "not-the-real-digest")
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d, body = %s", rec.Code, http.StatusConflict, rec.Body.String())
	}
}

func TestReserveAddressAllocatesFreeHost(t *testing.T) {
	engine := newTestEngine(newTestController(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/network/reserve/address", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", rec.Code, rec.Body.String())
	}
	if bytes.Contains(rec.Body.Bytes(), []byte(`"address":"192.168.10.1"`)) {
		t.Errorf("reserved address collided with the existing peer: %s", rec.Body.String())
	}
}
