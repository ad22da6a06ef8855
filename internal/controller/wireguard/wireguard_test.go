package wireguard

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeDriver struct {
	status      string
	enableErr   error
	disableErr  error
	enableCalls int
}

func (f *fakeDriver) Status() string { return f.status }

func (f *fakeDriver) EnableTunnel(ctx context.Context) error {
	f.enableCalls++
	if f.enableErr != nil {
		return f.enableErr
	}
	f.status = "up"
	return nil
}

func (f *fakeDriver) DisableTunnel(ctx context.Context) error {
	if f.disableErr != nil {
		return f.disableErr
	}
	f.status = "down"
	return nil
}

func newTestEngine(driver TunnelDriver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/api/wireguard/status", NewController(driver).Status)
	return engine
}

func TestStatusUpTransitionsDriver(t *testing.T) {
	driver := &fakeDriver{status: "down"}
	engine := newTestEngine(driver)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/wireguard/status", bytes.NewBufferString(`{"status":"up"}`))
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", rec.Code, rec.Body.String())
	}
	if driver.enableCalls != 1 {
		t.Errorf("EnableTunnel calls = %d, want 1", driver.enableCalls)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"up"`)) {
		t.Errorf("expected response to echo status up, got %s", rec.Body.String())
	}
}

func TestStatusInvalidValueRejected(t *testing.T) {
	engine := newTestEngine(&fakeDriver{status: "down"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/wireguard/status", bytes.NewBufferString(`{"status":"sideways"}`))
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body = %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}
