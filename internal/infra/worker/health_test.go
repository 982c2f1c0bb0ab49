package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"
)

// startHealthServer boots a server on addr and waits until it answers.
func startHealthServer(t *testing.T, addr string) *HealthServer {
	t.Helper()
	server := NewHealthServer(addr, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		time.Sleep(50 * time.Millisecond)
	})

	go func() {
		if err := server.Start(ctx); err != nil && err != http.ErrServerClosed {
			t.Errorf("unexpected server error: %v", err)
		}
	}()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(fmt.Sprintf("http://%s/health", addr))
		if err == nil {
			_ = resp.Body.Close()
			return server
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("health server on %s did not start", addr)
	return nil
}

func getStatus(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var parsed healthResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("unmarshal %q: %v", body, err)
	}
	return resp.StatusCode, parsed.Status
}

func TestHealthServer_Liveness(t *testing.T) {
	startHealthServer(t, "localhost:19091")

	code, status := getStatus(t, "http://localhost:19091/health")
	if code != http.StatusOK {
		t.Errorf("expected 200, got %d", code)
	}
	if status != "ok" {
		t.Errorf("expected status 'ok', got %q", status)
	}
}

func TestHealthServer_ReadinessTransitions(t *testing.T) {
	server := startHealthServer(t, "localhost:19092")
	url := "http://localhost:19092/health/ready"

	// Not ready before initialization completes.
	code, status := getStatus(t, url)
	if code != http.StatusServiceUnavailable || status != "not ready" {
		t.Errorf("expected 503/'not ready' initially, got %d/%q", code, status)
	}

	server.SetReady(true)
	code, status = getStatus(t, url)
	if code != http.StatusOK || status != "ok" {
		t.Errorf("expected 200/'ok' after SetReady(true), got %d/%q", code, status)
	}

	// Shutdown flips back to not ready so the orchestrator drains traffic.
	server.SetReady(false)
	code, _ = getStatus(t, url)
	if code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 after SetReady(false), got %d", code)
	}
}

func TestHealthServer_GracefulShutdown(t *testing.T) {
	server := NewHealthServer("localhost:19095", testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(ctx)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get("http://localhost:19095/health")
		if err == nil {
			_ = resp.Body.Close()
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()

	select {
	case err := <-errChan:
		if err != http.ErrServerClosed {
			t.Errorf("expected http.ErrServerClosed, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("shutdown timeout")
	}

	if _, err := http.Get("http://localhost:19095/health"); err == nil {
		t.Error("expected connection error after shutdown")
	}
}

func TestNewHealthServer_StartsNotReady(t *testing.T) {
	server := NewHealthServer(":19099", testLogger())

	if server.addr != ":19099" {
		t.Errorf("expected addr ':19099', got %q", server.addr)
	}
	if server.isReady == nil || server.isReady.Load() {
		t.Error("server must start not ready")
	}

	server.SetReady(true)
	if !server.isReady.Load() {
		t.Error("SetReady(true) did not take effect")
	}
}
