package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newHandler(cfg, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv
}

func postTool(t *testing.T, url, body string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url+"/tool", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /tool: %v", err)
	}
	defer resp.Body.Close()
	var m map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp.StatusCode, m
}

// ============================================================
// Routes
// ============================================================

func TestTool_ParseTerms(t *testing.T) {
	srv := testServer(t, defaultConfig())
	status, m := postTool(t, srv.URL, `{"tool":"parse_terms","params":{"input":"y[n] = a*x[n]","vars":{"a":0.5}}}`)
	if status != http.StatusOK {
		t.Fatalf("want 200, got %d", status)
	}
	if m["error"] != nil {
		t.Fatalf("unexpected error: %v", m["error"])
	}
	terms, ok := m["result"].([]interface{})
	if !ok || len(terms) != 2 {
		t.Fatalf("want 2 terms, got %v", m["result"])
	}
}

func TestTool_ErrorKind(t *testing.T) {
	srv := testServer(t, defaultConfig())
	_, m := postTool(t, srv.URL, `{"tool":"parse_terms","params":{"input":"y[n] = y[n]"}}`)
	if m["kind"] != "InvalidSampleAccess" {
		t.Errorf("want kind InvalidSampleAccess, got %v", m["kind"])
	}
}

func TestTool_DefaultPoints(t *testing.T) {
	cfg := defaultConfig()
	cfg.DefaultPoints = 5
	srv := testServer(t, cfg)
	_, m := postTool(t, srv.URL, `{"tool":"frequency_response","params":{"input":"y[n] = x[n]"}}`)
	samples, ok := m["result"].([]interface{})
	if !ok || len(samples) != 5 {
		t.Fatalf("want 5 samples, got %v", m["result"])
	}
}

func TestTool_BadJSON(t *testing.T) {
	srv := testServer(t, defaultConfig())
	status, _ := postTool(t, srv.URL, `{"tool":"parse","bogus":1}`)
	if status != http.StatusBadRequest {
		t.Errorf("want 400, got %d", status)
	}
}

func TestTool_MethodNotAllowed(t *testing.T) {
	srv := testServer(t, defaultConfig())
	resp, err := http.Get(srv.URL + "/tool")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("want 405, got %d", resp.StatusCode)
	}
}

func TestSchemaAndHealth(t *testing.T) {
	srv := testServer(t, defaultConfig())
	for _, path := range []string{"/schema", "/health"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		var m map[string]interface{}
		err = json.NewDecoder(resp.Body).Decode(&m)
		resp.Body.Close()
		if err != nil {
			t.Errorf("%s: invalid JSON: %v", path, err)
		}
	}
}

func TestRateLimit(t *testing.T) {
	cfg := defaultConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	srv := testServer(t, cfg)
	codes := []int{}
	for i := 0; i < 2; i++ {
		resp, err := http.Get(srv.URL + "/health")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("want [200 429], got %v", codes)
	}
}

// ============================================================
// Config
// ============================================================

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 || cfg.DefaultPoints != 64 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	data := "port: 9090\nread_timeout: 3s\nrate_limit: 0\ndefault_points: 128\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9090 || cfg.ReadTimeout != 3*time.Second || cfg.RateLimit != 0 || cfg.DefaultPoints != 128 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.WriteTimeout != 15*time.Second {
		t.Errorf("unset keys should keep defaults, got write_timeout %v", cfg.WriteTimeout)
	}
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	if err := os.WriteFile(path, []byte("prot: 9090\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "reading config") {
		t.Errorf("want wrapped read error, got %v", err)
	}
}
