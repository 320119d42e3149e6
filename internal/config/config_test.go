package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agsys/routeplan/internal/model"
)

func writeTmp(t *testing.T, content string) string {
	t.Helper()
	fp := filepath.Join(t.TempDir(), "routes.yaml")
	if err := os.WriteFile(fp, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return fp
}

func TestLoad_Manifest(t *testing.T) {
	yml := `
services:
  - name: api
    backend: function
    target: arn:aws:lambda:us-east-1:123456789012:function:api-dev-latest
    allow_root_method: true
  - name: runner
    backend: container
    target: https://runner.internal:8443
    path_prefix: /runner/
    auth: api_key
    timeout_ms: 15000
    throttle:
      requests_per_second: 50
      burst: 100
`
	decls, err := Load(writeTmp(t, yml))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(decls) != 2 {
		t.Fatalf("decls: got %d, want 2", len(decls))
	}

	api := decls[0]
	if api.Backend != model.FunctionBackend || !api.AllowRootMethod || api.PathPrefix != "" {
		t.Fatalf("api declaration unexpected: %+v", api)
	}
	runner := decls[1]
	if runner.Backend != model.ContainerBackend || runner.Auth != model.AuthAPIKey {
		t.Fatalf("runner declaration unexpected: %+v", runner)
	}
	if got, want := runner.TimeoutMillis, 15000; got != want {
		t.Fatalf("timeout: got %d, want %d", got, want)
	}
	if runner.Throttle == nil || runner.Throttle.Rate != 50 || runner.Throttle.Burst != 100 {
		t.Fatalf("throttle: got %+v", runner.Throttle)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yml  string
		want string
	}{
		{
			name: "no services",
			yml:  "services: []",
			want: "at least one",
		},
		{
			name: "missing backend",
			yml:  "services:\n  - name: a\n    target: x",
			want: "backend is required",
		},
		{
			name: "unknown backend",
			yml:  "services:\n  - name: a\n    backend: vm\n    target: x",
			want: `unknown backend "vm"`,
		},
		{
			name: "unknown auth",
			yml:  "services:\n  - name: a\n    backend: function\n    target: x\n    auth: mtls",
			want: `unknown auth "mtls"`,
		},
		{
			name: "missing target",
			yml:  "services:\n  - name: a\n    backend: function",
			want: "target is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}
