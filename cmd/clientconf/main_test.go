package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const testDocument = `dev:
  danger_accept_invalid_hostnames: true
  danger_accept_invalid_certs: false
plain:
  https_only: false
`

func setup(t *testing.T) string {
	t.Helper()

	original := newLogger
	t.Cleanup(func() {
		newLogger = original
	})
	newLogger = func(string) (*zap.Logger, error) {
		return zaptest.NewLogger(t), nil
	}

	path := filepath.Join(t.TempDir(), "client-config.yml")
	if err := os.WriteFile(path, []byte(testDocument), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CLIENTCONF_TEST_CONFIG", "")
	return path
}

func TestRunShowText(t *testing.T) {
	path := setup(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", path, "--config-env-var", "CLIENTCONF_TEST_CONFIG", "-e", "dev", "show"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (%s)", code, stderr.String())
	}

	want := "danger_accept_invalid_hostnames=true\ndanger_accept_invalid_certs=false\n"
	if stdout.String() != want {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}
}

func TestRunShowYAMLIsDefaultCommand(t *testing.T) {
	path := setup(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", path, "--config-env-var", "CLIENTCONF_TEST_CONFIG", "-e", "dev", "--format", "yaml"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (%s)", code, stderr.String())
	}

	want := "danger_accept_invalid_hostnames: true\ndanger_accept_invalid_certs: false\n"
	if stdout.String() != want {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}
}

func TestRunShowPrintsDefaultsOnAbsence(t *testing.T) {
	path := setup(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", path, "--config-env-var", "CLIENTCONF_TEST_CONFIG", "-e", "INVALID", "show"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (%s)", code, stderr.String())
	}

	out := stdout.String()
	for _, line := range []string{"danger_accept_invalid_certs=false", "follow_redirects=true", "force_http2=true"} {
		if !strings.Contains(out, line+"\n") {
			t.Fatalf("expected %q in output:\n%s", line, out)
		}
	}
}

func TestRunProbe(t *testing.T) {
	path := setup(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", path, "--config-env-var", "CLIENTCONF_TEST_CONFIG", "-e", "plain", "probe", srv.URL, "--timeout", "5s"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (%s)", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "HTTP/1.1 200 OK") {
		t.Fatalf("unexpected probe output %q", stdout.String())
	}
}

func TestRunProbeFailsOnUnreachableScheme(t *testing.T) {
	path := setup(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", path, "--config-env-var", "CLIENTCONF_TEST_CONFIG", "probe", "gopher://example.invalid"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRunRejectsInvalidInput(t *testing.T) {
	setup(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--no-such-flag"}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit code 2 for unknown flag, got %d", code)
	}
	if code := run([]string{"--format", "json"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1 for invalid format, got %d", code)
	}
}
