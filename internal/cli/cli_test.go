package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/sourceloc/pkg/errors"
	"github.com/matzehuels/sourceloc/pkg/source"
)

const testCatalog = `apiVersion: backstage.io/v1alpha1
kind: Component
metadata:
  name: api
  annotations:
    backstage.io/source-location: url:https://github.com/acme/api/blob/main/catalog-info.yaml
---
apiVersion: backstage.io/v1alpha1
kind: Component
metadata:
  name: proj
  namespace: team
  annotations:
    backstage.io/source-location: url:https://gitlab.example.com/team/proj
---
apiVersion: backstage.io/v1alpha1
kind: System
metadata:
  name: platform
---
apiVersion: backstage.io/v1alpha1
kind: Component
metadata:
  name: legacy
  annotations:
    backstage.io/source-location: https://github.com/acme/legacy
`

const testConfig = `integrations:
  gitlab:
    - host: gitlab.example.com
      token: ${SOURCELOC_TEST_TOKEN}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestResolveCommandJSON(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog-info.yaml", testCatalog)
	configPath := writeFile(t, dir, "app-config.yaml", testConfig)

	out, err := execute(t, "resolve", "--config", configPath, "--json", "--edit", catalogPath)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	var got []resolveRecord
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d records, want 4", len(got))
	}

	want := []struct {
		entity string
		url    string
		typ    string
		edit   string
		reason source.Reason
	}{
		{"component:default/api", "https://github.com/acme/api/blob/main/catalog-info.yaml", "github", "https://github.com/acme/api/edit/main/catalog-info.yaml", source.ReasonResolved},
		{"component:team/proj", "https://gitlab.example.com/team/proj", "gitlab", "https://gitlab.example.com/team/proj", source.ReasonResolved},
		{"system:default/platform", "", "", "", source.ReasonNoAnnotation},
		{"component:default/legacy", "", "", "", source.ReasonInvalidReference},
	}
	for i, w := range want {
		g := got[i]
		if g.Entity != w.entity || g.URL != w.url || g.Type != w.typ || g.EditURL != w.edit || g.Reason != w.reason {
			t.Errorf("record %d = %+v, want %+v", i, g, w)
		}
		if g.File != catalogPath {
			t.Errorf("record %d file = %q", i, g.File)
		}
	}
	if got[3].Error == "" {
		t.Error("invalid reference should carry an error message")
	}
}

func TestResolveCommandConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog-info.yaml", testCatalog)
	t.Setenv("SOURCELOC_CONFIG", writeFile(t, dir, "app-config.yaml", testConfig))

	out, err := execute(t, "resolve", "--json", catalogPath)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	var got []resolveRecord
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got[1].Type != "gitlab" {
		t.Errorf("config from env not applied: %+v", got[1])
	}
}

func TestResolveCommandText(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog-info.yaml", testCatalog)

	out, err := execute(t, "resolve", catalogPath)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, want := range []string{
		"component:default/api",
		"https://github.com/acme/api/blob/main/catalog-info.yaml",
		"https://gitlab.example.com/team/proj",
		"no matching integration",
		"system:default/platform has no source location",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestResolveCommandManagedByFallback(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog-info.yaml", `kind: Component
metadata:
  name: managed
  annotations:
    backstage.io/managed-by-location: url:https://github.com/acme/managed/blob/main/catalog-info.yaml
`)

	for _, tt := range []struct {
		args []string
		want source.Reason
	}{
		{[]string{"resolve", "--json", catalogPath}, source.ReasonNoAnnotation},
		{[]string{"resolve", "--json", "--managed-by-fallback", catalogPath}, source.ReasonResolved},
	} {
		out, err := execute(t, tt.args...)
		if err != nil {
			t.Fatal(err)
		}
		var got []resolveRecord
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Reason != tt.want {
			t.Errorf("%v: got %+v, want reason %s", tt.args, got, tt.want)
		}
	}
}

func TestResolveCommandErrors(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog-info.yaml", testCatalog)
	badConfig := writeFile(t, dir, "bad.yaml", "integrations:\n  github:\n    - host: https://github.com\n")

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"resolve", filepath.Join(dir, "missing.yaml")}, errors.ErrCodeFileNotFound},
		{"missing config", []string{"resolve", "--config", filepath.Join(dir, "none.yaml"), catalogPath}, errors.ErrCodeFileNotFound},
		{"invalid config", []string{"resolve", "--config", badConfig, catalogPath}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestResolveCommandRequiresFiles(t *testing.T) {
	if _, err := execute(t, "resolve"); err == nil {
		t.Error("resolve without files should fail")
	}
}

func TestIntegrationsCommand(t *testing.T) {
	configPath := writeFile(t, t.TempDir(), "app-config.yaml", testConfig)

	out, err := execute(t, "integrations", "--config", configPath, "--json")
	if err != nil {
		t.Fatalf("integrations: %v", err)
	}
	var got []integrationRecord
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	wantHosts := []string{"github.com", "gitlab.example.com", "gitlab.com", "bitbucket.org", "dev.azure.com"}
	if len(got) != len(wantHosts) {
		t.Fatalf("got %d integrations, want %d", len(got), len(wantHosts))
	}
	for i, h := range wantHosts {
		if got[i].Host != h {
			t.Errorf("integration %d host = %q, want %q", i, got[i].Host, h)
		}
	}

	out, err = execute(t, "integrations", "--config", configPath)
	if err != nil {
		t.Fatalf("integrations: %v", err)
	}
	for _, want := range []string{"TYPE", "gitlab.example.com", "bitbucket"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "sourceloc") {
		t.Error("bash completion should mention the command name")
	}

	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestRunServeShutsDownOnCancel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	ctx, cancel := context.WithCancel(withLogger(context.Background(), c.Logger))

	done := make(chan error, 1)
	go func() {
		done <- c.runServe(ctx, "127.0.0.1:0", false)
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runServe() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunServeListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	c := New(io.Discard, LogInfo)
	err = c.runServe(withLogger(context.Background(), c.Logger), ln.Addr().String(), false)
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("runServe() on a bound address = %v, want code %s", err, errors.ErrCodeInternal)
	}
}

func TestVerboseLogging(t *testing.T) {
	catalogPath := writeFile(t, t.TempDir(), "catalog-info.yaml", testCatalog)

	tests := []struct {
		name    string
		args    []string
		env     string
		wantLog bool
	}{
		{"default", []string{"resolve", catalogPath}, "", false},
		{"flag", []string{"resolve", "-v", catalogPath}, "", true},
		{"env", []string{"resolve", catalogPath}, "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("SOURCELOC_VERBOSE", tt.env)
			}
			var logs bytes.Buffer
			c := New(&logs, LogInfo)
			root := c.RootCommand()
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)
			root.SetArgs(tt.args)
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatal(err)
			}

			got := strings.Contains(logs.String(), "reason=invalid_reference")
			if got != tt.wantLog {
				t.Errorf("debug resolution log present = %v, want %v\n%s", got, tt.wantLog, logs.String())
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	for _, key := range []string{"version", "commit", "date", "goVersion", "platform"} {
		if got[key] == "" {
			t.Errorf("version output missing %q: %v", key, got)
		}
	}
}
