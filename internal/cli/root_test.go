package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/evekit/pkg/errors"
	"github.com/matzehuels/evekit/pkg/observability"
)

func TestRootCommandStructure(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := map[string][]string{
		"key":        {"add", "list", "remove", "info", "check", "characters"},
		"char":       {"info", "balance", "sheet", "queue", "journal"},
		"crest":      {"market", "alliances", "alliance", "incursions", "killmail"},
		"cache":      {"clear", "path"},
		"completion": nil,
	}

	for name, subs := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
			continue
		}
		for _, sub := range subs {
			if c, _, err := root.Find([]string{name, sub}); err != nil || c.Name() != sub {
				t.Errorf("subcommand %q %q not registered", name, sub)
			}
		}
	}

	for _, flag := range []string{"config", "no-cache", "metrics-file"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestConfigFlag(t *testing.T) {
	setupEnv(t, "", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("max_in_flight = 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := execute(t, "--config", path, "cache", "path")
	if err == nil || !strings.Contains(err.Error(), "max_in_flight") {
		t.Errorf("err = %v, want max_in_flight validation error", err)
	}
}

func TestFlagErrorsAreInvalidInput(t *testing.T) {
	setupEnv(t, "", "")

	tests := [][]string{
		{"--no-such-flag", "cache", "path"},
		{"key", "list", "-x"},
		{"char", "journal", "main", "1", "--rows", "many"},
	}
	for _, args := range tests {
		err := execute(t, args...)
		if got := ExitCode(err); got != 2 {
			t.Errorf("%v: ExitCode(%v) = %d, want 2", args, err, got)
		}
		if err != nil && !strings.Contains(errors.UserMessage(err), "--help") {
			t.Errorf("%v: message %q does not point at --help", args, errors.UserMessage(err))
		}
	}
}

func TestMetricsFile(t *testing.T) {
	t.Cleanup(observability.Reset)

	api := newFakeXMLAPI(t)
	setupEnv(t, api.URL, "")
	path := filepath.Join(t.TempDir(), "evekit.prom")

	if err := execute(t, "--metrics-file", path, "key", "add", "main", "1", goodVCode); err != nil {
		t.Fatalf("key add: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(data), "evekit_") {
		t.Errorf("metrics file has no evekit series:\n%s", data)
	}
}

func TestCompletionScripts(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var buf strings.Builder
			if err := writeCompletion(root, &buf, shell); err != nil {
				t.Fatalf("writeCompletion(%s) error: %v", shell, err)
			}
			if !strings.Contains(buf.String(), appName) {
				t.Errorf("%s completion does not mention %s", shell, appName)
			}
		})
	}

	if err := writeCompletion(root, io.Discard, "tcsh"); err == nil {
		t.Error("writeCompletion(tcsh) should fail")
	}
}
