package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shardline/pkg/errors"
)

// executeCommand runs the root command with args and returns stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
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

func testdata(name string) string {
	return filepath.Join("testdata", name)
}

func TestRunCommandText(t *testing.T) {
	out, err := executeCommand(t, "run", testdata("codex9.toml"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, want := range []string{
		"Codex-9",
		"Decode fragment",
		"Activation",
		"Activation order:",
		"Blueprint successfully restored. Codex-9 reboot complete.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("run output missing %q:\n%s", want, out)
		}
	}
}

func TestRunCommandJSON(t *testing.T) {
	got := runJSON(t, "run", testdata("codex9.toml"))

	if got.Protocol != "codex9" {
		t.Errorf("protocol = %q, want codex9", got.Protocol)
	}
	if diff := cmp.Diff([]string{"104", "215", "412", "518", "309"}, got.Order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"load_104", "verify_215"}, got.Actions); diff != "" {
		t.Errorf("actions (-want +got):\n%s", diff)
	}
	wantSorted := []string{"518", "309", "104", "412", "215"}
	if diff := cmp.Diff(wantSorted, got.Sorted.IDs()); diff != "" {
		t.Errorf("sorted ids (-want +got):\n%s", diff)
	}
	if len(got.Stages) != 10 {
		t.Errorf("len(stages) = %d, want 10", len(got.Stages))
	}
	if got.RunID == "" {
		t.Error("run_id is empty")
	}
}

func TestRunCommandQV7(t *testing.T) {
	got := runJSON(t, "run", testdata("qv7.yaml"))
	if got.Message != "Quantum Vault fully restored. Protocol QV-7 complete." {
		t.Errorf("message = %q", got.Message)
	}
	if diff := cmp.Diff([]string{"7", "12", "18"}, got.Order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func runJSON(t *testing.T, args ...string) runSummary {
	t.Helper()
	out, err := executeCommand(t, append(args, "--format", "json")...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	var got runSummary
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode json output: %v\n%s", err, out)
	}
	return got
}

func TestRunCommandProtocolSelection(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantProto  string
		wantSorted []string
	}{
		{"default protocol", nil, "codex9", []string{"2", "1"}},
		{"flag selects qv7", []string{"--protocol", "qv7"}, "qv7", []string{"1", "2"}},
		{"dashed alias", []string{"-p", "QV-7"}, "qv7", []string{"1", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runJSON(t, append([]string{"run", testdata("mixed.json")}, tt.args...)...)
			if got.Protocol != tt.wantProto {
				t.Errorf("protocol = %q, want %q", got.Protocol, tt.wantProto)
			}
			if diff := cmp.Diff(tt.wantSorted, got.Sorted.IDs()); diff != "" {
				t.Errorf("sorted ids (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"1", "2", "3"}, got.Order); diff != "" {
				t.Errorf("order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunCommandStartAndSortFlags(t *testing.T) {
	got := runJSON(t, "run", testdata("codex9.toml"), "--sort", "quick", "--start", "309")
	if diff := cmp.Diff([]string{"309", "518"}, got.Order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if got.Start != "309" {
		t.Errorf("start = %q, want 309", got.Start)
	}
}

func TestRunCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"run", testdata("missing.toml")}, errors.ErrCodeFileNotFound},
		{"bad extension", []string{"run", "vault.ini"}, errors.ErrCodeInvalidFormat},
		{"bad protocol", []string{"run", testdata("codex9.toml"), "--protocol", "omega"}, errors.ErrCodeInvalidProtocol},
		{"bad sorter", []string{"run", testdata("codex9.toml"), "--sort", "bogo"}, errors.ErrCodeInvalidSorter},
		{"bad format", []string{"run", testdata("codex9.toml"), "--format", "xml"}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}

	if _, err := executeCommand(t, "run"); err == nil {
		t.Error("run without a dataset succeeded")
	}
}

func TestSortCommand(t *testing.T) {
	out, err := executeCommand(t, "sort", testdata("codex9.toml"), "--sort", "merge", "--tree")
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	for _, want := range []string{"Sorted by size", "merge sort", "Integrity tree", "in-order view matches sorted order"} {
		if !strings.Contains(out, want) {
			t.Errorf("sort output missing %q:\n%s", want, out)
		}
	}
	// 518 (1.9) must be listed before 215 (5.2).
	if strings.Index(out, "518") > strings.Index(out, "215") {
		t.Errorf("sort output not ordered by size:\n%s", out)
	}
}

func TestGraphCommandDOT(t *testing.T) {
	out, err := executeCommand(t, "graph", testdata("codex9.toml"), "--activate")
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	for _, want := range []string{"digraph G {", `"104" -> "215";`, `"412" -> "518";`, `label="104\n#1"`, `label="309\n#5"`} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
}

func TestGraphCommandActivateWithoutStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nostart.yaml")
	doc := `protocol: qv7
fragment: "b#a"
codes: [12, 7]
dependencies:
  "7": [12]
  "12": [18]
  "18": []
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "graph", path, "--activate")
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	for _, want := range []string{`label="12\n#1"`, `label="18\n#2"`} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, `label="7\n#`) {
		t.Errorf("module 7 activated although the first processed code is 12:\n%s", out)
	}
}

func TestGraphCommandOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.dot")
	out, err := executeCommand(t, "graph", testdata("qv7.yaml"), "-o", path)
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output %q does not mention %s", out, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"7" -> "12";`) {
		t.Errorf("written DOT missing edge:\n%s", data)
	}
}

func TestGraphCommandBadFormat(t *testing.T) {
	_, err := executeCommand(t, "graph", testdata("qv7.yaml"), "--format", "png")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestProtocolsCommand(t *testing.T) {
	out, err := executeCommand(t, "protocols")
	if err != nil {
		t.Fatalf("protocols: %v", err)
	}
	for _, want := range []string{"codex9", "qv7", "load/verify", "decode/validate", "Quantum Vault fully restored."} {
		if !strings.Contains(out, want) {
			t.Errorf("protocols output missing %q:\n%s", want, out)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := executeCommand(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out, "shardline") {
				t.Errorf("completion %s output does not mention shardline", shell)
			}
		})
	}

	if _, err := executeCommand(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh succeeded")
	}
}

func TestFlagCompletion(t *testing.T) {
	tests := []struct {
		flag string
		want []string
	}{
		{"--protocol", []string{"codex9", "qv7"}},
		{"--sort", []string{"quick", "merge"}},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			out, err := executeCommand(t, cobra.ShellCompRequestCmd, "run", "vault.toml", tt.flag, "")
			if err != nil {
				t.Fatalf("complete %s: %v", tt.flag, err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("completions for %s missing %q:\n%s", tt.flag, want, out)
				}
			}
		})
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := executeCommand(t, "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.Contains(out, "shardline version") {
		t.Errorf("version output = %q", out)
	}
}
