package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/shardline/pkg/dataset"
	"github.com/matzehuels/shardline/pkg/depgraph"
	"github.com/matzehuels/shardline/pkg/restore"
)

func testResult(t *testing.T) *restore.Result {
	t.Helper()
	ds := &dataset.Dataset{
		Fragment: "edoc;nohtyp;ataD;erutcurts;smhtiroglA",
		Codes:    []int{104, 215, 309, 412, 518},
		Metadata: map[int]dataset.Metadata{
			104: {"size": 3.4, "status": "ok"},
			215: {"size": 5.2, "status": "ok"},
			309: {"size": 2.1, "status": "ok"},
		},
		Dependencies: []depgraph.Entry{
			{ID: "104", Dependents: []string{"215", "309"}},
			{ID: "215", Dependents: []string{"412"}},
		},
	}
	res, err := restore.NewRunner(log.New(io.Discard)).Execute(context.Background(), restore.Codex9, ds)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m StageBrowserModel, msgs ...tea.Msg) (StageBrowserModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(StageBrowserModel)
	}
	return m, cmd
}

func TestStageBrowserNavigation(t *testing.T) {
	m := NewStageBrowserModel(testResult(t))

	if m.Stage() != restore.StageDecode {
		t.Fatalf("initial stage = %q, want decode", m.Stage())
	}

	m, _ = update(m, key("up"))
	if m.Cursor != 0 {
		t.Errorf("cursor moved above first stage: %d", m.Cursor)
	}

	m, _ = update(m, key("down"), key("j"))
	if m.Stage() != restore.StageDedup {
		t.Errorf("after two downs stage = %q, want dedup", m.Stage())
	}

	m, _ = update(m, key("G"))
	if m.Stage() != restore.StageActivate {
		t.Errorf("after G stage = %q, want activate", m.Stage())
	}
	m, _ = update(m, key("down"))
	if m.Stage() != restore.StageActivate {
		t.Errorf("cursor moved past last stage: %q", m.Stage())
	}

	m, _ = update(m, key("k"), key("g"))
	if m.Cursor != 0 {
		t.Errorf("after g cursor = %d, want 0", m.Cursor)
	}
}

func TestStageBrowserQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		_, cmd := update(NewStageBrowserModel(testResult(t)), key(k))
		if cmd == nil {
			t.Fatalf("%s returned no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not quit", k)
		}
	}
}

func TestStageBrowserScroll(t *testing.T) {
	m := NewStageBrowserModel(testResult(t))
	m.Height = 2

	// decode has five lines: offsets 0, 2, then clamped at 3.
	m, _ = update(m, key("f"))
	if m.Offset != 2 {
		t.Errorf("offset after f = %d, want 2", m.Offset)
	}
	m, _ = update(m, key("f"), key("f"))
	if m.Offset != 3 {
		t.Errorf("offset after scrolling past end = %d, want 3", m.Offset)
	}
	m, _ = update(m, key("b"), key("b"), key("b"))
	if m.Offset != 0 {
		t.Errorf("offset after scrolling back = %d, want 0", m.Offset)
	}

	m, _ = update(m, key("f"), key("down"))
	if m.Offset != 0 {
		t.Errorf("changing stage kept offset %d", m.Offset)
	}
}

func TestStageBrowserWindowSize(t *testing.T) {
	m, _ := update(NewStageBrowserModel(testResult(t)), tea.WindowSizeMsg{Width: 80, Height: 40})
	if m.Height != 40-len(restore.Stages)-8 {
		t.Errorf("Height = %d", m.Height)
	}
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 5})
	if m.Height != 3 {
		t.Errorf("Height floor = %d, want 3", m.Height)
	}
}

func TestStageBrowserView(t *testing.T) {
	m := NewStageBrowserModel(testResult(t))

	view := m.View()
	for _, want := range []string{"Codex-9 run", "Decode fragment", "Activation", `"python"`} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m, _ = update(m, key("G"))
	view = m.View()
	for _, want := range []string{"104", "Blueprint successfully restored."} {
		if !strings.Contains(view, want) {
			t.Errorf("activate view missing %q:\n%s", want, view)
		}
	}
}

func TestStageBrowserNilResult(t *testing.T) {
	m := NewStageBrowserModel(nil)
	m, _ = update(m, key("down"), key("f"))
	if m.Stage() != "" {
		t.Errorf("Stage() = %q, want empty", m.Stage())
	}
	if !strings.Contains(m.View(), "(no output)") {
		t.Error("nil result view should say no output")
	}
}
