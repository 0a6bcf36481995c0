package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/BrandonKowalski/combochain/pkg/combochain"
)

const testConfig = `
[controller]
max-buffer = 4

[[chain]]
id = "dash"
steps = [
  { action = "right", delay = 0.2 },
  { action = "right", delay = 0.2 },
]

[[chain]]
id = "charge"
steps = [{ action = "b", delay = 0.2, hold = 0.5 }]
`

func TestMain(m *testing.M) {
	combochain.SetLogDir("")
	os.Exit(m.Run())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckListsChains(t *testing.T) {
	cfgPath := writeFile(t, "config.toml", testConfig)

	out, err := execute(t, "--config", cfgPath, "check")
	if err != nil {
		t.Fatalf("check error = %v\n%s", err, out)
	}

	for _, want := range []string{"2 chains registered", "dash: Right", "charge: B"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckRejectsUnknownAction(t *testing.T) {
	cfgPath := writeFile(t, "config.toml", `
[[chain]]
id = "bad"
steps = [{ action = "jump" }]
`)

	if _, err := execute(t, "--config", cfgPath, "check"); err == nil {
		t.Fatal("check accepted an unknown action")
	}
}

func TestReplayPrintsFiredChains(t *testing.T) {
	cfgPath := writeFile(t, "config.toml", testConfig)
	scriptPath := writeFile(t, "script.toml", `
[[event]]
at = 0.0
button = "right"
pressed = true

[[event]]
at = 0.05
button = "right"

[[event]]
at = 0.1
button = "right"
pressed = true

[[event]]
at = 0.15
button = "right"

[[event]]
at = 1.0
button = "b"
pressed = true

[[event]]
at = 1.6
button = "b"
`)

	out, err := execute(t, "--config", cfgPath, "replay", scriptPath)
	if err != nil {
		t.Fatalf("replay error = %v\n%s", err, out)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d fired lines, want 2:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "dash triggered") {
		t.Errorf("first line = %q, want dash", lines[0])
	}
	if !strings.Contains(lines[1], "charge triggered") {
		t.Errorf("second line = %q, want charge", lines[1])
	}
}

func TestListenNeedsDevice(t *testing.T) {
	cfgPath := writeFile(t, "config.toml", testConfig)

	if _, err := execute(t, "--config", cfgPath, "listen"); err == nil {
		t.Fatal("listen without a device succeeded")
	}
}

func TestTriggeredColumnWidth(t *testing.T) {
	if err := initMessages(); err != nil {
		t.Fatalf("initMessages() error = %v", err)
	}

	for _, id := range []string{"dash", "波動拳", strings.Repeat("long-chain-", 5)} {
		if got := runewidth.StringWidth(triggeredColumn(id)); got != messageWidth {
			t.Errorf("triggeredColumn(%q) width = %d, want %d", id, got, messageWidth)
		}
	}
}
