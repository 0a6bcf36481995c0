package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BrandonKowalski/combochain/pkg/combochain/chain"
	"github.com/BrandonKowalski/combochain/pkg/combochain/constants"
)

const sampleConfig = `
[controller]
max-actions = 8
max-buffer = 3
reset-threshold = 0.5

[[chain]]
id = "hadouken"
steps = [
  { action = "down" },
  { action = "right", delay = 0.2 },
  { action = "a", delay = 0.2, hold = 0.1 },
]

[[chain]]
id = "double-jump"
steps = [
  { action = "B", delay = 0.2 },
  { action = "B", delay = 0.2 },
]

[hints]
language = "es"
keyboard = [{ button = "Z", text = "Jump", message = "hint_jump" }]
controller = [{ button = "B", text = "Jump", message = "hint_jump" }, { button = "A", text = "Attack" }]

[logging]
level = "debug"
file = "replay.log"

[input]
device = "/dev/input/event1"

[theme]
accent = "#9B2257"
`

func TestDecodeSample(t *testing.T) {
	cfg, err := Decode([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	opts := cfg.Options()
	if opts.MaxActions != 8 || opts.MaxBufferSize != 3 {
		t.Errorf("Options() sizes = %d/%d, want 8/3", opts.MaxActions, opts.MaxBufferSize)
	}
	if opts.ResetThreshold != 500*time.Millisecond {
		t.Errorf("Options().ResetThreshold = %v, want 500ms", opts.ResetThreshold)
	}

	if len(cfg.Chains) != 2 {
		t.Fatalf("decoded %d chains, want 2", len(cfg.Chains))
	}
	if cfg.Logging.Level != "debug" || cfg.Input.Device != "/dev/input/event1" {
		t.Errorf("logging/input sections not decoded: %+v %+v", cfg.Logging, cfg.Input)
	}
	if accent, err := cfg.Theme.AccentHex(); err != nil || accent != 0x9B2257 {
		t.Errorf("Theme.AccentHex() = %#x, %v; want 0x9b2257", accent, err)
	}
}

func TestThemeAccentHex(t *testing.T) {
	tests := []struct {
		accent  string
		want    uint32
		wantErr bool
	}{
		{"", 0, false},
		{"9B2257", 0x9B2257, false},
		{"0xffffff", 0xFFFFFF, false},
		{"#000001", 1, false},
		{"purple", 0, true},
		{"1FFFFFF", 0, true},
	}

	for _, tt := range tests {
		got, err := ThemeConfig{Accent: tt.accent}.AccentHex()
		if (err != nil) != tt.wantErr {
			t.Errorf("AccentHex(%q) error = %v, wantErr %v", tt.accent, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("AccentHex(%q) = %#x, want %#x", tt.accent, got, tt.want)
		}
	}
}

func TestBuildSteps(t *testing.T) {
	cfg, err := Decode([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	steps, err := cfg.Chains[0].BuildSteps()
	if err != nil {
		t.Fatalf("BuildSteps() error = %v", err)
	}

	want := []chain.Step[constants.VirtualButton]{
		chain.NewStep(constants.VirtualButtonDown, chain.DefaultStepDelay, 0),
		chain.NewStep(constants.VirtualButtonRight, 200*time.Millisecond, 0),
		chain.NewStep(constants.VirtualButtonA, 200*time.Millisecond, 100*time.Millisecond),
	}
	if len(steps) != len(want) {
		t.Fatalf("BuildSteps() returned %d steps, want %d", len(steps), len(want))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step %d = %+v, want %+v", i, steps[i], want[i])
		}
	}
}

func TestWatched(t *testing.T) {
	cfg, err := Decode([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := []constants.VirtualButton{
		constants.VirtualButtonDown,
		constants.VirtualButtonRight,
		constants.VirtualButtonA,
		constants.VirtualButtonB,
	}
	got := cfg.Watched()
	if len(got) != len(want) {
		t.Fatalf("Watched() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Watched()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestHintItems(t *testing.T) {
	cfg, err := Decode([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	keyboard, controller := cfg.Hints.HintItems()
	if len(keyboard) != 1 || keyboard[0].ButtonName != "Z" || keyboard[0].MessageID != "hint_jump" {
		t.Errorf("keyboard items = %+v", keyboard)
	}
	if len(controller) != 2 || controller[1].HelpText != "Attack" {
		t.Errorf("controller items = %+v", controller)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"unknown action", `
[[chain]]
id = "bad"
steps = [{ action = "jump" }]`},
		{"missing id", `
[[chain]]
steps = [{ action = "a" }]`},
		{"duplicate id", `
[[chain]]
id = "x"
steps = [{ action = "a" }]
[[chain]]
id = "x"
steps = [{ action = "b" }]`},
		{"no steps", `
[[chain]]
id = "empty"`},
		{"negative hold", `
[[chain]]
id = "neg"
steps = [{ action = "a", hold = -1.0 }]`},
		{"zero buffer", `
[controller]
max-buffer = 0`},
		{"too many chains", `
[controller]
max-actions = 1
[[chain]]
id = "one"
steps = [{ action = "a" }]
[[chain]]
id = "two"
steps = [{ action = "b" }]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Decode([]byte(tt.toml))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Chains) != 0 {
		t.Errorf("Load() of a missing file returned chains: %+v", cfg.Chains)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Chains[1].ID != "double-jump" {
		t.Errorf("second chain id = %q, want double-jump", cfg.Chains[1].ID)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("Load(\"\") returned nil error")
	}
}

func TestDefaultPathHonorsEnv(t *testing.T) {
	t.Setenv(PathEnvVar, "/tmp/custom.toml")
	if got := DefaultPath(); got != "/tmp/custom.toml" {
		t.Errorf("DefaultPath() = %q, want /tmp/custom.toml", got)
	}

	t.Setenv(PathEnvVar, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultPath(); got != filepath.Join("/xdg", "combochain", "config.toml") {
		t.Errorf("DefaultPath() = %q", got)
	}
}
