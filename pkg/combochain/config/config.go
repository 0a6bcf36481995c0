package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/combochain/pkg/combochain/chain"
	"github.com/BrandonKowalski/combochain/pkg/combochain/constants"
	"github.com/BrandonKowalski/combochain/pkg/combochain/hints"
)

const PathEnvVar = "COMBOCHAIN_CONFIG"

var ErrInvalidConfig = errors.New("invalid combochain config")

// FileConfig represents the TOML configuration file
type FileConfig struct {
	Controller ControllerConfig `toml:"controller"`
	Chains     []ChainConfig    `toml:"chain"`
	Hints      HintsConfig      `toml:"hints"`
	Logging    LoggingConfig    `toml:"logging"`
	Input      InputConfig      `toml:"input"`
	Theme      ThemeConfig      `toml:"theme"`
}

// ControllerConfig sizes the chain controller. Unset values use the chain defaults.
type ControllerConfig struct {
	MaxActions     *int     `toml:"max-actions"`
	MaxBuffer      *int     `toml:"max-buffer"`
	ResetThreshold *float64 `toml:"reset-threshold"`
}

type ChainConfig struct {
	ID    string       `toml:"id"`
	Steps []StepConfig `toml:"steps"`
}

// StepConfig times are in seconds. A missing delay uses chain.DefaultStepDelay.
type StepConfig struct {
	Action string   `toml:"action"`
	Delay  *float64 `toml:"delay"`
	Hold   float64  `toml:"hold"`
}

type HintConfig struct {
	Button  string `toml:"button"`
	Text    string `toml:"text"`
	Message string `toml:"message"`
}

type HintsConfig struct {
	Language   string       `toml:"language"`
	Keyboard   []HintConfig `toml:"keyboard"`
	Controller []HintConfig `toml:"controller"`
}

type LoggingConfig struct {
	Level string  `toml:"level"`
	File  string  `toml:"file"`
	Dir   *string `toml:"dir"`
}

type InputConfig struct {
	// Mapping is a JSON input mapping file, see INPUT_MAPPING_PATH
	Mapping string `toml:"mapping"`
	// Device is an evdev node such as /dev/input/event1
	Device string `toml:"device"`
}

// ThemeConfig colors are hex strings such as "9B2257" or "0x9B2257"
type ThemeConfig struct {
	Accent     string `toml:"accent"`
	Font       string `toml:"font"`
	Background string `toml:"background"`
}

// AccentHex returns the accent color, or 0 when none is set
func (t ThemeConfig) AccentHex() (uint32, error) {
	if t.Accent == "" {
		return 0, nil
	}
	hexStr := strings.TrimPrefix(strings.TrimPrefix(t.Accent, "#"), "0x")
	hex, err := strconv.ParseUint(hexStr, 16, 32)
	if err != nil || hex > 0xFFFFFF {
		return 0, fmt.Errorf("theme accent %q is not a hex RGB color", t.Accent)
	}
	return uint32(hex), nil
}

// DefaultPath returns $COMBOCHAIN_CONFIG or the XDG config location
func DefaultPath() string {
	if v := os.Getenv(PathEnvVar); v != "" {
		return v
	}
	return filepath.Join(XDGConfigHome(), "combochain", "config.toml")
}

func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// Load reads a TOML config from the given path. Missing file is not an error.
func Load(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

func Decode(data []byte) (FileConfig, error) {
	var cfg FileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Options converts the controller section to chain options
func (c FileConfig) Options() chain.Options {
	var opts chain.Options
	if c.Controller.MaxActions != nil {
		opts.MaxActions = *c.Controller.MaxActions
	}
	if c.Controller.MaxBuffer != nil {
		opts.MaxBufferSize = *c.Controller.MaxBuffer
	}
	if c.Controller.ResetThreshold != nil {
		opts.ResetThreshold = seconds(*c.Controller.ResetThreshold)
	}
	return opts
}

// Validate checks sizes, chain ids and action names
func (c FileConfig) Validate() error {
	var errs []error

	if c.Controller.MaxActions != nil && *c.Controller.MaxActions <= 0 {
		errs = append(errs, fmt.Errorf("controller max-actions must be positive, got %d", *c.Controller.MaxActions))
	}
	if c.Controller.MaxBuffer != nil && *c.Controller.MaxBuffer <= 0 {
		errs = append(errs, fmt.Errorf("controller max-buffer must be positive, got %d", *c.Controller.MaxBuffer))
	}
	if c.Controller.ResetThreshold != nil && *c.Controller.ResetThreshold <= 0 {
		errs = append(errs, fmt.Errorf("controller reset-threshold must be positive, got %g", *c.Controller.ResetThreshold))
	}

	maxActions := chain.DefaultMaxActions
	if c.Controller.MaxActions != nil && *c.Controller.MaxActions > 0 {
		maxActions = *c.Controller.MaxActions
	}
	if len(c.Chains) > maxActions {
		errs = append(errs, fmt.Errorf("%d chains configured but max-actions is %d", len(c.Chains), maxActions))
	}

	seen := make(map[string]bool, len(c.Chains))
	for i, cc := range c.Chains {
		if cc.ID == "" {
			errs = append(errs, fmt.Errorf("chain %d has no id", i))
		} else if seen[cc.ID] {
			errs = append(errs, fmt.Errorf("chain %q is defined more than once", cc.ID))
		}
		seen[cc.ID] = true

		if _, err := cc.BuildSteps(); err != nil {
			errs = append(errs, err)
		}
	}

	if _, err := c.Theme.AccentHex(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// BuildSteps resolves action names and converts the step timings
func (cc ChainConfig) BuildSteps() ([]chain.Step[constants.VirtualButton], error) {
	if len(cc.Steps) == 0 {
		return nil, fmt.Errorf("chain %q: %w", cc.ID, chain.ErrEmptySequence)
	}

	steps := make([]chain.Step[constants.VirtualButton], 0, len(cc.Steps))
	for i, sc := range cc.Steps {
		button, err := constants.ParseVirtualButton(sc.Action)
		if err != nil {
			return nil, fmt.Errorf("chain %q step %d: %w", cc.ID, i, err)
		}

		delay := chain.DefaultStepDelay
		if sc.Delay != nil {
			delay = seconds(*sc.Delay)
		}
		if delay < 0 || sc.Hold < 0 {
			return nil, fmt.Errorf("chain %q step %d: %w: negative timing", cc.ID, i, chain.ErrInvalidStep)
		}

		steps = append(steps, chain.NewStep(button, delay, seconds(sc.Hold)))
	}
	return steps, nil
}

// Watched returns every button used by a configured chain, in first use order
func (c FileConfig) Watched() []constants.VirtualButton {
	seen := make(map[constants.VirtualButton]bool)
	var watched []constants.VirtualButton

	for _, cc := range c.Chains {
		for _, sc := range cc.Steps {
			button, err := constants.ParseVirtualButton(sc.Action)
			if err != nil || seen[button] {
				continue
			}
			seen[button] = true
			watched = append(watched, button)
		}
	}
	return watched
}

// HintItems converts the hint lists for hints.NewControlGroup
func (h HintsConfig) HintItems() (keyboard, controller []hints.Item) {
	return toItems(h.Keyboard), toItems(h.Controller)
}

func toItems(configs []HintConfig) []hints.Item {
	items := make([]hints.Item, 0, len(configs))
	for _, hc := range configs {
		items = append(items, hints.Item{
			ButtonName: hc.Button,
			HelpText:   hc.Text,
			MessageID:  hc.Message,
		})
	}
	return items
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
