package replay

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/combochain/pkg/combochain/config"
	"github.com/BrandonKowalski/combochain/pkg/combochain/constants"
	"github.com/BrandonKowalski/combochain/pkg/combochain/registry"
)

// Event is one scripted transition. At is in seconds from the start of the script.
type Event struct {
	At      float64 `toml:"at"`
	Button  string  `toml:"button"`
	Pressed bool    `toml:"pressed"`
}

type Script struct {
	Events []Event `toml:"event"`
}

// Fired records a chain that completed during a replay
type Fired struct {
	ChainID      string
	At           time.Duration
	HoldDuration time.Duration
}

func LoadScript(path string) (Script, error) {
	var script Script
	if _, err := toml.DecodeFile(path, &script); err != nil {
		return Script{}, fmt.Errorf("failed to decode script: %w", err)
	}
	return script, nil
}

func DecodeScript(data []byte) (Script, error) {
	var script Script
	if err := toml.Unmarshal(data, &script); err != nil {
		return Script{}, fmt.Errorf("failed to decode script: %w", err)
	}
	return script, nil
}

// ManualClock only moves when told to
type ManualClock struct {
	start time.Time
	now   time.Time
}

func NewManualClock() *ManualClock {
	start := time.Unix(0, 0)
	return &ManualClock{start: start, now: start}
}

func (c *ManualClock) Now() time.Time {
	return c.now
}

// Set moves the clock to offset from its start
func (c *ManualClock) Set(offset time.Duration) {
	c.now = c.start.Add(offset)
}

func (c *ManualClock) Offset() time.Duration {
	return c.now.Sub(c.start)
}

type transition struct {
	button  constants.VirtualButton
	pressed bool
}

func (t transition) IsActionPressed(id constants.VirtualButton) bool {
	return t.button == id && t.pressed
}

func (t transition) IsActionReleased(id constants.VirtualButton) bool {
	return t.button == id && !t.pressed
}

// Run plays script against the chains in cfg and returns every chain that fired
func Run(cfg config.FileConfig, script Script, logger *slog.Logger) ([]Fired, error) {
	clock := NewManualClock()

	opts := cfg.Options()
	opts.Clock = clock
	opts.Logger = logger

	chains := registry.New(opts)

	var fired []Fired
	for _, cc := range cfg.Chains {
		steps, err := cc.BuildSteps()
		if err != nil {
			return nil, err
		}

		err = chains.Register(cc.ID, steps, registry.Options{OnTrigger: func(e registry.Event) {
			fired = append(fired, Fired{ChainID: e.ChainID, At: clock.Offset(), HoldDuration: e.HoldDuration})
		}})
		if err != nil {
			return nil, err
		}
	}

	var last float64
	for i, ev := range script.Events {
		if ev.At < last {
			return nil, fmt.Errorf("event %d at %gs is earlier than the previous event at %gs", i, ev.At, last)
		}
		last = ev.At

		button, err := constants.ParseVirtualButton(ev.Button)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}

		clock.Set(time.Duration(ev.At * float64(time.Second)))
		chains.Feed(transition{button: button, pressed: ev.Pressed})
	}

	return fired, nil
}
