// Package main provides the CLI entrypoint for combochain.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/combochain/pkg/combochain"
	"github.com/BrandonKowalski/combochain/pkg/combochain/config"
	"github.com/BrandonKowalski/combochain/pkg/combochain/constants"
	"github.com/BrandonKowalski/combochain/pkg/combochain/evdevinput"
	"github.com/BrandonKowalski/combochain/pkg/combochain/i18n"
	"github.com/BrandonKowalski/combochain/pkg/combochain/registry"
	"github.com/BrandonKowalski/combochain/pkg/combochain/replay"
)

const (
	bannerDuration = time.Second
	messageWidth   = 28
)

var (
	configPath string
	logLevel   string
	language   string
	fontPath   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "combochain",
		Short:         "Timed input chain recognizer",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&language, "lang", "", "language code for hints and messages")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newListenCmd())
	rootCmd.AddCommand(newCheckCmd())

	return rootCmd
}

// loadConfig reads and validates the config and applies its logging section
func loadConfig(cmd *cobra.Command) (config.FileConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.FileConfig{}, err
	}

	if cfg.Logging.File != "" {
		combochain.SetLogFilename(cfg.Logging.File)
	}
	if cfg.Logging.Dir != nil {
		combochain.SetLogDir(*cfg.Logging.Dir)
	}

	level := cfg.Logging.Level
	if cmd.Flags().Changed("log-level") {
		level = logLevel
	}
	if level != "" {
		combochain.SetRawLogLevel(level)
	}

	if !cmd.Flags().Changed("lang") && cfg.Hints.Language != "" {
		language = cfg.Hints.Language
	}

	return cfg, nil
}

func initMessages() error {
	if err := i18n.InitDefault(); err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}
	if language != "" {
		if err := i18n.SetWithCode(language); err != nil {
			return fmt.Errorf("invalid language %q: %w", language, err)
		}
	}
	return nil
}

func triggeredMessage(chainID string) string {
	return i18n.GetStringWithData("chain_triggered", map[string]interface{}{"Chain": chainID})
}

// triggeredColumn pads the localized message by display width so the hold column lines up
func triggeredColumn(chainID string) string {
	return runewidth.FillRight(runewidth.Truncate(triggeredMessage(chainID), messageWidth, "…"), messageWidth)
}

// sessionLogger tags every record of one command invocation
func sessionLogger() *slog.Logger {
	return combochain.GetLogger().With("session", uuid.NewString())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a window and recognize chains from keyboard and controllers",
		Args:  cobra.NoArgs,
		RunE:  runRunCmd,
	}
	cmd.Flags().StringVar(&fontPath, "font", "", "TTF font used for hints")
	return cmd
}

func runRunCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	accent, err := cfg.Theme.AccentHex()
	if err != nil {
		return err
	}
	if fontPath == "" {
		fontPath = cfg.Theme.Font
	}

	err = combochain.Init(combochain.Options{
		WindowTitle:          "combochain",
		ShowBackground:       cfg.Theme.Background != "",
		PrimaryThemeColorHex: accent,
		BackgroundImagePath:  cfg.Theme.Background,
		FontPath:             fontPath,
		InputMappingPath:     cfg.Input.Mapping,
		Language:             language,
		Chain:                cfg.Options(),
	})
	if err != nil {
		return err
	}
	defer combochain.Close()

	logger := sessionLogger()

	for _, cc := range cfg.Chains {
		steps, err := cc.BuildSteps()
		if err != nil {
			return err
		}
		if err := combochain.RegisterChain(cc.ID, steps, combochain.ChainOptions{}); err != nil {
			return err
		}
	}
	logger.Info(i18n.GetPluralString("chains_registered", len(cfg.Chains)))

	hide, err := combochain.ShowHints(cfg.Hints.HintItems())
	if err != nil {
		return err
	}
	defer hide()

	var banner string
	var bannerUntil time.Time

	for {
		if _, err := combochain.PollEvents(); err != nil {
			if errors.Is(err, combochain.ErrQuit) {
				return nil
			}
			return err
		}

		for event := combochain.ProcessChainEvent(); event != nil; event = combochain.ProcessChainEvent() {
			logger.Info("Chain triggered", "chain", event.ChainID, "hold_duration", event.HoldDuration)
			banner = triggeredMessage(event.ChainID)
			bannerUntil = time.Now().Add(bannerDuration)
		}

		if banner != "" && time.Now().After(bannerUntil) {
			banner = ""
		}

		combochain.RenderFrame(banner)
		time.Sleep(constants.DefaultInputDelay)
	}
}

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.toml>",
		Short: "Feed a timed press/release script through the configured chains",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplayCmd,
	}
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := initMessages(); err != nil {
		return err
	}

	script, err := replay.LoadScript(args[0])
	if err != nil {
		return err
	}

	fired, err := replay.Run(cfg, script, sessionLogger())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range fired {
		fmt.Fprintf(out, "%8.3fs  %s hold %v\n", f.At.Seconds(), triggeredColumn(f.ChainID), f.HoldDuration)
	}
	return nil
}

func newListenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listen [device]",
		Short: "Recognize chains from a Linux input device",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runListenCmd,
	}
}

func runListenCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := initMessages(); err != nil {
		return err
	}

	device := cfg.Input.Device
	if len(args) == 1 {
		device = args[0]
	}
	if device == "" {
		return errors.New("no input device given and none configured")
	}

	logger := sessionLogger()

	opts := cfg.Options()
	opts.Logger = logger
	chains := registry.New(opts)

	out := cmd.OutOrStdout()
	for _, cc := range cfg.Chains {
		steps, err := cc.BuildSteps()
		if err != nil {
			return err
		}
		if err := chains.Register(cc.ID, steps, registry.Options{}); err != nil {
			return err
		}
	}

	source, err := evdevinput.Open(device, nil)
	if err != nil {
		return err
	}
	defer source.Close()

	logger.Info("Listening for input chains", "device", device, "name", source.Name(), "chains", len(cfg.Chains))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = source.Run(ctx, func(e evdevinput.Event) {
		chains.Feed(e)
		printFired(out, chains)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printFired(out io.Writer, chains *registry.Registry) {
	for event, ok := chains.Next(); ok; event, ok = chains.Next() {
		fmt.Fprintf(out, "%s  %s hold %v\n", time.Now().Format("15:04:05.000"), triggeredColumn(event.ChainID), event.HoldDuration)
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the config file and list its chains",
		Args:  cobra.NoArgs,
		RunE:  runCheckCmd,
	}
}

func runCheckCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := initMessages(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", configPath, i18n.GetPluralString("chains_registered", len(cfg.Chains)))

	for _, cc := range cfg.Chains {
		steps, err := cc.BuildSteps()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s:", cc.ID)
		for _, step := range steps {
			fmt.Fprintf(out, " %s(<%v, >=%v)", step.ActionID.GetName(), step.MaxDelay, step.MinHold)
		}
		fmt.Fprintln(out)
	}
	return nil
}
