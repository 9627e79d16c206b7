package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"device-control/internal/config"
	"device-control/internal/logging"
	"device-control/internal/selftest"
)

var (
	cfgPath   string
	envFile   string
	modelName string
	verbosity int
	runTests  bool

	settings config.Settings
)

// NewRootCmd creates the root CLI command.
// This is the primary adapter that translates CLI inputs to use case calls.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device-control",
		Short: "Simulated audio interface driven by a text command protocol",
		Long: "Interactive controller for a virtual audio interface exposing preamp gain and 48V phantom power.\n" +
			"Run without a subcommand to start the shell, or with --test to run the self-test.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if runTests {
				prepareSelfTest()
				return nil
			}
			return loadSettings()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if runTests {
				selftest.Run(cmd.OutOrStdout(), cmd.ErrOrStderr(), selftest.Cases())
				return nil
			}
			return runInteractiveShell(settings)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "settings file path")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", ".env file with DEVICE_CONTROL_* overrides")
	cmd.PersistentFlags().StringVar(&modelName, "model", "", "model name of the simulated device")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase logging (-v, -vv, ... up to 4)")
	cmd.Flags().BoolVar(&runTests, "test", false, "run the built-in self-test and exit")

	cmd.AddCommand(
		newShellCmd(),
		newTestCmd(),
		newExecCmd(),
		newConfigCmd(),
	)

	return cmd
}

// loadSettings resolves settings from file, env file, environment and flags,
// in increasing priority.
func loadSettings() error {
	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}
	store, err := config.NewFileStore(cfgPath)
	if err != nil {
		return err
	}
	loaded, err := store.Load()
	if err != nil {
		return err
	}
	loaded = config.ApplyEnv(loaded)
	if modelName != "" {
		loaded.Model = modelName
	}
	if verbosity > 0 {
		loaded.Verbosity = min(verbosity, logging.MaxVerbosity)
	}
	if loaded, err = config.Normalize(loaded); err != nil {
		return err
	}

	settings = loaded
	logging.SetVerbosity(settings.Verbosity)
	logging.Debugf("settings loaded from %s", cfgPath)
	return nil
}

// prepareSelfTest loads settings for their log verbosity only. The self-test
// does not depend on them, so a broken settings file is logged and ignored.
func prepareSelfTest() {
	logging.SetVerbosity(verbosity)
	if err := loadSettings(); err != nil {
		logging.Errorf("ignoring settings for self-test: %v", err)
	}
}

func newShellCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive device shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settings
			if cmd.Flags().Changed("prompt") {
				s.Prompt = prompt
			}
			return runInteractiveShell(s)
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", config.DefaultPrompt, "shell prompt")
	return cmd
}

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Run the built-in self-test (same as --test)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			prepareSelfTest()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			selftest.Run(cmd.OutOrStdout(), cmd.ErrOrStderr(), selftest.Cases())
			return nil
		},
	}
}

func newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "exec <command-line>...",
		Short:   "Run protocol lines against a fresh device without the shell",
		Example: `  device-control exec "set-preamp-level -6" "set-phantom-power on" status`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runLines(NewSession(settings.Model, cmd.OutOrStdout()), args)
			return nil
		},
	}
}

// runLines feeds lines to session until one of them ends it.
func runLines(session *Session, lines []string) {
	for _, line := range lines {
		if !session.Handle(line) {
			return
		}
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update shell settings",
	}
	cmd.AddCommand(newConfigGetCmd(), newConfigSetCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the effective settings as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeYAML(cmd.OutOrStdout(), settings)
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var (
		prompt      string
		historyFile string
		level       int
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Persist settings (use the global --model flag to change the model)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.NewFileStore(cfgPath)
			if err != nil {
				return err
			}
			stored, err := store.Load()
			if err != nil {
				return err
			}

			if modelName != "" {
				stored.Model = modelName
			}
			if cmd.Flags().Changed("prompt") {
				stored.Prompt = prompt
			}
			if cmd.Flags().Changed("history-file") {
				stored.HistoryFile = historyFile
			}
			if cmd.Flags().Changed("verbosity") {
				stored.Verbosity = level
			}

			if stored, err = config.Normalize(stored); err != nil {
				return err
			}
			if err := store.Save(stored); err != nil {
				return err
			}
			logging.Infof("settings saved to %s", store.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "Saved settings to %s\n", store.Path())
			return writeYAML(cmd.OutOrStdout(), stored)
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", config.DefaultPrompt, "shell prompt")
	cmd.Flags().StringVar(&historyFile, "history-file", "", "readline history file")
	cmd.Flags().IntVar(&level, "verbosity", 0, "default log verbosity (0-4)")
	return cmd
}

func writeYAML(w io.Writer, s config.Settings) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = w.Write(out)
	return err
}
