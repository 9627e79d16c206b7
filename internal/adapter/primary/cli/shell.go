package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/spf13/pflag"

	"device-control/internal/adapter/secondary/notify"
	"device-control/internal/config"
	"device-control/internal/domain"
	"device-control/internal/logging"
	"device-control/internal/usecase"
)

// Session wires one simulated device to a console and interprets shell lines.
type Session struct {
	device     *domain.Device
	dispatcher usecase.CommandDispatcher
	out        io.Writer
}

// NewSession creates a device named model whose notifications and
// diagnostics are printed to out.
func NewSession(model string, out io.Writer) *Session {
	device := domain.NewDevice(model, domain.WithDiagnostics(out))
	device.AddListener(notify.NewConsoleNotifier(out))
	return &Session{
		device:     device,
		dispatcher: usecase.NewCommandDispatcher(device, out),
		out:        out,
	}
}

// Device returns the simulated device.
func (s *Session) Device() *domain.Device {
	return s.device
}

// Handle interprets one input line. It returns false when the session should end.
func (s *Session) Handle(line string) bool {
	if line == "" {
		return false
	}

	trimmed := strings.TrimSpace(line)
	switch trimmed {
	case "quit", "exit":
		return false
	case "status":
		printStatus(s.out, s.device)
		return true
	case "help":
		printHelp(s.out)
		return true
	}

	if trimmed == "log" || strings.HasPrefix(trimmed, "log ") {
		if err := s.handleLog(trimmed); err != nil {
			fmt.Fprintf(s.out, "log: %v\n", err)
		}
		return true
	}

	if !s.dispatcher.Dispatch(line) {
		fmt.Fprintln(s.out, "Command failed")
	}
	return true
}

func (s *Session) handleLog(line string) error {
	tokens, err := shlex.Split(line)
	if err != nil {
		return err
	}

	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var vcount int
	var level string
	var show bool
	fs.CountVarP(&vcount, "verbose", "v", "Increase verbosity (-v... up to 4)")
	fs.StringVar(&level, "level", "", "error|warn|info|debug|trace")
	fs.BoolVarP(&show, "show", "s", false, "show the current level")
	if err := fs.Parse(tokens[1:]); err != nil {
		return err
	}

	switch {
	case level != "":
		_, count, err := logging.ParseLevel(level)
		if err != nil {
			return err
		}
		logging.SetVerbosity(count)
	case vcount > 0:
		logging.SetVerbosity(vcount)
	default:
		fmt.Fprintf(s.out, "log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	}

	fmt.Fprintf(s.out, "log level set to %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
	return nil
}

func runInteractiveShell(s config.Settings) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.Prompt,
		HistoryFile:     s.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	logging.SetOutput(rl.Stderr())
	defer logging.SetOutput(os.Stderr)

	out := rl.Stdout()
	session := NewSession(s.Model, out)
	printBanner(out, session.Device().ModelName())
	logging.Infof("shell started for %q", s.Model)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(out)
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}
		if !session.Handle(line) {
			fmt.Fprintln(out, "Bye!")
			return nil
		}
	}
}
