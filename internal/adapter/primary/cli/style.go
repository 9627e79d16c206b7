package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"device-control/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type helpEntry struct {
	usage string
	desc  string
}

var helpEntries = []helpEntry{
	{"set-preamp-level  [-127 .. 0]", "set the preamp level (dB)"},
	{"set-phantom-power [on/off or 1/0]", "toggle phantom power on or off"},
	{"status", "view a list of controls and their values"},
	{"log [-v...|--level L|--show]", "change or show log verbosity"},
	{"help", "show this list"},
	{"quit", "quit Device Control"},
}

const title = "DEVICE CONTROL v1.0"

func printBanner(w io.Writer, model string) {
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, titleStyle.Render(strings.Repeat("=", len(title))))
	fmt.Fprintf(w, "%s %s\n\n", labelStyle.Render("Connected device:"), model)
	fmt.Fprintln(w, dimStyle.Render("Enter a command followed by a value to set it on the device."))
	fmt.Fprintln(w)
	printHelp(w)
}

func printHelp(w io.Writer) {
	width := 0
	for _, e := range helpEntries {
		width = max(width, len(e.usage))
	}

	fmt.Fprintln(w, headingStyle.Render("Possible commands"))
	fmt.Fprintln(w, headingStyle.Render("-----------------"))
	for _, e := range helpEntries {
		pad := strings.Repeat(" ", width-len(e.usage))
		fmt.Fprintf(w, "%s%s : %s\n", commandStyle.Render(e.usage), pad, e.desc)
	}
	fmt.Fprintln(w)
}

func printStatus(w io.Writer, d *domain.Device) {
	fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Preamp level:"), d.PreampLevel())
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Phantom Power:"), d.PhantomPowerString())
}
