// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ErrUnavailable is returned when neither a clipboard command nor the terminal
// escape fallback could be used.
var ErrUnavailable = errors.New("clipboard unavailable")

type command struct {
	name string
	args []string
}

// Swapped out in tests.
var (
	goos       = runtime.GOOS
	runCommand = runClipboardCmd
	isTerminal = func() bool {
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	writeOSC52 = func(s string) error {
		termenv.NewOutput(os.Stdout).Copy(s)
		return nil
	}
)

func commandsFor(goos string) []command {
	switch goos {
	case "darwin":
		return []command{{name: "pbcopy"}}
	case "windows":
		return []command{
			{name: "cmd", args: []string{"/c", "clip"}},
			{name: "powershell", args: []string{"-NoProfile", "-Command", "Set-Clipboard"}},
		}
	default:
		// Wayland first, then X11.
		return []command{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
		}
	}
}

// Write copies s to the clipboard. Platform clipboard commands are tried in
// order; when none works and stdout is a terminal, an OSC52 escape is emitted
// instead.
func Write(s string) error {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var errs []error
	for _, c := range commandsFor(goos) {
		err := runCommand(c.name, c.args, s)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if isTerminal() {
		err := writeOSC52(s)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}

func runClipboardCmd(name string, args []string, stdin string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	if err := cmd.Run(); err != nil {
		return errors.New(name + ": " + err.Error())
	}
	return nil
}
