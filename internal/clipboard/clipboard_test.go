package clipboard

import (
	"errors"
	"testing"
)

func stub(t *testing.T, platform string, okCmd string, tty bool, oscErr error) (*[]string, *string) {
	t.Helper()
	prevGOOS, prevRun, prevTTY, prevOSC := goos, runCommand, isTerminal, writeOSC52
	t.Cleanup(func() {
		goos, runCommand, isTerminal, writeOSC52 = prevGOOS, prevRun, prevTTY, prevOSC
	})

	var tried []string
	var osc string
	goos = platform
	runCommand = func(name string, _ []string, _ string) error {
		tried = append(tried, name)
		if name == okCmd {
			return nil
		}
		return errors.New(name + ": not found")
	}
	isTerminal = func() bool { return tty }
	writeOSC52 = func(s string) error {
		if oscErr != nil {
			return oscErr
		}
		osc = s
		return nil
	}
	return &tried, &osc
}

func TestWrite_FallsThroughCommands(t *testing.T) {
	tried, osc := stub(t, "linux", "xsel", false, nil)

	if err := Write("hi"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := *tried; len(got) != 3 || got[0] != "wl-copy" || got[2] != "xsel" {
		t.Fatalf("unexpected command order: %v", got)
	}
	if *osc != "" {
		t.Fatalf("OSC52 must not be used when a command succeeds")
	}
}

func TestWrite_OSC52FallbackOnTerminal(t *testing.T) {
	_, osc := stub(t, "darwin", "", true, nil)

	if err := Write("a\r\nb"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if *osc != "a\nb" {
		t.Fatalf("expected normalized text via OSC52; got %q", *osc)
	}
}

func TestWrite_UnavailableWithoutTerminal(t *testing.T) {
	stub(t, "windows", "", false, nil)

	err := Write("x")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable; got %v", err)
	}
}
