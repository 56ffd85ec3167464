package main

import (
	"os"
	"strconv"
	"strings"

	"promptboard/internal/cli"
)

func isSlotNumber(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil && !strings.HasPrefix(s, "-") && !strings.HasPrefix(s, "+")
}

func rewriteBareSlotArgs(argv []string) []string {
	// Convenience: `promptboard 3` works like `promptboard --slot 3`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before
	// parsing. Persistent flags may come first (`promptboard --dir x 3`), so look for the
	// first positional token, not just argv[1]. Range checking is left to --slot.
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":       true,
		"--slot":      true,
		"--log-level": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if isSlotNumber(a) {
			out := make([]string, 0, len(argv)+1)
			out = append(out, argv[:i]...)
			out = append(out, "--slot", a)
			out = append(out, argv[i+1:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteBareSlotArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
