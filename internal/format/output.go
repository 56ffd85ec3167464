package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Envelope wraps command results as {"data": ...}.
func Envelope(data any) map[string]any {
	return map[string]any{"data": data}
}

// WriteJSON writes strict JSON output for CLI commands, one document per call.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteText writes s followed by a newline unless it already ends with one.
func WriteText(w io.Writer, s string) error {
	if s == "" || s[len(s)-1] != '\n' {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}
