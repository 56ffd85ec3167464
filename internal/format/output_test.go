package format

import (
	"bytes"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var b bytes.Buffer
	if err := WriteJSON(&b, Envelope(map[string]any{"slot": 2}), false); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got, want := b.String(), "{\"data\":{\"slot\":2}}\n"; got != want {
		t.Fatalf("got %q; want %q", got, want)
	}

	b.Reset()
	if err := WriteJSON(&b, Envelope([]int{1}), true); err != nil {
		t.Fatalf("WriteJSON pretty: %v", err)
	}
	if got, want := b.String(), "{\n  \"data\": [\n    1\n  ]\n}\n"; got != want {
		t.Fatalf("got %q; want %q", got, want)
	}
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "\n"},
		{in: "Hello\nworld", want: "Hello\nworld\n"},
		{in: "done\n", want: "done\n"},
	}
	for _, tt := range tests {
		var b bytes.Buffer
		if err := WriteText(&b, tt.in); err != nil {
			t.Fatalf("WriteText: %v", err)
		}
		if b.String() != tt.want {
			t.Fatalf("WriteText(%q) = %q; want %q", tt.in, b.String(), tt.want)
		}
	}
}
