package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestUIState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}

	// Missing file => default state.
	st0, err := s.LoadUIState()
	if err != nil {
		t.Fatalf("LoadUIState: %v", err)
	}
	if st0 == nil || st0.Version != 1 || st0.ActiveSlot != 0 {
		t.Fatalf("expected default Version=1; got %#v", st0)
	}

	want := &UIState{Version: 1, ActiveSlot: 4, Mode: ModeView}
	if err := s.SaveUIState(want); err != nil {
		t.Fatalf("SaveUIState: %v", err)
	}

	got, err := s.LoadUIState()
	if err != nil {
		t.Fatalf("LoadUIState (after save): %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestUIState_CorruptOrOutOfRangeIsIgnored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := Store{Dir: dir}

	if err := os.WriteFile(filepath.Join(dir, uiStateFileName), []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	st, err := s.LoadUIState()
	if err != nil || st.ActiveSlot != 0 {
		t.Fatalf("expected corrupt state to load as default; st=%#v err=%v", st, err)
	}

	if err := os.WriteFile(filepath.Join(dir, uiStateFileName), []byte(`{"version":1,"activeSlot":9,"mode":"weird"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	st, err = s.LoadUIState()
	if err != nil {
		t.Fatalf("LoadUIState: %v", err)
	}
	if st.ActiveSlot != 0 || st.Mode != "" {
		t.Fatalf("expected out-of-range values dropped; got %#v", st)
	}
}
