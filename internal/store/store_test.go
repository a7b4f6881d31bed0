package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := New(filepath.Join(t.TempDir(), "data", "claims.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestGetSetDelete(t *testing.T) {
	st := newTestStore(t)

	if _, err := st.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.Set("k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set("k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := st.Get("k")
	if err != nil || got != "v2" {
		t.Fatalf("get = %q, %v", got, err)
	}
	if err := st.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected key gone, got %v", err)
	}
}

func TestStateBlobRoundTrip(t *testing.T) {
	st := newTestStore(t)

	blob, err := st.LoadState()
	if err != nil || blob != nil {
		t.Fatalf("fresh store LoadState = %q, %v", blob, err)
	}

	if err := st.SaveState([]byte(`{"products":["A"],"data":{}}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	blob, err = st.LoadState()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(blob) != `{"products":["A"],"data":{}}` {
		t.Fatalf("unexpected blob: %s", blob)
	}
}

func TestSelectionKeys(t *testing.T) {
	st := newTestStore(t)

	if depot, err := st.LastDepot(); err != nil || depot != "" {
		t.Fatalf("LastDepot = %q, %v", depot, err)
	}
	if y, m := st.SelectedPeriod(); y != 0 || m != 0 {
		t.Fatalf("SelectedPeriod = %d-%d", y, m)
	}

	if err := st.SetLastDepot("VZM"); err != nil {
		t.Fatalf("set depot: %v", err)
	}
	if err := st.SetSelectedPeriod(2025, time.March); err != nil {
		t.Fatalf("set period: %v", err)
	}

	if depot, _ := st.LastDepot(); depot != "VZM" {
		t.Fatalf("LastDepot = %q", depot)
	}
	if y, m := st.SelectedPeriod(); y != 2025 || m != time.March {
		t.Fatalf("SelectedPeriod = %d-%d", y, m)
	}

	keys, err := st.Keys()
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	want := []string{LastDepotKey, SelectedMonthKey, SelectedYearKey}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}
