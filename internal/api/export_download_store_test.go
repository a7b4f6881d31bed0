package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpiredDownloadRemovesStagedFile(t *testing.T) {
	now := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
	s := newExportDownloadStore()
	s.now = func() time.Time { return now }

	path := filepath.Join(t.TempDir(), "staged.xlsx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write staged file: %v", err)
	}
	token := s.put(path, "KNL_data.xlsx", time.Minute)

	if _, ok := s.get(token); !ok {
		t.Fatalf("token should be valid before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := s.get(token); ok {
		t.Fatalf("token should be expired")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("staged file still present: %v", err)
	}
}
