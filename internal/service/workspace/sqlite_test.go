package workspace

import (
	"testing"

	sqlitestore "github.com/GSKumar1109/claimsreporter/internal/store"
)

func openSQLite(t *testing.T, path string) *sqlitestore.Store {
	t.Helper()
	st, err := sqlitestore.New(path)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}
