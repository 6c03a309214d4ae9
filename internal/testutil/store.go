package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tracklog/internal/store"
)

// OpenStore opens a fresh store in a per-test temp directory and closes it
// when the test finishes. The database file is named track.db so reopen
// helpers can find it via Store.Path.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "track.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}
