package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/drafts/pkg/records"
	"github.com/mesh-intelligence/drafts/pkg/types"
)

func setupBackend(t *testing.T, opts ...Option) *Backend {
	t.Helper()
	b := NewBackend(opts...)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func begin(t *testing.T, b *Backend) *Transaction {
	t.Helper()
	tx, err := b.begin()
	require.NoError(t, err)
	t.Cleanup(func() { tx.Abort() })
	return tx
}

func header(t *testing.T, tx types.Transaction) *records.Header {
	t.Helper()
	obj, err := tx.GetObject(types.Root, types.ForRead)
	require.NoError(t, err)
	hdr, ok := obj.(*records.Header)
	require.True(t, ok, "root is %T", obj)
	return hdr
}

// appendTo opens container for write, appends obj and registers it.
func appendTo(t *testing.T, tx types.Transaction, container types.Handle, key string, obj types.Object) types.Handle {
	t.Helper()
	_, err := tx.GetObject(container, types.ForWrite)
	require.NoError(t, err)
	h, err := tx.Append(container, key, obj)
	require.NoError(t, err)
	require.NoError(t, tx.AddNewlyCreated(obj))
	return h
}
