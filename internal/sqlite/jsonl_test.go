package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/drafts/pkg/records"
	"github.com/mesh-intelligence/drafts/pkg/types"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := setupBackend(t)
	tx, err := src.Begin()
	require.NoError(t, err)
	hdr := header(t, tx)
	fingerprint := hdr.Fingerprint
	h := appendTo(t, tx, hdr.LayerTable, "", records.NewLayer("walls"))
	require.NoError(t, tx.Commit())

	path := filepath.Join(t.TempDir(), "drawing.jsonl")
	exported, err := src.Export(path)
	require.NoError(t, err)
	assert.Positive(t, exported)

	dst := setupBackend(t)
	imported, err := dst.Import(path)
	require.NoError(t, err)
	assert.Equal(t, exported, imported)

	tx2 := begin(t, dst)
	assert.Equal(t, fingerprint, header(t, tx2).Fingerprint)
	got, err := tx2.Lookup(hdr.LayerTable, "walls")
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestExportWhileTransactionActive(t *testing.T) {
	b := setupBackend(t)
	begin(t, b)

	_, err := b.Export(filepath.Join(t.TempDir(), "x.jsonl"))
	assert.ErrorIs(t, err, types.ErrTransactionActive)
}

func TestImportRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "no header",
			content: `{"handle":2,"class":"DbDictionary","owner":1,"data":{}}` + "\n",
			wantErr: types.ErrInvalidArgument,
		},
		{
			name:    "unknown class",
			content: `{"handle":1,"class":"DbSpline","owner":0,"data":{}}` + "\n",
			wantErr: types.ErrUnknownClass,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			path := filepath.Join(t.TempDir(), "in.jsonl")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := b.Import(path)
			assert.ErrorIs(t, err, tt.wantErr)

			tx := begin(t, b)
			assert.NotEmpty(t, header(t, tx).Fingerprint, "drawing left untouched")
		})
	}
}

func TestReadJSONLSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.jsonl")
	content := strings.Join([]string{`{"a":1}`, `not json`, ``, `{"b":2}`}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	recs, err := readJSONL(path)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestWriteJSONLReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	require.NoError(t, writeJSONL(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file cleaned up")
}
