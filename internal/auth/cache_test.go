package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	msalcache "github.com/AzureAD/microsoft-authentication-library-for-go/apps/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The identity library only persists through this contract; keep the
// signatures pinned to it.
var _ msalcache.ExportReplace = (*FileCache)(nil)

func newCache(t *testing.T) *FileCache {
	t.Helper()
	return &FileCache{Path: filepath.Join(t.TempDir(), "token_cache.json")}
}

func Test_LoadAbsentIsNotAnError(t *testing.T) {
	c := newCache(t)

	data, ok, err := c.Load()

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func Test_SaveThenLoadRoundTrip(t *testing.T) {
	c := newCache(t)
	record := []byte(`{"account":"user@example.com","tokens":{}}`)

	require.NoError(t, c.Save(record))

	data, ok, err := c.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, record, data)
}

func Test_SaveOverwritesPreviousRecord(t *testing.T) {
	c := newCache(t)

	require.NoError(t, c.Save([]byte(`{"v":1}`)))
	require.NoError(t, c.Save([]byte(`{"v":2}`)))

	data, ok, err := c.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"v":2}`), data)
}

func Test_SaveLeavesNoTempFiles(t *testing.T) {
	c := newCache(t)

	require.NoError(t, c.Save([]byte(`{}`)))

	entries, err := os.ReadDir(filepath.Dir(c.Path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func Test_LoadCorruptRecordFails(t *testing.T) {
	c := newCache(t)
	require.NoError(t, os.WriteFile(c.Path, []byte("not-json{"), 0o600))

	_, _, err := c.Load()

	assert.Error(t, err)
}

type fakeContract struct {
	data []byte
}

func (f *fakeContract) Marshal() ([]byte, error) {
	return f.data, nil
}

func (f *fakeContract) Unmarshal(data []byte) error {
	f.data = append([]byte(nil), data...)
	return nil
}

func Test_ExportReplaceRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newCache(t)

	out := &fakeContract{data: []byte(`{"cached":"record"}`)}
	require.NoError(t, c.Export(ctx, out, msalcache.ExportHints{}))

	in := &fakeContract{}
	require.NoError(t, c.Replace(ctx, in, msalcache.ReplaceHints{}))

	assert.Equal(t, out.data, in.data)
}

func Test_ReplaceWithNoRecordIsNoop(t *testing.T) {
	c := newCache(t)

	in := &fakeContract{}
	err := c.Replace(context.Background(), in, msalcache.ReplaceHints{})

	assert.NoError(t, err)
	assert.Nil(t, in.data)
}
