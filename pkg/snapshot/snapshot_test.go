package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "nftarchive/pkg/errors"
	"nftarchive/pkg/opensea"
)

func decodeItems(t *testing.T, raw string) []opensea.Item {
	t.Helper()
	var items []opensea.Item
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	return items
}

func TestSaveLoadRoundTripKeepsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	assert.Equal(t, filepath.Join(dir, FileName), store.Path())

	exists, err := store.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	items := decodeItems(t, `[
		{"name":"A","image_url":"http://x/a.svg","identifier":"1","traits":[{"trait_type":"eyes","value":"big"}]},
		{"name":"B","image_url":"http://x/b.svg","collection":"toadz"}
	]`)
	require.NoError(t, store.Save(items))

	exists, err = store.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "A", loaded[0].Name)
	assert.Equal(t, "http://x/b.svg", loaded[1].ImageURL)
	assert.JSONEq(t, string(items[0].Raw()), string(loaded[0].Raw()))
	assert.JSONEq(t, string(items[1].Raw()), string(loaded[1].Raw()))

	assert.NoFileExists(t, store.Path()+".tmp")
}

func TestSaveWritesIndentedJSON(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(decodeItems(t, `[{"name":"A","image_url":"u"}]`)))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {"), "got %q", string(data))
}

func TestSaveEmptyCollection(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(nil))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoadCorruptSnapshot(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0644))

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeMalformedResponse))
}

func TestLoadMissingSnapshot(t *testing.T) {
	_, err := NewStore(t.TempDir()).Load()
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeFilesystem))
}
