package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drivers(t *testing.T) map[string]KV {
	t.Helper()
	file, err := NewFile(t.TempDir())
	require.NoError(t, err)
	return map[string]KV{
		"memory": NewMemory(),
		"file":   file,
	}
}

func TestKVSetGet(t *testing.T) {
	for name, kv := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get("os-notes")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set("os-notes", []byte(`"hello"`)))
			data, err := kv.Get("os-notes")
			require.NoError(t, err)
			assert.Equal(t, `"hello"`, string(data))

			require.NoError(t, kv.Set("os-notes", []byte(`"bye"`)))
			data, err = kv.Get("os-notes")
			require.NoError(t, err)
			assert.Equal(t, `"bye"`, string(data))

			require.NoError(t, kv.Delete("os-notes"))
			_, err = kv.Get("os-notes")
			assert.ErrorIs(t, err, ErrNotFound)

			// Deleting twice is fine
			assert.NoError(t, kv.Delete("os-notes"))
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Set("k", buf))
	buf[0] = 'x'

	got, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _ := m.Get("k")
	assert.Equal(t, "abc", string(again))
	assert.Equal(t, 1, m.Len())
}

func TestFileLayout(t *testing.T) {
	root := t.TempDir()
	f, err := NewFile(root)
	require.NoError(t, err)

	ns := WithPrefix(f, "desktops/desk_1")
	require.NoError(t, ns.Set("desktop-icon-positions", []byte(`[]`)))

	data, err := os.ReadFile(filepath.Join(root, "desktops", "desk_1", "desktop-icon-positions.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFileRejectsUnsafeKeys(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, f.Set("../outside", []byte("x")))
	_, err = f.Get("a/../../b")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileConcurrentWriters(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, SetJSON(f, "counter", i))
		}(i)
	}
	wg.Wait()

	var v int
	require.NoError(t, GetJSON(f, "counter", &v))
	assert.GreaterOrEqual(t, v, 0)
	assert.Less(t, v, 20)
}

func TestNamespacedIsolation(t *testing.T) {
	kv := NewMemory()
	a := WithPrefix(kv, "desktops/a")
	b := WithPrefix(kv, "desktops/b")

	require.NoError(t, a.Set("os-notes", []byte("A")))
	_, err := b.Get("os-notes")
	assert.ErrorIs(t, err, ErrNotFound)

	raw, err := kv.Get("desktops/a/os-notes")
	require.NoError(t, err)
	assert.Equal(t, "A", string(raw))
}

func TestJSONHelpers(t *testing.T) {
	kv := NewMemory()
	type pos struct {
		AppID string `json:"appId"`
		X     int    `json:"x"`
	}
	require.NoError(t, SetJSON(kv, "k", []pos{{"about", 40}}))

	var out []pos
	require.NoError(t, GetJSON(kv, "k", &out))
	assert.Equal(t, []pos{{"about", 40}}, out)

	require.NoError(t, kv.Set("bad", []byte("{not json")))
	assert.Error(t, GetJSON(kv, "bad", &out))
}

func TestOpen(t *testing.T) {
	kv, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, kv)

	kv, err = Open("file", t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &File{}, kv)

	_, err = Open("redis", "")
	assert.Error(t, err)

	_, err = Open("file", "")
	assert.Error(t, err)
}
