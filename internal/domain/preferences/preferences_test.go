package preferences

import (
	"sync"
	"testing"
	"time"

	"github.com/deskfolio/deskos/internal/providers/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// stallingKV parks the first armed Set until release is closed
type stallingKV struct {
	storage.KV
	once    sync.Once
	armed   bool
	entered chan struct{}
	release chan struct{}
}

func (k *stallingKV) Set(key string, value []byte) error {
	if k.armed {
		k.once.Do(func() {
			close(k.entered)
			<-k.release
		})
	}
	return k.KV.Set(key, value)
}

func TestDefaults(t *testing.T) {
	s := NewStore(storage.NewMemory(), nil)
	assert.Equal(t, Preferences{Theme: ThemeDark, AccentColor: "#3b82f6", Volume: 50}, s.Get())
	assert.False(t, s.Muted())
}

func TestApplyPersists(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv, nil)

	got, err := s.Apply(Update{Theme: ptr(ThemeLight), AccentColor: ptr("#ef4444")})
	require.NoError(t, err)
	assert.Equal(t, Preferences{Theme: ThemeLight, AccentColor: "#ef4444", Volume: 50}, got)

	reloaded := NewStore(kv, nil)
	assert.Equal(t, got, reloaded.Get())
}

func TestApplyVolume(t *testing.T) {
	s := NewStore(storage.NewMemory(), nil)

	got, err := s.Apply(Update{Volume: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Volume)
	assert.True(t, s.Muted())

	got, _ = s.Apply(Update{Volume: ptr(250)})
	assert.Equal(t, MaxVolume, got.Volume)
	got, _ = s.Apply(Update{Volume: ptr(-3)})
	assert.Equal(t, 0, got.Volume)
}

func TestApplyRejectsInvalid(t *testing.T) {
	s := NewStore(storage.NewMemory(), nil)

	_, err := s.Apply(Update{Theme: ptr(Theme("solarized"))})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = s.Apply(Update{AccentColor: ptr("blue")})
	assert.ErrorIs(t, err, ErrInvalid)

	assert.Equal(t, Default(), s.Get(), "rejected updates change nothing")
}

func TestCorruptBlobFallsBack(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(StorageKey, []byte("not json")))
	assert.Equal(t, Default(), NewStore(kv, nil).Get())

	require.NoError(t, kv.Set(StorageKey, []byte(`{"theme":"neon","accentColor":"#zzz","volume":900}`)))
	assert.Equal(t, Preferences{Theme: ThemeDark, AccentColor: DefaultAccent, Volume: MaxVolume}, NewStore(kv, nil).Get())
}

func TestConcurrentAppliesPersistInOrder(t *testing.T) {
	kv := &stallingKV{
		KV:      storage.NewMemory(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
		armed:   true,
	}
	s := NewStore(kv, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := s.Apply(Update{Theme: ptr(ThemeLight)})
		assert.NoError(t, err)
	}()
	<-kv.entered
	go func() {
		defer wg.Done()
		_, err := s.Apply(Update{Volume: ptr(10)})
		assert.NoError(t, err)
	}()
	time.Sleep(50 * time.Millisecond)
	close(kv.release)
	wg.Wait()

	want := Preferences{Theme: ThemeLight, AccentColor: DefaultAccent, Volume: 10}
	assert.Equal(t, want, s.Get())
	assert.Equal(t, want, NewStore(kv.KV, nil).Get())
}
