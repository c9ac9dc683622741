package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webark/webark/kv"
)

type brokenStorage struct{ kv.Memory }

func (b *brokenStorage) Set(key, value string) error { return errors.New("disk full") }

func TestLoginLogout(t *testing.T) {
	store := kv.NewMemory()
	g, err := NewGuard(store, "s3cret")
	require.NoError(t, err)
	assert.False(t, g.IsAuthenticated())

	ok, err := g.Login("wrong")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, g.IsAuthenticated())
	_, found, _ := store.Get(Key)
	assert.False(t, found)

	ok, err = g.Login("s3cret")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, g.IsAuthenticated())
	v, found, _ := store.Get(Key)
	assert.True(t, found)
	assert.Equal(t, "true", v)

	require.NoError(t, g.Logout())
	assert.False(t, g.IsAuthenticated())
	_, found, _ = store.Get(Key)
	assert.False(t, found)
}

func TestWrongPasswordKeepsSession(t *testing.T) {
	g, err := NewGuard(kv.NewMemory(), "s3cret")
	require.NoError(t, err)
	_, _ = g.Login("s3cret")

	ok, err := g.Login("nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, g.IsAuthenticated())
}

func TestRehydrate(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		set    bool
		want   bool
	}{
		{"absent", "", false, false},
		{"true", "true", true, true},
		{"other value", "yes", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := kv.NewMemory()
			if tt.set {
				require.NoError(t, store.Set(Key, tt.stored))
			}
			g, err := NewGuard(store, "pw")
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.IsAuthenticated())
		})
	}
}

func TestNewGuardRequiresPassword(t *testing.T) {
	_, err := NewGuard(kv.NewMemory(), "")
	assert.ErrorIs(t, err, ErrNoPassword)
}

func TestLoginPersistFailure(t *testing.T) {
	g, err := NewGuard(&brokenStorage{}, "pw")
	require.NoError(t, err)

	ok, err := g.Login("pw")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.False(t, g.IsAuthenticated())
}
