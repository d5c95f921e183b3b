package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "planhub.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	t.Run("empty load returns nil", func(t *testing.T) {
		data, err := s.Load()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("save then load", func(t *testing.T) {
		require.NoError(t, s.Save([]byte(`{"projects":[]}`)))

		data, err := s.Load()
		require.NoError(t, err)
		assert.Equal(t, `{"projects":[]}`, string(data))
	})

	t.Run("save overwrites under the same key", func(t *testing.T) {
		require.NoError(t, s.Save([]byte(`{"projects":[1]}`)))
		require.NoError(t, s.Save([]byte(`{"projects":[2]}`)))

		data, err := s.Load()
		require.NoError(t, err)
		assert.Equal(t, `{"projects":[2]}`, string(data))
	})
}

func TestStorageSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planhub.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Save([]byte("snapshot")))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	data, err := second.Load()
	require.NoError(t, err)
	assert.Equal(t, "snapshot", string(data))
}
