package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	st, err := OpenSQLite(path)
	require.NoError(t, err)

	_, ok, err := st.Get(KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Set(KeyCart, `{"items":[]}`))
	v, ok, err := st.Get(KeyCart)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"items":[]}`, v)

	// overwrite under the same key
	require.NoError(t, st.Set(KeyCart, `{"items":[{"_id":"a"}]}`))
	v, _, err = st.Get(KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[{"_id":"a"}]}`, v)

	require.NoError(t, st.Delete(KeyCart))
	_, ok, err = st.Get(KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting an absent key is not an error
	require.NoError(t, st.Delete("never-set"))
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	st, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, st.Set(KeyToken, "T"))
	require.NoError(t, st.Set(KeyAuth, `{"token":"T","isAuthenticated":true}`))

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)

	token, ok, err := reopened.Get(KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "T", token)

	auth, ok, err := reopened.Get(KeyAuth)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"token":"T","isAuthenticated":true}`, auth)
}

func TestMemoryStore(t *testing.T) {
	st := NewMemoryStore()

	_, ok, err := st.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Set("k", "v"))
	v, ok, _ := st.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, st.Delete("k"))
	_, ok, _ = st.Get("k")
	assert.False(t, ok)
}
