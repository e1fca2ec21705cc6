package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := NewMemBackend()

	require.NoError(t, WriteAll(ctx, backend, "segment", "0000000000", []byte("hello")))

	data, err := ReadAll(ctx, backend, "segment", "0000000000")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	ok, err := backend.Exists(ctx, "segment", "0000000000")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBlobInvisibleUntilClosed(t *testing.T) {
	ctx := context.Background()
	backend := NewMemBackend()

	writer, err := backend.Put(ctx, "blocks/1-ff", "block")
	require.NoError(t, err)
	_, err = writer.Write([]byte("partial"))
	require.NoError(t, err)

	ok, err := backend.Exists(ctx, "blocks/1-ff", "block")
	require.NoError(t, err)
	assert.False(t, ok, "blob must not be visible before the writer is closed")

	require.NoError(t, writer.Close())

	ok, err = backend.Exists(ctx, "blocks/1-ff", "block")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOverwrite(t *testing.T) {
	ctx := context.Background()
	backend := NewMemBackend()

	require.NoError(t, WriteAll(ctx, backend, "", "snapshot", []byte("rev1")))
	require.NoError(t, WriteAll(ctx, backend, "", "snapshot", []byte("rev2")))

	data, err := ReadAll(ctx, backend, "", "snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte("rev2"), data)
}

func TestDeletePrefix(t *testing.T) {
	ctx := context.Background()
	backend := NewMemBackend()

	require.NoError(t, WriteAll(ctx, backend, "blocks/7-aa", "block", []byte("x")))
	require.NoError(t, backend.Delete(ctx, "blocks/7-aa"))

	ok, err := backend.Exists(ctx, "blocks/7-aa", "block")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing prefix is not an error.
	require.NoError(t, backend.Delete(ctx, "blocks/7-aa"))
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	backend := NewMemBackend()

	_, err := backend.Get(ctx, "segment", "missing")
	assert.Error(t, err)
}
