// directory/directory_test.go
package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDirectoryGetPut(t *testing.T) {
	dir := NewMemoryDirectory()
	ctx := context.Background()

	_, found, err := dir.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, dir.Put(ctx, "u1", &UserRecord{
		Role:        "Nurse",
		MFAEnabled:  true,
		Permissions: []string{"read_clinical_docs"},
	}))

	record, found, err := dir.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Nurse", record.Role)
	assert.True(t, record.MFAEnabled)
}

func TestMemoryDirectoryCopiesRecords(t *testing.T) {
	dir := NewMemoryDirectory()
	ctx := context.Background()

	original := &UserRecord{Role: "Nurse", Permissions: []string{"a"}}
	require.NoError(t, dir.Put(ctx, "u1", original))

	// Mutating the caller's record after Put must not leak into the store.
	original.Permissions[0] = "mutated"
	stored, _, err := dir.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, stored.Permissions)

	// Mutating a fetched record must not leak either.
	stored.Permissions[0] = "mutated"
	again, _, err := dir.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Permissions)
}
