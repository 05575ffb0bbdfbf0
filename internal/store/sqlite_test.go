package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "users.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	return store
}

func testUser(username, email string) *User {
	return &User{
		Username:       username,
		Email:          email,
		FullName:       "Test User",
		HashedPassword: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
	}
}

func TestNewSQLiteStore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)

	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	// Verify database file was created
	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "Database file should exist")
}

func TestSQLiteStore_Create(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	user := testUser("alice", "alice@example.com")

	err := store.Create(ctx, user)
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestSQLiteStore_Create_DuplicateUsername(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Create(ctx, testUser("alice", "alice@example.com")))

	err := store.Create(ctx, testUser("alice", "other@example.com"))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestSQLiteStore_Create_DuplicateEmail(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Create(ctx, testUser("alice", "alice@example.com")))

	err := store.Create(ctx, testUser("bob", "alice@example.com"))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestSQLiteStore_GetByUsername(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	created := testUser("alice", "alice@example.com")
	require.NoError(t, store.Create(ctx, created))

	got, err := store.GetByUsername(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, created.HashedPassword, got.HashedPassword)
	assert.False(t, got.Disabled)
}

func TestSQLiteStore_GetByUsername_NotFound(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	_, err := store.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_List(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Create(ctx, testUser("alice", "alice@example.com")))
	require.NoError(t, store.Create(ctx, testUser("bob", "bob@example.com")))
	require.NoError(t, store.Create(ctx, testUser("carol", "carol@example.com")))

	users, err := store.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	rest, err := store.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}

func TestSQLiteStore_Count(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, store.Create(ctx, testUser("alice", "alice@example.com")))

	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSQLiteStore_SetDisabled(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	user := testUser("alice", "alice@example.com")
	require.NoError(t, store.Create(ctx, user))

	require.NoError(t, store.SetDisabled(ctx, user.ID, true))

	got, err := store.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, got.Disabled)

	require.NoError(t, store.SetDisabled(ctx, user.ID, false))

	got, err = store.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, got.Disabled)
}

func TestSQLiteStore_SetDisabled_NotFound(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	err := store.SetDisabled(context.Background(), 9999, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()
	user := testUser("alice", "alice@example.com")
	require.NoError(t, store.Create(ctx, user))

	require.NoError(t, store.Delete(ctx, user.ID))

	_, err := store.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_Delete_NotFound(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	err := store.Delete(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
