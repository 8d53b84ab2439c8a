package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionIDsAreUnique(t *testing.T) {
	gdb := newTestDB(t)
	user := User{Username: "u", HashedPassword: "x", Email: "u@example.com", Grade: GradeOther}
	require.NoError(t, gdb.Create(&user).Error)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := CreateSession(gdb, user.ID)
		require.NoError(t, err)
		assert.False(t, seen[id], "session id %q issued twice", id)
		seen[id] = true
	}

	assert.EqualValues(t, 50, countRows(t, gdb, &Session{}))
}

func TestCreateSessionExpiryIsSevenDays(t *testing.T) {
	gdb := newTestDB(t)
	user := User{Username: "u", HashedPassword: "x", Email: "u@example.com", Grade: GradeOther}
	require.NoError(t, gdb.Create(&user).Error)

	before := time.Now().UTC()
	id, err := CreateSession(gdb, user.ID)
	require.NoError(t, err)
	after := time.Now().UTC()

	var session Session
	require.NoError(t, gdb.First(&session, "id = ?", id).Error)

	assert.False(t, session.ExpiresAt.Before(before.Add(SessionTTL)))
	assert.False(t, session.ExpiresAt.After(after.Add(SessionTTL)))
	assert.Equal(t, user.ID, session.UserID)
}

// pinSessionIDs replaces the token generator with one returning the given
// values in order, restoring the real generator when the test ends.
func pinSessionIDs(t *testing.T, ids ...string) *int {
	t.Helper()
	orig := newSessionID
	t.Cleanup(func() { newSessionID = orig })

	calls := 0
	newSessionID = func() (string, error) {
		if calls >= len(ids) {
			t.Fatalf("token generator called %d times, only %d ids pinned", calls+1, len(ids))
		}
		id := ids[calls]
		calls++
		return id, nil
	}
	return &calls
}

func TestCreateSessionRetriesOnCollision(t *testing.T) {
	gdb := newTestDB(t)
	user := User{Username: "u", HashedPassword: "x", Email: "u@example.com", Grade: GradeOther}
	require.NoError(t, gdb.Create(&user).Error)

	// Occupy the id the first two attempts will collide with.
	require.NoError(t, gdb.Create(&Session{
		ID:        "taken",
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(SessionTTL),
	}).Error)

	calls := pinSessionIDs(t, "taken", "taken", "fresh")

	id, err := CreateSession(gdb, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh", id)
	assert.Equal(t, 3, *calls)
	assert.EqualValues(t, 2, countRows(t, gdb, &Session{}))
}

func TestCreateSessionExhaustsAfterThreeCollisions(t *testing.T) {
	gdb := newTestDB(t)
	user := User{Username: "u", HashedPassword: "x", Email: "u@example.com", Grade: GradeOther}
	require.NoError(t, gdb.Create(&user).Error)

	require.NoError(t, gdb.Create(&Session{
		ID:        "taken",
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(SessionTTL),
	}).Error)

	calls := pinSessionIDs(t, "taken", "taken", "taken")

	_, err := CreateSession(gdb, user.ID)
	assert.ErrorIs(t, err, ErrSessionExhausted)
	assert.Equal(t, 3, *calls)

	// Only the pre-existing row survives; failed attempts left nothing behind.
	assert.EqualValues(t, 1, countRows(t, gdb, &Session{}))
}

func TestCreateSessionStoreFailureDoesNotRetry(t *testing.T) {
	gdb := newTestDB(t)
	user := User{Username: "u", HashedPassword: "x", Email: "u@example.com", Grade: GradeOther}
	require.NoError(t, gdb.Create(&user).Error)

	calls := pinSessionIDs(t, "a", "b", "c")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = CreateSession(gdb, user.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExhausted)
	assert.Equal(t, 1, *calls, "a non-collision failure must not be retried")
}
