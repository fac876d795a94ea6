package models_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bluebird/internal/db"
	"bluebird/internal/models"
)

func TestCreateUserDuplicateName(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer database.Close()

	first, err := models.CreateUser(database, "alice", "pw1")
	require.NoError(t, err)
	require.Len(t, first.ID, 30)
	require.Equal(t, []string{}, first.Friends)

	_, err = models.CreateUser(database, "alice", "pw2")
	require.ErrorIs(t, err, models.ErrDuplicateName)
}

func TestAddFriendRepeatedlyKeepsOneEdge(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer database.Close()

	alice, err := models.CreateUser(database, "alice", "pw1")
	require.NoError(t, err)
	bob, err := models.CreateUser(database, "bob", "pw2")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, models.AddFriend(database, alice.ID, bob.ID))
		require.NoError(t, models.AddFriend(database, bob.ID, alice.ID))
	}

	aliceFriends, err := models.ListFriendIDs(database, alice.ID)
	require.NoError(t, err)
	require.Equal(t, []string{bob.ID}, aliceFriends)
	bobFriends, err := models.ListFriendIDs(database, bob.ID)
	require.NoError(t, err)
	require.Equal(t, []string{alice.ID}, bobFriends)
}

func TestUpdateMissingRowsReturnNotFound(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer database.Close()

	require.ErrorIs(t, models.UpdateUser(database, "missing", "n", "p"), models.ErrNotFound)
	require.ErrorIs(t, models.UpdatePost(database, "missing", "t", "b"), models.ErrNotFound)
	require.ErrorIs(t, models.UpdateComment(database, "missing", "b"), models.ErrNotFound)
	require.ErrorIs(t, models.LikePost(database, "missing"), models.ErrNotFound)
	_, err = models.GetPost(database, "missing")
	require.ErrorIs(t, err, models.ErrNotFound)
}
