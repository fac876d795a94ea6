package models

import (
	"database/sql"

	pkgerrors "github.com/pkg/errors"
)

// AddFriend records a friendship between two distinct accounts. The edge is
// stored in both directions and the insert ignores conflicts, so repeating
// the call (from either side, concurrently or not) leaves exactly one edge.
func AddFriend(db *sql.DB, userID, friendID string) error {
	tx, err := db.Begin()
	if err != nil {
		return pkgerrors.Wrap(err, "begin add friend")
	}
	if _, err := tx.Exec(`INSERT INTO friends (user_id, friend_id) VALUES (?, ?) ON CONFLICT DO NOTHING`, userID, friendID); err != nil {
		tx.Rollback()
		return pkgerrors.Wrap(err, "insert friend edge")
	}
	if _, err := tx.Exec(`INSERT INTO friends (user_id, friend_id) VALUES (?, ?) ON CONFLICT DO NOTHING`, friendID, userID); err != nil {
		tx.Rollback()
		return pkgerrors.Wrap(err, "insert reverse friend edge")
	}
	return pkgerrors.Wrap(tx.Commit(), "commit add friend")
}

// RemoveFriend deletes the edge in both directions. Removing an edge that
// never existed is a no-op.
func RemoveFriend(db *sql.DB, userID, friendID string) error {
	_, err := db.Exec(`DELETE FROM friends
		WHERE (user_id = ? AND friend_id = ?)
		   OR (user_id = ? AND friend_id = ?)`, userID, friendID, friendID, userID)
	return pkgerrors.Wrap(err, "delete friend edge")
}

// ListFriendIDs returns the ids of every account sharing an edge with id.
// The result is never nil so friend sets marshal as [] rather than null.
func ListFriendIDs(db *sql.DB, id string) ([]string, error) {
	rows, err := db.Query(`SELECT friend_id FROM friends WHERE user_id = ?`, id)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select friend ids")
	}
	defer rows.Close()
	friends := []string{}
	for rows.Next() {
		var friendID string
		if err := rows.Scan(&friendID); err != nil {
			return nil, pkgerrors.Wrap(err, "scan friend id")
		}
		friends = append(friends, friendID)
	}
	return friends, pkgerrors.Wrap(rows.Err(), "iterate friend ids")
}

// ListFriends resolves the accounts behind a user's friend edges, as public
// views with their own friend sets filled in.
func ListFriends(db *sql.DB, id string) ([]User, error) {
	rows, err := db.Query(`SELECT u.id, u.name FROM users u
		JOIN friends f ON f.friend_id = u.id
		WHERE f.user_id = ? ORDER BY u.rowid`, id)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select friends")
	}
	defer rows.Close()
	friends := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, pkgerrors.Wrap(err, "scan friend")
		}
		friends = append(friends, u)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "iterate friends")
	}
	for i := range friends {
		f, err := ListFriendIDs(db, friends[i].ID)
		if err != nil {
			return nil, err
		}
		friends[i].Friends = f
	}
	return friends, nil
}
