package models

import (
	"database/sql"
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"bluebird/internal/ids"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateName      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// CreateUser registers a new account under a fresh id. Duplicate names are
// rejected by the UNIQUE constraint on users.name.
func CreateUser(db *sql.DB, name, password string) (*SelfUser, error) {
	u := &SelfUser{ID: ids.New(), Name: name, Password: password, Friends: []string{}}
	_, err := db.Exec(`INSERT INTO users (id, name, password) VALUES (?, ?, ?)`, u.ID, u.Name, u.Password)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.name") {
			return nil, ErrDuplicateName
		}
		return nil, pkgerrors.Wrap(err, "insert user")
	}
	return u, nil
}

// GetUser returns the full stored account, friends included.
func GetUser(db *sql.DB, id string) (*SelfUser, error) {
	row := db.QueryRow(`SELECT id, name, password FROM users WHERE id = ?`, id)
	var u SelfUser
	if err := row.Scan(&u.ID, &u.Name, &u.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, pkgerrors.Wrap(err, "select user")
	}
	friends, err := ListFriendIDs(db, id)
	if err != nil {
		return nil, err
	}
	u.Friends = friends
	return &u, nil
}

// ListUsers returns the public view of every account.
func ListUsers(db *sql.DB) ([]User, error) {
	rows, err := db.Query(`SELECT id, name FROM users ORDER BY rowid`)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select users")
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, pkgerrors.Wrap(err, "scan user")
		}
		u.Friends = []string{}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "iterate users")
	}
	edges, err := friendEdges(db)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if f, ok := edges[users[i].ID]; ok {
			users[i].Friends = f
		}
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// UpdateUser overwrites the mutable fields of an account.
func UpdateUser(db *sql.DB, id, name, password string) error {
	res, err := db.Exec(`UPDATE users SET name = ?, password = ? WHERE id = ?`, name, password, id)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.name") {
			return ErrDuplicateName
		}
		return pkgerrors.Wrap(err, "update user")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pkgerrors.Wrap(err, "update user")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes an account together with everything that references it:
// its posts, comments on those posts, its own comments elsewhere, and both
// directions of its friend edges. Deleting an absent account is a no-op.
func DeleteUser(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return pkgerrors.Wrap(err, "begin delete user")
	}
	if _, err := tx.Exec(`DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE user_id = ?)`, id); err != nil {
		tx.Rollback()
		return pkgerrors.Wrap(err, "delete comments on posts")
	}
	if _, err := tx.Exec(`DELETE FROM comments WHERE user_id = ?`, id); err != nil {
		tx.Rollback()
		return pkgerrors.Wrap(err, "delete comments")
	}
	if _, err := tx.Exec(`DELETE FROM posts WHERE user_id = ?`, id); err != nil {
		tx.Rollback()
		return pkgerrors.Wrap(err, "delete posts")
	}
	if _, err := tx.Exec(`DELETE FROM friends WHERE user_id = ? OR friend_id = ?`, id, id); err != nil {
		tx.Rollback()
		return pkgerrors.Wrap(err, "delete friend edges")
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE id = ?`, id); err != nil {
		tx.Rollback()
		return pkgerrors.Wrap(err, "delete user row")
	}
	return pkgerrors.Wrap(tx.Commit(), "commit delete user")
}

// Authenticate looks an account up by name and compares the credential.
// Both unknown names and wrong passwords yield ErrInvalidCredentials so the
// response cannot reveal which half was wrong.
func Authenticate(db *sql.DB, name, password string) (*SelfUser, error) {
	row := db.QueryRow(`SELECT id, name, password FROM users WHERE name = ?`, name)
	var u SelfUser
	if err := row.Scan(&u.ID, &u.Name, &u.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, pkgerrors.Wrap(err, "select user by name")
	}
	if u.Password != password {
		return nil, ErrInvalidCredentials
	}
	friends, err := ListFriendIDs(db, u.ID)
	if err != nil {
		return nil, err
	}
	u.Friends = friends
	return &u, nil
}

// UserExists is the admission check behind the Authorization header.
func UserExists(db *sql.DB, id string) (bool, error) {
	row := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, id)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, pkgerrors.Wrap(err, "user exists")
	}
	return exists, nil
}

func friendEdges(db *sql.DB) (map[string][]string, error) {
	rows, err := db.Query(`SELECT user_id, friend_id FROM friends`)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select friend edges")
	}
	defer rows.Close()
	edges := make(map[string][]string)
	for rows.Next() {
		var userID, friendID string
		if err := rows.Scan(&userID, &friendID); err != nil {
			return nil, pkgerrors.Wrap(err, "scan friend edge")
		}
		edges[userID] = append(edges[userID], friendID)
	}
	return edges, pkgerrors.Wrap(rows.Err(), "iterate friend edges")
}
