package models

import (
	"database/sql"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"bluebird/internal/ids"
)

// CreatePost persists a new post under a fresh id. The author and the zeroed
// counters are server-assigned regardless of what the client sent.
func CreatePost(db *sql.DB, userID, title, body, date string) (*Post, error) {
	p := &Post{ID: ids.New(), UserID: userID, Title: title, Body: body, Date: date}
	_, err := db.Exec(`INSERT INTO posts (id, user_id, title, body, date, likes, dislikes) VALUES (?, ?, ?, ?, ?, 0, 0)`,
		p.ID, p.UserID, p.Title, p.Body, p.Date)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "insert post")
	}
	return p, nil
}

func ListPosts(db *sql.DB) ([]Post, error) {
	return scanPosts(db.Query(`SELECT id, user_id, title, body, date, likes, dislikes FROM posts ORDER BY rowid DESC`))
}

func GetPost(db *sql.DB, id string) (*Post, error) {
	row := db.QueryRow(`SELECT id, user_id, title, body, date, likes, dislikes FROM posts WHERE id = ?`, id)
	var p Post
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.Date, &p.Likes, &p.Dislikes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select post")
	}
	return &p, nil
}

func UpdatePost(db *sql.DB, id, title, body string) error {
	res, err := db.Exec(`UPDATE posts SET title = ?, body = ? WHERE id = ?`, title, body, id)
	return rowsOrNotFound(res, err, "update post")
}

// DeletePost removes a post and its comments. Absent ids are a no-op.
func DeletePost(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return pkgerrors.Wrap(err, "begin delete post")
	}
	if _, err := tx.Exec(`DELETE FROM comments WHERE post_id = ?`, id); err != nil {
		tx.Rollback()
		return pkgerrors.Wrap(err, "delete post comments")
	}
	if _, err := tx.Exec(`DELETE FROM posts WHERE id = ?`, id); err != nil {
		tx.Rollback()
		return pkgerrors.Wrap(err, "delete post row")
	}
	return pkgerrors.Wrap(tx.Commit(), "commit delete post")
}

// LikePost and friends apply a single atomic increment so concurrent
// reactions never lose updates.
func LikePost(db *sql.DB, id string) error {
	res, err := db.Exec(`UPDATE posts SET likes = likes + 1 WHERE id = ?`, id)
	return rowsOrNotFound(res, err, "like post")
}

func DislikePost(db *sql.DB, id string) error {
	res, err := db.Exec(`UPDATE posts SET dislikes = dislikes + 1 WHERE id = ?`, id)
	return rowsOrNotFound(res, err, "dislike post")
}

// CreateComment persists a comment under a fresh id. The parent post must
// exist; a dangling post_id is reported as ErrNotFound.
func CreateComment(db *sql.DB, userID, postID, body, date string) (*Comment, error) {
	if _, err := GetPost(db, postID); err != nil {
		return nil, err
	}
	c := &Comment{ID: ids.New(), UserID: userID, PostID: postID, Body: body, Date: date}
	_, err := db.Exec(`INSERT INTO comments (id, user_id, post_id, body, date, likes, dislikes) VALUES (?, ?, ?, ?, ?, 0, 0)`,
		c.ID, c.UserID, c.PostID, c.Body, c.Date)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "insert comment")
	}
	return c, nil
}

func ListComments(db *sql.DB) ([]Comment, error) {
	return scanComments(db.Query(`SELECT id, user_id, post_id, body, date, likes, dislikes FROM comments ORDER BY rowid DESC`))
}

func GetComment(db *sql.DB, id string) (*Comment, error) {
	row := db.QueryRow(`SELECT id, user_id, post_id, body, date, likes, dislikes FROM comments WHERE id = ?`, id)
	var c Comment
	err := row.Scan(&c.ID, &c.UserID, &c.PostID, &c.Body, &c.Date, &c.Likes, &c.Dislikes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select comment")
	}
	return &c, nil
}

func UpdateComment(db *sql.DB, id, body string) error {
	res, err := db.Exec(`UPDATE comments SET body = ? WHERE id = ?`, body, id)
	return rowsOrNotFound(res, err, "update comment")
}

func DeleteComment(db *sql.DB, id string) error {
	_, err := db.Exec(`DELETE FROM comments WHERE id = ?`, id)
	return pkgerrors.Wrap(err, "delete comment")
}

func LikeComment(db *sql.DB, id string) error {
	res, err := db.Exec(`UPDATE comments SET likes = likes + 1 WHERE id = ?`, id)
	return rowsOrNotFound(res, err, "like comment")
}

func DislikeComment(db *sql.DB, id string) error {
	res, err := db.Exec(`UPDATE comments SET dislikes = dislikes + 1 WHERE id = ?`, id)
	return rowsOrNotFound(res, err, "dislike comment")
}

// ListFeed returns posts authored by the user's friends, newest first.
func ListFeed(db *sql.DB, userID string) ([]Post, error) {
	return scanPosts(db.Query(`SELECT p.id, p.user_id, p.title, p.body, p.date, p.likes, p.dislikes
		FROM posts p JOIN friends f ON f.friend_id = p.user_id
		WHERE f.user_id = ? ORDER BY p.rowid DESC`, userID))
}

func scanPosts(rows *sql.Rows, err error) ([]Post, error) {
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select posts")
	}
	defer rows.Close()
	posts := []Post{}
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Body, &p.Date, &p.Likes, &p.Dislikes); err != nil {
			return nil, pkgerrors.Wrap(err, "scan post")
		}
		posts = append(posts, p)
	}
	return posts, pkgerrors.Wrap(rows.Err(), "iterate posts")
}

func scanComments(rows *sql.Rows, err error) ([]Comment, error) {
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select comments")
	}
	defer rows.Close()
	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.PostID, &c.Body, &c.Date, &c.Likes, &c.Dislikes); err != nil {
			return nil, pkgerrors.Wrap(err, "scan comment")
		}
		comments = append(comments, c)
	}
	return comments, pkgerrors.Wrap(rows.Err(), "iterate comments")
}

func rowsOrNotFound(res sql.Result, err error, op string) error {
	if err != nil {
		return pkgerrors.Wrap(err, op)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pkgerrors.Wrap(err, op)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
