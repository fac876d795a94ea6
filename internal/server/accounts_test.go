package server

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"bluebird/internal/models"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9]{30}$`)

func TestRegisterAssignsServerID(t *testing.T) {
	_, r := newTestServer(t)
	u := registerUser(t, r, "alice", "pw1")
	require.Regexp(t, idPattern, u.ID)
	require.Equal(t, "alice", u.Name)
	require.Equal(t, "pw1", u.Password)
	require.Empty(t, u.Friends)
}

func TestRegisterDuplicateName(t *testing.T) {
	_, r := newTestServer(t)
	registerUser(t, r, "alice", "pw1")
	w := do(t, r, http.MethodPost, "/users/", "", models.Login{Name: "alice", Password: "pw2"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.JSONEq(t, `{"error": "User already exists"}`, w.Body.String())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	_, r := newTestServer(t)
	registerUser(t, r, "alice", "pw1")

	wrongPassword := do(t, r, http.MethodPost, "/login/", "", models.Login{Name: "alice", Password: "nope"})
	wrongName := do(t, r, http.MethodPost, "/login/", "", models.Login{Name: "bob", Password: "pw1"})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, wrongName.Code)
	require.Equal(t, wrongPassword.Body.String(), wrongName.Body.String())
}

func TestLoginReturnsAccountWithFriends(t *testing.T) {
	_, r := newTestServer(t)
	alice := registerUser(t, r, "alice", "pw1")
	bob := registerUser(t, r, "bob", "pw2")
	do(t, r, http.MethodPost, "/friends/"+bob.ID, alice.ID, nil)

	w := do(t, r, http.MethodPost, "/login/", "", models.Login{Name: "alice", Password: "pw1"})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.SelfUser](t, w)
	require.Equal(t, alice.ID, got.ID)
	require.Equal(t, "pw1", got.Password)
	require.Equal(t, []string{bob.ID}, got.Friends)
}

func TestGetUserSelfVersusOther(t *testing.T) {
	_, r := newTestServer(t)
	alice := registerUser(t, r, "alice", "pw1")
	bob := registerUser(t, r, "bob", "pw2")

	// self view carries the credential
	w := do(t, r, http.MethodGet, "/users/"+alice.ID, alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	self := decode[map[string]any](t, w)
	require.Equal(t, "pw1", self["password"])

	// anyone else gets the public view
	w = do(t, r, http.MethodGet, "/users/"+alice.ID, bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	public := decode[map[string]any](t, w)
	require.NotContains(t, public, "password")
	require.Equal(t, "alice", public["name"])
}

func TestGetUserNotFound(t *testing.T) {
	_, r := newTestServer(t)
	alice := registerUser(t, r, "alice", "pw1")
	w := do(t, r, http.MethodGet, "/users/missing", alice.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error": "User not found"}`, w.Body.String())
}

func TestListUsersExcludesCredentials(t *testing.T) {
	_, r := newTestServer(t)
	alice := registerUser(t, r, "alice", "pw1")
	bob := registerUser(t, r, "bob", "pw2")
	do(t, r, http.MethodPost, "/friends/"+bob.ID, alice.ID, nil)

	w := do(t, r, http.MethodGet, "/users/", alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "password")

	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
	byName := map[string]map[string]any{}
	for _, u := range users {
		byName[u["name"].(string)] = u
	}
	require.Equal(t, []any{bob.ID}, byName["alice"]["friends"])
	require.Equal(t, []any{alice.ID}, byName["bob"]["friends"])
}

func TestUpdateUserIsOwnerOnly(t *testing.T) {
	_, r := newTestServer(t)
	alice := registerUser(t, r, "alice", "pw1")
	bob := registerUser(t, r, "bob", "pw2")

	w := do(t, r, http.MethodPatch, "/users/"+alice.ID, bob.ID, models.Login{Name: "mallory", Password: "x"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPatch, "/users/"+alice.ID, alice.ID, models.Login{Name: "alice2", Password: "pw9"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/login/", "", models.Login{Name: "alice2", Password: "pw9"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateUserDuplicateName(t *testing.T) {
	_, r := newTestServer(t)
	alice := registerUser(t, r, "alice", "pw1")
	registerUser(t, r, "bob", "pw2")

	w := do(t, r, http.MethodPatch, "/users/"+alice.ID, alice.ID, models.Login{Name: "bob", Password: "pw1"})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteUserCascades(t *testing.T) {
	_, r := newTestServer(t)
	alice := registerUser(t, r, "alice", "pw1")
	bob := registerUser(t, r, "bob", "pw2")
	do(t, r, http.MethodPost, "/friends/"+bob.ID, alice.ID, nil)

	w := do(t, r, http.MethodPost, "/posts/", alice.ID, models.Post{Title: "t", Body: "b"})
	post := decode[models.Post](t, w)
	w = do(t, r, http.MethodPost, "/comments/", bob.ID, models.Comment{PostID: post.ID, Body: "hi"})
	comment := decode[models.Comment](t, w)

	// non-owner cannot delete the account
	w = do(t, r, http.MethodDelete, "/users/"+alice.ID, bob.ID, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodDelete, "/users/"+alice.ID, alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// the post, the comments under it, and the friend edge are all gone
	w = do(t, r, http.MethodGet, "/posts/"+post.ID, bob.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, r, http.MethodGet, "/comments/"+comment.ID, bob.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, r, http.MethodGet, "/friends/"+bob.ID, bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())

	// and the deleted id no longer passes admission
	w = do(t, r, http.MethodGet, "/posts/", alice.ID, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
