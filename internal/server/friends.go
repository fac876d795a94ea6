package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bluebird/internal/models"
)

// handleAddFriend binds two distinct identities: the target named by the
// path and the requester resolved from the Authorization header. Re-adding
// an existing edge succeeds without creating a duplicate.
func (s *Server) handleAddFriend(c *gin.Context) {
	caller := c.GetString(ctxCaller)
	target := c.Param("id")
	if target == caller {
		respondError(c, http.StatusBadRequest, "Cannot befriend yourself")
		return
	}
	exists, err := models.UserExists(s.DB, target)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if !exists {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err := models.AddFriend(s.DB, caller, target); err != nil {
		s.internalError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// handleRemoveFriend deletes the edge whichever direction it was stored in;
// removing a friendship that does not exist is still a success.
func (s *Server) handleRemoveFriend(c *gin.Context) {
	if err := models.RemoveFriend(s.DB, c.GetString(ctxCaller), c.Param("id")); err != nil {
		s.internalError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) handleGetFriends(c *gin.Context) {
	id := c.Param("id")
	exists, err := models.UserExists(s.DB, id)
	if err != nil {
		s.internalError(c, err)
		return
	}
	if !exists {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	friends, err := models.ListFriends(s.DB, id)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

// handleFeed lists posts authored by the caller's friends, newest first.
func (s *Server) handleFeed(c *gin.Context) {
	posts, err := models.ListFeed(s.DB, c.GetString(ctxCaller))
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
