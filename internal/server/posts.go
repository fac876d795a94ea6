package server

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bluebird/internal/models"
)

// editRequest is the body accepted by the PATCH endpoints. Only title and
// body are editable; everything else is server-owned.
type editRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *Server) handleListPosts(c *gin.Context) {
	posts, err := models.ListPosts(s.DB)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// handleCreatePost accepts a full post shape but overwrites id, author and
// both counters: the id is freshly generated, the author is the
// authenticated caller and the counters start at zero.
func (s *Server) handleCreatePost(c *gin.Context) {
	var in models.Post
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErrorDetails(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	p, err := models.CreatePost(s.DB, c.GetString(ctxCaller), in.Title, in.Body, in.Date)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleGetPost(c *gin.Context) {
	p, err := models.GetPost(s.DB, c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleUpdatePost(c *gin.Context) {
	p, err := models.GetPost(s.DB, c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	if p.UserID != c.GetString(ctxCaller) {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var in editRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErrorDetails(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if err := models.UpdatePost(s.DB, p.ID, in.Title, in.Body); err != nil {
		s.internalError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// handleDeletePost succeeds for ids that no longer exist; only a live post
// owned by someone else is refused.
func (s *Server) handleDeletePost(c *gin.Context) {
	p, err := models.GetPost(s.DB, c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		c.Status(http.StatusOK)
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	if p.UserID != c.GetString(ctxCaller) {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := models.DeletePost(s.DB, p.ID); err != nil {
		s.internalError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) handleLikePost(c *gin.Context) {
	s.reactToPost(c, models.LikePost)
}

func (s *Server) handleDislikePost(c *gin.Context) {
	s.reactToPost(c, models.DislikePost)
}

func (s *Server) reactToPost(c *gin.Context, react func(db *sql.DB, id string) error) {
	err := react(s.DB, c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
