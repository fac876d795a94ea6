package server

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bluebird/internal/models"
)

func (s *Server) handleListComments(c *gin.Context) {
	comments, err := models.ListComments(s.DB)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (s *Server) handleCreateComment(c *gin.Context) {
	var in models.Comment
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErrorDetails(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	cm, err := models.CreateComment(s.DB, c.GetString(ctxCaller), in.PostID, in.Body, in.Date)
	if errors.Is(err, models.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (s *Server) handleGetComment(c *gin.Context) {
	cm, err := models.GetComment(s.DB, c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Comment not found")
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (s *Server) handleUpdateComment(c *gin.Context) {
	cm, err := models.GetComment(s.DB, c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Comment not found")
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	if cm.UserID != c.GetString(ctxCaller) {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var in editRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErrorDetails(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if err := models.UpdateComment(s.DB, cm.ID, in.Body); err != nil {
		s.internalError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) handleDeleteComment(c *gin.Context) {
	cm, err := models.GetComment(s.DB, c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		c.Status(http.StatusOK)
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	if cm.UserID != c.GetString(ctxCaller) {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := models.DeleteComment(s.DB, cm.ID); err != nil {
		s.internalError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) handleLikeComment(c *gin.Context) {
	s.reactToComment(c, models.LikeComment)
}

func (s *Server) handleDislikeComment(c *gin.Context) {
	s.reactToComment(c, models.DislikeComment)
}

func (s *Server) reactToComment(c *gin.Context, react func(db *sql.DB, id string) error) {
	err := react(s.DB, c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Comment not found")
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
