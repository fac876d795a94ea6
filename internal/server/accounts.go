package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bluebird/internal/models"
)

func (s *Server) handleCreateUser(c *gin.Context) {
	var in models.Login
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErrorDetails(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	u, err := models.CreateUser(s.DB, in.Name, in.Password)
	if errors.Is(err, models.ErrDuplicateName) {
		respondError(c, http.StatusConflict, "User already exists")
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) handleLogin(c *gin.Context) {
	var in models.Login
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErrorDetails(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	u, err := models.Authenticate(s.DB, in.Name, in.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		respondError(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := models.ListUsers(s.DB)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// handleGetUser returns the full record, password included, only when the
// caller asks about itself; anyone else gets the public view.
func (s *Server) handleGetUser(c *gin.Context) {
	u, err := models.GetUser(s.DB, c.Param("id"))
	if errors.Is(err, models.ErrNotFound) {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	if c.GetString(ctxCaller) == u.ID {
		c.JSON(http.StatusOK, u)
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	id := c.Param("id")
	if c.GetString(ctxCaller) != id {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var in models.Login
	if err := c.ShouldBindJSON(&in); err != nil {
		respondErrorDetails(c, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	err := models.UpdateUser(s.DB, id, in.Name, in.Password)
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, models.ErrDuplicateName):
		respondError(c, http.StatusConflict, "User already exists")
	case err != nil:
		s.internalError(c, err)
	default:
		c.Status(http.StatusOK)
	}
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	id := c.Param("id")
	if c.GetString(ctxCaller) != id {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := models.DeleteUser(s.DB, id); err != nil {
		s.internalError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
