package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// handleStop requests an orderly shutdown. The token is compared against the
// bcrypt hash taken at startup, and the decision is delivered to the host
// over the stop channel; the handler itself only answers the request.
func (s *Server) handleStop(c *gin.Context) {
	token := c.Param("token")
	if bcrypt.CompareHashAndPassword(s.adminHash, []byte(token)) != nil {
		respondError(c, http.StatusUnauthorized, "You must have admin privileges to stop the program!")
		return
	}
	s.stopOnce.Do(func() { close(s.stop) })
	c.Status(http.StatusOK)
}
