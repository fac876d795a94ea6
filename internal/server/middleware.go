package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bluebird/internal/models"
)

// Context keys set by the middleware chain.
const (
	ctxRequestID = "request_id"
	// ctxCaller holds the authenticated account id resolved from the
	// Authorization header. Handlers use it for ownership decisions.
	ctxCaller = "sub"
)

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(ctxRequestID, uuid.NewString())
		c.Next()
		s.Log.WithFields(logrus.Fields{
			"request_id": c.GetString(ctxRequestID),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Info("request")
	}
}

// requireAuth is the admission check: the Authorization header must carry
// the id of an existing account. The resolved id is stashed for handlers so
// per-resource authorization can compare caller and owner.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			respondError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		exists, err := models.UserExists(s.DB, token)
		if err != nil {
			s.internalError(c, err)
			return
		}
		if !exists {
			respondError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Set(ctxCaller, token)
		c.Next()
	}
}
