package server

import (
	"database/sql"
	"net/http"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Server owns the database handle and the HTTP surface. It keeps no other
// cross-request state; every operation re-derives its answer from the store.
type Server struct {
	DB  *sql.DB
	Log *logrus.Entry

	adminHash []byte
	stop      chan struct{}
	stopOnce  sync.Once
}

// New builds a Server. The admin token is hashed once up front so request
// handling only ever compares, never stores, the plain value.
func New(db *sql.DB, log *logrus.Entry, adminToken string) (*Server, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Server{DB: db, Log: log, adminHash: hash, stop: make(chan struct{})}, nil
}

// StopRequested is closed when an authorized /stop call arrives. The hosting
// process decides what shutdown means; handlers never exit themselves.
func (s *Server) StopRequested() <-chan struct{} {
	return s.stop
}

// Router wires the full route table. Registration, login and the admin stop
// endpoint sit outside the admission check; everything else requires a token
// naming an existing account.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(s.requestLogger(), gin.Recovery(), cors.Default())

	r.GET("/stop/:token", s.handleStop)
	r.POST("/users/", s.handleCreateUser)
	r.POST("/login/", s.handleLogin)

	auth := r.Group("/", s.requireAuth())
	auth.GET("/users/", s.handleListUsers)
	auth.GET("/users/:id", s.handleGetUser)
	auth.PATCH("/users/:id", s.handleUpdateUser)
	auth.DELETE("/users/:id", s.handleDeleteUser)

	auth.GET("/posts/", s.handleListPosts)
	auth.POST("/posts/", s.handleCreatePost)
	auth.GET("/posts/:id", s.handleGetPost)
	auth.PATCH("/posts/:id", s.handleUpdatePost)
	auth.DELETE("/posts/:id", s.handleDeletePost)
	auth.POST("/posts/:id/like", s.handleLikePost)
	auth.POST("/posts/:id/dislike", s.handleDislikePost)

	auth.GET("/comments/", s.handleListComments)
	auth.POST("/comments/", s.handleCreateComment)
	auth.GET("/comments/:id", s.handleGetComment)
	auth.PATCH("/comments/:id", s.handleUpdateComment)
	auth.DELETE("/comments/:id", s.handleDeleteComment)
	auth.POST("/comments/:id/like", s.handleLikeComment)
	auth.POST("/comments/:id/dislike", s.handleDislikeComment)

	auth.POST("/friends/:id", s.handleAddFriend)
	auth.GET("/friends/:id", s.handleGetFriends)
	auth.DELETE("/friends/:id", s.handleRemoveFriend)

	auth.GET("/feed/", s.handleFeed)

	return r
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func respondErrorDetails(c *gin.Context, status int, msg, details string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "details": details})
}

// internalError hides store failure detail from clients; the cause goes to
// the log keyed by request id.
func (s *Server) internalError(c *gin.Context, err error) {
	s.Log.WithField("request_id", c.GetString(ctxRequestID)).WithError(err).Error("database error")
	respondError(c, http.StatusInternalServerError, "Database error")
}
