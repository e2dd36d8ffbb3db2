package fakeapi

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const userKey = "user"

type tokenState struct {
	AccessToken *string `json:"access_token"`
	ExpiresIn   *int64  `json:"expires_in"`
}

func (s *Server) newTokenState(username string) tokenState {
	token := s.IssueToken(username, s.ttl)
	expiresIn := int64(s.ttl.Seconds())
	return tokenState{AccessToken: &token, ExpiresIn: &expiresIn}
}

func (s *Server) countRequests(c *gin.Context) {
	s.requests.Add(1)
	v, _ := s.paths.LoadOrStore(c.Request.URL.Path, new(atomic.Int64))
	v.(*atomic.Int64).Add(1)
	c.Next()
}

func (s *Server) simulateOutage(c *gin.Context) {
	s.mu.RLock()
	status := s.outage
	s.mu.RUnlock()

	if status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
		return
	}
	c.Next()
}

func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") || len(auth) == len("Bearer ") {
		return "", false
	}
	return auth[len("Bearer "):], true
}

func (s *Server) authMiddleware(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
		return
	}

	u, err := s.parseToken(token)
	if err != nil {
		msg := "Invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "Token expired"
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
		return
	}

	c.Set(userKey, u)
	c.Next()
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s.mu.RLock()
	u, ok := s.users[req.Username]
	s.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	c.JSON(http.StatusOK, s.newTokenState(u.Username))
}

func (s *Server) refresh(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusOK, tokenState{})
		return
	}
	u, err := s.parseToken(token)
	if err != nil {
		c.JSON(http.StatusOK, tokenState{})
		return
	}
	c.JSON(http.StatusOK, s.newTokenState(u.Username))
}

func (s *Server) whoami(c *gin.Context) {
	c.JSON(http.StatusOK, c.MustGet(userKey))
}

func (s *Server) allUsers(c *gin.Context) {
	u := c.MustGet(userKey).(*User)
	if !u.hasRole(RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access is denied"})
		return
	}

	s.mu.RLock()
	users := make([]*User, 0, len(s.users))
	for _, v := range s.users {
		users = append(users, v)
	}
	s.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	c.JSON(http.StatusOK, users)
}
