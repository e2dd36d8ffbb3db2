// Package fakeapi is an in-process stand-in for the backend jwtdash talks
// to. Tests mount its Handler on an httptest.Server.
//
// It serves the four endpoints the client consumes:
//
//	POST /auth/login     {"username","password"} -> {"access_token","expires_in"}
//	POST /auth/refresh   bearer token            -> {"access_token","expires_in"}
//	GET  /api/whoami     bearer token            -> user
//	GET  /api/user/all   bearer token, admin     -> []user
//
// Like the real backend, a refresh with a missing, invalid or expired token
// answers 200 with {"access_token":null,"expires_in":null}.
package fakeapi

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

type User struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	FirstName string   `json:"firstname"`
	LastName  string   `json:"lastname"`
	Roles     []string `json:"authorities"`

	passwordHash []byte
}

func (u *User) hasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Claims struct {
	jwt.RegisteredClaims
}

type Server struct {
	secret []byte
	ttl    time.Duration

	mu     sync.RWMutex
	users  map[string]*User
	outage int

	requests atomic.Int64
	paths    sync.Map

	engine *gin.Engine
}

type Option func(*Server)

// WithTokenTTL sets the lifetime of issued access tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) { s.ttl = ttl }
}

// WithSecret sets the HS256 signing key.
func WithSecret(secret string) Option {
	return func(s *Server) { s.secret = []byte(secret) }
}

func New(opts ...Option) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		secret: []byte("queenvictoria"),
		ttl:    10 * time.Minute,
		users:  make(map[string]*User),
	}
	for _, o := range opts {
		o(s)
	}

	s.engine = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.countRequests, s.simulateOutage)

	auth := router.Group("/auth")
	{
		auth.POST("/login", s.login)
		auth.POST("/refresh", s.refresh)
	}

	api := router.Group("/api")
	api.Use(s.authMiddleware)
	{
		api.GET("/whoami", s.whoami)
		api.GET("/user/all", s.allUsers)
	}

	return router
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// AddUser registers an account. Every user gets RoleUser; extra roles are
// appended.
func (s *Server) AddUser(username, password string, roles ...string) *User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		FirstName:    strings.ToUpper(username[:1]) + username[1:],
		Roles:        append([]string{RoleUser}, roles...),
		passwordHash: hash,
	}

	s.mu.Lock()
	s.users[username] = u
	s.mu.Unlock()
	return u
}

// IssueToken mints a token for username valid for ttl. A negative ttl
// yields an already expired token.
func (s *Server) IssueToken(username string, ttl time.Duration) string {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// SetOutage makes every endpoint answer with status until it is reset
// with 0.
func (s *Server) SetOutage(status int) {
	s.mu.Lock()
	s.outage = status
	s.mu.Unlock()
}

// Requests returns how many requests reached the server.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

// RequestsTo returns how many requests hit path.
func (s *Server) RequestsTo(path string) int64 {
	v, ok := s.paths.Load(path)
	if !ok {
		return 0
	}
	return v.(*atomic.Int64).Load()
}

var errInvalidToken = errors.New("invalid token")

func (s *Server) parseToken(tokenString string) (*User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errInvalidToken
	}

	s.mu.RLock()
	u, ok := s.users[claims.Subject]
	s.mu.RUnlock()
	if !ok {
		return nil, errInvalidToken
	}
	return u, nil
}
