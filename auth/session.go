package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionCookie is the cookie carrying the signed session token.
	SessionCookie = "session"

	usernameKey = "session_username"
)

var ErrInvalidSession = errors.New("invalid session token")

// Sessions transitions requests between anonymous and authenticated states.
// A session is an HMAC-signed token holding the username and nothing else:
// no expiry, no server-side state, cleared only by logout.
type Sessions struct {
	secret []byte
}

func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret)}
}

// Issue signs a session token for an authenticated username.
func (s *Sessions) Issue(username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
	})
	return token.SignedString(s.secret)
}

// Parse validates a session token and returns the username it carries.
func (s *Sessions) Parse(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSession
	}
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return "", ErrInvalidSession
	}
	return username, nil
}

// Middleware rejects anonymous requests and puts the session username into
// the request context for handlers downstream.
func (s *Sessions) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		username, err := s.Parse(cookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}

// Username returns the authenticated identity set by Middleware, or "" for
// an anonymous request.
func Username(c *gin.Context) string {
	username, _ := c.Get(usernameKey)
	if s, ok := username.(string); ok {
		return s
	}
	return ""
}
