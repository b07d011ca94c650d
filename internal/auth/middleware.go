package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userContextKey = "auth.user"

// User is the authenticated caller. Users live in an external identity
// system; only their id and name travel with the token.
type User struct {
	ID       string
	Username string
}

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	ValidateAccessToken(token string) (*Claims, error)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller on the gin context.
func RequireAuth(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := v.ValidateAccessToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(userContextKey, User{ID: claims.UserID, Username: claims.Username})
		c.Next()
	}
}

// CurrentUser returns the caller stored by RequireAuth.
func CurrentUser(c *gin.Context) (User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return User{}, false
	}
	u, ok := v.(User)
	return u, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
		Code:    "UNAUTHORIZED",
		Message: message,
	})
}
