package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"backoffice/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authUserKey = "auth_user"

// RequireAuth validates the Bearer token and stores the staff identity in
// the gin context for handlers to read.
func RequireAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token wajib dikirim (Bearer)"})
			return
		}

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return key, nil
		})
		if err != nil || !parsed.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}

		rc := domain.RequestContext{}
		if v, ok := claims["user_id"].(float64); ok {
			rc.UserID = domain.ID(v)
		}
		if v, ok := claims["name"].(string); ok {
			rc.Name = v
		}
		if v, ok := claims["role"].(string); ok {
			rc.Role = v
		}
		c.Set(authUserKey, rc)
		c.Next()
	}
}

// GetAuthUser returns the staff identity set by RequireAuth, zero-valued
// when the route is unauthenticated.
func GetAuthUser(c *gin.Context) domain.RequestContext {
	if c == nil {
		return domain.RequestContext{}
	}
	if v, ok := c.Get(authUserKey); ok {
		if rc, ok := v.(domain.RequestContext); ok {
			return rc
		}
	}
	return domain.RequestContext{}
}
