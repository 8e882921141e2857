package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hmtri1011/surveyhub/internal/dto"
	"github.com/hmtri1011/surveyhub/internal/model"
)

// Principal is the authenticated caller, extracted from an access token the
// identity service issued. Core logic never authenticates, it only
// authorizes against the role carried here.
type Principal struct {
	ID   uint
	Role string
}

const principalKey = "principal"

// Auth validates the Bearer token and stores the Principal on the context.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid authorization header format"})
			return
		}

		principal, err := parseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid or expired token"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func parseToken(tokenString, secret string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Principal{}, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fmt.Errorf("unexpected claims type")
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return Principal{}, fmt.Errorf("missing subject claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return Principal{}, fmt.Errorf("missing role claim")
	}
	switch role {
	case model.RoleAdmin, model.RoleOwner, model.RoleUser:
	default:
		return Principal{}, fmt.Errorf("unknown role %q", role)
	}

	return Principal{ID: uint(sub), Role: role}, nil
}

// RequireRole aborts with 403 unless the principal's role is one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "authentication required"})
			return
		}
		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "insufficient role"})
	}
}

// PrincipalFrom returns the authenticated principal stored by Auth.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok
}
