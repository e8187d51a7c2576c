package middleware

import (
	"errors"
	"net/http"
	"strings"

	"equiptrack/internal/domain"
	"equiptrack/internal/pkg/jwt"
	"equiptrack/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	actorKey  = "actor"
	claimsKey = "claims"
)

// JWTAuth requires a valid bearer token and stores the actor in the context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			code := "INVALID_TOKEN"
			if errors.Is(err, jwt.ErrRevokedToken) {
				code = "TOKEN_REVOKED"
			}
			response.Error(c, http.StatusUnauthorized, code, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Set(actorKey, domain.Actor{ID: claims.UserID, Name: claims.Name, Role: domain.UserRole(claims.Role)})
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// ActorFrom returns the signed-in actor, or the zero Actor for anonymous requests.
func ActorFrom(c *gin.Context) domain.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Actor{}
}

func ClaimsFrom(c *gin.Context) *jwt.Claims {
	if v, ok := c.Get(claimsKey); ok {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}
